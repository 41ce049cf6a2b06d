// Copyright 2025 The govkit Authors
// This file is part of the govkit library.
//
// The govkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govkit library. If not, see <http://www.gnu.org/licenses/>.

// Package api exposes the governance, treasury and delegation operations
// over HTTP. Caller authentication is assumed to happen upstream; the
// authenticated identity arrives in the X-Govkit-Caller header.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/daosuite/govkit/governance"
	"github.com/daosuite/govkit/metrics"
	"github.com/daosuite/govkit/token"
	"github.com/daosuite/govkit/treasury"
)

// CallerHeader carries the authenticated caller identity.
const CallerHeader = "X-Govkit-Caller"

// Server routes HTTP requests to the governance engine, the treasury, and
// the governance token.
type Server struct {
	engine   *governance.Engine
	treasury *treasury.Treasury
	govToken *token.Token

	log     *logrus.Logger
	metrics *metrics.APIMetrics
}

// NewServer wires the API over the given components. logger and m may be
// nil.
func NewServer(engine *governance.Engine, treas *treasury.Treasury, govToken *token.Token, logger *logrus.Logger, m *metrics.APIMetrics) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	if m == nil {
		m = metrics.NopAPIMetrics()
	}
	return &Server{
		engine:   engine,
		treasury: treas,
		govToken: govToken,
		log:      logger,
		metrics:  m,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/proposals", s.handleCreateProposal).Methods(http.MethodPost)
	r.HandleFunc("/proposals", s.handleActiveProposals).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{id:[0-9]+}", s.handleGetProposal).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{id:[0-9]+}/votes", s.handleVote).Methods(http.MethodPost)
	r.HandleFunc("/proposals/{id:[0-9]+}/votes/{voter}", s.handleGetVoteInfo).Methods(http.MethodGet)
	r.HandleFunc("/proposals/{id:[0-9]+}/cancel", s.handleCancel).Methods(http.MethodPost)
	r.HandleFunc("/proposals/{id:[0-9]+}/execute", s.handleExecute).Methods(http.MethodPost)
	r.HandleFunc("/proposals/{id:[0-9]+}/passed", s.handlePassed).Methods(http.MethodGet)

	r.HandleFunc("/config", s.handleGetConfig).Methods(http.MethodGet)
	r.HandleFunc("/config", s.handleUpdateConfig).Methods(http.MethodPut)

	r.HandleFunc("/treasury/fund", s.handleFund).Methods(http.MethodPost)
	r.HandleFunc("/treasury/fund-token", s.handleFundToken).Methods(http.MethodPost)
	r.HandleFunc("/treasury/emergency-withdraw", s.handleEmergencyWithdraw).Methods(http.MethodPost)
	r.HandleFunc("/treasury/balance", s.handleTreasuryBalance).Methods(http.MethodGet)

	r.HandleFunc("/delegations", s.handleDelegate).Methods(http.MethodPost)
	r.HandleFunc("/delegations/undelegate", s.handleUndelegate).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return r
}

func (s *Server) caller(r *http.Request) (common.Address, error) {
	raw := r.Header.Get(CallerHeader)
	if !common.IsHexAddress(raw) {
		return common.Address{}, errors.New("missing or invalid caller header")
	}
	return common.HexToAddress(raw), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.log.WithError(err).Error("encode response")
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.RequestErrorsTotal.With("endpoint", routeName(r), "method", r.Method).Add(1)
	s.writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
}

func (s *Server) observe(r *http.Request) {
	s.metrics.RequestsTotal.With("endpoint", routeName(r), "method", r.Method).Add(1)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, governance.ErrProposalNotFound):
		return http.StatusNotFound
	case errors.Is(err, governance.ErrNotAdmin),
		errors.Is(err, governance.ErrNotAuthorized),
		errors.Is(err, treasury.ErrNotAdmin),
		errors.Is(err, treasury.ErrNotDao):
		return http.StatusForbidden
	case errors.Is(err, governance.ErrAlreadyVoted),
		errors.Is(err, governance.ErrProposalCanceled),
		errors.Is(err, governance.ErrProposalExecuted),
		errors.Is(err, treasury.ErrAlreadyApproved),
		errors.Is(err, treasury.ErrAlreadyExecuted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, errors.New("missing amount")
	}
	return uint256.FromDecimal(s)
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.New("invalid address")
	}
	return common.HexToAddress(s), nil
}

func parseAsset(s string) (common.Address, error) {
	if s == "" {
		return governance.NativeAsset, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.New("invalid asset address")
	}
	return common.HexToAddress(s), nil
}
