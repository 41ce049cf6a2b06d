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

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/daosuite/govkit/governance"
)

type createProposalRequest struct {
	Description string `json:"description"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"` // decimal
	Asset       string `json:"asset"`  // hex address, empty for native
}

type voteRequest struct {
	Support bool `json:"support"`
}

type updateConfigRequest struct {
	ProposalThreshold string `json:"proposal_threshold"`
	VotingPeriod      uint64 `json:"voting_period"`
	QuorumVotes       string `json:"quorum_votes"`
}

type fundRequest struct {
	Amount string `json:"amount"`
	Asset  string `json:"asset"`
}

type withdrawRequest struct {
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
}

type delegateRequest struct {
	Delegate string `json:"delegate"`
	Amount   string `json:"amount"`
}

type undelegateRequest struct {
	Amount string `json:"amount"`
}

type proposalResponse struct {
	ID           uint64 `json:"id"`
	Proposer     string `json:"proposer"`
	Description  string `json:"description"`
	Recipient    string `json:"recipient"`
	Amount       string `json:"amount"`
	Asset        string `json:"asset"`
	StartTime    uint64 `json:"start_time"`
	EndTime      uint64 `json:"end_time"`
	ForVotes     string `json:"for_votes"`
	AgainstVotes string `json:"against_votes"`
	Executed     bool   `json:"executed"`
	Canceled     bool   `json:"canceled"`
}

func newProposalResponse(p *governance.Proposal) proposalResponse {
	return proposalResponse{
		ID:           p.ID,
		Proposer:     p.Proposer.Hex(),
		Description:  p.Description,
		Recipient:    p.Recipient.Hex(),
		Amount:       p.Amount.Dec(),
		Asset:        p.Asset.Hex(),
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		ForVotes:     p.ForVotes.Dec(),
		AgainstVotes: p.AgainstVotes.Dec(),
		Executed:     p.Executed,
		Canceled:     p.Canceled,
	}
}

func proposalID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	recipient, err := parseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, r, errors.New("invalid recipient address"))
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asset, err := parseAsset(req.Asset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.engine.CreateProposal(caller, req.Description, recipient, amount, asset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) handleActiveProposals(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	active := s.engine.ActiveProposals()
	out := make([]proposalResponse, 0, len(active))
	for _, p := range active {
		out = append(out, newProposalResponse(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	id, err := proposalID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.engine.GetProposal(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newProposalResponse(p))
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := proposalID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.Vote(caller, id, req.Support); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleGetVoteInfo(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	id, err := proposalID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	voter, err := parseAddress(mux.Vars(r)["voter"])
	if err != nil {
		s.writeError(w, r, errors.New("invalid voter address"))
		return
	}
	ballot, err := s.engine.GetVoteInfo(id, voter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{
		"has_voted": ballot.HasVoted,
		"support":   ballot.Support,
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := proposalID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.CancelProposal(caller, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := proposalID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.ExecuteProposal(caller, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handlePassed(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	id, err := proposalID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"passed": s.engine.ProposalPassed(id)})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	cfg := s.engine.GetConfiguration()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposal_threshold": cfg.ProposalThreshold.Dec(),
		"voting_period":      cfg.VotingPeriod,
		"quorum_votes":       cfg.QuorumVotes.Dec(),
	})
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	threshold, err := parseAmount(req.ProposalThreshold)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	quorum, err := parseAmount(req.QuorumVotes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.UpdateConfiguration(caller, threshold, req.VotingPeriod, quorum); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.treasury.FundTreasury(caller, amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleFundToken(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asset, err := parseAsset(req.Asset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.treasury.FundTreasuryWithToken(caller, asset, amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asset, err := parseAsset(req.Asset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recipient, err := parseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, r, errors.New("invalid recipient address"))
		return
	}
	if err := s.treasury.EmergencyWithdraw(caller, asset, amount, recipient); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleTreasuryBalance(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	asset, err := parseAsset(r.URL.Query().Get("asset"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"asset":   asset.Hex(),
		"balance": s.treasury.Balance(asset).Dec(),
	})
}

func (s *Server) handleDelegate(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req delegateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	delegate, err := parseAddress(req.Delegate)
	if err != nil {
		s.writeError(w, r, errors.New("invalid delegate address"))
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.govToken.Delegate(caller, delegate, amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUndelegate(w http.ResponseWriter, r *http.Request) {
	s.observe(r)
	caller, err := s.caller(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req undelegateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.govToken.Undelegate(caller, amount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}
