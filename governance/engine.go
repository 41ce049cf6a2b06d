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

// Package governance implements the proposal lifecycle state machine:
// token-weighted voting over a bounded window, quorum and strict-majority
// outcome arithmetic, and guarded fund release through the treasury.
package governance

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"github.com/daosuite/govkit/audit"
	"github.com/daosuite/govkit/metrics"
)

// Engine owns the proposal registry and the vote/lifecycle state machine.
// Every state-mutating operation runs atomically under the engine lock and
// either fully commits or fully aborts with no observable effect.
type Engine struct {
	mu sync.RWMutex

	admin common.Address // administrator capability
	self  common.Address // identity presented to the treasury

	provider VotingPowerProvider
	treasury Treasury
	clock    Clock
	config   *Config

	proposals map[uint64]*Proposal
	ballots   map[ballotKey]Ballot
	nextID    uint64

	log      *logrus.Logger
	recorder audit.Recorder
	metrics  *metrics.GovernanceMetrics
}

// NewEngine creates a governance engine. admin is the administrator
// identity, self is the address this engine presents to the treasury.
// logger, recorder and m may be nil; no-op implementations are substituted.
func NewEngine(admin, self common.Address, cfg *Config, provider VotingPowerProvider, treasury Treasury, clock Clock, logger *logrus.Logger, recorder audit.Recorder, m *metrics.GovernanceMetrics) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	if m == nil {
		m = metrics.NopGovernanceMetrics()
	}
	return &Engine{
		admin:     admin,
		self:      self,
		provider:  provider,
		treasury:  treasury,
		clock:     clock,
		config:    cfg.clone(),
		proposals: make(map[uint64]*Proposal),
		ballots:   make(map[ballotKey]Ballot),
		nextID:    1,
		log:       logger,
		recorder:  recorder,
		metrics:   m,
	}
}

// CreateProposal registers a new proposal and returns its id. The caller
// must hold at least the configured proposal threshold of voting power.
// The voting window opens immediately and closes after the configured
// voting period.
func (e *Engine) CreateProposal(caller common.Address, description string, recipient common.Address, amount *uint256.Int, asset common.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if power := e.provider.GetVotingPower(caller); power.Lt(e.config.ProposalThreshold) {
		return 0, ErrInsufficientVotingPower
	}
	if description == "" {
		return 0, ErrEmptyDescription
	}
	if recipient == (common.Address{}) {
		return 0, ErrInvalidRecipient
	}
	if amount == nil || amount.IsZero() {
		return 0, ErrZeroAmount
	}

	now := e.clock.Now()
	p := &Proposal{
		ID:           e.nextID,
		Proposer:     caller,
		Description:  description,
		Recipient:    recipient,
		Amount:       amount.Clone(),
		Asset:        asset,
		StartTime:    now,
		EndTime:      now + e.config.VotingPeriod,
		ForVotes:     new(uint256.Int),
		AgainstVotes: new(uint256.Int),
	}
	e.proposals[p.ID] = p
	e.nextID++

	e.log.WithFields(logrus.Fields{
		"id":       p.ID,
		"proposer": caller.Hex(),
		"amount":   amount.Dec(),
	}).Info("proposal created")
	e.recorder.Record(audit.KindProposalCreated, ProposalCreatedEvent{
		ID:          p.ID,
		Proposer:    caller,
		Recipient:   recipient,
		Amount:      amount.Clone(),
		Asset:       asset,
		Description: description,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
	})
	e.metrics.ProposalsCreated.Add(1)

	return p.ID, nil
}

// Vote records the caller's ballot and adds their current voting power to
// the chosen tally. Voting is exactly-once per (proposal, caller): a second
// call fails regardless of the support value. The window guards fire before
// the canceled guard, so a canceled proposal past its end time reports
// "voting ended".
func (e *Engine) Vote(caller common.Address, id uint64, support bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return ErrProposalNotFound
	}
	now := e.clock.Now()
	if now < p.StartTime {
		return ErrVotingNotStarted
	}
	if now >= p.EndTime {
		return ErrVotingEnded
	}
	key := ballotKey{proposal: id, voter: caller}
	if e.ballots[key].HasVoted {
		return ErrAlreadyVoted
	}
	if p.Canceled {
		return ErrProposalCanceled
	}
	if p.Executed {
		return ErrProposalExecuted
	}
	power := e.provider.GetVotingPower(caller)
	if power.IsZero() {
		return ErrNoVotingPower
	}

	// Tally first so an arithmetic failure leaves no ballot behind.
	tally := p.ForVotes
	if !support {
		tally = p.AgainstVotes
	}
	sum, overflow := new(uint256.Int).AddOverflow(tally, power)
	if overflow {
		return ErrVoteOverflow
	}
	tally.Set(sum)
	e.ballots[key] = Ballot{HasVoted: true, Support: support}

	e.log.WithFields(logrus.Fields{
		"id":      id,
		"voter":   caller.Hex(),
		"support": support,
		"weight":  power.Dec(),
	}).Info("vote cast")
	e.recorder.Record(audit.KindVoteCast, VoteCastEvent{
		ID:      id,
		Voter:   caller,
		Support: support,
		Weight:  power.Clone(),
	})
	e.metrics.VotesCast.Add(1)

	return nil
}

// CancelProposal marks the proposal canceled. Only the proposer or the
// admin may cancel, and only before the voting window opens. Since the
// window opens at creation time, the cancel window is effectively zero
// width in real deployments; the guard is kept literal.
func (e *Engine) CancelProposal(caller common.Address, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return ErrProposalNotFound
	}
	if caller != p.Proposer && caller != e.admin {
		return ErrNotAuthorized
	}
	if e.clock.Now() >= p.StartTime {
		return ErrVotingStarted
	}
	if p.Executed {
		return ErrProposalExecuted
	}
	if p.Canceled {
		return ErrProposalCanceled
	}

	p.Canceled = true

	e.log.WithFields(logrus.Fields{"id": id, "by": caller.Hex()}).Info("proposal canceled")
	e.recorder.Record(audit.KindProposalCanceled, ProposalCanceledEvent{ID: id, By: caller})
	e.metrics.ProposalsCanceled.Add(1)

	return nil
}

// ExecuteProposal finalizes a passed proposal after its window has ended
// and instructs the treasury to approve then release the payout. The
// executed flag is set before the treasury calls so re-entry cannot
// re-execute; if either treasury step fails, all engine and treasury state
// is rolled back and the error returned, leaving the proposal executable
// again.
func (e *Engine) ExecuteProposal(caller common.Address, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return ErrProposalNotFound
	}
	if e.clock.Now() < p.EndTime {
		return ErrVotingNotEnded
	}
	if p.Executed {
		return ErrProposalExecuted
	}
	if p.Canceled {
		return ErrProposalCanceled
	}
	if err := checkOutcome(p, e.config.QuorumVotes); err != nil {
		return err
	}

	p.Executed = true

	if err := e.treasury.ApproveProposal(e.self, id); err != nil {
		p.Executed = false
		return err
	}
	if err := e.treasury.SpendFunds(e.self, id, p.Recipient, p.Amount, p.Asset); err != nil {
		p.Executed = false
		if rbErr := e.treasury.RevokeApproval(e.self, id); rbErr != nil {
			e.log.WithError(rbErr).WithField("id", id).Error("approval rollback failed")
		}
		return err
	}

	e.log.WithFields(logrus.Fields{
		"id":        id,
		"recipient": p.Recipient.Hex(),
		"amount":    p.Amount.Dec(),
	}).Info("proposal executed")
	e.recorder.Record(audit.KindProposalExecuted, ProposalExecutedEvent{
		ID:        id,
		By:        caller,
		Recipient: p.Recipient,
		Amount:    p.Amount.Clone(),
		Asset:     p.Asset,
	})
	e.metrics.ProposalsExecuted.Add(1)

	return nil
}

// checkOutcome is the single quorum and strict-majority test shared by
// ExecuteProposal and ProposalPassed. A sum that overflows has necessarily
// reached any representable quorum.
func checkOutcome(p *Proposal, quorum *uint256.Int) error {
	total, overflow := new(uint256.Int).AddOverflow(p.ForVotes, p.AgainstVotes)
	if !overflow && total.Lt(quorum) {
		return ErrQuorumNotReached
	}
	if !p.ForVotes.Gt(p.AgainstVotes) {
		return ErrNotApproved
	}
	return nil
}

// UpdateConfiguration atomically replaces all three governance parameters.
// Admin only. Windows of already-created proposals are unaffected.
func (e *Engine) UpdateConfiguration(caller common.Address, threshold *uint256.Int, period uint64, quorum *uint256.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.admin {
		return ErrNotAdmin
	}
	if threshold == nil || quorum == nil {
		return ErrInvalidConfiguration
	}

	e.config = &Config{
		ProposalThreshold: threshold.Clone(),
		VotingPeriod:      period,
		QuorumVotes:       quorum.Clone(),
	}

	e.log.WithFields(logrus.Fields{
		"threshold": threshold.Dec(),
		"period":    period,
		"quorum":    quorum.Dec(),
	}).Info("configuration updated")
	e.recorder.Record(audit.KindConfigUpdated, ConfigUpdatedEvent{
		By:                caller,
		ProposalThreshold: threshold.Clone(),
		VotingPeriod:      period,
		QuorumVotes:       quorum.Clone(),
	})
	e.metrics.ConfigUpdates.Add(1)

	return nil
}

// GetProposal returns a snapshot of the proposal.
func (e *Engine) GetProposal(id uint64) (*Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.proposals[id]
	if !ok {
		return nil, ErrProposalNotFound
	}
	return p.clone(), nil
}

// GetVoteInfo returns the voter's ballot on the proposal. A voter who has
// not voted yields a zero ballot.
func (e *Engine) GetVoteInfo(id uint64, voter common.Address) (Ballot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.proposals[id]; !ok {
		return Ballot{}, ErrProposalNotFound
	}
	return e.ballots[ballotKey{proposal: id, voter: voter}], nil
}

// ProposalPassed reports whether the proposal has met quorum and strict
// majority. It mirrors ExecuteProposal's outcome test exactly, but returns
// false instead of failing for proposals that are nonexistent, canceled,
// executed, or whose window has not ended.
func (e *Engine) ProposalPassed(id uint64) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.proposals[id]
	if !ok {
		return false
	}
	if p.Canceled || p.Executed {
		return false
	}
	if e.clock.Now() < p.EndTime {
		return false
	}
	return checkOutcome(p, e.config.QuorumVotes) == nil
}

// IsCanceled reports the canceled flag.
func (e *Engine) IsCanceled(id uint64) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.proposals[id]
	if !ok {
		return false, ErrProposalNotFound
	}
	return p.Canceled, nil
}

// IsExecuted reports the executed flag.
func (e *Engine) IsExecuted(id uint64) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.proposals[id]
	if !ok {
		return false, ErrProposalNotFound
	}
	return p.Executed, nil
}

// GetConfiguration returns a snapshot of the current parameters.
func (e *Engine) GetConfiguration() *Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config.clone()
}

// ProposalCount returns the number of proposals ever created.
func (e *Engine) ProposalCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.nextID - 1
}

// ActiveProposals returns snapshots of all proposals whose voting window is
// currently open.
func (e *Engine) ActiveProposals() []*Proposal {
	e.mu.RLock()
	defer e.mu.RUnlock()

	now := e.clock.Now()
	active := make([]*Proposal, 0)
	for _, p := range e.proposals {
		if p.State(now) == StateActive {
			active = append(active, p.clone())
		}
	}
	return active
}
