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

package governance

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NativeAsset is the asset kind denoting the native currency. Any other
// value is interpreted as a fungible token address.
var NativeAsset = common.Address{}

// ProposalState is the derived lifecycle state of a proposal.
type ProposalState uint8

const (
	StatePending  ProposalState = 0x00 // before the voting window opens
	StateActive   ProposalState = 0x01 // voting window open
	StateCanceled ProposalState = 0x02 // terminal
	StateEnded    ProposalState = 0x03 // window closed, not executed
	StateExecuted ProposalState = 0x04 // terminal
)

func (s ProposalState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateCanceled:
		return "canceled"
	case StateEnded:
		return "ended"
	case StateExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// Proposal is one governance action: a payout instruction plus the vote
// tallies accumulated during its voting window. Recipient, Amount and Asset
// are captured at creation and never mutated. ForVotes and AgainstVotes only
// grow until the proposal is finalized. Executed and Canceled are monotone
// one-way flags and are never both true.
type Proposal struct {
	ID           uint64
	Proposer     common.Address
	Description  string
	Recipient    common.Address
	Amount       *uint256.Int
	Asset        common.Address // NativeAsset means native currency
	StartTime    uint64         // unix seconds, equals creation time
	EndTime      uint64         // StartTime + voting period
	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int
	Executed     bool
	Canceled     bool
}

// State derives the lifecycle state at the given time.
func (p *Proposal) State(now uint64) ProposalState {
	switch {
	case p.Canceled:
		return StateCanceled
	case p.Executed:
		return StateExecuted
	case now < p.StartTime:
		return StatePending
	case now < p.EndTime:
		return StateActive
	default:
		return StateEnded
	}
}

func (p *Proposal) clone() *Proposal {
	cp := *p
	cp.Amount = p.Amount.Clone()
	cp.ForVotes = p.ForVotes.Clone()
	cp.AgainstVotes = p.AgainstVotes.Clone()
	return &cp
}

// Ballot records one voter's decision on one proposal. Once HasVoted is set
// it never reverts, and Support is immutable after the first vote.
type Ballot struct {
	HasVoted bool
	Support  bool
}

// ballotKey is the flat composite key for the ballot table, one entry per
// (proposal, voter) pair.
type ballotKey struct {
	proposal uint64
	voter    common.Address
}

// Config holds the process-wide governance parameters. It is replaced
// atomically by UpdateConfiguration and read by every lifecycle operation.
// Changing it does not affect the window of already-created proposals.
type Config struct {
	ProposalThreshold *uint256.Int // minimum voting power to propose
	VotingPeriod      uint64       // seconds
	QuorumVotes       *uint256.Int // minimum for+against for the outcome to count
}

// DefaultConfig returns the governance parameters used when no explicit
// configuration is supplied.
func DefaultConfig() *Config {
	return &Config{
		ProposalThreshold: uint256.NewInt(1),
		VotingPeriod:      7 * 24 * 60 * 60, // one week
		QuorumVotes:       uint256.NewInt(1),
	}
}

func (c *Config) clone() *Config {
	return &Config{
		ProposalThreshold: c.ProposalThreshold.Clone(),
		VotingPeriod:      c.VotingPeriod,
		QuorumVotes:       c.QuorumVotes.Clone(),
	}
}
