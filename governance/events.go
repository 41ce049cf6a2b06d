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

// Audit event payloads. One record per state-mutating operation.

type ProposalCreatedEvent struct {
	ID          uint64         `json:"id"`
	Proposer    common.Address `json:"proposer"`
	Recipient   common.Address `json:"recipient"`
	Amount      *uint256.Int   `json:"amount"`
	Asset       common.Address `json:"asset"`
	Description string         `json:"description"`
	StartTime   uint64         `json:"start_time"`
	EndTime     uint64         `json:"end_time"`
}

type VoteCastEvent struct {
	ID      uint64         `json:"id"`
	Voter   common.Address `json:"voter"`
	Support bool           `json:"support"`
	Weight  *uint256.Int   `json:"weight"`
}

type ProposalCanceledEvent struct {
	ID uint64         `json:"id"`
	By common.Address `json:"by"`
}

type ProposalExecutedEvent struct {
	ID        uint64         `json:"id"`
	By        common.Address `json:"by"`
	Recipient common.Address `json:"recipient"`
	Amount    *uint256.Int   `json:"amount"`
	Asset     common.Address `json:"asset"`
}

type ConfigUpdatedEvent struct {
	By                common.Address `json:"by"`
	ProposalThreshold *uint256.Int   `json:"proposal_threshold"`
	VotingPeriod      uint64         `json:"voting_period"`
	QuorumVotes       *uint256.Int   `json:"quorum_votes"`
}
