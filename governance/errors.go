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

import "errors"

// Validation errors
var (
	ErrEmptyDescription        = errors.New("description cannot be empty")
	ErrInvalidRecipient        = errors.New("invalid recipient address")
	ErrZeroAmount              = errors.New("amount must be greater than zero")
	ErrInsufficientVotingPower = errors.New("insufficient voting power to propose")
	ErrNoVotingPower           = errors.New("no voting power")
	ErrVoteOverflow            = errors.New("vote accumulator overflow")
	ErrInvalidConfiguration    = errors.New("invalid configuration parameter")
)

// Lifecycle errors
var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrVotingNotStarted = errors.New("voting not started")
	ErrVotingEnded      = errors.New("voting ended")
	ErrVotingNotEnded   = errors.New("voting has not ended")
	ErrVotingStarted    = errors.New("voting has started")
	ErrAlreadyVoted     = errors.New("voter has already voted on this proposal")
	ErrProposalCanceled = errors.New("proposal is canceled")
	ErrProposalExecuted = errors.New("proposal already executed")
)

// Outcome errors
var (
	ErrQuorumNotReached = errors.New("quorum not reached")
	ErrNotApproved      = errors.New("proposal not approved by majority")
)

// Authorization errors
var (
	ErrNotAuthorized = errors.New("caller is not the proposer or the admin")
	ErrNotAdmin      = errors.New("caller is not the admin")
)
