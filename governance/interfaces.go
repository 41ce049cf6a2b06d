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
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// VotingPowerProvider answers how much voting power an account has right
// now. The returned value reflects delegation, since delegating moves the
// underlying asset to the delegate's balance.
type VotingPowerProvider interface {
	// GetVotingPower returns the account's current voting power.
	GetVotingPower(account common.Address) *uint256.Int
}

// Treasury is the guarded custody component the engine instructs after a
// proposal passes. Every method authenticates the caller against the
// registered governance engine address.
type Treasury interface {
	// ApproveProposal marks the proposal id as approved for spending.
	ApproveProposal(caller common.Address, id uint64) error

	// SpendFunds releases the approved payout exactly once per proposal id.
	SpendFunds(caller common.Address, id uint64, recipient common.Address, amount *uint256.Int, asset common.Address) error

	// RevokeApproval undoes an approval whose spend never happened. The
	// engine uses it to roll back when SpendFunds fails after
	// ApproveProposal succeeded, keeping ExecuteProposal all-or-nothing.
	RevokeApproval(caller common.Address, id uint64) error
}

// Clock is the single external time source. Every window check within one
// operation uses one Now reading.
type Clock interface {
	// Now returns the current time as unix seconds.
	Now() uint64
}

// SystemClock reads the host wall clock.
type SystemClock struct{}

// Now returns the current unix time in seconds.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
