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

package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// GetVotingPower returns the account's current voting power. Delegation
// moves the underlying balance, so the balance is already
// delegation-adjusted.
func (t *Token) GetVotingPower(account common.Address) *uint256.Int {
	return t.BalanceOf(account)
}

// Delegate moves amount of the caller's balance to the delegate and records
// the delegation edge. A prior delegate for the caller is overwritten, not
// merged; the new delegate's received accumulator is incremented.
func (t *Token) Delegate(from, delegate common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if delegate == (common.Address{}) {
		return ErrInvalidDelegate
	}
	if delegate == from {
		return ErrSelfDelegation
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}

	received, ok := t.delegated[delegate]
	if !ok {
		received = new(uint256.Int)
	}
	sum, overflow := new(uint256.Int).AddOverflow(received, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	if err := t.move(from, delegate, amount); err != nil {
		return err
	}

	t.delegates[from] = delegate
	received.Set(sum)
	t.delegated[delegate] = received
	return nil
}

// Undelegate transfers amount back from the caller's active delegate and
// decrements the delegate's received accumulator, clearing the relation
// when it reaches exactly zero.
func (t *Token) Undelegate(from common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delegate, ok := t.delegates[from]
	if !ok {
		return ErrNoDelegation
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	received := t.delegated[delegate]
	if received == nil || received.Lt(amount) {
		return ErrInsufficientDelegated
	}
	if err := t.move(delegate, from, amount); err != nil {
		return err
	}

	received.Sub(received, amount)
	if received.IsZero() {
		delete(t.delegated, delegate)
		delete(t.delegates, from)
	}
	return nil
}

// DelegateOf returns the account's active delegate, if any.
func (t *Token) DelegateOf(account common.Address) (common.Address, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.delegates[account]
	return d, ok
}

// DelegatedAmount returns the total amount delegated to the given delegate.
func (t *Token) DelegatedAmount(delegate common.Address) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if d, ok := t.delegated[delegate]; ok {
		return d.Clone()
	}
	return new(uint256.Int)
}
