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
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Bank is the native currency book: per-account balances with direct value
// transfers. Deposit credits externally arriving value into an account.
type Bank struct {
	mu       sync.RWMutex
	balances map[common.Address]*uint256.Int
}

// NewBank returns an empty native currency book.
func NewBank() *Bank {
	return &Bank{balances: make(map[common.Address]*uint256.Int)}
}

// Deposit credits incoming native value to the account.
func (b *Bank) Deposit(account common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if account == (common.Address{}) {
		return ErrInvalidAccount
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	return b.credit(account, amount)
}

// Transfer moves native value between accounts. Debit runs before credit so
// a transfer to the same account is a no-op on the balance.
func (b *Bank) Transfer(from, to common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if to == (common.Address{}) {
		return ErrInvalidAccount
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := b.debit(from, amount); err != nil {
		return err
	}
	if err := b.credit(to, amount); err != nil {
		// debit cannot be left dangling
		b.credit(from, amount)
		return err
	}
	return nil
}

func (b *Bank) debit(account common.Address, amount *uint256.Int) error {
	balance, ok := b.balances[account]
	if !ok || balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, amount)
	return nil
}

func (b *Bank) credit(account common.Address, amount *uint256.Int) error {
	balance, ok := b.balances[account]
	if !ok {
		b.balances[account] = amount.Clone()
		return nil
	}
	sum, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	balance.Set(sum)
	return nil
}

// BalanceOf returns the account's native balance.
func (b *Bank) BalanceOf(account common.Address) *uint256.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if bal, ok := b.balances[account]; ok {
		return bal.Clone()
	}
	return new(uint256.Int)
}
