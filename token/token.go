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

// Package token implements the voting-power provider: a fungible asset
// ledger with allowance-checked transfers, owner-controlled supply, and the
// delegation registry that moves voting weight between accounts.
package token

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Token is a fungible asset ledger. All amounts are unsigned 256-bit
// integers; arithmetic that would wrap is rejected.
type Token struct {
	mu sync.RWMutex

	name   string
	symbol string
	owner  common.Address

	totalSupply *uint256.Int
	balances    map[common.Address]*uint256.Int
	allowances  map[allowanceKey]*uint256.Int

	// delegation bookkeeping: one active delegate per delegator, plus the
	// total amount each delegate has received
	delegates map[common.Address]common.Address
	delegated map[common.Address]*uint256.Int
}

type allowanceKey struct {
	owner   common.Address
	spender common.Address
}

// NewToken creates an empty ledger. owner may mint.
func NewToken(name, symbol string, owner common.Address) *Token {
	return &Token{
		name:        name,
		symbol:      symbol,
		owner:       owner,
		totalSupply: new(uint256.Int),
		balances:    make(map[common.Address]*uint256.Int),
		allowances:  make(map[allowanceKey]*uint256.Int),
		delegates:   make(map[common.Address]common.Address),
		delegated:   make(map[common.Address]*uint256.Int),
	}
}

// Name returns the token name.
func (t *Token) Name() string { return t.name }

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return t.symbol }

// TotalSupply returns the current total supply.
func (t *Token) TotalSupply() *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalSupply.Clone()
}

// BalanceOf returns the account's current balance.
func (t *Token) BalanceOf(account common.Address) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balanceOf(account)
}

// Allowance returns the amount spender may move from owner.
func (t *Token) Allowance(owner, spender common.Address) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if a, ok := t.allowances[allowanceKey{owner: owner, spender: spender}]; ok {
		return a.Clone()
	}
	return new(uint256.Int)
}

// Mint credits new supply to an account. Owner only.
func (t *Token) Mint(caller, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if caller != t.owner {
		return ErrNotOwner
	}
	if to == (common.Address{}) {
		return ErrInvalidAccount
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	supply, overflow := new(uint256.Int).AddOverflow(t.totalSupply, amount)
	if overflow {
		return ErrSupplyOverflow
	}
	if err := t.credit(to, amount); err != nil {
		return err
	}
	t.totalSupply = supply
	return nil
}

// Burn destroys the caller's own balance and reduces the total supply.
func (t *Token) Burn(caller common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := t.debit(caller, amount); err != nil {
		return err
	}
	t.totalSupply.Sub(t.totalSupply, amount)
	return nil
}

// Transfer moves amount from the caller to another account.
func (t *Token) Transfer(from, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.move(from, to, amount)
}

// Approve authorizes spender to move up to amount from owner.
func (t *Token) Approve(owner, spender common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if spender == (common.Address{}) {
		return ErrInvalidAccount
	}
	if amount == nil {
		return ErrZeroAmount
	}
	t.allowances[allowanceKey{owner: owner, spender: spender}] = amount.Clone()
	return nil
}

// TransferFrom moves amount from `from` to `to` on behalf of spender,
// consuming allowance.
func (t *Token) TransferFrom(spender, from, to common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	key := allowanceKey{owner: from, spender: spender}
	allowance, ok := t.allowances[key]
	if !ok || allowance.Lt(amount) {
		return ErrInsufficientAllowance
	}
	if err := t.move(from, to, amount); err != nil {
		return err
	}
	allowance.Sub(allowance, amount)
	return nil
}

func (t *Token) balanceOf(account common.Address) *uint256.Int {
	if b, ok := t.balances[account]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

// move transfers balance between accounts; caller holds the lock.
func (t *Token) move(from, to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return ErrInvalidAccount
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := t.debit(from, amount); err != nil {
		return err
	}
	if err := t.credit(to, amount); err != nil {
		// debit cannot be left dangling
		t.credit(from, amount)
		return err
	}
	return nil
}

func (t *Token) debit(account common.Address, amount *uint256.Int) error {
	balance, ok := t.balances[account]
	if !ok || balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, amount)
	return nil
}

func (t *Token) credit(account common.Address, amount *uint256.Int) error {
	balance, ok := t.balances[account]
	if !ok {
		t.balances[account] = amount.Clone()
		return nil
	}
	sum, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	balance.Set(sum)
	return nil
}
