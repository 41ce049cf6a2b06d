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

// Registry maps asset addresses to token ledgers. The treasury uses it to
// resolve the asset kind of a payout instruction.
type Registry struct {
	mu     sync.RWMutex
	tokens map[common.Address]*Token
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[common.Address]*Token)}
}

// Register binds a token ledger to an asset address.
func (r *Registry) Register(asset common.Address, t *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[asset] = t
}

// Lookup returns the ledger registered under the asset address.
func (r *Registry) Lookup(asset common.Address) (*Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[asset]
	return t, ok
}

// Transfer moves amount of the asset between accounts.
func (r *Registry) Transfer(asset, from, to common.Address, amount *uint256.Int) error {
	t, ok := r.Lookup(asset)
	if !ok {
		return ErrUnknownAsset
	}
	return t.Transfer(from, to, amount)
}

// TransferFrom moves amount of the asset on behalf of spender, consuming
// allowance.
func (r *Registry) TransferFrom(asset, spender, from, to common.Address, amount *uint256.Int) error {
	t, ok := r.Lookup(asset)
	if !ok {
		return ErrUnknownAsset
	}
	return t.TransferFrom(spender, from, to, amount)
}

// BalanceOf returns the account's balance of the asset, zero for unknown
// assets.
func (r *Registry) BalanceOf(asset, account common.Address) *uint256.Int {
	t, ok := r.Lookup(asset)
	if !ok {
		return new(uint256.Int)
	}
	return t.BalanceOf(account)
}
