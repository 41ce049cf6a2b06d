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

import "errors"

var (
	ErrNotOwner              = errors.New("caller is not the token owner")
	ErrZeroAmount            = errors.New("amount must be greater than zero")
	ErrInvalidAccount        = errors.New("invalid account address")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrBalanceOverflow       = errors.New("balance overflow")
	ErrSupplyOverflow        = errors.New("total supply overflow")
	ErrUnknownAsset          = errors.New("unknown asset")
)

// Delegation errors
var (
	ErrInvalidDelegate       = errors.New("invalid delegate address")
	ErrSelfDelegation        = errors.New("cannot delegate to self")
	ErrNoDelegation          = errors.New("no active delegation")
	ErrInsufficientDelegated = errors.New("insufficient delegated amount")
)
