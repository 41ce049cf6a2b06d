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

package treasury

import "errors"

var (
	ErrNotDao            = errors.New("caller is not the governance engine")
	ErrNotAdmin          = errors.New("caller is not the admin")
	ErrAlreadyApproved   = errors.New("proposal already approved")
	ErrNotApproved       = errors.New("proposal not approved")
	ErrAlreadyExecuted   = errors.New("proposal already executed")
	ErrZeroAmount        = errors.New("amount must be greater than zero")
	ErrInvalidRecipient  = errors.New("invalid recipient address")
	ErrInsufficientFunds = errors.New("insufficient treasury balance")
	ErrInvalidDao        = errors.New("invalid governance engine address")
)
