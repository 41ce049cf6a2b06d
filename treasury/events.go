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

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type FundsSpentEvent struct {
	ID        uint64         `json:"id"`
	Recipient common.Address `json:"recipient"`
	Amount    *uint256.Int   `json:"amount"`
	Asset     common.Address `json:"asset"`
}

type TreasuryFundedEvent struct {
	From   common.Address `json:"from"`
	Amount *uint256.Int   `json:"amount"`
	Asset  common.Address `json:"asset"`
}

type EmergencyWithdrawalEvent struct {
	By        common.Address `json:"by"`
	Recipient common.Address `json:"recipient"`
	Amount    *uint256.Int   `json:"amount"`
	Asset     common.Address `json:"asset"`
}
