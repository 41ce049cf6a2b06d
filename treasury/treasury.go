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

// Package treasury implements guarded fund custody: organizational assets
// are released only through an approve-then-spend two-step authorized by
// the registered governance engine, exactly once per proposal id.
package treasury

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"github.com/daosuite/govkit/audit"
	"github.com/daosuite/govkit/metrics"
)

// NativeAsset is the asset kind denoting the native currency.
var NativeAsset = common.Address{}

// NativeLedger is the native currency book the treasury's custody account
// lives in.
type NativeLedger interface {
	Transfer(from, to common.Address, amount *uint256.Int) error
	BalanceOf(account common.Address) *uint256.Int
}

// TokenLedger resolves fungible assets by address and moves them.
type TokenLedger interface {
	Transfer(asset, from, to common.Address, amount *uint256.Int) error
	TransferFrom(asset, spender, from, to common.Address, amount *uint256.Int) error
	BalanceOf(asset, account common.Address) *uint256.Int
}

// Treasury holds custody of organizational assets. Its approved/executed
// flags per proposal id are a second execution guard, independent of the
// governance engine's own executed flag.
type Treasury struct {
	mu sync.Mutex

	admin   common.Address
	dao     common.Address // the authorized governance engine
	custody common.Address // the treasury's account in both ledgers

	native NativeLedger
	tokens TokenLedger

	approved map[uint64]bool
	executed map[uint64]bool

	log      *logrus.Logger
	recorder audit.Recorder
	metrics  *metrics.TreasuryMetrics
}

// New creates a treasury bound to its custody account and the two asset
// ledgers. dao is the governance engine authorized to spend; it can be
// rebound later with SetDao. logger, recorder and m may be nil.
func New(admin, dao, custody common.Address, native NativeLedger, tokens TokenLedger, logger *logrus.Logger, recorder audit.Recorder, m *metrics.TreasuryMetrics) *Treasury {
	if logger == nil {
		logger = logrus.New()
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	if m == nil {
		m = metrics.NopTreasuryMetrics()
	}
	return &Treasury{
		admin:    admin,
		dao:      dao,
		custody:  custody,
		native:   native,
		tokens:   tokens,
		approved: make(map[uint64]bool),
		executed: make(map[uint64]bool),
		log:      logger,
		recorder: recorder,
		metrics:  m,
	}
}

// ApproveProposal marks a proposal id as approved for spending. Governance
// engine only; approving twice fails.
func (t *Treasury) ApproveProposal(caller common.Address, id uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if caller != t.dao {
		return ErrNotDao
	}
	if t.approved[id] {
		return ErrAlreadyApproved
	}
	t.approved[id] = true
	return nil
}

// RevokeApproval undoes an approval whose spend never happened. The engine
// calls it when SpendFunds fails after ApproveProposal succeeded, so the
// whole execution can be retried.
func (t *Treasury) RevokeApproval(caller common.Address, id uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if caller != t.dao {
		return ErrNotDao
	}
	if !t.approved[id] {
		return ErrNotApproved
	}
	if t.executed[id] {
		return ErrAlreadyExecuted
	}
	delete(t.approved, id)
	return nil
}

// SpendFunds releases the payout for an approved proposal exactly once.
// The executed flag is set before the transfer; a failed transfer rolls it
// back so the operation has no partial effect.
func (t *Treasury) SpendFunds(caller common.Address, id uint64, recipient common.Address, amount *uint256.Int, asset common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if caller != t.dao {
		return ErrNotDao
	}
	if !t.approved[id] {
		return ErrNotApproved
	}
	if t.executed[id] {
		return ErrAlreadyExecuted
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if recipient == (common.Address{}) {
		return ErrInvalidRecipient
	}
	if t.balanceOf(asset).Lt(amount) {
		return ErrInsufficientFunds
	}

	t.executed[id] = true

	var err error
	if asset == NativeAsset {
		err = t.native.Transfer(t.custody, recipient, amount)
	} else {
		err = t.tokens.Transfer(asset, t.custody, recipient, amount)
	}
	if err != nil {
		delete(t.executed, id)
		return err
	}

	t.log.WithFields(logrus.Fields{
		"id":        id,
		"recipient": recipient.Hex(),
		"amount":    amount.Dec(),
	}).Info("funds spent")
	t.recorder.Record(audit.KindFundsSpent, FundsSpentEvent{
		ID:        id,
		Recipient: recipient,
		Amount:    amount.Clone(),
		Asset:     asset,
	})
	t.metrics.Spends.Add(1)

	return nil
}

// FundTreasury moves native value from the caller into custody.
func (t *Treasury) FundTreasury(from common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := t.native.Transfer(from, t.custody, amount); err != nil {
		return err
	}

	t.recorder.Record(audit.KindTreasuryFunded, TreasuryFundedEvent{
		From:   from,
		Amount: amount.Clone(),
		Asset:  NativeAsset,
	})
	t.metrics.Deposits.Add(1)
	return nil
}

// Deposit is the unguarded native funding entry point.
func (t *Treasury) Deposit(from common.Address, amount *uint256.Int) error {
	return t.FundTreasury(from, amount)
}

// FundTreasuryWithToken moves a fungible asset from the caller into
// custody. The caller must have pre-authorized the treasury's custody
// account to spend the amount.
func (t *Treasury) FundTreasuryWithToken(from, asset common.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := t.tokens.TransferFrom(asset, t.custody, from, t.custody, amount); err != nil {
		return err
	}

	t.recorder.Record(audit.KindTreasuryFunded, TreasuryFundedEvent{
		From:   from,
		Amount: amount.Clone(),
		Asset:  asset,
	})
	t.metrics.Deposits.Add(1)
	return nil
}

// EmergencyWithdraw moves funds out of custody bypassing the governance
// approval flow. Trusted-owner escape hatch, admin only.
func (t *Treasury) EmergencyWithdraw(caller, asset common.Address, amount *uint256.Int, recipient common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if caller != t.admin {
		return ErrNotAdmin
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if recipient == (common.Address{}) {
		return ErrInvalidRecipient
	}
	if t.balanceOf(asset).Lt(amount) {
		return ErrInsufficientFunds
	}

	var err error
	if asset == NativeAsset {
		err = t.native.Transfer(t.custody, recipient, amount)
	} else {
		err = t.tokens.Transfer(asset, t.custody, recipient, amount)
	}
	if err != nil {
		return err
	}

	t.log.WithFields(logrus.Fields{
		"recipient": recipient.Hex(),
		"amount":    amount.Dec(),
	}).Warn("emergency withdrawal")
	t.recorder.Record(audit.KindEmergencyWithdrawal, EmergencyWithdrawalEvent{
		By:        caller,
		Recipient: recipient,
		Amount:    amount.Clone(),
		Asset:     asset,
	})
	t.metrics.EmergencyWithdrawals.Add(1)
	return nil
}

// SetDao rebinds which governance engine is authorized to spend. Admin
// only; the zero address is rejected.
func (t *Treasury) SetDao(caller, dao common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if caller != t.admin {
		return ErrNotAdmin
	}
	if dao == (common.Address{}) {
		return ErrInvalidDao
	}
	t.dao = dao
	return nil
}

// Dao returns the currently authorized governance engine address.
func (t *Treasury) Dao() common.Address {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dao
}

// IsApproved reports the treasury-local approved flag for a proposal id.
func (t *Treasury) IsApproved(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.approved[id]
}

// IsExecuted reports the treasury-local executed flag for a proposal id.
func (t *Treasury) IsExecuted(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.executed[id]
}

// Balance returns the custody balance of the given asset kind.
func (t *Treasury) Balance(asset common.Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balanceOf(asset)
}

func (t *Treasury) balanceOf(asset common.Address) *uint256.Int {
	if asset == NativeAsset {
		return t.native.BalanceOf(t.custody)
	}
	return t.tokens.BalanceOf(asset, t.custody)
}
