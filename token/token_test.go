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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner   = common.HexToAddress("0x0000000000000000000000000000000000000001")
	alice   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	bob     = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	carol   = common.HexToAddress("0x00000000000000000000000000000000000000cc")
	spender = common.HexToAddress("0x00000000000000000000000000000000000000dd")
)

func newTestToken(t *testing.T) *Token {
	tok := NewToken("Governance Token", "GOV", owner)
	require.NoError(t, tok.Mint(owner, alice, uint256.NewInt(1000)))
	return tok
}

func TestMint(t *testing.T) {
	tok := NewToken("Governance Token", "GOV", owner)

	require.NoError(t, tok.Mint(owner, alice, uint256.NewInt(500)))
	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(500)))
	assert.True(t, tok.TotalSupply().Eq(uint256.NewInt(500)))

	assert.Equal(t, ErrNotOwner, tok.Mint(alice, alice, uint256.NewInt(1)))
	assert.Equal(t, ErrInvalidAccount, tok.Mint(owner, common.Address{}, uint256.NewInt(1)))
	assert.Equal(t, ErrZeroAmount, tok.Mint(owner, alice, uint256.NewInt(0)))
}

func TestMint_SupplyOverflow(t *testing.T) {
	tok := NewToken("Governance Token", "GOV", owner)
	max := new(uint256.Int).SetAllOne()

	require.NoError(t, tok.Mint(owner, alice, max))
	assert.Equal(t, ErrSupplyOverflow, tok.Mint(owner, bob, uint256.NewInt(1)))
	// nothing was credited
	assert.True(t, tok.BalanceOf(bob).IsZero())
}

func TestBurn(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Burn(alice, uint256.NewInt(400)))
	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(600)))
	assert.True(t, tok.TotalSupply().Eq(uint256.NewInt(600)))

	assert.Equal(t, ErrInsufficientBalance, tok.Burn(alice, uint256.NewInt(601)))
	assert.Equal(t, ErrZeroAmount, tok.Burn(alice, uint256.NewInt(0)))
}

func TestTransfer(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Transfer(alice, bob, uint256.NewInt(300)))
	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(700)))
	assert.True(t, tok.BalanceOf(bob).Eq(uint256.NewInt(300)))

	assert.Equal(t, ErrInsufficientBalance, tok.Transfer(alice, bob, uint256.NewInt(701)))
	assert.Equal(t, ErrInvalidAccount, tok.Transfer(alice, common.Address{}, uint256.NewInt(1)))
	assert.Equal(t, ErrZeroAmount, tok.Transfer(alice, bob, uint256.NewInt(0)))
}

func TestTransferFrom(t *testing.T) {
	tok := newTestToken(t)

	// no allowance yet
	assert.Equal(t, ErrInsufficientAllowance, tok.TransferFrom(spender, alice, bob, uint256.NewInt(100)))

	require.NoError(t, tok.Approve(alice, spender, uint256.NewInt(250)))
	assert.True(t, tok.Allowance(alice, spender).Eq(uint256.NewInt(250)))

	require.NoError(t, tok.TransferFrom(spender, alice, bob, uint256.NewInt(100)))
	assert.True(t, tok.BalanceOf(bob).Eq(uint256.NewInt(100)))
	// allowance is consumed, not reset
	assert.True(t, tok.Allowance(alice, spender).Eq(uint256.NewInt(150)))

	assert.Equal(t, ErrInsufficientAllowance, tok.TransferFrom(spender, alice, bob, uint256.NewInt(151)))
}

func TestDelegate(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Delegate(alice, bob, uint256.NewInt(400)))

	// voting power follows the balance
	assert.True(t, tok.GetVotingPower(alice).Eq(uint256.NewInt(600)))
	assert.True(t, tok.GetVotingPower(bob).Eq(uint256.NewInt(400)))

	d, ok := tok.DelegateOf(alice)
	require.True(t, ok)
	assert.Equal(t, bob, d)
	assert.True(t, tok.DelegatedAmount(bob).Eq(uint256.NewInt(400)))
}

func TestDelegate_Validation(t *testing.T) {
	tok := newTestToken(t)

	assert.Equal(t, ErrInvalidDelegate, tok.Delegate(alice, common.Address{}, uint256.NewInt(1)))
	assert.Equal(t, ErrSelfDelegation, tok.Delegate(alice, alice, uint256.NewInt(1)))
	assert.Equal(t, ErrZeroAmount, tok.Delegate(alice, bob, uint256.NewInt(0)))
	assert.Equal(t, ErrInsufficientBalance, tok.Delegate(alice, bob, uint256.NewInt(1001)))
}

func TestDelegate_OverwritesPriorDelegate(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Delegate(alice, bob, uint256.NewInt(300)))
	require.NoError(t, tok.Delegate(alice, carol, uint256.NewInt(200)))

	// the edge points at the latest delegate; both accumulators remain
	d, ok := tok.DelegateOf(alice)
	require.True(t, ok)
	assert.Equal(t, carol, d)
	assert.True(t, tok.DelegatedAmount(bob).Eq(uint256.NewInt(300)))
	assert.True(t, tok.DelegatedAmount(carol).Eq(uint256.NewInt(200)))
	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(500)))
}

func TestUndelegate(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Delegate(alice, bob, uint256.NewInt(400)))
	require.NoError(t, tok.Undelegate(alice, uint256.NewInt(150)))

	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(750)))
	assert.True(t, tok.BalanceOf(bob).Eq(uint256.NewInt(250)))
	assert.True(t, tok.DelegatedAmount(bob).Eq(uint256.NewInt(250)))

	// the relation survives a partial undelegation
	_, ok := tok.DelegateOf(alice)
	assert.True(t, ok)
}

func TestUndelegate_RoundTripRestoresBalances(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Delegate(alice, bob, uint256.NewInt(400)))
	require.NoError(t, tok.Undelegate(alice, uint256.NewInt(400)))

	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(1000)))
	assert.True(t, tok.BalanceOf(bob).IsZero())

	// at exactly zero the relation is cleared
	_, ok := tok.DelegateOf(alice)
	assert.False(t, ok)
	assert.True(t, tok.DelegatedAmount(bob).IsZero())
}

func TestUndelegate_Guards(t *testing.T) {
	tok := newTestToken(t)

	assert.Equal(t, ErrNoDelegation, tok.Undelegate(alice, uint256.NewInt(1)))

	require.NoError(t, tok.Delegate(alice, bob, uint256.NewInt(100)))
	assert.Equal(t, ErrZeroAmount, tok.Undelegate(alice, uint256.NewInt(0)))
	assert.Equal(t, ErrInsufficientDelegated, tok.Undelegate(alice, uint256.NewInt(101)))
}

func TestGetVotingPower(t *testing.T) {
	tok := newTestToken(t)

	assert.True(t, tok.GetVotingPower(alice).Eq(uint256.NewInt(1000)))
	assert.True(t, tok.GetVotingPower(bob).IsZero())

	// a plain transfer moves power just like delegation does
	require.NoError(t, tok.Transfer(alice, bob, uint256.NewInt(1000)))
	assert.True(t, tok.GetVotingPower(alice).IsZero())
	assert.True(t, tok.GetVotingPower(bob).Eq(uint256.NewInt(1000)))
}

func TestRegistry(t *testing.T) {
	tok := newTestToken(t)
	asset := common.HexToAddress("0x0000000000000000000000000000000000002001")
	unknown := common.HexToAddress("0x0000000000000000000000000000000000002002")

	reg := NewRegistry()
	reg.Register(asset, tok)

	got, ok := reg.Lookup(asset)
	require.True(t, ok)
	assert.Equal(t, tok, got)

	require.NoError(t, reg.Transfer(asset, alice, bob, uint256.NewInt(100)))
	assert.True(t, reg.BalanceOf(asset, bob).Eq(uint256.NewInt(100)))

	assert.Equal(t, ErrUnknownAsset, reg.Transfer(unknown, alice, bob, uint256.NewInt(1)))
	assert.Equal(t, ErrUnknownAsset, reg.TransferFrom(unknown, spender, alice, bob, uint256.NewInt(1)))
	assert.True(t, reg.BalanceOf(unknown, alice).IsZero())
}

func TestBank(t *testing.T) {
	bank := NewBank()

	require.NoError(t, bank.Deposit(alice, uint256.NewInt(500)))
	assert.True(t, bank.BalanceOf(alice).Eq(uint256.NewInt(500)))

	require.NoError(t, bank.Transfer(alice, bob, uint256.NewInt(200)))
	assert.True(t, bank.BalanceOf(alice).Eq(uint256.NewInt(300)))
	assert.True(t, bank.BalanceOf(bob).Eq(uint256.NewInt(200)))

	assert.Equal(t, ErrInsufficientBalance, bank.Transfer(alice, bob, uint256.NewInt(301)))
	assert.Equal(t, ErrInvalidAccount, bank.Deposit(common.Address{}, uint256.NewInt(1)))
	assert.Equal(t, ErrZeroAmount, bank.Transfer(alice, bob, uint256.NewInt(0)))
	assert.True(t, bank.BalanceOf(carol).IsZero())
}

func TestBank_SelfTransfer(t *testing.T) {
	bank := NewBank()
	require.NoError(t, bank.Deposit(alice, uint256.NewInt(500)))

	// moving value to the same account must not change the balance
	require.NoError(t, bank.Transfer(alice, alice, uint256.NewInt(100)))
	assert.True(t, bank.BalanceOf(alice).Eq(uint256.NewInt(500)))

	// the balance check still applies
	assert.Equal(t, ErrInsufficientBalance, bank.Transfer(alice, alice, uint256.NewInt(501)))
	assert.True(t, bank.BalanceOf(alice).Eq(uint256.NewInt(500)))
}

func TestToken_SelfTransfer(t *testing.T) {
	tok := newTestToken(t)

	require.NoError(t, tok.Transfer(alice, alice, uint256.NewInt(100)))
	assert.True(t, tok.BalanceOf(alice).Eq(uint256.NewInt(1000)))
	assert.True(t, tok.TotalSupply().Eq(uint256.NewInt(1000)))
}
