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

package governance_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/daosuite/govkit/governance"
	"github.com/daosuite/govkit/token"
	"github.com/daosuite/govkit/treasury"
)

// fakeClock drives proposal windows deterministically.
type fakeClock struct{ now uint64 }

func (c *fakeClock) Now() uint64 { return c.now }

type fixture struct {
	engine *governance.Engine
	treas  *treasury.Treasury
	gov    *token.Token
	bank   *token.Bank
	clock  *fakeClock

	admin   common.Address
	custody common.Address
}

// newFixture stands up the full stack: governance token with a one million
// supply, a treasury holding ten thousand native units, and an engine wired
// to both.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	admin := common.HexToAddress("0x0000000000000000000000000000000000000001")
	engineAddr := common.HexToAddress("0x0000000000000000000000000000000000001001")
	custody := common.HexToAddress("0x0000000000000000000000000000000000001002")
	govTokenAddr := common.HexToAddress("0x0000000000000000000000000000000000002001")

	gov := token.NewToken("Governance Token", "GOV", admin)
	if err := gov.Mint(admin, admin, uint256.NewInt(1_000_000)); err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	registry := token.NewRegistry()
	registry.Register(govTokenAddr, gov)
	bank := token.NewBank()
	if err := bank.Deposit(custody, uint256.NewInt(10_000)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	treas := treasury.New(admin, engineAddr, custody, bank, registry, nil, nil, nil)

	clock := &fakeClock{now: 1_700_000_000}
	cfg := &governance.Config{
		ProposalThreshold: uint256.NewInt(10_000),
		VotingPeriod:      3600,
		QuorumVotes:       uint256.NewInt(100_000),
	}
	engine := governance.NewEngine(admin, engineAddr, cfg, gov, treas, clock, nil, nil, nil)

	return &fixture{
		engine:  engine,
		treas:   treas,
		gov:     gov,
		bank:    bank,
		clock:   clock,
		admin:   admin,
		custody: custody,
	}
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)

	proposer := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	voter1 := common.HexToAddress("0x00000000000000000000000000000000000000a2")
	voter2 := common.HexToAddress("0x00000000000000000000000000000000000000a3")
	payee := common.HexToAddress("0x00000000000000000000000000000000000000a4")

	// distribute governance tokens
	for addr, amount := range map[common.Address]uint64{
		proposer: 50_000,
		voter1:   120_000,
		voter2:   80_000,
	} {
		if err := f.gov.Transfer(f.admin, addr, uint256.NewInt(amount)); err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}
	}

	id, err := f.engine.CreateProposal(proposer, "grant for infrastructure work", payee, uint256.NewInt(2_500), governance.NativeAsset)
	if err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	if err := f.engine.Vote(voter1, id, true); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if err := f.engine.Vote(voter2, id, false); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	// 200k cast, quorum of 100k met, 120k for beats 80k against
	f.clock.now += 3600
	if !f.engine.ProposalPassed(id) {
		t.Fatalf("proposal should pass")
	}
	if err := f.engine.ExecuteProposal(proposer, id); err != nil {
		t.Fatalf("ExecuteProposal failed: %v", err)
	}

	if got := f.bank.BalanceOf(payee); !got.Eq(uint256.NewInt(2_500)) {
		t.Errorf("payee balance: expected 2500, got %s", got.Dec())
	}
	if got := f.treas.Balance(governance.NativeAsset); !got.Eq(uint256.NewInt(7_500)) {
		t.Errorf("custody balance: expected 7500, got %s", got.Dec())
	}
	if !f.treas.IsExecuted(id) {
		t.Errorf("treasury should record the spend")
	}

	// both guards hold on a second attempt
	if err := f.engine.ExecuteProposal(proposer, id); err != governance.ErrProposalExecuted {
		t.Errorf("expected ErrProposalExecuted, got %v", err)
	}
}

func TestMajorityAgainstLeavesFundsUntouched(t *testing.T) {
	f := newFixture(t)

	proposer := common.HexToAddress("0x00000000000000000000000000000000000000b1")
	voter := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	payee := common.HexToAddress("0x00000000000000000000000000000000000000b3")

	if err := f.gov.Transfer(f.admin, proposer, uint256.NewInt(50_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := f.gov.Transfer(f.admin, voter, uint256.NewInt(150_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	id, err := f.engine.CreateProposal(proposer, "contested spending", payee, uint256.NewInt(1_000), governance.NativeAsset)
	if err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	// quorum is met by against votes alone but the majority fails
	if err := f.engine.Vote(voter, id, false); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	f.clock.now += 3600
	if f.engine.ProposalPassed(id) {
		t.Errorf("proposal must not pass")
	}
	if err := f.engine.ExecuteProposal(proposer, id); err != governance.ErrNotApproved {
		t.Errorf("expected ErrNotApproved, got %v", err)
	}

	if got := f.treas.Balance(governance.NativeAsset); !got.Eq(uint256.NewInt(10_000)) {
		t.Errorf("custody balance must be untouched, got %s", got.Dec())
	}
	if got := f.bank.BalanceOf(payee); !got.IsZero() {
		t.Errorf("payee must receive nothing, got %s", got.Dec())
	}
}

func TestCanceledProposalRejectsVotes(t *testing.T) {
	f := newFixture(t)

	proposer := common.HexToAddress("0x00000000000000000000000000000000000000c1")
	voter := common.HexToAddress("0x00000000000000000000000000000000000000c2")
	payee := common.HexToAddress("0x00000000000000000000000000000000000000c3")

	if err := f.gov.Transfer(f.admin, proposer, uint256.NewInt(50_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := f.gov.Transfer(f.admin, voter, uint256.NewInt(150_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	created := f.clock.now
	id, err := f.engine.CreateProposal(proposer, "withdrawn proposal", payee, uint256.NewInt(1_000), governance.NativeAsset)
	if err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	// the proposer withdraws before the window opens
	f.clock.now = created - 1
	if err := f.engine.CancelProposal(proposer, id); err != nil {
		t.Fatalf("CancelProposal failed: %v", err)
	}

	// inside what would have been the window the rejection names the
	// cancellation, not timing
	f.clock.now = created + 100
	if err := f.engine.Vote(voter, id, true); err != governance.ErrProposalCanceled {
		t.Errorf("expected ErrProposalCanceled, got %v", err)
	}

	f.clock.now = created + 3600
	if err := f.engine.ExecuteProposal(proposer, id); err != governance.ErrProposalCanceled {
		t.Errorf("expected ErrProposalCanceled, got %v", err)
	}

	p, err := f.engine.GetProposal(id)
	if err != nil {
		t.Fatalf("GetProposal failed: %v", err)
	}
	if p.State(f.clock.Now()) != governance.StateCanceled {
		t.Errorf("expected canceled state, got %s", p.State(f.clock.Now()))
	}
}

func TestDelegatedPowerCountsAtVoteTime(t *testing.T) {
	f := newFixture(t)

	proposer := common.HexToAddress("0x00000000000000000000000000000000000000d1")
	delegator := common.HexToAddress("0x00000000000000000000000000000000000000d2")
	delegate := common.HexToAddress("0x00000000000000000000000000000000000000d3")
	payee := common.HexToAddress("0x00000000000000000000000000000000000000d4")

	if err := f.gov.Transfer(f.admin, proposer, uint256.NewInt(50_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := f.gov.Transfer(f.admin, delegator, uint256.NewInt(90_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := f.gov.Transfer(f.admin, delegate, uint256.NewInt(20_000)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	id, err := f.engine.CreateProposal(proposer, "delegated support", payee, uint256.NewInt(1_000), governance.NativeAsset)
	if err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	// delegation after creation still counts: power snapshots at vote time
	if err := f.gov.Delegate(delegator, delegate, uint256.NewInt(90_000)); err != nil {
		t.Fatalf("Delegate failed: %v", err)
	}
	if err := f.engine.Vote(delegate, id, true); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	p, err := f.engine.GetProposal(id)
	if err != nil {
		t.Fatalf("GetProposal failed: %v", err)
	}
	if !p.ForVotes.Eq(uint256.NewInt(110_000)) {
		t.Errorf("expected 110000 for votes, got %s", p.ForVotes.Dec())
	}

	// the delegator has no power left to vote with
	if err := f.engine.Vote(delegator, id, true); err != governance.ErrNoVotingPower {
		t.Errorf("expected ErrNoVotingPower, got %v", err)
	}

	f.clock.now += 3600
	if err := f.engine.ExecuteProposal(delegate, id); err != nil {
		t.Fatalf("ExecuteProposal failed: %v", err)
	}
}
