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

package repo

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/daosuite/govkit/governance"
)

type Config struct {
	RepoRoot string `mapstructure:"-" toml:"-"`
	// Admin is the administrator identity for privileged operations.
	Admin string `mapstructure:"admin" toml:"admin"`
	// EngineAddress is the identity the governance engine presents to the
	// treasury.
	EngineAddress string `mapstructure:"engine_address" toml:"engine_address"`
	// TreasuryAddress is the custody account holding organizational assets.
	TreasuryAddress string `mapstructure:"treasury_address" toml:"treasury_address"`
	// GovTokenAddress is the asset address of the governance token.
	GovTokenAddress string `mapstructure:"gov_token_address" toml:"gov_token_address"`

	Governance Governance `mapstructure:"governance" toml:"governance"`
	API        API        `mapstructure:"api" toml:"api"`
	Log        Log        `mapstructure:"log" toml:"log"`
}

type Governance struct {
	// ProposalThreshold is the minimum voting power to propose, as a
	// decimal string.
	ProposalThreshold string `mapstructure:"proposal_threshold" toml:"proposal_threshold"`
	// VotingPeriod is the voting window length in seconds.
	VotingPeriod uint64 `mapstructure:"voting_period" toml:"voting_period"`
	// QuorumVotes is the minimum total votes to count, as a decimal string.
	QuorumVotes string `mapstructure:"quorum_votes" toml:"quorum_votes"`
}

type API struct {
	ListenAddr string `mapstructure:"listen_addr" toml:"listen_addr"`
}

type Log struct {
	Level string `mapstructure:"level" toml:"level"`
}

func DefaultConfig(repoRoot string) *Config {
	return &Config{
		RepoRoot:        repoRoot,
		Admin:           "0x0000000000000000000000000000000000000001",
		EngineAddress:   "0x0000000000000000000000000000000000001001",
		TreasuryAddress: "0x0000000000000000000000000000000000001002",
		GovTokenAddress: "0x0000000000000000000000000000000000002001",
		Governance: Governance{
			ProposalThreshold: "1000",
			VotingPeriod:      7 * 24 * 60 * 60,
			QuorumVotes:       "10000",
		},
		API: API{
			ListenAddr: "127.0.0.1:8546",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Parse converts the string-typed governance parameters into the engine's
// configuration.
func (g Governance) Parse() (*governance.Config, error) {
	threshold, err := uint256.FromDecimal(g.ProposalThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "invalid proposal_threshold")
	}
	quorum, err := uint256.FromDecimal(g.QuorumVotes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid quorum_votes")
	}
	return &governance.Config{
		ProposalThreshold: threshold,
		VotingPeriod:      g.VotingPeriod,
		QuorumVotes:       quorum,
	}, nil
}

// ParseAddress validates and decodes a hex address from the config.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("invalid address: %q", s)
	}
	return common.HexToAddress(s), nil
}
