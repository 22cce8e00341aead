// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis defines the initial ledger content of a network: the
// protocol config and the token mints vaults can accept.
package genesis

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/vault"
)

// Genesis is the user supplied network definition.
type Genesis struct {
	// LaunchTime is the unix time of slot zero.
	LaunchTime uint64 `yaml:"launchTime"`
	// SlotDuration overrides the node's slot duration when set.
	SlotDuration time.Duration `yaml:"slotDuration"`
	Config       Config        `yaml:"config"`
	Mints        []Mint        `yaml:"mints"`
}

// Config holds the protocol parameters.
type Config struct {
	Admin            restake.Pubkey `yaml:"admin"`
	EpochLength      uint64         `yaml:"epochLength"`
	ProgramFeeBps    uint16         `yaml:"programFeeBps"`
	ProgramFeeWallet restake.Pubkey `yaml:"programFeeWallet"`
	// FeeCapBps overrides the deposit and withdrawal fee cap when set.
	FeeCapBps *uint16 `yaml:"feeCapBps"`
	// FeeRateOfChangeBps and FeeBumpBps override the fee step limits when set.
	FeeRateOfChangeBps *uint16 `yaml:"feeRateOfChangeBps"`
	FeeBumpBps         *uint16 `yaml:"feeBumpBps"`
}

// Mint is a token mint created at genesis.
type Mint struct {
	Address   restake.Pubkey `yaml:"address"`
	Authority restake.Pubkey `yaml:"authority"`
	Decimals  uint8          `yaml:"decimals"`
	Balances  []Balance      `yaml:"balances"`
}

type Balance struct {
	Owner  restake.Pubkey `yaml:"owner"`
	Amount uint64         `yaml:"amount"`
}

// Load reads a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Parse decodes and validates a YAML genesis.
func Parse(data []byte) (*Genesis, error) {
	var g Genesis
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Validate checks the parameters the protocol would reject.
func (g *Genesis) Validate() error {
	c := g.Config
	if c.Admin.IsZero() {
		return errors.New("genesis: config admin is required")
	}
	if c.EpochLength == 0 {
		return errors.New("genesis: epochLength must be positive")
	}
	if uint64(c.ProgramFeeBps) > restake.MaxBPS {
		return errors.Errorf("genesis: programFeeBps %d exceeds %d", c.ProgramFeeBps, restake.MaxBPS)
	}
	if c.FeeCapBps != nil && uint64(*c.FeeCapBps) > restake.MaxBPS {
		return errors.Errorf("genesis: feeCapBps %d exceeds %d", *c.FeeCapBps, restake.MaxBPS)
	}
	seen := make(map[restake.Pubkey]bool)
	for _, m := range g.Mints {
		if m.Address.IsZero() {
			return errors.New("genesis: mint address is required")
		}
		if seen[m.Address] {
			return errors.Errorf("genesis: duplicate mint %v", m.Address)
		}
		seen[m.Address] = true
	}
	return nil
}

// VaultConfig returns the protocol config account to create.
func (g *Genesis) VaultConfig() *vault.Config {
	c := g.Config
	cfg := vault.NewConfig(c.Admin, c.EpochLength, c.ProgramFeeBps, c.ProgramFeeWallet)
	if c.FeeCapBps != nil {
		cfg.DepositWithdrawalFeeCapBps = *c.FeeCapBps
	}
	if c.FeeRateOfChangeBps != nil {
		cfg.FeeRateOfChangeBps = *c.FeeRateOfChangeBps
	}
	if c.FeeBumpBps != nil {
		cfg.FeeBumpBps = *c.FeeBumpBps
	}
	return cfg
}

// Builder returns the builder of this genesis.
func (g *Genesis) Builder() *Builder {
	b := new(Builder).Config(g.VaultConfig())
	for _, m := range g.Mints {
		b.Mint(m)
	}
	return b
}

// Build initializes an empty ledger. See Builder.Build.
func (g *Genesis) Build(l *ledger.Ledger) (bool, error) {
	return g.Builder().Build(l)
}

// LaunchAt returns the launch time.
func (g *Genesis) LaunchAt() time.Time {
	return time.Unix(int64(g.LaunchTime), 0) // #nosec G115
}
