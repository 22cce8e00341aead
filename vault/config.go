// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const (
	DefaultFeeCapBps          uint16 = 2_000
	DefaultFeeRateOfChangeBps uint16 = 2_500
	DefaultFeeBumpBps         uint16 = 10
)

const configSize = layout.DiscriminatorLen + 32 + 8*4 + 2*4 + 32 + 32 + 256

// ConfigAddress is the address of the single protocol config.
var ConfigAddress = restake.DeriveAddress([]byte("config"))

// ConfigAdminRole selects which config admin SetConfigAdmin replaces.
type ConfigAdminRole uint8

const (
	ConfigAdmin ConfigAdminRole = iota
	ConfigFeeAdmin
)

// Config holds the protocol-wide parameters.
type Config struct {
	Admin        restake.Pubkey
	EpochLength  uint64
	NumVaults    uint64
	NumNcns      uint64
	NumOperators uint64

	DepositWithdrawalFeeCapBps uint16
	FeeRateOfChangeBps         uint16
	FeeBumpBps                 uint16
	ProgramFeeBps              uint16
	ProgramFeeWallet           restake.Pubkey
	// FeeAdmin controls the program fee and its wallet.
	FeeAdmin restake.Pubkey
}

// NewConfig creates a config with default fee limits.
func NewConfig(admin restake.Pubkey, epochLength uint64, programFeeBps uint16, programFeeWallet restake.Pubkey) *Config {
	return &Config{
		Admin:                      admin,
		EpochLength:                epochLength,
		DepositWithdrawalFeeCapBps: DefaultFeeCapBps,
		FeeRateOfChangeBps:         DefaultFeeRateOfChangeBps,
		FeeBumpBps:                 DefaultFeeBumpBps,
		ProgramFeeBps:              programFeeBps,
		ProgramFeeWallet:           programFeeWallet,
		FeeAdmin:                   admin,
	}
}

func (c *Config) Discriminator() uint64 { return layout.ConfigAccount }

func (c *Config) Encode() []byte {
	return layout.NewEncoder(configSize).
		Account(c.Discriminator()).
		Pubkey(c.Admin).
		U64(c.EpochLength).
		U64(c.NumVaults).
		U64(c.NumNcns).
		U64(c.NumOperators).
		U16(c.DepositWithdrawalFeeCapBps).
		U16(c.FeeRateOfChangeBps).
		U16(c.FeeBumpBps).
		U16(c.ProgramFeeBps).
		Pubkey(c.ProgramFeeWallet).
		Pubkey(c.FeeAdmin).
		Reserved(256).
		Bytes()
}

func (c *Config) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(c.Discriminator())
	c.Admin = d.Pubkey()
	c.EpochLength = d.U64()
	c.NumVaults = d.U64()
	c.NumNcns = d.U64()
	c.NumOperators = d.U64()
	c.DepositWithdrawalFeeCapBps = d.U16()
	c.FeeRateOfChangeBps = d.U16()
	c.FeeBumpBps = d.U16()
	c.ProgramFeeBps = d.U16()
	c.ProgramFeeWallet = d.Pubkey()
	c.FeeAdmin = d.Pubkey()
	d.Reserved(256)
	return d.Finish()
}

func (c *Config) CheckAdmin(signer restake.Pubkey) error {
	if c.Admin != signer {
		return errcode.ConfigAdminInvalid
	}
	return nil
}

func (c *Config) CheckFeeAdmin(signer restake.Pubkey) error {
	if c.FeeAdmin != signer {
		return errcode.ConfigFeeAdminInvalid
	}
	return nil
}

// SetAdmin replaces one of the config admins. Only the main admin may do so.
func (c *Config) SetAdmin(signer restake.Pubkey, role ConfigAdminRole, admin restake.Pubkey) error {
	if err := c.CheckAdmin(signer); err != nil {
		return err
	}
	switch role {
	case ConfigAdmin:
		c.Admin = admin
	case ConfigFeeAdmin:
		c.FeeAdmin = admin
	default:
		return errcode.InvalidArgument
	}
	return nil
}

func (c *Config) SetProgramFee(signer restake.Pubkey, bps uint16) error {
	if err := c.CheckFeeAdmin(signer); err != nil {
		return err
	}
	if uint64(bps) > restake.MaxBPS {
		return errcode.VaultFeeCapExceeded
	}
	c.ProgramFeeBps = bps
	return nil
}

func (c *Config) SetProgramFeeWallet(signer, wallet restake.Pubkey) error {
	if err := c.CheckFeeAdmin(signer); err != nil {
		return err
	}
	c.ProgramFeeWallet = wallet
	return nil
}

// NextVaultIndex reserves the index of a new vault.
func (c *Config) NextVaultIndex() (uint64, error) {
	return next(&c.NumVaults, errcode.VaultOverflow)
}

// NextNcnIndex reserves the index of a new NCN.
func (c *Config) NextNcnIndex() (uint64, error) {
	return next(&c.NumNcns, errcode.NcnOverflow)
}

// NextOperatorIndex reserves the index of a new operator.
func (c *Config) NextOperatorIndex() (uint64, error) {
	return next(&c.NumOperators, errcode.OperatorOverflow)
}

func next(counter *uint64, overflow errcode.Code) (uint64, error) {
	idx := *counter
	if idx == ^uint64(0) {
		return 0, overflow
	}
	*counter = idx + 1
	return idx, nil
}
