// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault implements the vault account: VRT accounting, fees,
// capacity, admin roles and the withdrawal pipeline.
package vault

import (
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const vaultSize = layout.DiscriminatorLen +
	32*3 + 8*3 + delegation.StateSize + 8*4 +
	32*11 + 8*6 + 2*4 + 1 + 263

// Address returns the vault address for base.
func Address(base restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("vault"), base[:])
}

// Vault is the root account of a vault.
type Vault struct {
	Base          restake.Pubkey
	VrtMint       restake.Pubkey
	SupportedMint restake.Pubkey

	VrtSupply       uint64
	TokensDeposited uint64
	DepositCapacity uint64

	// DelegationState sums the delegations to all operators as of the last
	// closed update.
	DelegationState delegation.State

	// AdditionalAssetsNeedUnstaking is what the last update could not
	// allocate to operators.
	AdditionalAssetsNeedUnstaking uint64

	// VRT escrowed in withdrawal tickets, by pipeline stage.
	VrtEnqueuedForCooldown uint64
	VrtCoolingDown         uint64
	VrtReadyToClaim        uint64

	Admin              restake.Pubkey
	DelegationAdmin    restake.Pubkey
	OperatorAdmin      restake.Pubkey
	NcnAdmin           restake.Pubkey
	SlasherAdmin       restake.Pubkey
	CapacityAdmin      restake.Pubkey
	FeeAdmin           restake.Pubkey
	DelegateAssetAdmin restake.Pubkey
	FeeWallet          restake.Pubkey
	MintBurnAdmin      restake.Pubkey
	MetadataAdmin      restake.Pubkey

	VaultIndex              uint64
	NcnCount                uint64
	OperatorCount           uint64
	SlasherCount            uint64
	LastFeeChangeSlot       uint64
	LastFullStateUpdateSlot uint64

	DepositFeeBps    uint16
	WithdrawalFeeBps uint16
	RewardFeeBps     uint16
	ProgramFeeBps    uint16

	IsPaused bool
}

// NewVault creates a vault. Every admin role starts as admin and the vault counts
// as updated at slot.
func NewVault(
	base, vrtMint, supportedMint, admin restake.Pubkey,
	index uint64,
	depositFeeBps, withdrawalFeeBps, rewardFeeBps, programFeeBps uint16,
	slot uint64,
) *Vault {
	return &Vault{
		Base:                    base,
		VrtMint:                 vrtMint,
		SupportedMint:           supportedMint,
		DepositCapacity:         ^uint64(0),
		Admin:                   admin,
		DelegationAdmin:         admin,
		OperatorAdmin:           admin,
		NcnAdmin:                admin,
		SlasherAdmin:            admin,
		CapacityAdmin:           admin,
		FeeAdmin:                admin,
		DelegateAssetAdmin:      admin,
		FeeWallet:               admin,
		MetadataAdmin:           admin,
		VaultIndex:              index,
		LastFeeChangeSlot:       slot,
		LastFullStateUpdateSlot: slot,
		DepositFeeBps:           depositFeeBps,
		WithdrawalFeeBps:        withdrawalFeeBps,
		RewardFeeBps:            rewardFeeBps,
		ProgramFeeBps:           programFeeBps,
	}
}

func (v *Vault) Discriminator() uint64 { return layout.VaultAccount }

func (v *Vault) Encode() []byte {
	e := layout.NewEncoder(vaultSize).
		Account(v.Discriminator()).
		Pubkey(v.Base).
		Pubkey(v.VrtMint).
		Pubkey(v.SupportedMint).
		U64(v.VrtSupply).
		U64(v.TokensDeposited).
		U64(v.DepositCapacity)
	v.DelegationState.Encode(e)
	e.U64(v.AdditionalAssetsNeedUnstaking).
		U64(v.VrtEnqueuedForCooldown).
		U64(v.VrtCoolingDown).
		U64(v.VrtReadyToClaim)
	for _, p := range v.admins() {
		e.Pubkey(*p)
	}
	return e.U64(v.VaultIndex).
		U64(v.NcnCount).
		U64(v.OperatorCount).
		U64(v.SlasherCount).
		U64(v.LastFeeChangeSlot).
		U64(v.LastFullStateUpdateSlot).
		U16(v.DepositFeeBps).
		U16(v.WithdrawalFeeBps).
		U16(v.RewardFeeBps).
		U16(v.ProgramFeeBps).
		Bool(v.IsPaused).
		Reserved(263).
		Bytes()
}

func (v *Vault) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(v.Discriminator())
	v.Base = d.Pubkey()
	v.VrtMint = d.Pubkey()
	v.SupportedMint = d.Pubkey()
	v.VrtSupply = d.U64()
	v.TokensDeposited = d.U64()
	v.DepositCapacity = d.U64()
	v.DelegationState.Decode(d)
	v.AdditionalAssetsNeedUnstaking = d.U64()
	v.VrtEnqueuedForCooldown = d.U64()
	v.VrtCoolingDown = d.U64()
	v.VrtReadyToClaim = d.U64()
	for _, p := range v.admins() {
		*p = d.Pubkey()
	}
	v.VaultIndex = d.U64()
	v.NcnCount = d.U64()
	v.OperatorCount = d.U64()
	v.SlasherCount = d.U64()
	v.LastFeeChangeSlot = d.U64()
	v.LastFullStateUpdateSlot = d.U64()
	v.DepositFeeBps = d.U16()
	v.WithdrawalFeeBps = d.U16()
	v.RewardFeeBps = d.U16()
	v.ProgramFeeBps = d.U16()
	v.IsPaused = d.Bool()
	d.Reserved(263)
	return d.Finish()
}

// admins lists the admin fields in layout order.
func (v *Vault) admins() []*restake.Pubkey {
	return []*restake.Pubkey{
		&v.Admin,
		&v.DelegationAdmin,
		&v.OperatorAdmin,
		&v.NcnAdmin,
		&v.SlasherAdmin,
		&v.CapacityAdmin,
		&v.FeeAdmin,
		&v.DelegateAssetAdmin,
		&v.FeeWallet,
		&v.MintBurnAdmin,
		&v.MetadataAdmin,
	}
}

// IsUpdateNeeded reports whether the last full update happened in an
// earlier epoch than slot.
func (v *Vault) IsUpdateNeeded(slot, epochLength uint64) (bool, error) {
	last, err := restake.EpochOf(v.LastFullStateUpdateSlot, epochLength)
	if err != nil {
		return false, err
	}
	current, err := restake.EpochOf(slot, epochLength)
	if err != nil {
		return false, err
	}
	return last < current, nil
}

// CheckUpdateStateOk fails with VaultUpdateNeeded on a stale vault.
func (v *Vault) CheckUpdateStateOk(slot, epochLength uint64) error {
	needed, err := v.IsUpdateNeeded(slot, epochLength)
	if err != nil {
		return err
	}
	if needed {
		return errcode.VaultUpdateNeeded
	}
	return nil
}

func (v *Vault) CheckIsPaused() error {
	if v.IsPaused {
		return errcode.VaultIsPaused
	}
	return nil
}

func (v *Vault) CheckVrtMint(mint restake.Pubkey) error {
	if v.VrtMint != mint {
		return errcode.InvalidArgument
	}
	return nil
}

// SetCapacity sets the deposit capacity.
func (v *Vault) SetCapacity(signer restake.Pubkey, capacity uint64) error {
	if err := v.CheckRole(CapacityAdmin, signer); err != nil {
		return err
	}
	v.DepositCapacity = capacity
	return nil
}

// NextOperatorIndex reserves the crank index of a new operator delegation.
func (v *Vault) NextOperatorIndex() (uint64, error) {
	return next(&v.OperatorCount, errcode.OperatorOverflow)
}

func (v *Vault) NextNcnIndex() (uint64, error) {
	return next(&v.NcnCount, errcode.NcnOverflow)
}

func (v *Vault) NextSlasherIndex() (uint64, error) {
	return next(&v.SlasherCount, errcode.SlasherOverflow)
}
