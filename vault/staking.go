// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

// IdleAssets is what the vault holds beyond its delegated security.
func (v *Vault) IdleAssets() (uint64, error) {
	security, err := v.DelegationState.TotalSecurity()
	if err != nil {
		return 0, err
	}
	if security > v.TokensDeposited {
		return 0, errcode.VaultUnderflow
	}
	return v.TokensDeposited - security, nil
}

// VrtInWithdrawal is the VRT escrowed in withdrawal tickets.
func (v *Vault) VrtInWithdrawal() (uint64, error) {
	sum, err := restake.CheckedAdd(v.VrtEnqueuedForCooldown, v.VrtCoolingDown)
	if err != nil {
		return 0, errcode.VaultOverflow
	}
	if sum, err = restake.CheckedAdd(sum, v.VrtReadyToClaim); err != nil {
		return 0, errcode.VaultOverflow
	}
	return sum, nil
}

// AssetsReservedForWithdrawal is the value of the VRT in withdrawal tickets.
func (v *Vault) AssetsReservedForWithdrawal() (uint64, error) {
	vrt, err := v.VrtInWithdrawal()
	if err != nil {
		return 0, err
	}
	return v.AssetsForVrt(vrt)
}

// AssetsAvailableForStaking is the idle balance not promised to pending
// withdrawals.
func (v *Vault) AssetsAvailableForStaking() (uint64, error) {
	idle, err := v.IdleAssets()
	if err != nil {
		return 0, err
	}
	reserved, err := v.AssetsReservedForWithdrawal()
	if err != nil {
		return 0, err
	}
	if reserved >= idle {
		return 0, nil
	}
	return idle - reserved, nil
}

// DelegateCheck verifies amount may be delegated: the delegated total stays
// within capacity and the vault has that much available.
func (v *Vault) DelegateCheck(amount uint64) error {
	if amount == 0 {
		return errcode.VaultDelegationZero
	}
	security, err := v.DelegationState.TotalSecurity()
	if err != nil {
		return err
	}
	total, err := restake.CheckedAdd(security, amount)
	if err != nil {
		return errcode.VaultSecurityOverflow
	}
	if total > v.DepositCapacity {
		return errcode.VaultCapacityExceeded
	}
	available, err := v.AssetsAvailableForStaking()
	if err != nil {
		return err
	}
	if amount > available {
		return errcode.VaultInsufficientFunds
	}
	return nil
}

// Delegate records amount as delegated after DelegateCheck.
func (v *Vault) Delegate(amount uint64) error {
	if err := v.DelegateCheck(amount); err != nil {
		return err
	}
	return v.DelegationState.Delegate(amount)
}

// Cooldown mirrors a delegation cooldown in the vault totals.
func (v *Vault) Cooldown(amount uint64) error {
	return v.DelegationState.Cooldown(amount)
}

// ApplySlash removes a slash taken from one delegation and the slashed
// assets from the vault.
func (v *Vault) ApplySlash(b delegation.Breakdown) error {
	if err := v.DelegationState.SubtractBreakdown(b); err != nil {
		return err
	}
	amount := b.Total()
	if amount > v.TokensDeposited {
		return errcode.VaultUnderflow
	}
	v.TokensDeposited -= amount
	return nil
}

// EnqueueWithdrawal adds vrt to the withdrawal pipeline.
func (v *Vault) EnqueueWithdrawal(vrt uint64) error {
	if vrt == 0 {
		return errcode.VaultEnqueueWithdrawalAmountZero
	}
	sum, err := restake.CheckedAdd(v.VrtEnqueuedForCooldown, vrt)
	if err != nil {
		return errcode.VaultOverflow
	}
	v.VrtEnqueuedForCooldown = sum
	return nil
}

// ClaimWithdrawal removes a redeemed ticket's vrt from the ready stage.
func (v *Vault) ClaimWithdrawal(vrt uint64) error {
	if vrt > v.VrtReadyToClaim {
		return errcode.VaultUnderflow
	}
	v.VrtReadyToClaim -= vrt
	return nil
}

// AdvanceWithdrawals moves the withdrawal pipeline forward by the number of
// epochs since the last full update.
func (v *Vault) AdvanceWithdrawals(slot, epochLength uint64) error {
	epochs, err := restake.EpochsBetween(v.LastFullStateUpdateSlot, slot, epochLength)
	if err != nil {
		return err
	}
	switch {
	case epochs == 0:
		return nil
	case epochs == 1:
		ready, err := restake.CheckedAdd(v.VrtReadyToClaim, v.VrtCoolingDown)
		if err != nil {
			return errcode.VaultOverflow
		}
		v.VrtReadyToClaim = ready
		v.VrtCoolingDown = v.VrtEnqueuedForCooldown
	default:
		all, err := v.VrtInWithdrawal()
		if err != nil {
			return err
		}
		v.VrtReadyToClaim = all
		v.VrtCoolingDown = 0
	}
	v.VrtEnqueuedForCooldown = 0
	return nil
}

// AssetsNeedingUnstake computes the assets operators must cool down so that
// every VRT in the withdrawal pipeline can be paid. Idle assets and stake
// already on its way out count as covered.
func (v *Vault) AssetsNeedingUnstake() (uint64, error) {
	needed, err := v.AssetsReservedForWithdrawal()
	if err != nil {
		return 0, err
	}
	idle, err := v.IdleAssets()
	if err != nil {
		return 0, err
	}
	covered := idle
	for _, x := range []uint64{v.DelegationState.EnqueuedForCooldown, v.DelegationState.CoolingDown} {
		if covered, err = restake.CheckedAdd(covered, x); err != nil {
			return 0, errcode.VaultOverflow
		}
	}
	if needed <= covered {
		return 0, nil
	}
	return needed - covered, nil
}
