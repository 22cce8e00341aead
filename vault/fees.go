// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

// FeeChange holds the fees to change. Nil fields keep their value.
type FeeChange struct {
	DepositFeeBps    *uint16
	WithdrawalFeeBps *uint16
	RewardFeeBps     *uint16
}

// checkFeeBump fails when the fee rises by more than bumpBps and also by more
// than rateOfChangeBps relative to the current fee.
func checkFeeBump(current, next, bumpBps, rateOfChangeBps uint16) error {
	if next <= current {
		return nil
	}
	delta := uint64(next - current)
	if delta <= uint64(bumpBps) {
		return nil
	}
	relative := uint64(math.MaxUint64)
	if current > 0 {
		relative = delta * restake.MaxBPS / uint64(current)
	}
	if relative > uint64(rateOfChangeBps) {
		return errcode.VaultFeeBumpTooLarge
	}
	return nil
}

// SetFees changes the vault fees. Fees may change at most once every two
// epochs, stay under the configured caps and move in bounded steps.
func (v *Vault) SetFees(signer restake.Pubkey, change FeeChange, cfg *Config, slot uint64) error {
	if err := v.CheckRole(FeeAdmin, signer); err != nil {
		return err
	}
	elapsed, err := restake.HasElapsedFullEpoch(v.LastFeeChangeSlot, slot, cfg.EpochLength)
	if err != nil {
		return err
	}
	if !elapsed {
		return errcode.VaultFeeChangeTooSoon
	}

	type fee struct {
		next    *uint16
		current *uint16
		cap     uint64
	}
	fees := []fee{
		{change.DepositFeeBps, &v.DepositFeeBps, uint64(cfg.DepositWithdrawalFeeCapBps)},
		{change.WithdrawalFeeBps, &v.WithdrawalFeeBps, uint64(cfg.DepositWithdrawalFeeCapBps)},
		{change.RewardFeeBps, &v.RewardFeeBps, restake.MaxBPS},
	}
	for _, f := range fees {
		if f.next == nil {
			continue
		}
		if uint64(*f.next) > f.cap {
			return errcode.VaultFeeCapExceeded
		}
		if err := checkFeeBump(*f.current, *f.next, cfg.FeeBumpBps, cfg.FeeRateOfChangeBps); err != nil {
			return err
		}
	}
	for _, f := range fees {
		if f.next != nil {
			*f.current = *f.next
		}
	}
	v.LastFeeChangeSlot = slot
	return nil
}
