// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/withdrawal"
)

func (x *execution) enqueueWithdrawal(ins *instruction.EnqueueWithdrawal) error {
	v, err := x.depositVault(ins.Vault)
	if err != nil {
		return err
	}
	if err := x.signed(ins.Staker); err != nil {
		return err
	}
	if err := x.signed(ins.Base); err != nil {
		return err
	}
	if err := v.EnqueueWithdrawal(ins.VrtAmount); err != nil {
		return err
	}
	t := withdrawal.NewTicket(ins.Vault, ins.Staker, ins.Base, ins.VrtAmount, x.slot)
	if err := x.withdrawals.Add(t); err != nil {
		return err
	}
	// the ticket escrows the VRT until it is burned
	if err := x.tokens.Transfer(v.VrtMint, ins.Staker, t.Address(), ins.VrtAmount); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Staker, ins.VrtAmount)
	return nil
}

func (x *execution) changeWithdrawalTicketOwner(ins *instruction.ChangeWithdrawalTicketOwner) error {
	t, err := x.withdrawals.MustGet(withdrawal.Address(ins.Vault, ins.Base))
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return t.ChangeOwner(s, ins.NewOwner) }); err != nil {
		return err
	}
	if err := x.withdrawals.Update(t); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.NewOwner, t.VrtAmount)
	return nil
}

func (x *execution) burnWithdrawalTicket(ins *instruction.BurnWithdrawalTicket) error {
	v, err := x.depositVault(ins.Vault)
	if err != nil {
		return err
	}
	t, err := x.withdrawals.MustGet(withdrawal.Address(ins.Vault, ins.Base))
	if err != nil {
		return err
	}
	if err := x.signed(t.Staker); err != nil {
		return err
	}
	cfg, err := x.config()
	if err != nil {
		return err
	}
	if err := t.CheckWithdrawable(x.slot, cfg.EpochLength); err != nil {
		return err
	}

	idle, err := v.IdleAssets()
	if err != nil {
		return err
	}
	if err := v.ClaimWithdrawal(t.VrtAmount); err != nil {
		return err
	}
	s, err := v.BurnWithFee(t.VrtAmount, cfg.ProgramFeeBps, ins.MinAmountOut, idle)
	if err != nil {
		return err
	}
	if err := x.redeem(v, ins.Vault, t.Address(), t.Staker, s); err != nil {
		return err
	}
	if err := x.withdrawals.Close(t); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, t.Staker, s.AssetsOut)
	return nil
}
