// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/slashing"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
)

func (x *execution) updateVaultBalance(ins *instruction.UpdateVaultBalance) error {
	v, err := x.updatedVault(ins.Vault)
	if err != nil {
		return err
	}
	balance, err := x.tokens.Balance(v.SupportedMint, ins.Vault)
	if err != nil {
		return err
	}
	fee, err := v.UpdateBalance(balance)
	if err != nil {
		return err
	}
	if err := x.tokens.MintTo(v.VrtMint, ins.Vault, v.FeeWallet, fee); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, v.FeeWallet, fee)
	return nil
}

func (x *execution) initializeTracker(ins *instruction.InitializeVaultUpdateStateTracker) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	el, err := x.epochLength()
	if err != nil {
		return err
	}
	epoch, err := x.epoch()
	if err != nil {
		return err
	}
	existing, err := x.trackers.Get(ins.Vault, epoch)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrapf(errcode.AccountAlreadyInitialized, "tracker of epoch %d", epoch)
	}
	t, err := tracker.Begin(ins.Vault, v, ins.Method, x.slot, el)
	if err != nil {
		return err
	}
	if err := x.trackers.Add(t); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, restake.Pubkey{}, t.InitialAssetsNeedUnstaking)
	return nil
}

func (x *execution) crankTracker(ins *instruction.CrankVaultUpdateStateTracker) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	el, err := x.epochLength()
	if err != nil {
		return err
	}
	epoch, err := x.epoch()
	if err != nil {
		return err
	}
	t, err := x.trackers.MustGet(ins.Vault, epoch)
	if err != nil {
		return err
	}
	d, err := x.delegations.MustGet(ins.Vault, ins.Operator)
	if err != nil {
		return err
	}
	released, unstaked, err := t.Crank(d, v.OperatorCount, x.slot, el)
	if err != nil {
		return err
	}
	if err := tracker.Unstaked(v, unstaked); err != nil {
		return err
	}
	if err := x.delegations.Update(d); err != nil {
		return err
	}
	if err := x.trackers.Update(t); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Operator, released)
	return nil
}

func (x *execution) closeTracker(ins *instruction.CloseVaultUpdateStateTracker) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	epoch, err := x.epoch()
	if err != nil {
		return err
	}
	if ins.Epoch > epoch {
		return errors.Wrapf(errcode.InvalidArgument, "tracker epoch %d is ahead of %d", ins.Epoch, epoch)
	}
	t, err := x.trackers.MustGet(ins.Vault, ins.Epoch)
	if err != nil {
		return err
	}
	// a stale tracker is only reclaimed
	if ins.Epoch == epoch {
		if err := t.Finish(v, v.OperatorCount, x.slot); err != nil {
			return err
		}
		if err := x.vaults.Update(v); err != nil {
			return err
		}
		if v.AdditionalAssetsNeedUnstaking > 0 {
			x.warn(errors.Wrapf(errcode.NonZeroAdditionalAssetsNeededForWithdrawalAtEndOfUpdate,
				"%d carried over", v.AdditionalAssetsNeedUnstaking))
		}
	}
	if err := x.trackers.Close(t); err != nil {
		return err
	}
	x.emit(ins.Vault, restake.Pubkey{}, v.AdditionalAssetsNeedUnstaking)
	return nil
}

func (x *execution) slash(ins *instruction.Slash) error {
	if err := x.signed(ins.Slasher); err != nil {
		return err
	}
	v, err := x.updatedVault(ins.Vault)
	if err != nil {
		return err
	}
	el, err := x.epochLength()
	if err != nil {
		return err
	}
	epoch, err := x.epoch()
	if err != nil {
		return err
	}

	p := slashing.Parties{Vault: ins.Vault, Ncn: ins.Ncn, Operator: ins.Operator, Slasher: ins.Slasher}
	tickets, err := slashing.LoadTickets(x.relations, p)
	if err != nil {
		return err
	}
	if err := slashing.CheckSlashable(tickets, x.slot, el); err != nil {
		return err
	}
	d, err := x.delegations.MustGet(ins.Vault, ins.Operator)
	if err != nil {
		return err
	}
	if err := d.CheckIsUpdated(x.slot, el); err != nil {
		return err
	}
	ticket, existed, err := x.slashes.GetOrNew(p, epoch)
	if err != nil {
		return err
	}

	outcome, err := slashing.Plan(ins.Amount, tickets.MaxSlashablePerEpoch(), ticket.Slashed, &d.State)
	if err != nil {
		return err
	}
	b, err := slashing.Apply(outcome, d, v, ticket)
	if err != nil {
		return err
	}
	if err := x.delegations.Update(d); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	if err := x.slashes.Save(ticket, existed); err != nil {
		return err
	}
	if err := x.tokens.Transfer(v.SupportedMint, ins.Vault, ins.Slasher, outcome.Amount); err != nil {
		return err
	}
	if outcome.Incomplete {
		x.warn(errors.Wrapf(errcode.VaultSlashIncomplete, "slashed %d of %d", outcome.Amount, outcome.Requested))
	}
	logger.Debug("slashed", "vault", ins.Vault, "operator", ins.Operator,
		"staked", b.Staked, "enqueued", b.EnqueuedForCooldown, "cooling", b.CoolingDown)
	x.emit(ins.Vault, ins.Operator, outcome.Amount)
	return nil
}

// metadataVault loads the vault and authorizes its metadata admin.
func (x *execution) metadataVault(addr restake.Pubkey) (*vault.Vault, error) {
	v, err := x.vaults.MustGet(addr)
	if err != nil {
		return nil, err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.CheckRole(vault.MetadataAdmin, s) }); err != nil {
		return nil, err
	}
	return v, nil
}

func (x *execution) createTokenMetadata(ins *instruction.CreateTokenMetadata) error {
	v, err := x.metadataVault(ins.Vault)
	if err != nil {
		return err
	}
	m, err := token.NewMetadata(v.VrtMint, ins.Name, ins.Symbol, ins.URI)
	if err != nil {
		return err
	}
	if err := x.tokens.CreateMetadata(m); err != nil {
		return err
	}
	x.emit(ins.Vault, v.VrtMint, 0)
	return nil
}

func (x *execution) updateTokenMetadata(ins *instruction.UpdateTokenMetadata) error {
	v, err := x.metadataVault(ins.Vault)
	if err != nil {
		return err
	}
	m, err := x.tokens.Metadata(v.VrtMint)
	if err != nil {
		return err
	}
	if m == nil {
		return errors.Wrapf(errcode.AccountNotFound, "metadata of %v", v.VrtMint)
	}
	if err := m.Set(ins.Name, ins.Symbol, ins.URI); err != nil {
		return err
	}
	if err := x.tokens.UpdateMetadata(m); err != nil {
		return err
	}
	x.emit(ins.Vault, v.VrtMint, 0)
	return nil
}
