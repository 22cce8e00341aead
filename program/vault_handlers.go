// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/slashing"
	"github.com/vechain/restake/vault"
)

func (x *execution) initializeConfig(ins *instruction.InitializeConfig) error {
	if err := x.signed(ins.Admin); err != nil {
		return err
	}
	if ins.EpochLength == 0 {
		return errcode.InvalidEpochLength
	}
	if uint64(ins.ProgramFeeBps) > restake.MaxBPS {
		return errcode.VaultFeeCapExceeded
	}
	cfg := vault.NewConfig(ins.Admin, ins.EpochLength, ins.ProgramFeeBps, ins.ProgramFeeWallet)
	if err := x.vaults.InitConfig(cfg); err != nil {
		return err
	}
	x.emit(vault.ConfigAddress, ins.Admin, ins.EpochLength)
	return nil
}

func (x *execution) initializeVault(ins *instruction.InitializeVault) error {
	if err := x.signed(ins.Base); err != nil {
		return err
	}
	if err := x.signed(ins.Admin); err != nil {
		return err
	}
	cfg, err := x.config()
	if err != nil {
		return err
	}
	if ins.DepositFeeBps > cfg.DepositWithdrawalFeeCapBps ||
		ins.WithdrawalFeeBps > cfg.DepositWithdrawalFeeCapBps ||
		uint64(ins.RewardFeeBps) > restake.MaxBPS {
		return errcode.VaultFeeCapExceeded
	}
	if _, err := x.tokens.Supply(ins.SupportedMint); err != nil {
		return err
	}
	index, err := cfg.NextVaultIndex()
	if err != nil {
		return err
	}

	v := vault.NewVault(ins.Base, ins.VrtMint, ins.SupportedMint, ins.Admin, index,
		ins.DepositFeeBps, ins.WithdrawalFeeBps, ins.RewardFeeBps, cfg.ProgramFeeBps, x.slot)
	addr, err := x.vaults.Add(v)
	if err != nil {
		return err
	}
	if err := x.tokens.CreateMint(ins.VrtMint, addr, ins.Decimals); err != nil {
		return err
	}
	if err := x.vaults.SetConfig(cfg); err != nil {
		return err
	}
	x.emit(addr, ins.Admin, 0)
	return nil
}

func (x *execution) initializeVaultOperatorDelegation(ins *instruction.InitializeVaultOperatorDelegation) error {
	v, err := x.updatedVault(ins.Vault)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.CheckRole(vault.OperatorAdmin, s) }); err != nil {
		return err
	}
	if _, err := x.relations.Operator(ins.Operator); err != nil {
		return err
	}
	if _, err := x.requireActive(relation.OperatorVault, ins.Operator, ins.Vault, restake.Pubkey{}); err != nil {
		return err
	}
	index, err := v.NextOperatorIndex()
	if err != nil {
		return err
	}
	if err := x.delegations.Add(delegation.NewVaultOperatorDelegation(ins.Vault, ins.Operator, index, x.slot)); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Operator, 0)
	return nil
}

// initializeVaultTicket opens a vault-owned ticket of kind k once the
// counterpart ticket owned by the NCN is active.
func (x *execution) initializeVaultTicket(role vault.Role, k relation.Kind, vaultAddr, ncn, slasher restake.Pubkey, next func(*vault.Vault) (uint64, error)) (*relation.Ticket, error) {
	v, err := x.vaults.MustGet(vaultAddr)
	if err != nil {
		return nil, err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.CheckRole(role, s) }); err != nil {
		return nil, err
	}
	if _, err := x.relations.Ncn(ncn); err != nil {
		return nil, err
	}
	var counterpart *relation.Ticket
	if pre, ok := k.Prerequisite(); ok {
		if counterpart, err = x.requireActive(pre, ncn, vaultAddr, slasher); err != nil {
			return nil, err
		}
	}
	index, err := next(v)
	if err != nil {
		return nil, err
	}
	t := relation.NewTicket(k, vaultAddr, ncn, slasher, index, x.slot)
	if counterpart != nil {
		t.MaxSlashablePerEpoch = counterpart.MaxSlashablePerEpoch
	}
	if err := x.relations.AddTicket(t); err != nil {
		return nil, err
	}
	if err := x.vaults.Update(v); err != nil {
		return nil, err
	}
	return t, nil
}

func (x *execution) initializeVaultNcnTicket(ins *instruction.InitializeVaultNcnTicket) error {
	if _, err := x.initializeVaultTicket(vault.NcnAdmin, relation.VaultNcn,
		ins.Vault, ins.Ncn, restake.Pubkey{}, (*vault.Vault).NextNcnIndex); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Ncn, 0)
	return nil
}

func (x *execution) initializeVaultNcnSlasherTicket(ins *instruction.InitializeVaultNcnSlasherTicket) error {
	t, err := x.initializeVaultTicket(vault.SlasherAdmin, relation.VaultNcnSlasher,
		ins.Vault, ins.Ncn, ins.Slasher, (*vault.Vault).NextSlasherIndex)
	if err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Slasher, t.MaxSlashablePerEpoch)
	return nil
}

func (x *execution) initializeVaultNcnSlasherOperatorTicket(ins *instruction.InitializeVaultNcnSlasherOperatorTicket) error {
	epoch, err := x.epoch()
	if err != nil {
		return err
	}
	if _, err := x.relations.MustTicket(relation.VaultNcnSlasher, ins.Vault, ins.Ncn, ins.Slasher); err != nil {
		return err
	}
	if _, err := x.relations.Operator(ins.Operator); err != nil {
		return err
	}
	p := slashing.Parties{Vault: ins.Vault, Ncn: ins.Ncn, Operator: ins.Operator, Slasher: ins.Slasher}
	if err := x.slashes.Add(slashing.NewOperatorTicket(p, epoch)); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Operator, epoch)
	return nil
}

func (x *execution) toggleVaultTicket(role vault.Role, k relation.Kind, vaultAddr, ncn, slasher restake.Pubkey, warmup bool) error {
	v, err := x.vaults.MustGet(vaultAddr)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.CheckRole(role, s) }); err != nil {
		return err
	}
	if err := x.toggle(k, vaultAddr, ncn, slasher, warmup); err != nil {
		return err
	}
	x.emit(vaultAddr, ncn, 0)
	return nil
}

// delegationFor loads an updated vault and its updated delegation to operator,
// authorizing the vault's delegation admin.
func (x *execution) delegationFor(vaultAddr, operator restake.Pubkey) (*vault.Vault, *delegation.VaultOperatorDelegation, error) {
	v, err := x.updatedVault(vaultAddr)
	if err != nil {
		return nil, nil, err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.CheckRole(vault.DelegationAdmin, s) }); err != nil {
		return nil, nil, err
	}
	el, err := x.epochLength()
	if err != nil {
		return nil, nil, err
	}
	d, err := x.delegations.MustGet(vaultAddr, operator)
	if err != nil {
		return nil, nil, err
	}
	if err := d.CheckIsUpdated(x.slot, el); err != nil {
		return nil, nil, err
	}
	return v, d, nil
}

func (x *execution) addDelegation(ins *instruction.AddDelegation) error {
	v, d, err := x.delegationFor(ins.Vault, ins.Operator)
	if err != nil {
		return err
	}
	if err := v.Delegate(ins.Amount); err != nil {
		return err
	}
	if err := d.State.Delegate(ins.Amount); err != nil {
		return err
	}
	if err := x.delegations.Update(d); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Operator, ins.Amount)
	return nil
}

func (x *execution) cooldownDelegation(ins *instruction.CooldownDelegation) error {
	v, d, err := x.delegationFor(ins.Vault, ins.Operator)
	if err != nil {
		return err
	}
	if err := d.State.Cooldown(ins.Amount); err != nil {
		return err
	}
	if err := v.Cooldown(ins.Amount); err != nil {
		return err
	}
	if err := x.delegations.Update(d); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Operator, ins.Amount)
	return nil
}

// depositVault loads a vault accepting deposits and redemptions.
func (x *execution) depositVault(addr restake.Pubkey) (*vault.Vault, error) {
	v, err := x.updatedVault(addr)
	if err != nil {
		return nil, err
	}
	if err := v.CheckIsPaused(); err != nil {
		return nil, err
	}
	if err := v.CheckMintBurnAdmin(x.env.Signed); err != nil {
		return nil, err
	}
	return v, nil
}

func (x *execution) mintTo(ins *instruction.MintTo) error {
	v, err := x.depositVault(ins.Vault)
	if err != nil {
		return err
	}
	if err := x.signed(ins.Depositor); err != nil {
		return err
	}
	s, err := v.MintWithFee(ins.AmountIn, ins.MinAmountOut)
	if err != nil {
		return err
	}
	if err := x.tokens.Transfer(v.SupportedMint, ins.Depositor, ins.Vault, ins.AmountIn); err != nil {
		return err
	}
	if err := x.tokens.MintTo(v.VrtMint, ins.Vault, ins.Depositor, s.VrtToDepositor); err != nil {
		return err
	}
	if err := x.tokens.MintTo(v.VrtMint, ins.Vault, v.FeeWallet, s.VrtToFeeWallet); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Depositor, ins.AmountIn)
	return nil
}

// redeem pays the fees of a burn from holder in VRT, burns the rest and pays
// the assets to recipient.
func (x *execution) redeem(v *vault.Vault, vaultAddr, holder, recipient restake.Pubkey, s vault.BurnSummary) error {
	cfg, err := x.config()
	if err != nil {
		return err
	}
	if err := x.tokens.Transfer(v.VrtMint, holder, v.FeeWallet, s.VaultFee); err != nil {
		return err
	}
	if err := x.tokens.Transfer(v.VrtMint, holder, cfg.ProgramFeeWallet, s.ProgramFee); err != nil {
		return err
	}
	if err := x.tokens.Burn(v.VrtMint, holder, s.Burned); err != nil {
		return err
	}
	return x.tokens.Transfer(v.SupportedMint, vaultAddr, recipient, s.AssetsOut)
}

func (x *execution) burn(ins *instruction.Burn) error {
	v, err := x.depositVault(ins.Vault)
	if err != nil {
		return err
	}
	if err := x.signed(ins.Staker); err != nil {
		return err
	}
	cfg, err := x.config()
	if err != nil {
		return err
	}
	available, err := v.AssetsAvailableForStaking()
	if err != nil {
		return err
	}
	s, err := v.BurnWithFee(ins.AmountIn, cfg.ProgramFeeBps, ins.MinAmountOut, available)
	if err != nil {
		return err
	}
	if err := x.redeem(v, ins.Vault, ins.Staker, ins.Staker, s); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Staker, s.AssetsOut)
	return nil
}

func (x *execution) setDepositCapacity(ins *instruction.SetDepositCapacity) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	signer, err := x.authorize(func(s restake.Pubkey) error { return v.SetCapacity(s, ins.Amount) })
	if err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, signer, ins.Amount)
	return nil
}

func (x *execution) setFees(ins *instruction.SetFees) error {
	v, err := x.updatedVault(ins.Vault)
	if err != nil {
		return err
	}
	cfg, err := x.config()
	if err != nil {
		return err
	}
	signer, err := x.authorize(func(s restake.Pubkey) error { return v.CheckRole(vault.FeeAdmin, s) })
	if err != nil {
		return err
	}
	if err := v.SetFees(signer, ins.Change(), cfg, x.slot); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, signer, 0)
	return nil
}

func (x *execution) setProgramFee(ins *instruction.SetProgramFee) error {
	cfg, err := x.config()
	if err != nil {
		return err
	}
	signer, err := x.authorize(func(s restake.Pubkey) error { return cfg.SetProgramFee(s, ins.NewFeeBps) })
	if err != nil {
		return err
	}
	if err := x.vaults.SetConfig(cfg); err != nil {
		return err
	}
	x.emit(vault.ConfigAddress, signer, uint64(ins.NewFeeBps))
	return nil
}

func (x *execution) setProgramFeeWallet(ins *instruction.SetProgramFeeWallet) error {
	cfg, err := x.config()
	if err != nil {
		return err
	}
	signer, err := x.authorize(func(s restake.Pubkey) error { return cfg.SetProgramFeeWallet(s, ins.Wallet) })
	if err != nil {
		return err
	}
	if err := x.vaults.SetConfig(cfg); err != nil {
		return err
	}
	x.emit(vault.ConfigAddress, signer, 0)
	return nil
}

func (x *execution) setConfigAdmin(ins *instruction.SetConfigAdmin) error {
	cfg, err := x.config()
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return cfg.SetAdmin(s, ins.Role, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.vaults.SetConfig(cfg); err != nil {
		return err
	}
	x.emit(vault.ConfigAddress, ins.NewAdmin, uint64(ins.Role))
	return nil
}

func (x *execution) setAdmin(ins *instruction.SetAdmin) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.SetAdmin(s, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.NewAdmin, 0)
	return nil
}

func (x *execution) setSecondaryAdmin(ins *instruction.SetSecondaryAdmin) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return v.SetSecondaryAdmin(s, ins.Role, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.NewAdmin, uint64(ins.Role))
	return nil
}

func (x *execution) setIsPaused(ins *instruction.SetIsPaused) error {
	v, err := x.vaults.MustGet(ins.Vault)
	if err != nil {
		return err
	}
	signer, err := x.authorize(func(s restake.Pubkey) error { return v.SetIsPaused(s, ins.IsPaused) })
	if err != nil {
		return err
	}
	if err := x.vaults.Update(v); err != nil {
		return err
	}
	var flag uint64
	if ins.IsPaused {
		flag = 1
	}
	x.emit(ins.Vault, signer, flag)
	return nil
}

// delegateAsset checks the signer holds the delegate asset role and that
// mint is neither of the vault's own mints.
func (x *execution) delegateAsset(addr, mint restake.Pubkey) error {
	v, err := x.vaults.MustGet(addr)
	if err != nil {
		return err
	}
	if mint == v.SupportedMint || mint == v.VrtMint {
		return errors.Wrapf(errcode.InvalidArgument, "cannot delegate mint %v", mint)
	}
	_, err = x.authorize(func(s restake.Pubkey) error { return v.CheckRole(vault.DelegateAssetAdmin, s) })
	return err
}

func (x *execution) delegateTokenAccount(ins *instruction.DelegateTokenAccount) error {
	if err := x.delegateAsset(ins.Vault, ins.Mint); err != nil {
		return err
	}
	if err := x.tokens.Approve(ins.Mint, ins.Vault, ins.Delegate, ins.Amount); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Delegate, ins.Amount)
	return nil
}

func (x *execution) revokeDelegateTokenAccount(ins *instruction.RevokeDelegateTokenAccount) error {
	if err := x.delegateAsset(ins.Vault, ins.Mint); err != nil {
		return err
	}
	if err := x.tokens.Revoke(ins.Mint, ins.Vault); err != nil {
		return err
	}
	x.emit(ins.Vault, ins.Mint, 0)
	return nil
}
