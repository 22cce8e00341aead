// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
)

func (x *execution) initializeNcn(ins *instruction.InitializeNcn) error {
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
	index, err := cfg.NextNcnIndex()
	if err != nil {
		return err
	}
	addr, err := x.relations.AddNcn(relation.NewNcn(ins.Base, ins.Admin, index))
	if err != nil {
		return errors.Wrap(err, "failed to add ncn")
	}
	if err := x.vaults.SetConfig(cfg); err != nil {
		return err
	}
	x.emit(addr, ins.Admin, index)
	return nil
}

func (x *execution) initializeOperator(ins *instruction.InitializeOperator) error {
	if err := x.signed(ins.Base); err != nil {
		return err
	}
	if err := x.signed(ins.Admin); err != nil {
		return err
	}
	if uint64(ins.OperatorFeeBps) > restake.MaxBPS {
		return errors.Wrapf(errcode.InvalidArgument, "operator fee %d bps", ins.OperatorFeeBps)
	}
	cfg, err := x.config()
	if err != nil {
		return err
	}
	index, err := cfg.NextOperatorIndex()
	if err != nil {
		return err
	}
	addr, err := x.relations.AddOperator(relation.NewOperator(ins.Base, ins.Admin, index, ins.OperatorFeeBps))
	if err != nil {
		return errors.Wrap(err, "failed to add operator")
	}
	if err := x.vaults.SetConfig(cfg); err != nil {
		return err
	}
	x.emit(addr, ins.Admin, index)
	return nil
}

// initializeNcnOperatorState opens both directions of the NCN/operator
// relationship. Each side then warms up its own ticket.
func (x *execution) initializeNcnOperatorState(ins *instruction.InitializeNcnOperatorState) error {
	n, err := x.relations.Ncn(ins.Ncn)
	if err != nil {
		return err
	}
	o, err := x.relations.Operator(ins.Operator)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return n.CheckAdmin(relation.NcnOperator, s) }); err != nil {
		return err
	}
	ncnIndex, err := bump(&n.OperatorCount, errcode.OperatorOverflow)
	if err != nil {
		return err
	}
	operatorIndex, err := bump(&o.NcnCount, errcode.NcnOverflow)
	if err != nil {
		return err
	}
	if err := x.relations.AddTicket(relation.NewTicket(relation.NcnOperator, ins.Ncn, ins.Operator, restake.Pubkey{}, ncnIndex, x.slot)); err != nil {
		return err
	}
	if err := x.relations.AddTicket(relation.NewTicket(relation.OperatorNcn, ins.Operator, ins.Ncn, restake.Pubkey{}, operatorIndex, x.slot)); err != nil {
		return err
	}
	if err := x.relations.UpdateNcn(n); err != nil {
		return err
	}
	if err := x.relations.UpdateOperator(o); err != nil {
		return err
	}
	x.emit(ins.Ncn, ins.Operator, 0)
	return nil
}

func (x *execution) toggleNcnTicket(k relation.Kind, ncn, right, third restake.Pubkey, warmup bool) error {
	n, err := x.relations.Ncn(ncn)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return n.CheckAdmin(k, s) }); err != nil {
		return err
	}
	if err := x.toggle(k, ncn, right, third, warmup); err != nil {
		return err
	}
	x.emit(ncn, right, 0)
	return nil
}

func (x *execution) toggleOperatorTicket(k relation.Kind, operator, right restake.Pubkey, warmup bool) error {
	o, err := x.relations.Operator(operator)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return o.CheckAdmin(k, s) }); err != nil {
		return err
	}
	if err := x.toggle(k, operator, right, restake.Pubkey{}, warmup); err != nil {
		return err
	}
	x.emit(operator, right, 0)
	return nil
}

func (x *execution) initializeNcnVaultTicket(ins *instruction.InitializeNcnVaultTicket) error {
	n, err := x.relations.Ncn(ins.Ncn)
	if err != nil {
		return err
	}
	if _, err := x.vaults.MustGet(ins.Vault); err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return n.CheckAdmin(relation.NcnVault, s) }); err != nil {
		return err
	}
	index, err := bump(&n.VaultCount, errcode.VaultOverflow)
	if err != nil {
		return err
	}
	if err := x.relations.AddTicket(relation.NewTicket(relation.NcnVault, ins.Ncn, ins.Vault, restake.Pubkey{}, index, x.slot)); err != nil {
		return err
	}
	if err := x.relations.UpdateNcn(n); err != nil {
		return err
	}
	x.emit(ins.Ncn, ins.Vault, 0)
	return nil
}

func (x *execution) initializeOperatorVaultTicket(ins *instruction.InitializeOperatorVaultTicket) error {
	o, err := x.relations.Operator(ins.Operator)
	if err != nil {
		return err
	}
	if _, err := x.vaults.MustGet(ins.Vault); err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return o.CheckAdmin(relation.OperatorVault, s) }); err != nil {
		return err
	}
	index, err := bump(&o.VaultCount, errcode.VaultOverflow)
	if err != nil {
		return err
	}
	if err := x.relations.AddTicket(relation.NewTicket(relation.OperatorVault, ins.Operator, ins.Vault, restake.Pubkey{}, index, x.slot)); err != nil {
		return err
	}
	if err := x.relations.UpdateOperator(o); err != nil {
		return err
	}
	x.emit(ins.Operator, ins.Vault, 0)
	return nil
}

func (x *execution) initializeNcnVaultSlasherTicket(ins *instruction.InitializeNcnVaultSlasherTicket) error {
	n, err := x.relations.Ncn(ins.Ncn)
	if err != nil {
		return err
	}
	if _, err := x.relations.MustTicket(relation.NcnVault, ins.Ncn, ins.Vault, restake.Pubkey{}); err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return n.CheckAdmin(relation.NcnVaultSlasher, s) }); err != nil {
		return err
	}
	index, err := bump(&n.SlasherCount, errcode.SlasherOverflow)
	if err != nil {
		return err
	}
	t := relation.NewTicket(relation.NcnVaultSlasher, ins.Ncn, ins.Vault, ins.Slasher, index, x.slot)
	t.MaxSlashablePerEpoch = ins.MaxSlashablePerEpoch
	if err := x.relations.AddTicket(t); err != nil {
		return err
	}
	if err := x.relations.UpdateNcn(n); err != nil {
		return err
	}
	x.emit(ins.Ncn, ins.Slasher, ins.MaxSlashablePerEpoch)
	return nil
}

func (x *execution) ncnSetAdmin(ins *instruction.NcnSetAdmin) error {
	n, err := x.relations.Ncn(ins.Ncn)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return n.SetAdmin(s, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.relations.UpdateNcn(n); err != nil {
		return err
	}
	x.emit(ins.Ncn, ins.NewAdmin, 0)
	return nil
}

func (x *execution) ncnSetSecondaryAdmin(ins *instruction.NcnSetSecondaryAdmin) error {
	n, err := x.relations.Ncn(ins.Ncn)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return n.SetSecondaryAdmin(s, ins.Role, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.relations.UpdateNcn(n); err != nil {
		return err
	}
	x.emit(ins.Ncn, ins.NewAdmin, uint64(ins.Role))
	return nil
}

func (x *execution) operatorSetAdmin(ins *instruction.OperatorSetAdmin) error {
	o, err := x.relations.Operator(ins.Operator)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return o.SetAdmin(s, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.relations.UpdateOperator(o); err != nil {
		return err
	}
	x.emit(ins.Operator, ins.NewAdmin, 0)
	return nil
}

func (x *execution) operatorSetSecondaryAdmin(ins *instruction.OperatorSetSecondaryAdmin) error {
	o, err := x.relations.Operator(ins.Operator)
	if err != nil {
		return err
	}
	if _, err := x.authorize(func(s restake.Pubkey) error { return o.SetSecondaryAdmin(s, ins.Role, ins.NewAdmin) }); err != nil {
		return err
	}
	if err := x.relations.UpdateOperator(o); err != nil {
		return err
	}
	x.emit(ins.Operator, ins.NewAdmin, uint64(ins.Role))
	return nil
}

func (x *execution) operatorSetFee(ins *instruction.OperatorSetFee) error {
	o, err := x.relations.Operator(ins.Operator)
	if err != nil {
		return err
	}
	signer, err := x.authorize(func(s restake.Pubkey) error { return o.SetFee(s, ins.OperatorFeeBps) })
	if err != nil {
		return err
	}
	if err := x.relations.UpdateOperator(o); err != nil {
		return err
	}
	x.emit(ins.Operator, signer, uint64(ins.OperatorFeeBps))
	return nil
}
