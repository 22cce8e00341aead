// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/eventdb"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/slashing"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
	"github.com/vechain/restake/withdrawal"
)

// execution is the context of one instruction.
type execution struct {
	env  *instruction.Envelope
	kind instruction.Kind
	slot uint64

	vaults      *vault.Service
	delegations *delegation.Service
	relations   *relation.Service
	withdrawals *withdrawal.Service
	trackers    *tracker.Service
	slashes     *slashing.Service
	tokens      *token.Ledger

	cfg      *vault.Config
	events   []*eventdb.Event
	warnings []error
}

func newExecution(tx *ledger.Tx, env *instruction.Envelope, kind instruction.Kind, slot uint64) *execution {
	return &execution{
		env:         env,
		kind:        kind,
		slot:        slot,
		vaults:      vault.New(tx),
		delegations: delegation.New(tx),
		relations:   relation.New(tx),
		withdrawals: withdrawal.New(tx),
		trackers:    tracker.New(tx),
		slashes:     slashing.New(tx),
		tokens:      token.New(tx),
	}
}

func (x *execution) run(ins instruction.Instruction) error {
	switch ins := ins.(type) {
	case *instruction.InitializeConfig:
		return x.initializeConfig(ins)
	case *instruction.InitializeVault:
		return x.initializeVault(ins)
	case *instruction.InitializeVaultOperatorDelegation:
		return x.initializeVaultOperatorDelegation(ins)
	case *instruction.InitializeVaultNcnTicket:
		return x.initializeVaultNcnTicket(ins)
	case *instruction.InitializeVaultNcnSlasherTicket:
		return x.initializeVaultNcnSlasherTicket(ins)
	case *instruction.InitializeVaultNcnSlasherOperatorTicket:
		return x.initializeVaultNcnSlasherOperatorTicket(ins)
	case *instruction.WarmupVaultNcnTicket:
		return x.toggleVaultTicket(vault.NcnAdmin, relation.VaultNcn, ins.Vault, ins.Ncn, restake.Pubkey{}, true)
	case *instruction.CooldownVaultNcnTicket:
		return x.toggleVaultTicket(vault.NcnAdmin, relation.VaultNcn, ins.Vault, ins.Ncn, restake.Pubkey{}, false)
	case *instruction.WarmupVaultNcnSlasherTicket:
		return x.toggleVaultTicket(vault.SlasherAdmin, relation.VaultNcnSlasher, ins.Vault, ins.Ncn, ins.Slasher, true)
	case *instruction.CooldownVaultNcnSlasherTicket:
		return x.toggleVaultTicket(vault.SlasherAdmin, relation.VaultNcnSlasher, ins.Vault, ins.Ncn, ins.Slasher, false)
	case *instruction.AddDelegation:
		return x.addDelegation(ins)
	case *instruction.CooldownDelegation:
		return x.cooldownDelegation(ins)
	case *instruction.MintTo:
		return x.mintTo(ins)
	case *instruction.Burn:
		return x.burn(ins)
	case *instruction.EnqueueWithdrawal:
		return x.enqueueWithdrawal(ins)
	case *instruction.ChangeWithdrawalTicketOwner:
		return x.changeWithdrawalTicketOwner(ins)
	case *instruction.BurnWithdrawalTicket:
		return x.burnWithdrawalTicket(ins)
	case *instruction.SetDepositCapacity:
		return x.setDepositCapacity(ins)
	case *instruction.SetFees:
		return x.setFees(ins)
	case *instruction.SetProgramFee:
		return x.setProgramFee(ins)
	case *instruction.SetProgramFeeWallet:
		return x.setProgramFeeWallet(ins)
	case *instruction.SetAdmin:
		return x.setAdmin(ins)
	case *instruction.SetSecondaryAdmin:
		return x.setSecondaryAdmin(ins)
	case *instruction.SetConfigAdmin:
		return x.setConfigAdmin(ins)
	case *instruction.SetIsPaused:
		return x.setIsPaused(ins)
	case *instruction.UpdateVaultBalance:
		return x.updateVaultBalance(ins)
	case *instruction.InitializeVaultUpdateStateTracker:
		return x.initializeTracker(ins)
	case *instruction.CrankVaultUpdateStateTracker:
		return x.crankTracker(ins)
	case *instruction.CloseVaultUpdateStateTracker:
		return x.closeTracker(ins)
	case *instruction.Slash:
		return x.slash(ins)
	case *instruction.CreateTokenMetadata:
		return x.createTokenMetadata(ins)
	case *instruction.UpdateTokenMetadata:
		return x.updateTokenMetadata(ins)
	case *instruction.DelegateTokenAccount:
		return x.delegateTokenAccount(ins)
	case *instruction.RevokeDelegateTokenAccount:
		return x.revokeDelegateTokenAccount(ins)

	case *instruction.InitializeNcn:
		return x.initializeNcn(ins)
	case *instruction.InitializeOperator:
		return x.initializeOperator(ins)
	case *instruction.InitializeNcnOperatorState:
		return x.initializeNcnOperatorState(ins)
	case *instruction.NcnWarmupOperator:
		return x.toggleNcnTicket(relation.NcnOperator, ins.Ncn, ins.Operator, restake.Pubkey{}, true)
	case *instruction.NcnCooldownOperator:
		return x.toggleNcnTicket(relation.NcnOperator, ins.Ncn, ins.Operator, restake.Pubkey{}, false)
	case *instruction.OperatorWarmupNcn:
		return x.toggleOperatorTicket(relation.OperatorNcn, ins.Operator, ins.Ncn, true)
	case *instruction.OperatorCooldownNcn:
		return x.toggleOperatorTicket(relation.OperatorNcn, ins.Operator, ins.Ncn, false)
	case *instruction.InitializeNcnVaultTicket:
		return x.initializeNcnVaultTicket(ins)
	case *instruction.WarmupNcnVaultTicket:
		return x.toggleNcnTicket(relation.NcnVault, ins.Ncn, ins.Vault, restake.Pubkey{}, true)
	case *instruction.CooldownNcnVaultTicket:
		return x.toggleNcnTicket(relation.NcnVault, ins.Ncn, ins.Vault, restake.Pubkey{}, false)
	case *instruction.InitializeOperatorVaultTicket:
		return x.initializeOperatorVaultTicket(ins)
	case *instruction.WarmupOperatorVaultTicket:
		return x.toggleOperatorTicket(relation.OperatorVault, ins.Operator, ins.Vault, true)
	case *instruction.CooldownOperatorVaultTicket:
		return x.toggleOperatorTicket(relation.OperatorVault, ins.Operator, ins.Vault, false)
	case *instruction.InitializeNcnVaultSlasherTicket:
		return x.initializeNcnVaultSlasherTicket(ins)
	case *instruction.WarmupNcnVaultSlasherTicket:
		return x.toggleNcnTicket(relation.NcnVaultSlasher, ins.Ncn, ins.Vault, ins.Slasher, true)
	case *instruction.CooldownNcnVaultSlasherTicket:
		return x.toggleNcnTicket(relation.NcnVaultSlasher, ins.Ncn, ins.Vault, ins.Slasher, false)
	case *instruction.NcnSetAdmin:
		return x.ncnSetAdmin(ins)
	case *instruction.NcnSetSecondaryAdmin:
		return x.ncnSetSecondaryAdmin(ins)
	case *instruction.OperatorSetAdmin:
		return x.operatorSetAdmin(ins)
	case *instruction.OperatorSetSecondaryAdmin:
		return x.operatorSetSecondaryAdmin(ins)
	case *instruction.OperatorSetFee:
		return x.operatorSetFee(ins)
	}
	return errors.Wrapf(errcode.InvalidInstructionData, "unhandled %v", ins.Kind())
}

// signed fails unless addr signed the instruction.
func (x *execution) signed(addr restake.Pubkey) error {
	if !x.env.Signed(addr) {
		return errors.Wrapf(errcode.MissingRequiredSignature, "%v", addr)
	}
	return nil
}

// authorize calls check with each signer until one passes and returns it.
// A failure other than an authorization failure ends the search.
func (x *execution) authorize(check func(signer restake.Pubkey) error) (restake.Pubkey, error) {
	var last error = errcode.MissingRequiredSignature
	for _, s := range x.env.Signers {
		err := check(s)
		if err == nil {
			return s, nil
		}
		if code, ok := errcode.From(err); !ok || code.Kind() != errcode.KindAuthorization {
			return restake.Pubkey{}, err
		}
		last = err
	}
	return restake.Pubkey{}, last
}

func (x *execution) config() (*vault.Config, error) {
	if x.cfg == nil {
		cfg, err := x.vaults.Config()
		if err != nil {
			return nil, err
		}
		x.cfg = cfg
	}
	return x.cfg, nil
}

func (x *execution) epochLength() (uint64, error) {
	cfg, err := x.config()
	if err != nil {
		return 0, err
	}
	return cfg.EpochLength, nil
}

func (x *execution) epoch() (uint64, error) {
	el, err := x.epochLength()
	if err != nil {
		return 0, err
	}
	return restake.EpochOf(x.slot, el)
}

// emit records an event named after the instruction.
func (x *execution) emit(subject, actor restake.Pubkey, amount uint64) {
	x.events = append(x.events, &eventdb.Event{
		Name:    x.kind.String(),
		Subject: subject,
		Actor:   actor,
		Amount:  amount,
	})
}

func (x *execution) warn(err error) {
	x.warnings = append(x.warnings, err)
}

// requireActive fails unless the ticket exists and is active now.
func (x *execution) requireActive(k relation.Kind, left, right, third restake.Pubkey) (*relation.Ticket, error) {
	el, err := x.epochLength()
	if err != nil {
		return nil, err
	}
	t, err := x.relations.Ticket(k, left, right, third)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, relation.NotActive(k)
	}
	if err := t.CheckActive(x.slot, el); err != nil {
		return nil, err
	}
	return t, nil
}

// toggle warms up or cools down an existing ticket.
func (x *execution) toggle(k relation.Kind, left, right, third restake.Pubkey, warmup bool) error {
	el, err := x.epochLength()
	if err != nil {
		return err
	}
	t, err := x.relations.MustTicket(k, left, right, third)
	if err != nil {
		return err
	}
	if warmup {
		err = t.Warmup(x.slot, el)
	} else {
		err = t.Cooldown(x.slot, el)
	}
	if err != nil {
		return err
	}
	return x.relations.UpdateTicket(t)
}

// updatedVault loads a vault that is up to date for the current epoch.
func (x *execution) updatedVault(addr restake.Pubkey) (*vault.Vault, error) {
	el, err := x.epochLength()
	if err != nil {
		return nil, err
	}
	v, err := x.vaults.MustGet(addr)
	if err != nil {
		return nil, err
	}
	if err := v.CheckUpdateStateOk(x.slot, el); err != nil {
		return nil, err
	}
	return v, nil
}

// bump reserves the next value of a counter.
func bump(counter *uint64, overflow errcode.Code) (uint64, error) {
	idx := *counter
	if idx == ^uint64(0) {
		return 0, overflow
	}
	*counter = idx + 1
	return idx, nil
}
