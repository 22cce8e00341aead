// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/clock"
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/eventdb"
	"github.com/vechain/restake/genesis"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/lvldb"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
)

const (
	testEpochLength = 10
	testFunding     = 1_000_000
	testMaxSlash    = 300
)

func key(name string) restake.Pubkey {
	return restake.DeriveAddress([]byte("test-key"), []byte(name))
}

var (
	configAdmin   = key("config-admin")
	programWallet = key("program-wallet")
	supportedMint = key("supported-mint")
	vrtMint       = key("vrt-mint")
	vaultBase     = key("vault-base")
	vaultAdmin    = key("vault-admin")
	ncnBase       = key("ncn-base")
	ncnAdmin      = key("ncn-admin")
	operatorAdmin = key("operator-admin")
	slasher       = key("slasher")
	alice         = key("alice")
	bob           = key("bob")

	operatorBases = []restake.Pubkey{key("operator-0"), key("operator-1")}
)

// harness drives a processor through a fully wired vault: one NCN, two
// operators, a slasher and a delegation to each operator, with every
// relationship active.
type harness struct {
	t      *testing.T
	clk    *clock.Manual
	proc   *Processor
	events *eventdb.EventDB

	vault     restake.Pubkey
	ncn       restake.Pubkey
	operators []restake.Pubkey
}

func newHarness(t *testing.T) *harness {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	l, err := ledger.New(db, ledger.Options{})
	require.NoError(t, err)
	events, err := eventdb.NewMem()
	require.NoError(t, err)

	g := &genesis.Genesis{
		Config: genesis.Config{
			Admin:            configAdmin,
			EpochLength:      testEpochLength,
			ProgramFeeWallet: programWallet,
		},
		Mints: []genesis.Mint{{
			Address:   supportedMint,
			Authority: configAdmin,
			Decimals:  9,
			Balances: []genesis.Balance{
				{Owner: alice, Amount: testFunding},
				{Owner: bob, Amount: testFunding},
			},
		}},
	}
	_, err = g.Build(l)
	require.NoError(t, err)

	clk := clock.NewManual(1)
	h := &harness{
		t:      t,
		clk:    clk,
		proc:   New(l, clk, events),
		events: events,
		vault:  vault.Address(vaultBase),
		ncn:    relation.NcnAddress(ncnBase),
	}
	for _, b := range operatorBases {
		h.operators = append(h.operators, relation.OperatorAddress(b))
	}
	t.Cleanup(func() {
		h.proc.Close()
		events.Close()
		db.Close()
	})
	return h
}

// newWiredHarness returns a harness at slot 41 with every ticket active and
// the vault updated for epoch 4.
func newWiredHarness(t *testing.T) *harness {
	h := newHarness(t)
	h.wire()
	return h
}

func (h *harness) execute(ins instruction.Instruction, signers ...restake.Pubkey) (*Receipt, error) {
	env, err := instruction.NewEnvelope(ins, signers...)
	require.NoError(h.t, err)
	return h.proc.Execute(context.Background(), env)
}

func (h *harness) exec(ins instruction.Instruction, signers ...restake.Pubkey) *Receipt {
	h.t.Helper()
	r, err := h.execute(ins, signers...)
	require.NoError(h.t, err, "%v", ins.Kind())
	return r
}

func (h *harness) fail(code errcode.Code, ins instruction.Instruction, signers ...restake.Pubkey) {
	h.t.Helper()
	_, err := h.execute(ins, signers...)
	require.Error(h.t, err, "%v", ins.Kind())
	assert.True(h.t, errcode.Is(err, code), "%v: want %v, got %v", ins.Kind(), code, err)
}

func (h *harness) at(slot uint64) {
	h.clk.Set(slot)
}

func (h *harness) wire() {
	h.at(1)
	h.exec(&instruction.InitializeNcn{Base: ncnBase, Admin: ncnAdmin}, ncnBase, ncnAdmin)
	for _, b := range operatorBases {
		h.exec(&instruction.InitializeOperator{Base: b, Admin: operatorAdmin}, b, operatorAdmin)
	}
	h.exec(&instruction.InitializeVault{
		Base:          vaultBase,
		Admin:         vaultAdmin,
		VrtMint:       vrtMint,
		SupportedMint: supportedMint,
		Decimals:      9,
	}, vaultBase, vaultAdmin)
	for _, op := range h.operators {
		h.exec(&instruction.InitializeNcnOperatorState{NcnOperator: instruction.NcnOperator{Ncn: h.ncn, Operator: op}}, ncnAdmin)
		h.exec(&instruction.InitializeOperatorVaultTicket{OperatorVault: instruction.OperatorVault{Operator: op, Vault: h.vault}}, operatorAdmin)
	}
	h.exec(&instruction.InitializeNcnVaultTicket{NcnVault: instruction.NcnVault{Ncn: h.ncn, Vault: h.vault}}, ncnAdmin)
	h.exec(&instruction.InitializeNcnVaultSlasherTicket{
		NcnVaultSlasher:      instruction.NcnVaultSlasher{Ncn: h.ncn, Vault: h.vault, Slasher: slasher},
		MaxSlashablePerEpoch: testMaxSlash,
	}, ncnAdmin)

	h.at(2)
	for _, op := range h.operators {
		no := instruction.NcnOperator{Ncn: h.ncn, Operator: op}
		h.exec(&instruction.NcnWarmupOperator{NcnOperator: no}, ncnAdmin)
		h.exec(&instruction.OperatorWarmupNcn{NcnOperator: no}, operatorAdmin)
		h.exec(&instruction.WarmupOperatorVaultTicket{OperatorVault: instruction.OperatorVault{Operator: op, Vault: h.vault}}, operatorAdmin)
	}
	h.exec(&instruction.WarmupNcnVaultTicket{NcnVault: instruction.NcnVault{Ncn: h.ncn, Vault: h.vault}}, ncnAdmin)
	h.exec(&instruction.WarmupNcnVaultSlasherTicket{NcnVaultSlasher: instruction.NcnVaultSlasher{Ncn: h.ncn, Vault: h.vault, Slasher: slasher}}, ncnAdmin)

	h.at(20)
	h.update()
	for _, op := range h.operators {
		h.exec(&instruction.InitializeVaultOperatorDelegation{VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: op}}, vaultAdmin)
	}
	vn := instruction.VaultNcn{Vault: h.vault, Ncn: h.ncn}
	vns := instruction.VaultNcnSlasher{Vault: h.vault, Ncn: h.ncn, Slasher: slasher}
	h.exec(&instruction.InitializeVaultNcnTicket{VaultNcn: vn}, vaultAdmin)
	h.exec(&instruction.InitializeVaultNcnSlasherTicket{VaultNcnSlasher: vns}, vaultAdmin)

	h.at(21)
	h.exec(&instruction.WarmupVaultNcnTicket{VaultNcn: vn}, vaultAdmin)
	h.exec(&instruction.WarmupVaultNcnSlasherTicket{VaultNcnSlasher: vns}, vaultAdmin)

	h.at(40)
	h.update()
	h.at(41)
}

// update runs a full greedy update of the vault in the current epoch.
func (h *harness) update() {
	h.updateWith(tracker.Greedy)
}

func (h *harness) updateWith(method tracker.Method) {
	h.t.Helper()
	h.exec(&instruction.InitializeVaultUpdateStateTracker{Vault: h.vault, Method: method})
	for _, op := range h.operators {
		if d := h.delegation(op); d != nil {
			h.exec(&instruction.CrankVaultUpdateStateTracker{VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: op}})
		}
	}
	h.exec(&instruction.CloseVaultUpdateStateTracker{Vault: h.vault, Epoch: h.clk.Slot() / testEpochLength})
}

func (h *harness) deposit(who restake.Pubkey, amount uint64) *Receipt {
	return h.exec(&instruction.MintTo{Vault: h.vault, Depositor: who, AmountIn: amount}, who)
}

func (h *harness) delegate(op restake.Pubkey, amount uint64) {
	h.exec(&instruction.AddDelegation{VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: op}, Amount: amount}, vaultAdmin)
}

func (h *harness) loadVault() *vault.Vault {
	v, err := ledger.Load[vault.Vault](h.proc.Ledger(), h.vault)
	require.NoError(h.t, err)
	require.NotNil(h.t, v)
	return v
}

func (h *harness) delegation(op restake.Pubkey) *delegation.VaultOperatorDelegation {
	d, err := ledger.Load[delegation.VaultOperatorDelegation](h.proc.Ledger(), delegation.Address(h.vault, op))
	require.NoError(h.t, err)
	return d
}

func (h *harness) balance(mint, owner restake.Pubkey) uint64 {
	bal, err := token.New(h.proc.Ledger().NewTx()).Balance(mint, owner)
	require.NoError(h.t, err)
	return bal
}

// reward credits the vault's token account as an external transfer would.
func (h *harness) reward(amount uint64) {
	tx := h.proc.Ledger().NewTx()
	require.NoError(h.t, token.New(tx).MintTo(supportedMint, configAdmin, h.vault, amount))
	_, err := tx.Commit(nil)
	require.NoError(h.t, err)
}
