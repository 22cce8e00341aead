// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/eventdb"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
	"github.com/vechain/restake/withdrawal"
)

func TestWiring(t *testing.T) {
	h := newWiredHarness(t)

	v := h.loadVault()
	assert.Equal(t, uint64(2), v.OperatorCount)
	assert.Equal(t, uint64(1), v.NcnCount)
	assert.Equal(t, uint64(1), v.SlasherCount)
	assert.Equal(t, uint64(40), v.LastFullStateUpdateSlot)

	n, err := ledger.Load[relation.Ncn](h.proc.Ledger(), h.ncn)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n.OperatorCount)
	assert.Equal(t, uint64(1), n.VaultCount)
	assert.Equal(t, uint64(1), n.SlasherCount)

	for i, op := range h.operators {
		d := h.delegation(op)
		require.NotNil(t, d)
		assert.Equal(t, uint64(i), d.Index)
		assert.Equal(t, uint64(40), d.LastUpdateSlot)
	}

	cfg, err := ledger.Load[vault.Config](h.proc.Ledger(), vault.ConfigAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.NumVaults)
	assert.Equal(t, uint64(1), cfg.NumNcns)
	assert.Equal(t, uint64(2), cfg.NumOperators)

	supply, err := token.New(h.proc.Ledger().NewTx()).Supply(vrtMint)
	require.NoError(t, err)
	assert.Zero(t, supply)
}

func TestDelegationCapacity(t *testing.T) {
	h := newWiredHarness(t)

	h.deposit(alice, 1000)
	h.exec(&instruction.SetDepositCapacity{Vault: h.vault, Amount: 1000}, vaultAdmin)

	h.delegate(h.operators[0], 600)
	h.fail(errcode.VaultCapacityExceeded, &instruction.AddDelegation{
		VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[1]},
		Amount:        500,
	}, vaultAdmin)
	h.delegate(h.operators[1], 400)

	v := h.loadVault()
	assert.Equal(t, uint64(1000), v.DelegationState.Staked)
	assert.Equal(t, uint64(600), h.delegation(h.operators[0]).State.Staked)
	assert.Equal(t, uint64(400), h.delegation(h.operators[1]).State.Staked)

	// nothing is left to stake
	h.exec(&instruction.SetDepositCapacity{Vault: h.vault, Amount: 2000}, vaultAdmin)
	h.fail(errcode.VaultInsufficientFunds, &instruction.AddDelegation{
		VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[1]},
		Amount:        1,
	}, vaultAdmin)
}

func TestCooldownWithdrawal(t *testing.T) {
	h := newWiredHarness(t)
	ticketBase := key("ticket")
	op := instruction.VaultOperator{Vault: h.vault, Operator: h.operators[0]}
	burn := &instruction.BurnWithdrawalTicket{Vault: h.vault, Base: ticketBase}

	h.deposit(alice, 600)
	h.delegate(h.operators[0], 600)
	h.exec(&instruction.CooldownDelegation{VaultOperator: op, Amount: 600}, vaultAdmin)
	h.exec(&instruction.EnqueueWithdrawal{Vault: h.vault, Staker: alice, Base: ticketBase, VrtAmount: 600}, alice, ticketBase)

	ticketAddr := withdrawal.Address(h.vault, ticketBase)
	assert.Equal(t, uint64(600), h.balance(vrtMint, ticketAddr))
	assert.Zero(t, h.balance(vrtMint, alice))
	h.fail(errcode.VaultStakerWithdrawalTicketNotWithdrawable, burn, alice)

	h.at(50)
	h.fail(errcode.VaultUpdateNeeded, burn, alice)
	h.update()
	h.at(51)
	v := h.loadVault()
	assert.Equal(t, uint64(600), v.VrtCoolingDown)
	assert.Equal(t, uint64(600), v.DelegationState.CoolingDown)
	h.fail(errcode.VaultStakerWithdrawalTicketNotWithdrawable, burn, alice)

	h.at(60)
	h.update()
	h.at(61)
	v = h.loadVault()
	assert.Equal(t, uint64(600), v.VrtReadyToClaim)
	assert.Zero(t, v.DelegationState.CoolingDown)

	r := h.exec(burn, alice)
	require.Len(t, r.Events, 1)
	assert.Equal(t, uint64(600), r.Events[0].Amount)

	assert.Equal(t, uint64(testFunding), h.balance(supportedMint, alice))
	assert.Zero(t, h.balance(vrtMint, ticketAddr))
	v = h.loadVault()
	assert.Zero(t, v.VrtSupply)
	assert.Zero(t, v.TokensDeposited)
	assert.Zero(t, v.VrtReadyToClaim)

	tk, err := ledger.Load[withdrawal.Ticket](h.proc.Ledger(), ticketAddr)
	require.NoError(t, err)
	assert.Nil(t, tk)
}

func TestWithdrawalUnstakesOnUpdate(t *testing.T) {
	h := newWiredHarness(t)
	ticketBase := key("ticket")

	h.deposit(alice, 1000)
	h.delegate(h.operators[0], 600)
	h.delegate(h.operators[1], 400)
	h.exec(&instruction.EnqueueWithdrawal{Vault: h.vault, Staker: alice, Base: ticketBase, VrtAmount: 500}, alice, ticketBase)

	h.at(50)
	h.update()

	// greedy allocation takes everything from the first operator
	assert.Equal(t, uint64(100), h.delegation(h.operators[0]).State.Staked)
	assert.Equal(t, uint64(500), h.delegation(h.operators[0]).State.EnqueuedForCooldown)
	assert.Equal(t, uint64(400), h.delegation(h.operators[1]).State.Staked)
	assert.Zero(t, h.loadVault().AdditionalAssetsNeedUnstaking)
}

func TestWithdrawalUnstakesProRata(t *testing.T) {
	h := newWiredHarness(t)
	ticketBase := key("ticket")

	h.deposit(alice, 1000)
	h.delegate(h.operators[0], 600)
	h.delegate(h.operators[1], 400)
	h.exec(&instruction.EnqueueWithdrawal{Vault: h.vault, Staker: alice, Base: ticketBase, VrtAmount: 500}, alice, ticketBase)

	h.at(50)
	h.updateWith(tracker.ProRata)

	assert.Equal(t, uint64(300), h.delegation(h.operators[0]).State.EnqueuedForCooldown)
	assert.Equal(t, uint64(200), h.delegation(h.operators[1]).State.EnqueuedForCooldown)
	assert.Equal(t, uint64(500), h.loadVault().DelegationState.EnqueuedForCooldown)
}

func TestSlash(t *testing.T) {
	h := newWiredHarness(t)
	slash := func(amount uint64) *instruction.Slash {
		return &instruction.Slash{
			VaultNcnSlasher: instruction.VaultNcnSlasher{Vault: h.vault, Ncn: h.ncn, Slasher: slasher},
			Operator:        h.operators[0],
			Amount:          amount,
		}
	}

	h.deposit(alice, 1000)
	h.delegate(h.operators[0], 1000)

	r := h.exec(slash(1000), slasher)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], errcode.VaultSlashIncomplete.Error())
	require.Len(t, r.Events, 1)
	assert.Equal(t, uint64(testMaxSlash), r.Events[0].Amount)

	assert.Equal(t, uint64(testMaxSlash), h.balance(supportedMint, slasher))
	assert.Equal(t, uint64(700), h.balance(supportedMint, h.vault))
	v := h.loadVault()
	assert.Equal(t, uint64(700), v.TokensDeposited)
	assert.Equal(t, uint64(700), v.DelegationState.Staked)
	assert.Equal(t, uint64(700), h.delegation(h.operators[0]).State.Staked)

	h.fail(errcode.VaultMaxSlashedPerOperatorExceeded, slash(1), slasher)
	h.fail(errcode.MissingRequiredSignature, slash(1), alice)

	h.at(50)
	h.update()
	h.exec(slash(100), slasher)
	assert.Equal(t, uint64(testMaxSlash+100), h.balance(supportedMint, slasher))
}

func TestSlashRequiresActiveSlasher(t *testing.T) {
	h := newWiredHarness(t)
	h.deposit(alice, 1000)
	h.delegate(h.operators[0], 1000)

	other := key("other-slasher")
	h.fail(errcode.VaultNcnSlasherTicketUnslashable, &instruction.Slash{
		VaultNcnSlasher: instruction.VaultNcnSlasher{Vault: h.vault, Ncn: h.ncn, Slasher: other},
		Operator:        h.operators[0],
		Amount:          1,
	}, other)
}

func TestFeesAndSlippage(t *testing.T) {
	h := newWiredHarness(t)

	h.fail(errcode.ConfigFeeAdminInvalid, &instruction.SetProgramFee{NewFeeBps: 100}, alice)
	h.exec(&instruction.SetProgramFee{NewFeeBps: 100}, configAdmin)

	h.deposit(alice, 10000)
	assert.Equal(t, uint64(10000), h.balance(vrtMint, alice))

	h.fail(errcode.SlippageError, &instruction.Burn{Vault: h.vault, Staker: alice, AmountIn: 1000, MinAmountOut: 991}, alice)
	h.exec(&instruction.Burn{Vault: h.vault, Staker: alice, AmountIn: 1000, MinAmountOut: 990}, alice)

	assert.Equal(t, uint64(10), h.balance(vrtMint, programWallet))
	assert.Equal(t, uint64(9000), h.balance(vrtMint, alice))
	assert.Equal(t, uint64(testFunding-10000+990), h.balance(supportedMint, alice))

	supply, err := token.New(h.proc.Ledger().NewTx()).Supply(vrtMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(9010), supply)
	assert.Equal(t, supply, h.loadVault().VrtSupply)
}

func TestRewardFee(t *testing.T) {
	h := newWiredHarness(t)
	fee := uint16(10)

	h.fail(errcode.VaultFeeAdminInvalid, &instruction.SetFees{Vault: h.vault, RewardFeeBps: &fee}, alice)
	h.exec(&instruction.SetFees{Vault: h.vault, RewardFeeBps: &fee}, vaultAdmin)
	h.fail(errcode.VaultFeeChangeTooSoon, &instruction.SetFees{Vault: h.vault, RewardFeeBps: &fee}, vaultAdmin)

	h.deposit(alice, 10000)
	h.reward(100_000)
	r := h.exec(&instruction.UpdateVaultBalance{Vault: h.vault})
	require.Len(t, r.Events, 1)
	assert.Equal(t, uint64(9), r.Events[0].Amount)

	assert.Equal(t, uint64(9), h.balance(vrtMint, vaultAdmin))
	v := h.loadVault()
	assert.Equal(t, uint64(110_000), v.TokensDeposited)
	assert.Equal(t, uint64(10009), v.VrtSupply)
}

func TestDepositFee(t *testing.T) {
	h := newHarness(t)
	h.exec(&instruction.InitializeVault{
		Base:          vaultBase,
		Admin:         vaultAdmin,
		VrtMint:       vrtMint,
		SupportedMint: supportedMint,
		DepositFeeBps: 100,
		Decimals:      9,
	}, vaultBase, vaultAdmin)
	h.fail(errcode.VaultFeeCapExceeded, &instruction.InitializeVault{
		Base:          key("vault-2"),
		Admin:         vaultAdmin,
		VrtMint:       key("vrt-2"),
		SupportedMint: supportedMint,
		DepositFeeBps: vault.DefaultFeeCapBps + 1,
	}, key("vault-2"), vaultAdmin)

	h.deposit(alice, 10000)
	assert.Equal(t, uint64(9900), h.balance(vrtMint, alice))
	assert.Equal(t, uint64(100), h.balance(vrtMint, vaultAdmin))
	assert.Equal(t, uint64(10000), h.loadVault().VrtSupply)
}

func TestStaleVault(t *testing.T) {
	h := newWiredHarness(t)
	h.deposit(alice, 1000)

	h.at(50)
	h.fail(errcode.VaultUpdateNeeded, &instruction.MintTo{Vault: h.vault, Depositor: alice, AmountIn: 1}, alice)
	h.fail(errcode.VaultUpdateNeeded, &instruction.AddDelegation{
		VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[0]},
		Amount:        1,
	}, vaultAdmin)
	h.update()
	h.delegate(h.operators[0], 1)
}

func TestCrankOrder(t *testing.T) {
	h := newWiredHarness(t)
	crank := func(i int) *instruction.CrankVaultUpdateStateTracker {
		return &instruction.CrankVaultUpdateStateTracker{VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[i]}}
	}
	closeAt := func(epoch uint64) *instruction.CloseVaultUpdateStateTracker {
		return &instruction.CloseVaultUpdateStateTracker{Vault: h.vault, Epoch: epoch}
	}

	h.fail(errcode.VaultIsUpdated, &instruction.InitializeVaultUpdateStateTracker{Vault: h.vault})

	h.at(50)
	h.exec(&instruction.InitializeVaultUpdateStateTracker{Vault: h.vault})
	h.fail(errcode.AccountAlreadyInitialized, &instruction.InitializeVaultUpdateStateTracker{Vault: h.vault})
	h.fail(errcode.VaultUpdateIncorrectIndex, crank(1))
	h.exec(crank(0))
	h.fail(errcode.VaultUpdateIncorrectIndex, crank(0))
	h.fail(errcode.VaultUpdateStateNotFinishedUpdating, closeAt(5))
	h.fail(errcode.InvalidArgument, closeAt(6))
	h.exec(crank(1))
	h.exec(closeAt(5))

	assert.Equal(t, uint64(50), h.loadVault().LastFullStateUpdateSlot)
	tr, err := ledger.Load[tracker.Tracker](h.proc.Ledger(), tracker.Address(h.vault, 5))
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestStaleTrackerIsReclaimed(t *testing.T) {
	h := newWiredHarness(t)

	h.at(50)
	h.exec(&instruction.InitializeVaultUpdateStateTracker{Vault: h.vault})

	h.at(60)
	h.exec(&instruction.CloseVaultUpdateStateTracker{Vault: h.vault, Epoch: 5})
	// reclaiming does not mark the vault updated
	assert.Equal(t, uint64(40), h.loadVault().LastFullStateUpdateSlot)
	h.update()
	assert.Equal(t, uint64(60), h.loadVault().LastFullStateUpdateSlot)
}

func TestStalledUpdateDoesNotUnstakeTwice(t *testing.T) {
	h := newWiredHarness(t)
	ticketBase := key("ticket")

	h.deposit(alice, 1000)
	h.delegate(h.operators[0], 600)
	h.delegate(h.operators[1], 400)
	h.exec(&instruction.EnqueueWithdrawal{Vault: h.vault, Staker: alice, Base: ticketBase, VrtAmount: 500}, alice, ticketBase)

	// epoch 5 cranks the first operator and is abandoned
	h.at(50)
	h.exec(&instruction.InitializeVaultUpdateStateTracker{Vault: h.vault})
	h.exec(&instruction.CrankVaultUpdateStateTracker{VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[0]}})
	assert.Equal(t, uint64(500), h.loadVault().DelegationState.Staked)

	h.at(60)
	h.update()
	h.exec(&instruction.CloseVaultUpdateStateTracker{Vault: h.vault, Epoch: 5})

	d0, d1 := h.delegation(h.operators[0]).State, h.delegation(h.operators[1]).State
	assert.Equal(t, delegation.State{Staked: 100, CoolingDown: 500}, d0)
	assert.Equal(t, delegation.State{Staked: 400}, d1)

	v := h.loadVault()
	assert.Equal(t, delegation.State{Staked: 500, CoolingDown: 500}, v.DelegationState)
	assert.Zero(t, v.AdditionalAssetsNeedUnstaking)
}

func TestChangeWithdrawalTicketOwner(t *testing.T) {
	h := newWiredHarness(t)
	ticketBase := key("ticket")

	h.deposit(alice, 500)
	h.exec(&instruction.EnqueueWithdrawal{Vault: h.vault, Staker: alice, Base: ticketBase, VrtAmount: 500}, alice, ticketBase)

	change := &instruction.ChangeWithdrawalTicketOwner{Vault: h.vault, Base: ticketBase, NewOwner: bob}
	h.fail(errcode.VaultStakerWithdrawalTicketInvalidStaker, change, bob)
	h.exec(change, alice)

	h.at(60)
	h.update()
	burn := &instruction.BurnWithdrawalTicket{Vault: h.vault, Base: ticketBase}
	h.fail(errcode.MissingRequiredSignature, burn, alice)
	h.exec(burn, bob)
	assert.Equal(t, uint64(testFunding+500), h.balance(supportedMint, bob))
	assert.Equal(t, uint64(testFunding-500), h.balance(supportedMint, alice))
}

func TestPause(t *testing.T) {
	h := newWiredHarness(t)

	h.fail(errcode.VaultAdminInvalid, &instruction.SetIsPaused{Vault: h.vault, IsPaused: true}, alice)
	h.exec(&instruction.SetIsPaused{Vault: h.vault, IsPaused: true}, vaultAdmin)
	h.fail(errcode.VaultIsPaused, &instruction.MintTo{Vault: h.vault, Depositor: alice, AmountIn: 1}, alice)

	h.exec(&instruction.SetIsPaused{Vault: h.vault, IsPaused: false}, vaultAdmin)
	h.deposit(alice, 1)
}

func TestMintBurnAdmin(t *testing.T) {
	h := newWiredHarness(t)
	gate := key("gate")

	h.exec(&instruction.SetSecondaryAdmin{Vault: h.vault, Role: vault.MintBurnAdmin, NewAdmin: gate}, vaultAdmin)
	h.fail(errcode.VaultMintBurnAdminInvalid, &instruction.MintTo{Vault: h.vault, Depositor: alice, AmountIn: 1}, alice)
	h.exec(&instruction.MintTo{Vault: h.vault, Depositor: alice, AmountIn: 1}, alice, gate)
}

func TestSetAdmin(t *testing.T) {
	h := newWiredHarness(t)
	next := key("next-admin")

	h.exec(&instruction.SetSecondaryAdmin{Vault: h.vault, Role: vault.CapacityAdmin, NewAdmin: bob}, vaultAdmin)
	h.exec(&instruction.SetAdmin{Vault: h.vault, NewAdmin: next}, vaultAdmin)

	v := h.loadVault()
	assert.Equal(t, next, v.Admin)
	assert.Equal(t, next, v.DelegationAdmin)
	assert.Equal(t, bob, v.CapacityAdmin)
	h.fail(errcode.VaultAdminInvalid, &instruction.SetAdmin{Vault: h.vault, NewAdmin: vaultAdmin}, vaultAdmin)
}

func TestNcnAndOperatorAdmins(t *testing.T) {
	h := newWiredHarness(t)
	next := key("next-admin")

	h.fail(errcode.NcnAdminInvalid, &instruction.NcnSetSecondaryAdmin{Ncn: h.ncn, Role: relation.NcnVaultRole, NewAdmin: bob}, alice)
	h.exec(&instruction.NcnSetSecondaryAdmin{Ncn: h.ncn, Role: relation.NcnVaultRole, NewAdmin: bob}, ncnAdmin)
	h.exec(&instruction.NcnSetAdmin{Ncn: h.ncn, NewAdmin: next}, ncnAdmin)

	n, err := ledger.Load[relation.Ncn](h.proc.Ledger(), h.ncn)
	require.NoError(t, err)
	assert.Equal(t, next, n.Admin)
	assert.Equal(t, next, n.OperatorAdmin)
	assert.Equal(t, bob, n.VaultAdmin)

	// the new vault admin alone now controls the NCN's vault tickets
	nv := instruction.NcnVault{Ncn: h.ncn, Vault: h.vault}
	h.fail(errcode.NcnVaultAdminInvalid, &instruction.CooldownNcnVaultTicket{NcnVault: nv}, ncnAdmin)
	h.exec(&instruction.CooldownNcnVaultTicket{NcnVault: nv}, bob)

	op := h.operators[0]
	h.exec(&instruction.OperatorSetSecondaryAdmin{Operator: op, Role: relation.OperatorNcnRole, NewAdmin: alice}, operatorAdmin)
	h.exec(&instruction.OperatorSetAdmin{Operator: op, NewAdmin: next}, operatorAdmin)
	h.fail(errcode.OperatorAdminInvalid, &instruction.OperatorSetAdmin{Operator: op, NewAdmin: bob}, operatorAdmin)

	o, err := ledger.Load[relation.Operator](h.proc.Ledger(), op)
	require.NoError(t, err)
	assert.Equal(t, next, o.Admin)
	assert.Equal(t, alice, o.NcnAdmin)
	assert.Equal(t, next, o.VaultAdmin)
}

func TestOperatorSetFee(t *testing.T) {
	h := newWiredHarness(t)
	op := h.operators[1]

	h.fail(errcode.OperatorAdminInvalid, &instruction.OperatorSetFee{Operator: op, OperatorFeeBps: 500}, alice)
	h.fail(errcode.OperatorFeeCapExceeded, &instruction.OperatorSetFee{Operator: op, OperatorFeeBps: 10_001}, alice, operatorAdmin)
	r := h.exec(&instruction.OperatorSetFee{Operator: op, OperatorFeeBps: 500}, operatorAdmin)
	require.Len(t, r.Events, 1)
	assert.Equal(t, uint64(500), r.Events[0].Amount)

	o, err := ledger.Load[relation.Operator](h.proc.Ledger(), op)
	require.NoError(t, err)
	assert.Equal(t, uint16(500), o.OperatorFeeBps)
}

func TestDelegateTokenAccount(t *testing.T) {
	h := newWiredHarness(t)
	stray := key("stray-mint")
	manager := key("asset-manager")

	tx := h.proc.Ledger().NewTx()
	tokens := token.New(tx)
	require.NoError(t, tokens.CreateMint(stray, configAdmin, 6))
	require.NoError(t, tokens.MintTo(stray, configAdmin, h.vault, 500))
	_, err := tx.Commit(nil)
	require.NoError(t, err)

	h.exec(&instruction.SetSecondaryAdmin{Vault: h.vault, Role: vault.DelegateAssetAdmin, NewAdmin: manager}, vaultAdmin)
	h.fail(errcode.VaultDelegateAssetAdminInvalid, &instruction.DelegateTokenAccount{Vault: h.vault, Mint: stray, Delegate: bob, Amount: 200}, vaultAdmin)
	h.fail(errcode.InvalidArgument, &instruction.DelegateTokenAccount{Vault: h.vault, Mint: supportedMint, Delegate: bob, Amount: 200}, manager)
	h.fail(errcode.InvalidArgument, &instruction.DelegateTokenAccount{Vault: h.vault, Mint: vrtMint, Delegate: bob, Amount: 200}, manager)
	h.exec(&instruction.DelegateTokenAccount{Vault: h.vault, Mint: stray, Delegate: bob, Amount: 200}, manager)

	tx = h.proc.Ledger().NewTx()
	require.NoError(t, token.New(tx).TransferFrom(stray, h.vault, bob, bob, 150))
	_, err = tx.Commit(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), h.balance(stray, bob))
	assert.Equal(t, uint64(350), h.balance(stray, h.vault))

	h.exec(&instruction.RevokeDelegateTokenAccount{Vault: h.vault, Mint: stray}, manager)
	assert.Equal(t, errcode.TokenDelegateInvalid, token.New(h.proc.Ledger().NewTx()).TransferFrom(stray, h.vault, bob, bob, 1))
}

func TestTokenMetadata(t *testing.T) {
	h := newWiredHarness(t)
	md := instruction.TokenMetadata{Vault: h.vault, Name: "Restaked", Symbol: "rVT", URI: "https://example.org/rvt.json"}

	h.fail(errcode.AccountNotFound, &instruction.UpdateTokenMetadata{TokenMetadata: md}, vaultAdmin)
	h.fail(errcode.VaultAdminInvalid, &instruction.CreateTokenMetadata{TokenMetadata: md}, alice)
	h.exec(&instruction.CreateTokenMetadata{TokenMetadata: md}, vaultAdmin)
	h.fail(errcode.AccountAlreadyInitialized, &instruction.CreateTokenMetadata{TokenMetadata: md}, vaultAdmin)

	md.Symbol = "rVT2"
	h.exec(&instruction.UpdateTokenMetadata{TokenMetadata: md}, vaultAdmin)

	m, err := token.New(h.proc.Ledger().NewTx()).Metadata(vrtMint)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Restaked", m.Name)
	assert.Equal(t, "rVT2", m.Symbol)
}

func TestFailureIsJournaled(t *testing.T) {
	h := newWiredHarness(t)
	h.deposit(alice, 1000)

	head := h.proc.Ledger().Head()
	before := h.loadVault()
	h.fail(errcode.VaultInsufficientFunds, &instruction.AddDelegation{
		VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[0]},
		Amount:        2000,
	}, vaultAdmin)

	assert.Equal(t, head+1, h.proc.Ledger().Head())
	entries, err := h.proc.Ledger().Journal(head+1, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(errcode.VaultInsufficientFunds), entries[0].Code)
	assert.Empty(t, entries[0].Touched)
	assert.Equal(t, []restake.Pubkey{vaultAdmin}, entries[0].Signers)
	assert.Equal(t, before, h.loadVault())
}

func TestInvalidInstruction(t *testing.T) {
	h := newHarness(t)

	_, err := h.proc.Execute(context.Background(), &instruction.Envelope{Data: []byte{0xff}})
	assert.True(t, errcode.Is(err, errcode.InvalidInstructionData))
	_, err = h.proc.Execute(context.Background(), &instruction.Envelope{})
	assert.True(t, errcode.Is(err, errcode.InvalidInstructionData))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env, err := instruction.NewEnvelope(&instruction.UpdateVaultBalance{Vault: h.vault})
	require.NoError(t, err)
	_, err = h.proc.Execute(ctx, env)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMissingSignature(t *testing.T) {
	h := newWiredHarness(t)

	h.fail(errcode.MissingRequiredSignature, &instruction.MintTo{Vault: h.vault, Depositor: alice, AmountIn: 1})
	h.fail(errcode.MissingRequiredSignature, &instruction.InitializeNcn{Base: key("ncn-2"), Admin: ncnAdmin}, ncnAdmin)
	h.fail(errcode.VaultDelegationAdminInvalid, &instruction.AddDelegation{
		VaultOperator: instruction.VaultOperator{Vault: h.vault, Operator: h.operators[0]},
		Amount:        1,
	}, alice)
}

func TestTicketLifecycle(t *testing.T) {
	h := newWiredHarness(t)
	no := instruction.NcnOperator{Ncn: h.ncn, Operator: h.operators[0]}

	h.fail(errcode.NcnOperatorAdminInvalid, &instruction.NcnCooldownOperator{NcnOperator: no}, alice)
	h.exec(&instruction.NcnCooldownOperator{NcnOperator: no}, ncnAdmin)
	h.fail(errcode.NcnCooldownOperatorFailed, &instruction.NcnCooldownOperator{NcnOperator: no}, ncnAdmin)

	tk, err := ledger.Load[relation.Ticket](h.proc.Ledger(), relation.TicketAddress(relation.NcnOperator, h.ncn, h.operators[0], restake.Pubkey{}))
	require.NoError(t, err)
	require.NotNil(t, tk)
	// cooling tickets stay slashable until the epoch after next
	assert.NoError(t, tk.CheckSlashable(50, testEpochLength))
	assert.Error(t, tk.CheckSlashable(60, testEpochLength))
}

func TestReceiptsAndEvents(t *testing.T) {
	h := newWiredHarness(t)

	ch := make(chan *Receipt, 1)
	sub := h.proc.SubscribeReceipts(ch)
	defer sub.Unsubscribe()

	r := h.deposit(alice, 1000)
	select {
	case got := <-ch:
		assert.Equal(t, r.Seq, got.Seq)
		assert.Equal(t, "MintTo", got.Kind)
	case <-time.After(time.Second):
		t.Fatal("no receipt")
	}
	assert.Contains(t, r.Touched, h.vault)

	subject := h.vault
	events, err := h.events.Filter(context.Background(), &eventdb.Filter{
		Subject: &subject,
		Names:   []string{"MintTo"},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, alice, events[0].Actor)
	assert.Equal(t, uint64(1000), events[0].Amount)
	assert.Equal(t, r.Seq, events[0].Seq)
}

func TestReceiptsInCommitOrder(t *testing.T) {
	h := newWiredHarness(t)

	ch := make(chan *Receipt)
	sub := h.proc.SubscribeReceipts(ch)
	defer sub.Unsubscribe()

	want := make([]uint64, 0, 20)
	for i := range 20 {
		want = append(want, h.deposit(alice, uint64(i+1)).Seq)
	}
	got := make([]uint64, 0, len(want))
	for range want {
		select {
		case r := <-ch:
			got = append(got, r.Seq)
		case <-time.After(time.Second):
			t.Fatal("missing receipt")
		}
	}
	assert.Equal(t, want, got)
}

func TestEpochWaiter(t *testing.T) {
	h := newWiredHarness(t)
	w := h.proc.NewEpochWaiter()

	h.deposit(alice, 1)
	select {
	case <-w.C():
		t.Fatal("signaled within the epoch")
	default:
	}

	h.at(50)
	h.exec(&instruction.InitializeVaultUpdateStateTracker{Vault: h.vault})
	select {
	case <-w.C():
	case <-time.After(time.Second):
		t.Fatal("no epoch signal")
	}
}
