// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relation

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/lvldb"
	"github.com/vechain/restake/restake"
)

const epochLength = 100

var (
	ncn      = restake.DeriveAddress([]byte("ncn"))
	operator = restake.DeriveAddress([]byte("operator"))
	vault    = restake.DeriveAddress([]byte("vault"))
	slasher  = restake.DeriveAddress([]byte("slasher"))
	admin    = restake.DeriveAddress([]byte("admin"))
	other    = restake.DeriveAddress([]byte("other"))
)

func TestRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 50 {
		var tk Ticket
		f.Fuzz(&tk)
		data := tk.Encode()
		assert.Len(t, data, ticketSize)
		var got Ticket
		require.NoError(t, got.Decode(data))
		assert.Equal(t, tk, got)

		var n Ncn
		f.Fuzz(&n)
		data = n.Encode()
		assert.Len(t, data, ncnSize)
		var gotNcn Ncn
		require.NoError(t, gotNcn.Decode(data))
		assert.Equal(t, n, gotNcn)

		var o Operator
		f.Fuzz(&o)
		data = o.Encode()
		assert.Len(t, data, operatorSize)
		var gotOp Operator
		require.NoError(t, gotOp.Decode(data))
		assert.Equal(t, o, gotOp)
	}
}

func TestTicketLifecycle(t *testing.T) {
	for k := range kinds {
		tk := NewTicket(k, vault, ncn, slasher, 0, 10)
		info := k.info()

		assert.Equal(t, info.warmup, tk.Warmup(10, epochLength), k.String())
		require.NoError(t, tk.Warmup(11, epochLength), k.String())
		assert.Equal(t, info.warmup, tk.Warmup(12, epochLength), k.String())

		assert.Equal(t, info.notActive, tk.CheckActive(150, epochLength), k.String())
		assert.Equal(t, info.unslashable, tk.CheckSlashable(150, epochLength), k.String())
		assert.Equal(t, info.cooldown, tk.Cooldown(150, epochLength), k.String())

		require.NoError(t, tk.CheckActive(200, epochLength))
		require.NoError(t, tk.CheckSlashable(200, epochLength))

		require.NoError(t, tk.Cooldown(250, epochLength))
		assert.Equal(t, info.notActive, tk.CheckActive(250, epochLength), k.String())
		require.NoError(t, tk.CheckSlashable(399, epochLength))
		assert.Equal(t, info.unslashable, tk.CheckSlashable(400, epochLength), k.String())
		assert.Equal(t, info.cooldown, tk.Cooldown(400, epochLength), k.String())

		require.NoError(t, tk.Warmup(400, epochLength))
	}

	tk := NewTicket(NcnVault, ncn, vault, restake.Pubkey{}, 0, 0)
	assert.Equal(t, errcode.InvalidEpochLength, tk.CheckActive(1, 0))
	assert.Equal(t, errcode.InvalidEpochLength, tk.Warmup(1, 0))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, "vault-ncn-slasher", VaultNcnSlasher.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.False(t, Kind(0).Valid())
	assert.True(t, OperatorVault.Valid())

	assert.Equal(t, OwnerVault, VaultNcn.Owner())
	assert.Equal(t, OwnerOperator, OperatorNcn.Owner())
	assert.Equal(t, OwnerNcn, NcnVaultSlasher.Owner())

	pre, ok := VaultNcnSlasher.Prerequisite()
	assert.True(t, ok)
	assert.Equal(t, NcnVaultSlasher, pre)
	_, ok = NcnVault.Prerequisite()
	assert.False(t, ok)

	assert.Equal(t, errcode.OperatorVaultTicketUnslashable, Unslashable(OperatorVault))
	assert.Equal(t, errcode.NcnVaultTicketNotActive, NotActive(NcnVault))

	// addresses differ by kind and by direction
	assert.NotEqual(t, TicketAddress(NcnVault, ncn, vault, restake.Pubkey{}), TicketAddress(VaultNcn, ncn, vault, restake.Pubkey{}))
	assert.NotEqual(t, TicketAddress(NcnVault, ncn, vault, restake.Pubkey{}), TicketAddress(NcnVault, vault, ncn, restake.Pubkey{}))
}

func TestAdmins(t *testing.T) {
	n := NewNcn(ncn, admin, 0)
	n.VaultAdmin = other
	require.NoError(t, n.CheckAdmin(NcnOperator, admin))
	require.NoError(t, n.CheckAdmin(NcnVault, other))
	assert.Equal(t, errcode.NcnVaultAdminInvalid, n.CheckAdmin(NcnVault, admin))
	assert.Equal(t, errcode.NcnOperatorAdminInvalid, n.CheckAdmin(NcnOperator, other))
	assert.Equal(t, errcode.NcnSlasherAdminInvalid, n.CheckAdmin(NcnVaultSlasher, other))

	o := NewOperator(operator, admin, 0, 100)
	o.NcnAdmin = other
	require.NoError(t, o.CheckAdmin(OperatorNcn, other))
	assert.Equal(t, errcode.OperatorNcnAdminInvalid, o.CheckAdmin(OperatorNcn, admin))
	assert.Equal(t, errcode.OperatorVaultAdminInvalid, o.CheckAdmin(OperatorVault, other))
	assert.Equal(t, errcode.OperatorAdminInvalid, o.CheckAdmin(Kind(0), other))
}

func TestSetAdmins(t *testing.T) {
	n := NewNcn(ncn, admin, 0)
	require.NoError(t, n.SetSecondaryAdmin(admin, NcnSlasherRole, slasher))
	assert.Equal(t, errcode.NcnAdminInvalid, n.SetSecondaryAdmin(other, NcnVaultRole, other))
	assert.Equal(t, errcode.InvalidArgument, n.SetSecondaryAdmin(admin, NcnRole(9), other))

	require.NoError(t, n.SetAdmin(admin, other))
	assert.Equal(t, other, n.Admin)
	assert.Equal(t, other, n.OperatorAdmin)
	assert.Equal(t, other, n.VaultAdmin)
	assert.Equal(t, other, n.WithdrawAdmin)
	assert.Equal(t, slasher, n.SlasherAdmin)
	assert.Equal(t, errcode.NcnAdminInvalid, n.SetAdmin(admin, admin))

	o := NewOperator(operator, admin, 0, 100)
	require.NoError(t, o.SetSecondaryAdmin(admin, OperatorVaultRole, vault))
	require.NoError(t, o.SetAdmin(admin, other))
	assert.Equal(t, other, o.NcnAdmin)
	assert.Equal(t, vault, o.VaultAdmin)
	assert.Equal(t, other, o.WithdrawAdmin)
	assert.Equal(t, errcode.OperatorAdminInvalid, o.SetSecondaryAdmin(admin, OperatorNcnRole, admin))

	assert.Equal(t, errcode.OperatorAdminInvalid, o.SetFee(admin, 50))
	assert.Equal(t, errcode.OperatorFeeCapExceeded, o.SetFee(other, 10_001))
	require.NoError(t, o.SetFee(other, 10_000))
	assert.Equal(t, uint16(10_000), o.OperatorFeeBps)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	l, err := ledger.New(db, ledger.Options{})
	require.NoError(t, err)
	svc := New(l.NewTx())

	got, err := svc.Ticket(OperatorVault, operator, vault, restake.Pubkey{})
	require.NoError(t, err)
	assert.Nil(t, got)

	tk := NewTicket(OperatorVault, operator, vault, restake.Pubkey{}, 0, 5)
	require.NoError(t, svc.AddTicket(tk))
	assert.True(t, errcode.Is(svc.AddTicket(tk), errcode.AccountAlreadyInitialized))
	require.NoError(t, tk.Warmup(6, epochLength))
	require.NoError(t, svc.UpdateTicket(tk))

	got, err = svc.MustTicket(OperatorVault, operator, vault, restake.Pubkey{})
	require.NoError(t, err)
	assert.Equal(t, tk, got)

	ncnAddr, err := svc.AddNcn(NewNcn(ncn, admin, 0))
	require.NoError(t, err)
	n, err := svc.Ncn(ncnAddr)
	require.NoError(t, err)
	n.VaultCount++
	require.NoError(t, svc.UpdateNcn(n))

	opAddr, err := svc.AddOperator(NewOperator(operator, admin, 0, 0))
	require.NoError(t, err)
	o, err := svc.Operator(opAddr)
	require.NoError(t, err)
	o.VaultCount++
	require.NoError(t, svc.UpdateOperator(o))

	_, err = svc.Operator(ncnAddr)
	assert.True(t, errcode.Is(err, errcode.InvalidAccountData))
}
