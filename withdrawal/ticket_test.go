// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package withdrawal

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
	vault  = restake.DeriveAddress([]byte("vault"))
	staker = restake.DeriveAddress([]byte("staker"))
	base   = restake.DeriveAddress([]byte("base"))
	other  = restake.DeriveAddress([]byte("other"))
)

func TestRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 100 {
		var tk Ticket
		f.Fuzz(&tk)
		data := tk.Encode()
		assert.Len(t, data, ticketSize)

		var got Ticket
		require.NoError(t, got.Decode(data))
		assert.Equal(t, tk, got)
		assert.Equal(t, data, got.Encode())
	}
}

func TestWithdrawable(t *testing.T) {
	tk := NewTicket(vault, staker, base, 100, 150)

	for _, slot := range []uint64{150, 199, 200, 299} {
		assert.Equal(t, errcode.VaultStakerWithdrawalTicketNotWithdrawable, tk.CheckWithdrawable(slot, epochLength), "slot %d", slot)
	}
	require.NoError(t, tk.CheckWithdrawable(300, epochLength))
	assert.Equal(t, errcode.InvalidEpochLength, tk.CheckWithdrawable(300, 0))
}

func TestChangeOwner(t *testing.T) {
	tk := NewTicket(vault, staker, base, 100, 150)

	assert.Equal(t, errcode.VaultStakerWithdrawalTicketInvalidStaker, tk.ChangeOwner(other, other))
	require.NoError(t, tk.ChangeOwner(staker, other))
	assert.Equal(t, other, tk.Staker)
	assert.Equal(t, errcode.VaultStakerWithdrawalTicketInvalidStaker, tk.CheckStaker(staker))
	// the address is fixed by vault and base
	assert.Equal(t, Address(vault, base), tk.Address())
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	l, err := ledger.New(db, ledger.Options{})
	require.NoError(t, err)
	svc := New(l.NewTx())

	tk := NewTicket(vault, staker, base, 100, 150)
	require.NoError(t, svc.Add(tk))
	assert.True(t, errcode.Is(svc.Add(tk), errcode.AccountAlreadyInitialized))

	tk.Staker = other
	require.NoError(t, svc.Update(tk))
	got, err := svc.MustGet(tk.Address())
	require.NoError(t, err)
	assert.Equal(t, other, got.Staker)

	require.NoError(t, svc.Close(tk))
	_, err = svc.MustGet(tk.Address())
	assert.True(t, errcode.Is(err, errcode.AccountNotFound))
	assert.True(t, errcode.Is(svc.Close(tk), errcode.AccountNotFound))
}
