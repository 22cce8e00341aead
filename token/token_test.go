// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/lvldb"
	"github.com/vechain/restake/restake"
)

var (
	mint      = restake.DeriveAddress([]byte("mint"))
	authority = restake.DeriveAddress([]byte("authority"))
	alice     = restake.DeriveAddress([]byte("alice"))
	bob       = restake.DeriveAddress([]byte("bob"))
)

func newLedger(t *testing.T) *ledger.Ledger {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	l, err := ledger.New(store, ledger.Options{})
	require.NoError(t, err)
	return l
}

func TestRecordsRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 50 {
		var m Mint
		f.Fuzz(&m)
		var dm Mint
		require.NoError(t, dm.Decode(m.Encode()))
		assert.Equal(t, m, dm)
		assert.Len(t, m.Encode(), mintSize)

		var a Account
		f.Fuzz(&a)
		var da Account
		require.NoError(t, da.Decode(a.Encode()))
		assert.Equal(t, a, da)
		assert.Len(t, a.Encode(), accountSize)
	}

	md, err := NewMetadata(mint, "Restaked VET", "rVET", "https://example.org/rvet.json")
	require.NoError(t, err)
	data := md.Encode()
	assert.Len(t, data, metadataSize)
	var decoded Metadata
	require.NoError(t, decoded.Decode(data))
	assert.Equal(t, *md, decoded)
}

func TestMetadataWidths(t *testing.T) {
	_, err := NewMetadata(mint, strings.Repeat("n", NameLen+1), "s", "u")
	assert.Equal(t, errcode.InvalidArgument, err)
	_, err = NewMetadata(mint, "n", strings.Repeat("s", SymbolLen+1), "u")
	assert.Equal(t, errcode.InvalidArgument, err)
	_, err = NewMetadata(mint, "n", "s", strings.Repeat("u", URILen+1))
	assert.Equal(t, errcode.InvalidArgument, err)
	_, err = NewMetadata(mint, "\xff", "s", "u")
	assert.Equal(t, errcode.InvalidArgument, err)

	md, err := NewMetadata(mint, strings.Repeat("n", NameLen), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, errcode.InvalidArgument, md.Set("", strings.Repeat("s", SymbolLen+1), ""))
	assert.Equal(t, strings.Repeat("n", NameLen), md.Name)
}

func TestMintTransferBurn(t *testing.T) {
	l := newLedger(t)
	tx := l.NewTx()
	svc := New(tx)

	_, err := svc.Supply(mint)
	assert.True(t, errcode.Is(err, errcode.TokenMintNotFound))

	require.NoError(t, svc.CreateMint(mint, authority, 9))
	assert.True(t, errcode.Is(svc.CreateMint(mint, authority, 9), errcode.AccountAlreadyInitialized))

	assert.Equal(t, errcode.TokenAuthorityInvalid, svc.MintTo(mint, alice, alice, 10))
	require.NoError(t, svc.MintTo(mint, authority, alice, 1000))
	require.NoError(t, svc.Transfer(mint, alice, bob, 300))
	assert.True(t, errcode.Is(svc.Transfer(mint, bob, alice, 301), errcode.TokenInsufficientFunds))
	require.NoError(t, svc.Burn(mint, alice, 200))
	assert.True(t, errcode.Is(svc.Burn(mint, alice, 501), errcode.TokenInsufficientFunds))

	_, err = tx.Commit(&ledger.Entry{Slot: 1})
	require.NoError(t, err)

	svc = New(l.NewTx())
	supply, err := svc.Supply(mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(800), supply)
	for owner, want := range map[restake.Pubkey]uint64{alice: 500, bob: 300, authority: 0} {
		got, err := svc.Balance(mint, owner)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSetAuthority(t *testing.T) {
	svc := New(newLedger(t).NewTx())
	require.NoError(t, svc.CreateMint(mint, authority, 9))

	assert.Equal(t, errcode.TokenAuthorityInvalid, svc.SetAuthority(mint, alice, alice))
	require.NoError(t, svc.SetAuthority(mint, authority, alice))
	assert.Equal(t, errcode.TokenAuthorityInvalid, svc.MintTo(mint, authority, bob, 1))
	require.NoError(t, svc.MintTo(mint, alice, bob, 1))
}

func TestApproveTransferFrom(t *testing.T) {
	svc := New(newLedger(t).NewTx())
	require.NoError(t, svc.CreateMint(mint, authority, 9))
	require.NoError(t, svc.MintTo(mint, authority, alice, 100))

	assert.Equal(t, errcode.TokenDelegateInvalid, svc.TransferFrom(mint, alice, bob, bob, 1))
	require.NoError(t, svc.Approve(mint, alice, bob, 40))
	assert.Equal(t, errcode.TokenDelegateInvalid, svc.TransferFrom(mint, alice, authority, bob, 1))
	require.NoError(t, svc.TransferFrom(mint, alice, bob, bob, 30))
	assert.True(t, errcode.Is(svc.TransferFrom(mint, alice, bob, bob, 11), errcode.TokenInsufficientFunds))

	a, err := svc.account(mint, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), a.Amount)
	assert.Equal(t, uint64(10), a.DelegatedAmount)

	require.NoError(t, svc.Revoke(mint, alice))
	assert.Equal(t, errcode.TokenDelegateInvalid, svc.TransferFrom(mint, alice, bob, bob, 1))
	bal, err := svc.Balance(mint, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), bal)
}

func TestMetadataService(t *testing.T) {
	svc := New(newLedger(t).NewTx())
	md, err := NewMetadata(mint, "Restaked", "RST", "")
	require.NoError(t, err)
	assert.True(t, errcode.Is(svc.CreateMetadata(md), errcode.TokenMintNotFound))

	require.NoError(t, svc.CreateMint(mint, authority, 9))
	require.NoError(t, svc.CreateMetadata(md))
	require.NoError(t, md.Set("Restaked 2", "RST2", "ipfs://x"))
	require.NoError(t, svc.UpdateMetadata(md))

	got, err := svc.Metadata(mint)
	require.NoError(t, err)
	assert.Equal(t, "RST2", got.Symbol)

	none, err := svc.Metadata(bob)
	require.NoError(t, err)
	assert.Nil(t, none)
}
