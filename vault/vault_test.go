// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

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
	admin = restake.DeriveAddress([]byte("admin"))
	base  = restake.DeriveAddress([]byte("base"))
	other = restake.DeriveAddress([]byte("other"))
)

func newVault() *Vault {
	return NewVault(base, restake.DeriveAddress([]byte("vrt")), restake.DeriveAddress([]byte("asset")), admin, 0, 0, 0, 0, 0, 0)
}

func TestRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 50 {
		var v Vault
		f.Fuzz(&v)
		data := v.Encode()
		assert.Len(t, data, vaultSize)

		var decoded Vault
		require.NoError(t, decoded.Decode(data))
		assert.Equal(t, v, decoded)
		assert.Equal(t, data, decoded.Encode())

		var c Config
		f.Fuzz(&c)
		data = c.Encode()
		assert.Len(t, data, configSize)

		var decodedConfig Config
		require.NoError(t, decodedConfig.Decode(data))
		assert.Equal(t, c, decodedConfig)
	}

	var c Config
	assert.Error(t, c.Decode(newVault().Encode()))
}

func TestUpdateNeeded(t *testing.T) {
	v := newVault()
	v.LastFullStateUpdateSlot = 150

	require.NoError(t, v.CheckUpdateStateOk(199, epochLength))
	assert.Equal(t, errcode.VaultUpdateNeeded, v.CheckUpdateStateOk(200, epochLength))
	assert.Equal(t, errcode.InvalidEpochLength, v.CheckUpdateStateOk(200, 0))
}

func TestConfig(t *testing.T) {
	wallet := restake.DeriveAddress([]byte("wallet"))
	c := NewConfig(admin, epochLength, 10, wallet)
	assert.Equal(t, DefaultFeeCapBps, c.DepositWithdrawalFeeCapBps)
	assert.Equal(t, admin, c.FeeAdmin)

	assert.Equal(t, errcode.ConfigFeeAdminInvalid, c.SetProgramFee(other, 20))
	assert.Equal(t, errcode.VaultFeeCapExceeded, c.SetProgramFee(admin, 10_001))
	require.NoError(t, c.SetProgramFee(admin, 20))
	assert.Equal(t, uint16(20), c.ProgramFeeBps)

	assert.Equal(t, errcode.ConfigAdminInvalid, c.SetAdmin(other, ConfigFeeAdmin, other))
	require.NoError(t, c.SetAdmin(admin, ConfigFeeAdmin, other))
	assert.Equal(t, errcode.ConfigFeeAdminInvalid, c.SetProgramFeeWallet(admin, other))
	require.NoError(t, c.SetProgramFeeWallet(other, other))
	assert.Equal(t, other, c.ProgramFeeWallet)

	require.NoError(t, c.SetAdmin(admin, ConfigAdmin, other))
	assert.Equal(t, other, c.Admin)
	assert.Equal(t, errcode.InvalidArgument, c.SetAdmin(other, ConfigAdminRole(9), admin))

	for i := range uint64(3) {
		idx, err := c.NextVaultIndex()
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	c.NumOperators = ^uint64(0)
	_, err := c.NextOperatorIndex()
	assert.Equal(t, errcode.OperatorOverflow, err)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	l, err := ledger.New(db, ledger.Options{})
	require.NoError(t, err)

	svc := New(l.NewTx())
	_, err = svc.Config()
	assert.True(t, errcode.Is(err, errcode.AccountNotFound))

	require.NoError(t, svc.InitConfig(NewConfig(admin, epochLength, 0, admin)))
	assert.True(t, errcode.Is(svc.InitConfig(NewConfig(admin, epochLength, 0, admin)), errcode.AccountAlreadyInitialized))
	c, err := svc.Config()
	require.NoError(t, err)
	assert.Equal(t, uint64(epochLength), c.EpochLength)

	v := newVault()
	addr, err := svc.Add(v)
	require.NoError(t, err)
	assert.Equal(t, Address(base), addr)

	v.TokensDeposited = 42
	require.NoError(t, svc.Update(v))
	got, err := svc.MustGet(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.TokensDeposited)

	got, err = svc.Get(other)
	require.NoError(t, err)
	assert.Nil(t, got)
}
