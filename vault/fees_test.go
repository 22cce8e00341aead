// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/errcode"
)

func bps(v uint16) *uint16 { return &v }

func TestSetFees(t *testing.T) {
	cfg := NewConfig(admin, epochLength, 0, admin)
	v := newVault()
	v.DepositFeeBps = 100

	assert.Equal(t, errcode.VaultFeeAdminInvalid, v.SetFees(other, FeeChange{DepositFeeBps: bps(101)}, cfg, 200))
	assert.Equal(t, errcode.VaultFeeChangeTooSoon, v.SetFees(admin, FeeChange{DepositFeeBps: bps(3000)}, cfg, 150))
	assert.Equal(t, errcode.VaultFeeCapExceeded, v.SetFees(admin, FeeChange{DepositFeeBps: bps(3000)}, cfg, 200))
	assert.Equal(t, errcode.VaultFeeCapExceeded, v.SetFees(admin, FeeChange{RewardFeeBps: bps(10_001)}, cfg, 200))
	assert.Equal(t, errcode.VaultFeeBumpTooLarge, v.SetFees(admin, FeeChange{DepositFeeBps: bps(126)}, cfg, 200))
	assert.Equal(t, errcode.VaultFeeBumpTooLarge, v.SetFees(admin, FeeChange{WithdrawalFeeBps: bps(11)}, cfg, 200))

	// a rejected change leaves every fee untouched
	assert.Equal(t, errcode.VaultFeeBumpTooLarge, v.SetFees(admin, FeeChange{DepositFeeBps: bps(125), WithdrawalFeeBps: bps(11)}, cfg, 200))
	assert.Equal(t, uint16(100), v.DepositFeeBps)

	require.NoError(t, v.SetFees(admin, FeeChange{DepositFeeBps: bps(125), WithdrawalFeeBps: bps(10)}, cfg, 200))
	assert.Equal(t, uint16(125), v.DepositFeeBps)
	assert.Equal(t, uint16(10), v.WithdrawalFeeBps)
	assert.Equal(t, uint64(200), v.LastFeeChangeSlot)

	assert.Equal(t, errcode.VaultFeeChangeTooSoon, v.SetFees(admin, FeeChange{DepositFeeBps: bps(0)}, cfg, 399))
	require.NoError(t, v.SetFees(admin, FeeChange{DepositFeeBps: bps(0), RewardFeeBps: bps(5)}, cfg, 400))
	assert.Equal(t, uint16(0), v.DepositFeeBps)
	assert.Equal(t, uint16(5), v.RewardFeeBps)
}

func TestCheckFeeBump(t *testing.T) {
	for _, tt := range []struct {
		current, next uint16
		ok            bool
	}{
		{100, 50, true},
		{100, 110, true},
		{100, 125, true},
		{100, 126, false},
		{0, 10, true},
		{0, 11, false},
		{1000, 1250, true},
		{1000, 1251, false},
	} {
		err := checkFeeBump(tt.current, tt.next, DefaultFeeBumpBps, DefaultFeeRateOfChangeBps)
		if tt.ok {
			assert.NoError(t, err, "%d -> %d", tt.current, tt.next)
		} else {
			assert.Equal(t, errcode.VaultFeeBumpTooLarge, err, "%d -> %d", tt.current, tt.next)
		}
	}
}
