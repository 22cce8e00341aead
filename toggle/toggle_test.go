// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package toggle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
)

const epochLength = 100

func TestNewIsInactive(t *testing.T) {
	tg := New(50)
	st, err := tg.State(50, epochLength)
	require.NoError(t, err)
	assert.Equal(t, Inactive, st)
	assert.True(t, tg.IsInactive(10_000, epochLength))
}

func TestActivateSameSlotRejected(t *testing.T) {
	tg := New(50)
	ok, err := tg.Activate(50, epochLength)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = tg.Activate(51, epochLength)
	assert.True(t, ok)
}

func TestWarmupWindow(t *testing.T) {
	tg := New(0)
	ok, _ := tg.Activate(150, epochLength)
	require.True(t, ok)

	for _, slot := range []uint64{150, 199, 200, 299} {
		assert.True(t, tg.IsWarmingUp(slot, epochLength), "slot %d", slot)
		assert.False(t, tg.IsActive(slot, epochLength), "slot %d", slot)
	}
	assert.True(t, tg.IsActive(300, epochLength))

	ok, _ = tg.Activate(300, epochLength)
	assert.False(t, ok, "already active")
}

func TestCooldownWindow(t *testing.T) {
	tg := New(0)
	tg.Activate(1, epochLength)

	ok, _ := tg.Deactivate(150, epochLength)
	assert.False(t, ok, "still warming up")

	ok, _ = tg.Deactivate(250, epochLength)
	require.True(t, ok)

	assert.True(t, tg.IsCoolingDown(250, epochLength))
	assert.True(t, tg.IsCoolingDown(399, epochLength))
	assert.True(t, tg.IsActiveOrCooldown(399, epochLength))
	assert.False(t, tg.IsActive(260, epochLength))
	assert.True(t, tg.IsInactive(400, epochLength))
	assert.False(t, tg.IsActiveOrCooldown(400, epochLength))

	ok, _ = tg.Deactivate(400, epochLength)
	assert.False(t, ok)

	ok, _ = tg.Activate(401, epochLength)
	assert.True(t, ok)
	assert.True(t, tg.IsWarmingUp(401, epochLength))
}

func TestNeverActiveWithinFirstEpoch(t *testing.T) {
	for start := uint64(1); start < 3*epochLength; start += 7 {
		tg := New(0)
		ok, _ := tg.Activate(start, epochLength)
		require.True(t, ok)
		epoch := start / epochLength
		for slot := start; slot < (epoch+2)*epochLength; slot += 3 {
			assert.False(t, tg.IsActive(slot, epochLength))
		}
		assert.True(t, tg.IsActive((epoch+2)*epochLength, epochLength))
	}
}

func TestInvalidEpochLength(t *testing.T) {
	tg := New(0)
	_, err := tg.State(1, 0)
	assert.Equal(t, errcode.InvalidEpochLength, err)
	_, err = tg.Activate(1, 0)
	assert.Equal(t, errcode.InvalidEpochLength, err)
	assert.False(t, tg.IsActive(1, 0))
}

func TestEncodeRoundTrip(t *testing.T) {
	tg := SlotToggle{SlotAdded: 12, SlotRemoved: 7}
	enc := layout.NewEncoder(EncodedSize)
	tg.Encode(enc)
	require.Equal(t, EncodedSize, enc.Len())

	var back SlotToggle
	dec := layout.NewDecoder(enc.Bytes())
	back.Decode(dec)
	require.NoError(t, dec.Finish())
	assert.Equal(t, tg, back)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "warmup", WarmUp.String())
	assert.Equal(t, "unknown", State(9).String())
}
