// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

func TestRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0.3)
	for k, ctor := range registry {
		for range 20 {
			ins := ctor()
			f.Fuzz(ins)
			switch m := ins.(type) {
			case *CreateTokenMetadata:
				m.Name, m.Symbol, m.URI = "Restaked", "rst", "https://example.org"
			case *UpdateTokenMetadata:
				m.Name, m.Symbol, m.URI = "", "x", ""
			}
			assert.Equal(t, k, ins.Kind())

			data, err := Encode(ins)
			require.NoError(t, err, k.String())
			assert.Equal(t, uint8(k), data[0])

			decoded, err := Decode(data)
			require.NoError(t, err, k.String())
			assert.Equal(t, ins, decoded, k.String())
			assert.Equal(t, data, MustEncode(decoded))
		}
	}
}

func TestKindNames(t *testing.T) {
	for k := range registry {
		assert.NotContains(t, k.String(), "Kind(")
	}
	assert.Len(t, kindNames, len(registry))
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "MintTo", MintToKind.String())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	assert.True(t, errcode.Is(err, errcode.InvalidInstructionData))

	_, err = Decode([]byte{0xff})
	assert.True(t, errcode.Is(err, errcode.InvalidInstructionData))

	data := MustEncode(&SetDepositCapacity{Vault: restake.Pubkey{1}, Amount: 5})
	_, err = Decode(data[:len(data)-1])
	assert.True(t, errcode.Is(err, errcode.InvalidInstructionData))
	_, err = Decode(append(data, 0))
	assert.True(t, errcode.Is(err, errcode.InvalidInstructionData))
}

func TestEncodeLongString(t *testing.T) {
	_, err := Encode(&CreateTokenMetadata{TokenMetadata{Symbol: strings.Repeat("s", 11)}})
	assert.Error(t, err)
	assert.Panics(t, func() {
		MustEncode(&UpdateTokenMetadata{TokenMetadata{Name: strings.Repeat("n", 33)}})
	})
}

func TestSetFeesOptional(t *testing.T) {
	bps := uint16(120)
	data := MustEncode(&SetFees{Vault: restake.Pubkey{1}, WithdrawalFeeBps: &bps})
	ins, err := Decode(data)
	require.NoError(t, err)

	change := ins.(*SetFees).Change()
	assert.Nil(t, change.DepositFeeBps)
	assert.Nil(t, change.RewardFeeBps)
	require.NotNil(t, change.WithdrawalFeeBps)
	assert.Equal(t, bps, *change.WithdrawalFeeBps)
}

func TestEnvelope(t *testing.T) {
	a, b := restake.Pubkey{1}, restake.Pubkey{2}
	env, err := NewEnvelope(&SetIsPaused{Vault: a, IsPaused: true}, a)
	require.NoError(t, err)
	assert.True(t, env.Signed(a))
	assert.False(t, env.Signed(b))

	ins, err := Decode(env.Data)
	require.NoError(t, err)
	assert.Equal(t, &SetIsPaused{Vault: a, IsPaused: true}, ins)
}
