// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
)

func TestMintWithFee(t *testing.T) {
	v := newVault()
	v.DepositFeeBps = 100

	_, err := v.MintWithFee(0, 0)
	assert.Equal(t, errcode.VaultMintZero, err)

	s, err := v.MintWithFee(1000, 990)
	require.NoError(t, err)
	assert.Equal(t, MintSummary{VrtToDepositor: 990, VrtToFeeWallet: 10}, s)
	assert.Equal(t, uint64(1000), v.VrtSupply)
	assert.Equal(t, uint64(1000), v.TokensDeposited)

	_, err = v.MintWithFee(500, 496)
	assert.Equal(t, errcode.SlippageError, err)
	assert.Equal(t, uint64(1000), v.VrtSupply)

	s, err = v.MintWithFee(500, 0)
	require.NoError(t, err)
	assert.Equal(t, MintSummary{VrtToDepositor: 495, VrtToFeeWallet: 5}, s)

	v.DepositCapacity = 2000
	_, err = v.MintWithFee(501, 0)
	assert.Equal(t, errcode.VaultCapacityExceeded, err)
}

func TestMintRoundsDown(t *testing.T) {
	v := newVault()
	v.DepositFeeBps = 100
	v.VrtSupply = 1000
	v.TokensDeposited = 2000

	_, err := v.PreviewDeposit(3)
	assert.Equal(t, errcode.VrtOutCannotBeZero, err)

	s, err := v.PreviewDeposit(999)
	require.NoError(t, err)
	// 999 * 1000 / 2000 = 499.5
	assert.Equal(t, uint64(499), s.VrtToDepositor+s.VrtToFeeWallet)
}

func TestBurnWithFee(t *testing.T) {
	v := newVault()
	v.WithdrawalFeeBps = 50
	v.VrtSupply = 1000
	v.TokensDeposited = 2000

	_, err := v.BurnWithFee(0, 10, 0, 2000)
	assert.Equal(t, errcode.VaultBurnZero, err)
	_, err = v.BurnWithFee(1001, 10, 0, 2000)
	assert.Equal(t, errcode.VaultInsufficientFunds, err)
	_, err = v.BurnWithFee(100, 10, 0, 195)
	assert.Equal(t, errcode.VaultInsufficientFunds, err)
	_, err = v.BurnWithFee(100, 10, 197, 2000)
	assert.Equal(t, errcode.SlippageError, err)

	s, err := v.BurnWithFee(100, 10, 196, 196)
	require.NoError(t, err)
	assert.Equal(t, BurnSummary{VaultFee: 1, ProgramFee: 1, Burned: 98, AssetsOut: 196}, s)
	assert.Equal(t, uint64(902), v.VrtSupply)
	assert.Equal(t, uint64(1804), v.TokensDeposited)
}

func TestUpdateBalance(t *testing.T) {
	v := newVault()
	v.RewardFeeBps = 1000
	v.VrtSupply = 1000
	v.TokensDeposited = 1000

	fee, err := v.RewardFeeVrt(900)
	require.NoError(t, err)
	assert.Zero(t, fee)

	fee, err = v.UpdateBalance(2000)
	require.NoError(t, err)
	// 100 assets of fee against 1900 remaining
	assert.Equal(t, uint64(52), fee)
	assert.Equal(t, uint64(1052), v.VrtSupply)
	assert.Equal(t, uint64(2000), v.TokensDeposited)

	v.DelegationState = delegation.State{Staked: 1500}
	_, err = v.UpdateBalance(1000)
	assert.Equal(t, errcode.VaultUnderflow, err)
}
