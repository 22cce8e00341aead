// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

// MintSummary is the outcome of a deposit.
type MintSummary struct {
	VrtToDepositor uint64
	VrtToFeeWallet uint64
}

// BurnSummary is the outcome of redeeming VRT. Fees are paid in VRT and are
// not burned.
type BurnSummary struct {
	VaultFee   uint64
	ProgramFee uint64
	Burned     uint64
	AssetsOut  uint64
}

// vaultMath reports overflow of the generic helpers as VaultOverflow.
func vaultMath(v uint64, err error) (uint64, error) {
	if err != nil && !errcode.Is(err, errcode.DivisionByZero) {
		return 0, errcode.VaultOverflow
	}
	return v, err
}

// VrtForAssets converts assets to VRT at the current rate, rounding down.
// An empty vault mints one to one.
func (v *Vault) VrtForAssets(assets uint64) (uint64, error) {
	if v.VrtSupply == 0 || v.TokensDeposited == 0 {
		return assets, nil
	}
	return vaultMath(restake.MulDiv(assets, v.VrtSupply, v.TokensDeposited))
}

// AssetsForVrt converts VRT to assets at the current rate, rounding down.
func (v *Vault) AssetsForVrt(vrt uint64) (uint64, error) {
	if v.VrtSupply == 0 {
		return 0, nil
	}
	return vaultMath(restake.MulDiv(vrt, v.TokensDeposited, v.VrtSupply))
}

// PreviewDeposit computes the VRT a deposit of assetsIn yields.
func (v *Vault) PreviewDeposit(assetsIn uint64) (MintSummary, error) {
	deposited, err := restake.CheckedAdd(v.TokensDeposited, assetsIn)
	if err != nil {
		return MintSummary{}, errcode.VaultOverflow
	}
	if deposited > v.DepositCapacity {
		return MintSummary{}, errcode.VaultCapacityExceeded
	}
	vrt, err := v.VrtForAssets(assetsIn)
	if err != nil {
		return MintSummary{}, err
	}
	fee, err := restake.FeeCeil(vrt, v.DepositFeeBps)
	if err != nil {
		return MintSummary{}, errcode.VaultOverflow
	}
	out := vrt - fee
	if out == 0 {
		return MintSummary{}, errcode.VrtOutCannotBeZero
	}
	return MintSummary{VrtToDepositor: out, VrtToFeeWallet: fee}, nil
}

// MintWithFee deposits assetsIn and mints VRT, failing when the depositor
// would get less than minOut.
func (v *Vault) MintWithFee(assetsIn, minOut uint64) (MintSummary, error) {
	if assetsIn == 0 {
		return MintSummary{}, errcode.VaultMintZero
	}
	s, err := v.PreviewDeposit(assetsIn)
	if err != nil {
		return MintSummary{}, err
	}
	if err := CheckMinAmountOut(s.VrtToDepositor, minOut); err != nil {
		return MintSummary{}, err
	}
	supply, err := restake.CheckedAdd(v.VrtSupply, s.VrtToDepositor+s.VrtToFeeWallet)
	if err != nil {
		return MintSummary{}, errcode.VaultOverflow
	}
	v.VrtSupply = supply
	v.TokensDeposited += assetsIn
	return s, nil
}

// PreviewWithdraw computes what redeeming vrtIn pays out. The vault and
// program fees are both rounded up.
func (v *Vault) PreviewWithdraw(vrtIn uint64, programFeeBps uint16) (BurnSummary, error) {
	if vrtIn == 0 {
		return BurnSummary{}, errcode.VaultBurnZero
	}
	if vrtIn > v.VrtSupply {
		return BurnSummary{}, errcode.VaultInsufficientFunds
	}
	vaultFee, err := restake.FeeCeil(vrtIn, v.WithdrawalFeeBps)
	if err != nil {
		return BurnSummary{}, errcode.VaultOverflow
	}
	programFee, err := restake.FeeCeil(vrtIn, programFeeBps)
	if err != nil {
		return BurnSummary{}, errcode.VaultOverflow
	}
	fees, err := restake.CheckedAdd(vaultFee, programFee)
	if err != nil || fees > vrtIn {
		return BurnSummary{}, errcode.VaultUnderflow
	}
	burned := vrtIn - fees
	out, err := v.AssetsForVrt(burned)
	if err != nil {
		return BurnSummary{}, err
	}
	return BurnSummary{
		VaultFee:   vaultFee,
		ProgramFee: programFee,
		Burned:     burned,
		AssetsOut:  out,
	}, nil
}

// BurnWithFee redeems vrtIn for at most maxAssets, failing when the output is
// below minOut.
func (v *Vault) BurnWithFee(vrtIn uint64, programFeeBps uint16, minOut, maxAssets uint64) (BurnSummary, error) {
	s, err := v.PreviewWithdraw(vrtIn, programFeeBps)
	if err != nil {
		return BurnSummary{}, err
	}
	if s.AssetsOut > maxAssets {
		return BurnSummary{}, errcode.VaultInsufficientFunds
	}
	if err := CheckMinAmountOut(s.AssetsOut, minOut); err != nil {
		return BurnSummary{}, err
	}
	v.VrtSupply -= s.Burned
	v.TokensDeposited -= s.AssetsOut
	return s, nil
}

// CheckMinAmountOut fails with SlippageError when out is below min.
func CheckMinAmountOut(out, min uint64) error {
	if out < min {
		return errcode.SlippageError
	}
	return nil
}

// RewardFeeVrt computes the VRT minted to the fee wallet when the vault's
// asset balance grows to newBalance.
func (v *Vault) RewardFeeVrt(newBalance uint64) (uint64, error) {
	if newBalance <= v.TokensDeposited || v.VrtSupply == 0 || v.RewardFeeBps == 0 {
		return 0, nil
	}
	reward := newBalance - v.TokensDeposited
	feeAssets, err := restake.MulDiv(reward, uint64(v.RewardFeeBps), restake.MaxBPS)
	if err != nil {
		return 0, errcode.VaultOverflow
	}
	if feeAssets == 0 || feeAssets >= newBalance {
		return 0, nil
	}
	return vaultMath(restake.MulDiv(feeAssets, v.VrtSupply, newBalance-feeAssets))
}

// UpdateBalance accounts for the vault's current asset balance and returns
// the reward fee minted in VRT.
func (v *Vault) UpdateBalance(newBalance uint64) (uint64, error) {
	security, err := v.DelegationState.TotalSecurity()
	if err != nil {
		return 0, err
	}
	if newBalance < security {
		return 0, errcode.VaultUnderflow
	}
	fee, err := v.RewardFeeVrt(newBalance)
	if err != nil {
		return 0, err
	}
	supply, err := restake.CheckedAdd(v.VrtSupply, fee)
	if err != nil {
		return 0, errcode.VaultOverflow
	}
	v.VrtSupply = supply
	v.TokensDeposited = newBalance
	return fee, nil
}
