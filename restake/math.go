// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restake

import (
	"math/bits"

	"github.com/holiman/uint256"
	"github.com/vechain/restake/errcode"
)

// MaxBPS is 100% expressed in basis points.
const MaxBPS uint64 = 10_000

// CheckedAdd returns a+b or ArithmeticOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errcode.ArithmeticOverflow
	}
	return sum, nil
}

// CheckedSub returns a-b or ArithmeticUnderflow.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errcode.ArithmeticUnderflow
	}
	return a - b, nil
}

// CheckedMul returns a*b or ArithmeticOverflow.
func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, errcode.ArithmeticOverflow
	}
	return lo, nil
}

// MulDiv returns floor(a*b/c) computed with a 256 bits intermediate.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, errcode.DivisionByZero
	}
	x := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Div(x, uint256.NewInt(c))
	if !x.IsUint64() {
		return 0, errcode.ArithmeticOverflow
	}
	return x.Uint64(), nil
}

// MulDivCeil returns ceil(a*b/c) computed with a 256 bits intermediate.
func MulDivCeil(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, errcode.DivisionByZero
	}
	x := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	den := uint256.NewInt(c)
	q, r := new(uint256.Int), new(uint256.Int)
	q.DivMod(x, den, r)
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, errcode.ArithmeticOverflow
	}
	return q.Uint64(), nil
}

// FeeCeil returns ceil(amount * bps / MaxBPS).
func FeeCeil(amount uint64, bps uint16) (uint64, error) {
	return MulDivCeil(amount, uint64(bps), MaxBPS)
}
