// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restake

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vechain/restake/errcode"
)

func TestCheckedArithmetic(t *testing.T) {
	_, err := CheckedAdd(math.MaxUint64, 1)
	assert.Equal(t, errcode.ArithmeticOverflow, err)

	_, err = CheckedSub(1, 2)
	assert.Equal(t, errcode.ArithmeticUnderflow, err)

	_, err = CheckedMul(math.MaxUint64, 2)
	assert.Equal(t, errcode.ArithmeticOverflow, err)

	v, err := CheckedMul(3, 4)
	assert.NoError(t, err)
	assert.Equal(t, uint64(12), v)
}

func TestMulDiv(t *testing.T) {
	v, err := MulDiv(math.MaxUint64, 10, 20)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64/2), v)

	_, err = MulDiv(1, 1, 0)
	assert.Equal(t, errcode.DivisionByZero, err)

	_, err = MulDiv(math.MaxUint64, 3, 2)
	assert.Equal(t, errcode.ArithmeticOverflow, err)

	v, _ = MulDiv(7, 1, 2)
	assert.Equal(t, uint64(3), v)
	v, _ = MulDivCeil(7, 1, 2)
	assert.Equal(t, uint64(4), v)
	v, _ = MulDivCeil(8, 1, 2)
	assert.Equal(t, uint64(4), v)
}

func TestFeeCeil(t *testing.T) {
	fee, err := FeeCeil(1000, 25)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), fee)

	fee, _ = FeeCeil(1000, 0)
	assert.Equal(t, uint64(0), fee)

	fee, _ = FeeCeil(1, 1)
	assert.Equal(t, uint64(1), fee)
}
