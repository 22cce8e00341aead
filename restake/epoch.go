// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restake

import "github.com/vechain/restake/errcode"

// DefaultEpochLength is the number of slots in an epoch unless configured.
const DefaultEpochLength uint64 = 432_000

// EpochOf returns the epoch containing slot.
func EpochOf(slot, epochLength uint64) (uint64, error) {
	if epochLength == 0 {
		return 0, errcode.InvalidEpochLength
	}
	return slot / epochLength, nil
}

// SlotsUntilNextEpoch returns how many slots remain before the next epoch starts.
func SlotsUntilNextEpoch(slot, epochLength uint64) (uint64, error) {
	if epochLength == 0 {
		return 0, errcode.InvalidEpochLength
	}
	return epochLength - slot%epochLength, nil
}

// EpochsBetween returns epoch(to) - epoch(from), or zero when to is not later.
func EpochsBetween(from, to, epochLength uint64) (uint64, error) {
	a, err := EpochOf(from, epochLength)
	if err != nil {
		return 0, err
	}
	b, err := EpochOf(to, epochLength)
	if err != nil {
		return 0, err
	}
	if b <= a {
		return 0, nil
	}
	return b - a, nil
}

// HasElapsedFullEpoch reports whether a whole epoch lies strictly between the
// epoch of from and the epoch of now. A stamp made in epoch e is only considered
// matured from epoch e+2.
func HasElapsedFullEpoch(from, now, epochLength uint64) (bool, error) {
	n, err := EpochsBetween(from, now, epochLength)
	if err != nil {
		return false, err
	}
	return n > 1, nil
}

// EpochStartSlot returns the first slot of the given epoch.
func EpochStartSlot(epoch, epochLength uint64) (uint64, error) {
	if epochLength == 0 {
		return 0, errcode.InvalidEpochLength
	}
	start, err := CheckedMul(epoch, epochLength)
	if err != nil {
		return 0, err
	}
	return start, nil
}
