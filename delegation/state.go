// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package delegation tracks the stake a vault has delegated to each operator.
package delegation

import (
	"math/bits"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
)

// StateSize is the encoded size of State.
const StateSize = 3*8 + 256

// State is the stake accounting for one vault/operator pair, or the sum over
// all of a vault's operators.
//
// A cooldown request first lands in EnqueuedForCooldown. It moves to
// CoolingDown at the next epoch update and is released one epoch later.
type State struct {
	Staked              uint64
	EnqueuedForCooldown uint64
	CoolingDown         uint64
}

// Breakdown reports how an amount was split across the three buckets.
type Breakdown struct {
	Staked              uint64
	EnqueuedForCooldown uint64
	CoolingDown         uint64
}

// Total returns the sum of the breakdown.
func (b Breakdown) Total() uint64 {
	return b.Staked + b.EnqueuedForCooldown + b.CoolingDown
}

// TotalSecurity is the amount still slashable: everything staked or on its
// way out.
func (s *State) TotalSecurity() (uint64, error) {
	sum, carry := bits.Add64(s.Staked, s.EnqueuedForCooldown, 0)
	if carry != 0 {
		return 0, errcode.VaultSecurityOverflow
	}
	sum, carry = bits.Add64(sum, s.CoolingDown, 0)
	if carry != 0 {
		return 0, errcode.VaultSecurityOverflow
	}
	return sum, nil
}

// Delegate adds amount to the staked bucket.
func (s *State) Delegate(amount uint64) error {
	if amount == 0 {
		return errcode.VaultDelegationZero
	}
	staked, carry := bits.Add64(s.Staked, amount, 0)
	if carry != 0 {
		return errcode.VaultSecurityOverflow
	}
	next := *s
	next.Staked = staked
	if _, err := next.TotalSecurity(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Cooldown moves amount from staked into the cooldown queue.
func (s *State) Cooldown(amount uint64) error {
	if amount == 0 {
		return errcode.VaultCooldownZero
	}
	if amount > s.Staked {
		return errcode.VaultInsufficientFunds
	}
	s.Staked -= amount
	s.EnqueuedForCooldown += amount
	return nil
}

// Update applies one epoch boundary and returns the amount released from
// cooldown.
func (s *State) Update() uint64 {
	released := s.CoolingDown
	s.CoolingDown = s.EnqueuedForCooldown
	s.EnqueuedForCooldown = 0
	return released
}

// Slash removes amount, taking from staked first, then the cooldown queue,
// then what is cooling down.
func (s *State) Slash(amount uint64) (Breakdown, error) {
	total, err := s.TotalSecurity()
	if err != nil {
		return Breakdown{}, err
	}
	if amount > total {
		return Breakdown{}, errcode.VaultSlashUnderflow
	}

	var b Breakdown
	b.Staked = min(amount, s.Staked)
	amount -= b.Staked
	b.EnqueuedForCooldown = min(amount, s.EnqueuedForCooldown)
	amount -= b.EnqueuedForCooldown
	b.CoolingDown = amount

	s.Staked -= b.Staked
	s.EnqueuedForCooldown -= b.EnqueuedForCooldown
	s.CoolingDown -= b.CoolingDown
	return b, nil
}

// Accumulate adds other bucket by bucket.
func (s *State) Accumulate(other *State) error {
	var carry uint64
	next := *s
	if next.Staked, carry = bits.Add64(s.Staked, other.Staked, 0); carry != 0 {
		return errcode.VaultSecurityOverflow
	}
	if next.EnqueuedForCooldown, carry = bits.Add64(s.EnqueuedForCooldown, other.EnqueuedForCooldown, 0); carry != 0 {
		return errcode.VaultSecurityOverflow
	}
	if next.CoolingDown, carry = bits.Add64(s.CoolingDown, other.CoolingDown, 0); carry != 0 {
		return errcode.VaultSecurityOverflow
	}
	*s = next
	return nil
}

// Subtract removes other bucket by bucket.
func (s *State) Subtract(other *State) error {
	if other.Staked > s.Staked ||
		other.EnqueuedForCooldown > s.EnqueuedForCooldown ||
		other.CoolingDown > s.CoolingDown {
		return errcode.VaultSecurityUnderflow
	}
	s.Staked -= other.Staked
	s.EnqueuedForCooldown -= other.EnqueuedForCooldown
	s.CoolingDown -= other.CoolingDown
	return nil
}

// SubtractBreakdown removes a slash breakdown taken from a member delegation.
func (s *State) SubtractBreakdown(b Breakdown) error {
	return s.Subtract(&State{
		Staked:              b.Staked,
		EnqueuedForCooldown: b.EnqueuedForCooldown,
		CoolingDown:         b.CoolingDown,
	})
}

// Encode appends the state layout.
func (s *State) Encode(e *layout.Encoder) {
	e.U64(s.Staked).U64(s.EnqueuedForCooldown).U64(s.CoolingDown).Reserved(256)
}

// Decode reads the state layout.
func (s *State) Decode(d *layout.Decoder) {
	s.Staked = d.U64()
	s.EnqueuedForCooldown = d.U64()
	s.CoolingDown = d.U64()
	d.Reserved(256)
}
