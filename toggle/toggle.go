// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package toggle implements the slot stamped activation switch that gates every
// relationship between vaults, operators, NCNs and slashers.
//
// A toggle warms up for one full epoch after activation and cools down for one
// full epoch after deactivation:
//
//	Inactive --Activate--> WarmUp --(epoch e+2)--> Active --Deactivate--> Cooldown --(epoch e+2)--> Inactive
package toggle

import (
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

// EncodedSize is the size of an encoded SlotToggle.
const EncodedSize = 8 + 8 + reservedSize

const reservedSize = 32

// State of a toggle at a given slot.
type State uint8

const (
	Inactive State = iota
	WarmUp
	Active
	Cooldown
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case WarmUp:
		return "warmup"
	case Active:
		return "active"
	case Cooldown:
		return "cooldown"
	}
	return "unknown"
}

// SlotToggle records the slots of the latest activation and deactivation.
type SlotToggle struct {
	SlotAdded   uint64
	SlotRemoved uint64
}

// New creates an inactive toggle stamped at slot.
func New(slot uint64) SlotToggle {
	return SlotToggle{SlotAdded: slot, SlotRemoved: slot}
}

// State returns the state at slot.
func (t *SlotToggle) State(slot, epochLength uint64) (State, error) {
	current, err := restake.EpochOf(slot, epochLength)
	if err != nil {
		return Inactive, err
	}
	switch {
	case t.SlotAdded == t.SlotRemoved:
		return Inactive, nil
	case t.SlotAdded < t.SlotRemoved:
		removed, _ := restake.EpochOf(t.SlotRemoved, epochLength)
		if current <= removed+1 {
			return Cooldown, nil
		}
		return Inactive, nil
	default:
		added, _ := restake.EpochOf(t.SlotAdded, epochLength)
		if current <= added+1 {
			return WarmUp, nil
		}
		return Active, nil
	}
}

// Activate starts the warmup at slot. It only succeeds from Inactive, and never
// twice in the slot the toggle was stamped at.
func (t *SlotToggle) Activate(slot, epochLength uint64) (bool, error) {
	st, err := t.State(slot, epochLength)
	if err != nil {
		return false, err
	}
	if st != Inactive || t.SlotAdded == slot {
		return false, nil
	}
	t.SlotAdded = slot
	return true, nil
}

// Deactivate starts the cooldown at slot. It only succeeds from Active.
func (t *SlotToggle) Deactivate(slot, epochLength uint64) (bool, error) {
	st, err := t.State(slot, epochLength)
	if err != nil {
		return false, err
	}
	if st != Active {
		return false, nil
	}
	t.SlotRemoved = slot
	return true, nil
}

func (t *SlotToggle) is(slot, epochLength uint64, states ...State) bool {
	st, err := t.State(slot, epochLength)
	if err != nil {
		return false
	}
	for _, s := range states {
		if st == s {
			return true
		}
	}
	return false
}

func (t *SlotToggle) IsActive(slot, epochLength uint64) bool {
	return t.is(slot, epochLength, Active)
}

func (t *SlotToggle) IsInactive(slot, epochLength uint64) bool {
	return t.is(slot, epochLength, Inactive)
}

func (t *SlotToggle) IsWarmingUp(slot, epochLength uint64) bool {
	return t.is(slot, epochLength, WarmUp)
}

func (t *SlotToggle) IsCoolingDown(slot, epochLength uint64) bool {
	return t.is(slot, epochLength, Cooldown)
}

// IsActiveOrCooldown reports whether the relationship still binds its parties,
// which is the case until the cooldown has fully elapsed.
func (t *SlotToggle) IsActiveOrCooldown(slot, epochLength uint64) bool {
	return t.is(slot, epochLength, Active, Cooldown)
}

// Encode writes the toggle in its fixed layout.
func (t *SlotToggle) Encode(e *layout.Encoder) {
	e.U64(t.SlotAdded).U64(t.SlotRemoved).Reserved(reservedSize)
}

// Decode reads the toggle from its fixed layout.
func (t *SlotToggle) Decode(d *layout.Decoder) {
	t.SlotAdded = d.U64()
	t.SlotRemoved = d.U64()
	d.Reserved(reservedSize)
}
