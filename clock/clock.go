// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the current slot to instruction processing.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock reports the current slot.
type Clock interface {
	Slot() uint64
}

// Wall counts slots of a fixed duration since genesis.
type Wall struct {
	genesis  time.Time
	duration time.Duration
	now      func() time.Time
}

// NewWall creates a wall clock. Slots before genesis read as zero.
func NewWall(genesis time.Time, slotDuration time.Duration) *Wall {
	if slotDuration <= 0 {
		panic("clock: slot duration must be positive")
	}
	return &Wall{genesis: genesis, duration: slotDuration, now: time.Now}
}

func (w *Wall) Slot() uint64 {
	elapsed := w.now().Sub(w.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / w.duration)
}

// SlotTime returns when slot begins.
func (w *Wall) SlotTime(slot uint64) time.Time {
	return w.genesis.Add(time.Duration(slot) * w.duration)
}

// SlotDuration returns the length of one slot.
func (w *Wall) SlotDuration() time.Duration { return w.duration }

// Manual is a clock moved by hand, used in tests and tools.
type Manual struct {
	slot atomic.Uint64
}

func NewManual(slot uint64) *Manual {
	m := &Manual{}
	m.slot.Store(slot)
	return m
}

func (m *Manual) Slot() uint64 { return m.slot.Load() }

// Set moves the clock to slot.
func (m *Manual) Set(slot uint64) { m.slot.Store(slot) }

// Advance moves the clock n slots forward and returns the new slot.
func (m *Manual) Advance(n uint64) uint64 { return m.slot.Add(n) }
