// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter hands out the channel to select on for the next notification.
// A value of true means a single Signal, a closed channel means Broadcast.
type Waiter interface {
	C() <-chan bool
}

// Signal is a channel based condition. Goroutines wait by selecting on a
// Waiter, so waiting composes with timers and contexts.
type Signal struct {
	mu sync.Mutex
	ch chan bool
}

// current returns the channel of the pending round. mu must be held.
func (s *Signal) current() chan bool {
	if s.ch == nil {
		s.ch = make(chan bool, 1)
	}
	return s.ch
}

// Signal wakes a single waiter. It is remembered if nobody waits yet.
func (s *Signal) Signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case s.current() <- true:
	default:
	}
}

// Broadcast wakes every waiter of the pending round and starts a new one.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.current())
	s.ch = make(chan bool, 1)
}

// NewWaiter returns a waiter bound to the pending round. Each call to C
// after a wakeup moves the waiter on to the round that followed.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	round := s.current()
	s.mu.Unlock()

	return waiter(func() <-chan bool {
		ch := round
		s.mu.Lock()
		round = s.current()
		s.mu.Unlock()
		return ch
	})
}

type waiter func() <-chan bool

func (w waiter) C() <-chan bool { return w() }
