// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type CrankRound struct {
	Epoch     uint64     `json:"epoch"`
	Updated   int        `json:"updated"`
	Failed    int        `json:"failed"`
	Timestamp *time.Time `json:"timestamp"`
	Error     string     `json:"error,omitempty"`
}

type Status struct {
	Healthy   bool        `json:"healthy"`
	LastRound *CrankRound `json:"lastRound"`
	// Cranking is false when no cranker reports to this node.
	Cranking bool `json:"cranking"`
}

type Health struct {
	lock      sync.RWMutex
	maxAge    time.Duration
	cranking  bool
	lastRound *CrankRound
}

// New creates a health tracker that considers the node unhealthy when no
// crank round completed within maxAge.
func New(maxAge time.Duration) *Health {
	return &Health{maxAge: maxAge}
}

// CrankerStarted marks that a cranker reports rounds.
func (h *Health) CrankerStarted() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.cranking = true
}

// RoundDone records the outcome of a crank round.
func (h *Health) RoundDone(epoch uint64, updated, failed int, err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	now := time.Now()
	h.lastRound = &CrankRound{
		Epoch:     epoch,
		Updated:   updated,
		Failed:    failed,
		Timestamp: &now,
	}
	if err != nil {
		h.lastRound.Error = err.Error()
	}
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	healthy := true
	if h.cranking {
		healthy = h.lastRound != nil &&
			h.lastRound.Error == "" &&
			time.Since(*h.lastRound.Timestamp) <= h.maxAge
	}
	var last *CrankRound
	if h.lastRound != nil {
		cp := *h.lastRound
		last = &cp
	}
	return &Status{
		Healthy:   healthy,
		LastRound: last,
		Cranking:  h.cranking,
	}, nil
}
