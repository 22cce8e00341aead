// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

import (
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
)

type Service struct {
	trackers *ledger.Accounts[Tracker, *Tracker]
}

func New(tx *ledger.Tx) *Service {
	return &Service{trackers: ledger.NewAccounts[Tracker](tx)}
}

func (s *Service) Get(vault restake.Pubkey, epoch uint64) (*Tracker, error) {
	return s.trackers.Get(Address(vault, epoch))
}

func (s *Service) MustGet(vault restake.Pubkey, epoch uint64) (*Tracker, error) {
	return s.trackers.MustGet(Address(vault, epoch))
}

func (s *Service) Add(t *Tracker) error {
	return s.trackers.Insert(t.Address(), t)
}

func (s *Service) Update(t *Tracker) error {
	return s.trackers.Update(t.Address(), t)
}

// Close deallocates the tracker.
func (s *Service) Close(t *Tracker) error {
	return s.trackers.Remove(t.Address())
}
