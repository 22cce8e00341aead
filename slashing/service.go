// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slashing

import (
	"github.com/vechain/restake/ledger"
)

type Service struct {
	tickets *ledger.Accounts[OperatorTicket, *OperatorTicket]
}

func New(tx *ledger.Tx) *Service {
	return &Service{tickets: ledger.NewAccounts[OperatorTicket](tx)}
}

func (s *Service) Get(p Parties, epoch uint64) (*OperatorTicket, error) {
	return s.tickets.Get(TicketAddress(p, epoch))
}

func (s *Service) MustGet(p Parties, epoch uint64) (*OperatorTicket, error) {
	return s.tickets.MustGet(TicketAddress(p, epoch))
}

func (s *Service) Add(t *OperatorTicket) error {
	return s.tickets.Insert(t.Address(), t)
}

// GetOrNew returns the epoch's ticket, creating it in memory if absent. The
// second value reports whether it already existed.
func (s *Service) GetOrNew(p Parties, epoch uint64) (*OperatorTicket, bool, error) {
	t, err := s.Get(p, epoch)
	if err != nil {
		return nil, false, err
	}
	if t != nil {
		return t, true, nil
	}
	return NewOperatorTicket(p, epoch), false, nil
}

// Save writes t, inserting it if it is new.
func (s *Service) Save(t *OperatorTicket, existed bool) error {
	if existed {
		return s.tickets.Update(t.Address(), t)
	}
	return s.tickets.Insert(t.Address(), t)
}
