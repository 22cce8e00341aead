// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package withdrawal

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
)

type Service struct {
	tickets *ledger.Accounts[Ticket, *Ticket]
}

func New(tx *ledger.Tx) *Service {
	return &Service{tickets: ledger.NewAccounts[Ticket](tx)}
}

func (s *Service) MustGet(addr restake.Pubkey) (*Ticket, error) {
	return s.tickets.MustGet(addr)
}

func (s *Service) Add(t *Ticket) error {
	if err := s.tickets.Insert(t.Address(), t); err != nil {
		return errors.Wrap(err, "failed to add withdrawal ticket")
	}
	return nil
}

func (s *Service) Update(t *Ticket) error {
	return s.tickets.Update(t.Address(), t)
}

// Close deletes a redeemed ticket.
func (s *Service) Close(t *Ticket) error {
	return s.tickets.Remove(t.Address())
}
