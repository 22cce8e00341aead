// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relation

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
)

type Service struct {
	tickets   *ledger.Accounts[Ticket, *Ticket]
	ncns      *ledger.Accounts[Ncn, *Ncn]
	operators *ledger.Accounts[Operator, *Operator]
}

func New(tx *ledger.Tx) *Service {
	return &Service{
		tickets:   ledger.NewAccounts[Ticket](tx),
		ncns:      ledger.NewAccounts[Ncn](tx),
		operators: ledger.NewAccounts[Operator](tx),
	}
}

// Ticket returns the ticket, or nil if it was never created.
func (s *Service) Ticket(k Kind, left, right, third restake.Pubkey) (*Ticket, error) {
	t, err := s.tickets.Get(TicketAddress(k, left, right, third))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %v ticket", k)
	}
	return t, nil
}

func (s *Service) MustTicket(k Kind, left, right, third restake.Pubkey) (*Ticket, error) {
	return s.tickets.MustGet(TicketAddress(k, left, right, third))
}

func (s *Service) AddTicket(t *Ticket) error {
	if err := s.tickets.Insert(t.Address(), t); err != nil {
		return errors.Wrapf(err, "failed to add %v ticket", t.Kind)
	}
	return nil
}

func (s *Service) UpdateTicket(t *Ticket) error {
	return s.tickets.Update(t.Address(), t)
}

func (s *Service) Ncn(addr restake.Pubkey) (*Ncn, error) {
	return s.ncns.MustGet(addr)
}

func (s *Service) AddNcn(n *Ncn) (restake.Pubkey, error) {
	addr := NcnAddress(n.Base)
	return addr, s.ncns.Insert(addr, n)
}

func (s *Service) UpdateNcn(n *Ncn) error {
	return s.ncns.Update(NcnAddress(n.Base), n)
}

func (s *Service) Operator(addr restake.Pubkey) (*Operator, error) {
	return s.operators.MustGet(addr)
}

func (s *Service) AddOperator(o *Operator) (restake.Pubkey, error) {
	addr := OperatorAddress(o.Base)
	return addr, s.operators.Insert(addr, o)
}

func (s *Service) UpdateOperator(o *Operator) error {
	return s.operators.Update(OperatorAddress(o.Base), o)
}
