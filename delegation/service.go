// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
)

type Service struct {
	delegations *ledger.Accounts[VaultOperatorDelegation, *VaultOperatorDelegation]
}

func New(tx *ledger.Tx) *Service {
	return &Service{
		delegations: ledger.NewAccounts[VaultOperatorDelegation](tx),
	}
}

// Get returns the delegation of vault to operator, or nil if there is none.
func (s *Service) Get(vault, operator restake.Pubkey) (*VaultOperatorDelegation, error) {
	d, err := s.delegations.Get(Address(vault, operator))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get delegation")
	}
	return d, nil
}

// MustGet is like Get but fails with AccountNotFound when absent.
func (s *Service) MustGet(vault, operator restake.Pubkey) (*VaultOperatorDelegation, error) {
	return s.delegations.MustGet(Address(vault, operator))
}

func (s *Service) Add(d *VaultOperatorDelegation) error {
	if err := s.delegations.Insert(Address(d.Vault, d.Operator), d); err != nil {
		return errors.Wrap(err, "failed to add delegation")
	}
	return nil
}

func (s *Service) Update(d *VaultOperatorDelegation) error {
	return s.delegations.Update(Address(d.Vault, d.Operator), d)
}
