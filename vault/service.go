// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
)

type Service struct {
	configs *ledger.Accounts[Config, *Config]
	vaults  *ledger.Accounts[Vault, *Vault]
}

func New(tx *ledger.Tx) *Service {
	return &Service{
		configs: ledger.NewAccounts[Config](tx),
		vaults:  ledger.NewAccounts[Vault](tx),
	}
}

// Config loads the protocol config.
func (s *Service) Config() (*Config, error) {
	c, err := s.configs.MustGet(ConfigAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	return c, nil
}

func (s *Service) InitConfig(c *Config) error {
	return s.configs.Insert(ConfigAddress, c)
}

func (s *Service) SetConfig(c *Config) error {
	return s.configs.Update(ConfigAddress, c)
}

// Get returns the vault at addr, or nil if there is none.
func (s *Service) Get(addr restake.Pubkey) (*Vault, error) {
	v, err := s.vaults.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vault")
	}
	return v, nil
}

func (s *Service) MustGet(addr restake.Pubkey) (*Vault, error) {
	return s.vaults.MustGet(addr)
}

// Add stores a new vault and returns its address.
func (s *Service) Add(v *Vault) (restake.Pubkey, error) {
	addr := Address(v.Base)
	if err := s.vaults.Insert(addr, v); err != nil {
		return restake.Pubkey{}, errors.Wrap(err, "failed to add vault")
	}
	return addr, nil
}

func (s *Service) Update(v *Vault) error {
	return s.vaults.Update(Address(v.Base), v)
}
