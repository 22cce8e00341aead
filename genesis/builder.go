// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/vault"
)

// Builder helper to build the genesis ledger state.
type Builder struct {
	config *vault.Config
	procs  []func(tx *ledger.Tx) error
}

// Config sets the protocol config.
func (b *Builder) Config(c *vault.Config) *Builder {
	b.config = c
	return b
}

// State add a state process.
func (b *Builder) State(proc func(tx *ledger.Tx) error) *Builder {
	b.procs = append(b.procs, proc)
	return b
}

// Mint adds a token mint with initial balances.
func (b *Builder) Mint(m Mint) *Builder {
	return b.State(func(tx *ledger.Tx) error {
		tokens := token.New(tx)
		if err := tokens.CreateMint(m.Address, m.Authority, m.Decimals); err != nil {
			return errors.Wrapf(err, "mint %v", m.Address)
		}
		for _, bal := range m.Balances {
			if err := tokens.MintTo(m.Address, m.Authority, bal.Owner, bal.Amount); err != nil {
				return errors.Wrapf(err, "fund %v", bal.Owner)
			}
		}
		return nil
	})
}

// Build writes the genesis state into an empty ledger. A ledger that already
// holds a config is left untouched and reported as not built.
func (b *Builder) Build(l *ledger.Ledger) (built bool, err error) {
	if b.config == nil {
		return false, errors.New("genesis: missing config")
	}
	existing, err := ledger.Load[vault.Config](l, vault.ConfigAddress)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	tx := l.NewTx()
	if err := vault.New(tx).InitConfig(b.config); err != nil {
		tx.Discard()
		return false, errors.Wrap(err, "init config")
	}
	for _, proc := range b.procs {
		if err := proc(tx); err != nil {
			tx.Discard()
			return false, errors.Wrap(err, "state process")
		}
	}
	if _, err := tx.Commit(nil); err != nil {
		return false, err
	}
	return true, nil
}
