// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

// Record is an account body with a fixed binary layout.
type Record interface {
	Discriminator() uint64
	Encode() []byte
	Decode(data []byte) error
}

// Reader reads raw accounts. Both *Ledger and *Tx satisfy it.
type Reader interface {
	Get(addr restake.Pubkey) ([]byte, bool, error)
}

// Accounts is a typed view over the accounts holding one record type.
type Accounts[T any, P interface {
	*T
	Record
}] struct {
	tx *Tx
}

// NewAccounts creates the typed view bound to tx.
func NewAccounts[T any, P interface {
	*T
	Record
}](tx *Tx) *Accounts[T, P] {
	return &Accounts[T, P]{tx: tx}
}

// Get returns the record at addr, or nil if there is none.
func (a *Accounts[T, P]) Get(addr restake.Pubkey) (P, error) {
	return Load[T, P](a.tx, addr)
}

// MustGet is like Get but reports a missing account as AccountNotFound.
func (a *Accounts[T, P]) MustGet(addr restake.Pubkey) (P, error) {
	rec, err := a.Get(addr)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(errcode.AccountNotFound, "account %v", addr)
	}
	return rec, nil
}

// Exists reports whether addr holds any account.
func (a *Accounts[T, P]) Exists(addr restake.Pubkey) (bool, error) {
	_, ok, err := a.tx.Get(addr)
	return ok, err
}

// Insert creates the account at addr. The address must be unused.
func (a *Accounts[T, P]) Insert(addr restake.Pubkey, rec P) error {
	ok, err := a.Exists(addr)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(errcode.AccountAlreadyInitialized, "account %v", addr)
	}
	a.tx.Put(addr, rec.Encode())
	return nil
}

// Update overwrites the account at addr.
func (a *Accounts[T, P]) Update(addr restake.Pubkey, rec P) error {
	a.tx.Put(addr, rec.Encode())
	return nil
}

// Remove deletes the account at addr.
func (a *Accounts[T, P]) Remove(addr restake.Pubkey) error {
	ok, err := a.Exists(addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errcode.AccountNotFound, "account %v", addr)
	}
	a.tx.Delete(addr)
	return nil
}

// Load decodes the record at addr from any reader, returning nil if absent.
func Load[T any, P interface {
	*T
	Record
}](r Reader, addr restake.Pubkey) (P, error) {
	data, ok, err := r.Get(addr)
	if err != nil || !ok {
		return nil, err
	}
	rec := P(new(T))
	if err := rec.Decode(data); err != nil {
		return nil, errors.Wrapf(errcode.InvalidAccountData, "account %v: %v", addr, err)
	}
	return rec, nil
}
