// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/restake"
)

// Service moves tokens. Balances of owners without an account read as zero,
// and accounts are opened on first credit.
type Service interface {
	CreateMint(mint, authority restake.Pubkey, decimals uint8) error
	SetAuthority(mint, signer, authority restake.Pubkey) error
	Supply(mint restake.Pubkey) (uint64, error)
	Balance(mint, owner restake.Pubkey) (uint64, error)
	Transfer(mint, from, to restake.Pubkey, amount uint64) error
	// MintTo requires authority to be the mint's authority.
	MintTo(mint, authority, to restake.Pubkey, amount uint64) error
	Burn(mint, owner restake.Pubkey, amount uint64) error
	// Approve replaces any earlier delegation of owner's balance.
	Approve(mint, owner, delegate restake.Pubkey, amount uint64) error
	Revoke(mint, owner restake.Pubkey) error
	TransferFrom(mint, owner, delegate, to restake.Pubkey, amount uint64) error
}

// Ledger is the Service over a ledger transaction.
type Ledger struct {
	mints    *ledger.Accounts[Mint, *Mint]
	accounts *ledger.Accounts[Account, *Account]
	metadata *ledger.Accounts[Metadata, *Metadata]
}

var _ Service = (*Ledger)(nil)

func New(tx *ledger.Tx) *Ledger {
	return &Ledger{
		mints:    ledger.NewAccounts[Mint](tx),
		accounts: ledger.NewAccounts[Account](tx),
		metadata: ledger.NewAccounts[Metadata](tx),
	}
}

func (l *Ledger) mint(addr restake.Pubkey) (*Mint, error) {
	m, err := l.mints.Get(addr)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.Wrapf(errcode.TokenMintNotFound, "mint %v", addr)
	}
	return m, nil
}

func (l *Ledger) CreateMint(mint, authority restake.Pubkey, decimals uint8) error {
	return l.mints.Insert(mint, &Mint{Authority: authority, Decimals: decimals})
}

func (l *Ledger) SetAuthority(mint, signer, authority restake.Pubkey) error {
	m, err := l.mint(mint)
	if err != nil {
		return err
	}
	if m.Authority != signer {
		return errcode.TokenAuthorityInvalid
	}
	m.Authority = authority
	return l.mints.Update(mint, m)
}

func (l *Ledger) Supply(mint restake.Pubkey) (uint64, error) {
	m, err := l.mint(mint)
	if err != nil {
		return 0, err
	}
	return m.Supply, nil
}

func (l *Ledger) account(mint, owner restake.Pubkey) (*Account, error) {
	a, err := l.accounts.Get(AccountAddress(mint, owner))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return &Account{Mint: mint, Owner: owner}, nil
	}
	return a, nil
}

func (l *Ledger) save(a *Account) error {
	addr := a.Address()
	ok, err := l.accounts.Exists(addr)
	if err != nil {
		return err
	}
	if ok {
		return l.accounts.Update(addr, a)
	}
	return l.accounts.Insert(addr, a)
}

func (l *Ledger) Balance(mint, owner restake.Pubkey) (uint64, error) {
	if _, err := l.mint(mint); err != nil {
		return 0, err
	}
	a, err := l.account(mint, owner)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

func (l *Ledger) credit(mint, owner restake.Pubkey, amount uint64) error {
	a, err := l.account(mint, owner)
	if err != nil {
		return err
	}
	if a.Amount, err = restake.CheckedAdd(a.Amount, amount); err != nil {
		return err
	}
	return l.save(a)
}

func (l *Ledger) debit(mint, owner restake.Pubkey, amount uint64) error {
	a, err := l.account(mint, owner)
	if err != nil {
		return err
	}
	if a.Amount < amount {
		return errors.Wrapf(errcode.TokenInsufficientFunds, "%v holds %d, needs %d", owner, a.Amount, amount)
	}
	a.Amount -= amount
	return l.save(a)
}

func (l *Ledger) Transfer(mint, from, to restake.Pubkey, amount uint64) error {
	if _, err := l.mint(mint); err != nil {
		return err
	}
	if amount == 0 || from == to {
		return nil
	}
	if err := l.debit(mint, from, amount); err != nil {
		return err
	}
	return l.credit(mint, to, amount)
}

func (l *Ledger) MintTo(mint, authority, to restake.Pubkey, amount uint64) error {
	m, err := l.mint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return errcode.TokenAuthorityInvalid
	}
	if amount == 0 {
		return nil
	}
	if m.Supply, err = restake.CheckedAdd(m.Supply, amount); err != nil {
		return err
	}
	if err := l.mints.Update(mint, m); err != nil {
		return err
	}
	return l.credit(mint, to, amount)
}

func (l *Ledger) Burn(mint, owner restake.Pubkey, amount uint64) error {
	m, err := l.mint(mint)
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	if err := l.debit(mint, owner, amount); err != nil {
		return err
	}
	m.Supply -= amount
	return l.mints.Update(mint, m)
}

func (l *Ledger) Approve(mint, owner, delegate restake.Pubkey, amount uint64) error {
	if _, err := l.mint(mint); err != nil {
		return err
	}
	a, err := l.account(mint, owner)
	if err != nil {
		return err
	}
	a.Delegate, a.DelegatedAmount = delegate, amount
	return l.save(a)
}

func (l *Ledger) Revoke(mint, owner restake.Pubkey) error {
	return l.Approve(mint, owner, restake.Pubkey{}, 0)
}

// TransferFrom moves owner's tokens on the delegate's signature, drawing
// down the approved amount.
func (l *Ledger) TransferFrom(mint, owner, delegate, to restake.Pubkey, amount uint64) error {
	if _, err := l.mint(mint); err != nil {
		return err
	}
	a, err := l.account(mint, owner)
	if err != nil {
		return err
	}
	if delegate.IsZero() || a.Delegate != delegate {
		return errcode.TokenDelegateInvalid
	}
	if a.DelegatedAmount < amount {
		return errors.Wrapf(errcode.TokenInsufficientFunds, "%v approved %d, needs %d", delegate, a.DelegatedAmount, amount)
	}
	if amount == 0 || owner == to {
		return nil
	}
	a.DelegatedAmount -= amount
	if err := l.save(a); err != nil {
		return err
	}
	if err := l.debit(mint, owner, amount); err != nil {
		return err
	}
	return l.credit(mint, to, amount)
}

// Metadata returns the mint's metadata, or nil if none was created.
func (l *Ledger) Metadata(mint restake.Pubkey) (*Metadata, error) {
	return l.metadata.Get(MetadataAddress(mint))
}

func (l *Ledger) CreateMetadata(m *Metadata) error {
	if _, err := l.mint(m.Mint); err != nil {
		return err
	}
	return l.metadata.Insert(MetadataAddress(m.Mint), m)
}

func (l *Ledger) UpdateMetadata(m *Metadata) error {
	return l.metadata.Update(MetadataAddress(m.Mint), m)
}
