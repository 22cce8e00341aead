// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token keeps fungible token balances next to the protocol records,
// so that asset and VRT moves commit in the same transaction as the state
// they pay for.
package token

import (
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const (
	mintSize    = layout.DiscriminatorLen + 32 + 8 + 1 + 64
	accountSize = layout.DiscriminatorLen + 32 + 32 + 8 + 32 + 8 + 24
)

// AccountAddress returns the address of owner's balance of mint.
func AccountAddress(mint, owner restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("token_account"), mint[:], owner[:])
}

// Mint is a token definition. The record lives at the mint address.
type Mint struct {
	Authority restake.Pubkey
	Supply    uint64
	Decimals  uint8
}

func (m *Mint) Discriminator() uint64 { return layout.TokenMintAccount }

func (m *Mint) Encode() []byte {
	return layout.NewEncoder(mintSize).
		Account(m.Discriminator()).
		Pubkey(m.Authority).
		U64(m.Supply).
		U8(m.Decimals).
		Reserved(64).
		Bytes()
}

func (m *Mint) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(m.Discriminator())
	m.Authority = d.Pubkey()
	m.Supply = d.U64()
	m.Decimals = d.U8()
	d.Reserved(64)
	return d.Finish()
}

// Account is one owner's balance of a mint. Delegate may move up to
// DelegatedAmount of it on the owner's behalf.
type Account struct {
	Mint   restake.Pubkey
	Owner  restake.Pubkey
	Amount uint64

	Delegate        restake.Pubkey
	DelegatedAmount uint64
}

func (a *Account) Address() restake.Pubkey {
	return AccountAddress(a.Mint, a.Owner)
}

func (a *Account) Discriminator() uint64 { return layout.TokenAccountAccount }

func (a *Account) Encode() []byte {
	return layout.NewEncoder(accountSize).
		Account(a.Discriminator()).
		Pubkey(a.Mint).
		Pubkey(a.Owner).
		U64(a.Amount).
		Pubkey(a.Delegate).
		U64(a.DelegatedAmount).
		Reserved(24).
		Bytes()
}

func (a *Account) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(a.Discriminator())
	a.Mint = d.Pubkey()
	a.Owner = d.Pubkey()
	a.Amount = d.U64()
	a.Delegate = d.Pubkey()
	a.DelegatedAmount = d.U64()
	d.Reserved(24)
	return d.Finish()
}
