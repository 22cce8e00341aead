// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"unicode/utf8"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

// Widths of the metadata text fields, in bytes.
const (
	NameLen   = 32
	SymbolLen = 10
	URILen    = 200
)

const metadataSize = layout.DiscriminatorLen + 32 + (NameLen + 1) + (SymbolLen + 1) + (URILen + 1) + 64

// MetadataAddress returns the metadata address of mint.
func MetadataAddress(mint restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("metadata"), mint[:])
}

// Metadata describes a mint for wallets and explorers.
type Metadata struct {
	Mint   restake.Pubkey
	Name   string
	Symbol string
	URI    string
}

// NewMetadata validates the text fields against their widths.
func NewMetadata(mint restake.Pubkey, name, symbol, uri string) (*Metadata, error) {
	m := &Metadata{Mint: mint}
	if err := m.Set(name, symbol, uri); err != nil {
		return nil, err
	}
	return m, nil
}

// Set replaces the text fields.
func (m *Metadata) Set(name, symbol, uri string) error {
	for _, f := range []struct {
		s     string
		width int
	}{{name, NameLen}, {symbol, SymbolLen}, {uri, URILen}} {
		if len(f.s) > f.width || !utf8.ValidString(f.s) {
			return errcode.InvalidArgument
		}
	}
	m.Name, m.Symbol, m.URI = name, symbol, uri
	return nil
}

func (m *Metadata) Discriminator() uint64 { return layout.TokenMetadataAccount }

func (m *Metadata) Encode() []byte {
	return layout.NewEncoder(metadataSize).
		Account(m.Discriminator()).
		Pubkey(m.Mint).
		String(m.Name, NameLen).
		String(m.Symbol, SymbolLen).
		String(m.URI, URILen).
		Reserved(64).
		Bytes()
}

func (m *Metadata) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(m.Discriminator())
	m.Mint = d.Pubkey()
	m.Name = d.String(NameLen)
	m.Symbol = d.String(SymbolLen)
	m.URI = d.String(URILen)
	d.Reserved(64)
	return d.Finish()
}
