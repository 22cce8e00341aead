// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slashing

import (
	"encoding/binary"

	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const ticketSize = layout.DiscriminatorLen + 4*32 + 8 + 8 + 263

// TicketAddress returns the address of the per-epoch slash total of one
// operator under one slasher.
func TicketAddress(p Parties, epoch uint64) restake.Pubkey {
	var e [8]byte
	binary.LittleEndian.PutUint64(e[:], epoch)
	return restake.DeriveAddress(
		[]byte("vault_ncn_slasher_operator"),
		p.Vault[:], p.Ncn[:], p.Slasher[:], p.Operator[:], e[:],
	)
}

// OperatorTicket tracks how much a slasher took from an operator in an epoch.
type OperatorTicket struct {
	Vault    restake.Pubkey
	Ncn      restake.Pubkey
	Slasher  restake.Pubkey
	Operator restake.Pubkey
	Epoch    uint64
	Slashed  uint64
}

func NewOperatorTicket(p Parties, epoch uint64) *OperatorTicket {
	return &OperatorTicket{
		Vault:    p.Vault,
		Ncn:      p.Ncn,
		Slasher:  p.Slasher,
		Operator: p.Operator,
		Epoch:    epoch,
	}
}

func (t *OperatorTicket) Parties() Parties {
	return Parties{Vault: t.Vault, Ncn: t.Ncn, Operator: t.Operator, Slasher: t.Slasher}
}

func (t *OperatorTicket) Address() restake.Pubkey {
	return TicketAddress(t.Parties(), t.Epoch)
}

func (t *OperatorTicket) Discriminator() uint64 {
	return layout.VaultNcnSlasherOperatorTicketAccount
}

func (t *OperatorTicket) Encode() []byte {
	return layout.NewEncoder(ticketSize).
		Account(t.Discriminator()).
		Pubkey(t.Vault).
		Pubkey(t.Ncn).
		Pubkey(t.Slasher).
		Pubkey(t.Operator).
		U64(t.Epoch).
		U64(t.Slashed).
		Reserved(263).
		Bytes()
}

func (t *OperatorTicket) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(t.Discriminator())
	t.Vault = d.Pubkey()
	t.Ncn = d.Pubkey()
	t.Slasher = d.Pubkey()
	t.Operator = d.Pubkey()
	t.Epoch = d.U64()
	t.Slashed = d.U64()
	d.Reserved(263)
	return d.Finish()
}
