// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package relation holds the NCN and operator entities and the tickets that
// record the relationships between NCNs, operators, vaults and slashers.
package relation

import (
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/toggle"
)

const ticketSize = layout.DiscriminatorLen + 1 + 32*3 + toggle.EncodedSize + 8 + 8 + 263

// TicketAddress returns the address of the ticket of kind k between left and
// right, and third for slasher tickets.
func TicketAddress(k Kind, left, right, third restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte(k.info().seed), left[:], right[:], third[:])
}

// Ticket is one directed relationship. Its toggle is reused across
// activations and never deleted.
type Ticket struct {
	Kind  Kind
	Left  restake.Pubkey
	Right restake.Pubkey
	// Third is the slasher for slasher tickets, zero otherwise.
	Third restake.Pubkey
	State toggle.SlotToggle
	// MaxSlashablePerEpoch caps what the slasher may take per operator and
	// epoch. Only slasher tickets use it.
	MaxSlashablePerEpoch uint64
	Index                uint64
}

// NewTicket creates an inactive ticket.
func NewTicket(k Kind, left, right, third restake.Pubkey, index, slot uint64) *Ticket {
	return &Ticket{
		Kind:  k,
		Left:  left,
		Right: right,
		Third: third,
		State: toggle.New(slot),
		Index: index,
	}
}

func (t *Ticket) Address() restake.Pubkey {
	return TicketAddress(t.Kind, t.Left, t.Right, t.Third)
}

func (t *Ticket) Discriminator() uint64 { return layout.RelationTicketAccount }

func (t *Ticket) Encode() []byte {
	e := layout.NewEncoder(ticketSize).
		Account(t.Discriminator()).
		U8(uint8(t.Kind)).
		Pubkey(t.Left).
		Pubkey(t.Right).
		Pubkey(t.Third)
	t.State.Encode(e)
	return e.U64(t.MaxSlashablePerEpoch).U64(t.Index).Reserved(263).Bytes()
}

func (t *Ticket) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(t.Discriminator())
	t.Kind = Kind(d.U8())
	t.Left = d.Pubkey()
	t.Right = d.Pubkey()
	t.Third = d.Pubkey()
	t.State.Decode(d)
	t.MaxSlashablePerEpoch = d.U64()
	t.Index = d.U64()
	d.Reserved(263)
	return d.Finish()
}

// Warmup activates the ticket. It fails with the kind's warmup error unless
// the ticket is inactive.
func (t *Ticket) Warmup(slot, epochLength uint64) error {
	ok, err := t.State.Activate(slot, epochLength)
	if err != nil {
		return err
	}
	if !ok {
		return t.Kind.info().warmup
	}
	return nil
}

// Cooldown deactivates the ticket. It fails with the kind's cooldown error
// unless the ticket is active.
func (t *Ticket) Cooldown(slot, epochLength uint64) error {
	ok, err := t.State.Deactivate(slot, epochLength)
	if err != nil {
		return err
	}
	if !ok {
		return t.Kind.info().cooldown
	}
	return nil
}

// CheckActive fails with the kind's not-active error unless the ticket is
// active at slot.
func (t *Ticket) CheckActive(slot, epochLength uint64) error {
	if _, err := restake.EpochOf(slot, epochLength); err != nil {
		return err
	}
	if !t.State.IsActive(slot, epochLength) {
		return t.Kind.info().notActive
	}
	return nil
}

// CheckSlashable fails with the kind's unslashable error unless the ticket is
// active or cooling down at slot.
func (t *Ticket) CheckSlashable(slot, epochLength uint64) error {
	if _, err := restake.EpochOf(slot, epochLength); err != nil {
		return err
	}
	if !t.State.IsActiveOrCooldown(slot, epochLength) {
		return t.Kind.info().unslashable
	}
	return nil
}

// Unslashable is the error reported when a missing ticket of kind k blocks a
// slash.
func Unslashable(k Kind) error {
	return k.info().unslashable
}

// NotActive is the error reported when a required ticket of kind k is
// missing or not active.
func NotActive(k Kind) error {
	return k.info().notActive
}
