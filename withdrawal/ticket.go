// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package withdrawal manages staker withdrawal tickets. A ticket escrows VRT
// until the cooldown window has passed and is then burned for assets.
package withdrawal

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const ticketSize = layout.DiscriminatorLen + 32*3 + 8*2 + 263

// Address returns the ticket address for the vault and the staker-chosen base.
func Address(vault, base restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("vault_staker_withdrawal_ticket"), vault[:], base[:])
}

type Ticket struct {
	Vault        restake.Pubkey
	Staker       restake.Pubkey
	Base         restake.Pubkey
	VrtAmount    uint64
	SlotUnstaked uint64
}

func NewTicket(vault, staker, base restake.Pubkey, vrt, slot uint64) *Ticket {
	return &Ticket{
		Vault:        vault,
		Staker:       staker,
		Base:         base,
		VrtAmount:    vrt,
		SlotUnstaked: slot,
	}
}

func (t *Ticket) Address() restake.Pubkey {
	return Address(t.Vault, t.Base)
}

func (t *Ticket) Discriminator() uint64 { return layout.VaultStakerWithdrawalTicketAccount }

func (t *Ticket) Encode() []byte {
	return layout.NewEncoder(ticketSize).
		Account(t.Discriminator()).
		Pubkey(t.Vault).
		Pubkey(t.Staker).
		Pubkey(t.Base).
		U64(t.VrtAmount).
		U64(t.SlotUnstaked).
		Reserved(263).
		Bytes()
}

func (t *Ticket) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(t.Discriminator())
	t.Vault = d.Pubkey()
	t.Staker = d.Pubkey()
	t.Base = d.Pubkey()
	t.VrtAmount = d.U64()
	t.SlotUnstaked = d.U64()
	d.Reserved(263)
	return d.Finish()
}

// CheckStaker fails unless signer owns the ticket.
func (t *Ticket) CheckStaker(signer restake.Pubkey) error {
	if t.Staker != signer {
		return errcode.VaultStakerWithdrawalTicketInvalidStaker
	}
	return nil
}

// ChangeOwner transfers the ticket. Only the current owner may do so.
func (t *Ticket) ChangeOwner(signer, owner restake.Pubkey) error {
	if err := t.CheckStaker(signer); err != nil {
		return err
	}
	t.Staker = owner
	return nil
}

// IsWithdrawable reports whether a full epoch has passed since the ticket
// was created.
func (t *Ticket) IsWithdrawable(slot, epochLength uint64) (bool, error) {
	return restake.HasElapsedFullEpoch(t.SlotUnstaked, slot, epochLength)
}

func (t *Ticket) CheckWithdrawable(slot, epochLength uint64) error {
	ok, err := t.IsWithdrawable(slot, epochLength)
	if err != nil {
		return err
	}
	if !ok {
		return errcode.VaultStakerWithdrawalTicketNotWithdrawable
	}
	return nil
}
