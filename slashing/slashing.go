// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slashing decides whether and how much of an operator's delegation
// a slasher may take.
package slashing

import (
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/vault"
)

// Parties names who takes part in a slash.
type Parties struct {
	Vault    restake.Pubkey
	Ncn      restake.Pubkey
	Operator restake.Pubkey
	Slasher  restake.Pubkey
}

type ticketRef struct {
	kind               relation.Kind
	left, right, third restake.Pubkey
}

// refs lists the tickets a slash depends on, in the order they are checked.
func (p Parties) refs() []ticketRef {
	return []ticketRef{
		{relation.VaultNcnSlasher, p.Vault, p.Ncn, p.Slasher},
		{relation.NcnVaultSlasher, p.Ncn, p.Vault, p.Slasher},
		{relation.NcnOperator, p.Ncn, p.Operator, restake.Pubkey{}},
		{relation.OperatorNcn, p.Operator, p.Ncn, restake.Pubkey{}},
		{relation.OperatorVault, p.Operator, p.Vault, restake.Pubkey{}},
		{relation.VaultNcn, p.Vault, p.Ncn, restake.Pubkey{}},
		{relation.NcnVault, p.Ncn, p.Vault, restake.Pubkey{}},
	}
}

// TicketSet holds the loaded tickets of a slash by kind. A missing entry
// means the ticket does not exist.
type TicketSet map[relation.Kind]*relation.Ticket

// LoadTickets reads every ticket the parties' slash depends on.
func LoadTickets(svc *relation.Service, p Parties) (TicketSet, error) {
	set := make(TicketSet)
	for _, r := range p.refs() {
		t, err := svc.Ticket(r.kind, r.left, r.right, r.third)
		if err != nil {
			return nil, err
		}
		if t != nil {
			set[r.kind] = t
		}
	}
	return set, nil
}

// CheckSlashable requires every ticket of the set to be active or cooling
// down at slot. The first failing ticket decides the error.
func CheckSlashable(set TicketSet, slot, epochLength uint64) error {
	for _, r := range (Parties{}).refs() {
		t, ok := set[r.kind]
		if !ok {
			return relation.Unslashable(r.kind)
		}
		if err := t.CheckSlashable(slot, epochLength); err != nil {
			return err
		}
	}
	return nil
}

// MaxSlashablePerEpoch returns the cap the vault accepted for the slasher.
func (s TicketSet) MaxSlashablePerEpoch() uint64 {
	if t, ok := s[relation.VaultNcnSlasher]; ok {
		return t.MaxSlashablePerEpoch
	}
	return 0
}

// Outcome is the amount a slash will actually take.
type Outcome struct {
	Requested uint64
	Amount    uint64
	// Incomplete is set when less than requested could be taken.
	Incomplete bool
}

// Plan bounds a requested slash by what remains of the epoch's cap and by
// the delegation's security.
func Plan(requested, maxPerEpoch, slashedSoFar uint64, state *delegation.State) (Outcome, error) {
	if requested == 0 {
		return Outcome{}, errcode.InvalidArgument
	}
	if slashedSoFar >= maxPerEpoch {
		return Outcome{}, errcode.VaultMaxSlashedPerOperatorExceeded
	}
	remaining := maxPerEpoch - slashedSoFar

	security, err := state.TotalSecurity()
	if err != nil {
		return Outcome{}, err
	}
	if security == 0 {
		return Outcome{}, errcode.VaultSlashUnderflow
	}
	amount := min(requested, remaining, security)
	return Outcome{
		Requested:  requested,
		Amount:     amount,
		Incomplete: amount < requested,
	}, nil
}

// Apply takes the planned amount out of the delegation, the vault and the
// epoch's running total. The returned breakdown tells where it came from.
func Apply(o Outcome, d *delegation.VaultOperatorDelegation, v *vault.Vault, ticket *OperatorTicket) (delegation.Breakdown, error) {
	slashed, err := restake.CheckedAdd(ticket.Slashed, o.Amount)
	if err != nil {
		return delegation.Breakdown{}, errcode.SlasherOverflow
	}
	b, err := d.State.Slash(o.Amount)
	if err != nil {
		return delegation.Breakdown{}, err
	}
	if err := v.ApplySlash(b); err != nil {
		return delegation.Breakdown{}, err
	}
	ticket.Slashed = slashed
	return b, nil
}
