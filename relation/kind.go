// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relation

import "github.com/vechain/restake/errcode"

// Kind tags what a ticket connects. Left, Right and Third of a ticket are
// read in the order of the kind's name.
type Kind uint8

const (
	NcnOperator Kind = iota + 1
	OperatorNcn
	NcnVault
	OperatorVault
	VaultNcn
	NcnVaultSlasher
	VaultNcnSlasher
)

// Owner is the entity whose admin controls a kind of ticket.
type Owner uint8

const (
	OwnerNcn Owner = iota
	OwnerOperator
	OwnerVault
)

type kindInfo struct {
	name        string
	seed        string
	owner       Owner
	warmup      errcode.Code
	cooldown    errcode.Code
	notActive   errcode.Code
	unslashable errcode.Code
}

var kinds = map[Kind]kindInfo{
	NcnOperator: {
		"ncn-operator", "ncn_operator_ticket", OwnerNcn,
		errcode.NcnWarmupOperatorFailed, errcode.NcnCooldownOperatorFailed,
		errcode.OperatorNcnTicketNotActive, errcode.NcnOperatorStateUnslashable,
	},
	OperatorNcn: {
		"operator-ncn", "operator_ncn_ticket", OwnerOperator,
		errcode.OperatorWarmupNcnFailed, errcode.OperatorCooldownNcnFailed,
		errcode.OperatorNcnTicketNotActive, errcode.NcnOperatorStateUnslashable,
	},
	NcnVault: {
		"ncn-vault", "ncn_vault_ticket", OwnerNcn,
		errcode.NcnVaultTicketFailedWarmup, errcode.NcnVaultTicketFailedCooldown,
		errcode.NcnVaultTicketNotActive, errcode.NcnVaultTicketUnslashable,
	},
	OperatorVault: {
		"operator-vault", "operator_vault_ticket", OwnerOperator,
		errcode.OperatorVaultTicketFailedWarmup, errcode.OperatorVaultTicketFailedCooldown,
		errcode.OperatorVaultTicketNotActive, errcode.OperatorVaultTicketUnslashable,
	},
	VaultNcn: {
		"vault-ncn", "vault_ncn_ticket", OwnerVault,
		errcode.VaultNcnTicketFailedWarmup, errcode.VaultNcnTicketFailedCooldown,
		errcode.VaultNcnTicketFailedWarmup, errcode.VaultNcnTicketUnslashable,
	},
	NcnVaultSlasher: {
		"ncn-vault-slasher", "ncn_vault_slasher_ticket", OwnerNcn,
		errcode.NcnVaultSlasherTicketFailedWarmup, errcode.NcnVaultSlasherTicketFailedCooldown,
		errcode.NcnVaultSlasherTicketNotActive, errcode.NcnVaultSlasherTicketUnslashable,
	},
	VaultNcnSlasher: {
		"vault-ncn-slasher", "vault_ncn_slasher_ticket", OwnerVault,
		errcode.VaultNcnSlasherTicketFailedWarmup, errcode.VaultNcnSlasherTicketFailedCooldown,
		errcode.VaultNcnSlasherTicketNotActive, errcode.VaultNcnSlasherTicketUnslashable,
	},
}

func (k Kind) info() kindInfo {
	if i, ok := kinds[k]; ok {
		return i
	}
	return kindInfo{name: "unknown", warmup: errcode.InvalidArgument, cooldown: errcode.InvalidArgument,
		notActive: errcode.InvalidArgument, unslashable: errcode.InvalidArgument}
}

func (k Kind) String() string { return k.info().name }

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Owner returns the entity whose admin warms up and cools down the ticket.
func (k Kind) Owner() Owner { return k.info().owner }

// HasSlasher reports whether tickets of this kind name a slasher.
func (k Kind) HasSlasher() bool {
	return k == NcnVaultSlasher || k == VaultNcnSlasher
}

// Prerequisite returns the counterpart ticket that must be active before a
// ticket of kind k can be created.
func (k Kind) Prerequisite() (Kind, bool) {
	switch k {
	case VaultNcn:
		return NcnVault, true
	case VaultNcnSlasher:
		return NcnVaultSlasher, true
	}
	return 0, false
}
