// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relation

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

// NcnRole is a secondary NCN admin role.
type NcnRole uint8

const (
	NcnOperatorRole NcnRole = iota
	NcnVaultRole
	NcnSlasherRole
	NcnWithdrawRole
)

func (n *Ncn) role(r NcnRole) *restake.Pubkey {
	switch r {
	case NcnOperatorRole:
		return &n.OperatorAdmin
	case NcnVaultRole:
		return &n.VaultAdmin
	case NcnSlasherRole:
		return &n.SlasherAdmin
	case NcnWithdrawRole:
		return &n.WithdrawAdmin
	}
	return nil
}

// SetAdmin hands the NCN to a new admin, moving the roles the old admin
// still holds.
func (n *Ncn) SetAdmin(signer, admin restake.Pubkey) error {
	if n.Admin != signer {
		return errcode.NcnAdminInvalid
	}
	for r := NcnOperatorRole; r <= NcnWithdrawRole; r++ {
		if p := n.role(r); *p == n.Admin {
			*p = admin
		}
	}
	n.Admin = admin
	return nil
}

// SetSecondaryAdmin assigns one role. The signer must be the NCN admin.
func (n *Ncn) SetSecondaryAdmin(signer restake.Pubkey, r NcnRole, admin restake.Pubkey) error {
	if n.Admin != signer {
		return errcode.NcnAdminInvalid
	}
	p := n.role(r)
	if p == nil {
		return errcode.InvalidArgument
	}
	*p = admin
	return nil
}

// OperatorRole is a secondary operator admin role.
type OperatorRole uint8

const (
	OperatorNcnRole OperatorRole = iota
	OperatorVaultRole
	OperatorWithdrawRole
)

func (o *Operator) role(r OperatorRole) *restake.Pubkey {
	switch r {
	case OperatorNcnRole:
		return &o.NcnAdmin
	case OperatorVaultRole:
		return &o.VaultAdmin
	case OperatorWithdrawRole:
		return &o.WithdrawAdmin
	}
	return nil
}

// SetAdmin hands the operator to a new admin, moving the roles the old admin
// still holds.
func (o *Operator) SetAdmin(signer, admin restake.Pubkey) error {
	if o.Admin != signer {
		return errcode.OperatorAdminInvalid
	}
	for r := OperatorNcnRole; r <= OperatorWithdrawRole; r++ {
		if p := o.role(r); *p == o.Admin {
			*p = admin
		}
	}
	o.Admin = admin
	return nil
}

// SetSecondaryAdmin assigns one role. The signer must be the operator admin.
func (o *Operator) SetSecondaryAdmin(signer restake.Pubkey, r OperatorRole, admin restake.Pubkey) error {
	if o.Admin != signer {
		return errcode.OperatorAdminInvalid
	}
	p := o.role(r)
	if p == nil {
		return errcode.InvalidArgument
	}
	*p = admin
	return nil
}

// SetFee changes the fee the operator charges, capped at 100%.
func (o *Operator) SetFee(signer restake.Pubkey, bps uint16) error {
	if o.Admin != signer {
		return errcode.OperatorAdminInvalid
	}
	if uint64(bps) > restake.MaxBPS {
		return errcode.OperatorFeeCapExceeded
	}
	o.OperatorFeeBps = bps
	return nil
}
