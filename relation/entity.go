// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relation

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const (
	ncnSize      = layout.DiscriminatorLen + 32*6 + 8*4 + 256
	operatorSize = layout.DiscriminatorLen + 32*5 + 8*3 + 2 + 256
)

func NcnAddress(base restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("ncn"), base[:])
}

func OperatorAddress(base restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("operator"), base[:])
}

// Ncn is a node consensus network.
type Ncn struct {
	Base          restake.Pubkey
	Admin         restake.Pubkey
	OperatorAdmin restake.Pubkey
	VaultAdmin    restake.Pubkey
	SlasherAdmin  restake.Pubkey
	WithdrawAdmin restake.Pubkey

	Index         uint64
	OperatorCount uint64
	VaultCount    uint64
	SlasherCount  uint64
}

// NewNcn creates an NCN whose roles all belong to admin.
func NewNcn(base, admin restake.Pubkey, index uint64) *Ncn {
	return &Ncn{
		Base:          base,
		Admin:         admin,
		OperatorAdmin: admin,
		VaultAdmin:    admin,
		SlasherAdmin:  admin,
		WithdrawAdmin: admin,
		Index:         index,
	}
}

func (n *Ncn) Discriminator() uint64 { return layout.NcnAccount }

func (n *Ncn) Encode() []byte {
	return layout.NewEncoder(ncnSize).
		Account(n.Discriminator()).
		Pubkey(n.Base).
		Pubkey(n.Admin).
		Pubkey(n.OperatorAdmin).
		Pubkey(n.VaultAdmin).
		Pubkey(n.SlasherAdmin).
		Pubkey(n.WithdrawAdmin).
		U64(n.Index).
		U64(n.OperatorCount).
		U64(n.VaultCount).
		U64(n.SlasherCount).
		Reserved(256).
		Bytes()
}

func (n *Ncn) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(n.Discriminator())
	n.Base = d.Pubkey()
	n.Admin = d.Pubkey()
	n.OperatorAdmin = d.Pubkey()
	n.VaultAdmin = d.Pubkey()
	n.SlasherAdmin = d.Pubkey()
	n.WithdrawAdmin = d.Pubkey()
	n.Index = d.U64()
	n.OperatorCount = d.U64()
	n.VaultCount = d.U64()
	n.SlasherCount = d.U64()
	d.Reserved(256)
	return d.Finish()
}

// CheckAdmin verifies signer controls tickets of kind k owned by this NCN.
func (n *Ncn) CheckAdmin(k Kind, signer restake.Pubkey) error {
	switch k {
	case NcnOperator:
		if n.OperatorAdmin != signer {
			return errcode.NcnOperatorAdminInvalid
		}
	case NcnVault:
		if n.VaultAdmin != signer {
			return errcode.NcnVaultAdminInvalid
		}
	case NcnVaultSlasher:
		if n.SlasherAdmin != signer {
			return errcode.NcnSlasherAdminInvalid
		}
	default:
		if n.Admin != signer {
			return errcode.NcnAdminInvalid
		}
	}
	return nil
}

// Operator runs nodes for NCNs and receives vault delegations.
type Operator struct {
	Base          restake.Pubkey
	Admin         restake.Pubkey
	NcnAdmin      restake.Pubkey
	VaultAdmin    restake.Pubkey
	WithdrawAdmin restake.Pubkey

	Index      uint64
	NcnCount   uint64
	VaultCount uint64

	OperatorFeeBps uint16
}

// NewOperator creates an operator whose roles all belong to admin.
func NewOperator(base, admin restake.Pubkey, index uint64, feeBps uint16) *Operator {
	return &Operator{
		Base:           base,
		Admin:          admin,
		NcnAdmin:       admin,
		VaultAdmin:     admin,
		WithdrawAdmin:  admin,
		Index:          index,
		OperatorFeeBps: feeBps,
	}
}

func (o *Operator) Discriminator() uint64 { return layout.OperatorAccount }

func (o *Operator) Encode() []byte {
	return layout.NewEncoder(operatorSize).
		Account(o.Discriminator()).
		Pubkey(o.Base).
		Pubkey(o.Admin).
		Pubkey(o.NcnAdmin).
		Pubkey(o.VaultAdmin).
		Pubkey(o.WithdrawAdmin).
		U64(o.Index).
		U64(o.NcnCount).
		U64(o.VaultCount).
		U16(o.OperatorFeeBps).
		Reserved(256).
		Bytes()
}

func (o *Operator) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(o.Discriminator())
	o.Base = d.Pubkey()
	o.Admin = d.Pubkey()
	o.NcnAdmin = d.Pubkey()
	o.VaultAdmin = d.Pubkey()
	o.WithdrawAdmin = d.Pubkey()
	o.Index = d.U64()
	o.NcnCount = d.U64()
	o.VaultCount = d.U64()
	o.OperatorFeeBps = d.U16()
	d.Reserved(256)
	return d.Finish()
}

// CheckAdmin verifies signer controls tickets of kind k owned by this operator.
func (o *Operator) CheckAdmin(k Kind, signer restake.Pubkey) error {
	switch k {
	case OperatorNcn:
		if o.NcnAdmin != signer {
			return errcode.OperatorNcnAdminInvalid
		}
	case OperatorVault:
		if o.VaultAdmin != signer {
			return errcode.OperatorVaultAdminInvalid
		}
	default:
		if o.Admin != signer {
			return errcode.OperatorAdminInvalid
		}
	}
	return nil
}
