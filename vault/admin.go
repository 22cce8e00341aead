// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/restake"
)

// Role is a secondary vault admin role.
type Role uint8

const (
	DelegationAdmin Role = iota
	OperatorAdmin
	NcnAdmin
	SlasherAdmin
	CapacityAdmin
	FeeWallet
	MintBurnAdmin
	DelegateAssetAdmin
	FeeAdmin
	MetadataAdmin
)

var roleNames = [...]string{
	DelegationAdmin:    "delegation-admin",
	OperatorAdmin:      "operator-admin",
	NcnAdmin:           "ncn-admin",
	SlasherAdmin:       "slasher-admin",
	CapacityAdmin:      "capacity-admin",
	FeeWallet:          "fee-wallet",
	MintBurnAdmin:      "mint-burn-admin",
	DelegateAssetAdmin: "delegate-asset-admin",
	FeeAdmin:           "fee-admin",
	MetadataAdmin:      "metadata-admin",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// roleErrors maps a role to the error returned when a signer does not hold it.
var roleErrors = map[Role]errcode.Code{
	DelegationAdmin:    errcode.VaultDelegationAdminInvalid,
	OperatorAdmin:      errcode.VaultOperatorAdminInvalid,
	NcnAdmin:           errcode.VaultNcnAdminInvalid,
	SlasherAdmin:       errcode.VaultSlasherAdminInvalid,
	CapacityAdmin:      errcode.VaultCapacityAdminInvalid,
	MintBurnAdmin:      errcode.VaultMintBurnAdminInvalid,
	DelegateAssetAdmin: errcode.VaultDelegateAssetAdminInvalid,
	FeeAdmin:           errcode.VaultFeeAdminInvalid,
	MetadataAdmin:      errcode.VaultAdminInvalid,
}

func (v *Vault) role(r Role) *restake.Pubkey {
	switch r {
	case DelegationAdmin:
		return &v.DelegationAdmin
	case OperatorAdmin:
		return &v.OperatorAdmin
	case NcnAdmin:
		return &v.NcnAdmin
	case SlasherAdmin:
		return &v.SlasherAdmin
	case CapacityAdmin:
		return &v.CapacityAdmin
	case FeeWallet:
		return &v.FeeWallet
	case MintBurnAdmin:
		return &v.MintBurnAdmin
	case DelegateAssetAdmin:
		return &v.DelegateAssetAdmin
	case FeeAdmin:
		return &v.FeeAdmin
	case MetadataAdmin:
		return &v.MetadataAdmin
	}
	return nil
}

// CheckAdmin fails unless signer is the vault admin.
func (v *Vault) CheckAdmin(signer restake.Pubkey) error {
	if v.Admin != signer {
		return errcode.VaultAdminInvalid
	}
	return nil
}

// CheckRole fails with the role's error unless signer holds it.
func (v *Vault) CheckRole(r Role, signer restake.Pubkey) error {
	code, ok := roleErrors[r]
	if !ok {
		return errcode.InvalidArgument
	}
	if *v.role(r) != signer {
		return code
	}
	return nil
}

// CheckMintBurnAdmin passes when no mint/burn admin is set, otherwise the
// admin must be among the signers.
func (v *Vault) CheckMintBurnAdmin(signed func(restake.Pubkey) bool) error {
	if v.MintBurnAdmin.IsZero() {
		return nil
	}
	if !signed(v.MintBurnAdmin) {
		return errcode.VaultMintBurnAdminInvalid
	}
	return nil
}

// SetSecondaryAdmin assigns one role. The signer must be the vault admin.
func (v *Vault) SetSecondaryAdmin(signer restake.Pubkey, r Role, admin restake.Pubkey) error {
	if err := v.CheckAdmin(signer); err != nil {
		return err
	}
	p := v.role(r)
	if p == nil {
		return errcode.InvalidArgument
	}
	*p = admin
	return nil
}

// SetAdmin hands the vault to a new admin. Every role still held by the old
// admin moves with it.
func (v *Vault) SetAdmin(signer, admin restake.Pubkey) error {
	if err := v.CheckAdmin(signer); err != nil {
		return err
	}
	old := v.Admin
	for r := DelegationAdmin; r <= MetadataAdmin; r++ {
		if p := v.role(r); *p == old {
			*p = admin
		}
	}
	v.Admin = admin
	return nil
}

func (v *Vault) SetIsPaused(signer restake.Pubkey, paused bool) error {
	if err := v.CheckAdmin(signer); err != nil {
		return err
	}
	v.IsPaused = paused
	return nil
}
