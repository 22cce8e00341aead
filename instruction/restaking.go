// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import (
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/restake"
)

// InitializeNcn creates an NCN at the address derived from Base. Signed by
// Base and Admin.
type InitializeNcn struct {
	Base  restake.Pubkey
	Admin restake.Pubkey
}

func (*InitializeNcn) Kind() Kind { return InitializeNcnKind }
func (i *InitializeNcn) fields(f fieldVisitor) {
	f.pubkey(&i.Base)
	f.pubkey(&i.Admin)
}

// InitializeOperator creates an operator at the address derived from Base.
// Signed by Base and Admin.
type InitializeOperator struct {
	Base           restake.Pubkey
	Admin          restake.Pubkey
	OperatorFeeBps uint16
}

func (*InitializeOperator) Kind() Kind { return InitializeOperatorKind }
func (i *InitializeOperator) fields(f fieldVisitor) {
	f.pubkey(&i.Base)
	f.pubkey(&i.Admin)
	f.u16(&i.OperatorFeeBps)
}

// NcnOperator names an NCN and an operator.
type NcnOperator struct {
	Ncn      restake.Pubkey
	Operator restake.Pubkey
}

func (i *NcnOperator) fields(f fieldVisitor) {
	f.pubkey(&i.Ncn)
	f.pubkey(&i.Operator)
}

// InitializeNcnOperatorState opens both sides of an NCN/operator relation,
// inactive. Signed by the NCN's operator admin.
type InitializeNcnOperatorState struct{ NcnOperator }

func (*InitializeNcnOperatorState) Kind() Kind { return InitializeNcnOperatorStateKind }

type NcnWarmupOperator struct{ NcnOperator }

func (*NcnWarmupOperator) Kind() Kind { return NcnWarmupOperatorKind }

type NcnCooldownOperator struct{ NcnOperator }

func (*NcnCooldownOperator) Kind() Kind { return NcnCooldownOperatorKind }

type OperatorWarmupNcn struct{ NcnOperator }

func (*OperatorWarmupNcn) Kind() Kind { return OperatorWarmupNcnKind }

type OperatorCooldownNcn struct{ NcnOperator }

func (*OperatorCooldownNcn) Kind() Kind { return OperatorCooldownNcnKind }

// NcnVault names an NCN and a vault.
type NcnVault struct {
	Ncn   restake.Pubkey
	Vault restake.Pubkey
}

func (i *NcnVault) fields(f fieldVisitor) {
	f.pubkey(&i.Ncn)
	f.pubkey(&i.Vault)
}

type InitializeNcnVaultTicket struct{ NcnVault }

func (*InitializeNcnVaultTicket) Kind() Kind { return InitializeNcnVaultTicketKind }

type WarmupNcnVaultTicket struct{ NcnVault }

func (*WarmupNcnVaultTicket) Kind() Kind { return WarmupNcnVaultTicketKind }

type CooldownNcnVaultTicket struct{ NcnVault }

func (*CooldownNcnVaultTicket) Kind() Kind { return CooldownNcnVaultTicketKind }

// OperatorVault names an operator and a vault.
type OperatorVault struct {
	Operator restake.Pubkey
	Vault    restake.Pubkey
}

func (i *OperatorVault) fields(f fieldVisitor) {
	f.pubkey(&i.Operator)
	f.pubkey(&i.Vault)
}

type InitializeOperatorVaultTicket struct{ OperatorVault }

func (*InitializeOperatorVaultTicket) Kind() Kind { return InitializeOperatorVaultTicketKind }

type WarmupOperatorVaultTicket struct{ OperatorVault }

func (*WarmupOperatorVaultTicket) Kind() Kind { return WarmupOperatorVaultTicketKind }

type CooldownOperatorVaultTicket struct{ OperatorVault }

func (*CooldownOperatorVaultTicket) Kind() Kind { return CooldownOperatorVaultTicketKind }

// NcnVaultSlasher names an NCN, a vault and a slasher.
type NcnVaultSlasher struct {
	Ncn     restake.Pubkey
	Vault   restake.Pubkey
	Slasher restake.Pubkey
}

func (i *NcnVaultSlasher) fields(f fieldVisitor) {
	f.pubkey(&i.Ncn)
	f.pubkey(&i.Vault)
	f.pubkey(&i.Slasher)
}

// InitializeNcnVaultSlasherTicket registers a slasher for a vault with its
// per-epoch cap. Signed by the NCN's slasher admin.
type InitializeNcnVaultSlasherTicket struct {
	NcnVaultSlasher
	MaxSlashablePerEpoch uint64
}

func (*InitializeNcnVaultSlasherTicket) Kind() Kind { return InitializeNcnVaultSlasherTicketKind }
func (i *InitializeNcnVaultSlasherTicket) fields(f fieldVisitor) {
	i.NcnVaultSlasher.fields(f)
	f.u64(&i.MaxSlashablePerEpoch)
}

type WarmupNcnVaultSlasherTicket struct{ NcnVaultSlasher }

func (*WarmupNcnVaultSlasherTicket) Kind() Kind { return WarmupNcnVaultSlasherTicketKind }

type CooldownNcnVaultSlasherTicket struct{ NcnVaultSlasher }

func (*CooldownNcnVaultSlasherTicket) Kind() Kind { return CooldownNcnVaultSlasherTicketKind }

// NcnSetAdmin hands an NCN to a new admin. Signed by the current admin.
type NcnSetAdmin struct {
	Ncn      restake.Pubkey
	NewAdmin restake.Pubkey
}

func (*NcnSetAdmin) Kind() Kind { return NcnSetAdminKind }
func (i *NcnSetAdmin) fields(f fieldVisitor) {
	f.pubkey(&i.Ncn)
	f.pubkey(&i.NewAdmin)
}

// NcnSetSecondaryAdmin assigns one NCN role. Signed by the NCN admin.
type NcnSetSecondaryAdmin struct {
	Ncn      restake.Pubkey
	Role     relation.NcnRole
	NewAdmin restake.Pubkey
}

func (*NcnSetSecondaryAdmin) Kind() Kind { return NcnSetSecondaryAdminKind }
func (i *NcnSetSecondaryAdmin) fields(f fieldVisitor) {
	f.pubkey(&i.Ncn)
	f.u8((*uint8)(&i.Role))
	f.pubkey(&i.NewAdmin)
}

type OperatorSetAdmin struct {
	Operator restake.Pubkey
	NewAdmin restake.Pubkey
}

func (*OperatorSetAdmin) Kind() Kind { return OperatorSetAdminKind }
func (i *OperatorSetAdmin) fields(f fieldVisitor) {
	f.pubkey(&i.Operator)
	f.pubkey(&i.NewAdmin)
}

type OperatorSetSecondaryAdmin struct {
	Operator restake.Pubkey
	Role     relation.OperatorRole
	NewAdmin restake.Pubkey
}

func (*OperatorSetSecondaryAdmin) Kind() Kind { return OperatorSetSecondaryAdminKind }
func (i *OperatorSetSecondaryAdmin) fields(f fieldVisitor) {
	f.pubkey(&i.Operator)
	f.u8((*uint8)(&i.Role))
	f.pubkey(&i.NewAdmin)
}

// OperatorSetFee changes the operator fee. Signed by the operator admin.
type OperatorSetFee struct {
	Operator       restake.Pubkey
	OperatorFeeBps uint16
}

func (*OperatorSetFee) Kind() Kind { return OperatorSetFeeKind }
func (i *OperatorSetFee) fields(f fieldVisitor) {
	f.pubkey(&i.Operator)
	f.u16(&i.OperatorFeeBps)
}
