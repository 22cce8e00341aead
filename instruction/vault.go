// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import (
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
)

// InitializeConfig creates the protocol config. Signed by Admin.
type InitializeConfig struct {
	Admin            restake.Pubkey
	EpochLength      uint64
	ProgramFeeBps    uint16
	ProgramFeeWallet restake.Pubkey
}

func (*InitializeConfig) Kind() Kind { return InitializeConfigKind }
func (i *InitializeConfig) fields(f fieldVisitor) {
	f.pubkey(&i.Admin)
	f.u64(&i.EpochLength)
	f.u16(&i.ProgramFeeBps)
	f.pubkey(&i.ProgramFeeWallet)
}

// InitializeVault creates a vault at the address derived from Base, with
// VrtMint as its new receipt token mint. Signed by Base and Admin.
type InitializeVault struct {
	Base             restake.Pubkey
	Admin            restake.Pubkey
	VrtMint          restake.Pubkey
	SupportedMint    restake.Pubkey
	DepositFeeBps    uint16
	WithdrawalFeeBps uint16
	RewardFeeBps     uint16
	Decimals         uint8
}

func (*InitializeVault) Kind() Kind { return InitializeVaultKind }
func (i *InitializeVault) fields(f fieldVisitor) {
	f.pubkey(&i.Base)
	f.pubkey(&i.Admin)
	f.pubkey(&i.VrtMint)
	f.pubkey(&i.SupportedMint)
	f.u16(&i.DepositFeeBps)
	f.u16(&i.WithdrawalFeeBps)
	f.u16(&i.RewardFeeBps)
	f.u8(&i.Decimals)
}

// VaultOperator names a vault and an operator.
type VaultOperator struct {
	Vault    restake.Pubkey
	Operator restake.Pubkey
}

func (i *VaultOperator) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Operator)
}

// VaultNcn names a vault and an NCN.
type VaultNcn struct {
	Vault restake.Pubkey
	Ncn   restake.Pubkey
}

func (i *VaultNcn) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Ncn)
}

// VaultNcnSlasher names a vault, an NCN and one of its slashers.
type VaultNcnSlasher struct {
	Vault   restake.Pubkey
	Ncn     restake.Pubkey
	Slasher restake.Pubkey
}

func (i *VaultNcnSlasher) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Ncn)
	f.pubkey(&i.Slasher)
}

// InitializeVaultOperatorDelegation opens a delegation from the vault to an
// operator that accepted it. Signed by the vault's operator admin.
type InitializeVaultOperatorDelegation struct{ VaultOperator }

func (*InitializeVaultOperatorDelegation) Kind() Kind { return InitializeVaultOperatorDelegationKind }

// InitializeVaultNcnTicket opts the vault into an NCN. Signed by the vault's
// NCN admin.
type InitializeVaultNcnTicket struct{ VaultNcn }

func (*InitializeVaultNcnTicket) Kind() Kind { return InitializeVaultNcnTicketKind }

// InitializeVaultNcnSlasherTicket accepts an NCN's slasher. Signed by the
// vault's slasher admin.
type InitializeVaultNcnSlasherTicket struct{ VaultNcnSlasher }

func (*InitializeVaultNcnSlasherTicket) Kind() Kind { return InitializeVaultNcnSlasherTicketKind }

// InitializeVaultNcnSlasherOperatorTicket opens the current epoch's slash
// total for an operator. Anyone may send it.
type InitializeVaultNcnSlasherOperatorTicket struct {
	VaultNcnSlasher
	Operator restake.Pubkey
}

func (*InitializeVaultNcnSlasherOperatorTicket) Kind() Kind {
	return InitializeVaultNcnSlasherOperatorTicketKind
}
func (i *InitializeVaultNcnSlasherOperatorTicket) fields(f fieldVisitor) {
	i.VaultNcnSlasher.fields(f)
	f.pubkey(&i.Operator)
}

type WarmupVaultNcnTicket struct{ VaultNcn }

func (*WarmupVaultNcnTicket) Kind() Kind { return WarmupVaultNcnTicketKind }

type CooldownVaultNcnTicket struct{ VaultNcn }

func (*CooldownVaultNcnTicket) Kind() Kind { return CooldownVaultNcnTicketKind }

type WarmupVaultNcnSlasherTicket struct{ VaultNcnSlasher }

func (*WarmupVaultNcnSlasherTicket) Kind() Kind { return WarmupVaultNcnSlasherTicketKind }

type CooldownVaultNcnSlasherTicket struct{ VaultNcnSlasher }

func (*CooldownVaultNcnSlasherTicket) Kind() Kind { return CooldownVaultNcnSlasherTicketKind }

// AddDelegation stakes idle vault assets with an operator. Signed by the
// vault's delegation admin.
type AddDelegation struct {
	VaultOperator
	Amount uint64
}

func (*AddDelegation) Kind() Kind { return AddDelegationKind }
func (i *AddDelegation) fields(f fieldVisitor) {
	i.VaultOperator.fields(f)
	f.u64(&i.Amount)
}

// CooldownDelegation starts unstaking from an operator. Signed by the vault's
// delegation admin.
type CooldownDelegation struct {
	VaultOperator
	Amount uint64
}

func (*CooldownDelegation) Kind() Kind { return CooldownDelegationKind }
func (i *CooldownDelegation) fields(f fieldVisitor) {
	i.VaultOperator.fields(f)
	f.u64(&i.Amount)
}

// MintTo deposits AmountIn supported tokens for VRT. Signed by Depositor,
// and by the mint-burn admin when the vault has one.
type MintTo struct {
	Vault        restake.Pubkey
	Depositor    restake.Pubkey
	AmountIn     uint64
	MinAmountOut uint64
}

func (*MintTo) Kind() Kind { return MintToKind }
func (i *MintTo) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Depositor)
	f.u64(&i.AmountIn)
	f.u64(&i.MinAmountOut)
}

// Burn redeems VRT for idle assets right away. Signed by Staker, and by the
// mint-burn admin when the vault has one.
type Burn struct {
	Vault        restake.Pubkey
	Staker       restake.Pubkey
	AmountIn     uint64
	MinAmountOut uint64
}

func (*Burn) Kind() Kind { return BurnKind }
func (i *Burn) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Staker)
	f.u64(&i.AmountIn)
	f.u64(&i.MinAmountOut)
}

// EnqueueWithdrawal escrows VRT in a new withdrawal ticket derived from Base.
// Signed by Staker and Base.
type EnqueueWithdrawal struct {
	Vault     restake.Pubkey
	Staker    restake.Pubkey
	Base      restake.Pubkey
	VrtAmount uint64
}

func (*EnqueueWithdrawal) Kind() Kind { return EnqueueWithdrawalKind }
func (i *EnqueueWithdrawal) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Staker)
	f.pubkey(&i.Base)
	f.u64(&i.VrtAmount)
}

// ChangeWithdrawalTicketOwner hands a ticket to NewOwner. Signed by the
// current staker.
type ChangeWithdrawalTicketOwner struct {
	Vault    restake.Pubkey
	Base     restake.Pubkey
	NewOwner restake.Pubkey
}

func (*ChangeWithdrawalTicketOwner) Kind() Kind { return ChangeWithdrawalTicketOwnerKind }
func (i *ChangeWithdrawalTicketOwner) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Base)
	f.pubkey(&i.NewOwner)
}

// BurnWithdrawalTicket redeems a matured ticket. Signed by the staker.
type BurnWithdrawalTicket struct {
	Vault        restake.Pubkey
	Base         restake.Pubkey
	MinAmountOut uint64
}

func (*BurnWithdrawalTicket) Kind() Kind { return BurnWithdrawalTicketKind }
func (i *BurnWithdrawalTicket) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Base)
	f.u64(&i.MinAmountOut)
}

type SetDepositCapacity struct {
	Vault  restake.Pubkey
	Amount uint64
}

func (*SetDepositCapacity) Kind() Kind { return SetDepositCapacityKind }
func (i *SetDepositCapacity) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.u64(&i.Amount)
}

// SetFees changes the fees that are set. Signed by the vault's fee admin.
type SetFees struct {
	Vault            restake.Pubkey
	DepositFeeBps    *uint16
	WithdrawalFeeBps *uint16
	RewardFeeBps     *uint16
}

func (*SetFees) Kind() Kind { return SetFeesKind }
func (i *SetFees) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.optU16(&i.DepositFeeBps)
	f.optU16(&i.WithdrawalFeeBps)
	f.optU16(&i.RewardFeeBps)
}

// Change returns the fee change carried by the instruction.
func (i *SetFees) Change() vault.FeeChange {
	return vault.FeeChange{
		DepositFeeBps:    i.DepositFeeBps,
		WithdrawalFeeBps: i.WithdrawalFeeBps,
		RewardFeeBps:     i.RewardFeeBps,
	}
}

type SetProgramFee struct {
	NewFeeBps uint16
}

func (*SetProgramFee) Kind() Kind              { return SetProgramFeeKind }
func (i *SetProgramFee) fields(f fieldVisitor) { f.u16(&i.NewFeeBps) }

type SetProgramFeeWallet struct {
	Wallet restake.Pubkey
}

func (*SetProgramFeeWallet) Kind() Kind              { return SetProgramFeeWalletKind }
func (i *SetProgramFeeWallet) fields(f fieldVisitor) { f.pubkey(&i.Wallet) }

// SetAdmin replaces the vault admin. Signed by the current admin.
type SetAdmin struct {
	Vault    restake.Pubkey
	NewAdmin restake.Pubkey
}

func (*SetAdmin) Kind() Kind { return SetAdminKind }
func (i *SetAdmin) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.NewAdmin)
}

// SetSecondaryAdmin assigns one vault role. Signed by the vault admin.
type SetSecondaryAdmin struct {
	Vault    restake.Pubkey
	Role     vault.Role
	NewAdmin restake.Pubkey
}

func (*SetSecondaryAdmin) Kind() Kind { return SetSecondaryAdminKind }
func (i *SetSecondaryAdmin) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.u8((*uint8)(&i.Role))
	f.pubkey(&i.NewAdmin)
}

// SetConfigAdmin rotates the config admin or the program fee admin. Signed by
// the config admin.
type SetConfigAdmin struct {
	Role     vault.ConfigAdminRole
	NewAdmin restake.Pubkey
}

func (*SetConfigAdmin) Kind() Kind { return SetConfigAdminKind }
func (i *SetConfigAdmin) fields(f fieldVisitor) {
	f.u8((*uint8)(&i.Role))
	f.pubkey(&i.NewAdmin)
}

type SetIsPaused struct {
	Vault    restake.Pubkey
	IsPaused bool
}

func (*SetIsPaused) Kind() Kind { return SetIsPausedKind }
func (i *SetIsPaused) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.boolean(&i.IsPaused)
}

// UpdateVaultBalance books rewards sent to the vault. Anyone may send it.
type UpdateVaultBalance struct {
	Vault restake.Pubkey
}

func (*UpdateVaultBalance) Kind() Kind              { return UpdateVaultBalanceKind }
func (i *UpdateVaultBalance) fields(f fieldVisitor) { f.pubkey(&i.Vault) }

type InitializeVaultUpdateStateTracker struct {
	Vault  restake.Pubkey
	Method tracker.Method
}

func (*InitializeVaultUpdateStateTracker) Kind() Kind { return InitializeVaultUpdateStateTrackerKind }
func (i *InitializeVaultUpdateStateTracker) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.u8((*uint8)(&i.Method))
}

type CrankVaultUpdateStateTracker struct{ VaultOperator }

func (*CrankVaultUpdateStateTracker) Kind() Kind { return CrankVaultUpdateStateTrackerKind }

type CloseVaultUpdateStateTracker struct {
	Vault restake.Pubkey
	Epoch uint64
}

func (*CloseVaultUpdateStateTracker) Kind() Kind { return CloseVaultUpdateStateTrackerKind }
func (i *CloseVaultUpdateStateTracker) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.u64(&i.Epoch)
}

// Slash takes up to Amount of an operator's delegation and pays it to the
// slasher. Signed by the slasher.
type Slash struct {
	VaultNcnSlasher
	Operator restake.Pubkey
	Amount   uint64
}

func (*Slash) Kind() Kind { return SlashKind }
func (i *Slash) fields(f fieldVisitor) {
	i.VaultNcnSlasher.fields(f)
	f.pubkey(&i.Operator)
	f.u64(&i.Amount)
}

// TokenMetadata carries the text fields of the vault's VRT metadata.
type TokenMetadata struct {
	Vault  restake.Pubkey
	Name   string
	Symbol string
	URI    string
}

func (i *TokenMetadata) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.str(&i.Name, token.NameLen)
	f.str(&i.Symbol, token.SymbolLen)
	f.str(&i.URI, token.URILen)
}

type CreateTokenMetadata struct{ TokenMetadata }

func (*CreateTokenMetadata) Kind() Kind { return CreateTokenMetadataKind }

type UpdateTokenMetadata struct{ TokenMetadata }

func (*UpdateTokenMetadata) Kind() Kind { return UpdateTokenMetadataKind }

// DelegateTokenAccount lets Delegate move up to Amount of a stray token the
// vault holds. Signed by the vault's delegate asset admin.
type DelegateTokenAccount struct {
	Vault    restake.Pubkey
	Mint     restake.Pubkey
	Delegate restake.Pubkey
	Amount   uint64
}

func (*DelegateTokenAccount) Kind() Kind { return DelegateTokenAccountKind }
func (i *DelegateTokenAccount) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Mint)
	f.pubkey(&i.Delegate)
	f.u64(&i.Amount)
}

type RevokeDelegateTokenAccount struct {
	Vault restake.Pubkey
	Mint  restake.Pubkey
}

func (*RevokeDelegateTokenAccount) Kind() Kind { return RevokeDelegateTokenAccountKind }
func (i *RevokeDelegateTokenAccount) fields(f fieldVisitor) {
	f.pubkey(&i.Vault)
	f.pubkey(&i.Mint)
}
