// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

import "fmt"

// Kind is the one byte instruction discriminator.
type Kind uint8

// vault program
const (
	InitializeConfigKind Kind = iota + 1
	InitializeVaultKind
	InitializeVaultOperatorDelegationKind
	InitializeVaultNcnTicketKind
	InitializeVaultNcnSlasherTicketKind
	InitializeVaultNcnSlasherOperatorTicketKind
	WarmupVaultNcnTicketKind
	CooldownVaultNcnTicketKind
	WarmupVaultNcnSlasherTicketKind
	CooldownVaultNcnSlasherTicketKind
	AddDelegationKind
	CooldownDelegationKind
	MintToKind
	BurnKind
	EnqueueWithdrawalKind
	ChangeWithdrawalTicketOwnerKind
	BurnWithdrawalTicketKind
	SetDepositCapacityKind
	SetFeesKind
	SetProgramFeeKind
	SetProgramFeeWalletKind
	SetAdminKind
	SetSecondaryAdminKind
	SetConfigAdminKind
	SetIsPausedKind
	UpdateVaultBalanceKind
	InitializeVaultUpdateStateTrackerKind
	CrankVaultUpdateStateTrackerKind
	CloseVaultUpdateStateTrackerKind
	SlashKind
	CreateTokenMetadataKind
	UpdateTokenMetadataKind
	DelegateTokenAccountKind
	RevokeDelegateTokenAccountKind
)

// restaking program
const (
	InitializeNcnKind Kind = iota + 64
	InitializeOperatorKind
	InitializeNcnOperatorStateKind
	NcnWarmupOperatorKind
	NcnCooldownOperatorKind
	OperatorWarmupNcnKind
	OperatorCooldownNcnKind
	InitializeNcnVaultTicketKind
	WarmupNcnVaultTicketKind
	CooldownNcnVaultTicketKind
	InitializeOperatorVaultTicketKind
	WarmupOperatorVaultTicketKind
	CooldownOperatorVaultTicketKind
	InitializeNcnVaultSlasherTicketKind
	WarmupNcnVaultSlasherTicketKind
	CooldownNcnVaultSlasherTicketKind
	NcnSetAdminKind
	NcnSetSecondaryAdminKind
	OperatorSetAdminKind
	OperatorSetSecondaryAdminKind
	OperatorSetFeeKind
)

var kindNames = map[Kind]string{
	InitializeConfigKind:                        "InitializeConfig",
	InitializeVaultKind:                         "InitializeVault",
	InitializeVaultOperatorDelegationKind:       "InitializeVaultOperatorDelegation",
	InitializeVaultNcnTicketKind:                "InitializeVaultNcnTicket",
	InitializeVaultNcnSlasherTicketKind:         "InitializeVaultNcnSlasherTicket",
	InitializeVaultNcnSlasherOperatorTicketKind: "InitializeVaultNcnSlasherOperatorTicket",
	WarmupVaultNcnTicketKind:                    "WarmupVaultNcnTicket",
	CooldownVaultNcnTicketKind:                  "CooldownVaultNcnTicket",
	WarmupVaultNcnSlasherTicketKind:             "WarmupVaultNcnSlasherTicket",
	CooldownVaultNcnSlasherTicketKind:           "CooldownVaultNcnSlasherTicket",
	AddDelegationKind:                           "AddDelegation",
	CooldownDelegationKind:                      "CooldownDelegation",
	MintToKind:                                  "MintTo",
	BurnKind:                                    "Burn",
	EnqueueWithdrawalKind:                       "EnqueueWithdrawal",
	ChangeWithdrawalTicketOwnerKind:             "ChangeWithdrawalTicketOwner",
	BurnWithdrawalTicketKind:                    "BurnWithdrawalTicket",
	SetDepositCapacityKind:                      "SetDepositCapacity",
	SetFeesKind:                                 "SetFees",
	SetProgramFeeKind:                           "SetProgramFee",
	SetProgramFeeWalletKind:                     "SetProgramFeeWallet",
	SetAdminKind:                                "SetAdmin",
	SetSecondaryAdminKind:                       "SetSecondaryAdmin",
	SetConfigAdminKind:                          "SetConfigAdmin",
	SetIsPausedKind:                             "SetIsPaused",
	UpdateVaultBalanceKind:                      "UpdateVaultBalance",
	InitializeVaultUpdateStateTrackerKind:       "InitializeVaultUpdateStateTracker",
	CrankVaultUpdateStateTrackerKind:            "CrankVaultUpdateStateTracker",
	CloseVaultUpdateStateTrackerKind:            "CloseVaultUpdateStateTracker",
	SlashKind:                                   "Slash",
	CreateTokenMetadataKind:                     "CreateTokenMetadata",
	UpdateTokenMetadataKind:                     "UpdateTokenMetadata",
	DelegateTokenAccountKind:                    "DelegateTokenAccount",
	RevokeDelegateTokenAccountKind:              "RevokeDelegateTokenAccount",

	InitializeNcnKind:                   "InitializeNcn",
	InitializeOperatorKind:              "InitializeOperator",
	InitializeNcnOperatorStateKind:      "InitializeNcnOperatorState",
	NcnWarmupOperatorKind:               "NcnWarmupOperator",
	NcnCooldownOperatorKind:             "NcnCooldownOperator",
	OperatorWarmupNcnKind:               "OperatorWarmupNcn",
	OperatorCooldownNcnKind:             "OperatorCooldownNcn",
	InitializeNcnVaultTicketKind:        "InitializeNcnVaultTicket",
	WarmupNcnVaultTicketKind:            "WarmupNcnVaultTicket",
	CooldownNcnVaultTicketKind:          "CooldownNcnVaultTicket",
	InitializeOperatorVaultTicketKind:   "InitializeOperatorVaultTicket",
	WarmupOperatorVaultTicketKind:       "WarmupOperatorVaultTicket",
	CooldownOperatorVaultTicketKind:     "CooldownOperatorVaultTicket",
	InitializeNcnVaultSlasherTicketKind: "InitializeNcnVaultSlasherTicket",
	WarmupNcnVaultSlasherTicketKind:     "WarmupNcnVaultSlasherTicket",
	CooldownNcnVaultSlasherTicketKind:   "CooldownNcnVaultSlasherTicket",
	NcnSetAdminKind:                     "NcnSetAdmin",
	NcnSetSecondaryAdminKind:            "NcnSetSecondaryAdmin",
	OperatorSetAdminKind:                "OperatorSetAdmin",
	OperatorSetSecondaryAdminKind:       "OperatorSetSecondaryAdmin",
	OperatorSetFeeKind:                  "OperatorSetFee",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
