// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instruction

var registry = map[Kind]func() Instruction{
	InitializeConfigKind:                        func() Instruction { return new(InitializeConfig) },
	InitializeVaultKind:                         func() Instruction { return new(InitializeVault) },
	InitializeVaultOperatorDelegationKind:       func() Instruction { return new(InitializeVaultOperatorDelegation) },
	InitializeVaultNcnTicketKind:                func() Instruction { return new(InitializeVaultNcnTicket) },
	InitializeVaultNcnSlasherTicketKind:         func() Instruction { return new(InitializeVaultNcnSlasherTicket) },
	InitializeVaultNcnSlasherOperatorTicketKind: func() Instruction { return new(InitializeVaultNcnSlasherOperatorTicket) },
	WarmupVaultNcnTicketKind:                    func() Instruction { return new(WarmupVaultNcnTicket) },
	CooldownVaultNcnTicketKind:                  func() Instruction { return new(CooldownVaultNcnTicket) },
	WarmupVaultNcnSlasherTicketKind:             func() Instruction { return new(WarmupVaultNcnSlasherTicket) },
	CooldownVaultNcnSlasherTicketKind:           func() Instruction { return new(CooldownVaultNcnSlasherTicket) },
	AddDelegationKind:                           func() Instruction { return new(AddDelegation) },
	CooldownDelegationKind:                      func() Instruction { return new(CooldownDelegation) },
	MintToKind:                                  func() Instruction { return new(MintTo) },
	BurnKind:                                    func() Instruction { return new(Burn) },
	EnqueueWithdrawalKind:                       func() Instruction { return new(EnqueueWithdrawal) },
	ChangeWithdrawalTicketOwnerKind:             func() Instruction { return new(ChangeWithdrawalTicketOwner) },
	BurnWithdrawalTicketKind:                    func() Instruction { return new(BurnWithdrawalTicket) },
	SetDepositCapacityKind:                      func() Instruction { return new(SetDepositCapacity) },
	SetFeesKind:                                 func() Instruction { return new(SetFees) },
	SetProgramFeeKind:                           func() Instruction { return new(SetProgramFee) },
	SetProgramFeeWalletKind:                     func() Instruction { return new(SetProgramFeeWallet) },
	SetAdminKind:                                func() Instruction { return new(SetAdmin) },
	SetSecondaryAdminKind:                       func() Instruction { return new(SetSecondaryAdmin) },
	SetConfigAdminKind:                          func() Instruction { return new(SetConfigAdmin) },
	SetIsPausedKind:                             func() Instruction { return new(SetIsPaused) },
	UpdateVaultBalanceKind:                      func() Instruction { return new(UpdateVaultBalance) },
	InitializeVaultUpdateStateTrackerKind:       func() Instruction { return new(InitializeVaultUpdateStateTracker) },
	CrankVaultUpdateStateTrackerKind:            func() Instruction { return new(CrankVaultUpdateStateTracker) },
	CloseVaultUpdateStateTrackerKind:            func() Instruction { return new(CloseVaultUpdateStateTracker) },
	SlashKind:                                   func() Instruction { return new(Slash) },
	CreateTokenMetadataKind:                     func() Instruction { return new(CreateTokenMetadata) },
	UpdateTokenMetadataKind:                     func() Instruction { return new(UpdateTokenMetadata) },
	DelegateTokenAccountKind:                    func() Instruction { return new(DelegateTokenAccount) },
	RevokeDelegateTokenAccountKind:              func() Instruction { return new(RevokeDelegateTokenAccount) },

	InitializeNcnKind:                   func() Instruction { return new(InitializeNcn) },
	InitializeOperatorKind:              func() Instruction { return new(InitializeOperator) },
	InitializeNcnOperatorStateKind:      func() Instruction { return new(InitializeNcnOperatorState) },
	NcnWarmupOperatorKind:               func() Instruction { return new(NcnWarmupOperator) },
	NcnCooldownOperatorKind:             func() Instruction { return new(NcnCooldownOperator) },
	OperatorWarmupNcnKind:               func() Instruction { return new(OperatorWarmupNcn) },
	OperatorCooldownNcnKind:             func() Instruction { return new(OperatorCooldownNcn) },
	InitializeNcnVaultTicketKind:        func() Instruction { return new(InitializeNcnVaultTicket) },
	WarmupNcnVaultTicketKind:            func() Instruction { return new(WarmupNcnVaultTicket) },
	CooldownNcnVaultTicketKind:          func() Instruction { return new(CooldownNcnVaultTicket) },
	InitializeOperatorVaultTicketKind:   func() Instruction { return new(InitializeOperatorVaultTicket) },
	WarmupOperatorVaultTicketKind:       func() Instruction { return new(WarmupOperatorVaultTicket) },
	CooldownOperatorVaultTicketKind:     func() Instruction { return new(CooldownOperatorVaultTicket) },
	InitializeNcnVaultSlasherTicketKind: func() Instruction { return new(InitializeNcnVaultSlasherTicket) },
	WarmupNcnVaultSlasherTicketKind:     func() Instruction { return new(WarmupNcnVaultSlasherTicket) },
	CooldownNcnVaultSlasherTicketKind:   func() Instruction { return new(CooldownNcnVaultSlasherTicket) },
	NcnSetAdminKind:                     func() Instruction { return new(NcnSetAdmin) },
	NcnSetSecondaryAdminKind:            func() Instruction { return new(NcnSetSecondaryAdmin) },
	OperatorSetAdminKind:                func() Instruction { return new(OperatorSetAdmin) },
	OperatorSetSecondaryAdminKind:       func() Instruction { return new(OperatorSetSecondaryAdmin) },
	OperatorSetFeeKind:                  func() Instruction { return new(OperatorSetFee) },
}
