// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package errcode

// Kind groups codes by the nature of the failure.
type Kind uint8

const (
	KindValidation Kind = iota
	KindAuthorization
	KindNotReady
	KindRevoked
	KindArithmetic
	KindCapacity
	KindStaleness
	KindZeroAmount
	KindSlippage
)

var kindNames = [...]string{
	KindValidation:    "validation",
	KindAuthorization: "authorization",
	KindNotReady:      "relationship-not-ready",
	KindRevoked:       "relationship-revoked",
	KindArithmetic:    "arithmetic",
	KindCapacity:      "capacity",
	KindStaleness:     "staleness",
	KindZeroAmount:    "zero-amount",
	KindSlippage:      "slippage",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kinds = map[Code]Kind{
	VaultOperatorAdminInvalid:                KindAuthorization,
	VaultAdminInvalid:                        KindAuthorization,
	VaultCapacityAdminInvalid:                KindAuthorization,
	VaultMintBurnAdminInvalid:                KindAuthorization,
	VaultDelegationAdminInvalid:              KindAuthorization,
	VaultDelegateAssetAdminInvalid:           KindAuthorization,
	VaultSlasherAdminInvalid:                 KindAuthorization,
	VaultNcnAdminInvalid:                     KindAuthorization,
	VaultFeeAdminInvalid:                     KindAuthorization,
	ConfigAdminInvalid:                       KindAuthorization,
	ConfigFeeAdminInvalid:                    KindAuthorization,
	NcnOperatorAdminInvalid:                  KindAuthorization,
	NcnSlasherAdminInvalid:                   KindAuthorization,
	NcnVaultAdminInvalid:                     KindAuthorization,
	NcnAdminInvalid:                          KindAuthorization,
	NcnWithdrawAdminInvalid:                  KindAuthorization,
	OperatorNcnAdminInvalid:                  KindAuthorization,
	OperatorVaultAdminInvalid:                KindAuthorization,
	OperatorAdminInvalid:                     KindAuthorization,
	OperatorWithdrawAdminInvalid:             KindAuthorization,
	VaultStakerWithdrawalTicketInvalidStaker: KindAuthorization,
	MissingRequiredSignature:                 KindAuthorization,
	TokenAuthorityInvalid:                    KindAuthorization,
	TokenDelegateInvalid:                     KindAuthorization,

	VaultNcnSlasherTicketFailedCooldown:        KindNotReady,
	VaultNcnSlasherTicketFailedWarmup:          KindNotReady,
	VaultNcnTicketFailedCooldown:               KindNotReady,
	VaultNcnTicketFailedWarmup:                 KindNotReady,
	NcnCooldownOperatorFailed:                  KindNotReady,
	NcnVaultSlasherTicketFailedCooldown:        KindNotReady,
	NcnVaultTicketFailedCooldown:               KindNotReady,
	NcnWarmupOperatorFailed:                    KindNotReady,
	NcnVaultSlasherTicketFailedWarmup:          KindNotReady,
	NcnVaultTicketFailedWarmup:                 KindNotReady,
	NcnVaultTicketNotActive:                    KindNotReady,
	OperatorCooldownNcnFailed:                  KindNotReady,
	OperatorVaultTicketFailedCooldown:          KindNotReady,
	OperatorVaultTicketFailedWarmup:            KindNotReady,
	OperatorNcnTicketNotActive:                 KindNotReady,
	OperatorWarmupNcnFailed:                    KindNotReady,
	VaultNcnSlasherTicketNotActive:             KindNotReady,
	OperatorVaultTicketNotActive:               KindNotReady,
	NcnVaultSlasherTicketNotActive:             KindNotReady,
	VaultStakerWithdrawalTicketNotWithdrawable: KindNotReady,

	VaultNcnTicketUnslashable:        KindRevoked,
	OperatorVaultTicketUnslashable:   KindRevoked,
	NcnOperatorStateUnslashable:      KindRevoked,
	VaultNcnSlasherTicketUnslashable: KindRevoked,
	NcnVaultTicketUnslashable:        KindRevoked,
	NcnVaultSlasherTicketUnslashable: KindRevoked,

	VaultSlashUnderflow:    KindArithmetic,
	VaultOverflow:          KindArithmetic,
	VaultUnderflow:         KindArithmetic,
	VaultSecurityOverflow:  KindArithmetic,
	VaultSecurityUnderflow: KindArithmetic,
	SlasherOverflow:        KindArithmetic,
	NcnOverflow:            KindArithmetic,
	OperatorOverflow:       KindArithmetic,
	ArithmeticOverflow:     KindArithmetic,
	ArithmeticUnderflow:    KindArithmetic,
	DivisionByZero:         KindArithmetic,

	VaultCapacityExceeded:              KindCapacity,
	VaultMaxSlashedPerOperatorExceeded: KindCapacity,
	VaultFeeCapExceeded:                KindCapacity,
	OperatorFeeCapExceeded:             KindCapacity,
	VaultFeeBumpTooLarge:               KindCapacity,
	VaultFeeChangeTooSoon:              KindCapacity,
	VaultRewardFeeDeltaTooLarge:        KindCapacity,
	VaultInsufficientFunds:             KindCapacity,
	TokenInsufficientFunds:             KindCapacity,
	VaultSlashIncomplete:               KindCapacity,

	VaultUpdateNeeded:                                       KindStaleness,
	VaultIsUpdated:                                          KindStaleness,
	VaultUpdateIncorrectIndex:                               KindStaleness,
	VaultUpdateStateNotFinishedUpdating:                     KindStaleness,
	VaultOperatorDelegationUpdateNeeded:                     KindStaleness,
	VaultOperatorDelegationIsUpdated:                        KindStaleness,
	NonZeroAdditionalAssetsNeededForWithdrawalAtEndOfUpdate: KindStaleness,

	VaultDelegationZero:              KindZeroAmount,
	VaultCooldownZero:                KindZeroAmount,
	VaultBurnZero:                    KindZeroAmount,
	VaultEnqueueWithdrawalAmountZero: KindZeroAmount,
	VaultMintZero:                    KindZeroAmount,
	VrtOutCannotBeZero:               KindZeroAmount,
	VaultRewardFeeIsZero:             KindZeroAmount,

	SlippageError: KindSlippage,
}

// Kind returns the failure category of c.
func (c Code) Kind() Kind {
	return kinds[c]
}
