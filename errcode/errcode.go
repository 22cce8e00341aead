// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package errcode defines the numeric failure codes surfaced by the restaking
// programs. A Code is a plain error value, so handlers return it directly or
// wrap it with github.com/pkg/errors for context.
package errcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is a protocol error code.
type Code uint32

// vault program
const (
	VaultSlashUnderflow Code = iota + 1000
	VaultInitialAmountFailed
	VaultInsufficientFunds
	VaultOverflow
	VaultOperatorAdminInvalid
	VaultAdminInvalid
	VaultCapacityAdminInvalid
	VaultMintBurnAdminInvalid
	VaultDelegationAdminInvalid
	VaultDelegateAssetAdminInvalid
	VaultCapacityExceeded
	VaultSlasherAdminInvalid
	VaultNcnAdminInvalid
	VaultFeeAdminInvalid
	ConfigAdminInvalid
	ConfigFeeAdminInvalid
	VaultFeeCapExceeded
	VaultFeeChangeTooSoon
	VaultFeeBumpTooLarge
	VaultUnderflow
	VaultUpdateNeeded
	VaultIsUpdated
	VaultOperatorDelegationUpdateNeeded
	VaultOperatorDelegationIsUpdated
	VaultUpdateIncorrectIndex
	VaultUpdateStateNotFinishedUpdating
	VaultSecurityOverflow
	VaultSlashIncomplete
	VaultSecurityUnderflow
	SlippageError
	VaultStakerWithdrawalTicketNotWithdrawable
	VaultNcnSlasherTicketFailedCooldown
	VaultNcnSlasherTicketFailedWarmup
	VaultNcnTicketFailedCooldown
	VaultNcnTicketFailedWarmup
	VaultNcnTicketUnslashable
	OperatorVaultTicketUnslashable
	NcnOperatorStateUnslashable
	VaultNcnSlasherTicketUnslashable
	NcnVaultTicketUnslashable
	NcnVaultSlasherTicketUnslashable
	VaultMaxSlashedPerOperatorExceeded
	VaultStakerWithdrawalTicketInvalidStaker
	SlasherOverflow
	NcnOverflow
	OperatorOverflow
	VaultDelegationZero
	VaultCooldownZero
	VaultBurnZero
	VaultEnqueueWithdrawalAmountZero
	VaultMintZero
	VaultIsPaused
	InvalidDepositor
	InvalidDepositTokenAccount
	NoSupportedMintBalanceChange
	InvalidEpochLength
	VaultRewardFeeDeltaTooLarge
	VaultRewardFeeIsZero
	VrtOutCannotBeZero
	NonZeroAdditionalAssetsNeededForWithdrawalAtEndOfUpdate
)

// restaking program, ncn side
const (
	NcnOperatorAdminInvalid Code = iota + 2000
	NcnCooldownOperatorFailed
	NcnSlasherAdminInvalid
	NcnVaultAdminInvalid
	NcnAdminInvalid
	NcnWithdrawAdminInvalid
	NcnVaultSlasherTicketFailedCooldown
	NcnVaultTicketFailedCooldown
	NcnWarmupOperatorFailed
	NcnVaultSlasherTicketFailedWarmup
	NcnVaultTicketFailedWarmup
	NcnVaultTicketNotActive
)

// restaking program, operator side
const (
	OperatorNcnAdminInvalid Code = iota + 2100
	OperatorVaultAdminInvalid
	OperatorAdminInvalid
	OperatorWithdrawAdminInvalid
	OperatorCooldownNcnFailed
	OperatorVaultTicketFailedCooldown
	OperatorVaultTicketFailedWarmup
	OperatorNcnTicketNotActive
	OperatorWarmupNcnFailed
	OperatorFeeCapExceeded
)

// checked math
const (
	ArithmeticOverflow Code = iota + 3000
	ArithmeticUnderflow
	DivisionByZero
)

// runtime, shared by every program
const (
	AccountAlreadyInitialized Code = iota + 4000
	AccountNotFound
	InvalidAccountData
	InvalidInstructionData
	MissingRequiredSignature
	InvalidArgument
	TokenInsufficientFunds
	TokenMintNotFound
	TokenAuthorityInvalid
	VaultNcnSlasherTicketNotActive
	OperatorVaultTicketNotActive
	NcnVaultSlasherTicketNotActive
	TokenDelegateInvalid
)

var names = map[Code]string{
	VaultSlashUnderflow:                                     "VaultSlashUnderflow",
	VaultInitialAmountFailed:                                "VaultInitialAmountFailed",
	VaultInsufficientFunds:                                  "VaultInsufficientFunds",
	VaultOverflow:                                           "VaultOverflow",
	VaultOperatorAdminInvalid:                               "VaultOperatorAdminInvalid",
	VaultAdminInvalid:                                       "VaultAdminInvalid",
	VaultCapacityAdminInvalid:                               "VaultCapacityAdminInvalid",
	VaultMintBurnAdminInvalid:                               "VaultMintBurnAdminInvalid",
	VaultDelegationAdminInvalid:                             "VaultDelegationAdminInvalid",
	VaultDelegateAssetAdminInvalid:                          "VaultDelegateAssetAdminInvalid",
	VaultCapacityExceeded:                                   "VaultCapacityExceeded",
	VaultSlasherAdminInvalid:                                "VaultSlasherAdminInvalid",
	VaultNcnAdminInvalid:                                    "VaultNcnAdminInvalid",
	VaultFeeAdminInvalid:                                    "VaultFeeAdminInvalid",
	ConfigAdminInvalid:                                      "ConfigAdminInvalid",
	ConfigFeeAdminInvalid:                                   "ConfigFeeAdminInvalid",
	VaultFeeCapExceeded:                                     "VaultFeeCapExceeded",
	VaultFeeChangeTooSoon:                                   "VaultFeeChangeTooSoon",
	VaultFeeBumpTooLarge:                                    "VaultFeeBumpTooLarge",
	VaultUnderflow:                                          "VaultUnderflow",
	VaultUpdateNeeded:                                       "VaultUpdateNeeded",
	VaultIsUpdated:                                          "VaultIsUpdated",
	VaultOperatorDelegationUpdateNeeded:                     "VaultOperatorDelegationUpdateNeeded",
	VaultOperatorDelegationIsUpdated:                        "VaultOperatorDelegationIsUpdated",
	VaultUpdateIncorrectIndex:                               "VaultUpdateIncorrectIndex",
	VaultUpdateStateNotFinishedUpdating:                     "VaultUpdateStateNotFinishedUpdating",
	VaultSecurityOverflow:                                   "VaultSecurityOverflow",
	VaultSlashIncomplete:                                    "VaultSlashIncomplete",
	VaultSecurityUnderflow:                                  "VaultSecurityUnderflow",
	SlippageError:                                           "SlippageError",
	VaultStakerWithdrawalTicketNotWithdrawable:              "VaultStakerWithdrawalTicketNotWithdrawable",
	VaultNcnSlasherTicketFailedCooldown:                     "VaultNcnSlasherTicketFailedCooldown",
	VaultNcnSlasherTicketFailedWarmup:                       "VaultNcnSlasherTicketFailedWarmup",
	VaultNcnTicketFailedCooldown:                            "VaultNcnTicketFailedCooldown",
	VaultNcnTicketFailedWarmup:                              "VaultNcnTicketFailedWarmup",
	VaultNcnTicketUnslashable:                               "VaultNcnTicketUnslashable",
	OperatorVaultTicketUnslashable:                          "OperatorVaultTicketUnslashable",
	NcnOperatorStateUnslashable:                             "NcnOperatorStateUnslashable",
	VaultNcnSlasherTicketUnslashable:                        "VaultNcnSlasherTicketUnslashable",
	NcnVaultTicketUnslashable:                               "NcnVaultTicketUnslashable",
	NcnVaultSlasherTicketUnslashable:                        "NcnVaultSlasherTicketUnslashable",
	VaultMaxSlashedPerOperatorExceeded:                      "VaultMaxSlashedPerOperatorExceeded",
	VaultStakerWithdrawalTicketInvalidStaker:                "VaultStakerWithdrawalTicketInvalidStaker",
	SlasherOverflow:                                         "SlasherOverflow",
	NcnOverflow:                                             "NcnOverflow",
	OperatorOverflow:                                        "OperatorOverflow",
	VaultDelegationZero:                                     "VaultDelegationZero",
	VaultCooldownZero:                                       "VaultCooldownZero",
	VaultBurnZero:                                           "VaultBurnZero",
	VaultEnqueueWithdrawalAmountZero:                        "VaultEnqueueWithdrawalAmountZero",
	VaultMintZero:                                           "VaultMintZero",
	VaultIsPaused:                                           "VaultIsPaused",
	InvalidDepositor:                                        "InvalidDepositor",
	InvalidDepositTokenAccount:                              "InvalidDepositTokenAccount",
	NoSupportedMintBalanceChange:                            "NoSupportedMintBalanceChange",
	InvalidEpochLength:                                      "InvalidEpochLength",
	VaultRewardFeeDeltaTooLarge:                             "VaultRewardFeeDeltaTooLarge",
	VaultRewardFeeIsZero:                                    "VaultRewardFeeIsZero",
	VrtOutCannotBeZero:                                      "VrtOutCannotBeZero",
	NonZeroAdditionalAssetsNeededForWithdrawalAtEndOfUpdate: "NonZeroAdditionalAssetsNeededForWithdrawalAtEndOfUpdate",

	NcnOperatorAdminInvalid:             "NcnOperatorAdminInvalid",
	NcnCooldownOperatorFailed:           "NcnCooldownOperatorFailed",
	NcnSlasherAdminInvalid:              "NcnSlasherAdminInvalid",
	NcnVaultAdminInvalid:                "NcnVaultAdminInvalid",
	NcnAdminInvalid:                     "NcnAdminInvalid",
	NcnWithdrawAdminInvalid:             "NcnWithdrawAdminInvalid",
	NcnVaultSlasherTicketFailedCooldown: "NcnVaultSlasherTicketFailedCooldown",
	NcnVaultTicketFailedCooldown:        "NcnVaultTicketFailedCooldown",
	NcnWarmupOperatorFailed:             "NcnWarmupOperatorFailed",
	NcnVaultSlasherTicketFailedWarmup:   "NcnVaultSlasherTicketFailedWarmup",
	NcnVaultTicketFailedWarmup:          "NcnVaultTicketFailedWarmup",
	NcnVaultTicketNotActive:             "NcnVaultTicketNotActive",

	OperatorNcnAdminInvalid:           "OperatorNcnAdminInvalid",
	OperatorVaultAdminInvalid:         "OperatorVaultAdminInvalid",
	OperatorAdminInvalid:              "OperatorAdminInvalid",
	OperatorWithdrawAdminInvalid:      "OperatorWithdrawAdminInvalid",
	OperatorCooldownNcnFailed:         "OperatorCooldownNcnFailed",
	OperatorVaultTicketFailedCooldown: "OperatorVaultTicketFailedCooldown",
	OperatorVaultTicketFailedWarmup:   "OperatorVaultTicketFailedWarmup",
	OperatorNcnTicketNotActive:        "OperatorNcnTicketNotActive",
	OperatorWarmupNcnFailed:           "OperatorWarmupNcnFailed",
	OperatorFeeCapExceeded:            "OperatorFeeCapExceeded",

	ArithmeticOverflow:  "ArithmeticOverflow",
	ArithmeticUnderflow: "ArithmeticUnderflow",
	DivisionByZero:      "DivisionByZero",

	AccountAlreadyInitialized:      "AccountAlreadyInitialized",
	AccountNotFound:                "AccountNotFound",
	InvalidAccountData:             "InvalidAccountData",
	InvalidInstructionData:         "InvalidInstructionData",
	MissingRequiredSignature:       "MissingRequiredSignature",
	InvalidArgument:                "InvalidArgument",
	TokenInsufficientFunds:         "TokenInsufficientFunds",
	TokenMintNotFound:              "TokenMintNotFound",
	TokenAuthorityInvalid:          "TokenAuthorityInvalid",
	TokenDelegateInvalid:           "TokenDelegateInvalid",
	VaultNcnSlasherTicketNotActive: "VaultNcnSlasherTicketNotActive",
	OperatorVaultTicketNotActive:   "OperatorVaultTicketNotActive",
	NcnVaultSlasherTicketNotActive: "NcnVaultSlasherTicketNotActive",
}

// Error implements error. The message is the code's name.
func (c Code) Error() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Custom(%d)", uint32(c))
}

// Name returns the symbolic name, or an empty string for an unknown code.
func (c Code) Name() string {
	return names[c]
}

// Known reports whether c is a defined code.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// From extracts the code carried by err, looking through any wrapping.
func From(err error) (Code, bool) {
	var c Code
	if errors.As(err, &c) {
		return c, true
	}
	return 0, false
}

// Is reports whether err carries the code c.
func Is(err error, c Code) bool {
	got, ok := From(err)
	return ok && got == c
}
