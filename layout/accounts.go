// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package layout

// account discriminators
const (
	ConfigAccount uint64 = iota + 1
	VaultAccount
	NcnAccount
	OperatorAccount
	RelationTicketAccount
	VaultOperatorDelegationAccount
	VaultNcnSlasherOperatorTicketAccount
	VaultStakerWithdrawalTicketAccount
	VaultUpdateStateTrackerAccount
	TokenMetadataAccount
	TokenMintAccount
	TokenAccountAccount
)

var accountNames = map[uint64]string{
	ConfigAccount:                        "Config",
	VaultAccount:                         "Vault",
	NcnAccount:                           "Ncn",
	OperatorAccount:                      "Operator",
	RelationTicketAccount:                "RelationTicket",
	VaultOperatorDelegationAccount:       "VaultOperatorDelegation",
	VaultNcnSlasherOperatorTicketAccount: "VaultNcnSlasherOperatorTicket",
	VaultStakerWithdrawalTicketAccount:   "VaultStakerWithdrawalTicket",
	VaultUpdateStateTrackerAccount:       "VaultUpdateStateTracker",
	TokenMetadataAccount:                 "TokenMetadata",
	TokenMintAccount:                     "TokenMint",
	TokenAccountAccount:                  "TokenAccount",
}

// AccountName returns the name of the account type tagged by disc.
func AccountName(disc uint64) string {
	if n, ok := accountNames[disc]; ok {
		return n
	}
	return "Unknown"
}
