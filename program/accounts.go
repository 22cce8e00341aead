// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/relation"
	"github.com/vechain/restake/slashing"
	"github.com/vechain/restake/token"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
	"github.com/vechain/restake/withdrawal"
)

var accountTypes = map[uint64]func() ledger.Record{
	layout.ConfigAccount:                        func() ledger.Record { return new(vault.Config) },
	layout.VaultAccount:                         func() ledger.Record { return new(vault.Vault) },
	layout.NcnAccount:                           func() ledger.Record { return new(relation.Ncn) },
	layout.OperatorAccount:                      func() ledger.Record { return new(relation.Operator) },
	layout.RelationTicketAccount:                func() ledger.Record { return new(relation.Ticket) },
	layout.VaultOperatorDelegationAccount:       func() ledger.Record { return new(delegation.VaultOperatorDelegation) },
	layout.VaultNcnSlasherOperatorTicketAccount: func() ledger.Record { return new(slashing.OperatorTicket) },
	layout.VaultStakerWithdrawalTicketAccount:   func() ledger.Record { return new(withdrawal.Ticket) },
	layout.VaultUpdateStateTrackerAccount:       func() ledger.Record { return new(tracker.Tracker) },
	layout.TokenMetadataAccount:                 func() ledger.Record { return new(token.Metadata) },
	layout.TokenMintAccount:                     func() ledger.Record { return new(token.Mint) },
	layout.TokenAccountAccount:                  func() ledger.Record { return new(token.Account) },
}

// DecodeAccount decodes raw account data by its discriminator.
func DecodeAccount(data []byte) (ledger.Record, error) {
	disc, ok := layout.PeekAccount(data)
	if !ok {
		return nil, errors.Wrap(errcode.InvalidAccountData, "no discriminator")
	}
	newRecord, ok := accountTypes[disc]
	if !ok {
		return nil, errors.Wrapf(errcode.InvalidAccountData, "unknown account type %d", disc)
	}
	rec := newRecord()
	if err := rec.Decode(data); err != nil {
		return nil, errors.Wrapf(errcode.InvalidAccountData, "%v: %v", layout.AccountName(disc), err)
	}
	return rec, nil
}
