// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
	"github.com/vechain/restake/withdrawal"
)

// Vault is a vault account plus the figures derived from it at the current slot.
type Vault struct {
	Address restake.Pubkey `json:"address"`
	*vault.Vault
	IdleAssets                uint64 `json:"idleAssets"`
	AssetsAvailableForStaking uint64 `json:"assetsAvailableForStaking"`
	UpdateNeeded              bool   `json:"updateNeeded"`
	// ExchangeRate is the assets one whole VRT (10^9 units) redeems for.
	ExchangeRate uint64 `json:"exchangeRate"`
}

type Delegation struct {
	Address restake.Pubkey `json:"address"`
	*delegation.VaultOperatorDelegation
	TotalSecurity uint64 `json:"totalSecurity"`
}

type WithdrawalTicket struct {
	Address restake.Pubkey `json:"address"`
	*withdrawal.Ticket
}

type Tracker struct {
	Address restake.Pubkey `json:"address"`
	*tracker.Tracker
	Method string `json:"method"`
}

const oneVrt = 1_000_000_000

func convertVault(addr restake.Pubkey, v *vault.Vault, slot, epochLength uint64) (*Vault, error) {
	idle, err := v.IdleAssets()
	if err != nil {
		return nil, err
	}
	available, err := v.AssetsAvailableForStaking()
	if err != nil {
		return nil, err
	}
	needed, err := v.IsUpdateNeeded(slot, epochLength)
	if err != nil {
		return nil, err
	}
	rate, err := v.AssetsForVrt(oneVrt)
	if err != nil {
		return nil, err
	}
	return &Vault{
		Address:                   addr,
		Vault:                     v,
		IdleAssets:                idle,
		AssetsAvailableForStaking: available,
		UpdateNeeded:              needed,
		ExchangeRate:              rate,
	}, nil
}

func convertDelegation(addr restake.Pubkey, d *delegation.VaultOperatorDelegation) (*Delegation, error) {
	total, err := d.State.TotalSecurity()
	if err != nil {
		return nil, err
	}
	return &Delegation{Address: addr, VaultOperatorDelegation: d, TotalSecurity: total}, nil
}
