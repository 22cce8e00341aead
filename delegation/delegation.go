// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

const recordSize = layout.DiscriminatorLen + 32 + 32 + StateSize + 8 + 8 + 263

// Address returns the account address of the vault/operator delegation.
func Address(vault, operator restake.Pubkey) restake.Pubkey {
	return restake.DeriveAddress([]byte("vault_operator_delegation"), vault[:], operator[:])
}

// VaultOperatorDelegation is the account holding one vault's delegation to
// one operator.
type VaultOperatorDelegation struct {
	Vault          restake.Pubkey
	Operator       restake.Pubkey
	State          State
	LastUpdateSlot uint64
	// Index is the position among the vault's operators, used as the crank cursor.
	Index uint64
}

// NewVaultOperatorDelegation creates a delegation already up to date at slot.
func NewVaultOperatorDelegation(vault, operator restake.Pubkey, index, slot uint64) *VaultOperatorDelegation {
	return &VaultOperatorDelegation{
		Vault:          vault,
		Operator:       operator,
		LastUpdateSlot: slot,
		Index:          index,
	}
}

func (d *VaultOperatorDelegation) Discriminator() uint64 {
	return layout.VaultOperatorDelegationAccount
}

func (d *VaultOperatorDelegation) Encode() []byte {
	e := layout.NewEncoder(recordSize).
		Account(d.Discriminator()).
		Pubkey(d.Vault).
		Pubkey(d.Operator)
	d.State.Encode(e)
	return e.U64(d.LastUpdateSlot).U64(d.Index).Reserved(263).Bytes()
}

func (d *VaultOperatorDelegation) Decode(data []byte) error {
	dec := layout.NewDecoder(data)
	dec.Account(d.Discriminator())
	d.Vault = dec.Pubkey()
	d.Operator = dec.Pubkey()
	d.State.Decode(dec)
	d.LastUpdateSlot = dec.U64()
	d.Index = dec.U64()
	dec.Reserved(263)
	return dec.Finish()
}

// IsUpdateNeeded reports whether the delegation has not been reconciled in
// the epoch of slot.
func (d *VaultOperatorDelegation) IsUpdateNeeded(slot, epochLength uint64) (bool, error) {
	last, err := restake.EpochOf(d.LastUpdateSlot, epochLength)
	if err != nil {
		return false, err
	}
	current, err := restake.EpochOf(slot, epochLength)
	if err != nil {
		return false, err
	}
	return last < current, nil
}

// CheckIsUpdated fails when the delegation still needs this epoch's update.
func (d *VaultOperatorDelegation) CheckIsUpdated(slot, epochLength uint64) error {
	needed, err := d.IsUpdateNeeded(slot, epochLength)
	if err != nil {
		return err
	}
	if needed {
		return errcode.VaultOperatorDelegationUpdateNeeded
	}
	return nil
}

// Update reconciles the delegation up to the epoch of slot and returns the
// amount released from cooldown. Two or more elapsed epochs release
// everything in the pipeline.
func (d *VaultOperatorDelegation) Update(slot, epochLength uint64) (uint64, error) {
	last, err := restake.EpochOf(d.LastUpdateSlot, epochLength)
	if err != nil {
		return 0, err
	}
	current, err := restake.EpochOf(slot, epochLength)
	if err != nil {
		return 0, err
	}
	if current <= last {
		return 0, errcode.VaultOperatorDelegationIsUpdated
	}

	released := d.State.Update()
	if current-last >= 2 {
		released += d.State.Update()
	}
	d.LastUpdateSlot = slot
	return released, nil
}
