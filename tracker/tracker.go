// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tracker implements the per-epoch vault update. An update is opened
// once per epoch, cranked over every operator delegation in index order and
// closed, which marks the vault as up to date.
package tracker

import (
	"encoding/binary"
	"math"

	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/vault"
)

// NotCranked is the LastUpdatedIndex of a tracker no delegation was cranked into.
const NotCranked = math.MaxUint64

const trackerSize = layout.DiscriminatorLen + 32 + 8*5 + delegation.StateSize + 1 + 263

// Method selects how the assets to unstake are spread over operators.
type Method uint8

const (
	// Greedy unstakes as much as possible from each delegation in crank order.
	Greedy Method = iota
	// ProRata unstakes from each delegation in proportion to its stake.
	ProRata
)

func (m Method) String() string {
	switch m {
	case Greedy:
		return "greedy"
	case ProRata:
		return "pro-rata"
	}
	return "unknown"
}

// Phase is where a tracker stands. A tracker that does not exist is either
// not yet opened or already closed.
type Phase uint8

const (
	Initialized Phase = iota
	InProgress
	Completed
)

func (p Phase) String() string {
	switch p {
	case Initialized:
		return "initialized"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Address returns the tracker address of vault for epoch.
func Address(vault restake.Pubkey, epoch uint64) restake.Pubkey {
	var e [8]byte
	binary.LittleEndian.PutUint64(e[:], epoch)
	return restake.DeriveAddress([]byte("vault_update_state_tracker"), vault[:], e[:])
}

// Tracker is the state of one epoch's vault update.
type Tracker struct {
	Vault            restake.Pubkey
	NcnEpoch         uint64
	LastUpdatedIndex uint64

	// AdditionalAssetsNeedUnstaking is what remains to be unstaked.
	AdditionalAssetsNeedUnstaking uint64
	// InitialAssetsNeedUnstaking and VaultStaked are fixed when the tracker is
	// opened and drive pro-rata shares.
	InitialAssetsNeedUnstaking uint64
	VaultStaked                uint64

	// DelegationState sums the cranked delegations.
	DelegationState            delegation.State
	WithdrawalAllocationMethod Method
}

func (t *Tracker) Address() restake.Pubkey {
	return Address(t.Vault, t.NcnEpoch)
}

func (t *Tracker) Discriminator() uint64 { return layout.VaultUpdateStateTrackerAccount }

func (t *Tracker) Encode() []byte {
	e := layout.NewEncoder(trackerSize).
		Account(t.Discriminator()).
		Pubkey(t.Vault).
		U64(t.NcnEpoch).
		U64(t.LastUpdatedIndex).
		U64(t.AdditionalAssetsNeedUnstaking).
		U64(t.InitialAssetsNeedUnstaking).
		U64(t.VaultStaked)
	t.DelegationState.Encode(e)
	return e.U8(uint8(t.WithdrawalAllocationMethod)).Reserved(263).Bytes()
}

func (t *Tracker) Decode(data []byte) error {
	d := layout.NewDecoder(data)
	d.Account(t.Discriminator())
	t.Vault = d.Pubkey()
	t.NcnEpoch = d.U64()
	t.LastUpdatedIndex = d.U64()
	t.AdditionalAssetsNeedUnstaking = d.U64()
	t.InitialAssetsNeedUnstaking = d.U64()
	t.VaultStaked = d.U64()
	t.DelegationState.Decode(d)
	t.WithdrawalAllocationMethod = Method(d.U8())
	d.Reserved(263)
	return d.Finish()
}

// Begin opens the update of v for the epoch of slot. It advances the vault's
// withdrawal pipeline and works out how much stake must be unstaked to pay
// it.
func Begin(vaultAddr restake.Pubkey, v *vault.Vault, method Method, slot, epochLength uint64) (*Tracker, error) {
	if method != Greedy && method != ProRata {
		return nil, errcode.InvalidArgument
	}
	needed, err := v.IsUpdateNeeded(slot, epochLength)
	if err != nil {
		return nil, err
	}
	if !needed {
		return nil, errcode.VaultIsUpdated
	}
	if err := v.AdvanceWithdrawals(slot, epochLength); err != nil {
		return nil, err
	}
	additional, err := v.AssetsNeedingUnstake()
	if err != nil {
		return nil, err
	}
	epoch, _ := restake.EpochOf(slot, epochLength)
	return &Tracker{
		Vault:                         vaultAddr,
		NcnEpoch:                      epoch,
		LastUpdatedIndex:              NotCranked,
		AdditionalAssetsNeedUnstaking: additional,
		InitialAssetsNeedUnstaking:    additional,
		VaultStaked:                   v.DelegationState.Staked,
		WithdrawalAllocationMethod:    method,
	}, nil
}

// Phase returns the progress given the vault's operator count.
func (t *Tracker) Phase(operatorCount uint64) Phase {
	switch {
	case operatorCount == 0:
		return Completed
	case t.LastUpdatedIndex == NotCranked:
		return Initialized
	case t.LastUpdatedIndex+1 >= operatorCount:
		return Completed
	}
	return InProgress
}

// CheckAndUpdateIndex accepts index only if it is the next one to crank.
func (t *Tracker) CheckAndUpdateIndex(index, operatorCount uint64) error {
	want := uint64(0)
	if t.LastUpdatedIndex != NotCranked {
		want = t.LastUpdatedIndex + 1
	}
	if index != want || index >= operatorCount {
		return errcode.VaultUpdateIncorrectIndex
	}
	t.LastUpdatedIndex = index
	return nil
}

// CheckAllUpdated fails until every delegation has been cranked.
func (t *Tracker) CheckAllUpdated(operatorCount uint64) error {
	if t.Phase(operatorCount) != Completed {
		return errcode.VaultUpdateStateNotFinishedUpdating
	}
	return nil
}

// Allocate returns how much to unstake from a delegation with staked, and
// deducts it from what remains.
func (t *Tracker) Allocate(staked uint64) (uint64, error) {
	amount := min(t.AdditionalAssetsNeedUnstaking, staked)
	if t.WithdrawalAllocationMethod == ProRata {
		if t.VaultStaked == 0 {
			return 0, nil
		}
		share, err := restake.MulDivCeil(t.InitialAssetsNeedUnstaking, staked, t.VaultStaked)
		if err != nil {
			return 0, err
		}
		amount = min(amount, share)
	}
	t.AdditionalAssetsNeedUnstaking -= amount
	return amount, nil
}

// Crank reconciles one delegation for this epoch, cools down its share of the
// withdrawal demand and adds it to the running total. It returns the amount
// released from cooldown and the amount it unstaked.
func (t *Tracker) Crank(d *delegation.VaultOperatorDelegation, operatorCount, slot, epochLength uint64) (released, unstaked uint64, err error) {
	if d.Vault != t.Vault {
		return 0, 0, errcode.InvalidArgument
	}
	if err := t.CheckAndUpdateIndex(d.Index, operatorCount); err != nil {
		return 0, 0, err
	}
	released, err = d.Update(slot, epochLength)
	if err != nil && !errcode.Is(err, errcode.VaultOperatorDelegationIsUpdated) {
		return 0, 0, err
	}
	unstaked, err = t.Allocate(d.State.Staked)
	if err != nil {
		return 0, 0, err
	}
	if unstaked > 0 {
		if err := d.State.Cooldown(unstaked); err != nil {
			return 0, 0, err
		}
	}
	if err := t.DelegationState.Accumulate(&d.State); err != nil {
		return 0, 0, err
	}
	return released, unstaked, nil
}

// Unstaked mirrors a crank's unstake in the vault totals, so demand already
// allocated stays covered even if this update is never closed.
func Unstaked(v *vault.Vault, amount uint64) error {
	if amount == 0 {
		return nil
	}
	return v.Cooldown(amount)
}

// Finish writes the update's result into v and marks it updated at slot.
// Demand that could not be allocated carries over to the next update.
func (t *Tracker) Finish(v *vault.Vault, operatorCount, slot uint64) error {
	if err := t.CheckAllUpdated(operatorCount); err != nil {
		return err
	}
	v.DelegationState = t.DelegationState
	v.AdditionalAssetsNeedUnstaking = t.AdditionalAssetsNeedUnstaking
	v.LastFullStateUpdateSlot = slot
	return nil
}
