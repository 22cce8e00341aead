// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import "github.com/vechain/restake/restake"

// Event is an indexed outcome of an executed instruction.
type Event struct {
	// Seq is the journal sequence of the instruction that emitted it.
	Seq   uint64 `json:"seq"`
	Index uint32 `json:"index"`
	Slot  uint64 `json:"slot"`
	Name  string `json:"name"`
	// Subject is the account the event is about, usually a vault.
	Subject restake.Pubkey `json:"subject"`
	Actor   restake.Pubkey `json:"actor"`
	Amount  uint64         `json:"amount"`
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Slot RangeType = "slot"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events. Unset fields match everything.
type Filter struct {
	Range   *Range          `json:"range"`
	Subject *restake.Pubkey `json:"subject"`
	Actor   *restake.Pubkey `json:"actor"`
	Names   []string        `json:"names"`
	Order   Order           `json:"order"`
	Options *Options        `json:"options"`
}
