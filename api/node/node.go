// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"

	"github.com/vechain/restake/api/utils"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/program"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/vault"
)

const maxJournalLimit = 1000

// Clock is the node's view of time.
type Clock struct {
	Slot                uint64 `json:"slot"`
	Epoch               uint64 `json:"epoch"`
	EpochLength         uint64 `json:"epochLength"`
	SlotsUntilNextEpoch uint64 `json:"slotsUntilNextEpoch"`
	JournalHead         uint64 `json:"journalHead"`
}

// JournalEntry is one journaled instruction.
type JournalEntry struct {
	Seq         uint64           `json:"seq"`
	Slot        uint64           `json:"slot"`
	Instruction hexutil.Bytes    `json:"instruction"`
	Signers     []restake.Pubkey `json:"signers"`
	Failed      bool             `json:"failed"`
	Code        uint32           `json:"code,omitempty"`
	Error       string           `json:"error,omitempty"`
	Touched     []restake.Pubkey `json:"touched"`
}

type Node struct {
	proc *program.Processor
}

func New(proc *program.Processor) *Node {
	return &Node{proc}
}

func (n *Node) handleGetClock(w http.ResponseWriter, _ *http.Request) error {
	l := n.proc.Ledger()
	cfg, err := ledger.Load[vault.Config](l, vault.ConfigAddress)
	if err != nil {
		return err
	}
	if cfg == nil {
		return errcode.AccountNotFound
	}
	slot := n.proc.Clock().Slot()
	epoch, err := restake.EpochOf(slot, cfg.EpochLength)
	if err != nil {
		return err
	}
	next, err := restake.SlotsUntilNextEpoch(slot, cfg.EpochLength)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Clock{
		Slot:                slot,
		Epoch:               epoch,
		EpochLength:         cfg.EpochLength,
		SlotsUntilNextEpoch: next,
		JournalHead:         l.Head(),
	})
}

func (n *Node) handleGetJournal(w http.ResponseWriter, req *http.Request) error {
	from, err := utils.Uint64Query(req, "from", 1)
	if err != nil {
		return err
	}
	limit, err := utils.Uint64Query(req, "limit", 100)
	if err != nil {
		return err
	}
	limit = min(limit, maxJournalLimit)

	entries, err := n.proc.Ledger().Journal(from, int(limit)) // #nosec G115
	if err != nil {
		return err
	}
	out := make([]*JournalEntry, 0, len(entries))
	for _, e := range entries {
		je := &JournalEntry{
			Seq:         e.Seq,
			Slot:        e.Slot,
			Instruction: e.Instruction,
			Signers:     e.Signers,
			Failed:      e.Code != 0,
			Code:        e.Code,
			Touched:     e.Touched,
		}
		if e.Code != 0 {
			je.Error = errcode.Code(e.Code).Error()
		}
		out = append(out, je)
	}
	return utils.WriteJSON(w, out)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/clock").
		Methods(http.MethodGet).
		Name("GET /node/clock").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetClock))
	sub.Path("/journal").
		Methods(http.MethodGet).
		Name("GET /node/journal").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetJournal))
}
