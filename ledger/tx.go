// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"

	"github.com/google/btree"

	"github.com/vechain/restake/restake"
)

type write struct {
	addr    restake.Pubkey
	data    []byte
	deleted bool
}

func lessWrite(a, b *write) bool {
	return bytes.Compare(a.addr[:], b.addr[:]) < 0
}

// Tx stages account writes in address order. A Tx is not safe for concurrent use.
type Tx struct {
	l      *Ledger
	writes *btree.BTreeG[*write]
	done   bool
}

func newTx(l *Ledger) *Tx {
	return &Tx{
		l:      l,
		writes: btree.NewG(16, lessWrite),
	}
}

// Get returns the account data as seen by this transaction.
func (tx *Tx) Get(addr restake.Pubkey) ([]byte, bool, error) {
	if w, ok := tx.writes.Get(&write{addr: addr}); ok {
		if w.deleted {
			return nil, false, nil
		}
		return w.data, true, nil
	}
	return tx.l.Get(addr)
}

// Put stages the account data.
func (tx *Tx) Put(addr restake.Pubkey, data []byte) {
	tx.writes.ReplaceOrInsert(&write{addr: addr, data: data})
}

// Delete stages the removal of the account.
func (tx *Tx) Delete(addr restake.Pubkey) {
	tx.writes.ReplaceOrInsert(&write{addr: addr, deleted: true})
}

// Len returns the number of staged writes.
func (tx *Tx) Len() int {
	return tx.writes.Len()
}

// Touched returns the staged addresses in order.
func (tx *Tx) Touched() []restake.Pubkey {
	out := make([]restake.Pubkey, 0, tx.writes.Len())
	tx.ascend(func(w *write) bool {
		out = append(out, w.addr)
		return true
	})
	return out
}

func (tx *Tx) ascend(fn func(w *write) bool) {
	tx.writes.Ascend(func(w *write) bool { return fn(w) })
}

// Commit applies the staged writes and the journal entry atomically and returns
// the journal sequence. A nil entry commits the writes without journaling.
func (tx *Tx) Commit(entry *Entry) (uint64, error) {
	if tx.done {
		panic("ledger: tx already finished")
	}
	tx.done = true
	if entry != nil {
		entry.Touched = tx.Touched()
	}
	return tx.l.commit(tx, entry)
}

// Discard drops every staged write.
func (tx *Tx) Discard() {
	tx.done = true
	tx.writes.Clear(false)
}
