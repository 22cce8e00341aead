// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/vechain/restake/kv"
	"github.com/vechain/restake/restake"
)

// Entry is the journal record of one executed instruction.
type Entry struct {
	Slot        uint64
	Instruction []byte
	Signers     []restake.Pubkey
	// Code is the failure code, zero on success.
	Code    uint32
	Touched []restake.Pubkey
}

func (e *Entry) encode() ([]byte, error) {
	data, err := rlp.EncodeToBytes(e)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func decodeEntry(raw []byte) (*Entry, error) {
	data, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := rlp.DecodeBytes(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// SeqEntry is a journal entry with its sequence number.
type SeqEntry struct {
	Seq uint64
	*Entry
}

// Journal returns up to limit entries starting at sequence from.
func (l *Ledger) Journal(from uint64, limit int) ([]SeqEntry, error) {
	if from == 0 {
		from = 1
	}
	it := l.journal.Iterate(kv.Range{Start: seqKey(from)})
	defer it.Release()

	var out []SeqEntry
	for (limit <= 0 || len(out) < limit) && it.Next() {
		e, err := decodeEntry(it.Value())
		if err != nil {
			return nil, errors.Wrap(err, "decode journal entry")
		}
		out = append(out, SeqEntry{Seq: binary.BigEndian.Uint64(it.Key()), Entry: e})
	}
	return out, it.Error()
}
