// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger stores program accounts by address. Every instruction runs in
// a Tx that stages its writes and applies them, together with the journal
// entry describing the instruction, in a single atomic batch.
package ledger

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/restake/cache"
	"github.com/vechain/restake/kv"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/restake"
)

var logger = log.WithContext("pkg", "ledger")

const (
	accountsBucket = kv.Bucket("a")
	journalBucket  = kv.Bucket("j")
	metaBucket     = kv.Bucket("m")
)

var journalHeadKey = []byte("journal-head")

// Options for the ledger.
type Options struct {
	// CacheSize is the number of raw accounts kept in memory.
	CacheSize int
}

// Ledger is the durable account store.
type Ledger struct {
	store    kv.Store
	accounts kv.Store
	journal  kv.Store
	meta     kv.Store
	cache    *cache.LRU[restake.Pubkey, []byte]

	mu   sync.RWMutex
	head uint64
}

// New opens a ledger over store.
func New(store kv.Store, opts Options) (*Ledger, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 4096
	}
	c, err := cache.NewLRU[restake.Pubkey, []byte](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		store:    store,
		accounts: accountsBucket.NewStore(store),
		journal:  journalBucket.NewStore(store),
		meta:     metaBucket.NewStore(store),
		cache:    c,
	}
	raw, err := l.meta.Get(journalHeadKey)
	switch {
	case err == nil:
		l.head = binary.BigEndian.Uint64(raw)
	case l.meta.IsNotFound(err):
	default:
		return nil, errors.Wrap(err, "load journal head")
	}
	return l, nil
}

// Head returns the sequence number of the latest journal entry, 0 when empty.
func (l *Ledger) Head() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.head
}

// Get returns the committed data of the account at addr.
func (l *Ledger) Get(addr restake.Pubkey) ([]byte, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.get(addr)
}

func (l *Ledger) get(addr restake.Pubkey) ([]byte, bool, error) {
	if data, ok := l.cache.Get(addr); ok {
		return data, data != nil, nil
	}
	data, err := l.accounts.Get(addr[:])
	if err != nil {
		if l.accounts.IsNotFound(err) {
			l.cache.Add(addr, nil)
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "get account")
	}
	l.cache.Add(addr, data)
	return data, true, nil
}

// Scan calls fn for every committed account tagged with disc, in address order,
// until fn returns false.
func (l *Ledger) Scan(disc uint64, fn func(addr restake.Pubkey, data []byte) bool) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	it := l.accounts.Iterate(kv.Range{})
	defer it.Release()
	for it.Next() {
		data := it.Value()
		if d, ok := layout.PeekAccount(data); !ok || d != disc {
			continue
		}
		var addr restake.Pubkey
		copy(addr[:], it.Key())
		if !fn(addr, append([]byte(nil), data...)) {
			break
		}
	}
	return it.Error()
}

// CacheStats reports account cache hits and misses.
func (l *Ledger) CacheStats() *cache.Stats {
	return l.cache.Stats()
}

// NewTx starts a transaction reading through to committed state.
func (l *Ledger) NewTx() *Tx {
	return newTx(l)
}

func (l *Ledger) commit(tx *Tx, entry *Entry) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bulk := l.store.Bulk()
	accounts := accountsBucket.NewBulk(bulk)
	var err error
	tx.ascend(func(w *write) bool {
		if w.deleted {
			err = accounts.Delete(w.addr[:])
		} else {
			err = accounts.Put(w.addr[:], w.data)
		}
		return err == nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "stage accounts")
	}

	seq := l.head
	if entry != nil {
		seq++
		if err := l.putEntry(bulk, seq, entry); err != nil {
			return 0, err
		}
	}
	if err := bulk.Write(); err != nil {
		return 0, errors.Wrap(err, "write batch")
	}

	l.head = seq
	tx.ascend(func(w *write) bool {
		if w.deleted {
			l.cache.Add(w.addr, nil)
		} else {
			l.cache.Add(w.addr, w.data)
		}
		return true
	})
	logger.Trace("committed", "seq", seq, "writes", tx.Len())
	return seq, nil
}

func (l *Ledger) putEntry(bulk kv.Bulk, seq uint64, entry *Entry) error {
	data, err := entry.encode()
	if err != nil {
		return errors.Wrap(err, "encode journal entry")
	}
	if err := journalBucket.NewBulk(bulk).Put(seqKey(seq), data); err != nil {
		return errors.Wrap(err, "stage journal entry")
	}
	var head [8]byte
	binary.BigEndian.PutUint64(head[:], seq)
	return metaBucket.NewBulk(bulk).Put(journalHeadKey, head[:])
}

// Record appends a journal entry that changes no account, used for failed
// instructions.
func (l *Ledger) Record(entry *Entry) (uint64, error) {
	return l.commit(newTx(l), entry)
}

func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}
