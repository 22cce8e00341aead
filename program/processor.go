// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program executes instructions against the ledger. Each instruction
// runs in its own ledger transaction and either commits entirely or leaves
// no trace but a journal entry recording its failure.
package program

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/restake/clock"
	"github.com/vechain/restake/co"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/eventdb"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/vault"
)

var logger = log.WithContext("pkg", "program")

// Receipt describes a committed instruction.
type Receipt struct {
	Seq      uint64           `json:"seq"`
	Slot     uint64           `json:"slot"`
	Kind     string           `json:"kind"`
	Events   []*eventdb.Event `json:"events"`
	Warnings []string         `json:"warnings,omitempty"`
	Touched  []restake.Pubkey `json:"touched"`
}

// Processor is the sequential state machine of the programs.
type Processor struct {
	ledger *ledger.Ledger
	clock  clock.Clock
	events *eventdb.EventDB

	mu        sync.Mutex
	lastEpoch uint64
	epochs    co.Signal

	receiptFeed event.Feed
	scope       event.SubscriptionScope
	goes        co.Goes
	done        chan struct{}
	closeOnce   sync.Once

	queueMu sync.Mutex
	queue   []*Receipt
	queued  chan struct{}
}

// New creates a processor. events may be nil to skip indexing.
func New(l *ledger.Ledger, c clock.Clock, events *eventdb.EventDB) *Processor {
	p := &Processor{
		ledger: l,
		clock:  c,
		events: events,
		done:   make(chan struct{}),
		queued: make(chan struct{}, 1),
	}
	p.goes.Go(p.deliverLoop)
	return p
}

func (p *Processor) Ledger() *ledger.Ledger { return p.ledger }

func (p *Processor) Clock() clock.Clock { return p.clock }

// Events returns the event index, or nil when indexing is off.
func (p *Processor) Events() *eventdb.EventDB { return p.events }

// SubscribeReceipts delivers the receipt of every committed instruction.
func (p *Processor) SubscribeReceipts(ch chan *Receipt) event.Subscription {
	return p.scope.Track(p.receiptFeed.Subscribe(ch))
}

// NewEpochWaiter returns a waiter signaled when an instruction first runs in
// a new epoch.
func (p *Processor) NewEpochWaiter() co.Waiter {
	return p.epochs.NewWaiter()
}

// Close stops delivering receipts.
func (p *Processor) Close() {
	p.closeOnce.Do(func() {
		p.scope.Close()
		close(p.done)
	})
	p.goes.Wait()
}

// enqueueReceipt hands r to the delivery loop without waiting on subscribers.
func (p *Processor) enqueueReceipt(r *Receipt) {
	p.queueMu.Lock()
	p.queue = append(p.queue, r)
	p.queueMu.Unlock()

	select {
	case p.queued <- struct{}{}:
	default:
	}
}

// deliverLoop sends queued receipts one at a time, in commit order.
func (p *Processor) deliverLoop() {
	for {
		select {
		case <-p.done:
			return
		case <-p.queued:
		}
		for {
			p.queueMu.Lock()
			batch := p.queue
			p.queue = nil
			p.queueMu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, r := range batch {
				p.receiptFeed.Send(r)
			}
		}
	}
}

// Execute runs one instruction. A failed instruction returns its error and
// changes no account.
func (p *Processor) Execute(ctx context.Context, env *instruction.Envelope) (*Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	slot := p.clock.Slot()
	entry := &ledger.Entry{Slot: slot, Instruction: env.Data, Signers: env.Signers}

	kind := "invalid"
	receipt, err := func() (*Receipt, error) {
		ins, err := instruction.Decode(env.Data)
		if err != nil {
			return nil, err
		}
		kind = ins.Kind().String()

		tx := p.ledger.NewTx()
		x := newExecution(tx, env, ins.Kind(), slot)
		if err := x.run(ins); err != nil {
			tx.Discard()
			return nil, errors.WithMessage(err, kind)
		}
		seq, err := tx.Commit(entry)
		if err != nil {
			return nil, err
		}
		for i, ev := range x.events {
			ev.Seq, ev.Index, ev.Slot = seq, uint32(i), slot // #nosec G115
		}
		r := &Receipt{
			Seq:     seq,
			Slot:    slot,
			Kind:    kind,
			Events:  x.events,
			Touched: entry.Touched,
		}
		for _, w := range x.warnings {
			r.Warnings = append(r.Warnings, w.Error())
		}
		return r, nil
	}()

	metricInstructionDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"kind": kind})
	if err != nil {
		metricInstructionCount().AddWithLabel(1, map[string]string{"kind": kind, "status": "failed"})
		p.recordFailure(entry, err)
		return nil, err
	}
	metricInstructionCount().AddWithLabel(1, map[string]string{"kind": kind, "status": "ok"})
	metricJournalHead().Set(int64(receipt.Seq)) // #nosec G115

	if p.events != nil {
		if err := p.events.Insert(ctx, receipt.Events); err != nil {
			logger.Warn("failed to index events", "seq", receipt.Seq, "err", err)
		}
	}
	p.checkEpoch(slot)
	p.enqueueReceipt(receipt)

	logger.Debug("executed", "kind", kind, "seq", receipt.Seq, "slot", slot, "touched", len(receipt.Touched))
	return receipt, nil
}

// recordFailure journals an instruction that failed with a protocol code.
// Other failures come from storage and are not journaled.
func (p *Processor) recordFailure(entry *ledger.Entry, err error) {
	code, ok := errcode.From(err)
	if !ok {
		logger.Warn("instruction failed", "slot", entry.Slot, "err", err)
		return
	}
	entry.Code = uint32(code)
	if _, rerr := p.ledger.Record(entry); rerr != nil {
		logger.Warn("failed to journal failed instruction", "err", rerr)
		return
	}
	logger.Debug("instruction rejected", "code", code, "err", err)
}

func (p *Processor) checkEpoch(slot uint64) {
	cfg, err := ledger.Load[vault.Config](p.ledger, vault.ConfigAddress)
	if err != nil || cfg == nil {
		return
	}
	epoch, err := restake.EpochOf(slot, cfg.EpochLength)
	if err != nil {
		return
	}
	if epoch > p.lastEpoch {
		p.lastEpoch = epoch
		p.epochs.Broadcast()
	}
}
