// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/restake/co"
)

func TestSignalIsRemembered(t *testing.T) {
	var sig co.Signal
	sig.Signal()

	v, ok := <-sig.NewWaiter().C()
	assert.True(t, ok)
	assert.True(t, v)
}

func TestSignalWakesWaiter(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()
	sig.Signal()
	<-w.C()
}

func TestBroadcastIsNotRemembered(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	for range 10 {
		select {
		case <-sig.NewWaiter().C():
			t.Fatal("woken by an earlier broadcast")
		default:
		}
	}
}

func TestBroadcastWakesAll(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for range 10 {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Broadcast()

	for _, w := range ws {
		_, ok := <-w.C()
		assert.False(t, ok)
	}
}

func TestWaiterFollowsRounds(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()

	sig.Broadcast()
	<-w.C()

	select {
	case <-w.C():
		t.Fatal("woken twice by one broadcast")
	default:
	}
	sig.Broadcast()
	<-w.C()
}

func TestGoes(t *testing.T) {
	var (
		goes co.Goes
		n    atomic.Int32
	)
	for range 5 {
		goes.Go(func() { n.Add(1) })
	}
	goes.Wait()
	assert.Equal(t, int32(5), n.Load())

	ctx, cancel := context.WithCancel(context.Background())
	goes.Loop(ctx, func(ctx context.Context) { <-ctx.Done() })
	cancel()
	select {
	case <-goes.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
