// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/restake"
)

var (
	vaultA = restake.DeriveAddress([]byte("vault-a"))
	vaultB = restake.DeriveAddress([]byte("vault-b"))
	alice  = restake.DeriveAddress([]byte("alice"))
)

func seed(t *testing.T, db *EventDB) []*Event {
	var events []*Event
	for i := range 20 {
		subject := vaultA
		if i%2 == 1 {
			subject = vaultB
		}
		name := "Deposit"
		if i%5 == 0 {
			name = "Slash"
		}
		events = append(events, &Event{
			Seq:     uint64(i/2 + 1),
			Index:   uint32(i % 2),
			Slot:    uint64(i * 10),
			Name:    name,
			Subject: subject,
			Actor:   alice,
			Amount:  uint64(i),
		})
	}
	require.NoError(t, db.Insert(context.Background(), events))
	return events
}

func TestFilter(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	events := seed(t, db)

	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, events, all)

	bySubject, err := db.Filter(ctx, &Filter{Subject: &vaultB})
	require.NoError(t, err)
	assert.Len(t, bySubject, 10)
	for _, ev := range bySubject {
		assert.Equal(t, vaultB, ev.Subject)
	}

	slashes, err := db.Filter(ctx, &Filter{Names: []string{"Slash"}, Order: DESC})
	require.NoError(t, err)
	require.Len(t, slashes, 4)
	assert.Equal(t, uint64(15), slashes[0].Amount)
	assert.Equal(t, uint64(0), slashes[3].Amount)

	ranged, err := db.Filter(ctx, &Filter{Range: &Range{Unit: Slot, From: 50, To: 90}})
	require.NoError(t, err)
	assert.Equal(t, events[5:10], ranged)

	paged, err := db.Filter(ctx, &Filter{
		Range:   &Range{Unit: Seq, From: 3, To: math.MaxInt64},
		Options: &Options{Offset: 1, Limit: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, events[5:8], paged)

	none, err := db.Filter(ctx, &Filter{Actor: &vaultA})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInsertReplaces(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.Insert(ctx, nil))
	ev := &Event{Seq: 1, Name: "Deposit", Subject: vaultA, Amount: math.MaxUint64}
	require.NoError(t, db.Insert(ctx, []*Event{ev}))
	got, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []*Event{ev}, got)

	ev2 := *ev
	ev2.Amount = 5
	require.NoError(t, db.Insert(ctx, []*Event{&ev2}))
	got, err = db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []*Event{&ev2}, got)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())
	events := seed(t, db)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}
