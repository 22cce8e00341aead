// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb indexes instruction events in sqlite for querying.
package eventdb

import (
	"context"
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/restake/restake"
)

const insertEvent = "INSERT OR REPLACE INTO event(seq, eventIndex, slot, name, subject, actor, amount) VALUES (?, ?, ?, ?, ?, ?, ?)"

// EventDB manages all events.
type EventDB struct {
	path          string
	db            *sql.DB
	stmts         *stmtCache
	driverVersion string
}

// New creates or opens the event db at path.
func New(path string) (edb *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if edb == nil {
			db.Close()
		}
	}()
	// an in-memory database lives as long as its single connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}
	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		stmts:         newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

func (db *EventDB) Close() error {
	db.stmts.Clear()
	return db.db.Close()
}

// Insert writes events in one transaction.
func (db *EventDB) Insert(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmts.Prepare(insertEvent)
	if err != nil {
		return err
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txStmt := tx.StmtContext(ctx, stmt)
	for _, ev := range events {
		if _, err := txStmt.ExecContext(ctx,
			ev.Seq,
			ev.Index,
			ev.Slot,
			ev.Name,
			ev.Subject.Bytes(),
			ev.Actor.Bytes(),
			int64(ev.Amount), // #nosec G115 stored bit for bit
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter returns the events matching filter, all of them if it is nil.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT * FROM event ORDER BY seq ASC, eventIndex ASC")
	}
	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		column := "seq"
		if filter.Range.Unit == Slot {
			column = "slot"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + column + " >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + column + " <= ?"
		}
	}
	if filter.Subject != nil {
		args = append(args, filter.Subject.Bytes())
		stmt += " AND subject = ?"
	}
	if filter.Actor != nil {
		args = append(args, filter.Actor.Bytes())
		stmt += " AND actor = ?"
	}
	if len(filter.Names) > 0 {
		stmt += " AND name IN (?" + strings.Repeat(", ?", len(filter.Names)-1) + ")"
		for _, n := range filter.Names {
			args = append(args, n)
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC, eventIndex DESC"
	} else {
		stmt += " ORDER BY seq ASC, eventIndex ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev             Event
			subject, actor []byte
			amount         int64
		)
		if err := rows.Scan(
			&ev.Seq,
			&ev.Index,
			&ev.Slot,
			&ev.Name,
			&subject,
			&actor,
			&amount,
		); err != nil {
			return nil, err
		}
		ev.Amount = uint64(amount) // #nosec G115
		ev.Subject = restake.BytesToPubkey(subject)
		ev.Actor = restake.BytesToPubkey(actor)
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
