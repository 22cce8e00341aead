// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// leveler gates a handler on a level that can change at runtime. The wrapped
// handler is built at trace level, so the gate is the only filter.
type leveler struct {
	inner    slog.Handler
	minLevel *slog.LevelVar
}

func (l *leveler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= l.minLevel.Level() && l.inner.Enabled(ctx, level)
}

func (l *leveler) Handle(ctx context.Context, r slog.Record) error {
	return l.inner.Handle(ctx, r)
}

func (l *leveler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveler{l.inner.WithAttrs(attrs), l.minLevel}
}

func (l *leveler) WithGroup(name string) slog.Handler {
	return &leveler{l.inner.WithGroup(name), l.minLevel}
}

// NewTerminalHandlerWithLevel returns a human readable handler that outputs
// records at or above the current value of lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) slog.Handler {
	return &leveler{gethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor), lvl}
}

// JSONHandlerWithLevel returns a JSON handler that outputs records at or
// above the current value of lvl.
func JSONHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &leveler{gethlog.JSONHandlerWithLevel(wr, LevelTrace), lvl}
}
