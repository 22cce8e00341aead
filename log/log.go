// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's slog based logger. Package
// level loggers created with WithContext resolve the root logger on every
// call, so they can be declared as package variables before Init runs.
package log

import (
	"io"
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// Logger is the logging surface used across the module.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

// Options configures the root handler.
type Options struct {
	// Verbosity in legacy geth levels, 0 (crit) to 5 (trace).
	Verbosity int
	JSON      bool
	Color     bool
}

// levels
const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

var (
	level      slog.LevelVar
	levelNames = map[slog.Level]string{
		LevelTrace: "trace",
		LevelDebug: "debug",
		LevelInfo:  "info",
		LevelWarn:  "warn",
		LevelError: "error",
		LevelCrit:  "crit",
	}
)

// Init installs the root logger writing to w.
func Init(w io.Writer, opts Options) {
	level.Set(gethlog.FromLegacyLevel(opts.Verbosity))
	var handler slog.Handler
	if opts.JSON {
		handler = JSONHandlerWithLevel(w, &level)
	} else {
		handler = NewTerminalHandlerWithLevel(w, &level, opts.Color)
	}
	gethlog.SetDefault(gethlog.NewLogger(handler))
}

// Level is the runtime adjustable level of the root logger.
func Level() *slog.LevelVar {
	return &level
}

// LevelName names a level the way ParseLevel accepts it.
func LevelName(l slog.Level) string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return l.String()
}

// ParseLevel parses a level name.
func ParseLevel(name string) (slog.Level, bool) {
	for l, n := range levelNames {
		if n == name {
			return l, true
		}
	}
	return 0, false
}

// Discard silences the root logger.
func Discard() {
	gethlog.SetDefault(gethlog.NewLogger(gethlog.DiscardHandler()))
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return &lazy{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return &lazy{}
}

type lazy struct {
	ctx []any
}

func (l *lazy) resolve() gethlog.Logger {
	if len(l.ctx) == 0 {
		return gethlog.Root()
	}
	return gethlog.Root().With(l.ctx...)
}

func (l *lazy) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &lazy{ctx: append(merged, ctx...)}
}

func (l *lazy) Trace(msg string, ctx ...any) { l.resolve().Trace(msg, ctx...) }
func (l *lazy) Debug(msg string, ctx ...any) { l.resolve().Debug(msg, ctx...) }
func (l *lazy) Info(msg string, ctx ...any)  { l.resolve().Info(msg, ctx...) }
func (l *lazy) Warn(msg string, ctx ...any)  { l.resolve().Warn(msg, ctx...) }
func (l *lazy) Error(msg string, ctx ...any) { l.resolve().Error(msg, ctx...) }
func (l *lazy) Crit(msg string, ctx ...any)  { l.resolve().Crit(msg, ctx...) }

func Trace(msg string, ctx ...any) { gethlog.Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { gethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { gethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { gethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { gethlog.Root().Error(msg, ctx...) }
