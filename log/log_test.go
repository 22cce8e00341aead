// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageLoggerResolvesLate(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	Init(&buf, Options{Verbosity: 3, JSON: true})
	defer Discard()

	logger.With("vault", "v1").Info("hello", "amount", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])
	assert.Equal(t, "v1", rec["vault"])
	assert.Equal(t, float64(7), rec["amount"])
}

func TestVerbosityFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{Verbosity: 2})
	defer Discard()

	Info("dropped")
	Warn("kept")
	assert.False(t, strings.Contains(buf.String(), "dropped"))
	assert.True(t, strings.Contains(buf.String(), "kept"))
}

func TestLevelIsAdjustable(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{Verbosity: 3})
	defer Discard()

	assert.Equal(t, "info", LevelName(Level().Level()))
	Debug("hidden")
	Level().Set(LevelDebug)
	Debug("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))

	l, ok := ParseLevel("crit")
	assert.True(t, ok)
	assert.Equal(t, LevelCrit, l)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestJSONLevelIsAdjustable(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{Verbosity: 3, JSON: true})
	defer Discard()

	Debug("hidden")
	Level().Set(LevelTrace)
	Trace("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
