// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/restake/log"
)

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		body             any
		expectedStatus   int
		expectedLevel    string
		expectedErrorMsg string
	}{
		{
			name:           "get current level",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedLevel:  "info",
		},
		{
			name:           "set level to debug",
			method:         http.MethodPost,
			body:           map[string]string{"level": "debug"},
			expectedStatus: http.StatusOK,
			expectedLevel:  "debug",
		},
		{
			name:           "set level to trace",
			method:         http.MethodPost,
			body:           map[string]string{"level": "trace"},
			expectedStatus: http.StatusOK,
			expectedLevel:  "trace",
		},
		{
			name:             "invalid level",
			method:           http.MethodPost,
			body:             map[string]string{"level": "invalid_body"},
			expectedStatus:   http.StatusBadRequest,
			expectedErrorMsg: "Invalid verbosity level",
		},
		{
			name:             "unknown field",
			method:           http.MethodPost,
			body:             map[string]string{"verbosity": "debug"},
			expectedStatus:   http.StatusBadRequest,
			expectedErrorMsg: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level slog.LevelVar
			level.Set(log.LevelInfo)

			router := mux.NewRouter()
			New(&level).Mount(router, "/admin/loglevel")

			var body []byte
			if tt.body != nil {
				var err error
				body, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}
			req := httptest.NewRequest(tt.method, "/admin/loglevel", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedErrorMsg != "" {
				assert.True(t, strings.Contains(rec.Body.String(), tt.expectedErrorMsg), rec.Body.String())
				return
			}
			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedLevel, resp.CurrentLevel)
		})
	}
}
