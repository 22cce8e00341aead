// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/restake/api/accounts"
	"github.com/vechain/restake/api/events"
	"github.com/vechain/restake/api/instructions"
	"github.com/vechain/restake/api/middleware"
	"github.com/vechain/restake/api/node"
	"github.com/vechain/restake/api/subscriptions"
	"github.com/vechain/restake/api/vaults"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/program"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	PprofOn              bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	EventsLimit          uint64
}

// New return api router
func New(proc *program.Processor, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.EnableReqLogger == nil {
		opts.EnableReqLogger = &atomic.Bool{}
	}
	if opts.EventsLimit == 0 {
		opts.EventsLimit = 1000
	}

	router := mux.NewRouter()

	node.New(proc).
		Mount(router, "/node")
	vaults.New(proc).
		Mount(router, "/vaults")
	accounts.New(proc).
		Mount(router, "/accounts")
	instructions.New(proc).
		Mount(router, "/instructions")
	events.New(proc.Events(), opts.EventsLimit).
		Mount(router, "/events")
	subs := subscriptions.New(proc, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-request-id"}),
		handlers.ExposedHeaders([]string{"x-request-id"}),
	)(handler)
	handler = middleware.RequestID(handler)

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
