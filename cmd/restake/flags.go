// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	genesisFlag = cli.StringFlag{
		Name:   "genesis",
		EnvVar: "RESTAKE_GENESIS",
		Usage:  "path to a genesis file, the devnet genesis is used when empty",
	}
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		EnvVar: "RESTAKE_DATA_DIR",
		Value:  defaultDataDir(),
		Usage:  "directory for the ledger and event databases",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 512,
		Usage: "megabytes of ram allocated to the ledger database",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "keep the devnet state on disk instead of in memory",
	}
	slotDurationFlag = cli.DurationFlag{
		Name:   "slot-duration",
		EnvVar: "RESTAKE_SLOT_DURATION",
		Usage:  "duration of one slot, overriding the genesis",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		EnvVar: "RESTAKE_API_ADDR",
		Value:  "localhost:8669",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration(ms) above threshold will be logged",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	skipEventsFlag = cli.BoolFlag{
		Name:  "skip-events",
		Usage: "skip writing events to the event database",
	}
	disableCrankerFlag = cli.BoolFlag{
		Name:   "disable-cranker",
		EnvVar: "RESTAKE_DISABLE_CRANKER",
		Usage:  "do not run vault updates in the background",
	}
	crankIntervalFlag = cli.DurationFlag{
		Name:  "crank-interval",
		Value: defaultCrankInterval,
		Usage: "how often the cranker checks for stale vaults besides epoch changes",
	}
	crankMethodFlag = cli.StringFlag{
		Name:  "crank-method",
		Value: "greedy",
		Usage: "withdrawal allocation over delegations (greedy|pro-rata)",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		EnvVar: "RESTAKE_VERBOSITY",
		Value:  3,
		Usage:  "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Value: 20,
		Usage: "maximum number of entries to print",
	}
)
