// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/restake/api"
	"github.com/vechain/restake/clock"
	"github.com/vechain/restake/cranker"
	"github.com/vechain/restake/health"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/metrics"
	"github.com/vechain/restake/program"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")

	defaultSlotDuration  = 400 * time.Millisecond
	defaultCrankInterval = time.Minute
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Restake",
		Usage:     "Node of the restaking vault protocol",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			cacheFlag,
			persistFlag,
			slotDurationFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiEventsLimitFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			pprofFlag,
			skipEventsFlag,
			disableCrankerFlag,
			crankIntervalFlag,
			crankMethodFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "genesis",
				Usage:  "print the genesis in use as YAML",
				Flags:  []cli.Flag{genesisFlag},
				Action: genesisAction,
			},
			{
				Name:      "inspect",
				Usage:     "dump a ledger account",
				ArgsUsage: "<address>",
				Flags:     []cli.Flag{genesisFlag, dataDirFlag, cacheFlag},
				Action:    inspectAction,
			},
			{
				Name:   "journal",
				Usage:  "print the latest journal entries",
				Flags:  []cli.Flag{genesisFlag, dataDirFlag, cacheFlag, limitFlag},
				Action: journalAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	method, err := parseCrankMethod(ctx.String(crankMethodFlag.Name))
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	instanceDir := ""
	if ctx.IsSet(genesisFlag.Name) || ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
	}

	mainDB, err := openLedgerDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing ledger database..."); mainDB.Close() }()

	l, err := ledger.New(mainDB, ledger.Options{CacheSize: ledgerCacheSize(ctx)})
	if err != nil {
		return err
	}
	built, err := gene.Build(l)
	if err != nil {
		return errors.WithMessage(err, "build genesis")
	}
	if built {
		logger.Info("genesis built", "admin", gene.Config.Admin, "epochLength", gene.Config.EpochLength)
	}

	eventDB, err := openEventDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	if eventDB != nil {
		defer func() { logger.Info("closing event database..."); eventDB.Close() }()
	}

	slotDuration := defaultSlotDuration
	if gene.SlotDuration > 0 {
		slotDuration = gene.SlotDuration
	}
	if ctx.IsSet(slotDurationFlag.Name) {
		slotDuration = ctx.Duration(slotDurationFlag.Name)
	}
	clk := clock.NewWall(gene.LaunchAt(), slotDuration)

	proc := program.New(l, clk, eventDB)
	defer func() { logger.Info("closing processor..."); proc.Close() }()

	healthStatus := health.New(3 * ctx.Duration(crankIntervalFlag.Name))
	if !ctx.Bool(disableCrankerFlag.Name) {
		c := cranker.New(proc, cranker.Options{
			Interval: ctx.Duration(crankIntervalFlag.Name),
			Method:   method,
			Health:   healthStatus,
		})
		defer func() { logger.Info("stopping cranker..."); c.Close() }()
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler, closeAPI := api.New(proc, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EventsLimit:          ctx.Uint64(apiEventsLimitFlag.Name),
	})
	defer closeAPI()

	group, groupCtx := errgroup.WithContext(exitSignal)
	srvs := &httpServers{group: group}

	apiURL, err := srvs.serve(ctx.String(apiAddrFlag.Name), withAPITimeout(handler, ctx.Uint64(apiTimeoutFlag.Name)))
	if err != nil {
		return errors.WithMessage(err, "start API server")
	}

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsURL, err = srvs.serve(ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler()); err != nil {
			return errors.WithMessage(err, "start metrics server")
		}
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeAdmin, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, healthStatus, apiLogs)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeAdmin() }()
		adminURL = url
	}

	printStartupMessage(gene, l, instanceDir, slotDuration, apiURL, metricsURL, adminURL)

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("stopping servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srvs.shutdown(shutdownCtx)
	})
	return group.Wait()
}
