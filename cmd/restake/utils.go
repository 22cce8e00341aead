// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/restake/eventdb"
	"github.com/vechain/restake/genesis"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/lvldb"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/tracker"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
	log.Init(os.Stderr, log.Options{
		Verbosity: ctx.Int(verbosityFlag.Name),
		JSON:      ctx.Bool(jsonLogsFlag.Name),
		Color:     useColor,
	})
	return log.Level()
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	return genesis.Load(path)
}

func parseCrankMethod(s string) (tracker.Method, error) {
	switch s {
	case "greedy":
		return tracker.Greedy, nil
	case "pro-rata":
		return tracker.ProRata, nil
	}
	return 0, errors.Errorf("unknown crank method %q", s)
}

// makeInstanceDir returns the directory holding the databases of gene,
// named after its admin so different networks never share state.
func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.New("unable to infer default data dir, use -data-dir to specify")
	}
	id := restake.DeriveAddress([]byte("instance"), gene.Config.Admin.Bytes(), fmt.Appendf(nil, "%d", gene.LaunchTime))
	dir := filepath.Join(dataDir, "instance-"+id.String()[:8])
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", dir)
	}
	return dir, nil
}

// openLedgerDB opens the ledger database in instanceDir, or in memory when it
// is empty.
func openLedgerDB(ctx *cli.Context, instanceDir string) (*lvldb.LevelDB, error) {
	if instanceDir == "" {
		return lvldb.NewMem()
	}
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(instanceDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger database [%v]", dir)
	}
	return db, nil
}

// ledgerCacheSize is the number of accounts cached above the database.
func ledgerCacheSize(ctx *cli.Context) int {
	return normalizeCacheSize(ctx.Int(cacheFlag.Name)) * 64
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2) // #nosec G115
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 500
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openEventDB(ctx *cli.Context, instanceDir string) (*eventdb.EventDB, error) {
	if ctx.Bool(skipEventsFlag.Name) {
		return nil, nil
	}
	if instanceDir == "" {
		return eventdb.NewMem()
	}
	dir := filepath.Join(instanceDir, "events.db")
	db, err := eventdb.New(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%v]", dir)
	}
	return db, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// withAPITimeout bounds the duration of API requests. Websocket upgrades are
// long lived and left alone.
func withAPITimeout(h http.Handler, timeoutMs uint64) http.Handler {
	if timeoutMs == 0 {
		return h
	}
	timeout := time.Duration(timeoutMs) * time.Millisecond // #nosec G115
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") == "websocket" {
			h.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

type httpServers struct {
	group *errgroup.Group
	list  []*http.Server
}

// serve starts serving handler on addr and returns its base url.
func (s *httpServers) serve(addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	s.list = append(s.list, srv)
	s.group.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func (s *httpServers) shutdown(ctx context.Context) error {
	var first error
	for _, srv := range s.list {
		if err := srv.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func printStartupMessage(
	gene *genesis.Genesis,
	l *ledger.Ledger,
	instanceDir string,
	slotDuration time.Duration,
	apiURL, metricsURL, adminURL string,
) {
	if instanceDir == "" {
		instanceDir = "Memory"
	}
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	if adminURL == "" {
		adminURL = "Disabled"
	}
	fmt.Printf(`Starting %v
    Admin           [ %v ]
    Epoch length    [ %v slots of %v ]
    Journal head    [ %v ]
    Instance dir    [ %v ]
    API portal      [ %v ]
    Metrics         [ %v ]
    Admin portal    [ %v ]
`,
		fullVersion(),
		gene.Config.Admin,
		gene.Config.EpochLength, slotDuration,
		l.Head(),
		instanceDir,
		apiURL,
		metricsURL,
		adminURL,
	)
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.restake")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.restake")
		default:
			return filepath.Join(home, ".org.vechain.restake")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
