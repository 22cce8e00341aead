// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cranker keeps vaults up to date. Once per epoch it runs the
// permissionless update of every vault: it opens the update tracker, cranks
// each delegation in index order and closes it. Trackers left behind by
// earlier epochs are closed to reclaim them.
package cranker

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/restake/co"
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/health"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/log"
	"github.com/vechain/restake/program"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
)

var logger = log.WithContext("pkg", "cranker")

// Options configures the cranker.
type Options struct {
	// Interval is how often vaults are checked besides epoch changes.
	Interval time.Duration
	// Method allocates withdrawal demand over delegations.
	Method tracker.Method
	// Health, when set, receives the outcome of every round.
	Health *health.Health
}

// Cranker runs vault updates in the background.
type Cranker struct {
	proc    *program.Processor
	options Options

	ctx    context.Context
	cancel func()
	goes   co.Goes
}

// New creates a cranker and starts its loop.
func New(proc *program.Processor, options Options) *Cranker {
	if options.Interval <= 0 {
		options.Interval = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cranker{
		proc:    proc,
		options: options,
		ctx:     ctx,
		cancel:  cancel,
	}
	if options.Health != nil {
		options.Health.CrankerStarted()
	}
	c.goes.Loop(ctx, c.loop)
	return c
}

// Close stops the loop and waits for it to exit.
func (c *Cranker) Close() {
	c.cancel()
	c.goes.Wait()
	logger.Debug("closed")
}

func (c *Cranker) loop(ctx context.Context) {
	logger.Debug("enter crank loop")
	defer logger.Debug("leave crank loop")

	ticker := time.NewTicker(c.options.Interval)
	defer ticker.Stop()
	epochs := c.proc.NewEpochWaiter()

	for {
		if _, err := c.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("crank round failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-epochs.C():
		}
	}
}

// Run updates every vault that needs it and reclaims stale trackers. It
// returns the number of vaults updated.
func (c *Cranker) Run(ctx context.Context) (updated int, err error) {
	var (
		start  = time.Now()
		epoch  uint64
		failed int
	)
	if h := c.options.Health; h != nil {
		defer func() { h.RoundDone(epoch, updated, failed, err) }()
	}

	l := c.proc.Ledger()
	cfg, err := ledger.Load[vault.Config](l, vault.ConfigAddress)
	if err != nil {
		return 0, err
	}
	if cfg == nil {
		return 0, nil
	}
	slot := c.proc.Clock().Slot()
	if epoch, err = restake.EpochOf(slot, cfg.EpochLength); err != nil {
		return 0, err
	}

	if err := c.reclaim(ctx, epoch); err != nil {
		return 0, err
	}

	vaults, err := c.staleVaults(slot, cfg.EpochLength)
	if err != nil {
		return 0, err
	}
	for _, addr := range vaults {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if err := c.Update(ctx, addr, epoch); err != nil {
			metricCrankCount().AddWithLabel(1, map[string]string{"status": "failed"})
			failed++
			logger.Warn("vault update failed", "vault", addr, "epoch", epoch, "err", err)
			continue
		}
		metricCrankCount().AddWithLabel(1, map[string]string{"status": "ok"})
		updated++
	}
	if updated > 0 {
		logger.Info("vaults updated", "count", updated, "epoch", epoch, "elapsed", time.Since(start))
	}
	return updated, nil
}

// Update runs the update of one vault for epoch, resuming a tracker that is
// already open.
func (c *Cranker) Update(ctx context.Context, vaultAddr restake.Pubkey, epoch uint64) error {
	l := c.proc.Ledger()
	t, err := ledger.Load[tracker.Tracker](l, tracker.Address(vaultAddr, epoch))
	if err != nil {
		return err
	}
	if t == nil {
		if err := c.execute(ctx, &instruction.InitializeVaultUpdateStateTracker{Vault: vaultAddr, Method: c.options.Method}); err != nil {
			return err
		}
		if t, err = ledger.Load[tracker.Tracker](l, tracker.Address(vaultAddr, epoch)); err != nil {
			return err
		}
		if t == nil {
			return errors.Wrapf(errcode.AccountNotFound, "tracker of %v", vaultAddr)
		}
	}

	delegations, err := c.delegations(vaultAddr)
	if err != nil {
		return err
	}
	next := uint64(0)
	if t.LastUpdatedIndex != tracker.NotCranked {
		next = t.LastUpdatedIndex + 1
	}
	for _, d := range delegations {
		if d.Index < next {
			continue
		}
		if err := c.execute(ctx, &instruction.CrankVaultUpdateStateTracker{
			VaultOperator: instruction.VaultOperator{Vault: vaultAddr, Operator: d.Operator},
		}); err != nil {
			return errors.WithMessagef(err, "crank %v", d.Operator)
		}
	}
	return c.execute(ctx, &instruction.CloseVaultUpdateStateTracker{Vault: vaultAddr, Epoch: epoch})
}

func (c *Cranker) execute(ctx context.Context, ins instruction.Instruction) error {
	env, err := instruction.NewEnvelope(ins)
	if err != nil {
		return err
	}
	_, err = c.proc.Execute(ctx, env)
	return err
}

// staleVaults lists the vaults not yet updated in the epoch of slot.
func (c *Cranker) staleVaults(slot, epochLength uint64) ([]restake.Pubkey, error) {
	var (
		out  []restake.Pubkey
		derr error
	)
	err := c.proc.Ledger().Scan(layout.VaultAccount, func(addr restake.Pubkey, data []byte) bool {
		var v vault.Vault
		if derr = v.Decode(data); derr != nil {
			return false
		}
		needed, err := v.IsUpdateNeeded(slot, epochLength)
		if err != nil {
			derr = err
			return false
		}
		if needed {
			out = append(out, addr)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, derr
}

// delegations returns the delegations of vaultAddr in crank order.
func (c *Cranker) delegations(vaultAddr restake.Pubkey) ([]*delegation.VaultOperatorDelegation, error) {
	var (
		out  []*delegation.VaultOperatorDelegation
		derr error
	)
	err := c.proc.Ledger().Scan(layout.VaultOperatorDelegationAccount, func(_ restake.Pubkey, data []byte) bool {
		d := new(delegation.VaultOperatorDelegation)
		if derr = d.Decode(data); derr != nil {
			return false
		}
		if d.Vault == vaultAddr {
			out = append(out, d)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if derr != nil {
		return nil, derr
	}
	slices.SortFunc(out, func(a, b *delegation.VaultOperatorDelegation) int {
		switch {
		case a.Index < b.Index:
			return -1
		case a.Index > b.Index:
			return 1
		}
		return 0
	})
	return out, nil
}

// reclaim closes trackers of epochs before epoch.
func (c *Cranker) reclaim(ctx context.Context, epoch uint64) error {
	var (
		stale []*tracker.Tracker
		derr  error
	)
	err := c.proc.Ledger().Scan(layout.VaultUpdateStateTrackerAccount, func(_ restake.Pubkey, data []byte) bool {
		t := new(tracker.Tracker)
		if derr = t.Decode(data); derr != nil {
			return false
		}
		if t.NcnEpoch < epoch {
			stale = append(stale, t)
		}
		return true
	})
	if err != nil {
		return err
	}
	if derr != nil {
		return derr
	}
	for _, t := range stale {
		if err := c.execute(ctx, &instruction.CloseVaultUpdateStateTracker{Vault: t.Vault, Epoch: t.NcnEpoch}); err != nil {
			logger.Warn("failed to reclaim tracker", "vault", t.Vault, "epoch", t.NcnEpoch, "err", err)
			continue
		}
		metricReclaimedCount().Add(1)
		logger.Debug("reclaimed tracker", "vault", t.Vault, "epoch", t.NcnEpoch)
	}
	return nil
}
