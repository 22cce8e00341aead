// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/program"
	"github.com/vechain/restake/restake"
)

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

func genesisAction(ctx *cli.Context) error {
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(gene)
}

// openPersistedLedger opens the ledger of the selected genesis read from disk.
func openPersistedLedger(ctx *cli.Context) (*ledger.Ledger, func(), error) {
	initLogger(ctx)
	gene, err := selectGenesis(ctx)
	if err != nil {
		return nil, nil, err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return nil, nil, err
	}
	db, err := openLedgerDB(ctx, instanceDir)
	if err != nil {
		return nil, nil, err
	}
	l, err := ledger.New(db, ledger.Options{})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, func() { db.Close() }, nil
}

func inspectAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one account address")
	}
	addr, err := restake.ParsePubkey(ctx.Args().First())
	if err != nil {
		return err
	}
	l, closeDB, err := openPersistedLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	data, ok, err := l.Get(addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithMessagef(errcode.AccountNotFound, "account %v", addr)
	}
	disc, _ := layout.PeekAccount(data)
	fmt.Printf("%v (%v, %d bytes)\n", addr, layout.AccountName(disc), len(data))

	rec, err := program.DecodeAccount(data)
	if err != nil {
		return err
	}
	fmt.Print(dumper.Sdump(rec))
	return nil
}

func journalAction(ctx *cli.Context) error {
	l, closeDB, err := openPersistedLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	limit := ctx.Int(limitFlag.Name)
	head := l.Head()
	from := uint64(1)
	if head > uint64(limit) { // #nosec G115
		from = head - uint64(limit) + 1 // #nosec G115
	}
	entries, err := l.Journal(from, limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		kind := "invalid"
		if ins, err := instruction.Decode(e.Instruction); err == nil {
			kind = ins.Kind().String()
		}
		status := "ok"
		if e.Code != 0 {
			status = errcode.Code(e.Code).Error()
		}
		fmt.Printf("#%d slot %d %s [%s] signers=%v\n", e.Seq, e.Slot, kind, status, e.Signers)
	}
	return nil
}
