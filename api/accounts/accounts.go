// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/restake/api/utils"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/program"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/token"
)

// Account is a raw account with its decoded form.
type Account struct {
	Address restake.Pubkey `json:"address"`
	Type    string         `json:"type"`
	Data    hexutil.Bytes  `json:"data"`
	Decoded ledger.Record  `json:"decoded"`
}

// Balance is a token balance.
type Balance struct {
	Mint   restake.Pubkey `json:"mint"`
	Owner  restake.Pubkey `json:"owner"`
	Amount uint64         `json:"amount"`
}

type Accounts struct {
	proc *program.Processor
}

func New(proc *program.Processor) *Accounts {
	return &Accounts{proc}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PubkeyVar(req, "address")
	if err != nil {
		return err
	}
	data, ok, err := a.proc.Ledger().Get(addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithMessagef(errcode.AccountNotFound, "account %v", addr)
	}
	disc, _ := layout.PeekAccount(data)
	rec, err := program.DecodeAccount(data)
	if err != nil {
		return errors.WithMessagef(err, "account %v", addr)
	}
	acc := &Account{
		Address: addr,
		Type:    layout.AccountName(disc),
		Data:    data,
		Decoded: rec,
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.PubkeyVar(req, "address")
	if err != nil {
		return err
	}
	mint, err := utils.PubkeyVar(req, "mint")
	if err != nil {
		return err
	}
	tx := a.proc.Ledger().NewTx()
	defer tx.Discard()
	amount, err := token.New(tx).Balance(mint, owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Mint: mint, Owner: owner, Amount: amount})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/tokens/{mint}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/tokens/{mint}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalance))
}
