// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/restake/api/utils"
	"github.com/vechain/restake/delegation"
	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/ledger"
	"github.com/vechain/restake/program"
	"github.com/vechain/restake/restake"
	"github.com/vechain/restake/tracker"
	"github.com/vechain/restake/vault"
	"github.com/vechain/restake/withdrawal"
)

type Vaults struct {
	proc *program.Processor
}

func New(proc *program.Processor) *Vaults {
	return &Vaults{proc}
}

func (v *Vaults) config() (*vault.Config, error) {
	cfg, err := ledger.Load[vault.Config](v.proc.Ledger(), vault.ConfigAddress)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.WithMessage(errcode.AccountNotFound, "config")
	}
	return cfg, nil
}

func (v *Vaults) load(req *http.Request) (restake.Pubkey, *vault.Vault, error) {
	addr, err := utils.PubkeyVar(req, "vault")
	if err != nil {
		return addr, nil, err
	}
	vlt, err := ledger.Load[vault.Vault](v.proc.Ledger(), addr)
	if err != nil {
		return addr, nil, err
	}
	if vlt == nil {
		return addr, nil, errors.WithMessagef(errcode.AccountNotFound, "vault %v", addr)
	}
	return addr, vlt, nil
}

func (v *Vaults) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := v.config()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, cfg)
}

func (v *Vaults) handleGetVaults(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := v.config()
	if err != nil {
		return err
	}
	slot := v.proc.Clock().Slot()

	var (
		out     = make([]*Vault, 0)
		scanErr error
	)
	err = v.proc.Ledger().Scan(layout.VaultAccount, func(addr restake.Pubkey, data []byte) bool {
		var vlt vault.Vault
		if scanErr = vlt.Decode(data); scanErr != nil {
			return false
		}
		var item *Vault
		if item, scanErr = convertVault(addr, &vlt, slot, cfg.EpochLength); scanErr != nil {
			return false
		}
		out = append(out, item)
		return true
	})
	if err != nil {
		return err
	}
	if scanErr != nil {
		return scanErr
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaultIndex < out[j].VaultIndex })
	return utils.WriteJSON(w, out)
}

func (v *Vaults) handleGetVault(w http.ResponseWriter, req *http.Request) error {
	cfg, err := v.config()
	if err != nil {
		return err
	}
	addr, vlt, err := v.load(req)
	if err != nil {
		return err
	}
	item, err := convertVault(addr, vlt, v.proc.Clock().Slot(), cfg.EpochLength)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, item)
}

func (v *Vaults) handleGetDelegations(w http.ResponseWriter, req *http.Request) error {
	addr, _, err := v.load(req)
	if err != nil {
		return err
	}
	var (
		out     = make([]*Delegation, 0)
		scanErr error
	)
	err = v.proc.Ledger().Scan(layout.VaultOperatorDelegationAccount, func(da restake.Pubkey, data []byte) bool {
		var d delegation.VaultOperatorDelegation
		if scanErr = d.Decode(data); scanErr != nil {
			return false
		}
		if d.Vault != addr {
			return true
		}
		var item *Delegation
		if item, scanErr = convertDelegation(da, &d); scanErr != nil {
			return false
		}
		out = append(out, item)
		return true
	})
	if err != nil {
		return err
	}
	if scanErr != nil {
		return scanErr
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return utils.WriteJSON(w, out)
}

func (v *Vaults) handleGetTickets(w http.ResponseWriter, req *http.Request) error {
	addr, _, err := v.load(req)
	if err != nil {
		return err
	}
	var staker *restake.Pubkey
	if s := req.URL.Query().Get("staker"); s != "" {
		pk, err := restake.ParsePubkey(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "staker"))
		}
		staker = &pk
	}

	var (
		out     = make([]*WithdrawalTicket, 0)
		scanErr error
	)
	err = v.proc.Ledger().Scan(layout.VaultStakerWithdrawalTicketAccount, func(ta restake.Pubkey, data []byte) bool {
		var t withdrawal.Ticket
		if scanErr = t.Decode(data); scanErr != nil {
			return false
		}
		if t.Vault != addr || (staker != nil && t.Staker != *staker) {
			return true
		}
		out = append(out, &WithdrawalTicket{Address: ta, Ticket: &t})
		return true
	})
	if err != nil {
		return err
	}
	if scanErr != nil {
		return scanErr
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotUnstaked < out[j].SlotUnstaked })
	return utils.WriteJSON(w, out)
}

func (v *Vaults) handleGetTracker(w http.ResponseWriter, req *http.Request) error {
	cfg, err := v.config()
	if err != nil {
		return err
	}
	addr, _, err := v.load(req)
	if err != nil {
		return err
	}
	current, err := restake.EpochOf(v.proc.Clock().Slot(), cfg.EpochLength)
	if err != nil {
		return err
	}
	epoch, err := utils.Uint64Query(req, "epoch", current)
	if err != nil {
		return err
	}
	t, err := ledger.Load[tracker.Tracker](v.proc.Ledger(), tracker.Address(addr, epoch))
	if err != nil {
		return err
	}
	if t == nil {
		return errors.WithMessagef(errcode.AccountNotFound, "tracker %v@%d", addr, epoch)
	}
	return utils.WriteJSON(w, &Tracker{
		Address: t.Address(),
		Tracker: t,
		Method:  t.WithdrawalAllocationMethod.String(),
	})
}

func (v *Vaults) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		Name("GET /vaults/config").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetConfig))
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /vaults").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetVaults))
	sub.Path("/{vault}").
		Methods(http.MethodGet).
		Name("GET /vaults/{vault}").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetVault))
	sub.Path("/{vault}/delegations").
		Methods(http.MethodGet).
		Name("GET /vaults/{vault}/delegations").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetDelegations))
	sub.Path("/{vault}/tickets").
		Methods(http.MethodGet).
		Name("GET /vaults/{vault}/tickets").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetTickets))
	sub.Path("/{vault}/tracker").
		Methods(http.MethodGet).
		Name("GET /vaults/{vault}/tracker").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetTracker))
}
