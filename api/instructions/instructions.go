// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package instructions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/restake/api/utils"
	"github.com/vechain/restake/instruction"
	"github.com/vechain/restake/program"
)

type Instructions struct {
	proc *program.Processor
}

func New(proc *program.Processor) *Instructions {
	return &Instructions{proc}
}

func (i *Instructions) handleExecute(w http.ResponseWriter, req *http.Request) error {
	var env instruction.Envelope
	if err := utils.ParseJSON(req.Body, &env); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if len(env.Data) == 0 {
		return utils.BadRequest(errors.New("data: empty"))
	}
	receipt, err := i.proc.Execute(req.Context(), &env)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (i *Instructions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /instructions").
		HandlerFunc(utils.WrapHandlerFunc(i.handleExecute))
}
