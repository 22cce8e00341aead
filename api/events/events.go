// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/restake/api/utils"
	"github.com/vechain/restake/eventdb"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	if e.db == nil {
		return utils.HTTPError(errors.New("event indexing is disabled"), http.StatusServiceUnavailable)
	}
	var filter eventdb.Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Range != nil && filter.Range.Unit != "" && filter.Range.Unit != eventdb.Seq && filter.Range.Unit != eventdb.Slot {
		return utils.BadRequest(fmt.Errorf("range.unit: unknown %q", filter.Range.Unit))
	}
	switch filter.Order {
	case "", eventdb.ASC, eventdb.DESC:
	default:
		return utils.BadRequest(fmt.Errorf("order: unknown %q", filter.Order))
	}
	if filter.Options == nil {
		// one more than the limit to detect an oversized result
		filter.Options = &eventdb.Options{Limit: e.limit + 1}
	}

	events, err := e.db.Filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	if uint64(len(events)) > e.limit {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}
	if events == nil {
		events = []*eventdb.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
