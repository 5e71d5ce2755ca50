// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/events"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Events exposes the protocol event journal to indexers.
type Events struct {
	journal *events.Journal
}

// NewEvents creates the event query surface.
func NewEvents(journal *events.Journal) *Events {
	return &Events{journal: journal}
}

// Mount attaches handlers under the path prefix.
func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(e.handleFilter))
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()

	var emitter summer.Address
	if raw := query.Get("emitter"); raw != "" {
		parsed, err := summer.ParseAddress(raw)
		if err != nil {
			return BadRequest(errors.WithMessage(err, "emitter"))
		}
		emitter = *parsed
	}
	var from, to uint64
	var err error
	if raw := query.Get("from"); raw != "" {
		if from, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return BadRequest(errors.WithMessage(err, "from"))
		}
	}
	if raw := query.Get("to"); raw != "" {
		if to, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return BadRequest(errors.WithMessage(err, "to"))
		}
	}

	matched := e.journal.Filter(emitter, query.Get("name"), from, to)
	if matched == nil {
		matched = []events.Event{}
	}
	return WriteJSON(w, matched)
}
