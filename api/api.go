// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api exposes a read-only HTTP query surface over the staking
// rewards manager and the event journal. It never mutates protocol state.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/events"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/rewards"
	"github.com/OasisDEX/summer-earn-protocol-sub010/log"
)

var logger = log.WithContext("pkg", "api")

// New assembles the http handler serving all query endpoints. clock
// supplies the timestamp used for earned projections.
func New(mgr *rewards.Manager, journal *events.Journal, clock func() uint64) http.Handler {
	router := mux.NewRouter()

	NewStaking(mgr, clock).Mount(router, "/staking")
	NewRewardTokens(mgr).Mount(router, "/rewards/tokens")
	NewEvents(journal).Mount(router, "/events")

	return handlers.CompressHandler(requestLogger(router))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("handled request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(started))
	})
}
