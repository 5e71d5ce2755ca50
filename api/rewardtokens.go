// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/rewards"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// RewardTokens exposes the reward token registry and stream states.
type RewardTokens struct {
	mgr *rewards.Manager
}

// NewRewardTokens creates the reward token query surface.
func NewRewardTokens(mgr *rewards.Manager) *RewardTokens {
	return &RewardTokens{mgr: mgr}
}

// Mount attaches handlers under the path prefix.
func (r *RewardTokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(r.handleList))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(r.handleGet))
}

type rewardTokenResponse struct {
	Token                summer.Address `json:"token"`
	RewardsDuration      uint64         `json:"rewardsDuration"`
	PeriodFinish         uint64         `json:"periodFinish"`
	LastUpdateTime       uint64         `json:"lastUpdateTime"`
	RewardRate           *big.Int       `json:"rewardRate"`
	RewardPerTokenStored *big.Int       `json:"rewardPerTokenStored"`
}

func newRewardTokenResponse(token summer.Address, record *rewards.Record) *rewardTokenResponse {
	return &rewardTokenResponse{
		Token:                token,
		RewardsDuration:      record.RewardsDuration,
		PeriodFinish:         record.PeriodFinish,
		LastUpdateTime:       record.LastUpdateTime,
		RewardRate:           record.RewardRate,
		RewardPerTokenStored: record.RewardPerTokenStored,
	}
}

func (r *RewardTokens) handleList(w http.ResponseWriter, _ *http.Request) error {
	count, err := r.mgr.RewardTokensLength()
	if err != nil {
		return err
	}
	list := make([]*rewardTokenResponse, 0, count)
	for i := uint64(0); i < count; i++ {
		token, err := r.mgr.RewardTokenByIndex(i)
		if err != nil {
			return err
		}
		record, err := r.mgr.RewardData(token)
		if err != nil {
			return err
		}
		list = append(list, newRewardTokenResponse(token, record))
	}
	return WriteJSON(w, list)
}

func (r *RewardTokens) handleGet(w http.ResponseWriter, req *http.Request) error {
	addr, err := summer.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return BadRequest(errors.WithMessage(err, "address"))
	}
	record, err := r.mgr.RewardData(*addr)
	if err != nil {
		return NotFound(err)
	}
	return WriteJSON(w, newRewardTokenResponse(*addr, record))
}
