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

// Staking exposes read-only staking and reward-stream queries.
type Staking struct {
	mgr   *rewards.Manager
	clock func() uint64
}

// NewStaking creates the staking query surface. clock supplies the
// timestamp used for earned projections.
func NewStaking(mgr *rewards.Manager, clock func() uint64) *Staking {
	return &Staking{mgr: mgr, clock: clock}
}

// Mount attaches handlers under the path prefix.
func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/total").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(s.handleGetTotal))
	sub.Path("/token").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(s.handleGetStakingToken))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(s.handleGetAccount))
}

type totalResponse struct {
	TotalStaked *big.Int `json:"totalStaked"`
}

func (s *Staking) handleGetTotal(w http.ResponseWriter, _ *http.Request) error {
	total, err := s.mgr.TotalStaked()
	if err != nil {
		return err
	}
	return WriteJSON(w, &totalResponse{TotalStaked: total})
}

type stakingTokenResponse struct {
	Token       *summer.Address `json:"token"`
	Initialized bool            `json:"initialized"`
}

func (s *Staking) handleGetStakingToken(w http.ResponseWriter, _ *http.Request) error {
	token, ok := s.mgr.StakingToken()
	resp := &stakingTokenResponse{Initialized: ok}
	if ok {
		resp.Token = &token
	}
	return WriteJSON(w, resp)
}

type accountReward struct {
	Token  summer.Address `json:"token"`
	Earned *big.Int       `json:"earned"`
}

type accountResponse struct {
	Address summer.Address  `json:"address"`
	Staked  *big.Int        `json:"staked"`
	Rewards []accountReward `json:"rewards"`
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := summer.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return BadRequest(errors.WithMessage(err, "address"))
	}
	staked, err := s.mgr.StakedBalanceOf(*addr)
	if err != nil {
		return err
	}
	now := s.clock()
	count, err := s.mgr.RewardTokensLength()
	if err != nil {
		return err
	}
	rewardList := make([]accountReward, 0, count)
	for i := uint64(0); i < count; i++ {
		token, err := s.mgr.RewardTokenByIndex(i)
		if err != nil {
			return err
		}
		earned, err := s.mgr.Earned(*addr, token, now)
		if err != nil {
			return err
		}
		rewardList = append(rewardList, accountReward{Token: token, Earned: earned})
	}
	return WriteJSON(w, &accountResponse{Address: *addr, Staked: staked, Rewards: rewardList})
}
