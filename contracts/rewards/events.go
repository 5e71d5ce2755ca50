// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Event names emitted by the manager.
const (
	EventStaked                  = "Staked"
	EventUnstaked                = "Unstaked"
	EventRewardPaid              = "RewardPaid"
	EventRewardAdded             = "RewardAdded"
	EventRewardTokenRemoved      = "RewardTokenRemoved"
	EventRewardsDurationUpdated  = "RewardsDurationUpdated"
	EventStakingTokenInitialized = "StakingTokenInitialized"
)

// StakedEvent payer funded a stake credited to receiver.
type StakedEvent struct {
	Payer    summer.Address `json:"payer"`
	Receiver summer.Address `json:"receiver"`
	Amount   *big.Int       `json:"amount"`
}

// UnstakedEvent staker's balance was debited, funds returned to receiver.
type UnstakedEvent struct {
	Staker   summer.Address `json:"staker"`
	Receiver summer.Address `json:"receiver"`
	Amount   *big.Int       `json:"amount"`
}

// RewardPaidEvent accrued reward transferred out to account.
type RewardPaidEvent struct {
	Account summer.Address `json:"account"`
	Token   summer.Address `json:"token"`
	Amount  *big.Int       `json:"amount"`
}

// RewardAddedEvent a stream was funded or topped up.
type RewardAddedEvent struct {
	Token    summer.Address `json:"token"`
	Amount   *big.Int       `json:"amount"`
	Duration uint64         `json:"duration"`
}

// RewardTokenRemovedEvent a retired reward token left the registry.
type RewardTokenRemovedEvent struct {
	Token summer.Address `json:"token"`
}

// RewardsDurationUpdatedEvent duration changed between streams.
type RewardsDurationUpdatedEvent struct {
	Token    summer.Address `json:"token"`
	Duration uint64         `json:"duration"`
}

// StakingTokenInitializedEvent the staking asset was bound.
type StakingTokenInitializedEvent struct {
	Token summer.Address `json:"token"`
}
