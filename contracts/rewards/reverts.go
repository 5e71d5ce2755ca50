// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/reverts"
)

// Revert sentinels of the staking rewards manager. Each failure aborts the
// whole operation with no state mutated; wrapped instances carry the
// offending address/amount.
var (
	ErrRewardTokenDoesNotExist     = reverts.New("reward token does not exist")
	ErrRewardPeriodNotComplete     = reverts.New("reward period not complete")
	ErrRewardTokenStillHasBalance  = reverts.New("reward token still has balance")
	ErrCannotChangeRewardsDuration = reverts.New("cannot change rewards duration while stream is set")
	ErrRewardsDurationCannotBeZero = reverts.New("rewards duration cannot be zero")
	ErrProvidedRewardTooHigh       = reverts.New("provided reward too high")
	ErrStakingTokenNotInitialized  = reverts.New("staking token not initialized")
	ErrStakingTokenAlreadySet      = reverts.New("staking token already initialized")
	ErrCannotStakeZero             = reverts.New("cannot stake zero")
	ErrCannotUnstakeZero           = reverts.New("cannot unstake zero")
	ErrInsufficientStakedBalance   = reverts.New("insufficient staked balance")
	ErrIndexOutOfBounds            = reverts.New("index out of bounds")
)
