// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// lastTimeRewardApplicable caps accrual time at the end of the funded stream.
func lastTimeRewardApplicable(record *Record, now uint64) uint64 {
	if now < record.PeriodFinish {
		return now
	}
	return record.PeriodFinish
}

// rewardPerToken extends the stored accumulator by the accrual since
// LastUpdateTime. With nothing staked no accrual is possible and the
// stored value is returned unchanged.
func rewardPerToken(record *Record, totalSupply *big.Int, now uint64) *big.Int {
	if totalSupply.Sign() == 0 {
		return new(big.Int).Set(record.RewardPerTokenStored)
	}
	elapsed := lastTimeRewardApplicable(record, now) - record.LastUpdateTime
	accrual := new(big.Int).Mul(new(big.Int).SetUint64(elapsed), record.RewardRate)
	accrual.Div(accrual, totalSupply)
	return accrual.Add(accrual, record.RewardPerTokenStored)
}

// earnedAmount is the account's entitlement in actual token units: the
// staked balance times the accumulator delta since the account's last
// snapshot, plus rewards already accrued but unclaimed.
// A paid snapshot taken before the token was removed and re-registered
// can exceed the fresh accumulator; the delta is clamped at zero so the
// stale snapshot is treated as current while accrued amounts stay honored.
func earnedAmount(balance, perToken, paid, accrued *big.Int) *big.Int {
	delta := new(big.Int).Sub(perToken, paid)
	if delta.Sign() < 0 {
		delta.SetInt64(0)
	}
	return new(big.Int).Add(summer.WadMul(balance, delta), accrued)
}

// updateReward refreshes the accumulator of every registered token and,
// when account is non-nil, snapshots that account's entitlement. It must
// run before any balance-affecting mutation: a change of totalSupply or
// of any token's rate changes nothing already accrued, but skipping the
// snapshot would silently lose or double-count accrual.
func (m *Manager) updateReward(account *summer.Address, now uint64) error {
	totalSupply, err := m.store.totalSupply.Get()
	if err != nil {
		return err
	}
	return m.store.TokenIterator(func(token summer.Address) error {
		record, err := m.store.GetRecord(token)
		if err != nil {
			return err
		}
		perToken := rewardPerToken(record, totalSupply, now)
		record.RewardPerTokenStored = perToken
		record.LastUpdateTime = lastTimeRewardApplicable(record, now)
		if err := m.store.SetRecord(token, record); err != nil {
			return err
		}
		if account == nil {
			return nil
		}
		balance, err := m.store.GetStakedBalance(*account)
		if err != nil {
			return err
		}
		accrued, err := m.store.GetAccrued(token, *account)
		if err != nil {
			return err
		}
		paid, err := m.store.GetUserPaid(token, *account)
		if err != nil {
			return err
		}
		if err := m.store.SetAccrued(token, *account, earnedAmount(balance, perToken, paid, accrued)); err != nil {
			return err
		}
		return m.store.SetUserPaid(token, *account, perToken)
	})
}
