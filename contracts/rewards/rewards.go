// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements the multi-token staking rewards manager: an
// arbitrary set of independently funded reward tokens streamed to stakers
// of a single staking asset. Accounting is refreshed for every registered
// token before any balance-affecting mutation; each public operation is
// atomic, reverting all writes and events on failure.
package rewards

import (
	"math/big"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/events"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/params"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/reverts"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/token"
	"github.com/OasisDEX/summer-earn-protocol-sub010/log"
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

var logger = log.WithContext("pkg", "rewards")

// Manager is the staking rewards manager contract. All public operations
// take the acting account and the current timestamp explicitly; time is
// assumed monotonically non-decreasing across calls.
type Manager struct {
	addr    summer.Address
	store   *store
	tokens  *token.Registry
	params  *params.Params
	journal *events.Journal
}

// New creates the manager at addr. The staking asset may be bound later
// via InitializeStakingToken; staking reverts until then.
func New(addr summer.Address, st *state.State, tokens *token.Registry, par *params.Params, journal *events.Journal) *Manager {
	return &Manager{
		addr:    addr,
		store:   newStore(addr, st),
		tokens:  tokens,
		params:  par,
		journal: journal,
	}
}

// Address returns the manager's own address, which holds custody of
// staked and reward funds.
func (m *Manager) Address() summer.Address {
	return m.addr
}

// run executes fn atomically: on error every state write and emitted
// event since the start of the operation is reverted.
func (m *Manager) run(fn func() error) error {
	st := m.store.context.State()
	scp := st.NewCheckpoint()
	jcp := m.journal.NewCheckpoint()
	if err := fn(); err != nil {
		st.RevertTo(scp)
		m.journal.RevertTo(jcp)
		return err
	}
	st.Commit(scp)
	m.journal.Commit(jcp)
	return nil
}

//
// Staking
//

// Stake locks amount of the staking asset from actor's balance, crediting
// actor.
func (m *Manager) Stake(actor summer.Address, amount *big.Int, now uint64) error {
	return m.StakeOnBehalfOf(actor, actor, amount, now)
}

// StakeOnBehalfOf pulls amount of the staking asset from payer and
// credits the stake to receiver. A trusted intermediary may stake for end
// users while paying from its own balance.
func (m *Manager) StakeOnBehalfOf(payer, receiver summer.Address, amount *big.Int, now uint64) (err error) {
	defer func() { countOp("stake", err) }()
	return m.run(func() error {
		if err := m.updateReward(&receiver, now); err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return ErrCannotStakeZero
		}
		staking, ok := m.store.StakingToken()
		if !ok {
			return ErrStakingTokenNotInitialized
		}
		if err := m.tokens.TransferFrom(staking, m.addr, payer, m.addr, amount); err != nil {
			return err
		}
		balance, err := m.store.GetStakedBalance(receiver)
		if err != nil {
			return err
		}
		if err := m.store.SetStakedBalance(receiver, new(big.Int).Add(balance, amount)); err != nil {
			return err
		}
		if err := m.store.totalSupply.Add(amount); err != nil {
			return err
		}
		m.journal.Emit(m.addr, EventStaked, now, &StakedEvent{Payer: payer, Receiver: receiver, Amount: amount})
		m.gaugeTotalStaked()
		return nil
	})
}

// Unstake releases amount of the staking asset back to actor.
func (m *Manager) Unstake(actor summer.Address, amount *big.Int, now uint64) (err error) {
	defer func() { countOp("unstake", err) }()
	return m.run(func() error {
		if err := m.updateReward(&actor, now); err != nil {
			return err
		}
		return m.unstake(actor, amount, now)
	})
}

// unstake assumes accounting has been refreshed for actor.
func (m *Manager) unstake(actor summer.Address, amount *big.Int, now uint64) error {
	if amount.Sign() <= 0 {
		return ErrCannotUnstakeZero
	}
	staking, ok := m.store.StakingToken()
	if !ok {
		return ErrStakingTokenNotInitialized
	}
	balance, err := m.store.GetStakedBalance(actor)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.Wrap(ErrInsufficientStakedBalance, "account %s staked %s, need %s", actor, balance, amount)
	}
	if err := m.store.SetStakedBalance(actor, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	if err := m.store.totalSupply.Sub(amount); err != nil {
		return err
	}
	if err := m.tokens.Transfer(staking, m.addr, actor, amount); err != nil {
		return err
	}
	m.journal.Emit(m.addr, EventUnstaked, now, &UnstakedEvent{Staker: actor, Receiver: actor, Amount: amount})
	m.gaugeTotalStaked()
	return nil
}

// Exit unstakes actor's entire balance and claims every reward token.
func (m *Manager) Exit(actor summer.Address, now uint64) (err error) {
	defer func() { countOp("exit", err) }()
	return m.run(func() error {
		if err := m.updateReward(&actor, now); err != nil {
			return err
		}
		balance, err := m.store.GetStakedBalance(actor)
		if err != nil {
			return err
		}
		if err := m.unstake(actor, balance, now); err != nil {
			return err
		}
		return m.payAll(actor, now)
	})
}

//
// Claiming
//

// GetReward claims every reward token accrued by actor.
func (m *Manager) GetReward(actor summer.Address, now uint64) error {
	return m.GetRewardFor(actor, actor, now)
}

// GetRewardFor distributes user's accrued rewards across all tokens. Any
// account may trigger the distribution; funds always flow to user.
func (m *Manager) GetRewardFor(actor, user summer.Address, now uint64) (err error) {
	defer func() { countOp("claim", err) }()
	return m.run(func() error {
		if err := m.updateReward(&user, now); err != nil {
			return err
		}
		return m.payAll(user, now)
	})
}

// GetRewardToken claims a single reward token for actor.
func (m *Manager) GetRewardToken(actor, rewardToken summer.Address, now uint64) error {
	return m.GetRewardTokenFor(actor, actor, rewardToken, now)
}

// GetRewardTokenFor distributes user's accrued reward for one token.
func (m *Manager) GetRewardTokenFor(actor, user, rewardToken summer.Address, now uint64) (err error) {
	defer func() { countOp("claim", err) }()
	return m.run(func() error {
		if err := m.updateReward(&user, now); err != nil {
			return err
		}
		record, err := m.store.GetRecord(rewardToken)
		if err != nil {
			return err
		}
		if record.IsEmpty() {
			return reverts.Wrap(ErrRewardTokenDoesNotExist, "token %s", rewardToken)
		}
		return m.pay(user, rewardToken, now)
	})
}

// payAll pays out every registered token with a positive accrued entry.
func (m *Manager) payAll(user summer.Address, now uint64) error {
	return m.store.TokenIterator(func(rewardToken summer.Address) error {
		return m.pay(user, rewardToken, now)
	})
}

// pay zeroes the accrued entry and transfers it out. No-op when nothing
// is accrued.
func (m *Manager) pay(user, rewardToken summer.Address, now uint64) error {
	accrued, err := m.store.GetAccrued(rewardToken, user)
	if err != nil {
		return err
	}
	if accrued.Sign() == 0 {
		return nil
	}
	if err := m.store.SetAccrued(rewardToken, user, big.NewInt(0)); err != nil {
		return err
	}
	if err := m.tokens.Transfer(rewardToken, m.addr, user, accrued); err != nil {
		return err
	}
	m.journal.Emit(m.addr, EventRewardPaid, now, &RewardPaidEvent{Account: user, Token: rewardToken, Amount: accrued})
	metricRewardPaidCount().AddWithLabel(1, map[string]string{"token": rewardToken.String()})
	return nil
}

//
// Governance
//

// InitializeStakingToken binds the staking asset once. The manager may be
// constructed before its staking asset exists, to break the circular
// dependency at deployment time.
func (m *Manager) InitializeStakingToken(actor, asset summer.Address, now uint64) error {
	return m.run(func() error {
		if err := m.params.CheckGovernor(actor); err != nil {
			return err
		}
		if _, ok := m.store.StakingToken(); ok {
			return ErrStakingTokenAlreadySet
		}
		if _, err := m.tokens.Get(asset); err != nil {
			return err
		}
		m.store.SetStakingToken(asset)
		m.journal.Emit(m.addr, EventStakingTokenInitialized, now, &StakingTokenInitializedEvent{Token: asset})
		logger.Info("staking token initialized", "token", asset)
		return nil
	})
}

// NotifyRewardAmount funds a stream of rewardToken: amount over duration.
// A first funding registers the token and fixes its duration; top-ups
// mid-stream fold the unspent leftover into the new rate. The new stream
// must be fully collateralized by the manager's balance through its end.
func (m *Manager) NotifyRewardAmount(actor, rewardToken summer.Address, amount *big.Int, duration, now uint64) (err error) {
	defer func() { countOp("notify", err) }()
	return m.run(func() error {
		if err := m.params.CheckGovernor(actor); err != nil {
			return err
		}
		if err := m.updateReward(nil, now); err != nil {
			return err
		}
		if duration == 0 {
			return ErrRewardsDurationCannotBeZero
		}
		record, err := m.store.GetRecord(rewardToken)
		if err != nil {
			return err
		}
		if record.IsEmpty() {
			record.RewardsDuration = duration
			if err := m.store.AppendToken(rewardToken); err != nil {
				return err
			}
		} else if duration != record.RewardsDuration {
			return reverts.Wrap(ErrCannotChangeRewardsDuration, "token %s current %d, got %d", rewardToken, record.RewardsDuration, duration)
		}
		if err := m.tokens.TransferFrom(rewardToken, m.addr, actor, m.addr, amount); err != nil {
			return err
		}
		durationBig := new(big.Int).SetUint64(duration)
		if now >= record.PeriodFinish {
			record.RewardRate = summer.WadDiv(amount, durationBig)
		} else {
			remaining := new(big.Int).SetUint64(record.PeriodFinish - now)
			leftover := summer.WadMul(remaining, record.RewardRate)
			record.RewardRate = summer.WadDiv(new(big.Int).Add(amount, leftover), durationBig)
		}
		balance, err := m.tokens.BalanceOf(rewardToken, m.addr)
		if err != nil {
			return err
		}
		if summer.WadMul(record.RewardRate, durationBig).Cmp(balance) > 0 {
			return reverts.Wrap(ErrProvidedRewardTooHigh, "token %s rate %s over %ds exceeds balance %s", rewardToken, record.RewardRate, duration, balance)
		}
		record.PeriodFinish = now + duration
		record.LastUpdateTime = now
		if err := m.store.SetRecord(rewardToken, record); err != nil {
			return err
		}
		m.journal.Emit(m.addr, EventRewardAdded, now, &RewardAddedEvent{Token: rewardToken, Amount: amount, Duration: duration})
		logger.Info("reward stream funded", "token", rewardToken, "amount", amount, "duration", duration)
		return nil
	})
}

// SetRewardsDuration changes a token's stream duration. Only allowed
// between streams, once the funded period has fully elapsed.
func (m *Manager) SetRewardsDuration(actor, rewardToken summer.Address, duration, now uint64) (err error) {
	defer func() { countOp("set_duration", err) }()
	return m.run(func() error {
		if err := m.params.CheckGovernor(actor); err != nil {
			return err
		}
		if duration == 0 {
			return ErrRewardsDurationCannotBeZero
		}
		record, err := m.store.GetRecord(rewardToken)
		if err != nil {
			return err
		}
		if record.IsEmpty() {
			return reverts.Wrap(ErrRewardTokenDoesNotExist, "token %s", rewardToken)
		}
		if now <= record.PeriodFinish {
			return reverts.Wrap(ErrRewardPeriodNotComplete, "token %s period finishes at %d, now %d", rewardToken, record.PeriodFinish, now)
		}
		record.RewardsDuration = duration
		if err := m.store.SetRecord(rewardToken, record); err != nil {
			return err
		}
		m.journal.Emit(m.addr, EventRewardsDurationUpdated, now, &RewardsDurationUpdatedEvent{Token: rewardToken, Duration: duration})
		return nil
	})
}

// RemoveRewardToken retires a reward token: its stream must have fully
// elapsed and the manager's residual balance must be at or below the dust
// threshold. Per-account reward state is intentionally preserved and
// honored if the token is ever re-registered.
func (m *Manager) RemoveRewardToken(actor, rewardToken summer.Address, now uint64) (err error) {
	defer func() { countOp("remove", err) }()
	return m.run(func() error {
		if err := m.params.CheckGovernor(actor); err != nil {
			return err
		}
		if err := m.updateReward(nil, now); err != nil {
			return err
		}
		record, err := m.store.GetRecord(rewardToken)
		if err != nil {
			return err
		}
		if record.IsEmpty() {
			return reverts.Wrap(ErrRewardTokenDoesNotExist, "token %s", rewardToken)
		}
		if now <= record.PeriodFinish {
			return reverts.Wrap(ErrRewardPeriodNotComplete, "token %s period finishes at %d, now %d", rewardToken, record.PeriodFinish, now)
		}
		balance, err := m.tokens.BalanceOf(rewardToken, m.addr)
		if err != nil {
			return err
		}
		dust, err := m.dustThreshold(rewardToken)
		if err != nil {
			return err
		}
		if balance.Cmp(dust) > 0 {
			return reverts.Wrap(ErrRewardTokenStillHasBalance, "token %s balance %s, dust threshold %s", rewardToken, balance, dust)
		}
		if err := m.store.DeleteRecord(rewardToken); err != nil {
			return err
		}
		if err := m.store.RemoveToken(rewardToken); err != nil {
			return err
		}
		m.journal.Emit(m.addr, EventRewardTokenRemoved, now, &RewardTokenRemovedEvent{Token: rewardToken})
		logger.Info("reward token removed", "token", rewardToken)
		return nil
	})
}

// dustThreshold is 10^-5 of one whole token unit when the asset declares
// its decimals, else the governed fallback (conservative default).
func (m *Manager) dustThreshold(rewardToken summer.Address) (*big.Int, error) {
	decimals, ok, err := m.tokens.Decimals(rewardToken)
	if err != nil {
		return nil, err
	}
	if ok {
		unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
		return unit.Div(unit, summer.DustDivisor), nil
	}
	fallback, err := m.params.Get(summer.KeyDustFallback)
	if err != nil {
		return nil, err
	}
	if fallback.Sign() == 0 {
		fallback = new(big.Int).Set(summer.InitialDustFallback)
	}
	return fallback, nil
}

func (m *Manager) gaugeTotalStaked() {
	if total, err := m.store.totalSupply.Get(); err == nil && total.IsInt64() {
		metricTotalStakedGauge().Set(total.Int64())
	}
}

//
// Getters - no state change
//

// TotalStaked returns the sum of all staked balances.
func (m *Manager) TotalStaked() (*big.Int, error) {
	return m.store.totalSupply.Get()
}

// StakedBalanceOf returns account's staked balance.
func (m *Manager) StakedBalanceOf(account summer.Address) (*big.Int, error) {
	return m.store.GetStakedBalance(account)
}

// StakingToken returns the bound staking asset; ok is false before binding.
func (m *Manager) StakingToken() (summer.Address, bool) {
	return m.store.StakingToken()
}

// RewardTokensLength returns the number of registered reward tokens.
func (m *Manager) RewardTokensLength() (uint64, error) {
	return m.store.TokenCount()
}

// RewardTokenByIndex returns the i-th registered reward token.
func (m *Manager) RewardTokenByIndex(i uint64) (summer.Address, error) {
	return m.store.TokenByIndex(i)
}

// IsRewardToken returns whether the token is currently registered.
func (m *Manager) IsRewardToken(rewardToken summer.Address) (bool, error) {
	record, err := m.store.GetRecord(rewardToken)
	if err != nil {
		return false, err
	}
	return !record.IsEmpty(), nil
}

// RewardData returns the stream state of a registered token.
func (m *Manager) RewardData(rewardToken summer.Address) (*Record, error) {
	record, err := m.store.GetRecord(rewardToken)
	if err != nil {
		return nil, err
	}
	if record.IsEmpty() {
		return nil, reverts.Wrap(ErrRewardTokenDoesNotExist, "token %s", rewardToken)
	}
	return record, nil
}

// Earned returns account's current entitlement for a registered token,
// in actual token units, as of now.
func (m *Manager) Earned(account, rewardToken summer.Address, now uint64) (*big.Int, error) {
	record, err := m.store.GetRecord(rewardToken)
	if err != nil {
		return nil, err
	}
	if record.IsEmpty() {
		return nil, reverts.Wrap(ErrRewardTokenDoesNotExist, "token %s", rewardToken)
	}
	totalSupply, err := m.store.totalSupply.Get()
	if err != nil {
		return nil, err
	}
	balance, err := m.store.GetStakedBalance(account)
	if err != nil {
		return nil, err
	}
	accrued, err := m.store.GetAccrued(rewardToken, account)
	if err != nil {
		return nil, err
	}
	paid, err := m.store.GetUserPaid(rewardToken, account)
	if err != nil {
		return nil, err
	}
	return earnedAmount(balance, rewardPerToken(record, totalSupply, now), paid, accrued), nil
}
