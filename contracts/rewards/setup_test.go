// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/events"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/params"
	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/token"
	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

func M(a ...any) []any {
	return a
}

var (
	governor = summer.BytesToAddress([]byte("governor"))
	alice    = summer.BytesToAddress([]byte("alice"))
	bob      = summer.BytesToAddress([]byte("bob"))
	carol    = summer.BytesToAddress([]byte("carol"))

	stakingAsset = summer.BytesToAddress([]byte("sumr"))
	tokenX       = summer.BytesToAddress([]byte("token-x"))
	tokenY       = summer.BytesToAddress([]byte("token-y"))
	tokenZ       = summer.BytesToAddress([]byte("token-z"))
)

const (
	day  = uint64(86400)
	week = 7 * day
	t0   = uint64(1_700_000_000)
)

func wad(n int64) *big.Int {
	return summer.ToWad(big.NewInt(n))
}

type env struct {
	t       *testing.T
	st      *state.State
	journal *events.Journal
	params  *params.Params
	tokens  *token.Registry
	mgr     *Manager
}

// newEnv builds a manager with the staking asset bound, three funded
// stakers and three registered reward assets: X (18 decimals), Y (6
// decimals) and Z, which declares no decimal count at all.
func newEnv(t *testing.T) *env {
	st := state.New()
	journal := events.NewJournal()

	par := params.New(summer.BytesToAddress([]byte("params")), st)
	par.Initialize(governor)

	tokens := token.New(summer.BytesToAddress([]byte("tokens")), st)
	mgr := New(summer.BytesToAddress([]byte("rewards")), st, tokens, par, journal)

	dec18, dec6 := uint8(18), uint8(6)
	require.NoError(t, tokens.Register(stakingAsset, "SUMR", &dec18))
	require.NoError(t, tokens.Register(tokenX, "TKX", &dec18))
	require.NoError(t, tokens.Register(tokenY, "TKY", &dec6))
	require.NoError(t, tokens.Register(tokenZ, "TKZ", nil))

	allowance := new(big.Int).Lsh(big.NewInt(1), 128)
	for _, staker := range []summer.Address{alice, bob, carol} {
		require.NoError(t, tokens.Mint(stakingAsset, staker, wad(1_000_000)))
		require.NoError(t, tokens.Approve(stakingAsset, staker, mgr.Address(), allowance))
	}
	require.NoError(t, tokens.Mint(tokenX, governor, wad(1_000_000)))
	require.NoError(t, tokens.Mint(tokenY, governor, big.NewInt(1_000_000_000_000)))
	require.NoError(t, tokens.Mint(tokenZ, governor, big.NewInt(1_000_000_000_000)))
	for _, asset := range []summer.Address{tokenX, tokenY, tokenZ} {
		require.NoError(t, tokens.Approve(asset, governor, mgr.Address(), allowance))
	}

	require.NoError(t, mgr.InitializeStakingToken(governor, stakingAsset, t0))

	return &env{
		t:       t,
		st:      st,
		journal: journal,
		params:  par,
		tokens:  tokens,
		mgr:     mgr,
	}
}

func (e *env) stake(staker summer.Address, amount *big.Int, now uint64) {
	e.t.Helper()
	require.NoError(e.t, e.mgr.Stake(staker, amount, now))
}

func (e *env) fund(rewardToken summer.Address, amount *big.Int, duration, now uint64) {
	e.t.Helper()
	require.NoError(e.t, e.mgr.NotifyRewardAmount(governor, rewardToken, amount, duration, now))
}

func (e *env) earned(account, rewardToken summer.Address, now uint64) *big.Int {
	e.t.Helper()
	earned, err := e.mgr.Earned(account, rewardToken, now)
	require.NoError(e.t, err)
	return earned
}

func (e *env) balance(asset, holder summer.Address) *big.Int {
	e.t.Helper()
	balance, err := e.tokens.BalanceOf(asset, holder)
	require.NoError(e.t, err)
	return balance
}

func (e *env) paidEvents(rewardToken summer.Address) []events.Event {
	var out []events.Event
	for _, ev := range e.journal.Filter(e.mgr.Address(), EventRewardPaid, 0, 0) {
		if ev.Data.(*RewardPaidEvent).Token == rewardToken {
			out = append(out, ev)
		}
	}
	return out
}

// requireApprox asserts got is within one part in 10^9 of want. The
// accumulator is quantized at totalSupply/1e18 base units per refresh, so
// the tolerance never drops below a few of those quanta.
func requireApprox(t *testing.T, want, got *big.Int) {
	t.Helper()
	diff := new(big.Int).Sub(want, got)
	diff.Abs(diff)
	tolerance := new(big.Int).Div(want, big.NewInt(1_000_000_000))
	if tolerance.Cmp(big.NewInt(3000)) < 0 {
		tolerance = big.NewInt(3000)
	}
	require.True(t, diff.Cmp(tolerance) <= 0, "want %s got %s (diff %s over tolerance %s)", want, got, diff, tolerance)
}
