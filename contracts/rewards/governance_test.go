// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/params"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

func TestNotifyRewardAmount(t *testing.T) {
	e := newEnv(t)

	err := e.mgr.NotifyRewardAmount(alice, tokenX, wad(100), week, t0)
	assert.True(t, errors.Is(err, params.ErrNotGovernor))

	err = e.mgr.NotifyRewardAmount(governor, tokenX, wad(100), 0, t0)
	assert.True(t, errors.Is(err, ErrRewardsDurationCannotBeZero))

	e.fund(tokenX, wad(100), week, t0)

	assert.Equal(t, M(true, nil), M(e.mgr.IsRewardToken(tokenX)))
	assert.Equal(t, M(uint64(1), nil), M(e.mgr.RewardTokensLength()))
	assert.Equal(t, M(tokenX, nil), M(e.mgr.RewardTokenByIndex(0)))
	assert.Equal(t, wad(100), e.balance(tokenX, e.mgr.Address()))

	record, err := e.mgr.RewardData(tokenX)
	require.NoError(t, err)
	assert.Equal(t, week, record.RewardsDuration)
	assert.Equal(t, t0+week, record.PeriodFinish)
	assert.Equal(t, t0, record.LastUpdateTime)
	assert.Equal(t, summer.WadDiv(wad(100), new(big.Int).SetUint64(week)), record.RewardRate)

	added := e.journal.Filter(e.mgr.Address(), EventRewardAdded, 0, 0)
	require.Len(t, added, 1)
	assert.Equal(t, &RewardAddedEvent{Token: tokenX, Amount: wad(100), Duration: week}, added[0].Data)
}

func TestNotifyTopUpFoldsLeftover(t *testing.T) {
	e := newEnv(t)
	e.stake(alice, wad(1000), t0)
	e.fund(tokenX, wad(100), week, t0)

	// half spent, half left over; the top-up restarts a full period
	half := t0 + week/2
	e.fund(tokenX, wad(100), week, half)

	record, err := e.mgr.RewardData(tokenX)
	require.NoError(t, err)
	assert.Equal(t, half+week, record.PeriodFinish)
	assert.Equal(t, half, record.LastUpdateTime)

	// the full 200 streams out by the new finish
	requireApprox(t, wad(200), e.earned(alice, tokenX, half+week))
}

func TestNotifyDurationLockedMidStream(t *testing.T) {
	e := newEnv(t)
	e.fund(tokenX, wad(100), week, t0)

	err := e.mgr.NotifyRewardAmount(governor, tokenX, wad(100), day, t0+day)
	assert.True(t, errors.Is(err, ErrCannotChangeRewardsDuration))

	// same duration is always fine
	e.fund(tokenX, wad(50), week, t0+day)
}

func TestSetRewardsDuration(t *testing.T) {
	e := newEnv(t)
	e.fund(tokenX, wad(100), week, t0)

	err := e.mgr.SetRewardsDuration(alice, tokenX, day, t0+week+1)
	assert.True(t, errors.Is(err, params.ErrNotGovernor))

	err = e.mgr.SetRewardsDuration(governor, tokenX, 0, t0+week+1)
	assert.True(t, errors.Is(err, ErrRewardsDurationCannotBeZero))

	err = e.mgr.SetRewardsDuration(governor, tokenY, day, t0+week+1)
	assert.True(t, errors.Is(err, ErrRewardTokenDoesNotExist))

	// locked through the very last second of the stream
	err = e.mgr.SetRewardsDuration(governor, tokenX, day, t0+day)
	assert.True(t, errors.Is(err, ErrRewardPeriodNotComplete))
	err = e.mgr.SetRewardsDuration(governor, tokenX, day, t0+week)
	assert.True(t, errors.Is(err, ErrRewardPeriodNotComplete))

	require.NoError(t, e.mgr.SetRewardsDuration(governor, tokenX, day, t0+week+1))
	record, err := e.mgr.RewardData(tokenX)
	require.NoError(t, err)
	assert.Equal(t, day, record.RewardsDuration)

	updated := e.journal.Filter(e.mgr.Address(), EventRewardsDurationUpdated, 0, 0)
	require.Len(t, updated, 1)
	assert.Equal(t, &RewardsDurationUpdatedEvent{Token: tokenX, Duration: day}, updated[0].Data)

	// the next stream runs at the new duration
	e.fund(tokenX, wad(100), day, t0+week+2)
}

func TestNotifyRejectsUndercollateralizedStream(t *testing.T) {
	e := newEnv(t)
	e.stake(alice, wad(1000), t0)
	e.fund(tokenX, wad(100), week, t0)

	// drain most of the collateral out from under the running stream
	require.NoError(t, e.tokens.Transfer(tokenX, e.mgr.Address(), carol, wad(90)))

	before, err := e.mgr.RewardData(tokenX)
	require.NoError(t, err)

	err = e.mgr.NotifyRewardAmount(governor, tokenX, wad(1), week, t0+week/2)
	assert.True(t, errors.Is(err, ErrProvidedRewardTooHigh))

	// the failed top-up pulled nothing and changed nothing
	assert.Equal(t, wad(10), e.balance(tokenX, e.mgr.Address()))
	after, err := e.mgr.RewardData(tokenX)
	require.NoError(t, err)
	assert.Equal(t, before.PeriodFinish, after.PeriodFinish)
	assert.Equal(t, before.RewardRate, after.RewardRate)
}

func TestRemoveRewardToken(t *testing.T) {
	e := newEnv(t)
	e.stake(alice, wad(1000), t0)
	e.fund(tokenX, wad(100), week, t0)

	err := e.mgr.RemoveRewardToken(alice, tokenX, t0+week+1)
	assert.True(t, errors.Is(err, params.ErrNotGovernor))

	err = e.mgr.RemoveRewardToken(governor, tokenY, t0+week+1)
	assert.True(t, errors.Is(err, ErrRewardTokenDoesNotExist))

	// locked through the very last second of the stream
	err = e.mgr.RemoveRewardToken(governor, tokenX, t0+day)
	assert.True(t, errors.Is(err, ErrRewardPeriodNotComplete))
	err = e.mgr.RemoveRewardToken(governor, tokenX, t0+week)
	assert.True(t, errors.Is(err, ErrRewardPeriodNotComplete))

	// unclaimed rewards still sit in custody, far above the dust threshold
	err = e.mgr.RemoveRewardToken(governor, tokenX, t0+week+1)
	assert.True(t, errors.Is(err, ErrRewardTokenStillHasBalance))

	// once claimed only integer-division dust remains
	require.NoError(t, e.mgr.GetReward(alice, t0+week+1))
	require.NoError(t, e.mgr.RemoveRewardToken(governor, tokenX, t0+week+1))

	assert.Equal(t, M(false, nil), M(e.mgr.IsRewardToken(tokenX)))
	assert.Equal(t, M(uint64(0), nil), M(e.mgr.RewardTokensLength()))
	_, err = e.mgr.RewardData(tokenX)
	assert.True(t, errors.Is(err, ErrRewardTokenDoesNotExist))
	_, err = e.mgr.Earned(alice, tokenX, t0+week+1)
	assert.True(t, errors.Is(err, ErrRewardTokenDoesNotExist))

	removed := e.journal.Filter(e.mgr.Address(), EventRewardTokenRemoved, 0, 0)
	require.Len(t, removed, 1)
	assert.Equal(t, &RewardTokenRemovedEvent{Token: tokenX}, removed[0].Data)

	// a retired token can come back, even at a different duration
	e.fund(tokenX, wad(10), day, t0+2*week)
	record, err := e.mgr.RewardData(tokenX)
	require.NoError(t, err)
	assert.Equal(t, day, record.RewardsDuration)
}

func TestRemoveKeepsEnumerationDense(t *testing.T) {
	e := newEnv(t)
	e.stake(alice, wad(1000), t0)

	// amounts chosen to stream out without division dust
	e.fund(tokenX, big.NewInt(60_480_000), week, t0)
	e.fund(tokenY, big.NewInt(60_480_000), week, t0)
	e.fund(tokenZ, big.NewInt(60_480_000), week, t0)

	require.NoError(t, e.mgr.GetReward(alice, t0+week+1))
	require.NoError(t, e.mgr.RemoveRewardToken(governor, tokenX, t0+week+1))

	assert.Equal(t, M(uint64(2), nil), M(e.mgr.RewardTokensLength()))
	var listed []summer.Address
	for i := uint64(0); i < 2; i++ {
		tk, err := e.mgr.RewardTokenByIndex(i)
		require.NoError(t, err)
		listed = append(listed, tk)
	}
	assert.ElementsMatch(t, []summer.Address{tokenY, tokenZ}, listed)

	_, err := e.mgr.RewardTokenByIndex(2)
	assert.True(t, errors.Is(err, ErrIndexOutOfBounds))

	// the moved token can still be removed through its updated index
	require.NoError(t, e.mgr.RemoveRewardToken(governor, tokenZ, t0+week+2))
	assert.Equal(t, M(uint64(1), nil), M(e.mgr.RewardTokensLength()))
	assert.Equal(t, M(tokenY, nil), M(e.mgr.RewardTokenByIndex(0)))
}

func TestDustFallbackForAssetWithoutDecimals(t *testing.T) {
	e := newEnv(t)
	e.stake(alice, wad(1000), t0)
	e.fund(tokenZ, big.NewInt(60_480_000), week, t0)
	require.NoError(t, e.mgr.GetReward(alice, t0+week+1))

	// residue above the conservative fallback of 10 base units
	require.NoError(t, e.tokens.Mint(tokenZ, e.mgr.Address(), big.NewInt(11)))
	err := e.mgr.RemoveRewardToken(governor, tokenZ, t0+week+1)
	assert.True(t, errors.Is(err, ErrRewardTokenStillHasBalance))

	// the governed fallback can widen the tolerance
	require.NoError(t, e.params.Set(governor, summer.KeyDustFallback, big.NewInt(100)))
	require.NoError(t, e.mgr.RemoveRewardToken(governor, tokenZ, t0+week+1))
}

func TestAccruedSurvivesRemovalAndReRegistration(t *testing.T) {
	e := newEnv(t)
	e.stake(alice, wad(1000), t0)

	// a small stream whose unclaimed total stays under the dust threshold
	small := big.NewInt(5_000_000_000_000)
	e.fund(tokenX, small, week, t0)

	// a later stake snapshots alice's accrued entitlement
	e.stake(alice, big.NewInt(1), t0+week)
	entitled := e.earned(alice, tokenX, t0+week)
	requireApprox(t, small, entitled)

	require.NoError(t, e.mgr.RemoveRewardToken(governor, tokenX, t0+week+1))

	// once the token is funded again the old entitlement is claimable
	e.fund(tokenX, wad(100), week, t0+week+2)
	require.NoError(t, e.mgr.GetRewardToken(alice, tokenX, t0+week+2))
	assert.Equal(t, entitled, e.balance(tokenX, alice))
}
