// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"
)

// Record is the per-token stream state. A token is registered iff its
// RewardsDuration is non-zero: it has been funded at least once and not
// subsequently removed.
type Record struct {
	RewardsDuration      uint64   // length in seconds of the current/most-recent stream
	PeriodFinish         uint64   // timestamp at which the funded stream ends
	LastUpdateTime       uint64   // timestamp through which RewardPerTokenStored is valid
	RewardRate           *big.Int // reward units per second, WAD-scaled
	RewardPerTokenStored *big.Int // cumulative reward per staked unit, WAD-scaled
}

// IsEmpty returns whether the entry can be treated as empty.
func (r *Record) IsEmpty() bool {
	return r == nil || r.RewardsDuration == 0
}

// normalize fills nil big fields after decoding an empty slot.
func (r *Record) normalize() *Record {
	if r.RewardRate == nil {
		r.RewardRate = big.NewInt(0)
	}
	if r.RewardPerTokenStored == nil {
		r.RewardPerTokenStored = big.NewInt(0)
	}
	return r
}
