// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package auction implements Dutch-auction price decay used when selling
// harvested reward assets. Prices are WAD-scaled integers; all math is
// integer-only with division rounding down.
package auction

import (
	"math/big"

	"github.com/OasisDEX/summer-earn-protocol-sub010/contracts/reverts"
)

var (
	ErrInvalidPriceRange = reverts.New("start price must exceed end price")
	ErrZeroDuration      = reverts.New("auction duration cannot be zero")
)

// Kind selects the decay curve.
type Kind uint8

const (
	KindLinear Kind = iota
	KindQuadratic
)

// Auction is a time-bounded declining-price sale.
type Auction struct {
	StartPrice *big.Int
	EndPrice   *big.Int
	StartTime  uint64
	Duration   uint64
	Kind       Kind
}

// New validates and creates an auction starting at startTime.
func New(kind Kind, startPrice, endPrice *big.Int, startTime, duration uint64) (*Auction, error) {
	if duration == 0 {
		return nil, ErrZeroDuration
	}
	if startPrice.Cmp(endPrice) <= 0 {
		return nil, reverts.Wrap(ErrInvalidPriceRange, "start %s, end %s", startPrice, endPrice)
	}
	return &Auction{
		StartPrice: startPrice,
		EndPrice:   endPrice,
		StartTime:  startTime,
		Duration:   duration,
		Kind:       kind,
	}, nil
}

// IsActive returns whether the auction is still decaying at now.
func (a *Auction) IsActive(now uint64) bool {
	return now >= a.StartTime && now < a.StartTime+a.Duration
}

// PriceAt returns the price at the given time. Before the start the price
// is the start price, after the full duration it stays at the end price.
func (a *Auction) PriceAt(now uint64) *big.Int {
	if now <= a.StartTime {
		return new(big.Int).Set(a.StartPrice)
	}
	elapsed := now - a.StartTime
	if elapsed >= a.Duration {
		return new(big.Int).Set(a.EndPrice)
	}
	switch a.Kind {
	case KindQuadratic:
		return QuadraticPrice(a.StartPrice, a.EndPrice, a.Duration, elapsed)
	default:
		return LinearPrice(a.StartPrice, a.EndPrice, a.Duration, elapsed)
	}
}

// LinearPrice decays from start to end proportionally to elapsed time:
//
//	start - (start-end) * elapsed / duration
func LinearPrice(start, end *big.Int, duration, elapsed uint64) *big.Int {
	diff := new(big.Int).Sub(start, end)
	diff.Mul(diff, new(big.Int).SetUint64(elapsed))
	diff.Div(diff, new(big.Int).SetUint64(duration))
	return diff.Sub(start, diff)
}

// QuadraticPrice decays on a quadratic curve, dropping steeply at first
// and easing towards the end:
//
//	end + (start-end) * (duration-elapsed)^2 / duration^2
func QuadraticPrice(start, end *big.Int, duration, elapsed uint64) *big.Int {
	remaining := new(big.Int).SetUint64(duration - elapsed)
	remaining.Mul(remaining, remaining)
	diff := new(big.Int).Sub(start, end)
	diff.Mul(diff, remaining)
	durationSq := new(big.Int).SetUint64(duration)
	durationSq.Mul(durationSq, durationSq)
	diff.Div(diff, durationSq)
	return diff.Add(end, diff)
}
