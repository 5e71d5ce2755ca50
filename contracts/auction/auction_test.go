// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	start    = uint64(1_700_000_000)
	duration = uint64(3600)
)

func wad(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestNewValidation(t *testing.T) {
	_, err := New(KindLinear, wad(100), wad(10), start, 0)
	assert.True(t, errors.Is(err, ErrZeroDuration))

	_, err = New(KindLinear, wad(10), wad(100), start, duration)
	assert.True(t, errors.Is(err, ErrInvalidPriceRange))

	_, err = New(KindLinear, wad(100), wad(100), start, duration)
	assert.True(t, errors.Is(err, ErrInvalidPriceRange))

	a, err := New(KindQuadratic, wad(100), wad(10), start, duration)
	require.NoError(t, err)
	assert.Equal(t, KindQuadratic, a.Kind)
}

func TestIsActive(t *testing.T) {
	a, err := New(KindLinear, wad(100), wad(10), start, duration)
	require.NoError(t, err)

	assert.False(t, a.IsActive(start-1))
	assert.True(t, a.IsActive(start))
	assert.True(t, a.IsActive(start+duration-1))
	assert.False(t, a.IsActive(start+duration))
}

func TestLinearDecay(t *testing.T) {
	a, err := New(KindLinear, wad(100), wad(10), start, duration)
	require.NoError(t, err)

	assert.Equal(t, wad(100), a.PriceAt(start-100))
	assert.Equal(t, wad(100), a.PriceAt(start))
	// halfway down the 90-wide range
	assert.Equal(t, wad(55), a.PriceAt(start+duration/2))
	assert.Equal(t, wad(10), a.PriceAt(start+duration))
	assert.Equal(t, wad(10), a.PriceAt(start+duration+100))

	// strictly non-increasing
	prev := a.PriceAt(start)
	for elapsed := uint64(0); elapsed <= duration; elapsed += 300 {
		price := a.PriceAt(start + elapsed)
		assert.True(t, price.Cmp(prev) <= 0)
		prev = price
	}
}

func TestQuadraticDecay(t *testing.T) {
	a, err := New(KindQuadratic, wad(100), wad(10), start, duration)
	require.NoError(t, err)

	assert.Equal(t, wad(100), a.PriceAt(start))
	assert.Equal(t, wad(10), a.PriceAt(start+duration))

	// end + 90 * (1/2)^2 = 32.5
	expected := new(big.Int).Add(wad(10), new(big.Int).Div(wad(90), big.NewInt(4)))
	assert.Equal(t, expected, a.PriceAt(start+duration/2))

	// decays faster than linear early on, easing toward the end
	linear, err := New(KindLinear, wad(100), wad(10), start, duration)
	require.NoError(t, err)
	early := start + duration/10
	assert.True(t, a.PriceAt(early).Cmp(linear.PriceAt(early)) < 0)
	late := start + duration - duration/10
	assert.True(t, a.PriceAt(late).Cmp(linear.PriceAt(late)) < 0)
}

func TestCurveFormulas(t *testing.T) {
	// spot values against the closed-form integer formulas
	assert.Equal(t, big.NewInt(75), LinearPrice(big.NewInt(100), big.NewInt(0), 100, 25))
	assert.Equal(t, big.NewInt(2), LinearPrice(big.NewInt(10), big.NewInt(0), 7, 6))

	assert.Equal(t, big.NewInt(56), QuadraticPrice(big.NewInt(100), big.NewInt(0), 100, 25))
	assert.Equal(t, big.NewInt(3), QuadraticPrice(big.NewInt(10), big.NewInt(0), 7, 3))
}
