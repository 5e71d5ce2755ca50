// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OasisDEX/summer-earn-protocol-sub010/state"
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

var (
	governor = summer.BytesToAddress([]byte("governor"))
	stranger = summer.BytesToAddress([]byte("stranger"))
)

func newParams() *Params {
	p := New(summer.BytesToAddress([]byte("params")), state.New())
	p.Initialize(governor)
	return p
}

func TestGovernor(t *testing.T) {
	p := newParams()

	assert.Equal(t, governor, p.Governor())
	assert.NoError(t, p.CheckGovernor(governor))

	err := p.CheckGovernor(stranger)
	assert.True(t, errors.Is(err, ErrNotGovernor))
}

func TestSetGovernor(t *testing.T) {
	p := newParams()

	err := p.SetGovernor(stranger, stranger)
	assert.True(t, errors.Is(err, ErrNotGovernor))
	assert.Equal(t, governor, p.Governor())

	require.NoError(t, p.SetGovernor(governor, stranger))
	assert.Equal(t, stranger, p.Governor())
	assert.NoError(t, p.CheckGovernor(stranger))
	assert.True(t, errors.Is(p.CheckGovernor(governor), ErrNotGovernor))
}

func TestGetSet(t *testing.T) {
	p := newParams()

	// unset parameters read as zero
	assert.Equal(t, M(big.NewInt(0), nil), M(p.Get(summer.KeyDustFallback)))

	err := p.Set(stranger, summer.KeyDustFallback, big.NewInt(100))
	assert.True(t, errors.Is(err, ErrNotGovernor))

	require.NoError(t, p.Set(governor, summer.KeyDustFallback, big.NewInt(100)))
	assert.Equal(t, M(big.NewInt(100), nil), M(p.Get(summer.KeyDustFallback)))
}

func M(a ...any) []any {
	return a
}
