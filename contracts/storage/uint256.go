// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"bytes"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Uint256 is a wrapper for storage and retrieval of an uint256, similar to
// storing an uint256 in a smart contract. Values must fit in 256 bits.
type Uint256 struct {
	context *Context
	pos     summer.Bytes32
}

// NewUint256 creates a scalar slot at pos.
func NewUint256(context *Context, pos summer.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

// Get returns the stored value, zero if unset.
func (u *Uint256) Get() (*big.Int, error) {
	word := u.context.state.GetStorage(u.context.address, u.pos)
	return new(big.Int).SetBytes(bytes.TrimLeft(word.Bytes(), "\x00")), nil
}

// Set stores the value.
func (u *Uint256) Set(value *big.Int) error {
	word, overflow := uint256.FromBig(value)
	if overflow {
		return errors.New("value exceeds 256 bits")
	}
	u.context.state.SetStorage(u.context.address, u.pos, summer.Bytes32(word.Bytes32()))
	return nil
}

// Add increases the stored value by delta.
func (u *Uint256) Add(delta *big.Int) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	value.Add(value, delta)
	return u.Set(value)
}

// Sub decreases the stored value by delta.
func (u *Uint256) Sub(delta *big.Int) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	value.Sub(value, delta)
	if value.Sign() < 0 {
		return errors.New("uint256 underflow")
	}
	return u.Set(value)
}
