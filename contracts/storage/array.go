// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// ErrIndexOutOfBounds is returned when an array element index is not less
// than the array length.
var ErrIndexOutOfBounds = errors.New("index out of bounds")

// Array is a dense storage array, similar to a dynamic array in Solidity.
// The length lives at the base position, element i at a slot derived from
// the base position and i. Removal is swap-remove, iteration order is not
// stable across removals.
type Array[V any] struct {
	context *Context
	basePos summer.Bytes32
}

// NewArray creates an array rooted at pos.
func NewArray[V any](context *Context, pos summer.Bytes32) *Array[V] {
	return &Array[V]{context: context, basePos: pos}
}

func (a *Array[V]) elemPos(i uint64) summer.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	return summer.Blake2b(a.basePos.Bytes(), b[:])
}

// Len returns the number of elements.
func (a *Array[V]) Len() (uint64, error) {
	word := a.context.state.GetStorage(a.context.address, a.basePos)
	return binary.BigEndian.Uint64(word[24:]), nil
}

func (a *Array[V]) setLen(n uint64) {
	var word summer.Bytes32
	binary.BigEndian.PutUint64(word[24:], n)
	a.context.state.SetStorage(a.context.address, a.basePos, word)
}

// Get returns the i-th element. Fails with ErrIndexOutOfBounds if i >= Len.
func (a *Array[V]) Get(i uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if i >= n {
		return value, ErrIndexOutOfBounds
	}
	err = a.context.state.DecodeStorage(a.context.address, a.elemPos(i), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Append adds value at the end of the array.
func (a *Array[V]) Append(value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.set(n, value); err != nil {
		return err
	}
	a.setLen(n + 1)
	return nil
}

func (a *Array[V]) set(i uint64, value V) error {
	return a.context.state.EncodeStorage(a.context.address, a.elemPos(i), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (a *Array[V]) clear(i uint64) error {
	return a.context.state.EncodeStorage(a.context.address, a.elemPos(i), func() ([]byte, error) {
		return nil, nil
	})
}

// SwapRemove removes the i-th element by moving the last element into its
// place and shrinking the array. It returns the element that was moved into
// slot i, if any.
func (a *Array[V]) SwapRemove(i uint64) (moved *V, err error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	if i >= n {
		return nil, ErrIndexOutOfBounds
	}
	last := n - 1
	if i != last {
		value, err := a.Get(last)
		if err != nil {
			return nil, err
		}
		if err := a.set(i, value); err != nil {
			return nil, err
		}
		moved = &value
	}
	if err := a.clear(last); err != nil {
		return nil, err
	}
	a.setLen(last)
	return moved, nil
}

// Iter walks the array in index order, stopping at the first callback error.
func (a *Array[V]) Iter(callback func(i uint64, value V) error) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		value, err := a.Get(i)
		if err != nil {
			return err
		}
		if err := callback(i, value); err != nil {
			return err
		}
	}
	return nil
}
