// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Key is the constraint for mapping keys.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction similar to the mapping in
// Solidity. Values are RLP encoded; slot positions are derived from the
// key and the mapping's base position.
type Mapping[K Key, V any] struct {
	context *Context
	basePos summer.Bytes32
}

// NewMapping creates a mapping rooted at pos.
func NewMapping[K Key, V any](context *Context, pos summer.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get returns the value stored under key. An unset entry decodes to the
// zero value of V (a fresh instance for pointer types).
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := summer.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		if reflect.ValueOf(&value).Elem().Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores value under key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	position := summer.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry under key, a subsequent Get decodes to zero value.
func (m *Mapping[K, V]) Delete(key K) error {
	position := summer.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return nil, nil
	})
}
