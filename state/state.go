// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides the in-process account storage shared by the
// protocol contracts. Values are raw byte strings addressed by
// (contract address, storage key). Every write is journaled so that a
// whole operation can be reverted to a prior checkpoint, which gives the
// all-or-nothing semantics the claim protocol relies on.
package state

import (
	"github.com/holiman/uint256"

	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

type storageKey struct {
	addr summer.Address
	key  summer.Bytes32
}

type journalEntry struct {
	key     storageKey
	prev    []byte
	existed bool
}

// State is the root storage of all protocol contracts. It is not safe for
// concurrent use; operations are serialized by the hosting environment.
type State struct {
	kv          map[storageKey][]byte
	journal     []journalEntry
	checkpoints []int
}

// New creates an empty state.
func New() *State {
	return &State{kv: make(map[storageKey][]byte)}
}

// GetRawStorage returns the raw value stored at (addr, key), nil if unset.
func (s *State) GetRawStorage(addr summer.Address, key summer.Bytes32) []byte {
	return s.kv[storageKey{addr, key}]
}

// SetRawStorage stores the raw value at (addr, key). Empty value deletes the slot.
func (s *State) SetRawStorage(addr summer.Address, key summer.Bytes32, raw []byte) {
	k := storageKey{addr, key}
	prev, existed := s.kv[k]
	s.journal = append(s.journal, journalEntry{key: k, prev: prev, existed: existed})
	if len(raw) == 0 {
		delete(s.kv, k)
		return
	}
	s.kv[k] = raw
}

// GetStorage returns the 32-byte word stored at (addr, key).
func (s *State) GetStorage(addr summer.Address, key summer.Bytes32) summer.Bytes32 {
	raw := s.GetRawStorage(addr, key)
	if len(raw) == 0 {
		return summer.Bytes32{}
	}
	word := new(uint256.Int).SetBytes(raw)
	return summer.Bytes32(word.Bytes32())
}

// SetStorage stores a 32-byte word at (addr, key). A zero word deletes the slot.
func (s *State) SetStorage(addr summer.Address, key, value summer.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	word := new(uint256.Int).SetBytes(value.Bytes())
	s.SetRawStorage(addr, key, word.Bytes())
}

// EncodeStorage encodes the value produced by enc into (addr, key).
func (s *State) EncodeStorage(addr summer.Address, key summer.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return err
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage passes the raw value at (addr, key) to dec for decoding.
// dec receives nil when the slot is unset.
func (s *State) DecodeStorage(addr summer.Address, key summer.Bytes32, dec func([]byte) error) error {
	return dec(s.GetRawStorage(addr, key))
}

// NewCheckpoint makes a checkpoint of the current state and returns its
// revision, which can be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	s.checkpoints = append(s.checkpoints, len(s.journal))
	return len(s.checkpoints) - 1
}

// RevertTo reverts all writes made since the given checkpoint revision.
// Checkpoints taken after the revision are discarded.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision >= len(s.checkpoints) {
		return
	}
	mark := s.checkpoints[revision]
	for i := len(s.journal) - 1; i >= mark; i-- {
		e := s.journal[i]
		if e.existed {
			s.kv[e.key] = e.prev
		} else {
			delete(s.kv, e.key)
		}
	}
	s.journal = s.journal[:mark]
	s.checkpoints = s.checkpoints[:revision]
}

// Commit discards checkpoints at and after the given revision, keeping all
// writes. Journal entries older than the earliest live checkpoint can no
// longer be reverted and are dropped.
func (s *State) Commit(revision int) {
	if revision < 0 || revision >= len(s.checkpoints) {
		return
	}
	s.checkpoints = s.checkpoints[:revision]
	if len(s.checkpoints) == 0 {
		s.journal = s.journal[:0]
	}
}
