// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events collects the events emitted by protocol contracts for
// external observers and indexers. The journal is checkpointed alongside
// state so that a reverted operation leaves no events behind.
package events

import (
	"github.com/OasisDEX/summer-earn-protocol-sub010/summer"
)

// Event is a single emitted protocol event. Data holds the typed payload
// declared by the emitting contract and must be JSON-marshalable.
type Event struct {
	Emitter summer.Address `json:"emitter"`
	Name    string         `json:"name"`
	Seq     uint64         `json:"seq"`
	Time    uint64         `json:"time"`
	Data    any            `json:"data"`
}

// Journal is an append-only in-memory event log. Not safe for concurrent
// writers; reads happen between operations.
type Journal struct {
	events      []Event
	seq         uint64
	checkpoints []int
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Emit appends an event, assigning its sequence number.
func (j *Journal) Emit(emitter summer.Address, name string, time uint64, data any) {
	j.events = append(j.events, Event{
		Emitter: emitter,
		Name:    name,
		Seq:     j.seq,
		Time:    time,
		Data:    data,
	})
	j.seq++
}

// Len returns the number of recorded events.
func (j *Journal) Len() int {
	return len(j.events)
}

// NewCheckpoint marks the current journal position and returns its revision.
func (j *Journal) NewCheckpoint() int {
	j.checkpoints = append(j.checkpoints, len(j.events))
	return len(j.checkpoints) - 1
}

// RevertTo drops all events emitted since the given checkpoint revision.
func (j *Journal) RevertTo(revision int) {
	if revision < 0 || revision >= len(j.checkpoints) {
		return
	}
	mark := j.checkpoints[revision]
	if mark < len(j.events) {
		j.seq = j.events[mark].Seq
		j.events = j.events[:mark]
	}
	j.checkpoints = j.checkpoints[:revision]
}

// Commit discards checkpoints at and after the given revision, keeping
// all events.
func (j *Journal) Commit(revision int) {
	if revision < 0 || revision >= len(j.checkpoints) {
		return
	}
	j.checkpoints = j.checkpoints[:revision]
}

// Filter returns events matching the given criteria. Zero emitter or empty
// name matches everything; from/to bound the sequence range inclusively,
// to == 0 means no upper bound.
func (j *Journal) Filter(emitter summer.Address, name string, from, to uint64) []Event {
	var out []Event
	for _, e := range j.events {
		if !emitter.IsZero() && e.Emitter != emitter {
			continue
		}
		if name != "" && e.Name != name {
			continue
		}
		if e.Seq < from {
			continue
		}
		if to != 0 && e.Seq > to {
			continue
		}
		out = append(out, e)
	}
	return out
}
