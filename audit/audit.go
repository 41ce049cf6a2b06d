// Copyright 2025 The govkit Authors
// This file is part of the govkit library.
//
// The govkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govkit library. If not, see <http://www.gnu.org/licenses/>.

// Package audit emits and stores the append-only audit records that every
// state-mutating governance and treasury operation produces. Records are
// never retracted; external indexers consume them in sequence order.
package audit

import (
	"encoding/json"
	"sync"
	"time"
)

// Event kinds emitted by the governance engine and the treasury.
const (
	KindProposalCreated     = "proposal-created"
	KindVoteCast            = "vote-cast"
	KindProposalCanceled    = "proposal-canceled"
	KindProposalExecuted    = "proposal-executed"
	KindConfigUpdated       = "configuration-updated"
	KindFundsSpent          = "funds-spent"
	KindTreasuryFunded      = "treasury-funded"
	KindEmergencyWithdrawal = "emergency-withdrawal"
)

// Event is one append-only audit record.
type Event struct {
	Seq     uint64          `json:"seq"`
	Kind    string          `json:"kind"`
	Time    int64           `json:"time"` // unix seconds at record time
	Payload json.RawMessage `json:"payload"`
}

// Recorder accepts audit events. Recording must never fail the operation
// that produced the event, so implementations swallow storage errors after
// logging them.
type Recorder interface {
	Record(kind string, payload interface{})
}

// NopRecorder discards every event.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(string, interface{}) {}

// MemoryJournal keeps events in memory, for tests and embedded use.
type MemoryJournal struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryJournal returns an empty in-memory journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Record implements Recorder.
func (j *MemoryJournal) Record(kind string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, Event{
		Seq:     uint64(len(j.events) + 1),
		Kind:    kind,
		Time:    time.Now().Unix(),
		Payload: raw,
	})
}

// Events returns a copy of all recorded events in sequence order.
func (j *MemoryJournal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}
