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

package audit

import (
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var eventPrefix = []byte("evt")

// Journal persists audit events to leveldb under monotonically increasing
// sequence keys. The sequence survives restarts.
type Journal struct {
	mu   sync.Mutex
	db   *leveldb.DB
	next uint64
	log  *logrus.Logger
}

// OpenJournal opens (or creates) a journal at the given path.
func OpenJournal(path string, logger *logrus.Logger) (*Journal, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}
	j := &Journal{db: db, next: 1, log: logger}

	// Recover the next sequence number from the highest stored key.
	iter := db.NewIterator(util.BytesPrefix(eventPrefix), nil)
	if iter.Last() {
		j.next = decodeSeq(iter.Key()) + 1
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Record implements Recorder. Storage failures are logged, not propagated:
// a lost audit record must not abort the operation that produced it.
func (j *Journal) Record(kind string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		j.log.WithError(err).WithField("kind", kind).Error("audit: encode event")
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	ev := Event{
		Seq:     j.next,
		Kind:    kind,
		Time:    time.Now().Unix(),
		Payload: raw,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		j.log.WithError(err).WithField("kind", kind).Error("audit: encode record")
		return
	}
	if err := j.db.Put(encodeSeq(ev.Seq), data, nil); err != nil {
		j.log.WithError(err).WithField("kind", kind).Error("audit: persist record")
		return
	}
	j.next++
}

// Events reads up to limit events starting at sequence from (inclusive).
// A limit of 0 means no limit.
func (j *Journal) Events(from uint64, limit int) ([]Event, error) {
	iter := j.db.NewIterator(util.BytesPrefix(eventPrefix), nil)
	defer iter.Release()

	var out []Event
	for ok := iter.Seek(encodeSeq(from)); ok; ok = iter.Next() {
		var ev Event
		if err := json.Unmarshal(iter.Value(), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, iter.Error()
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func encodeSeq(seq uint64) []byte {
	key := make([]byte, len(eventPrefix)+8)
	copy(key, eventPrefix)
	binary.BigEndian.PutUint64(key[len(eventPrefix):], seq)
	return key
}

func decodeSeq(key []byte) uint64 {
	if len(key) != len(eventPrefix)+8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[len(eventPrefix):])
}
