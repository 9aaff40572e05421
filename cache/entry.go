package cache

import (
	"encoding/json"
	"time"
)

// Entry is the stored record. Timestamp and TTL are milliseconds so entries
// written by other clients of the same store stay readable.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl"`
}

func newEntry(data json.RawMessage, now time.Time, ttl time.Duration) Entry {
	return Entry{Data: data, Timestamp: now.UnixMilli(), TTL: ttl.Milliseconds()}
}

func decodeEntry(raw string) (Entry, bool) {
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry{}, false
	}
	if e.Data == nil || e.Timestamp <= 0 || e.TTL < 0 {
		return Entry{}, false
	}
	return e, true
}

// StoredAt is the time the entry was written.
func (e Entry) StoredAt() time.Time { return time.UnixMilli(e.Timestamp) }

// Lifetime is the entry's own TTL.
func (e Entry) Lifetime() time.Duration { return time.Duration(e.TTL) * time.Millisecond }

// Age is the time elapsed since the entry was written.
func (e Entry) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-e.Timestamp) * time.Millisecond
}

// Fresh reports whether now - storedAt <= ttl. The boundary is inclusive.
func (e Entry) Fresh(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp <= e.TTL
}
