// Package devices tracks peers seen on the multicast group during a
// running session. Records are never evicted while the session runs;
// liveness is derived from the time since the last receipt.
package devices

import (
	"sort"
	"sync"
	"time"
)

// Device is one snapshot row for a peer.
type Device struct {
	ID               string
	LastMessage      string
	MessageCount     int
	SecondsSinceSeen float64
}

type record struct {
	lastMessage  string
	messageCount int
	lastSeen     time.Time
}

// Table is a concurrent map from peer id to its liveness record.
type Table struct {
	mu      sync.RWMutex
	devices map[string]*record
}

func NewTable() *Table {
	return &Table{
		devices: make(map[string]*record),
	}
}

// Upsert creates or refreshes the record for id. Every receipt counts,
// regardless of message type.
func (t *Table) Upsert(id, text string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, found := t.devices[id]
	if !found {
		rec = &record{}
		t.devices[id] = rec
	}
	rec.lastMessage = text
	rec.messageCount++
	rec.lastSeen = now
}

// Snapshot returns one row per known peer, sorted by id. Each row is
// read atomically; the snapshot as a whole is not a point-in-time view.
func (t *Table) Snapshot(now time.Time) []Device {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Device, 0, len(t.devices))
	for id, rec := range t.devices {
		out = append(out, Device{
			ID:               id,
			LastMessage:      rec.lastMessage,
			MessageCount:     rec.messageCount,
			SecondsSinceSeen: now.Sub(rec.lastSeen).Seconds(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.devices)
}

// Clear drops all records. Called once per session teardown, after both
// I/O loops have stopped.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.devices = make(map[string]*record)
}
