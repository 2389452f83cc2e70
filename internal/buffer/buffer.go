// Package buffer keeps the most recently received packet records in
// memory so the API server can answer trailing-window summary requests
// from a live feed. Retention is bounded by age and by count; the
// aggregation itself stays pure and reads a copied slice.
package buffer

import (
	"NetGlance/internal/model"
	"context"
	"sync"
	"time"
)

type entry struct {
	at  time.Time
	pkt model.Packet
}

// Buffer is a bounded, arrival-ordered store of packet records.
// Safe for concurrent Add and FetchNetworkData calls.
type Buffer struct {
	mu         sync.Mutex
	entries    []entry
	maxAge     time.Duration
	maxPackets int
	now        func() time.Time
}

// New creates a buffer retaining at most maxPackets records no older
// than maxAge.
func New(maxAge time.Duration, maxPackets int) *Buffer {
	return &Buffer{
		maxAge:     maxAge,
		maxPackets: maxPackets,
		now:        time.Now,
	}
}

// Add records a packet with the current arrival time and prunes
// anything that fell out of retention.
func (b *Buffer) Add(p model.Packet) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry{at: b.now(), pkt: p})
	b.prune()
}

// Len returns the number of retained records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// FetchNetworkData returns the packets received within the trailing
// windowSeconds, in arrival order. It implements model.PacketSource.
// The context is accepted for interface symmetry; the lookup is purely
// in-memory and never blocks on I/O.
func (b *Buffer) FetchNetworkData(_ context.Context, windowSeconds int) ([]model.Packet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-time.Duration(windowSeconds) * time.Second)
	var packets []model.Packet
	for _, e := range b.entries {
		if e.at.Before(cutoff) {
			continue
		}
		packets = append(packets, e.pkt)
	}
	return packets, nil
}

// prune drops entries beyond the count bound or older than maxAge.
// Caller must hold the mutex.
func (b *Buffer) prune() {
	if n := len(b.entries) - b.maxPackets; n > 0 {
		b.entries = b.entries[n:]
	}
	cutoff := b.now().Add(-b.maxAge)
	firstLive := 0
	for firstLive < len(b.entries) && b.entries[firstLive].at.Before(cutoff) {
		firstLive++
	}
	if firstLive > 0 {
		b.entries = b.entries[firstLive:]
	}
}
