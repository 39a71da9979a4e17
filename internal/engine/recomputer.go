package engine

import (
	"context"
	"sync"

	"github.com/guarzo/auctionscope/internal/model"
)

// Recomputer offloads snapshot computation so an interactive caller is
// not blocked on a large listing set. Each Submit captures one
// consistent (listings, spec) pair; results are delivered last-write-
// wins, so a snapshot computed from inputs that have since been
// superseded is silently discarded rather than cancelled.
type Recomputer struct {
	mu      sync.Mutex
	seq     uint64
	latest  uint64
	results chan Snapshot
}

// NewRecomputer creates a recomputer whose Results channel buffers one
// snapshot per pending computation.
func NewRecomputer(buffer int) *Recomputer {
	if buffer <= 0 {
		buffer = 1
	}
	return &Recomputer{
		results: make(chan Snapshot, buffer),
	}
}

// Submit schedules a recompute of all derived views for the given input
// snapshot. The computation runs on its own goroutine; if a newer
// submission finishes first, this one's result is dropped.
func (r *Recomputer) Submit(ctx context.Context, listings []model.Listing, spec model.FilterSpec) {
	r.mu.Lock()
	r.seq++
	id := r.seq
	r.mu.Unlock()

	go func() {
		snap := Compute(listings, spec)

		r.mu.Lock()
		stale := id < r.latest
		if !stale {
			r.latest = id
		}
		r.mu.Unlock()
		if stale {
			return
		}

		select {
		case r.results <- snap:
		case <-ctx.Done():
		}
	}()
}

// Results returns the channel on which fresh snapshots arrive.
func (r *Recomputer) Results() <-chan Snapshot {
	return r.results
}
