// Package statistics accumulates per-run search statistics: deck and
// triple counters for the periodic status line, the per-deck-size
// breakdown, and the longest no-Set deck seen.
package statistics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/set-challenge/pkg/cards"
	"github.com/set-challenge/pkg/utils"
)

// Tracker collects statistics for one engine run. Records come from the
// single coordinating goroutine; Snapshot may be called concurrently
// (e.g. by a status ticker).
type Tracker struct {
	clock utils.Clock
	start time.Time

	decksAnalyzed atomic.Int64
	triplesTested atomic.Int64
	setsFound     atomic.Int64
	decksNoSet    atomic.Int64

	mu          sync.Mutex
	noSetBySize [cards.PackSize + 1]int64
	longest     []cards.Card
}

// NewTracker creates a tracker. A nil clock means the real clock.
func NewTracker(clock utils.Clock) *Tracker {
	if clock == nil {
		clock = utils.NewRealClock()
	}
	return &Tracker{clock: clock, start: clock.Now()}
}

// Record accounts one evaluated deck. noSetAtTarget marks a deck of the
// target size that contains no Set (the quantity the run is counting).
func (t *Tracker) Record(deck []cards.Card, tested, sets int64, noSetAtTarget bool) {
	t.decksAnalyzed.Add(1)
	t.triplesTested.Add(tested)
	t.setsFound.Add(sets)
	if noSetAtTarget {
		t.decksNoSet.Add(1)
	}

	if sets != 0 || len(deck) > cards.PackSize {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.noSetBySize[len(deck)]++
	if len(deck) > len(t.longest) {
		t.longest = append([]cards.Card(nil), deck...)
	}
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	Elapsed       time.Duration
	DecksAnalyzed int64
	TriplesTested int64
	SetsFound     int64
	DecksNoSet    int64
	TriplesPerSec float64
}

// Snapshot returns the current counter values. Safe for concurrent use
// with Record.
func (t *Tracker) Snapshot() Snapshot {
	elapsed := t.clock.Since(t.start)
	triples := t.triplesTested.Load()
	s := Snapshot{
		Elapsed:       elapsed,
		DecksAnalyzed: t.decksAnalyzed.Load(),
		TriplesTested: triples,
		SetsFound:     t.setsFound.Load(),
		DecksNoSet:    t.decksNoSet.Load(),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		s.TriplesPerSec = float64(triples) / secs
	}
	return s
}

// NoSetBySize returns the count of evaluated no-Set decks per deck size.
// Index i holds the count for size-i decks.
func (t *Tracker) NoSetBySize() []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int64, len(t.noSetBySize))
	copy(out, t.noSetBySize[:])
	return out
}

// Longest returns a copy of the longest no-Set deck seen, or nil.
func (t *Tracker) Longest() []cards.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.longest == nil {
		return nil
	}
	return append([]cards.Card(nil), t.longest...)
}
