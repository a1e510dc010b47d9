package utils

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// PhaseTimer records named, ordered phases of a run for verbose
// breakdowns (seeding, search, drain).
type PhaseTimer struct {
	mu     sync.Mutex
	clock  Clock
	phases []phase
}

type phase struct {
	name     string
	start    time.Time
	duration time.Duration
	open     bool
}

// NewPhaseTimer creates a PhaseTimer using the given clock (nil means
// the real clock).
func NewPhaseTimer(clock Clock) *PhaseTimer {
	if clock == nil {
		clock = NewRealClock()
	}
	return &PhaseTimer{clock: clock}
}

// Start opens a new phase and returns a function that closes it. Typical
// use: defer t.Start("seed")().
func (t *PhaseTimer) Start(name string) func() {
	t.mu.Lock()
	t.phases = append(t.phases, phase{name: name, start: t.clock.Now(), open: true})
	i := len(t.phases) - 1
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			t.phases[i].duration = t.clock.Since(t.phases[i].start)
			t.phases[i].open = false
			t.mu.Unlock()
		})
	}
}

// Duration returns the recorded duration of the named phase, or zero if
// the phase was never closed.
func (t *PhaseTimer) Duration(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.phases {
		if p.name == name && !p.open {
			return p.duration
		}
	}
	return 0
}

// Summary renders all closed phases in start order.
func (t *PhaseTimer) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var b strings.Builder
	for _, p := range t.phases {
		if p.open {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", p.name, p.duration.Round(time.Millisecond))
	}
	return b.String()
}
