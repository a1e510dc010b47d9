package engine

import (
	"context"

	"github.com/set-challenge/pkg/cards"
)

// workerContext owns one worker's share of the search. Only the worker
// goroutine touches it while a batch is in flight; the coordinator
// reads and refills it strictly between batches.
type workerContext struct {
	id int

	// pack is the shared effective pack, immutable during a run.
	pack     []cards.Card
	deckSize int
	batch    int

	// pending is a LIFO stack of deck nodes awaiting evaluation. Popping
	// the back grows the deepest deck first, which bounds the stack:
	// decks reaching the target size drain instead of fanning out.
	pending []*deckNode

	// reported collects nodes awaiting observer notification.
	reported []*deckNode

	// scratch holds materialized card sequences during evaluation.
	scratch []cards.Card

	// inflight is closed by the worker when the dispatched batch ends;
	// nil when no batch is running.
	inflight chan struct{}
}

func newWorkerContext(id int, pack []cards.Card, deckSize, batch int) *workerContext {
	return &workerContext{
		id:       id,
		pack:     pack,
		deckSize: deckSize,
		batch:    batch,
		scratch:  make([]cards.Card, cards.PackSize),
	}
}

func (w *workerContext) push(n *deckNode) {
	w.pending = append(w.pending, n)
}

// runBatch performs up to batch evaluation steps: pop the deepest
// pending node, count its triples (short-circuiting at the first Set),
// extend it if it can still grow Set-free, and queue it for reporting.
// Cancellation is honored at the batch boundary; a started batch runs
// to completion.
func (w *workerContext) runBatch(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	for steps := 0; steps < w.batch && len(w.pending) > 0; steps++ {
		n := w.pending[len(w.pending)-1]
		w.pending[len(w.pending)-1] = nil
		w.pending = w.pending[:len(w.pending)-1]

		if n.tested == unevaluated {
			deck := n.materialize(w.scratch)
			n.tested, n.sets = cards.CountSets(deck, true)
		}

		// Extend only Set-free decks below the target size. The
		// tested == 0 clause admits decks too small to form a triple.
		if int(n.size) < w.deckSize && (n.sets == 0 || n.tested == 0) {
			for p := int(n.pos) + 1; p < len(w.pack); p++ {
				w.push(newChild(n, w.pack[p], p))
			}
		}

		w.reported = append(w.reported, n)
	}
}
