package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/set-challenge/internal/statistics"
	"github.com/set-challenge/pkg/cards"
)

// incrementalEngine grows decks one card at a time, depth-first across
// parallel workers, and prunes every branch that already contains a
// Set. Each worker evaluates bounded batches against its own queues; a
// single coordinator awaits batches, drains results and invokes the
// observer, so callbacks are totally ordered.
type incrementalEngine struct {
	req     Request
	cfg     Config
	tracker *statistics.Tracker
}

func newIncrementalEngine(req Request, cfg Config) *incrementalEngine {
	return &incrementalEngine{req: req, cfg: cfg, tracker: statistics.NewTracker(cfg.Clock)}
}

func (e *incrementalEngine) Name() string {
	return string(AlgorithmIncremental)
}

func (e *incrementalEngine) Tracker() *statistics.Tracker {
	return e.tracker
}

func (e *incrementalEngine) Count(ctx context.Context) (int64, error) {
	ctx, span := startSpan(ctx, e.Name(), e.req, e.cfg.Workers)
	defer span.End()

	pack := effectivePack(e.req.Include, e.req.Exclude)
	workers := e.seed(pack)
	e.cfg.Logger.Debug("incremental engine: %d effective cards, %d workers, batch size %d",
		len(pack), len(workers), e.cfg.BatchSize)

	count, err := e.coordinate(ctx, workers)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("engine.no_set_count", count))
	return count, nil
}

// seed builds the worker contexts and distributes the initial deck
// nodes round-robin. The base deck is the chain of include cards; if it
// already has the target size it is the run's only candidate, otherwise
// every effective-pack card after the last include seeds one child.
func (e *incrementalEngine) seed(pack []cards.Card) []*workerContext {
	workers := make([]*workerContext, e.cfg.Workers)
	for i := range workers {
		workers[i] = newWorkerContext(i, pack, e.req.DeckSize, e.cfg.BatchSize)
	}

	var base *deckNode
	for pos, c := range e.req.Include {
		base = newChild(base, c, pos)
	}

	if base != nil && int(base.size) == e.req.DeckSize {
		workers[0].push(base)
		return workers
	}

	wi := 0
	for pos := len(e.req.Include); pos < len(pack); pos++ {
		workers[wi].push(newChild(base, pack[pos], pos))
		wi = (wi + 1) % len(workers)
	}
	return workers
}

// coordinate cycles the workers round-robin: await the in-flight batch,
// drain the reported queue, then dispatch a new batch or retire the
// worker. It returns once every worker has retired.
func (e *incrementalEngine) coordinate(ctx context.Context, workers []*workerContext) (int64, error) {
	var noSet int64
	scratch := make([]cards.Card, cards.PackSize)
	retired := make([]bool, len(workers))
	active := len(workers)

	for active > 0 {
		for i, w := range workers {
			if retired[i] {
				continue
			}
			if w.inflight != nil {
				<-w.inflight
				w.inflight = nil
			}
			if err := ctx.Err(); err != nil {
				return 0, canceled(err)
			}

			for _, n := range w.reported {
				deck := n.materialize(scratch)
				counted := int(n.size) == e.req.DeckSize && n.tested > 0 && n.sets == 0
				reportDeck(e.tracker, e.cfg.Observer, deck, n.tested, n.sets, counted)
				if counted {
					noSet++
				}
			}
			clearNodes(w.reported)
			w.reported = w.reported[:0]

			if len(w.pending) > 0 {
				done := make(chan struct{})
				w.inflight = done
				go func(w *workerContext) {
					defer close(done)
					w.runBatch(ctx)
				}(w)
			} else {
				retired[i] = true
				active--
				e.cfg.Logger.Debug("worker %d drained and retired", w.id)
			}
		}
	}
	return noSet, nil
}

// clearNodes drops node references so drained decks become collectable
// even while the slice's backing array is reused.
func clearNodes(nodes []*deckNode) {
	for i := range nodes {
		nodes[i] = nil
	}
}
