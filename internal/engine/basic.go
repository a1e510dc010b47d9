package engine

import (
	"context"

	"github.com/set-challenge/internal/statistics"
	"github.com/set-challenge/pkg/cards"
	"github.com/set-challenge/pkg/combin"
)

// basicEngine is the single-threaded reference implementation: it
// enumerates every candidate deck lexicographically and counts each
// one. It exists to pin down the semantics the incremental engine must
// reproduce, and stays usable for small deck sizes.
type basicEngine struct {
	req     Request
	cfg     Config
	tracker *statistics.Tracker
}

func newBasicEngine(req Request, cfg Config) *basicEngine {
	return &basicEngine{req: req, cfg: cfg, tracker: statistics.NewTracker(cfg.Clock)}
}

func (e *basicEngine) Name() string {
	return string(AlgorithmBasic)
}

func (e *basicEngine) Tracker() *statistics.Tracker {
	return e.tracker
}

func (e *basicEngine) Count(ctx context.Context) (int64, error) {
	ctx, span := startSpan(ctx, e.Name(), e.req, 1)
	defer span.End()

	pool := candidatePool(e.req.Include, e.req.Exclude)
	pickLen := e.req.DeckSize - len(e.req.Include)
	if pickLen > len(pool) {
		return 0, nil
	}

	e.cfg.Logger.Debug("basic engine: %d candidates of size %d", combin.Count(len(pool), pickLen), e.req.DeckSize)

	// Candidates share one buffer: the include prefix stays in place,
	// the enumerator refills the tail pick by pick.
	candidate := make([]cards.Card, e.req.DeckSize)
	copy(candidate, e.req.Include)
	gen, err := combin.NewGeneratorWithBuffer(pool, pickLen, candidate[len(e.req.Include):])
	if err != nil {
		return 0, err
	}

	var noSet int64
	for gen.Next() {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return 0, canceled(err)
		}
		tested, sets := cards.CountSets(candidate, true)
		counted := tested > 0 && sets == 0
		reportDeck(e.tracker, e.cfg.Observer, candidate, tested, sets, counted)
		if counted {
			noSet++
		}
	}
	return noSet, nil
}
