// Package engine implements the no-Set deck counting engines.
//
// Given a target deck size k and optional include/exclude filters, an
// engine counts the k-card subsets of the 81-card pack that contain no
// Set. Two engines share the contract: the basic engine enumerates
// every candidate deck, the incremental engine grows decks depth-first
// and prunes every branch that already contains a Set (a superset of a
// Set-bearing deck can never be Set-free).
package engine

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/set-challenge/internal/statistics"
	"github.com/set-challenge/pkg/cards"
	"github.com/set-challenge/pkg/errors"
	"github.com/set-challenge/pkg/telemetry"
	"github.com/set-challenge/pkg/utils"
)

// Observer receives every deck an engine evaluates, including decks
// smaller than the target size, exactly once per deck. The deck slice
// is only valid for the duration of the call; copy it to retain it.
// Observers are invoked from a single goroutine.
type Observer func(deck []cards.Card, triplesTested, triplesAreSets int64)

// Algorithm selects an engine implementation.
type Algorithm string

// Supported algorithms.
const (
	AlgorithmBasic       Algorithm = "basic"
	AlgorithmIncremental Algorithm = "incremental"
)

// ParseAlgorithm maps a user-supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmBasic, AlgorithmIncremental:
		return Algorithm(s), nil
	default:
		return "", errors.Newf(errors.CodeInvalidArgument, "unknown algorithm %q", s)
	}
}

// DefaultBatchSize is the number of evaluation steps a worker performs
// before yielding to the coordinator. Values between 100 and 10000 are
// reasonable.
const DefaultBatchSize = 800

// DefaultWorkers returns the default worker parallelism, leaving a few
// cores for the coordinator and the rest of the process.
func DefaultWorkers() int {
	if n := runtime.NumCPU() - 4; n > 1 {
		return n
	}
	return 1
}

// Config holds engine tuning and the injected collaborators. The
// observer is fixed at construction time and must not be swapped while
// a run is in flight.
type Config struct {
	// Workers is the parallelism of the incremental engine; 0 means
	// DefaultWorkers().
	Workers int
	// BatchSize bounds a worker batch; 0 means DefaultBatchSize.
	BatchSize int
	// Observer, if non-nil, is invoked for every evaluated deck.
	Observer Observer
	// Logger defaults to a NullLogger.
	Logger utils.Logger
	// Clock feeds the statistics tracker; nil means the real clock.
	Clock utils.Clock
}

// normalized returns a copy of cfg with defaults filled in.
func (c *Config) normalized() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers()
	}
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultBatchSize
	}
	if out.Logger == nil {
		out.Logger = &utils.NullLogger{}
	}
	return out
}

// Engine counts no-Set decks for one request.
type Engine interface {
	// Name returns the algorithm name.
	Name() string

	// Count runs the search and returns the number of decks of the
	// requested size that contain no Set. On cancellation the returned
	// count is meaningless and the error carries the CANCELED code.
	// A result of -1 is reserved for "no definitive answer"; neither
	// built-in engine produces it.
	Count(ctx context.Context) (int64, error)

	// Tracker exposes the run statistics.
	Tracker() *statistics.Tracker
}

// New validates the request and builds the chosen engine.
func New(alg Algorithm, req Request, cfg *Config) (Engine, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	c := cfg.normalized()
	switch alg {
	case AlgorithmBasic:
		return newBasicEngine(req, c), nil
	case AlgorithmIncremental:
		return newIncrementalEngine(req, c), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArgument, "unknown algorithm %q", alg)
	}
}

// Run is the single-call entry point: validate, build, count.
func Run(ctx context.Context, alg Algorithm, req Request, cfg *Config) (int64, error) {
	e, err := New(alg, req, cfg)
	if err != nil {
		return 0, err
	}
	return e.Count(ctx)
}

// startSpan opens the tracing span shared by both engines.
func startSpan(ctx context.Context, alg string, req Request, workers int) (context.Context, oteltrace.Span) {
	return otel.Tracer(telemetry.TracerName).Start(ctx, "engine.count",
		oteltrace.WithAttributes(
			attribute.String("engine.algorithm", alg),
			attribute.Int("engine.deck_size", req.DeckSize),
			attribute.Int("engine.include_size", len(req.Include)),
			attribute.Int("engine.exclude_size", len(req.Exclude)),
			attribute.Int("engine.workers", workers),
		))
}

// reportDeck delivers one evaluated deck to the statistics tracker and
// the observer.
func reportDeck(tracker *statistics.Tracker, observer Observer, deck []cards.Card, tested, sets int64, noSetAtTarget bool) {
	tracker.Record(deck, tested, sets, noSetAtTarget)
	if observer != nil {
		observer(deck, tested, sets)
	}
}

// canceled wraps a context error into the distinguished cancellation
// failure.
func canceled(err error) error {
	return errors.Wrap(errors.CodeCanceled, "search canceled", err)
}
