package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-challenge/internal/testutil"
	"github.com/set-challenge/pkg/cards"
	"github.com/set-challenge/pkg/combin"
	apperrors "github.com/set-challenge/pkg/errors"
)

func TestBasic_FullPackSize3(t *testing.T) {
	count, err := Run(context.Background(), AlgorithmBasic, Request{DeckSize: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(84240), count)
}

func TestBasic_NinePackSize4(t *testing.T) {
	// Keep only indexes 0,10,...,80 (every card whose index is a
	// multiple of 10) and count 4-card no-Set decks among them.
	req := Request{DeckSize: 4, Exclude: testutil.ExcludeAllBut(t, 0, 10, 20, 30, 40, 50, 60, 70, 80)}
	count, err := Run(context.Background(), AlgorithmBasic, req, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(54), count)
}

func TestBasic_IncludeEqualsDeckSize(t *testing.T) {
	// A Set-free include of full deck size is the single candidate.
	count, err := Run(context.Background(), AlgorithmBasic, Request{
		DeckSize: 3,
		Include:  testutil.Deck(t, 0, 1, 3),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Three includes that form a Set leave nothing to count.
	count, err = Run(context.Background(), AlgorithmBasic, Request{
		DeckSize: 3,
		Include:  testutil.Deck(t, 0, 10, 20),
	}, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBasic_IncludeFormingSetNeverCounts(t *testing.T) {
	// Every candidate contains the Set {0,10,20}, so no deck of any
	// size can be Set-free.
	count, err := Run(context.Background(), AlgorithmBasic, Request{
		DeckSize: 6,
		Include:  testutil.Deck(t, 0, 10, 20),
	}, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBasic_FullPackSingleCandidate(t *testing.T) {
	// deck_size 81 admits exactly one candidate, the whole pack, which
	// is full of Sets.
	observed := 0
	cfg := &Config{Observer: func(deck []cards.Card, tested, sets int64) {
		observed++
		assert.Len(t, deck, 81)
		assert.Positive(t, sets)
	}}
	count, err := Run(context.Background(), AlgorithmBasic, Request{DeckSize: 81}, cfg)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 1, observed)
}

func TestBasic_ExcludeEverything(t *testing.T) {
	count, err := Run(context.Background(), AlgorithmBasic, Request{
		DeckSize: 3,
		Exclude:  cards.Pack(),
	}, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// TestBasic_ObserverContract checks the reported-deck properties: every
// observed deck is valid, respects the filters, is seen exactly once,
// and its Set count never exceeds its triple count.
func TestBasic_ObserverContract(t *testing.T) {
	include := testutil.Deck(t, 4, 7)
	exclude := testutil.Deck(t, 0, 1, 2)
	req := Request{DeckSize: 4, Include: include, Exclude: exclude}

	seen := make(map[string]int)
	calls := 0
	cfg := &Config{Observer: func(deck []cards.Card, tested, sets int64) {
		calls++
		require.True(t, cards.Valid(deck))
		require.LessOrEqual(t, sets, tested)
		for _, c := range include {
			assert.Contains(t, deck, c)
		}
		for _, c := range exclude {
			assert.NotContains(t, deck, c)
		}
		seen[fmt.Sprint(testutil.Indexes(deck))]++
	}}

	_, err := Run(context.Background(), AlgorithmBasic, req, cfg)
	require.NoError(t, err)

	// C(81-3-2, 2) candidates, each observed exactly once.
	assert.Equal(t, int(combin.Count(76, 2)), calls)
	assert.Len(t, seen, calls)
}

func TestBasic_CanceledBeforeWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	observed := 0
	cfg := &Config{Observer: func([]cards.Card, int64, int64) { observed++ }}
	_, err := Run(ctx, AlgorithmBasic, Request{DeckSize: 3}, cfg)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
	assert.Zero(t, observed)
}

func TestBasic_CanceledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cfg := &Config{Observer: func([]cards.Card, int64, int64) {
		calls++
		if calls == 1000 {
			cancel()
		}
	}}

	_, err := Run(ctx, AlgorithmBasic, Request{DeckSize: 3}, cfg)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
	assert.Less(t, calls, 85320, "cancellation must abandon queued work")
}

func TestBasic_TrackerMatchesResult(t *testing.T) {
	e, err := New(AlgorithmBasic, Request{DeckSize: 3}, nil)
	require.NoError(t, err)

	count, err := e.Count(context.Background())
	require.NoError(t, err)

	snap := e.Tracker().Snapshot()
	assert.Equal(t, count, snap.DecksNoSet)
	assert.Equal(t, combin.Count(81, 3), snap.DecksAnalyzed)
	assert.Equal(t, count, e.Tracker().NoSetBySize()[3])
	assert.Len(t, e.Tracker().Longest(), 3)
}

func BenchmarkBasicSize3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), AlgorithmBasic, Request{DeckSize: 3}, nil); err != nil {
			b.Fatal(err)
		}
	}
}
