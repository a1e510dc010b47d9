// Package testutil provides shared test fixtures for the engine tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/set-challenge/pkg/cards"
)

// Deck returns the canonical cards at the given pack indexes, in the
// given order.
func Deck(t testing.TB, indexes ...int) []cards.Card {
	t.Helper()
	deck := make([]cards.Card, len(indexes))
	for i, idx := range indexes {
		c, err := cards.AtIndex(idx)
		require.NoError(t, err)
		deck[i] = c
	}
	return deck
}

// Indexes extracts the pack indexes of a deck.
func Indexes(deck []cards.Card) []int {
	out := make([]int, len(deck))
	for i, c := range deck {
		out[i] = c.Index()
	}
	return out
}

// ExcludeAllBut returns every pack card whose index is NOT in keep.
func ExcludeAllBut(t testing.TB, keep ...int) []cards.Card {
	t.Helper()
	keepSet := make(map[int]bool, len(keep))
	for _, idx := range keep {
		keepSet[idx] = true
	}
	var out []cards.Card
	for _, c := range cards.Pack() {
		if !keepSet[c.Index()] {
			out = append(out, c)
		}
	}
	return out
}
