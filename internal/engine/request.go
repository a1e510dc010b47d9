package engine

import (
	"github.com/set-challenge/pkg/cards"
	"github.com/set-challenge/pkg/collections"
	"github.com/set-challenge/pkg/errors"
)

// Request describes one counting run: the target deck size, cards every
// counted deck must contain, and cards no counted deck may contain.
type Request struct {
	DeckSize int
	Include  []cards.Card
	Exclude  []cards.Card
}

// validate applies the argument rules before any evaluation starts.
func (r Request) validate() error {
	if r.DeckSize < 3 || r.DeckSize > cards.PackSize {
		return errors.Newf(errors.CodeInvalidArgument, "deck size must be in [3, %d], got %d", cards.PackSize, r.DeckSize)
	}
	if len(r.Include) > 0 && !cards.Valid(r.Include) {
		return errors.New(errors.CodeInvalidArgument, "include is not a valid deck")
	}
	if len(r.Include) > r.DeckSize {
		return errors.Newf(errors.CodeInvalidArgument, "include size %d exceeds deck size %d", len(r.Include), r.DeckSize)
	}
	if len(r.Exclude) > 0 && !cards.Valid(r.Exclude) {
		return errors.New(errors.CodeInvalidArgument, "exclude is not a valid deck")
	}
	includeSet := indexSet(r.Include)
	if includeSet.Intersects(indexSet(r.Exclude)) {
		return errors.New(errors.CodeInvalidArgument, "include and exclude overlap")
	}
	return nil
}

func indexSet(deck []cards.Card) collections.CardSet {
	var s collections.CardSet
	for _, c := range deck {
		s.Add(c.Index())
	}
	return s
}

// effectivePack is the search ordering shared by the engines: the
// include cards first, in the caller's order, then the rest of the
// canonical pack minus the excluded cards.
func effectivePack(include, exclude []cards.Card) []cards.Card {
	drop := indexSet(include)
	for _, c := range exclude {
		drop.Add(c.Index())
	}
	out := make([]cards.Card, 0, cards.PackSize)
	out = append(out, include...)
	for _, c := range cards.Pack() {
		if !drop.Has(c.Index()) {
			out = append(out, c)
		}
	}
	return out
}

// candidatePool is the pack minus both filters; the basic engine draws
// its picks from it.
func candidatePool(include, exclude []cards.Card) []cards.Card {
	return effectivePack(include, exclude)[len(include):]
}
