package cards

// Valid reports whether the card sequence is a well-formed deck:
// non-empty, every card the canonical encoding of an in-range index, and
// no index appearing twice. Quadratic duplicate scan is fine at n <= 81.
func Valid(deck []Card) bool {
	if len(deck) == 0 {
		return false
	}
	for i, c := range deck {
		idx := c.Index()
		if idx < 0 || idx >= PackSize {
			return false
		}
		if c != pack[idx] {
			return false
		}
		for j := 0; j < i; j++ {
			if deck[j] == c {
				return false
			}
		}
	}
	return true
}

// CountSets iterates every triple (i < j < k) of the deck and counts how
// many form a Set. With shortCircuit the scan stops at the first Set,
// returning the triples tested so far and a Set count of 1; the engines
// rely on this to distinguish "no Set" exactly.
func CountSets(deck []Card, shortCircuit bool) (tested, sets int64) {
	n := len(deck)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				tested++
				if IsSet(deck[i], deck[j], deck[k]) {
					sets++
					if shortCircuit {
						return tested, sets
					}
				}
			}
		}
	}
	return tested, sets
}
