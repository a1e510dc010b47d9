package engine

import "github.com/set-challenge/pkg/cards"

// unevaluated is the sentinel for a deck node whose triples have not
// been counted yet.
const unevaluated = -1

// deckNode is the linked-prefix deck representation. A deck of size n
// is the parent path from the node to the root; siblings share their
// parent chain, so a generation of decks costs one node each. Along any
// root path the appended cards ascend strictly by effective-pack
// position, which is what keeps every subset enumerated exactly once.
//
// A node is written by exactly one worker (its owner) and only read
// elsewhere after the owner's batch has completed.
type deckNode struct {
	parent *deckNode
	card   cards.Card
	// pos is the appended card's position in the effective pack;
	// extension only considers strictly greater positions.
	pos  int32
	size int32

	// Evaluation result, write-once. tested stays unevaluated until the
	// owning worker counts the node's triples.
	tested int64
	sets   int64
}

// newChild extends parent by one card. A nil parent starts a new root
// path.
func newChild(parent *deckNode, card cards.Card, pos int) *deckNode {
	size := int32(1)
	if parent != nil {
		size = parent.size + 1
	}
	return &deckNode{
		parent: parent,
		card:   card,
		pos:    int32(pos),
		size:   size,
		tested: unevaluated,
		sets:   unevaluated,
	}
}

// materialize writes the deck's cards into buf in insertion order and
// returns the filled prefix. buf must hold at least size cards.
func (n *deckNode) materialize(buf []cards.Card) []cards.Card {
	out := buf[:n.size]
	for node := n; node != nil; node = node.parent {
		out[node.size-1] = node.card
	}
	return out
}
