// Package cards implements the Set game card model: the bit-packed card
// encoding, the canonical 81-card pack, the Set predicate, and deck
// level operations used by the search engines.
package cards

import (
	"fmt"

	"github.com/set-challenge/pkg/errors"
)

// Shape is the card shape attribute.
type Shape uint8

// Card shapes, in canonical order.
const (
	Diamond Shape = iota
	Squiggle
	Oval
)

// Count is the card symbol count attribute.
type Count uint8

// Card counts, in canonical order.
const (
	One Count = iota
	Two
	Three
)

// Color is the card color attribute.
type Color uint8

// Card colors, in canonical order.
const (
	Purple Color = iota
	Green
	Red
)

// Shading is the card shading attribute.
type Shading uint8

// Card shadings, in canonical order.
const (
	Open Shading = iota
	Solid
	Striped
)

// PackSize is the number of distinct cards in the Set game.
const PackSize = 81

// Bit layout of a card id. Each attribute occupies a 6-bit field holding
// exactly one of the patterns 0b000001, 0b000100, 0b010000 (value v is
// encoded as 1 << 2v). The low 8 bits hold the pack index. Adding three
// ids therefore counts attribute values per field without carries: three
// distinct indexes sum to at most 240 and never spill into bit 8.
const (
	indexMask = 0xFF

	shapeShift   = 8
	countShift   = 14
	colorShift   = 20
	shadingShift = 26

	fieldMask = 0x3F
)

// Card is a Set game card, encoded as a 32-bit id: pack index plus four
// one-of-three attribute fields. The zero value is not a valid card.
type Card uint32

// NewCard creates a card from its four attributes.
func NewCard(shape Shape, count Count, color Color, shading Shading) (Card, error) {
	if shape > Oval {
		return 0, errors.Newf(errors.CodeInvalidArgument, "invalid shape %d", shape)
	}
	if count > Three {
		return 0, errors.Newf(errors.CodeInvalidArgument, "invalid count %d", count)
	}
	if color > Red {
		return 0, errors.Newf(errors.CodeInvalidArgument, "invalid color %d", color)
	}
	if shading > Striped {
		return 0, errors.Newf(errors.CodeInvalidArgument, "invalid shading %d", shading)
	}
	return newCard(shape, count, color, shading), nil
}

// newCard encodes without validation; callers guarantee the domain.
func newCard(shape Shape, count Count, color Color, shading Shading) Card {
	index := ((uint32(shape)*3+uint32(count))*3+uint32(color))*3 + uint32(shading)
	return Card(index +
		1<<(shapeShift+2*uint32(shape)) +
		1<<(countShift+2*uint32(count)) +
		1<<(colorShift+2*uint32(color)) +
		1<<(shadingShift+2*uint32(shading)))
}

// FromID decodes and validates a raw 32-bit card id. The id must be the
// exact canonical encoding of its own index; anything else, including
// the zero id, is rejected.
func FromID(id uint32) (Card, error) {
	idx := id & indexMask
	if idx >= PackSize {
		return 0, errors.Newf(errors.CodeInvalidArgument, "card index %d out of range", idx)
	}
	c := pack[idx]
	if Card(id) != c {
		return 0, errors.Newf(errors.CodeInvalidArgument, "malformed card id %#08x", id)
	}
	return c, nil
}

// Index returns the card's position in the canonical pack, in [0, 81).
func (c Card) Index() int {
	return int(uint32(c) & indexMask)
}

// Shape returns the card's shape attribute.
func (c Card) Shape() Shape {
	return Shape(attrValue(uint32(c) >> shapeShift))
}

// Count returns the card's symbol count attribute.
func (c Card) Count() Count {
	return Count(attrValue(uint32(c) >> countShift))
}

// Color returns the card's color attribute.
func (c Card) Color() Color {
	return Color(attrValue(uint32(c) >> colorShift))
}

// Shading returns the card's shading attribute.
func (c Card) Shading() Shading {
	return Shading(attrValue(uint32(c) >> shadingShift))
}

// attrValue maps an attribute field pattern back to its ordinal.
func attrValue(field uint32) uint8 {
	switch field & fieldMask {
	case 0b000001:
		return 0
	case 0b000100:
		return 1
	default:
		return 2
	}
}

// String satisfies fmt.Stringer, e.g. "Diamond/One/Purple/Open#0".
func (c Card) String() string {
	return fmt.Sprintf("%s/%s/%s/%s#%d", c.Shape(), c.Count(), c.Color(), c.Shading(), c.Index())
}

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Diamond:
		return "Diamond"
	case Squiggle:
		return "Squiggle"
	case Oval:
		return "Oval"
	}
	return "?"
}

// String returns the count name.
func (n Count) String() string {
	switch n {
	case One:
		return "One"
	case Two:
		return "Two"
	case Three:
		return "Three"
	}
	return "?"
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Purple:
		return "Purple"
	case Green:
		return "Green"
	case Red:
		return "Red"
	}
	return "?"
}

// String returns the shading name.
func (s Shading) String() string {
	switch s {
	case Open:
		return "Open"
	case Solid:
		return "Solid"
	case Striped:
		return "Striped"
	}
	return "?"
}

// pack is the canonical ordered 81-card pack: shape outer, then count,
// color, shading. The i-th card has index i.
var pack = buildPack()

func buildPack() [PackSize]Card {
	var p [PackSize]Card
	i := 0
	for shape := Diamond; shape <= Oval; shape++ {
		for count := One; count <= Three; count++ {
			for color := Purple; color <= Red; color++ {
				for shading := Open; shading <= Striped; shading++ {
					p[i] = newCard(shape, count, color, shading)
					i++
				}
			}
		}
	}
	return p
}

// Pack returns a copy of the canonical 81-card pack.
func Pack() []Card {
	p := make([]Card, PackSize)
	copy(p, pack[:])
	return p
}

// AtIndex returns the canonical card with the given pack index.
func AtIndex(index int) (Card, error) {
	if index < 0 || index >= PackSize {
		return 0, errors.Newf(errors.CodeInvalidArgument, "card index %d out of range", index)
	}
	return pack[index], nil
}
