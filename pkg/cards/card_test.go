package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/set-challenge/pkg/errors"
)

func TestNewCard_Encoding(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		count   Count
		color   Color
		shading Shading
		index   int
		id      uint32
	}{
		{
			name:  "first card",
			shape: Diamond, count: One, color: Purple, shading: Open,
			index: 0,
			id:    0 | 1<<8 | 1<<14 | 1<<20 | 1<<26,
		},
		{
			name:  "last card",
			shape: Oval, count: Three, color: Red, shading: Striped,
			index: 80,
			id:    80 | 1<<12 | 1<<18 | 1<<24 | 1<<30,
		},
		{
			name:  "shading is the innermost digit",
			shape: Diamond, count: One, color: Green, shading: Striped,
			index: 5,
			id:    5 | 1<<8 | 1<<14 | 1<<22 | 1<<30,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCard(tc.shape, tc.count, tc.color, tc.shading)
			require.NoError(t, err)
			assert.Equal(t, tc.id, uint32(c))
			assert.Equal(t, tc.index, c.Index())
			assert.Equal(t, tc.shape, c.Shape())
			assert.Equal(t, tc.count, c.Count())
			assert.Equal(t, tc.color, c.Color())
			assert.Equal(t, tc.shading, c.Shading())
		})
	}
}

func TestNewCard_RejectsOutOfDomain(t *testing.T) {
	_, err := NewCard(Shape(3), One, Purple, Open)
	assert.True(t, apperrors.IsInvalidArgument(err))
	_, err = NewCard(Diamond, Count(7), Purple, Open)
	assert.True(t, apperrors.IsInvalidArgument(err))
	_, err = NewCard(Diamond, One, Color(3), Open)
	assert.True(t, apperrors.IsInvalidArgument(err))
	_, err = NewCard(Diamond, One, Purple, Shading(200))
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestPack_CanonicalOrder(t *testing.T) {
	p := Pack()
	require.Len(t, p, PackSize)

	for i, c := range p {
		assert.Equal(t, i, c.Index(), "pack position must equal card index")
	}

	// Attributes iterate shading fastest, shape slowest.
	assert.Equal(t, Open, p[0].Shading())
	assert.Equal(t, Solid, p[1].Shading())
	assert.Equal(t, Striped, p[2].Shading())
	assert.Equal(t, Green, p[3].Color())
	assert.Equal(t, Two, p[9].Count())
	assert.Equal(t, Squiggle, p[27].Shape())
	assert.Equal(t, Oval, p[54].Shape())
}

func TestPack_ReturnsCopy(t *testing.T) {
	p := Pack()
	p[0] = Card(0xDEADBEEF)
	assert.NotEqual(t, uint32(0xDEADBEEF), uint32(Pack()[0]))
}

func TestFromID_RoundTripsEveryCard(t *testing.T) {
	for _, c := range Pack() {
		got, err := FromID(uint32(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestFromID_RejectsMalformed(t *testing.T) {
	_, err := FromID(0)
	assert.True(t, apperrors.IsInvalidArgument(err), "zero id is the invalid sentinel")

	_, err = FromID(81)
	assert.True(t, apperrors.IsInvalidArgument(err), "index out of range")

	// Right index, wrong attribute bits.
	_, err = FromID(uint32(Pack()[0]) ^ 1<<9)
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestAtIndex(t *testing.T) {
	c, err := AtIndex(40)
	require.NoError(t, err)
	assert.Equal(t, 40, c.Index())

	_, err = AtIndex(-1)
	assert.Error(t, err)
	_, err = AtIndex(81)
	assert.Error(t, err)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "Diamond/One/Purple/Open#0", Pack()[0].String())
	assert.Equal(t, "Oval/Three/Red/Striped#80", Pack()[80].String())
}
