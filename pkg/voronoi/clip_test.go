package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcode(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)
	assert.Equal(t, outInside, outcode(Vertex{5, 5}, box))
	assert.Equal(t, outInside, outcode(Vertex{10, 0}, box))
	assert.Equal(t, outLeft|outTop, outcode(Vertex{-1, -1}, box))
	assert.Equal(t, outRight|outBottom, outcode(Vertex{11, 11}, box))
}

func TestClipSegment(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)

	tests := []struct {
		name   string
		a, b   Vertex
		ok     bool
		wa, wb Vertex
	}{
		{"inside", Vertex{1, 1}, Vertex{9, 2}, true, Vertex{1, 1}, Vertex{9, 2}},
		{"horizontal through", Vertex{-5, 5}, Vertex{15, 5}, true, Vertex{0, 5}, Vertex{10, 5}},
		{"diagonal through", Vertex{-5, -5}, Vertex{15, 15}, true, Vertex{0, 0}, Vertex{10, 10}},
		{"one end out", Vertex{5, 5}, Vertex{5, 20}, true, Vertex{5, 5}, Vertex{5, 10}},
		{"left of box", Vertex{-5, 0}, Vertex{-1, 10}, false, Vertex{}, Vertex{}},
		{"misses corner", Vertex{-5, 4}, Vertex{4, -5}, false, Vertex{}, Vertex{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, b, ok := clipSegment(tt.a, tt.b, box)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.wa.X, a.X, 1e-12)
			assert.InDelta(t, tt.wa.Y, a.Y, 1e-12)
			assert.InDelta(t, tt.wb.X, b.X, 1e-12)
			assert.InDelta(t, tt.wb.Y, b.Y, 1e-12)
		})
	}
}

func TestClipEdges_DropsOutsideAndDegenerate(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)
	edges := []Edge{
		{Start: Vertex{-5, 5}, End: Vertex{5, 5}, Left: 0, Right: 1},
		{Start: Vertex{20, 20}, End: Vertex{30, 20}, Left: 1, Right: 2},
		{Start: Vertex{-1, 1}, End: Vertex{1, -1}, Left: 2, Right: 3},
	}

	clipped := clipEdges(edges, box)
	require.Len(t, clipped, 1)
	assert.Equal(t, Edge{Start: Vertex{0, 5}, End: Vertex{5, 5}, Left: 0, Right: 1}, clipped[0])
}
