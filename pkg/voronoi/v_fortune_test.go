package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkOf(points []Vertex, clip *BoundingBox) *partial {
	fr := newFrame(points, boundsOf(points), DefaultRayExtentFactor)
	return buildChunk(sortedSites(points), fr, clip, defaultSettings())
}

func TestBuildChunk_TwoSitesSameRow(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)
	p := chunkOf([]Vertex{{0, 5}, {10, 5}}, &box)

	require.Len(t, p.edges, 1)
	assert.Equal(t, Edge{Start: Vertex{5, 0}, End: Vertex{5, 10}, Left: 0, Right: 1}, p.edges[0])
	assert.Zero(t, p.stats.CircleEvents)
}

func TestBuildChunk_TwoSitesSameColumn(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)
	p := chunkOf([]Vertex{{5, 0}, {5, 10}}, &box)

	require.Len(t, p.edges, 1)
	assert.Equal(t, Edge{Start: Vertex{10, 5}, End: Vertex{0, 5}, Left: 0, Right: 1}, p.edges[0])
}

func TestBuildChunk_ColinearRow(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)
	p := chunkOf([]Vertex{{0, 5}, {5, 5}, {10, 5}}, &box)

	assert.Zero(t, p.stats.CircleEvents)
	assert.Equal(t, 3, p.stats.SiteEvents)
	require.Len(t, p.edges, 2)
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, pairsOf(p.edges))
	for _, e := range p.edges {
		assert.InDelta(t, e.Start.X, e.End.X, 0)
	}
}

func TestBuildChunk_ColinearColumn(t *testing.T) {
	t.Parallel()

	p := chunkOf([]Vertex{{5, 0}, {5, 5}, {5, 10}}, nil)

	assert.Zero(t, p.stats.CircleEvents)
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, pairsOf(p.edges))
	requireEuler(t, p.edges, 3)
}

func TestBuildChunk_SquareMeetsInCenter(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 10, 0, 10)
	points := []Vertex{{0, 0}, {10, 0}, {0, 10}, {10, 10}}
	p := chunkOf(points, &box)

	require.Len(t, p.edges, 4)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, pairsOf(p.edges))

	center := 0
	for _, e := range p.edges {
		for _, v := range []Vertex{e.Start, e.End} {
			if v.Sub(Vertex{5, 5}).Len() < 1e-9 {
				center++
			}
		}
	}
	assert.Equal(t, 4, center)
}

func TestBuildChunk_Triangle(t *testing.T) {
	t.Parallel()

	points := []Vertex{{0, 0}, {4, 1}, {1, 5}}
	p := chunkOf(points, nil)

	assert.Equal(t, 1, p.stats.CircleEvents)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, pairsOf(p.edges))
	requireEuler(t, p.edges, 3)

	c, ok := circumcenter(points[0], points[1], points[2])
	require.True(t, ok)
	for _, e := range p.edges {
		d := min(e.Start.Sub(c).Len(), e.End.Sub(c).Len())
		assert.InDelta(t, 0.0, d, 1e-9, "edge %d|%d misses the circumcenter", e.Left, e.Right)
	}
}

func TestBuildChunk_RandomMatchesBruteForce(t *testing.T) {
	t.Parallel()

	for _, seed := range []int64{1, 2, 3} {
		points := randomPoints(150, seed, 1000)
		p := chunkOf(points, nil)

		assert.Equal(t, bruteForcePairs(points), pairsOf(p.edges), "seed %d", seed)
		requireEuler(t, p.edges, len(points))
		assert.Equal(t, len(points), p.stats.SiteEvents)
		// one vertex per circle event that was not cancelled
		assert.Equal(t, len(p.edges)-len(points)+1, p.stats.CircleEvents-p.stats.StaleEvents, "seed %d", seed)
	}
}

func TestBuildChunk_EdgesSeparateTheirSites(t *testing.T) {
	t.Parallel()

	points := randomPoints(60, 9, 100)
	p := chunkOf(points, nil)

	for _, e := range p.edges {
		m := e.Start.Mid(e.End)
		dl := m.Sub(points[e.Left]).Len()
		dr := m.Sub(points[e.Right]).Len()
		assert.InDelta(t, dl, dr, 1e-6*dl)
		for k, q := range points {
			if k != e.Left && k != e.Right {
				assert.GreaterOrEqual(t, m.Sub(q).Len(), dl-1e-6*dl)
			}
		}
	}
}

func TestBuildChunk_SmallQueueCompacts(t *testing.T) {
	t.Parallel()

	points := randomPoints(200, 4, 1000)
	fr := newFrame(points, boundsOf(points), DefaultRayExtentFactor)
	s := defaultSettings()
	s.eventCapacityFactor = 1

	p := buildChunk(sortedSites(points), fr, nil, s)
	assert.Equal(t, bruteForcePairs(points), pairsOf(p.edges))
}

func TestFortune_SkipsDuplicateSites(t *testing.T) {
	t.Parallel()

	points := []Vertex{{0, 0}, {4, 1}, {4, 1}, {1, 5}}
	p := chunkOf(points, nil)

	assert.Equal(t, 3, p.stats.SiteEvents)
	assert.Len(t, p.edges, 3)
}

func TestFortune_CreateEdgePair(t *testing.T) {
	t.Parallel()

	f := newFortune(toSites([]Vertex{{0, 0}, {1, 0}}), defaultSettings())
	e := f.createEdgePair(Vertex{1, 1}, 0, 1)
	require.Len(t, f.edges, 2)
	assert.Equal(t, e+1, f.edges[e].neighbor)
	assert.Equal(t, e, f.edges[e+1].neighbor)
	assert.Equal(t, 1, f.edges[e+1].left)
	assert.Equal(t, 0, f.edges[e+1].right)
	assert.True(t, isUnset(f.edges[e].end))

	single := f.createEdge(Vertex{2, 2}, 0, 1)
	assert.Equal(t, -1, f.edges[single].neighbor)
}

func TestNewFrame(t *testing.T) {
	t.Parallel()

	points := []Vertex{{0, 0}, {10, 4}}
	fr := newFrame(points, NewBoundingBox(-5, 5, 0, 20), 2)

	// union -5..10 x 0..20, margin 2 * 20
	assert.Equal(t, NewBoundingBox(-45, 50, -40, 60), fr.far)
	assert.InDelta(t, 4*fr.far.Diagonal(), fr.reach, 0)
	assert.InDelta(t, epsilon*10, fr.tolerance, 0)

	end := fr.rayEnd(Vertex{0, 0}, Vertex{0, 1})
	assert.Equal(t, Vertex{0, 60}, end)
}

func TestBuildRegions(t *testing.T) {
	t.Parallel()

	regions := buildRegions([]Edge{{Left: 0, Right: 1}, {Left: 1, Right: 2}})
	assert.Equal(t, map[int][]int{0: {0}, 1: {0, 1}, 2: {1}}, regions)
}
