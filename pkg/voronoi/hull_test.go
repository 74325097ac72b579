package voronoi

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hullIDs(hull []Site) []int {
	ids := make([]int, len(hull))
	for i, s := range hull {
		ids[i] = s.ID
	}
	sort.Ints(ids)
	return ids
}

func TestBuildHull(t *testing.T) {
	t.Parallel()

	points := []Vertex{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {2, 0}, {1, 3}}
	hull := buildHull(toSites(points))

	assert.Equal(t, []int{0, 1, 2, 3}, hullIDs(hull))
	for i := range hull {
		a := hull[i].Vertex
		b := hull[(i+1)%len(hull)].Vertex
		c := hull[(i+2)%len(hull)].Vertex
		assert.Greater(t, orientation(a, b, c), 0.0, "hull turns counterclockwise")
	}
}

func TestBuildHull_Small(t *testing.T) {
	t.Parallel()

	assert.Empty(t, buildHull(nil))

	hull := buildHull(toSites([]Vertex{{3, 1}, {1, 2}}))
	require.Len(t, hull, 2)
	assert.Equal(t, 1, hull[0].ID)

	// colinear input keeps only the ends
	hull = buildHull(toSites([]Vertex{{0, 0}, {1, 1}, {2, 2}, {3, 3}}))
	assert.Equal(t, []int{0, 3}, hullIDs(hull))
}

func TestHullContains(t *testing.T) {
	t.Parallel()

	hull := buildHull(toSites([]Vertex{{0, 0}, {4, 0}, {4, 4}, {0, 4}}))
	assert.True(t, hullContains(hull, Vertex{2, 2}, 1e-9))
	assert.True(t, hullContains(hull, Vertex{4, 2}, 1e-9))
	assert.False(t, hullContains(hull, Vertex{4.1, 2}, 1e-9))

	assert.False(t, hullContains(nil, Vertex{}, 1))
	assert.True(t, hullContains(toSites([]Vertex{{1, 1}}), Vertex{1, 1}, 1e-9))
	assert.True(t, hullContains(toSites([]Vertex{{0, 0}, {2, 2}}), Vertex{1, 1}, 1e-9))
	assert.False(t, hullContains(toSites([]Vertex{{0, 0}, {2, 2}}), Vertex{1, 0}, 1e-9))
}

func TestMergeHulls(t *testing.T) {
	t.Parallel()

	points := []Vertex{
		{0, 0}, {3, 1}, {2, 4}, {-1, 3}, {1, 2},
		{6, 0}, {9, 2}, {7, 5}, {5, 3}, {7, 2},
	}
	sites := toSites(points)
	left := buildHull(sites[:5])
	right := buildHull(sites[5:])

	hm := mergeHulls(left, right)
	assert.Equal(t, hullIDs(buildHull(sites)), hullIDs(hm.hull))

	for _, p := range points {
		assert.LessOrEqual(t, orientation(hm.leftUpper.Vertex, hm.rightUpper.Vertex, p), 1e-9)
		assert.GreaterOrEqual(t, orientation(hm.leftLower.Vertex, hm.rightLower.Vertex, p), -1e-9)
	}
	assert.True(t, hm.leftUpper.X < 5 && hm.leftLower.X < 5)
	assert.True(t, hm.rightUpper.X >= 5 && hm.rightLower.X >= 5)
}

func TestMergeHulls_Points(t *testing.T) {
	t.Parallel()

	sites := toSites([]Vertex{{0, 0}, {5, 1}})
	hm := mergeHulls(sites[:1], sites[1:])

	assert.Equal(t, 0, hm.leftUpper.ID)
	assert.Equal(t, 0, hm.leftLower.ID)
	assert.Equal(t, 1, hm.rightUpper.ID)
	assert.Equal(t, 1, hm.rightLower.ID)
	assert.Equal(t, []int{0, 1}, hullIDs(hm.hull))
}

func TestMergeHulls_Random(t *testing.T) {
	t.Parallel()

	for _, seed := range []int64{5, 6, 7, 8} {
		sites := sortedSites(randomPoints(80, seed, 100))
		for _, cut := range []int{1, 2, 17, 40, 79} {
			hm := mergeHulls(buildHull(sites[:cut]), buildHull(sites[cut:]))
			assert.Equal(t, hullIDs(buildHull(sites)), hullIDs(hm.hull), "seed %d cut %d", seed, cut)
		}
	}
}
