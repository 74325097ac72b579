package voronoi

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func toSites(points []Vertex) []Site {
	sites := make([]Site, len(points))
	for i, p := range points {
		sites[i] = Site{ID: i, Vertex: p}
	}
	return sites
}

func sortedSites(points []Vertex) []Site {
	sites := toSites(points)
	sort.Slice(sites, func(i, j int) bool {
		return lessXY(sites[i].Vertex, sites[j].Vertex)
	})
	return sites
}

func randomPoints(n int, seed int64, size float64) []Vertex {
	rnd := rand.New(rand.NewSource(seed))
	points := make([]Vertex, n)
	for i := range points {
		points[i] = Vertex{rnd.Float64() * size, rnd.Float64() * size}
	}
	return points
}

func pairsOf(edges []Edge) [][2]int {
	d := &Diagram{Edges: edges}
	return d.Adjacency()
}

// bruteForcePairs returns the site pairs whose unbounded Voronoi edge has
// positive length: the stretch of their bisector closer to both of them
// than to any other site.
func bruteForcePairs(points []Vertex) [][2]int {
	var pairs [][2]int
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			pi, pj := points[i], points[j]
			mid := pi.Mid(pj)
			dir := pj.Sub(pi).Perpendicular().Unit()
			lo, hi := math.Inf(-1), math.Inf(1)
			for k, pk := range points {
				if k == i || k == j {
					continue
				}
				// |p - pi|^2 <= |p - pk|^2 along p = mid + t*dir
				n := pk.Sub(pi)
				a := 2 * dir.Dot(n)
				b := pk.Dot(pk) - pi.Dot(pi) - 2*mid.Dot(n)
				switch {
				case math.Abs(a) < 1e-12:
					if b < 0 {
						lo, hi = 1, 0
					}
				case a > 0:
					hi = math.Min(hi, b/a)
				default:
					lo = math.Max(lo, b/a)
				}
				if hi-lo <= 1e-7 {
					break
				}
			}
			if hi-lo > 1e-7 {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// requireEuler checks V - E + N = 1 on an unclipped diagram. Vertices are
// the endpoints shared by several edges, ray ends belong to one edge only.
func requireEuler(t *testing.T, edges []Edge, sites int) {
	t.Helper()

	ends := make(map[Vertex]int, 2*len(edges))
	for _, e := range edges {
		ends[e.Start]++
		ends[e.End]++
	}
	vertices := 0
	for _, n := range ends {
		if n >= 3 {
			vertices++
		}
	}
	require.Equal(t, 1, vertices-len(edges)+sites, "V=%d E=%d N=%d", vertices, len(edges), sites)
}
