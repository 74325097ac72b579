package voronoi

import (
	"sort"
	"time"

	"github.com/pkg/errors"
)

// Site is an input point tagged with its position in the caller's slice.
type Site struct {
	ID int
	Vertex
}

// Edge is a finished Voronoi edge between the regions of Left and Right.
type Edge struct {
	Start Vertex
	End   Vertex
	Left  int
	Right int
}

// Pair returns the site ids of the edge, smaller first.
func (e Edge) Pair() [2]int {
	if e.Left < e.Right {
		return [2]int{e.Left, e.Right}
	}
	return [2]int{e.Right, e.Left}
}

func (e Edge) degenerate() bool {
	return equalWithEpsilon(e.Start.X, e.End.X) && equalWithEpsilon(e.Start.Y, e.End.Y)
}

// other returns the site on the opposite side of the edge.
func (e Edge) other(id int) int {
	if e.Left == id {
		return e.Right
	}
	return e.Left
}

// Report collects counters of one build.
type Report struct {
	Sites        int
	UniqueSites  int
	Chunks       int
	Rounds       int
	Edges        int
	SiteEvents   int
	CircleEvents int
	StaleEvents  int
	ChunkTime    time.Duration
	MergeTime    time.Duration
}

// Diagram is the result of BuildDiagram. Regions[i] holds the indexes into
// Edges of the edges bounding the region of Sites[i]; coincident sites after
// the first one get an empty region.
type Diagram struct {
	Sites   []Vertex
	Edges   []Edge
	Regions [][]int
	Report  Report
}

// Region returns the edges bounding the region of site i.
func (d *Diagram) Region(i int) []Edge {
	edges := make([]Edge, 0, len(d.Regions[i]))
	for _, e := range d.Regions[i] {
		edges = append(edges, d.Edges[e])
	}
	return edges
}

// Adjacency returns the sorted, distinct pairs of sites sharing an edge.
func (d *Diagram) Adjacency() [][2]int {
	seen := make(map[[2]int]struct{}, len(d.Edges))
	pairs := make([][2]int, 0, len(d.Edges))
	for _, e := range d.Edges {
		p := e.Pair()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// Vertices returns the distinct edge endpoints ordered by x, then y.
func (d *Diagram) Vertices() []Vertex {
	seen := make(map[Vertex]struct{}, 2*len(d.Edges))
	vertices := make([]Vertex, 0, 2*len(d.Edges))
	for _, e := range d.Edges {
		for _, v := range []Vertex{e.Start, e.End} {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	sort.Slice(vertices, func(i, j int) bool {
		return lessXY(vertices[i], vertices[j])
	})
	return vertices
}

// Validate checks that every edge separates two distinct sites and is listed
// in exactly the regions of those two sites.
func (d *Diagram) Validate() error {
	if len(d.Regions) != len(d.Sites) {
		return errors.Wrapf(ErrInvalidDiagram, "%d regions for %d sites", len(d.Regions), len(d.Sites))
	}
	count := make([]int, len(d.Edges))
	for site, region := range d.Regions {
		for _, i := range region {
			if i < 0 || i >= len(d.Edges) {
				return errors.Wrapf(ErrInvalidDiagram, "region %d lists edge %d of %d", site, i, len(d.Edges))
			}
			e := d.Edges[i]
			if e.Left != site && e.Right != site {
				return errors.Wrapf(ErrInvalidDiagram, "region %d lists edge %d of sites %d|%d", site, i, e.Left, e.Right)
			}
			count[i]++
		}
	}
	for i, e := range d.Edges {
		if e.Left == e.Right {
			return errors.Wrapf(ErrInvalidDiagram, "edge %d separates site %d from itself", i, e.Left)
		}
		if e.Left < 0 || e.Right < 0 || e.Left >= len(d.Sites) || e.Right >= len(d.Sites) {
			return errors.Wrapf(ErrInvalidDiagram, "edge %d names sites %d|%d", i, e.Left, e.Right)
		}
		if count[i] != 2 {
			return errors.Wrapf(ErrInvalidDiagram, "edge %d is listed in %d regions", i, count[i])
		}
	}
	return nil
}
