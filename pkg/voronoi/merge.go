package voronoi

import (
	"math"

	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"go.uber.org/zap"
)

// side is the state of one partial while the dividing chain walks through it.
// edges is a private copy: crossed edges get cut, edges on the far side of the
// chain get removed. An edge is cut at most twice, cuts holds the first point.
type side struct {
	part    *partial
	edges   []Edge
	removed []bool
	cuts    []Vertex
	site    Site
	entry   Vertex
	// via is the edge the chain last crossed, or -1 once the other side moved.
	via int
	// claim is +1 on the left side and -1 on the right one. It turns the
	// chain normal (left site to right site) towards the part this side gives up.
	claim float64
}

func newSide(p *partial, site Site, claim float64) *side {
	cuts := make([]Vertex, len(p.edges))
	for i := range cuts {
		cuts[i] = noVertex
	}
	return &side{
		part:    p,
		edges:   append([]Edge(nil), p.edges...),
		removed: make([]bool, len(p.edges)),
		cuts:    cuts,
		site:    site,
		via:     -1,
		claim:   claim,
	}
}

// nextCrossing returns the nearest edge of the current region crossed by the
// line mid + s*dir with s beyond from, or -1.
func (sd *side) nextCrossing(mid, dir Vertex, from, tol float64) (float64, int) {
	best, bestEdge := math.Inf(1), -1
	for _, i := range sd.part.regions[sd.site.ID] {
		if i == sd.via || sd.removed[i] {
			continue
		}
		e := sd.edges[i]
		s, u, ok := intersectRaySegment(mid, dir, e.Start, e.End)
		if !ok || s <= from+tol || s >= best {
			continue
		}
		if (u < 0 || u > 1) && !onSegment(mid.Add(dir.Scale(s)), e.Start, e.End, tol) {
			continue
		}
		best, bestEdge = s, i
	}
	return best, bestEdge
}

// leave drops the edges of the current region that lie beyond the chord from
// the entry point to exit. exitEdge is the edge the chain leaves through.
func (sd *side) leave(exit Vertex, exitEdge int, dir Vertex, tol float64) {
	chord := exit.Sub(sd.entry)
	if chord.Len() < tol {
		chord = dir
	}
	chord = chord.Unit()
	for _, i := range sd.part.regions[sd.site.ID] {
		if i == sd.via || i == exitEdge || sd.removed[i] {
			continue
		}
		e := sd.edges[i]
		a := sd.claim * chord.Cross(e.Start.Sub(sd.entry))
		b := sd.claim * chord.Cross(e.End.Sub(sd.entry))
		if math.Max(a, b) > tol && math.Min(a, b) > -tol {
			sd.removed[i] = true
		}
	}
}

// cross cuts edge i at v, keeping the part on this side of the chain, and
// moves the walk into the region on the other side of the edge. The kept part
// of an edge is one segment, so a second cut leaves the stretch between the
// two cut points.
func (sd *side) cross(i int, v, normal, dir Vertex, tol float64) {
	sd.leave(v, i, dir, tol)

	e := sd.edges[i]
	keep := sd.cuts[i]
	if isUnset(keep) {
		keep = e.Start
		if sd.claim*e.End.Sub(v).Dot(normal) < sd.claim*e.Start.Sub(v).Dot(normal) {
			keep = e.End
		}
		sd.cuts[i] = v
	}
	sd.edges[i] = Edge{Start: keep, End: v, Left: e.Left, Right: e.Right}

	sd.site = sd.part.sites[sd.part.index[e.other(sd.site.ID)]]
	sd.entry = v
	sd.via = i
}

func (sd *side) kept() []Edge {
	edges := make([]Edge, 0, len(sd.edges))
	for i, e := range sd.edges {
		if !sd.removed[i] && !e.degenerate() {
			edges = append(edges, e)
		}
	}
	return edges
}

// chainWalker traces the dividing chain between two partials from the upper
// tangent pair down to the lower one.
type chainWalker struct {
	left  *side
	right *side
	fr    frame
	log   *logger.ZapLogger
}

func (w *chainWalker) bisector() (mid, dir Vertex) {
	l, r := w.left.site.Vertex, w.right.site.Vertex
	return l.Mid(r), l.Sub(r).Perpendicular().Unit()
}

func (w *chainWalker) walk(lowerLeft, lowerRight int) []Edge {
	l, r := w.left, w.right
	tol := w.fr.tolerance
	// every step cuts at least one edge and no edge is cut more than twice
	limit := 2*(len(l.edges)+len(r.edges)) + 8

	mid, dir := w.bisector()
	l.entry = mid.Sub(dir.Scale(w.fr.reach))
	r.entry = l.entry
	from := -w.fr.reach
	p := noVertex

	var chain []Edge
	for steps := 0; l.site.ID != lowerLeft || r.site.ID != lowerRight; steps++ {
		if steps > limit {
			fatalf(ErrMergeDiverged, "dividing chain after %d steps at sites %d|%d", steps, l.site.ID, r.site.ID)
		}
		sL, eL := l.nextCrossing(mid, dir, from, tol)
		sR, eR := r.nextCrossing(mid, dir, from, tol)

		var s float64
		advanceLeft, advanceRight := false, false
		switch {
		case eL < 0 && eR < 0:
			fatalf(ErrNoCrossing, "bisector of sites %d|%d", l.site.ID, r.site.ID)
		case eL >= 0 && eR >= 0 && math.Abs(sL-sR) <= tol:
			s = (sL + sR) / 2
			advanceLeft, advanceRight = true, true
		case eR < 0 || (eL >= 0 && sL < sR):
			s = sL
			advanceLeft = true
		default:
			s = sR
			advanceRight = true
		}

		v := mid.Add(dir.Scale(s))
		start := p
		if isUnset(start) {
			start = w.fr.rayEnd(v, dir.Scale(-1))
		}
		chain = append(chain, Edge{Start: start, End: v, Left: l.site.ID, Right: r.site.ID})

		normal := r.site.Sub(l.site.Vertex)
		l.via, r.via = -1, -1
		if advanceLeft {
			l.cross(eL, v, normal, dir, tol)
		}
		if advanceRight {
			r.cross(eR, v, normal, dir, tol)
		}

		p = v
		mid, dir = w.bisector()
		from = v.Sub(mid).Dot(dir)
	}

	if isUnset(p) {
		chain = append(chain, Edge{
			Start: w.fr.rayEnd(mid, dir.Scale(-1)),
			End:   w.fr.rayEnd(mid, dir),
			Left:  l.site.ID,
			Right: r.site.ID,
		})
		p = mid
	} else {
		chain = append(chain, Edge{Start: p, End: w.fr.rayEnd(p, dir), Left: l.site.ID, Right: r.site.ID})
	}
	exit := p.Add(dir.Scale(w.fr.reach))
	l.leave(exit, -1, dir, tol)
	r.leave(exit, -1, dir, tol)
	return chain
}

// mergePartials stitches two partials whose sites are separated by a vertical
// line, left before right.
func mergePartials(left, right *partial, fr frame, s *settings) *partial {
	hm := mergeHulls(left.hull, right.hull)
	for _, h := range [][]Site{left.hull, right.hull} {
		for _, p := range h {
			if !hullContains(hm.hull, p.Vertex, fr.tolerance) {
				fatalf(ErrMergeDiverged, "site %d is outside the merged hull", p.ID)
			}
		}
	}

	w := &chainWalker{
		left:  newSide(left, hm.leftUpper, 1),
		right: newSide(right, hm.rightUpper, -1),
		fr:    fr,
		log:   s.log,
	}
	chain := w.walk(hm.leftLower.ID, hm.rightLower.ID)

	edges := w.left.kept()
	for _, e := range chain {
		if !e.degenerate() {
			edges = append(edges, e)
		}
	}
	edges = append(edges, w.right.kept()...)

	sites := make([]Site, 0, len(left.sites)+len(right.sites))
	sites = append(sites, left.sites...)
	sites = append(sites, right.sites...)

	stats := left.stats
	stats.add(right.stats)

	w.log.Debug("[merge] chain traced",
		zap.Int("left_sites", len(left.sites)),
		zap.Int("right_sites", len(right.sites)),
		zap.Int("chain", len(chain)),
		zap.Int("edges", len(edges)))

	return newPartial(sites, edges, hm.hull, stats)
}
