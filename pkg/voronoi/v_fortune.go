package voronoi

import (
	"math"

	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"go.uber.org/zap"
)

// halfEdge is one direction of a bisector traced by a breakpoint. A pair
// created by one event are neighbors and sit at consecutive indexes.
type halfEdge struct {
	start    Vertex
	end      Vertex
	left     int
	right    int
	neighbor int
}

type chunkStats struct {
	SiteEvents   int
	CircleEvents int
	StaleEvents  int
}

func (s *chunkStats) add(o chunkStats) {
	s.SiteEvents += o.SiteEvents
	s.CircleEvents += o.CircleEvents
	s.StaleEvents += o.StaleEvents
}

// fortune is the sweep state of one chunk. Every structure is owned by the
// sweep and addressed by index.
type fortune struct {
	sites     []Site
	queue     *eventQueue
	beachline *rbt
	arcs      []arc
	edges     []halfEdge
	deleted   map[int]struct{}
	nextID    int
	stats     chunkStats
	log       *logger.ZapLogger
}

func newFortune(sites []Site, s *settings) *fortune {
	n := len(sites)
	return &fortune{
		sites:     sites,
		queue:     newEventQueue(eventCapacity(n, s.eventCapacityFactor)),
		beachline: newRBTree(2 * n),
		arcs:      make([]arc, 0, 2*n),
		edges:     make([]halfEdge, 0, 3*n),
		deleted:   make(map[int]struct{}),
		log:       s.log,
	}
}

func (f *fortune) nextEventID() int {
	id := f.nextID
	f.nextID++
	return id
}

// pushEvent inserts a circle event, first dropping invalidated events from a
// full queue.
func (f *fortune) pushEvent(ev event) {
	if f.queue.full() {
		f.compact()
	}
	f.queue.insert(ev)
}

func (f *fortune) compact() {
	removed := 0
	for id := range f.deleted {
		if f.queue.removeByID(id) {
			removed++
		}
		delete(f.deleted, id)
	}
	f.stats.StaleEvents += removed
	f.log.Debug("[sweep] compacted event queue",
		zap.Int("removed", removed), zap.Int("left", f.queue.len()))
}

func (f *fortune) createEdge(start Vertex, left, right int) int {
	f.edges = append(f.edges, halfEdge{start: start, end: noVertex, left: left, right: right, neighbor: -1})
	return len(f.edges) - 1
}

// createEdgePair returns the index of the half running with left on its left;
// the opposite half follows it.
func (f *fortune) createEdgePair(start Vertex, left, right int) int {
	e := len(f.edges)
	f.edges = append(f.edges,
		halfEdge{start: start, end: noVertex, left: left, right: right, neighbor: e + 1},
		halfEdge{start: start, end: noVertex, left: right, right: left, neighbor: e},
	)
	return e
}

// stale reports a circle event that was cancelled after it was queued.
func (f *fortune) stale(ev event) bool {
	if ev.kind != circleEvent {
		return false
	}
	if _, ok := f.deleted[ev.id]; ok {
		delete(f.deleted, ev.id)
		return true
	}
	return f.arcAt(ev.node).event != ev.id
}

func (f *fortune) run() {
	for i, site := range f.sites {
		f.queue.insert(event{
			id:   f.nextEventID(),
			kind: siteEvent,
			x:    site.X,
			y:    site.Y,
			site: i,
			node: nilNode,
		})
	}

	prev := noVertex
	for f.queue.len() > 0 {
		if f.stale(f.queue.peek()) {
			f.queue.popMin()
			f.stats.StaleEvents++
			continue
		}
		ev := f.queue.popMin()
		switch ev.kind {
		case siteEvent:
			site := f.sites[ev.site]
			if site.Vertex == prev {
				f.log.Warn("[sweep] duplicate site skipped", zap.Int("site", site.ID))
				continue
			}
			prev = site.Vertex
			f.stats.SiteEvents++
			f.addBeachSection(ev.site)
		case circleEvent:
			f.removeBeachSection(ev)
		}
	}
}

// finalizeEdges joins every neighbor pair into one segment and closes open
// ends on the far box. Edges are clipped to clip when it is set.
func (f *fortune) finalizeEdges(fr frame, clip *BoundingBox) []Edge {
	edges := make([]Edge, 0, len(f.edges))
	for i, h := range f.edges {
		if h.neighbor >= 0 && h.neighbor < i {
			continue
		}
		l := f.sites[h.left].Vertex
		r := f.sites[h.right].Vertex
		dir := r.Sub(l).Perpendicular()

		base := h.start
		if isUnset(base) {
			base = l.Mid(r)
		}
		end := h.end
		if isUnset(end) {
			end = fr.rayEnd(base, dir)
		}
		start := h.start
		if h.neighbor >= 0 {
			start = f.edges[h.neighbor].end
			if isUnset(start) {
				start = fr.rayEnd(base, dir.Scale(-1))
			}
		}

		e := Edge{Start: start, End: end, Left: f.sites[h.left].ID, Right: f.sites[h.right].ID}
		if clip != nil {
			var ok bool
			if e, ok = clipEdge(e, *clip); !ok {
				continue
			}
		} else if e.degenerate() {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// frame is the geometry shared by every chunk and merge of one build. Open
// rays end on far, which holds all sites and the caller's bounds with a wide
// margin, so chunk diagrams agree on where their rays stop.
type frame struct {
	far       BoundingBox
	reach     float64
	tolerance float64
}

func newFrame(points []Vertex, bounds BoundingBox, extentFactor float64) frame {
	sites := boundsOf(points)
	extent := math.Max(sites.Width(), sites.Height())
	box := sites.Union(bounds)
	margin := extentFactor * math.Max(math.Max(box.Width(), box.Height()), 1)
	far := box.Expand(margin)
	return frame{
		far:       far,
		reach:     4 * far.Diagonal(),
		tolerance: epsilon * math.Max(1, extent),
	}
}

func (fr frame) rayEnd(origin, dir Vertex) Vertex {
	return rayBoxExit(origin, dir, fr.far)
}

// partial is a finished diagram of a subset of sites: a chunk or a merge of
// two neighbouring partials.
type partial struct {
	sites   []Site
	index   map[int]int
	edges   []Edge
	regions map[int][]int
	hull    []Site
	stats   chunkStats
}

func newPartial(sites []Site, edges []Edge, hull []Site, stats chunkStats) *partial {
	index := make(map[int]int, len(sites))
	for i, s := range sites {
		index[s.ID] = i
	}
	return &partial{
		sites:   sites,
		index:   index,
		edges:   edges,
		regions: buildRegions(edges),
		hull:    hull,
		stats:   stats,
	}
}

// buildRegions maps every site id to the indexes of the edges bounding it.
func buildRegions(edges []Edge) map[int][]int {
	regions := make(map[int][]int)
	for i, e := range edges {
		regions[e.Left] = append(regions[e.Left], i)
		regions[e.Right] = append(regions[e.Right], i)
	}
	return regions
}

// buildChunk runs the sweep over sites and returns their diagram.
func buildChunk(sites []Site, fr frame, clip *BoundingBox, s *settings) *partial {
	f := newFortune(sites, s)
	f.run()
	edges := f.finalizeEdges(fr, clip)

	f.log.Debug("[chunk] built",
		zap.Int("sites", len(sites)),
		zap.Int("edges", len(edges)),
		zap.Int("circle_events", f.stats.CircleEvents),
		zap.Int("stale_events", f.stats.StaleEvents))

	return newPartial(sites, edges, buildHull(sites), f.stats)
}
