package voronoi

import (
	"math"

	"go.uber.org/zap"
)

// arc is one parabola section of the beach line. edge is the half-edge traced
// by its left breakpoint; event is the id of its pending circle event or -1.
type arc struct {
	site         int
	edge         int
	event        int
	eventX       float64
	eventYCenter float64
}

func (f *fortune) newArc(site int) int {
	if len(f.arcs) == cap(f.arcs) {
		fatalf(ErrCapacity, "arc arena holds %d arcs", cap(f.arcs))
	}
	f.arcs = append(f.arcs, arc{site: site, edge: -1, event: -1})
	return len(f.arcs) - 1
}

func (f *fortune) arcAt(node int) *arc {
	return &f.arcs[f.beachline.value[node]]
}

func (f *fortune) focus(node int) Vertex {
	return f.sites[f.arcAt(node).site].Vertex
}

func (f *fortune) leftBreakPoint(node int, directrix float64) float64 {
	focus := f.focus(node)
	if focus.Y == directrix {
		return focus.X
	}
	prev := f.beachline.previous[node]
	if prev == nilNode {
		return math.Inf(-1)
	}
	left := f.focus(prev)
	if left.Y == directrix {
		return left.X
	}
	return intersectParabolaX(left, focus, directrix)
}

func (f *fortune) rightBreakPoint(node int, directrix float64) float64 {
	if next := f.beachline.next[node]; next != nilNode {
		return f.leftBreakPoint(next, directrix)
	}
	focus := f.focus(node)
	if focus.Y == directrix {
		return focus.X
	}
	return math.Inf(1)
}

// addBeachSection handles a site event.
func (f *fortune) addBeachSection(site int) {
	x := f.sites[site].X
	directrix := f.sites[site].Y

	lNode, rNode := nilNode, nilNode
	node := f.beachline.root
	for node != nilNode {
		dxl := f.leftBreakPoint(node, directrix) - x
		if greaterThanWithEpsilon(dxl, 0) {
			if f.beachline.left[node] == nilNode {
				rNode = node
				break
			}
			node = f.beachline.left[node]
			continue
		}
		dxr := x - f.rightBreakPoint(node, directrix)
		if greaterThanWithEpsilon(dxr, 0) {
			if f.beachline.right[node] == nilNode {
				lNode = node
				break
			}
			node = f.beachline.right[node]
			continue
		}
		switch {
		case dxl > -epsilon:
			lNode, rNode = f.beachline.previous[node], node
		case dxr > -epsilon:
			lNode, rNode = node, f.beachline.next[node]
		default:
			lNode, rNode = node, node
		}
		break
	}

	newNode := f.beachline.insertSuccessor(lNode, f.newArc(site))

	switch {
	case lNode == nilNode && rNode == nilNode:
		f.log.Debug("[beach] first arc", zap.Int("site", f.sites[site].ID))
	case lNode == rNode:
		f.splitArc(lNode, newNode, x, directrix)
	case rNode == nilNode:
		f.openColinear(lNode, newNode)
	case lNode == nilNode:
		f.openColinear(newNode, rNode)
	default:
		f.splitBreakpoint(lNode, newNode, rNode, x, directrix)
	}
}

// splitArc inserts the new arc in the middle of node and a copy of node right
// after it. The two breakpoints start at the same point and run apart.
func (f *fortune) splitArc(node, newNode int, x, directrix float64) {
	f.detachCircleEvent(node)
	dup := f.beachline.insertSuccessor(newNode, f.newArc(f.arcAt(node).site))

	start := Vertex{x, evalParabola(f.focus(node), directrix, x)}
	e := f.createEdgePair(start, f.arcAt(node).site, f.arcAt(newNode).site)
	f.arcAt(newNode).edge = e
	f.arcAt(dup).edge = e + 1

	f.attachCircleEvent(node)
	f.attachCircleEvent(dup)
}

// openColinear starts the bisector of two arcs whose foci lie on the
// directrix. It comes from y = -Inf, so the start stays unset.
func (f *fortune) openColinear(lNode, rNode int) {
	f.arcAt(rNode).edge = f.createEdgePair(noVertex, f.arcAt(lNode).site, f.arcAt(rNode).site)
}

// splitBreakpoint handles a site that falls exactly on the breakpoint of two
// arcs: the breakpoint edge ends at the circumcenter where two new ones start.
func (f *fortune) splitBreakpoint(lNode, newNode, rNode int, x, directrix float64) {
	f.detachCircleEvent(lNode)
	f.detachCircleEvent(rNode)

	l, s, r := f.arcAt(lNode).site, f.arcAt(newNode).site, f.arcAt(rNode).site
	vertex, ok := circumcenter(f.sites[l].Vertex, f.sites[s].Vertex, f.sites[r].Vertex)
	if !ok {
		f.log.Debug("[beach] colinear breakpoint, splitting left arc",
			zap.Int("site", f.sites[s].ID))
		f.splitArc(lNode, newNode, x, directrix)
		f.attachCircleEvent(rNode)
		return
	}

	f.edges[f.arcAt(rNode).edge].end = vertex
	f.arcAt(newNode).edge = f.createEdge(vertex, l, s)
	f.arcAt(rNode).edge = f.createEdge(vertex, s, r)

	f.attachCircleEvent(lNode)
	f.attachCircleEvent(rNode)
}

// collapsesAt reports whether the arc at node vanishes at the vertex (x, y).
func (f *fortune) collapsesAt(node int, x, y float64) bool {
	a := f.arcAt(node)
	return a.event >= 0 && equalWithEpsilon(x, a.eventX) && equalWithEpsilon(y, a.eventYCenter)
}

func (f *fortune) detachBeachSection(node int) {
	f.detachCircleEvent(node)
	f.beachline.removeNode(node)
}

// removeBeachSection handles a circle event. Every arc vanishing at the same
// vertex goes in one pass.
func (f *fortune) removeBeachSection(ev event) {
	x, y := ev.x, ev.yCenter
	vertex := Vertex{x, y}

	node := ev.node
	previous := f.beachline.previous[node]
	next := f.beachline.next[node]
	f.arcAt(node).event = -1
	f.beachline.removeNode(node)

	disappearing := []int{node}

	lNode := previous
	for f.collapsesAt(lNode, x, y) {
		previous = f.beachline.previous[lNode]
		disappearing = append([]int{lNode}, disappearing...)
		f.detachBeachSection(lNode)
		lNode = previous
	}
	disappearing = append([]int{lNode}, disappearing...)
	f.detachCircleEvent(lNode)

	rNode := next
	for f.collapsesAt(rNode, x, y) {
		next = f.beachline.next[rNode]
		disappearing = append(disappearing, rNode)
		f.detachBeachSection(rNode)
		rNode = next
	}
	disappearing = append(disappearing, rNode)
	f.detachCircleEvent(rNode)

	for _, n := range disappearing[1:] {
		f.edges[f.arcAt(n).edge].end = vertex
	}

	f.arcAt(rNode).edge = f.createEdge(vertex, f.arcAt(lNode).site, f.arcAt(rNode).site)
	if len(disappearing) > 3 {
		f.log.Debug("[beach] degenerate vertex",
			zap.Float64("x", x), zap.Float64("y", y), zap.Int("arcs", len(disappearing)-2))
	}

	f.attachCircleEvent(lNode)
	f.attachCircleEvent(rNode)
}

// attachCircleEvent schedules the collapse of the arc at node if its
// neighbours converge, i.e. the turn prev -> site -> next is clockwise.
func (f *fortune) attachCircleEvent(node int) {
	prev := f.beachline.previous[node]
	next := f.beachline.next[node]
	if prev == nilNode || next == nilNode {
		return
	}
	ls, rs := f.arcAt(prev).site, f.arcAt(next).site
	if ls == rs {
		return
	}

	c := f.focus(node)
	a := f.sites[ls].Sub(c)
	b := f.sites[rs].Sub(c)
	d := 2 * a.Cross(b)
	if d >= -epsilon {
		return
	}
	ha := a.Dot(a)
	hb := b.Dot(b)
	x := (b.Y*ha - a.Y*hb) / d
	y := (a.X*hb - b.X*ha) / d
	yCenter := y + c.Y

	ev := event{
		id:      f.nextEventID(),
		kind:    circleEvent,
		x:       x + c.X,
		y:       yCenter + math.Hypot(x, y),
		yCenter: yCenter,
		site:    -1,
		node:    node,
	}
	cur := f.arcAt(node)
	cur.event = ev.id
	cur.eventX = ev.x
	cur.eventYCenter = ev.yCenter
	f.pushEvent(ev)
	f.stats.CircleEvents++
}

// detachCircleEvent invalidates the pending event of the arc; the queue drops
// it when it comes up.
func (f *fortune) detachCircleEvent(node int) {
	a := f.arcAt(node)
	if a.event < 0 {
		return
	}
	f.deleted[a.event] = struct{}{}
	a.event = -1
}
