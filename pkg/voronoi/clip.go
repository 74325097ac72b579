package voronoi

// Cohen-Sutherland outcodes. Top is the Yt side.
const (
	outInside = 0
	outLeft   = 1
	outRight  = 2
	outBottom = 4
	outTop    = 8
)

func outcode(p Vertex, box BoundingBox) int {
	code := outInside
	if p.X < box.Xl {
		code |= outLeft
	} else if p.X > box.Xr {
		code |= outRight
	}
	if p.Y < box.Yt {
		code |= outTop
	} else if p.Y > box.Yb {
		code |= outBottom
	}
	return code
}

// clipSegment cuts ab to the box. ok is false when nothing of ab is inside.
func clipSegment(a, b Vertex, box BoundingBox) (Vertex, Vertex, bool) {
	ca := outcode(a, box)
	cb := outcode(b, box)
	// every pass moves one end onto a box side, four sides at most
	for i := 0; i < 8; i++ {
		if ca|cb == outInside {
			return a, b, true
		}
		if ca&cb != 0 {
			return a, b, false
		}
		out := ca
		if out == outInside {
			out = cb
		}
		var p Vertex
		switch {
		case out&outBottom != 0:
			p = Vertex{a.X + (b.X-a.X)*(box.Yb-a.Y)/(b.Y-a.Y), box.Yb}
		case out&outTop != 0:
			p = Vertex{a.X + (b.X-a.X)*(box.Yt-a.Y)/(b.Y-a.Y), box.Yt}
		case out&outRight != 0:
			p = Vertex{box.Xr, a.Y + (b.Y-a.Y)*(box.Xr-a.X)/(b.X-a.X)}
		default:
			p = Vertex{box.Xl, a.Y + (b.Y-a.Y)*(box.Xl-a.X)/(b.X-a.X)}
		}
		if out == ca {
			a, ca = p, outcode(p, box)
		} else {
			b, cb = p, outcode(p, box)
		}
	}
	return a, b, false
}

// clipEdge keeps the part of e inside box. Edges reduced to a point are dropped.
func clipEdge(e Edge, box BoundingBox) (Edge, bool) {
	start, end, ok := clipSegment(e.Start, e.End, box)
	if !ok {
		return e, false
	}
	e.Start, e.End = start, end
	return e, !e.degenerate()
}

func clipEdges(edges []Edge, box BoundingBox) []Edge {
	clipped := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if c, ok := clipEdge(e, box); ok {
			clipped = append(clipped, c)
		}
	}
	return clipped
}
