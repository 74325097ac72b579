package voronoi

import (
	"math"
)

// epsilon is the absolute tolerance of beach-line comparisons: breakpoint
// descent, collapsing arcs, circle convergence and degenerate edges.
const epsilon = 1e-9

// parallelTolerance is relative to the lengths of the two directions.
const parallelTolerance = 1e-12

type Vertex struct {
	X float64
	Y float64
}

// noVertex marks an edge end (or a colinear edge start) that the sweep has
// not produced yet.
var noVertex = Vertex{math.Inf(-1), math.Inf(-1)}

func isUnset(v Vertex) bool {
	return math.IsInf(v.X, -1) || math.IsInf(v.Y, -1)
}

func (v Vertex) Add(o Vertex) Vertex {
	return Vertex{v.X + o.X, v.Y + o.Y}
}

func (v Vertex) Sub(o Vertex) Vertex {
	return Vertex{v.X - o.X, v.Y - o.Y}
}

func (v Vertex) Scale(k float64) Vertex {
	return Vertex{v.X * k, v.Y * k}
}

func (v Vertex) Dot(o Vertex) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross is the z component of the 3D cross product.
func (v Vertex) Cross(o Vertex) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vertex) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vertex) Unit() Vertex {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vertex{v.X / l, v.Y / l}
}

// Perpendicular rotates v a quarter turn counterclockwise.
func (v Vertex) Perpendicular() Vertex {
	return Vertex{-v.Y, v.X}
}

func (v Vertex) Mid(o Vertex) Vertex {
	return Vertex{(v.X + o.X) / 2, (v.Y + o.Y) / 2}
}

func (v Vertex) finite() bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.X) && !math.IsNaN(v.Y)
}

// lessXY orders by x, then y.
func lessXY(a, b Vertex) bool {
	return a.X < b.X || (a.X == b.X && a.Y < b.Y)
}

// orientation is positive when a, b, c turn counterclockwise.
func orientation(a, b, c Vertex) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func equalWithEpsilon(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func lessThanWithEpsilon(a, b float64) bool {
	return b-a > epsilon
}

func greaterThanWithEpsilon(a, b float64) bool {
	return a-b > epsilon
}

// evalParabola returns y of the parabola with the given focus and directrix at x.
func evalParabola(focus Vertex, directrix, x float64) float64 {
	dx := x - focus.X
	return 0.5 * (dx*dx/(focus.Y-directrix) + focus.Y + directrix)
}

// intersectParabolaX is the breakpoint between the arc of left and the arc of
// right (in beach line order) for the given directrix.
func intersectParabolaX(left, right Vertex, directrix float64) float64 {
	if equalWithEpsilon(left.Y, right.Y) {
		return (left.X + right.X) / 2
	}
	dx := left.X - right.X
	dy := left.Y - right.Y
	r := (directrix - left.Y) * (directrix - right.Y) * (dx*dx + dy*dy)
	if r < 0 {
		r = 0
	}
	return (left.X*(directrix-right.Y) + right.X*(left.Y-directrix) + math.Sqrt(r)) / (left.Y - right.Y)
}

// circumcenter returns false for colinear points.
func circumcenter(a, b, c Vertex) (Vertex, bool) {
	bx := b.X - a.X
	by := b.Y - a.Y
	cx := c.X - a.X
	cy := c.Y - a.Y
	d := 2 * (bx*cy - by*cx)
	if d == 0 || math.Abs(d) < parallelTolerance*(bx*bx+by*by+cx*cx+cy*cy) {
		return Vertex{}, false
	}
	hb := bx*bx + by*by
	hc := cx*cx + cy*cy
	return Vertex{(cy*hb-by*hc)/d + a.X, (bx*hc-cx*hb)/d + a.Y}, true
}

// intersectRaySegment solves origin + t*dir = a + u*(b-a). ok is false for
// parallel lines.
func intersectRaySegment(origin, dir, a, b Vertex) (t, u float64, ok bool) {
	seg := b.Sub(a)
	den := dir.Cross(seg)
	if den == 0 || math.Abs(den) <= parallelTolerance*dir.Len()*seg.Len() {
		return 0, 0, false
	}
	ao := a.Sub(origin)
	return ao.Cross(seg) / den, ao.Cross(dir) / den, true
}

// onSegment reports whether p is within tol of the segment ab.
func onSegment(p, a, b Vertex, tol float64) bool {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Len() <= tol
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Scale(t))).Len() <= tol
}

// Bounding Box. Yt is the smaller y, Yb the larger one.
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// Create new Bounding Box
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

func (b BoundingBox) Valid() bool {
	for _, v := range []float64{b.Xl, b.Xr, b.Yt, b.Yb} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Xl < b.Xr && b.Yt < b.Yb
}

func (b BoundingBox) Width() float64 {
	return b.Xr - b.Xl
}

func (b BoundingBox) Height() float64 {
	return b.Yb - b.Yt
}

func (b BoundingBox) Diagonal() float64 {
	return math.Hypot(b.Width(), b.Height())
}

func (b BoundingBox) Contains(v Vertex) bool {
	return v.X >= b.Xl && v.X <= b.Xr && v.Y >= b.Yt && v.Y <= b.Yb
}

func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Xl: math.Min(b.Xl, o.Xl),
		Xr: math.Max(b.Xr, o.Xr),
		Yt: math.Min(b.Yt, o.Yt),
		Yb: math.Max(b.Yb, o.Yb),
	}
}

func (b BoundingBox) Expand(margin float64) BoundingBox {
	return BoundingBox{b.Xl - margin, b.Xr + margin, b.Yt - margin, b.Yb + margin}
}

// boundsOf returns the smallest box holding every point.
func boundsOf(points []Vertex) BoundingBox {
	b := BoundingBox{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, p := range points {
		b.Xl = math.Min(b.Xl, p.X)
		b.Xr = math.Max(b.Xr, p.X)
		b.Yt = math.Min(b.Yt, p.Y)
		b.Yb = math.Max(b.Yb, p.Y)
	}
	return b
}

// rayBoxExit returns the point where the ray leaves the box. The coordinate of
// the side it leaves through is exact. Origins outside the box are pushed one
// box diagonal further along the ray.
func rayBoxExit(origin, dir Vertex, box BoundingBox) Vertex {
	if dir.X == 0 && dir.Y == 0 {
		return origin
	}
	t := math.Inf(1)
	snapX, snapY := math.NaN(), math.NaN()
	if dir.X > 0 {
		t, snapX = (box.Xr-origin.X)/dir.X, box.Xr
	} else if dir.X < 0 {
		t, snapX = (box.Xl-origin.X)/dir.X, box.Xl
	}
	if dir.Y > 0 {
		if ty := (box.Yb - origin.Y) / dir.Y; ty < t {
			t, snapX, snapY = ty, math.NaN(), box.Yb
		}
	} else if dir.Y < 0 {
		if ty := (box.Yt - origin.Y) / dir.Y; ty < t {
			t, snapX, snapY = ty, math.NaN(), box.Yt
		}
	}
	if !box.Contains(origin) || t <= 0 || math.IsInf(t, 1) {
		return origin.Add(dir.Unit().Scale(box.Diagonal()))
	}
	p := origin.Add(dir.Scale(t))
	if !math.IsNaN(snapX) {
		p.X = snapX
	}
	if !math.IsNaN(snapY) {
		p.Y = snapY
	}
	return p
}
