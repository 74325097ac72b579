package voronoi

import (
	"sort"
)

// buildHull returns the convex hull of sites in counterclockwise order
// (Andrew's monotone chain). Points on hull edges are left out.
func buildHull(sites []Site) []Site {
	pts := append([]Site(nil), sites...)
	sort.Slice(pts, func(i, j int) bool {
		return lessXY(pts[i].Vertex, pts[j].Vertex)
	})
	if len(pts) < 3 {
		return pts
	}

	hull := make([]Site, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && orientation(hull[len(hull)-2].Vertex, hull[len(hull)-1].Vertex, p.Vertex) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && orientation(hull[len(hull)-2].Vertex, hull[len(hull)-1].Vertex, p.Vertex) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// hullContains reports whether p lies inside the hull or within tol of its
// boundary.
func hullContains(hull []Site, p Vertex, tol float64) bool {
	switch len(hull) {
	case 0:
		return false
	case 1:
		return p.Sub(hull[0].Vertex).Len() <= tol
	case 2:
		return onSegment(p, hull[0].Vertex, hull[1].Vertex, tol)
	}
	for i := range hull {
		a := hull[i].Vertex
		b := hull[(i+1)%len(hull)].Vertex
		if b.Sub(a).Unit().Cross(p.Sub(a)) < -tol {
			return false
		}
	}
	return true
}

// hullMerge is the hull of two partials together with the tangent points the
// dividing chain starts and ends at.
type hullMerge struct {
	hull       []Site
	leftUpper  Site
	rightUpper Site
	leftLower  Site
	rightLower Site
}

// mergeHulls joins two hulls separated by a vertical line, left before right.
// Upper is the tangent both hulls lie clockwise of.
func mergeHulls(left, right []Site) hullMerge {
	n, m := len(left), len(right)
	lx, rx := 0, 0
	for i := range left {
		if lessXY(left[lx].Vertex, left[i].Vertex) {
			lx = i
		}
	}
	for i := range right {
		if lessXY(right[i].Vertex, right[rx].Vertex) {
			rx = i
		}
	}

	limit := 2*(n+m) + 8
	steps := 0
	step := func() {
		steps++
		if steps > limit {
			fatalf(ErrMergeDiverged, "hull tangent search after %d steps (%d+%d points)", steps, n, m)
		}
	}

	ua, ub := lx, rx
	for moved := true; moved; {
		moved = false
		for orientation(left[ua].Vertex, right[ub].Vertex, left[(ua+1)%n].Vertex) > 0 {
			ua = (ua + 1) % n
			moved = true
			step()
		}
		for orientation(left[ua].Vertex, right[ub].Vertex, right[(ub-1+m)%m].Vertex) > 0 {
			ub = (ub - 1 + m) % m
			moved = true
			step()
		}
	}

	la, lb := lx, rx
	for moved := true; moved; {
		moved = false
		for orientation(left[la].Vertex, right[lb].Vertex, left[(la-1+n)%n].Vertex) < 0 {
			la = (la - 1 + n) % n
			moved = true
			step()
		}
		for orientation(left[la].Vertex, right[lb].Vertex, right[(lb+1)%m].Vertex) < 0 {
			lb = (lb + 1) % m
			moved = true
			step()
		}
	}

	hull := make([]Site, 0, n+m)
	for i := ua; ; i = (i + 1) % n {
		hull = append(hull, left[i])
		if i == la {
			break
		}
	}
	for i := lb; ; i = (i + 1) % m {
		hull = append(hull, right[i])
		if i == ub {
			break
		}
	}
	if len(hull) < 3 {
		all := make([]Site, 0, n+m)
		all = append(all, left...)
		all = append(all, right...)
		hull = buildHull(all)
	}

	return hullMerge{
		hull:       hull,
		leftUpper:  left[ua],
		rightUpper: right[ub],
		leftLower:  left[la],
		rightLower: right[lb],
	}
}
