package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// segIntersection solves the parametric intersection of segments a1-a2 and
// b1-b2. Parallel (and collinear) pairs report no intersection; endpoint
// touches count.
func segIntersection(a1, a2, b1, b2 orb.Point) (orb.Point, bool) {
	rx, ry := a2[0]-a1[0], a2[1]-a1[1]
	sx, sy := b2[0]-b1[0], b2[1]-b1[1]
	denom := rx*sy - ry*sx
	if denom == 0. {
		return orb.Point{}, false
	}
	qpx, qpy := b1[0]-a1[0], b1[1]-a1[1]
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0. || t > 1. || u < 0. || u > 1. {
		return orb.Point{}, false
	}
	return orb.Point{a1[0] + t*rx, a1[1] + t*ry}, true
}

// intersection returns the first crossing of a with b, walking a's segments
// in order, together with the index of a's segment on which it lies.
func intersection(a, b orb.LineString) (orb.Point, int, bool) {
	if !a.Bound().Pad(Eps).Intersects(b.Bound()) {
		return orb.Point{}, -1, false
	}
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			if x, ok := segIntersection(a[i], a[i+1], b[j], b[j+1]); ok {
				return x, i, true
			}
		}
	}
	return orb.Point{}, -1, false
}

// Intersection returns the first crossing point of a and b, if any.
func Intersection(a, b orb.LineString) (orb.Point, bool) {
	x, _, ok := intersection(a, b)
	return x, ok
}

// Intersects reports whether polylines a and b cross or touch.
func Intersects(a, b orb.LineString) bool {
	_, _, ok := intersection(a, b)
	return ok
}

// Cut splits ls at its first crossing with cutter, returning 1 or 2 pieces.
// The crossing point is welded onto an existing vertex of ls when one lies
// within tol, otherwise it is inserted as a new shared vertex. A crossing at
// (or welded onto) an endpoint of ls yields a single piece with that endpoint
// moved exactly onto the crossing; no crossing returns ls unchanged.
func Cut(ls, cutter orb.LineString, tol float64) []orb.LineString {
	x, i, ok := intersection(ls, cutter)
	if !ok {
		return []orb.LineString{ls.Clone()}
	}

	// weld onto the closer bracketing vertex if within tolerance
	iv := -1
	if d0, d1 := planar.Distance(ls[i], x), planar.Distance(ls[i+1], x); d0 <= d1 {
		if d0 < tol {
			iv = i
		}
	} else if d1 < tol {
		iv = i + 1
	}

	if iv >= 0 {
		out := ls.Clone()
		out[iv] = x
		if iv == 0 || iv == len(out)-1 {
			return []orb.LineString{out}
		}
		p1 := make(orb.LineString, iv+1)
		copy(p1, out[:iv+1])
		p2 := make(orb.LineString, len(out)-iv)
		copy(p2, out[iv:])
		return []orb.LineString{p1, p2}
	}

	p1 := make(orb.LineString, 0, i+2)
	p1 = append(p1, ls[:i+1]...)
	p1 = append(p1, x)
	p2 := make(orb.LineString, 0, len(ls)-i)
	p2 = append(p2, x)
	p2 = append(p2, ls[i+1:]...)
	return []orb.LineString{p1, p2}
}

// pointOnSegment projects p onto segment a-b, clamped to the segment.
func pointOnSegment(p, a, b orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0. {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	if t < 0. {
		t = 0.
	} else if t > 1. {
		t = 1.
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}

// NearestPoint returns the location on ls closest to p and its distance.
func NearestPoint(ls orb.LineString, p orb.Point) (orb.Point, float64) {
	np, nd := pointOnSegment(p, ls[0], ls[1]), 0.
	nd = planar.Distance(np, p)
	for i := 1; i < len(ls)-1; i++ {
		if q := pointOnSegment(p, ls[i], ls[i+1]); planar.Distance(q, p) < nd {
			np, nd = q, planar.Distance(q, p)
		}
	}
	return np, nd
}

// Project returns the arc length along ls to the point on ls nearest p.
func Project(ls orb.LineString, p orb.Point) float64 {
	acc, best, nd := 0., 0., -1.
	for i := 0; i < len(ls)-1; i++ {
		q := pointOnSegment(p, ls[i], ls[i+1])
		if d := planar.Distance(q, p); nd < 0. || d < nd {
			nd = d
			best = acc + planar.Distance(ls[i], q)
		}
		acc += planar.Distance(ls[i], ls[i+1])
	}
	return best
}
