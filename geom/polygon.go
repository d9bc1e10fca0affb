package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ContainsInset reports whether p lies inside ring with at least inset
// clearance from the boundary. The clearance test stands in for an inward
// polygon buffer, avoiding tangency ambiguity for points sitting on the ring.
func ContainsInset(ring orb.Ring, p orb.Point, inset float64) bool {
	if !planar.RingContains(ring, p) {
		return false
	}
	if inset <= 0. {
		return true
	}
	_, d := NearestPoint(orb.LineString(ring), p)
	return d > inset
}

// RingContains reports plain ring containment (boundary counts as inside).
func RingContains(ring orb.Ring, p orb.Point) bool {
	return planar.RingContains(ring, p)
}

// SnapToPolygonVertices moves each vertex of ls onto the nearest vertex of
// poly when one lies within tol, returning the number of vertices moved.
func SnapToPolygonVertices(ls orb.LineString, poly orb.Polygon, tol float64) int {
	n := 0
	for i, p := range ls {
		for _, ring := range poly {
			if v, d := NearestVertex(orb.LineString(ring), p); d < tol && d > 0. {
				ls[i] = v
				n++
				break
			}
		}
	}
	return n
}
