// Package geom holds the planar polyline primitives needed to condition
// hydrographic networks: crossing detection, tolerance-based cutting,
// nearest-point projection and endpoint-preserving simplification. All
// geometries are paulmach/orb types in projected (planar) coordinates.
package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Eps is the coincidence tolerance: points closer than this are the same point.
const Eps = 1e-7

// Close reports whether a and b coincide within tol.
func Close(a, b orb.Point, tol float64) bool {
	return planar.Distance(a, b) < tol
}

// Length returns the planar arc length of ls.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// InNeighborhood is a cheap prefilter: reports whether p falls within the
// bounding box of ls padded by tol.
func InNeighborhood(p orb.Point, ls orb.LineString, tol float64) bool {
	return ls.Bound().Pad(tol).Contains(p)
}

// NearestVertex returns the vertex of ls closest to p and its distance.
func NearestVertex(ls orb.LineString, p orb.Point) (orb.Point, float64) {
	vi, vd := 0, planar.Distance(ls[0], p)
	for i := 1; i < len(ls); i++ {
		if d := planar.Distance(ls[i], p); d < vd {
			vi, vd = i, d
		}
	}
	return ls[vi], vd
}
