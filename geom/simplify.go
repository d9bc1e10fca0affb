package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify returns a Douglas-Peucker simplification of ls. Endpoints are
// always retained, so simplification can never break network connectivity.
func Simplify(ls orb.LineString, tol float64) orb.LineString {
	if len(ls) <= 2 {
		return ls.Clone()
	}
	out := simplify.DouglasPeucker(tol).Simplify(ls.Clone()).(orb.LineString)
	if len(out) < 2 {
		return orb.LineString{ls[0], ls[len(ls)-1]}
	}
	return out
}
