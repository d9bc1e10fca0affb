package geom_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/hydrograph/geom"
)

func ls(pts ...[2]float64) orb.LineString {
	out := make(orb.LineString, len(pts))
	for i, p := range pts {
		out[i] = orb.Point(p)
	}
	return out
}

func TestIntersection(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	b := ls([2]float64{5, -1}, [2]float64{5, 1})
	x, ok := geom.Intersection(a, b)
	require.True(t, ok)
	assert.InDelta(t, 5., x[0], 1e-12)
	assert.InDelta(t, 0., x[1], 1e-12)

	c := ls([2]float64{0, 5}, [2]float64{10, 5})
	_, ok = geom.Intersection(a, c)
	assert.False(t, ok)
}

func TestIntersectionEndpointTouch(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	b := ls([2]float64{10, 0}, [2]float64{10, 5})
	x, ok := geom.Intersection(a, b)
	require.True(t, ok)
	assert.Equal(t, orb.Point{10, 0}, x)
}

func TestCutMidSegment(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	b := ls([2]float64{4, -1}, [2]float64{4, 1})
	pieces := geom.Cut(a, b, 0.1)
	require.Len(t, pieces, 2)
	assert.Equal(t, orb.LineString{{0, 0}, {4, 0}}, pieces[0])
	assert.Equal(t, orb.LineString{{4, 0}, {10, 0}}, pieces[1])
}

func TestCutWeldsNearbyVertex(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{4.05, 0}, [2]float64{10, 0})
	b := ls([2]float64{4, -1}, [2]float64{4, 1})
	pieces := geom.Cut(a, b, 0.1)
	require.Len(t, pieces, 2)
	// the interior vertex at x=4.05 is welded onto the crossing, not duplicated
	assert.Equal(t, orb.LineString{{0, 0}, {4, 0}}, pieces[0])
	assert.Len(t, pieces[1], 2)
}

func TestCutAtEndpoint(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	b := ls([2]float64{0.05, -1}, [2]float64{0.05, 1})
	pieces := geom.Cut(a, b, 0.1)
	require.Len(t, pieces, 1) // crossing welds onto the start vertex
	assert.Equal(t, orb.Point{0.05, 0}, pieces[0][0])
}

func TestCutNoCrossing(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	b := ls([2]float64{0, 5}, [2]float64{10, 5})
	pieces := geom.Cut(a, b, 0.1)
	require.Len(t, pieces, 1)
	assert.Equal(t, a, pieces[0])
}

func TestNearestPoint(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10})
	np, d := geom.NearestPoint(a, orb.Point{4, 3})
	assert.Equal(t, orb.Point{4, 0}, np)
	assert.InDelta(t, 3., d, 1e-12)

	np, d = geom.NearestPoint(a, orb.Point{12, 5})
	assert.Equal(t, orb.Point{10, 5}, np)
	assert.InDelta(t, 2., d, 1e-12)
}

func TestProject(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10})
	assert.InDelta(t, 4., geom.Project(a, orb.Point{4, 1}), 1e-12)
	assert.InDelta(t, 15., geom.Project(a, orb.Point{11, 5}), 1e-12)
	assert.InDelta(t, 0., geom.Project(a, orb.Point{-1, 0}), 1e-12)
}

func TestNearestVertex(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	v, d := geom.NearestVertex(a, orb.Point{9, 1})
	assert.Equal(t, orb.Point{10, 0}, v)
	assert.InDelta(t, 1.4142135, d, 1e-6)
}

func TestContainsInset(t *testing.T) {
	ring := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	assert.True(t, geom.ContainsInset(ring, orb.Point{5, 5}, 0.1))
	assert.False(t, geom.ContainsInset(ring, orb.Point{5, 0.05}, 0.1)) // inside but hugging the boundary
	assert.False(t, geom.ContainsInset(ring, orb.Point{5, -1}, 0.1))
}

func TestSimplifyKeepsEndpoints(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{5, 0.01}, [2]float64{10, 0})
	s := geom.Simplify(a, 0.1)
	require.GreaterOrEqual(t, len(s), 2)
	assert.Equal(t, a[0], s[0])
	assert.Equal(t, a[len(a)-1], s[len(s)-1])
	assert.Len(t, s, 2) // the 1cm wiggle is gone
}

func TestInNeighborhood(t *testing.T) {
	a := ls([2]float64{0, 0}, [2]float64{10, 0})
	assert.True(t, geom.InNeighborhood(orb.Point{5, 0.05}, a, 0.1))
	assert.False(t, geom.InNeighborhood(orb.Point{5, 5}, a, 0.1))
}
