package river_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/hydrograph/river"
)

// buildY returns a three-reach river: two headwaters joining at (10,0),
// draining to the outlet at (20,0).
func buildY() (*river.River, *river.River, *river.River) {
	root := river.New(orb.LineString{{10, 0}, {20, 0}}, river.Props{ID: 1})
	left := river.New(orb.LineString{{0, 5}, {10, 0}}, river.Props{ID: 2})
	right := river.New(orb.LineString{{0, -5}, {10, 0}}, river.Props{ID: 3})
	root.AddChild(left)
	root.AddChild(right)
	return root, left, right
}

func TestTreeBasics(t *testing.T) {
	root, left, right := buildY()
	assert.Equal(t, 3, root.Len())
	assert.Nil(t, root.Parent())
	assert.Same(t, root, left.Parent())
	assert.Len(t, root.Children(), 2)
	assert.Equal(t, []*river.River{right}, left.Siblings())
	assert.True(t, root.IsContinuous())
	assert.True(t, root.IsConsistent())
	assert.Same(t, root, left.Root())
	assert.Equal(t, []*river.River{left, root}, left.PathToRoot())
}

func TestTraversalOrder(t *testing.T) {
	root, left, right := buildY()
	pre := root.PreOrder()
	require.Len(t, pre, 3)
	assert.Same(t, root, pre[0])

	post := root.DepthFirst()
	assert.Same(t, root, post[2])

	leaves := root.Leaves()
	assert.ElementsMatch(t, []*river.River{left, right}, leaves)
}

func TestDiscontinuity(t *testing.T) {
	root, left, _ := buildY()
	left.MoveCoordinate(-1, orb.Point{9, 0})
	assert.False(t, root.IsContinuous())
}

func TestPrune(t *testing.T) {
	root, left, _ := buildY()
	left.Prune(false)
	assert.Equal(t, 2, root.Len())
	assert.Nil(t, left.Parent())
	assert.Panics(t, func() { root.Prune(false) })
}

func TestPrunePreservesCatchments(t *testing.T) {
	root, left, _ := buildY()
	root.Props.CatchmentAreaSqKm = 1.
	left.Props.CatchmentAreaSqKm = 2.5
	left.Prune(true)
	assert.InDelta(t, 3.5, root.Props.CatchmentAreaSqKm, 1e-12)
}

func TestMerge(t *testing.T) {
	// root <- mid <- leaf; merging mid extends root upstream
	root := river.New(orb.LineString{{10, 0}, {20, 0}}, river.Props{ID: 1})
	mid := river.New(orb.LineString{{9, 0}, {10, 0}}, river.Props{ID: 2})
	leaf := river.New(orb.LineString{{0, 0}, {9, 0}}, river.Props{ID: 3})
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.Merge()
	assert.Equal(t, 2, root.Len())
	assert.Equal(t, orb.Point{9, 0}, root.Segment[0])
	assert.Same(t, root, leaf.Parent())
	assert.True(t, root.IsContinuous())
}

func TestGetNode(t *testing.T) {
	root, left, _ := buildY()
	root.Props.HydroSeq = 100
	left.Props.HydroSeq = 90
	assert.Same(t, left, root.GetNode(90))
	assert.Nil(t, root.GetNode(42))
}

func TestConstructByGeometry(t *testing.T) {
	reaches := []*river.River{
		river.New(orb.LineString{{10, 0}, {20, 0}}, river.Props{ID: 1}),
		river.New(orb.LineString{{0, 5}, {10, 0.05}}, river.Props{ID: 2}),  // near-coincident junction
		river.New(orb.LineString{{0, -5}, {10, -0.05}}, river.Props{ID: 3}),
	}
	roots := river.ConstructByGeometry(reaches, 0.1)
	require.Len(t, roots, 1)
	root := roots[0]
	assert.Equal(t, 3, root.Len())
	assert.Len(t, root.Children(), 2)
	assert.True(t, root.IsContinuous(), "junction endpoints must be welded exactly")
	assert.Len(t, root.Leaves(), 2)
}

func TestConstructByGeometryForest(t *testing.T) {
	reaches := []*river.River{
		river.New(orb.LineString{{0, 0}, {10, 0}}, river.Props{ID: 1}),
		river.New(orb.LineString{{0, 100}, {10, 100}}, river.Props{ID: 2}), // disjoint river
	}
	roots := river.ConstructByGeometry(reaches, 0.1)
	assert.Len(t, roots, 2)
}

func TestConstructByHydroSeq(t *testing.T) {
	reaches := []*river.River{
		river.New(orb.LineString{{10, 0}, {20, 0}}, river.Props{ID: 1, HydroSeq: 100}),
		river.New(orb.LineString{{0, 5}, {10, 0}}, river.Props{ID: 2, HydroSeq: 90, DownstreamMainPathHydroSeq: 100}),
		river.New(orb.LineString{{0, -5}, {10, 0}}, river.Props{ID: 3, HydroSeq: 80, DownstreamMainPathHydroSeq: 100}),
	}
	roots, err := river.ConstructByHydroSeq(reaches)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, 3, roots[0].Len())
	assert.True(t, roots[0].HasVAA)
}

func TestConstructByHydroSeqMissingSeq(t *testing.T) {
	_, err := river.ConstructByHydroSeq([]*river.River{
		river.New(orb.LineString{{0, 0}, {1, 0}}, river.Props{ID: 1}),
	})
	require.Error(t, err)
}
