package hydrograph_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/hydrograph"
	"github.com/maseology/hydrograph/spine"
)

func TestSnapWaterbodies(t *testing.T) {
	h := spine.NewSingle(orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}})
	wb := orb.Polygon{{{0.05, 0.05}, {5, 0.05}, {5, 5}, {0.05, 5}, {0.05, 0.05}}}

	require.NoError(t, hydrograph.SnapWaterbodies(h, []orb.Polygon{wb}, 0.1))

	// the corner vertex moved onto the HUC corner; ring closure held
	assert.Equal(t, orb.Point{0, 0}, wb[0][0])
	assert.Equal(t, wb[0][0], wb[0][len(wb[0])-1])
	// distant vertices did not move
	assert.Equal(t, orb.Point{5, 5}, wb[0][2])
}

func TestSnapWaterbodiesEmpty(t *testing.T) {
	h := spine.NewSingle(orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}})
	assert.NoError(t, hydrograph.SnapWaterbodies(h, nil, 0.1))
}

func TestSnapWaterbodiesBrokenHUCs(t *testing.T) {
	h := spine.NewHUCs(1)
	h.AddBoundary(0, orb.LineString{{0, 0}, {10, 0}})
	err := hydrograph.SnapWaterbodies(h, []orb.Polygon{}, 0.1)
	assert.Error(t, err)
}
