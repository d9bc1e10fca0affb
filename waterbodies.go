package hydrograph

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/maseology/hydrograph/geom"
	"github.com/maseology/hydrograph/spine"
)

// SnapWaterbodies makes waterbodies that nearly touch HUC boundaries touch
// them discretely: every waterbody vertex within tol of a HUC polygon
// vertex is moved onto it, in place. Ring closure is preserved.
func SnapWaterbodies(hucs *spine.HUCs, waterbodies []orb.Polygon, tol float64) error {
	polys, err := hucs.Polygons()
	if err != nil {
		return fmt.Errorf("hydrograph.SnapWaterbodies: %w", err)
	}
	if len(waterbodies) == 0 {
		return nil
	}

	log.Info("snapping waterbody points to HUC boundaries", "tol", tol)
	moved := 0
	for _, wb := range waterbodies {
		for _, ring := range wb {
			ls := orb.LineString(ring[:len(ring)-1]) // closing vertex handled after
			for _, poly := range polys {
				moved += geom.SnapToPolygonVertices(ls, poly, tol)
			}
			ring[len(ring)-1] = ring[0]
		}
	}
	log.Info("snapped waterbody vertices", "moved", moved)
	return nil
}
