package hydrograph

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/maseology/hydrograph/river"
	"github.com/maseology/hydrograph/spine"
)

// SnapOptions control the Snap tolerances. A zero value for a stage
// tolerance takes its default multiple of Tol; a negative value skips the
// stage.
type SnapOptions struct {
	Tol                float64 // base tolerance; <=0 takes DefaultTol
	TripleJunctionsTol float64 // boundary-endpoint-to-river snap; 0 takes 3*Tol
	ReachEndpointsTol  float64 // river-endpoint-to-boundary snap; 0 takes 2*Tol
	CutIntersections   bool    // cut reach/boundary crossings after snapping
}

func (o *SnapOptions) setDefaults() {
	if o.Tol <= 0. {
		o.Tol = DefaultTol
	}
	if o.TripleJunctionsTol == 0. {
		o.TripleJunctionsTol = 3. * o.Tol
	}
	if o.ReachEndpointsTol == 0. {
		o.ReachEndpointsTol = 2. * o.Tol
	}
}

// Snap makes rivers that intersect, or nearly intersect, HUC boundaries do
// so discretely, sharing exact coordinates. Boundary-segment endpoints are
// pulled onto river junction points (rivers are ground truth at triple
// junctions), river endpoints are pulled onto boundary geometry, and, when
// requested, crossings are cut so both sides carry the crossing vertex.
//
// On a recoverable inconsistency (ErrInconsistentRivers,
// ErrInconsistentHUCs) the work of earlier successful stages remains
// applied; the caller may retry with adjusted tolerances.
func Snap(hucs *spine.HUCs, rivers []*river.River, opt SnapOptions) error {
	opt.setDefaults()

	if len(rivers) == 0 {
		return nil
	}
	for _, r := range rivers {
		if !r.IsContinuous() {
			return fmt.Errorf("hydrograph.Snap: precondition: %w", ErrInconsistentRivers)
		}
	}
	if _, err := hucs.Polygons(); err != nil {
		return fmt.Errorf("hydrograph.Snap: precondition: %w: %v", ErrInconsistentHUCs, err)
	}

	if opt.TripleJunctionsTol > 0. {
		log.Info("snapping boundary segment endpoints to river junctions", "tol", opt.TripleJunctionsTol)
		snapPolygonEndpoints(hucs, rivers, opt.TripleJunctionsTol)
		if err := validate(hucs, rivers); err != nil {
			return err
		}
	}

	if opt.ReachEndpointsTol > 0. {
		log.Info("snapping river endpoints to the boundary spine", "tol", opt.ReachEndpointsTol)
		for _, tree := range rivers {
			snapReachEndpoints(tree, hucs, opt.ReachEndpointsTol)
		}
		if err := validate(hucs, rivers); err != nil {
			return err
		}
	}

	if opt.CutIntersections {
		CutAndSnapCrossings(hucs, rivers, opt.Tol)
	}

	// snapping can leave zero-length reaches behind
	Cleanup(rivers, NewCleanupOptions())
	return nil
}

func validate(hucs *spine.HUCs, rivers []*river.River) error {
	for _, r := range rivers {
		if !r.IsContinuous() {
			log.Warn("snap stage produced a discontinuous river", "id", r.Props.ID)
			return ErrInconsistentRivers
		}
	}
	if _, err := hucs.Polygons(); err != nil {
		log.Warn("snap stage produced inconsistent HUCs", "err", err)
		return fmt.Errorf("%w: %v", ErrInconsistentHUCs, err)
	}
	return nil
}
