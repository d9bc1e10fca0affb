package hydrograph

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/maseology/hydrograph/geom"
	"github.com/maseology/hydrograph/river"
	"github.com/maseology/hydrograph/spine"
)

// CutAndSnapCrossings resolves every reach/boundary crossing. A reach
// crossing the domain exterior is cut and only its in-domain piece kept; a
// reach crossing an interior HUC-to-HUC boundary is kept whole but gains an
// exact vertex at the crossing. The boundary segment is split at the
// crossing either way, the original handle keeping the first piece.
//
// An unexpected cut (more than 2 pieces, or an unresolvable keep-side) is a
// logic error and panics with the reach and handle involved.
func CutAndSnapCrossings(hucs *spine.HUCs, rivers []*river.River, tol float64) {
	log.Info("cutting at boundary crossings", "tol", tol)
	for _, tree := range rivers {
		for _, node := range tree.PreOrder() {
			cutAndSnapCrossing(hucs, node, tol)
		}
	}
	Cleanup(rivers, NewCleanupOptions())
}

func cutAndSnapCrossing(hucs *spine.HUCs, node *river.River, tol float64) {
	// exterior boundary: truncate the reach to its in-domain piece
	r := node.Segment
	for _, comp := range hucs.Boundaries {
		for _, hd := range comp.Handles() {
			seg := hucs.Segments.Get(hd)
			if !geom.Intersects(seg, r) {
				continue
			}
			newSpine := geom.Cut(seg, r, tol)
			newReach := geom.Cut(r, seg, tol)
			checkPieces(node, hd, newSpine, newReach)
			log.Info("cutting reach at the domain exterior", "id", node.Props.ID,
				"spinePieces", len(newSpine), "reachPieces", len(newReach))

			ext, err := hucs.Exterior()
			if err != nil {
				panic(fmt.Sprintf("hydrograph.cutAndSnapCrossing: reach %d: %v", node.Props.ID, err))
			}
			if geom.ContainsInset(ext, newReach[0][0], tol) {
				// keep the upstream (or only) piece
				if len(newReach) == 2 && geom.RingContains(ext, newReach[1][len(newReach[1])-1]) {
					panic(fmt.Sprintf("hydrograph.cutAndSnapCrossing: reach %d: both pieces in-domain", node.Props.ID))
				}
				node.Segment = newReach[0]
			} else if len(newReach) == 2 && geom.ContainsInset(ext, newReach[1][len(newReach[1])-1], tol) {
				// keep the downstream piece
				if geom.RingContains(ext, newReach[0][0]) {
					panic(fmt.Sprintf("hydrograph.cutAndSnapCrossing: reach %d: both pieces in-domain", node.Props.ID))
				}
				node.Segment = newReach[1]
			}

			hucs.Segments.Set(hd, newSpine[0])
			if len(newSpine) == 2 {
				comp.Add(hucs.Segments.Add(newSpine[1]))
			}
			break
		}
	}

	// interior boundaries: keep the reach whole, force an exact shared vertex
	r = node.Segment
	for _, comp := range hucs.Intersections {
		for _, hd := range comp.Handles() {
			seg := hucs.Segments.Get(hd)
			if !geom.Intersects(seg, r) {
				continue
			}
			newSpine := geom.Cut(seg, r, tol)
			newReach := geom.Cut(r, seg, tol)
			checkPieces(node, hd, newSpine, newReach)
			log.Info("snapping reach at an interior HUC boundary", "id", node.Props.ID)

			if len(newReach) == 2 {
				joined := make(orb.LineString, 0, len(newReach[0])+len(newReach[1])-1)
				joined = append(joined, newReach[0]...)
				joined = append(joined, newReach[1][1:]...)
				node.Segment = joined
			} else {
				node.Segment = newReach[0]
			}

			hucs.Segments.Set(hd, newSpine[0])
			if len(newSpine) == 2 {
				comp.Add(hucs.Segments.Add(newSpine[1]))
			}
			break
		}
	}
}

func checkPieces(node *river.River, hd spine.Handle, newSpine, newReach []orb.LineString) {
	if len(newSpine) < 1 || len(newSpine) > 2 || len(newReach) < 1 || len(newReach) > 2 {
		panic(fmt.Sprintf("hydrograph.cutAndSnapCrossing: reach %d x handle %d: cut into %d spine and %d reach pieces",
			node.Props.ID, hd, len(newSpine), len(newReach)))
	}
}
