// Package hydrograph conditions a hydrographic river network (a forest of
// reach trees) so that it is topologically consistent with a set of
// watershed boundary polygons held as a shared-segment spine, then
// simplifies the network on hydrologic semantics (drainage area, braids,
// diversions).
//
// The intended call order is Snap, then Cleanup, then any of the hydrologic
// filters; later stages assume the invariants the earlier ones establish.
// All operations mutate the rivers and the spine in place over a
// deterministic traversal order; nothing here is safe for concurrent
// callers.
package hydrograph

import "errors"

// DefaultTol is the default snapping tolerance, in the length units of the
// projected coordinates (meters, typically).
const DefaultTol = 0.1

var (
	// ErrInconsistentRivers signals that a snapping stage broke river-tree
	// continuity. Recoverable: retry with different tolerances.
	ErrInconsistentRivers = errors.New("hydrograph: snapping produced discontinuous rivers")

	// ErrInconsistentHUCs signals that a snapping stage left the boundary
	// spine unable to reconstruct closed polygons. Recoverable likewise.
	ErrInconsistentHUCs = errors.New("hydrograph: snapping produced non-reconstructible HUC polygons")

	// ErrNoHydroSeq is returned by the divergence filters when the forest
	// was not built with hydro-sequence attributes.
	ErrNoHydroSeq = errors.New("hydrograph: river forest carries no hydro-sequence attributes")
)
