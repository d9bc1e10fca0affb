package hydrograph

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/maseology/hydrograph/geom"
	"github.com/maseology/hydrograph/river"
)

// CleanupOptions control the Cleanup pipeline. A negative tolerance skips
// that stage.
type CleanupOptions struct {
	SimplifyTol        float64 // reach geometry simplification; default off
	PruneTol           float64 // minimum leaf reach length
	MergeTol           float64 // minimum interior reach length
	PreserveCatchments bool    // fold pruned catchment areas into the parent
}

// NewCleanupOptions returns the defaults: no simplification, prune and
// merge at DefaultTol.
func NewCleanupOptions() CleanupOptions {
	return CleanupOptions{SimplifyTol: -1., PruneTol: DefaultTol, MergeTol: DefaultTol}
}

// Cleanup re-establishes the network's length and continuity invariants in
// place: reach geometries are simplified (endpoints fixed), short interior
// reaches are merged into their parents, and short leaf reaches are pruned.
// A violated invariant on exit is an internal-consistency error and panics.
func Cleanup(rivers []*river.River, opt CleanupOptions) {
	if opt.SimplifyTol >= 0. {
		for _, tree := range rivers {
			simplifyRiver(tree, opt.SimplifyTol)
		}
	}

	for _, tree := range rivers {
		if !tree.IsConsistent() {
			panic(fmt.Sprintf("hydrograph.Cleanup: inconsistent river %d on entry", tree.Props.ID))
		}
	}

	for _, tree := range rivers {
		if opt.MergeTol >= 0. {
			mergeShortReaches(tree, opt.MergeTol)
		}
		if opt.PruneTol >= 0. {
			pruneShortLeaves(tree, opt.PruneTol, opt.PreserveCatchments)
		}
	}

	for _, tree := range rivers {
		if !tree.IsContinuous() {
			panic(fmt.Sprintf("hydrograph.Cleanup: river %d discontinuous after cleanup", tree.Props.ID))
		}
	}
	for _, tree := range rivers {
		for _, n := range tree.PreOrder() {
			if n.Parent() == nil {
				continue // a root has no parent to merge into
			}
			tol := opt.MergeTol
			if len(n.Children()) == 0 {
				tol = opt.PruneTol
			}
			if tol >= 0. && n.Length() < tol {
				panic(fmt.Sprintf("hydrograph.Cleanup: reach %d length %g < tol %g after cleanup",
					n.Props.ID, n.Length(), tol))
			}
		}
	}
}

// simplifyRiver replaces each reach geometry with its tolerance-simplified
// version. Simplification retains endpoints, so connectivity cannot change;
// a moved endpoint is a logic error.
func simplifyRiver(tree *river.River, tol float64) {
	for _, n := range tree.PreOrder() {
		s := geom.Simplify(n.Segment, tol)
		if !geom.Close(s[0], n.Segment[0], geom.Eps) || !geom.Close(s[len(s)-1], n.Segment[len(n.Segment)-1], geom.Eps) {
			panic(fmt.Sprintf("hydrograph.simplifyRiver: simplification moved an endpoint of reach %d", n.Props.ID))
		}
		n.Segment = s
	}
}

// mergeShortReaches splices every short interior reach into its parent. The
// reach's siblings are first re-homed onto its upstream coordinate so they
// survive as its children, then the reach itself is absorbed. Short leaves
// are left for pruning.
func mergeShortReaches(tree *river.River, tol float64) {
	for _, n := range tree.PreOrder() {
		if n.Parent() == nil || len(n.Children()) == 0 {
			continue
		}
		if n.Length() >= tol {
			continue
		}
		log.Debug("merging short interior reach", "id", n.Props.ID, "length", n.Length())
		for _, sib := range n.Siblings() {
			sib.MoveCoordinate(-1, n.Segment[0])
			sib.Remove()
			n.AddChild(sib)
		}
		if len(n.Siblings()) != 0 {
			panic(fmt.Sprintf("hydrograph.mergeShortReaches: reach %d still has siblings", n.Props.ID))
		}
		n.Merge()
	}
}

// pruneShortLeaves removes leaf reaches shorter than tol.
func pruneShortLeaves(tree *river.River, tol float64, preserveCatchments bool) {
	for _, leaf := range tree.Leaves() {
		if leaf.Parent() == nil {
			continue // a single-reach river cannot be pruned away
		}
		if leaf.Length() < tol {
			log.Debug("pruning short leaf reach", "id", leaf.Props.ID, "length", leaf.Length())
			leaf.Prune(preserveCatchments)
		}
	}
}
