package hydrograph

import (
	"github.com/charmbracelet/log"

	"github.com/maseology/hydrograph/river"
)

// PruneByArea drops whole rivers whose total contributing drainage area is
// below area, then prunes any child subtree of a surviving river below the
// threshold (top-down, children only, so an already-removed subtree is
// never revisited). Returns the surviving rivers and the number of reaches
// removed by partial pruning.
func PruneByArea(rivers []*river.River, area float64, preserveCatchments bool) ([]*river.River, int) {
	log.Info("pruning by total contributing area", "area", area)
	count := 0
	var keep []*river.River
	for _, tree := range rivers {
		if tree.Props.DrainAreaSqKm < area {
			continue
		}
		count += pruneRiverByArea(tree, area, preserveCatchments)
		keep = append(keep, tree)
	}
	log.Info("pruned", "reaches", count, "rivers", len(rivers)-len(keep))
	return keep, count
}

func pruneRiverByArea(tree *river.River, area float64, preserveCatchments bool) int {
	count := 0
	for _, node := range tree.PreOrder() {
		for _, child := range node.Children() {
			if child.Props.DrainAreaSqKm < area {
				log.Debug("removing tributary", "reaches", child.Len(), "area", child.Props.DrainAreaSqKm)
				count += child.Len()
				child.Prune(preserveCatchments)
			}
		}
	}
	return count
}

// hasVAA reports whether the forest carries hydro-sequence attributes; the
// divergence filters cannot classify without them.
func hasVAA(rivers []*river.River) bool {
	for _, tree := range rivers {
		if !tree.HasVAA {
			return false
		}
	}
	return true
}

// branchPoint walks from a divergent leaf toward the root and returns the
// first node whose parent has more than one child: the branch to prune.
// A nil return means the whole path to the root is a single chain.
func branchPoint(leaf *river.River) *river.River {
	for _, n := range leaf.PathToRoot() {
		if n.Parent() != nil && len(n.Parent().Children()) > 1 {
			return n
		}
	}
	return nil
}

// RemoveDiversions removes divergent paths that exit the river network
// entirely (their upstream main path resolves to no reach in the tree),
// leaving braids alone. A diversion with no branch point drops its whole
// river. Returns the surviving rivers and the counts of pruned tributaries
// and reaches.
func RemoveDiversions(rivers []*river.River, preserveCatchments bool) ([]*river.River, int, int, error) {
	if !hasVAA(rivers) {
		return nil, 0, 0, ErrNoHydroSeq
	}
	log.Info("removing diversions")
	var keep []*river.River
	tribs, reaches := 0, 0
	for _, tree := range rivers {
		keepRiver := true
		for _, leaf := range tree.Leaves() {
			if leaf.Props.DivergenceCode != river.MinorDivergence {
				continue
			}
			if tree.GetNode(leaf.Props.UpstreamMainPathHydroSeq) != nil {
				continue // rejoins the network: a braid, not a diversion
			}
			joiner := branchPoint(leaf)
			if joiner == nil {
				log.Info("removing diversion river", "reaches", tree.Len())
				keepRiver = false
				break
			}
			tribs++
			reaches += joiner.Len()
			joiner.Prune(preserveCatchments)
		}
		if keepRiver {
			keep = append(keep, tree)
		}
	}
	log.Info("removed diversion tributaries", "tributaries", tribs, "reaches", reaches)
	return keep, tribs, reaches, nil
}

// RemoveBraids removes divergent paths that rejoin their own river (their
// upstream main path resolves inside the tree), leaving diversions alone.
// Every river survives: a braid always has a branch point, and its absence
// is a logic error.
func RemoveBraids(rivers []*river.River, preserveCatchments bool) ([]*river.River, int, int, error) {
	if !hasVAA(rivers) {
		return nil, 0, 0, ErrNoHydroSeq
	}
	log.Info("removing braided sections")
	tribs, reaches := 0, 0
	for _, tree := range rivers {
		for _, leaf := range tree.Leaves() {
			if leaf.Props.DivergenceCode != river.MinorDivergence {
				continue
			}
			if tree.GetNode(leaf.Props.UpstreamMainPathHydroSeq) == nil {
				continue // exits the network: a diversion, not a braid
			}
			joiner := branchPoint(leaf)
			if joiner == nil {
				panic("hydrograph.RemoveBraids: braid with no branch point")
			}
			tribs++
			reaches += joiner.Len()
			joiner.Prune(preserveCatchments)
		}
	}
	log.Info("removed braids", "tributaries", tribs, "reaches", reaches)
	return rivers, tribs, reaches, nil
}

// RemoveDivergences removes every divergent path, braid or diversion. A
// divergence with no branch point drops its whole river.
func RemoveDivergences(rivers []*river.River, preserveCatchments bool) ([]*river.River, int, int, error) {
	if !hasVAA(rivers) {
		return nil, 0, 0, ErrNoHydroSeq
	}
	log.Info("removing divergent sections")
	var keep []*river.River
	tribs, reaches := 0, 0
	for _, tree := range rivers {
		keepRiver := true
		for _, leaf := range tree.Leaves() {
			if leaf.Props.DivergenceCode != river.MinorDivergence {
				continue
			}
			joiner := branchPoint(leaf)
			if joiner == nil {
				log.Info("removing divergence river", "reaches", tree.Len())
				keepRiver = false
				break
			}
			tribs++
			reaches += joiner.Len()
			joiner.Prune(preserveCatchments)
		}
		if keepRiver {
			keep = append(keep, tree)
		}
	}
	log.Info("removed divergence tributaries", "tributaries", tribs, "reaches", reaches)
	return keep, tribs, reaches, nil
}

// FilterSmallRivers drops any river with fewer than count reaches; no
// partial pruning. Returns the survivors and the total reach count removed.
func FilterSmallRivers(rivers []*river.River, count int) ([]*river.River, int) {
	log.Info("removing small rivers", "minReaches", count)
	var keep []*river.River
	removed := 0
	for _, tree := range rivers {
		if n := tree.Len(); n < count {
			log.Debug("removing river", "reaches", n)
			removed += n
		} else {
			keep = append(keep, tree)
		}
	}
	log.Info("removed rivers", "count", len(rivers)-len(keep), "reaches", removed)
	return keep, removed
}
