package hydrograph

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"

	"github.com/maseology/hydrograph/geom"
	"github.com/maseology/hydrograph/river"
	"github.com/maseology/hydrograph/spine"
)

type junction struct{ p orb.Point }

func (j junction) Point() orb.Point { return j.p }

// snapPolygonEndpoints pulls the endpoints of every boundary segment onto
// the nearest river junction point within tol. Rivers are ground truth at
// triple junctions, so only the spine moves. The junction index holds the
// downstream terminus of every reach plus the upstream terminus of every
// leaf, and is built once: segment rewrites never touch river coordinates,
// so the index stays valid for the whole pass.
func snapPolygonEndpoints(hucs *spine.HUCs, rivers []*river.River, tol float64) {
	var pts []orb.Point
	for _, tree := range rivers {
		for _, n := range tree.DepthFirst() {
			pts = append(pts, n.Segment[len(n.Segment)-1])
		}
		for _, n := range tree.Leaves() {
			pts = append(pts, n.Segment[0])
		}
	}

	bnd := orb.Bound{Min: pts[0], Max: pts[0]}
	for _, p := range pts {
		bnd = bnd.Extend(p)
	}
	qt := quadtree.New(bnd.Pad(1.))
	for _, p := range pts {
		if err := qt.Add(junction{p}); err != nil {
			panic(fmt.Sprintf("hydrograph.snapPolygonEndpoints: %v", err))
		}
	}

	for _, hd := range hucs.Segments.Handles() {
		seg := hucs.Segments.Get(hd)
		altered := false
		newSeg := seg.Clone()
		for _, i := range []int{0, len(seg) - 1} {
			near := qt.Find(seg[i]).Point()
			if d := planar.Distance(near, seg[i]); d < tol && d > 0. {
				log.Debug("moving boundary segment endpoint to river junction", "from", seg[i], "to", near)
				newSeg[i] = near
				altered = true
			}
		}
		if altered {
			hucs.Segments.Set(hd, newSeg)
		}
	}
}

// pendingSnap records one reach endpoint snapped onto a boundary segment,
// to be inserted into the spine once the whole traversal is done.
type pendingSnap struct {
	handle spine.Handle
	comp   *spine.Component
	end    int // 0 upstream endpoint, -1 downstream endpoint
	node   *river.River
}

func (p pendingSnap) coord() orb.Point {
	if p.end == 0 {
		return p.node.Segment[0]
	}
	return p.node.Segment[len(p.node.Segment)-1]
}

// closestPoint finds the location on seg nearest p, or reports none when p
// is out of the padded neighborhood, beyond tol, or already sits on one of
// seg's coordinates (the idempotence guard).
func closestPoint(p orb.Point, seg orb.LineString, tol float64) (orb.Point, bool) {
	if !geom.InNeighborhood(p, seg, tol) {
		return orb.Point{}, false
	}
	np, d := geom.NearestPoint(seg, p)
	if d >= tol {
		return orb.Point{}, false
	}
	if d < geom.Eps {
		for _, c := range seg {
			if geom.Close(p, c, geom.Eps) {
				return orb.Point{}, false
			}
		}
	}
	return np, true
}

// snapReachEndpoints pulls both endpoints of every reach in the tree onto
// nearby boundary geometry, then inserts the snapped points into the spine,
// splitting boundary segments so every snap point becomes a shared vertex.
// Components are scanned boundaries-first in stored order; the first
// segment within tolerance wins.
func snapReachEndpoints(tree *river.River, hucs *spine.HUCs, tol float64) {
	var pend []pendingSnap
	for _, node := range tree.PreOrder() {
		for _, comp := range hucs.Components() {
			for _, end := range []int{0, -1} {
				for _, hd := range comp.Handles() {
					seg := hucs.Segments.Get(hd)
					i := end
					if i < 0 {
						i += len(node.Segment)
					}
					nc, ok := closestPoint(node.Segment[i], seg, tol)
					if !ok {
						continue
					}
					// prefer an existing spine vertex over a mid-segment point
					if v, d := geom.NearestVertex(seg, nc); d < tol {
						nc = v
					}
					log.Debug("snapped reach endpoint", "id", node.Props.ID, "end", end, "from", node.Segment[i], "to", nc)
					trimTowards(node, end, nc)
					pend = append(pend, pendingSnap{hd, comp, end, node})
					break
				}
			}
		}
	}
	insertPending(hucs, pend, tol)
}

// trimTowards rewrites the reach endpoint to nc, first dropping interior
// coordinates left on the far side of the move (those now farther from nc
// than the old endpoint was), which collapses degenerate short runs.
func trimTowards(node *river.River, end int, nc orb.Point) {
	coords := node.Segment.Clone()
	if end == 0 {
		for len(coords) > 2 && planar.Distance(nc, coords[1]) < planar.Distance(nc, coords[0]) {
			coords = coords[1:]
		}
		coords[0] = nc
	} else {
		for len(coords) > 2 && planar.Distance(nc, coords[len(coords)-2]) < planar.Distance(nc, coords[len(coords)-1]) {
			coords = coords[:len(coords)-1]
		}
		coords[len(coords)-1] = nc
	}
	node.Segment = coords
}

// insertPending batches the snapped reach endpoints into the spine. Points
// are grouped by target segment, deduplicated, merged with the segment's
// vertices in arc-length order and the segment is split at every inserted
// point: the original handle keeps the first piece, the rest are appended
// to the component that referenced it.
func insertPending(hucs *spine.HUCs, pend []pendingSnap, tol float64) {
	byHandle := map[spine.Handle][]pendingSnap{}
	var order []spine.Handle
	for _, p := range pend {
		if _, ok := byHandle[p.handle]; !ok {
			order = append(order, p.handle)
		}
		byHandle[p.handle] = append(byHandle[p.handle], p)
	}

	for _, hd := range order {
		// dedupe near-coincident insertions on the same segment
		var list []pendingSnap
		for _, p := range byHandle[hd] {
			dup := false
			for _, q := range list {
				if geom.Close(p.coord(), q.coord(), 1e-5) {
					if p.comp != q.comp {
						panic("hydrograph.insertPending: coincident snaps from different components")
					}
					dup = true
					break
				}
			}
			if !dup {
				list = append(list, p)
			}
		}
		splitSegmentAt(hucs, hd, list, tol)
	}
}

type mergedCoord struct {
	c     orb.Point
	isNew bool
}

func splitSegmentAt(hucs *spine.HUCs, hd spine.Handle, list []pendingSnap, tol float64) {
	seg := hucs.Segments.Get(hd)
	ring := geom.Close(seg[0], seg[len(seg)-1], geom.Eps)

	var merged []mergedCoord
	for _, p := range list {
		merged = append(merged, mergedCoord{p.coord(), true})
	}
	old := seg
	if ring {
		old = seg[:len(seg)-1] // the shared start/end vertex must not sort twice
	}
	for _, c := range old {
		near := false
		for _, p := range list {
			if geom.Close(c, p.coord(), tol) {
				near = true
				break
			}
		}
		if !near {
			merged = append(merged, mergedCoord{c, false})
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return geom.Project(seg, merged[i].c) < geom.Project(seg, merged[j].c)
	})

	if ring {
		// rotate so the ring begins (and closes) on an inserted point
		b0 := -1
		for i, m := range merged {
			if m.isNew {
				b0 = i
				break
			}
		}
		rot := make([]mergedCoord, 0, len(merged)+1)
		rot = append(rot, merged[b0:]...)
		rot = append(rot, merged[:b0+1]...)
		rot[0].isNew = false
		rot[len(rot)-1].isNew = false
		merged = rot
	} else {
		// an insertion landing exactly on a segment endpoint splits nothing
		merged[0].isNew = false
		merged[len(merged)-1].isNew = false
	}

	var pieces []orb.LineString
	start := 0
	for i, m := range merged {
		if !m.isNew {
			continue
		}
		piece := make(orb.LineString, 0, i-start+1)
		for _, mc := range merged[start : i+1] {
			piece = append(piece, mc.c)
		}
		pieces = append(pieces, piece)
		start = i
	}
	last := make(orb.LineString, 0, len(merged)-start)
	for _, mc := range merged[start:] {
		last = append(last, mc.c)
	}
	pieces = append(pieces, last)

	for _, p := range pieces {
		if len(p) < 2 {
			panic(fmt.Sprintf("hydrograph.splitSegmentAt: degenerate piece on handle %d", hd))
		}
	}

	hucs.Segments.Set(hd, pieces[0])
	if len(pieces) > 1 {
		list[0].comp.AddMany(hucs.Segments.AddMany(pieces[1:]))
	}
}
