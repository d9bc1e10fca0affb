// Package river holds a hydrographic network as a forest of reach trees.
// Each node owns one polyline reach; a child's last coordinate coincides
// with its parent's first coordinate (upstream to downstream), so the root
// is the outlet and leaves are upstream termini.
package river

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const coincident = 1e-7

// MinorDivergence is the NHDPlus divergence code flagging the minor path of
// a flow split (a braid or diversion leaf).
const MinorDivergence = 2

// Props are the hydrologic attributes carried by a reach. The hydro-sequence
// fields are NHDPlus value-added attributes and may be absent; HasVAA on the
// node records whether they were populated.
type Props struct {
	ID                         int
	HydroSeq                   int
	DownstreamMainPathHydroSeq int
	UpstreamMainPathHydroSeq   int
	DivergenceCode             int
	DrainAreaSqKm              float64 // total contributing drainage area
	CatchmentAreaSqKm          float64 // local incremental catchment area
}

// River is one node of a reach tree; every subtree is itself a *River.
type River struct {
	Segment  orb.LineString
	Props    Props
	HasVAA   bool // hydro-sequence attributes populated
	parent   *River
	children []*River
}

// New wraps a reach polyline as an unattached node.
func New(seg orb.LineString, props Props) *River {
	if len(seg) < 2 {
		panic("river.New: reach needs at least 2 coordinates")
	}
	return &River{Segment: seg, Props: props}
}

func (r *River) Parent() *River { return r.parent }

// Children returns a snapshot of the node's children, safe to range over
// while pruning or merging.
func (r *River) Children() []*River {
	out := make([]*River, len(r.children))
	copy(out, r.children)
	return out
}

// Siblings returns a snapshot of the node's siblings.
func (r *River) Siblings() []*River {
	if r.parent == nil {
		return nil
	}
	out := make([]*River, 0, len(r.parent.children)-1)
	for _, c := range r.parent.children {
		if c != r {
			out = append(out, c)
		}
	}
	return out
}

// AddChild attaches c (detaching it from any previous parent).
func (r *River) AddChild(c *River) {
	if c.parent != nil {
		c.Remove()
	}
	c.parent = r
	r.children = append(r.children, c)
}

// Remove detaches the node from its parent, keeping its own subtree.
func (r *River) Remove() {
	p := r.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == r {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	r.parent = nil
}

// Prune removes the node's whole subtree from the tree. With
// preserveCatchments, the subtree's incremental catchment area is folded
// into the former parent rather than discarded.
func (r *River) Prune(preserveCatchments bool) {
	p := r.parent
	if p == nil {
		panic("river.Prune: cannot prune a root")
	}
	if preserveCatchments {
		a := 0.
		for _, n := range r.PreOrder() {
			a += n.Props.CatchmentAreaSqKm
		}
		p.Props.CatchmentAreaSqKm += a
	}
	r.Remove()
}

// Merge splices the node into its parent: the parent's geometry is extended
// upstream with the node's, and the node's children become the parent's.
// The node's catchment attribution moves with its geometry.
func (r *River) Merge() {
	p := r.parent
	if p == nil {
		panic("river.Merge: cannot merge a root")
	}
	seg := make(orb.LineString, 0, len(r.Segment)+len(p.Segment)-1)
	seg = append(seg, r.Segment...)
	seg = append(seg, p.Segment[1:]...)
	p.Segment = seg
	p.Props.CatchmentAreaSqKm += r.Props.CatchmentAreaSqKm
	r.Remove()
	for _, c := range r.Children() {
		p.AddChild(c)
	}
}

// MoveCoordinate sets coordinate i of the reach; a negative i counts from
// the end, so -1 is the downstream endpoint.
func (r *River) MoveCoordinate(i int, p orb.Point) {
	if i < 0 {
		i += len(r.Segment)
	}
	r.Segment[i] = p
}

// Len returns the number of reaches in the subtree.
func (r *River) Len() int {
	n := 1
	for _, c := range r.children {
		n += c.Len()
	}
	return n
}

// Length returns the reach's own arc length.
func (r *River) Length() float64 {
	return planar.Length(r.Segment)
}

// GetNode finds the reach in the subtree whose hydro sequence is seq, or nil.
func (r *River) GetNode(seq int) *River {
	if r.Props.HydroSeq == seq {
		return r
	}
	for _, c := range r.children {
		if n := c.GetNode(seq); n != nil {
			return n
		}
	}
	return nil
}

// IsContinuous reports whether every reach in the subtree begins exactly
// where its children end.
func (r *River) IsContinuous() bool {
	for _, c := range r.children {
		if planar.Distance(c.Segment[len(c.Segment)-1], r.Segment[0]) >= coincident {
			return false
		}
		if !c.IsContinuous() {
			return false
		}
	}
	return true
}

// IsConsistent reports structural sanity: parent links agree with child
// lists, every reach has at least two coordinates, and the tree is
// continuous.
func (r *River) IsConsistent() bool {
	if len(r.Segment) < 2 {
		return false
	}
	for _, c := range r.children {
		if c.parent != r || !c.IsConsistent() {
			return false
		}
	}
	return r.IsContinuous()
}

func (r *River) String() string {
	return fmt.Sprintf("reach %d (%d coords, %d children)", r.Props.ID, len(r.Segment), len(r.children))
}
