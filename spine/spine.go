// Package spine holds watershed (HUC) boundaries as a planar subdivision:
// an arena of polyline segments addressed by opaque handles, referenced by
// ordered components. Adjacent polygons reference the same interior
// component, so an edit to a shared segment is seen by both.
package spine

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Handle identifies one boundary segment in the arena.
type Handle int

// Store is the segment arena. Geometries are only ever replaced in place or
// appended; a handle, once issued, stays valid.
type Store struct {
	segs  map[Handle]orb.LineString
	order []Handle
}

func NewStore() *Store {
	return &Store{segs: map[Handle]orb.LineString{}}
}

func (s *Store) Len() int { return len(s.order) }

// Handles returns every issued handle in issue order.
func (s *Store) Handles() []Handle {
	out := make([]Handle, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Store) Get(h Handle) orb.LineString {
	ls, ok := s.segs[h]
	if !ok {
		panic(fmt.Sprintf("spine.Store: unknown handle %d", h))
	}
	return ls
}

// Set replaces the geometry at h in place.
func (s *Store) Set(h Handle, ls orb.LineString) {
	if _, ok := s.segs[h]; !ok {
		panic(fmt.Sprintf("spine.Store: unknown handle %d", h))
	}
	s.segs[h] = ls
}

// Add appends a new segment and returns its handle.
func (s *Store) Add(ls orb.LineString) Handle {
	h := Handle(len(s.order))
	for {
		if _, ok := s.segs[h]; !ok {
			break
		}
		h++
	}
	s.segs[h] = ls
	s.order = append(s.order, h)
	return h
}

// AddMany appends segments in order, returning their handles.
func (s *Store) AddMany(lss []orb.LineString) []Handle {
	hs := make([]Handle, len(lss))
	for i, ls := range lss {
		hs[i] = s.Add(ls)
	}
	return hs
}

// Component is one ordered chain of segment handles: either the
// exterior-facing part of a polygon's ring, or the shared edge between two
// adjacent polygons.
type Component struct {
	handles []Handle
	gons    []int // indices of the polygons referencing this chain (1 or 2)
}

func (c *Component) Add(h Handle)        { c.handles = append(c.handles, h) }
func (c *Component) AddMany(hs []Handle) { c.handles = append(c.handles, hs...) }

// Handles returns the chain's handles in stored order.
func (c *Component) Handles() []Handle {
	out := make([]Handle, len(c.handles))
	copy(out, c.handles)
	return out
}

// HUCs is a set of watershed boundary polygons over a shared segment store.
type HUCs struct {
	Segments      *Store
	Boundaries    []*Component // exterior-facing chains
	Intersections []*Component // interior chains shared by two polygons
	np            int
}

// NewHUCs creates an empty topology over n polygons.
func NewHUCs(n int) *HUCs {
	return &HUCs{Segments: NewStore(), np: n}
}

// NewSingle wraps one closed ring as a single-polygon, single-component,
// single-segment topology.
func NewSingle(ring orb.Ring) *HUCs {
	h := NewHUCs(1)
	h.AddBoundary(0, orb.LineString(ring))
	return h
}

func (h *HUCs) NumPolygons() int { return h.np }

// AddBoundary registers an exterior-facing chain for polygon gon, seeding it
// with one segment.
func (h *HUCs) AddBoundary(gon int, ls orb.LineString) *Component {
	c := &Component{gons: []int{gon}}
	c.Add(h.Segments.Add(ls))
	h.Boundaries = append(h.Boundaries, c)
	return c
}

// AddIntersection registers the shared chain between polygons gon1 and gon2,
// seeding it with one segment.
func (h *HUCs) AddIntersection(gon1, gon2 int, ls orb.LineString) *Component {
	c := &Component{gons: []int{gon1, gon2}}
	c.Add(h.Segments.Add(ls))
	h.Intersections = append(h.Intersections, c)
	return c
}

// Components returns boundary chains followed by interior chains, the fixed
// iteration order every conditioning pass uses.
func (h *HUCs) Components() []*Component {
	out := make([]*Component, 0, len(h.Boundaries)+len(h.Intersections))
	out = append(out, h.Boundaries...)
	out = append(out, h.Intersections...)
	return out
}
