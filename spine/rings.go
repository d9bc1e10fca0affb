package spine

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const weld = 1e-7 // endpoint coincidence tolerance when chaining segments

// stitch chains segments end-to-end into one closed ring, reversing pieces
// as needed. It fails when the segments do not form a single closed loop.
func stitch(segs []orb.LineString) (orb.Ring, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("spine: no segments to stitch")
	}
	chain := segs[0].Clone()
	used := make([]bool, len(segs))
	used[0] = true
	for n := 1; n < len(segs); {
		hit := false
		for i, sg := range segs {
			if used[i] {
				continue
			}
			switch end := chain[len(chain)-1]; {
			case planar.Distance(end, sg[0]) < weld:
				chain = append(chain, sg[1:]...)
			case planar.Distance(end, sg[len(sg)-1]) < weld:
				for j := len(sg) - 2; j >= 0; j-- {
					chain = append(chain, sg[j])
				}
			default:
				continue
			}
			used[i], hit = true, true
			n++
			break
		}
		if !hit {
			return nil, fmt.Errorf("spine: segments do not chain at %v", chain[len(chain)-1])
		}
	}
	if planar.Distance(chain[0], chain[len(chain)-1]) >= weld {
		return nil, fmt.Errorf("spine: chained segments do not close (%v to %v)", chain[0], chain[len(chain)-1])
	}
	chain[len(chain)-1] = chain[0] // exact closure
	return orb.Ring(chain), nil
}

func (h *HUCs) gonSegments(gon int, comps []*Component) []orb.LineString {
	var out []orb.LineString
	for _, c := range comps {
		for _, g := range c.gons {
			if g == gon {
				for _, hd := range c.handles {
					out = append(out, h.Segments.Get(hd))
				}
				break
			}
		}
	}
	return out
}

// Polygons reconstructs every HUC polygon from its component chains. It
// fails when any polygon's handles no longer form a closed ring, the signal
// that a conditioning pass has corrupted the spine.
func (h *HUCs) Polygons() ([]orb.Polygon, error) {
	out := make([]orb.Polygon, h.np)
	comps := h.Components()
	for g := 0; g < h.np; g++ {
		ring, err := stitch(h.gonSegments(g, comps))
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", g, err)
		}
		out[g] = orb.Polygon{ring}
	}
	return out, nil
}

// Exterior reconstructs the outer ring of the whole domain from the
// exterior-facing chains alone.
func (h *HUCs) Exterior() (orb.Ring, error) {
	var segs []orb.LineString
	for _, c := range h.Boundaries {
		for _, hd := range c.handles {
			segs = append(segs, h.Segments.Get(hd))
		}
	}
	return stitch(segs)
}
