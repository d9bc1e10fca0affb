package river

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
)

type endpoint struct {
	p    orb.Point
	node *River
}

func (e endpoint) Point() orb.Point { return e.p }

// ConstructByGeometry links loose reaches into a forest by coincident
// endpoints: a reach whose downstream terminus falls within tol of another
// reach's upstream coordinate becomes that reach's child. The linked
// endpoint is welded onto the parent coordinate so the trees come out
// exactly continuous. Returns the roots (outlets).
func ConstructByGeometry(reaches []*River, tol float64) []*River {
	if len(reaches) == 0 {
		return nil
	}

	// index the downstream terminus of every reach
	bnd := orb.Bound{Min: reaches[0].Segment[0], Max: reaches[0].Segment[0]}
	for _, n := range reaches {
		bnd = bnd.Extend(n.Segment[len(n.Segment)-1])
		bnd = bnd.Extend(n.Segment[0])
	}
	qt := quadtree.New(bnd.Pad(1.))
	for _, n := range reaches {
		if err := qt.Add(endpoint{n.Segment[len(n.Segment)-1], n}); err != nil {
			panic(fmt.Sprintf("river.ConstructByGeometry: %v", err))
		}
	}

	for _, n := range reaches {
		up := n.Segment[0]
		for _, ptr := range qt.KNearest(nil, up, 8, tol) {
			m := ptr.(endpoint).node
			if m == n || m.parent != nil {
				continue
			}
			if planar.Distance(m.Segment[len(m.Segment)-1], up) >= tol {
				continue
			}
			m.Segment[len(m.Segment)-1] = up // weld
			n.AddChild(m)
		}
	}

	var roots []*River
	for _, n := range reaches {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// ConstructByHydroSeq links reaches into a forest using the NHDPlus
// value-added attributes: each reach attaches to the reach whose HydroSeq
// matches its DownstreamMainPathHydroSeq. Every node is tagged as carrying
// hydro-sequence data. Returns the roots, most-downstream first.
func ConstructByHydroSeq(reaches []*River) ([]*River, error) {
	bySeq := make(map[int]*River, len(reaches))
	for _, n := range reaches {
		if n.Props.HydroSeq == 0 {
			return nil, fmt.Errorf("river.ConstructByHydroSeq: reach %d has no hydro sequence", n.Props.ID)
		}
		if _, ok := bySeq[n.Props.HydroSeq]; ok {
			return nil, fmt.Errorf("river.ConstructByHydroSeq: duplicate hydro sequence %d", n.Props.HydroSeq)
		}
		bySeq[n.Props.HydroSeq] = n
		n.HasVAA = true
	}

	var roots []*River
	for _, n := range reaches {
		if p, ok := bySeq[n.Props.DownstreamMainPathHydroSeq]; ok && p != n {
			p.AddChild(n)
		} else {
			roots = append(roots, n)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Props.HydroSeq < roots[j].Props.HydroSeq })
	return roots, nil
}
