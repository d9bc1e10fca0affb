package river

// PreOrder returns the subtree's nodes root-first. The slice is materialized
// up front, so callers may prune or merge while ranging over it.
func (r *River) PreOrder() []*River {
	out := make([]*River, 0, 8)
	var walk func(*River)
	walk = func(n *River) {
		out = append(out, n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(r)
	return out
}

// DepthFirst returns the subtree's nodes children-first (post-order),
// likewise materialized.
func (r *River) DepthFirst() []*River {
	out := make([]*River, 0, 8)
	var walk func(*River)
	walk = func(n *River) {
		for _, c := range n.children {
			walk(c)
		}
		out = append(out, n)
	}
	walk(r)
	return out
}

// Leaves returns the subtree's leaf reaches (upstream termini), materialized.
func (r *River) Leaves() []*River {
	var out []*River
	for _, n := range r.PreOrder() {
		if len(n.children) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// PathToRoot returns the chain from the node down to its root, inclusive.
func (r *River) PathToRoot() []*River {
	var out []*River
	for n := r; n != nil; n = n.parent {
		out = append(out, n)
	}
	return out
}

// Root returns the outlet reach of the node's tree.
func (r *River) Root() *River {
	n := r
	for n.parent != nil {
		n = n.parent
	}
	return n
}
