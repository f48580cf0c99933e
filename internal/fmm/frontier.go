package fmm

import "github.com/san-kum/gravsim/internal/tree"

// SelectFrontier walks the local tree pre-order and emits the coarsest set
// of branches whose subtree mass is each below maxMass (or which are
// leaves). Zero-mass branches are non-local placeholders and are skipped
// with their subtrees. The fixed child order makes the output deterministic
// for a given tree and threshold.
func SelectFrontier(t tree.Tree, maxMass float64) []Cell {
	var cells []Cell

	var walk func(b tree.Branch)
	walk = func(b tree.Branch) {
		if b == nil || b.Mass() == 0 {
			return
		}
		if b.Leaf() || b.Mass() < maxMass {
			cells = append(cells, NewCell(b))
			return
		}
		for i := 0; i < tree.NumChildren; i++ {
			walk(t.Child(b, i))
		}
	}
	walk(t.Root())
	return cells
}
