package fmm

import "github.com/san-kum/gravsim/internal/tree"

// traverseC2C walks the local tree as a mass source and accumulates its
// contribution onto the sink cell. A source branch is either accepted whole
// through the MAC, expanded body-by-body at a leaf, or recursed into.
//
// Mass belonging to the sink's own region is excluded here: the identical-box
// branch (the sink itself, when local) and anything strictly inside the sink
// box are skipped, as are leaf bodies strictly inside it. The intra-sink
// direct sum in the descent phase covers those interactions.
func traverseC2C(t tree.Tree, sink *Cell, source tree.Branch, theta float64) {
	if source == nil || source.Mass() == 0 {
		return
	}
	if source.ID() == sink.ID {
		return
	}
	if source.BMin() == sink.BMin && source.BMax() == sink.BMax {
		return
	}
	if sink.BMin.Less(source.BMin()) && sink.BMax.Greater(source.BMax()) {
		return
	}

	if MAC(sink, source, theta) {
		accumulate(sink, source.Position(), source.Mass())
		return
	}
	if source.Leaf() {
		for _, b := range source.Bodies() {
			if !b.Local() {
				continue
			}
			p := b.Position()
			if p.Greater(sink.BMin) && p.Less(sink.BMax) {
				continue
			}
			accumulate(sink, p, b.Mass())
		}
		return
	}
	for i := 0; i < tree.NumChildren; i++ {
		traverseC2C(t, sink, t.Child(source, i), theta)
	}
}
