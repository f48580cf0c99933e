package fmm

import (
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

// descendC2P pushes the cell's reduced field down to the particles of the
// branch's subtree. At each local body the Taylor expansion of the field
// about the cell position is evaluated and added to the body's acceleration;
// the visited bodies are collected for the intra-sink direct sum.
func descendC2P(t tree.Tree, b tree.Branch, cell *Cell, parts *[]tree.Body) {
	if b == nil || b.Mass() <= 0 {
		return
	}
	if !b.Leaf() {
		for i := 0; i < tree.NumChildren; i++ {
			descendC2P(t, t.Child(b, i), cell, parts)
		}
		return
	}
	for _, body := range b.Bodies() {
		if !body.Local() {
			continue
		}
		delta := body.Position().Sub(cell.Position)

		grav := cell.FC
		grav = grav.Add(cell.DFCDR.MulVec(delta))
		grav = grav.Add(cell.DFCDRDR.Contract2(delta).Scale(0.5))

		body.SetAcceleration(body.Acceleration().Add(grav))
		*parts = append(*parts, body)
	}
}

// directSum applies the exact Newtonian pair interactions among the sink's
// own bodies, which the cell-to-cell phase deliberately leaves out.
func directSum(parts []tree.Body) {
	for _, bi := range parts {
		var grav geom.Point
		pi := bi.Position()
		for _, bj := range parts {
			pj := bj.Position()
			d := pi.Dist(pj)
			if d > 0 {
				grav = grav.Add(pi.Sub(pj).Scale(-bj.Mass() / (d * d * d)))
			}
		}
		bi.SetAcceleration(bi.Acceleration().Add(grav))
	}
}
