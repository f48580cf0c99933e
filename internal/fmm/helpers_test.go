package fmm

import (
	"sync"
	"testing"

	"github.com/san-kum/gravsim/internal/comm"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

// runStep drives one gravity step over an in-process world with the given
// per-rank body sets, building one octree per rank.
func runStep(t *testing.T, perRank [][]tree.Body, leafCap int, maxMass, theta float64) {
	t.Helper()
	if err := stepWorld(perRank, leafCap, maxMass, theta); err != nil {
		t.Fatalf("gravity step: %v", err)
	}
}

func stepWorld(perRank [][]tree.Body, leafCap int, maxMass, theta float64) error {
	ranks := comm.NewWorld(len(perRank))
	errs := make([]error, len(perRank))

	var wg sync.WaitGroup
	for i, r := range ranks {
		wg.Add(1)
		go func(i int, r *comm.Rank) {
			defer wg.Done()
			ot := tree.Build(perRank[i], i, leafCap)
			errs[i] = NewSolver(r).Step(ot, maxMass, theta)
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// directAccels is the O(N^2) reference: exact Newtonian acceleration of
// every body due to every other body.
func directAccels(bodies []tree.Body) []geom.Point {
	accels := make([]geom.Point, len(bodies))
	for i, bi := range bodies {
		pi := bi.Position()
		for _, bj := range bodies {
			pj := bj.Position()
			d := pi.Dist(pj)
			if d > 0 {
				accels[i] = accels[i].Add(pi.Sub(pj).Scale(-bj.Mass() / (d * d * d)))
			}
		}
	}
	return accels
}

func grid(nx, ny, nz int, spacing float64) []*tree.Particle {
	var bodies []*tree.Particle
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				p := geom.Point{float64(i) * spacing, float64(j) * spacing, float64(k) * spacing}
				bodies = append(bodies, tree.NewParticle(p, 1))
			}
		}
	}
	return bodies
}

// splitX partitions bodies across ranks at the given x cuts.
func splitX(bodies []*tree.Particle, cuts ...float64) [][]tree.Body {
	perRank := make([][]tree.Body, len(cuts)+1)
	for _, b := range bodies {
		r := 0
		for _, cut := range cuts {
			if b.Pos[0] > cut {
				r++
			}
		}
		perRank[r] = append(perRank[r], b)
	}
	return perRank
}

func asBodies(ps []*tree.Particle) []tree.Body {
	bs := make([]tree.Body, len(ps))
	for i, p := range ps {
		bs[i] = p
	}
	return bs
}

func zeroAccels(ps []*tree.Particle) {
	for _, p := range ps {
		p.Acc = geom.Point{}
	}
}
