package fmm

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

var _ = Describe("gravity step scenarios", func() {
	step := func(perRank [][]tree.Body, maxMass, theta float64) {
		Expect(stepWorld(perRank, 1, maxMass, theta)).To(Succeed())
	}

	Describe("two equal bodies on one rank", func() {
		It("pulls them toward each other with unit acceleration", func() {
			a := tree.NewParticle(geom.Point{0, 0, 0}, 1)
			b := tree.NewParticle(geom.Point{1, 0, 0}, 1)

			step([][]tree.Body{{a, b}}, 100, 0.5)

			Expect(a.Acc[0]).To(BeNumerically("~", 1, 1e-12))
			Expect(b.Acc[0]).To(BeNumerically("~", -1, 1e-12))
			Expect(a.Acc[1]).To(BeZero())
			Expect(a.Acc[2]).To(BeZero())
		})
	})

	Describe("four unit masses on the corners of a square", func() {
		It("accelerates every corner toward the origin with equal magnitude", func() {
			corners := []*tree.Particle{
				tree.NewParticle(geom.Point{1, 1, 0}, 1),
				tree.NewParticle(geom.Point{-1, 1, 0}, 1),
				tree.NewParticle(geom.Point{-1, -1, 0}, 1),
				tree.NewParticle(geom.Point{1, -1, 0}, 1),
			}
			want := directAccels(asBodies(corners))

			step([][]tree.Body{asBodies(corners)}, 0.5, 0.5)

			mag := corners[0].Acc.Norm()
			var net geom.Point
			for i, c := range corners {
				Expect(c.Acc.Dist(want[i])).To(BeNumerically("<", 1e-12))
				Expect(c.Acc.Norm()).To(BeNumerically("~", mag, 1e-12))

				// pointing at the origin
				inward := c.Pos.Scale(-1.0 / c.Pos.Norm())
				dot := c.Acc[0]*inward[0] + c.Acc[1]*inward[1] + c.Acc[2]*inward[2]
				Expect(dot).To(BeNumerically("~", c.Acc.Norm(), 1e-12))

				net = net.Add(c.Acc)
			}
			Expect(net.Norm()).To(BeNumerically("<", 1e-12))
		})
	})

	Describe("momentum balance", func() {
		It("conserves total momentum for unequal masses across ranks", func() {
			a := tree.NewParticle(geom.Point{-2, 0, 0}, 4)
			b := tree.NewParticle(geom.Point{3, 1, -1}, 9)

			step([][]tree.Body{{a}, {b}}, 100, 0.5)

			net := a.Acc.Scale(a.M).Add(b.Acc.Scale(b.M))
			Expect(net.Norm()).To(BeNumerically("<", 1e-12))

			d := a.Pos.Dist(b.Pos)
			Expect(a.Acc.Norm()).To(BeNumerically("~", b.M/(d*d), 1e-12))
		})
	})

	Describe("opening angle extremes", func() {
		It("stays exact for point cells as theta shrinks", func() {
			ps := grid(3, 3, 3, 1.0)
			want := directAccels(asBodies(ps))

			step(splitX(ps, 0.5), 1.5, 1e-6)

			for i, p := range ps {
				Expect(p.Acc.Dist(want[i])).To(BeNumerically("<", 1e-9))
			}
		})
	})
})

var _ = Describe("frontier selection over random clouds", func() {
	It("always covers the root mass exactly", func() {
		bs := cloud(200, 42)
		ot := tree.Build(bs, 0, 4)

		for _, maxMass := range []float64{0.5, 2, 50} {
			var sum float64
			for _, c := range SelectFrontier(ot, maxMass) {
				sum += ot.Get(c.ID).Mass()
			}
			Expect(math.Abs(sum - ot.Root().Mass())).To(BeNumerically("<", 1e-9))
		}
	})
})
