package tree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/gravsim/internal/geom"
)

func randomBodies(n int, seed int64) []Body {
	rng := rand.New(rand.NewSource(seed))
	bs := make([]Body, n)
	for i := range bs {
		bs[i] = NewParticle(geom.Point{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}, 1+rng.Float64())
	}
	return bs
}

func TestBuildMassAndCOM(t *testing.T) {
	bs := randomBodies(200, 1)
	ot := Build(bs, 0, DefaultLeafCap)

	var mass float64
	var com geom.Point
	for _, b := range bs {
		mass += b.Mass()
		com = com.Add(b.Position().Scale(b.Mass()))
	}
	com = com.Scale(1 / mass)

	root := ot.Root()
	if math.Abs(root.Mass()-mass) > 1e-9 {
		t.Errorf("root mass: got %v, want %v", root.Mass(), mass)
	}
	if root.Position().Dist(com) > 1e-9 {
		t.Errorf("root COM: got %v, want %v", root.Position(), com)
	}
}

func TestBoundsAreTight(t *testing.T) {
	bs := randomBodies(100, 2)
	ot := Build(bs, 0, DefaultLeafCap)

	root := ot.Root()
	for _, b := range bs {
		p := b.Position()
		for d := 0; d < geom.Dim; d++ {
			if p[d] < root.BMin()[d] || p[d] > root.BMax()[d] {
				t.Fatalf("body %v outside root box [%v, %v]", p, root.BMin(), root.BMax())
			}
		}
	}
}

func TestGetByID(t *testing.T) {
	bs := randomBodies(50, 3)
	ot := Build(bs, 7, DefaultLeafCap)

	var walk func(b Branch)
	walk = func(b Branch) {
		if b == nil {
			return
		}
		if got := ot.Get(b.ID()); got != b {
			t.Fatalf("Get(%v) did not resolve branch", b.ID())
		}
		if b.ID().Rank() != 7 {
			t.Fatalf("branch id %v does not carry rank 7", b.ID())
		}
		if b.Leaf() {
			return
		}
		for i := 0; i < NumChildren; i++ {
			walk(ot.Child(b, i))
		}
	}
	walk(ot.Root())

	if ot.Get(MakeBranchID(3, 12345)) != nil {
		t.Error("Get of unknown id returned a branch")
	}
}

func TestLeafBodiesPartition(t *testing.T) {
	bs := randomBodies(300, 4)
	ot := Build(bs, 0, 4)

	seen := make(map[Body]int)
	var walk func(b Branch)
	walk = func(b Branch) {
		if b == nil {
			return
		}
		if b.Leaf() {
			for _, body := range b.Bodies() {
				seen[body]++
			}
			return
		}
		for i := 0; i < NumChildren; i++ {
			walk(ot.Child(b, i))
		}
	}
	walk(ot.Root())

	if len(seen) != len(bs) {
		t.Fatalf("leaves cover %d bodies, want %d", len(seen), len(bs))
	}
	for _, count := range seen {
		if count != 1 {
			t.Fatal("a body appears in more than one leaf")
		}
	}
}

func TestCoincidentBodiesTerminate(t *testing.T) {
	bs := make([]Body, 20)
	for i := range bs {
		bs[i] = NewParticle(geom.Point{1, 2, 3}, 1)
	}
	ot := Build(bs, 0, 4)
	if math.Abs(ot.Root().Mass()-20) > 1e-12 {
		t.Errorf("root mass: got %v", ot.Root().Mass())
	}
}
