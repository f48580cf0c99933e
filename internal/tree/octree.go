package tree

import "github.com/san-kum/gravsim/internal/geom"

const (
	// DefaultLeafCap is the number of bodies at which a branch stops splitting.
	DefaultLeafCap = 8

	maxDepth = 48
)

type node struct {
	id       BranchID
	pos      geom.Point // center of mass
	mass     float64
	bmin     geom.Point
	bmax     geom.Point
	bodies   []Body
	children [NumChildren]*node
	leaf     bool
}

func (n *node) ID() BranchID         { return n.id }
func (n *node) Position() geom.Point { return n.pos }
func (n *node) Mass() float64        { return n.mass }
func (n *node) BMin() geom.Point     { return n.bmin }
func (n *node) BMax() geom.Point     { return n.bmax }
func (n *node) Leaf() bool           { return n.leaf }
func (n *node) Bodies() []Body       { return n.bodies }

// Octree is a concrete local tree over a set of bodies. It is built once and
// read-only afterwards.
type Octree struct {
	root  *node
	index map[BranchID]*node
}

// Build constructs an octree over bodies. Branch ids carry rank so they are
// unique across the world. Bodies with zero mass still occupy leaves; only
// branch subtree mass drives traversal skips.
func Build(bodies []Body, rank, leafCap int) *Octree {
	if leafCap <= 0 {
		leafCap = DefaultLeafCap
	}
	t := &Octree{index: make(map[BranchID]*node)}
	var seq uint32

	var build func(bs []Body, lo, hi geom.Point, depth int) *node
	build = func(bs []Body, lo, hi geom.Point, depth int) *node {
		n := &node{id: MakeBranchID(rank, seq)}
		seq++
		t.index[n.id] = n

		if len(bs) <= leafCap || depth >= maxDepth {
			n.leaf = true
			n.bodies = bs
			n.summarize(bs)
			return n
		}

		mid := lo.Add(hi).Scale(0.5)
		var buckets [NumChildren][]Body
		for _, b := range bs {
			o := octant(b.Position(), mid)
			buckets[o] = append(buckets[o], b)
		}

		for i, bucket := range buckets {
			if len(bucket) == 0 {
				continue
			}
			clo, chi := octantBounds(lo, mid, hi, i)
			n.children[i] = build(bucket, clo, chi, depth+1)
		}
		n.summarize(bs)
		return n
	}

	lo, hi := bounds(bodies)
	t.root = build(bodies, lo, hi, 0)
	return t
}

func (t *Octree) Root() Branch { return t.root }

func (t *Octree) Child(b Branch, i int) Branch {
	n, ok := b.(*node)
	if !ok || n.children[i] == nil {
		return nil
	}
	return n.children[i]
}

func (t *Octree) Get(id BranchID) Branch {
	if n, ok := t.index[id]; ok {
		return n
	}
	return nil
}

// summarize fills mass, center of mass and the tight bounding box from the
// subtree's bodies.
func (n *node) summarize(bs []Body) {
	if len(bs) == 0 {
		return
	}
	n.bmin, n.bmax = bounds(bs)
	for _, b := range bs {
		m := b.Mass()
		n.mass += m
		n.pos = n.pos.Add(b.Position().Scale(m))
	}
	if n.mass > 0 {
		n.pos = n.pos.Scale(1 / n.mass)
	} else {
		n.pos = n.bmin.Add(n.bmax).Scale(0.5)
	}
}

func bounds(bs []Body) (lo, hi geom.Point) {
	if len(bs) == 0 {
		return
	}
	lo, hi = bs[0].Position(), bs[0].Position()
	for _, b := range bs[1:] {
		lo = lo.Min(b.Position())
		hi = hi.Max(b.Position())
	}
	return
}

func octant(p, mid geom.Point) int {
	i := 0
	for d := 0; d < geom.Dim; d++ {
		if p[d] >= mid[d] {
			i |= 1 << d
		}
	}
	return i
}

func octantBounds(lo, mid, hi geom.Point, i int) (geom.Point, geom.Point) {
	clo, chi := lo, mid
	for d := 0; d < geom.Dim; d++ {
		if i&(1<<d) != 0 {
			clo[d], chi[d] = mid[d], hi[d]
		}
	}
	return clo, chi
}
