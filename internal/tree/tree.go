package tree

import "github.com/san-kum/gravsim/internal/geom"

// BranchID identifies a branch globally. The owning rank is encoded in the
// high bits so ids never collide across processes.
type BranchID uint64

// NumChildren is the child fan-out of a branch (2^Dim octants).
const NumChildren = 1 << geom.Dim

// MakeBranchID builds an id from the owning rank and a per-tree sequence
// number.
func MakeBranchID(rank int, seq uint32) BranchID {
	return BranchID(uint64(rank)<<32 | uint64(seq))
}

// Rank extracts the owning rank from an id.
func (id BranchID) Rank() int { return int(id >> 32) }

// Branch is one node of a local spatial tree. Mass is the subtree total; a
// mass of zero marks a non-local placeholder that every traversal skips.
type Branch interface {
	ID() BranchID
	Position() geom.Point // subtree center of mass
	Mass() float64
	BMin() geom.Point
	BMax() geom.Point
	Leaf() bool
	Bodies() []Body // leaf branches only
}

// Tree is the local spatial tree surface consumed by the gravity kernel.
// Child returns nil for an empty octant; Get returns nil for an unknown id.
type Tree interface {
	Root() Branch
	Child(b Branch, i int) Branch
	Get(id BranchID) Branch
}
