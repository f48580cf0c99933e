package fmm

import (
	"bytes"
	"fmt"

	"github.com/san-kum/gravsim/internal/comm"
)

// Exchange pairs the frontier scatter with its gather. The per-rank byte
// counts and offsets recorded by the scatter are the only state carried
// between the two phases; they are reset at the start of every step.
type Exchange struct {
	comm    comm.Communicator
	counts  []int // bytes per rank in the gathered catalog
	offsets []int // byte offset of each rank's slice
}

func NewExchange(c comm.Communicator) *Exchange {
	return &Exchange{comm: c}
}

// ExchangeCells distributes this rank's frontier to every rank and returns
// the world catalog: every rank's cells concatenated in ascending rank
// order. Each rank's own cells appear in the catalog exactly as submitted.
func (e *Exchange) ExchangeCells(cells []Cell) ([]Cell, error) {
	rank, size := e.comm.Rank(), e.comm.Size()

	local := EncodeCells(cells)
	sizes, err := e.comm.AllGatherInt(len(local))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollective, err)
	}

	e.counts = make([]int, size)
	e.offsets = make([]int, size)
	copy(e.counts, sizes)
	for i := 1; i < size; i++ {
		e.offsets[i] = e.offsets[i-1] + e.counts[i-1]
	}

	all, err := e.comm.AllGatherv(local, e.counts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollective, err)
	}

	// Own cells must round-trip in place, in submission order.
	own := all[e.offsets[rank] : e.offsets[rank]+e.counts[rank]]
	if !bytes.Equal(own, local) {
		return nil, fmt.Errorf("%w: scatter did not preserve rank %d's cells", ErrInvariant, rank)
	}

	return DecodeCells(all)
}

// GatherCells returns this rank's reduction of the catalog: for each of its
// own cells, the element-wise sum of the field tensors contributed by every
// rank, in the originally submitted order. catalog must be the full world
// catalog with this rank's contributions filled in.
func (e *Exchange) GatherCells(catalog []Cell) ([]Cell, error) {
	rank, size := e.comm.Rank(), e.comm.Size()
	if e.counts == nil {
		return nil, fmt.Errorf("%w: gather without a preceding scatter", ErrConfig)
	}

	send := EncodeCells(catalog)
	if len(send) != e.offsets[size-1]+e.counts[size-1] {
		return nil, fmt.Errorf("%w: catalog size changed between scatter and gather", ErrInvariant)
	}

	// One chunk of counts[rank] bytes from every rank, in rank order.
	recvCounts := make([]int, size)
	for i := range recvCounts {
		recvCounts[i] = e.counts[rank]
	}
	recv, err := e.comm.AllToAllv(send, e.counts, e.offsets, recvCounts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollective, err)
	}

	chunks, err := DecodeCells(recv)
	if err != nil {
		return nil, err
	}
	ncells := e.counts[rank] / CellBytes

	// Reduce the per-rank chunks into the first one, ascending rank order.
	for r := 1; r < size; r++ {
		for j := 0; j < ncells; j++ {
			dst := &chunks[j]
			src := &chunks[r*ncells+j]
			if dst.ID != src.ID || dst.Position != src.Position ||
				dst.BMin != src.BMin || dst.BMax != src.BMax {
				return nil, fmt.Errorf("%w: cell %d metadata differs in rank %d's chunk", ErrInvariant, j, r)
			}
			dst.FC = dst.FC.Add(src.FC)
			dst.DFCDR.Add(&src.DFCDR)
			dst.DFCDRDR.Add(&src.DFCDRDR)
		}
	}
	return chunks[:ncells], nil
}
