package fmm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

// CellBytes is the wire size of one encoded Cell: 48 float64 plus one uint64.
const CellBytes = 8 * (3*geom.Dim + 1 + geom.Dim + geom.Dim*geom.Dim + geom.Dim*geom.Dim*geom.Dim)

// Cell is the transport record summarizing one branch for the cross-rank
// exchange. Position, BMin, BMax and ID describe the branch on its owning
// rank; FC, DFCDR and DFCDRDR accumulate the field contributions and start
// zero. Cells live for one gravity step.
type Cell struct {
	Position geom.Point
	BMin     geom.Point
	BMax     geom.Point
	ID       tree.BranchID

	FC      geom.Point
	DFCDR   geom.Mat3
	DFCDRDR geom.Tensor3
}

// NewCell summarizes a branch with zeroed field accumulators.
func NewCell(b tree.Branch) Cell {
	return Cell{Position: b.Position(), BMin: b.BMin(), BMax: b.BMax(), ID: b.ID()}
}

// MarshalBinary encodes the cell in a fixed little-endian layout. The
// exchange uses the explicit encoding rather than in-memory layout so the
// wire format does not depend on the compiler.
func (c *Cell) MarshalBinary() []byte {
	buf := make([]byte, 0, CellBytes)
	buf = appendPoint(buf, c.Position)
	buf = appendPoint(buf, c.BMin)
	buf = appendPoint(buf, c.BMax)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(c.ID))
	buf = appendPoint(buf, c.FC)
	for _, v := range c.DFCDR {
		buf = binary.LittleEndian.AppendUint64(buf, floatBits(v))
	}
	for _, v := range c.DFCDRDR {
		buf = binary.LittleEndian.AppendUint64(buf, floatBits(v))
	}
	return buf
}

// UnmarshalBinary decodes one cell from data, which must hold exactly
// CellBytes bytes.
func (c *Cell) UnmarshalBinary(data []byte) error {
	if len(data) != CellBytes {
		return fmt.Errorf("%w: cell record is %d bytes, want %d", ErrInvariant, len(data), CellBytes)
	}
	d := decoder{buf: data}
	c.Position = d.point()
	c.BMin = d.point()
	c.BMax = d.point()
	c.ID = tree.BranchID(d.uint64())
	c.FC = d.point()
	for i := range c.DFCDR {
		c.DFCDR[i] = d.float64()
	}
	for i := range c.DFCDRDR {
		c.DFCDRDR[i] = d.float64()
	}
	return nil
}

// EncodeCells concatenates the wire form of cells.
func EncodeCells(cells []Cell) []byte {
	buf := make([]byte, 0, len(cells)*CellBytes)
	for i := range cells {
		buf = append(buf, cells[i].MarshalBinary()...)
	}
	return buf
}

// DecodeCells splits buf into cells. len(buf) must be a multiple of
// CellBytes.
func DecodeCells(buf []byte) ([]Cell, error) {
	if len(buf)%CellBytes != 0 {
		return nil, fmt.Errorf("%w: cell buffer of %d bytes is not a whole number of cells", ErrInvariant, len(buf))
	}
	cells := make([]Cell, len(buf)/CellBytes)
	for i := range cells {
		if err := cells[i].UnmarshalBinary(buf[i*CellBytes : (i+1)*CellBytes]); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

func appendPoint(buf []byte, p geom.Point) []byte {
	for _, v := range p {
		buf = binary.LittleEndian.AppendUint64(buf, floatBits(v))
	}
	return buf
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) uint64() uint64 {
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v
}

func (d *decoder) float64() float64 { return floatFromBits(d.uint64()) }

func (d *decoder) point() geom.Point {
	var p geom.Point
	for i := range p {
		p[i] = d.float64()
	}
	return p
}

func floatBits(v float64) uint64     { return math.Float64bits(v) }
func floatFromBits(b uint64) float64 { return math.Float64frombits(b) }

