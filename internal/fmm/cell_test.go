package fmm

import (
	"testing"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

func TestCellRoundTrip(t *testing.T) {
	c := Cell{
		Position: geom.Point{1, 2, 3},
		BMin:     geom.Point{-1, -2, -3},
		BMax:     geom.Point{4, 5, 6},
		ID:       tree.MakeBranchID(3, 99),
		FC:       geom.Point{0.5, -0.25, 0.125},
	}
	for i := range c.DFCDR {
		c.DFCDR[i] = float64(i) * 0.1
	}
	for i := range c.DFCDRDR {
		c.DFCDRDR[i] = -float64(i) * 0.01
	}

	buf := c.MarshalBinary()
	if len(buf) != CellBytes {
		t.Fatalf("encoded size %d, want %d", len(buf), CellBytes)
	}

	var got Cell
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func TestDecodeCellsRejectsPartialRecord(t *testing.T) {
	if _, err := DecodeCells(make([]byte, CellBytes+1)); err == nil {
		t.Fatal("expected error for ragged buffer")
	}
}
