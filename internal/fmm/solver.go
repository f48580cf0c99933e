package fmm

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/gravsim/internal/comm"
	"github.com/san-kum/gravsim/internal/tree"
)

// Solver runs the three-phase distributed gravity step for one rank. The
// phases are collectives: every rank must call them in the same order. The
// catalog and exchange counts live for one step only.
type Solver struct {
	exchange *Exchange
	catalog  []Cell
	workers  int
}

func NewSolver(c comm.Communicator) *Solver {
	return &Solver{exchange: NewExchange(c), workers: runtime.GOMAXPROCS(0)}
}

// SelectAndScatter picks the local mass frontier below maxMass and
// distributes it; afterwards every rank holds the same world catalog.
func (s *Solver) SelectAndScatter(t tree.Tree, maxMass float64) error {
	if maxMass <= 0 {
		return fmt.Errorf("%w: maxMass must be positive, got %v", ErrConfig, maxMass)
	}
	cells := SelectFrontier(t, maxMass)
	catalog, err := s.exchange.ExchangeCells(cells)
	if err != nil {
		return err
	}
	s.catalog = catalog
	return nil
}

// Compute accumulates the local tree's field onto every catalog cell. The
// cells are independent sinks, so they are spread across one worker per
// available CPU; each worker writes only its own cells' tensors.
func (s *Solver) Compute(t tree.Tree, theta float64) error {
	if theta <= 0 || theta > 1 {
		return fmt.Errorf("%w: theta must be in (0, 1], got %v", ErrConfig, theta)
	}
	if s.catalog == nil {
		return fmt.Errorf("%w: Compute before SelectAndScatter", ErrConfig)
	}

	root := t.Root()
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(s.catalog); i += s.workers {
				traverseC2C(t, &s.catalog[i], root, theta)
			}
		}(w)
	}
	wg.Wait()
	return nil
}

// GatherAndApply reduces every rank's contributions onto this rank's own
// cells and pushes them into particle accelerations: a Taylor-expansion
// descent per cell followed by the exact pair sum among that cell's bodies.
func (s *Solver) GatherAndApply(t tree.Tree) error {
	if s.catalog == nil {
		return fmt.Errorf("%w: GatherAndApply before SelectAndScatter", ErrConfig)
	}
	reduced, err := s.exchange.GatherCells(s.catalog)
	s.catalog = nil
	if err != nil {
		return err
	}

	for i := range reduced {
		cell := &reduced[i]
		if cell.FC.IsNaN() || cell.DFCDR.IsNaN() {
			return fmt.Errorf("%w: NaN in reduced field of cell %v", ErrInvariant, cell.ID)
		}
		sink := t.Get(cell.ID)
		if sink == nil {
			return fmt.Errorf("%w: cell id %v does not resolve locally", ErrInvariant, cell.ID)
		}
		var parts []tree.Body
		descendC2P(t, sink, cell, &parts)
		if len(parts) == 0 {
			return fmt.Errorf("%w: cell %v has no local bodies", ErrInvariant, cell.ID)
		}
		directSum(parts)
	}
	return nil
}

// Step runs one full gravity step.
func (s *Solver) Step(t tree.Tree, maxMass, theta float64) error {
	if err := s.SelectAndScatter(t, maxMass); err != nil {
		return err
	}
	if err := s.Compute(t, theta); err != nil {
		return err
	}
	return s.GatherAndApply(t)
}
