// Package fmm computes gravitational accelerations for a distributed
// particle simulation with a Fast Multipole Method over per-rank spatial
// trees.
//
// A gravity step has three collective phases, invoked in order on every rank:
//
//   - [Solver.SelectAndScatter]: pick the local mass frontier and distribute
//     it to all ranks
//   - [Solver.Compute]: accumulate this rank's field (force, Jacobian,
//     Hessian) onto every rank's frontier cells
//   - [Solver.GatherAndApply]: reduce the per-cell contributions world-wide
//     and push them down into local particle accelerations
//
// # Example
//
//	s := fmm.NewSolver(rank) // rank is a comm.Communicator
//	if err := s.Step(tree, maxMass, theta); err != nil {
//		return err
//	}
//
// # Thread Safety
//
// A Solver belongs to one rank and must be driven by that rank's goroutine.
// Compute runs its own worker pool internally; the local tree is only read
// during a step.
package fmm
