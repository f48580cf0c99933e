// Package comm provides the collective communication channel consumed by the
// gravity kernel: all-gather of a fixed-size integer, all-gatherv of opaque
// byte buffers, and all-to-allv of opaque byte buffers, all on the world
// communicator.
//
// The interface mirrors the MPI collectives it stands in for, so an
// implementation backed by a real MPI runtime can be swapped in behind it.
// The in-process [World] implementation runs every rank as a goroutine inside
// one process and is what the driver and the multi-rank tests use.
package comm

// Communicator is one rank's view of the world communicator. All collective
// calls block until every rank in the world has entered the same call.
type Communicator interface {
	Rank() int
	Size() int

	// AllGatherInt gathers one integer from every rank, indexed by rank.
	AllGatherInt(v int) ([]int, error)

	// AllGatherv gathers variable-size byte buffers from every rank into one
	// buffer, contiguous per rank in ascending rank order. counts must have
	// world-size entries and counts[rank] must equal len(local); it is
	// returned filled with every rank's byte count.
	AllGatherv(local []byte, counts []int) ([]byte, error)

	// AllToAllv sends, for every destination rank d, the slice
	// send[sendOffs[d] : sendOffs[d]+sendCounts[d]]. The receive buffer holds
	// one chunk of recvCounts[s] bytes per source rank s, contiguous in
	// ascending source-rank order; a source that sends a different byte count
	// to this rank is a collective error.
	AllToAllv(send []byte, sendCounts, sendOffs, recvCounts []int) ([]byte, error)
}
