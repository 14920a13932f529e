// Package solver implements dead-end fill over the spanning tree produced
// by the generator: iteratively stripping degree-1 cells other than the
// requested endpoints until only the start-to-end path remains.
package solver

import (
	"sync"
	"sync/atomic"

	"github.com/artcfox/maze-generator/internal/bitvector"
	"github.com/artcfox/maze-generator/internal/generator"
	"github.com/artcfox/maze-generator/internal/topology"
)

// CanonicalSurvivors rebuilds the surviving-wall list from halls in
// canonical wall order (§4.3), the form the parallel solver requires
// before partitioning.
func CanonicalSurvivors(top *topology.Topology, halls []*bitvector.BitVector) []generator.Wall {
	walls := make([]generator.Wall, 0, top.TotalCells)
	top.Walk(func(index, position, axis, cell1, cell2 int) {
		if halls[axis].Get(position) {
			walls = append(walls, generator.Wall{Cell1: cell1, Cell2: cell2})
		}
	})
	return walls
}

func isDeadEnd(cell, degree, start, end int) bool {
	return degree == 1 && cell != start && cell != end
}

// SolveSequential runs single-threaded dead-end fill over lottery in place,
// decrementing degree as walls are stripped, and returns the surviving
// prefix length (the solution length). degree is mutated; lottery is
// reordered but not resized.
func SolveSequential(lottery []generator.Wall, degree []uint8, start, end int) int {
	knockedOut := len(lottery)
	for {
		filled := false
		i := 0
		for i < knockedOut {
			w := lottery[i]
			if isDeadEnd(w.Cell1, int(degree[w.Cell1]), start, end) || isDeadEnd(w.Cell2, int(degree[w.Cell2]), start, end) {
				degree[w.Cell1]--
				degree[w.Cell2]--
				knockedOut--
				lottery[i], lottery[knockedOut] = lottery[knockedOut], lottery[i]
				filled = true
				continue
			}
			i++
		}
		if !filled {
			break
		}
	}
	return knockedOut
}

func solveSliceAtomic(slice []generator.Wall, degree []int32, start, end int) int {
	knockedOut := len(slice)
	for {
		filled := false
		i := 0
		for i < knockedOut {
			w := slice[i]
			d1 := atomic.LoadInt32(&degree[w.Cell1])
			d2 := atomic.LoadInt32(&degree[w.Cell2])
			if isDeadEnd(w.Cell1, int(d1), start, end) || isDeadEnd(w.Cell2, int(d2), start, end) {
				atomic.AddInt32(&degree[w.Cell1], -1)
				atomic.AddInt32(&degree[w.Cell2], -1)
				knockedOut--
				slice[i], slice[knockedOut] = slice[knockedOut], slice[i]
				filled = true
				continue
			}
			i++
		}
		if !filled {
			break
		}
	}
	return knockedOut
}

// SolveParallel partitions lottery (already in canonical order, see
// CanonicalSurvivors) into cores contiguous slices, runs dead-end fill on
// each against a shared degree array updated with atomic decrements, then
// compacts survivors and runs a final single-threaded reconciliation pass
// to catch paths that crossed a partition boundary. degree is updated
// in place. Returns the solution length; the surviving walls occupy
// lottery[:result].
func SolveParallel(lottery []generator.Wall, degree []uint8, start, end, cores int) int {
	n := len(lottery)
	if n == 0 {
		return 0
	}
	if cores < 1 {
		cores = 1
	}
	if cores > n {
		cores = n
	}

	atomicDegree := make([]int32, len(degree))
	for i, d := range degree {
		atomicDegree[i] = int32(d)
	}

	kept := make([]int, cores)
	var wg sync.WaitGroup
	for c := 0; c < cores; c++ {
		s := c * n / cores
		e := (c + 1) * n / cores
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			kept[c] = solveSliceAtomic(lottery[s:e], atomicDegree, start, end)
		}(c, s, e)
	}
	wg.Wait()

	for i, v := range atomicDegree {
		degree[i] = uint8(v)
	}

	// Compact surviving walls contiguously: worker 0's kept prefix, then
	// worker 1's, and so on.
	write := kept[0]
	for c := 1; c < cores; c++ {
		s := c * n / cores
		copy(lottery[write:write+kept[c]], lottery[s:s+kept[c]])
		write += kept[c]
	}

	return SolveSequential(lottery[:write], degree, start, end)
}
