// Package maze implements an N-dimensional uniform-spanning-tree maze
// engine: generation by randomised Kruskal, solving by parallel dead-end
// fill, and a bit-packed on-disk codec.
package maze

import (
	"io"
	"log"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"

	"github.com/artcfox/maze-generator/internal/bitvector"
	"github.com/artcfox/maze-generator/internal/codec"
	"github.com/artcfox/maze-generator/internal/generator"
	"github.com/artcfox/maze-generator/internal/solver"
	"github.com/artcfox/maze-generator/internal/topology"
	"github.com/artcfox/maze-generator/internal/unionfind"
)

// Capability flags gate which buffers a Maze allocates and which
// operations it permits.
type Flags uint8

const (
	// OutputMaze always holds; halls are allocated for every Maze. It
	// exists as a named flag for symmetry with the reference design and
	// is accepted (but has no effect) by Create.
	OutputMaze Flags = 1 << iota
	// OutputSolution is a prerequisite for Solve: without it the degree
	// array is never maintained and Solve returns ErrSolvingDisabled.
	OutputSolution
	// MultipleSolves allows Solve to be called more than once on the
	// same generated maze, restoring the degree array from a shadow
	// copy of the post-generation degrees taken when the first solve
	// begins.
	MultipleSolves
)

// Sentinel errors, comparable with errors.Is.
var (
	ErrSolvingDisabled  = errors.New("maze: solve requires OutputSolution capability")
	ErrAlreadySolved    = errors.New("maze: solve already called; enable MultipleSolves to solve again")
	ErrInvalidDims      = errors.New("maze: dims must be a non-empty sequence of positive integers")
	ErrTruncatedFile    = errors.New("maze: file is truncated or not valid")
	ErrInvalidEndpoints = errors.New("maze: start and end must be distinct cells in range")
	ErrNotGenerated     = errors.New("maze: generate must be called before solve")
)

// Config controls Maze construction. Seed must be supplied explicitly;
// this package never seeds from the clock.
type Config struct {
	Seed   int64
	Flags  Flags
	Logger *log.Logger // optional; defaults to a discard logger
}

// Maze is an N-dimensional maze: a spanning tree over a rectangular grid,
// with an optional most-recent solved path.
type Maze struct {
	top   *topology.Topology
	flags Flags
	rng   *rand.Rand
	log   *log.Logger
	cores int

	uf *unionfind.UnionFind

	halls    []*bitvector.BitVector
	solution []*bitvector.BitVector

	neighborCount     []uint8
	neighborCountCopy []uint8

	generated   bool
	solvedOnce  bool
	solutionLen int
}

// Create allocates a Maze over the given dims. dims must be non-empty
// with every entry positive.
func Create(dims []int, cfg Config) (*Maze, error) {
	top, err := topology.New(dims)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDims, err.Error())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	m := &Maze{
		top:   top,
		flags: cfg.Flags,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		log:   logger,
		cores: runtime.NumCPU(),
		uf:    unionfind.New(top.TotalCells),
	}

	m.halls = make([]*bitvector.BitVector, len(dims))
	for i := range m.halls {
		m.halls[i] = bitvector.New(top.TotalCells)
	}
	if cfg.Flags&OutputSolution != 0 {
		m.solution = make([]*bitvector.BitVector, len(dims))
		for i := range m.solution {
			m.solution[i] = bitvector.New(top.TotalCells)
		}
		m.neighborCount = make([]uint8, top.TotalCells)
		if cfg.Flags&MultipleSolves != 0 {
			m.neighborCountCopy = make([]uint8, top.TotalCells)
		}
	}

	logger.Printf("maze: created dims=%v totalCells=%d totalWalls=%d seed=%d", dims, top.TotalCells, top.TotalWalls, cfg.Seed)
	return m, nil
}

// SetCores sets the worker count Solve uses. Values outside [1, 1024] are
// ignored: the previous count is kept and the call is logged.
func (m *Maze) SetCores(n int) {
	if n < 1 || n > 1024 {
		m.log.Printf("maze: setCores(%d) ignored, out of [1,1024]", n)
		return
	}
	m.cores = n
}

// Generate (re)carves the maze: resets the union-find forest, runs
// randomised Kruskal over a freshly shuffled wall lottery, and projects
// the spanning tree onto halls. Safe to call repeatedly; each call fully
// rewrites halls and, if solving is enabled, neighborCount, and clears
// any previous solution.
func (m *Maze) Generate() {
	trackDegree := m.flags&OutputSolution != 0
	res := generator.Generate(m.top, m.uf, m.rng, trackDegree, m.halls)
	if trackDegree {
		copy(m.neighborCount, res.NeighborCount)
	}
	for _, s := range m.solution {
		s.Reset()
	}
	m.generated = true
	m.solvedOnce = false
	m.solutionLen = 0
	m.log.Printf("maze: generated dims=%v", m.top.Dims)
}

func recomputeDegree(top *topology.Topology, halls []*bitvector.BitVector, degree []uint8) {
	for i := range degree {
		degree[i] = 0
	}
	for axis, h := range halls {
		pv := top.PlaceValue[axis]
		for pos := 0; pos < top.TotalCells; pos++ {
			if h.Get(pos) {
				degree[pos]++
				degree[pos+pv]++
			}
		}
	}
}

// Solve finds the unique simple path from start to end over the most
// recently generated maze, via parallel dead-end fill, and projects it
// onto Solution(). Requires OutputSolution; requires MultipleSolves to be
// called more than once per Generate.
func (m *Maze) Solve(start, end int) error {
	if m.flags&OutputSolution == 0 {
		return ErrSolvingDisabled
	}
	if !m.generated {
		return ErrNotGenerated
	}
	if start == end || start < 0 || start >= m.top.TotalCells || end < 0 || end >= m.top.TotalCells {
		return ErrInvalidEndpoints
	}
	if m.solvedOnce && m.flags&MultipleSolves == 0 {
		return ErrAlreadySolved
	}

	var degree []uint8
	if m.solvedOnce {
		// MultipleSolves: restore the post-generation snapshot so solve
		// is idempotent in the maze.
		degree = append([]uint8(nil), m.neighborCountCopy...)
	} else {
		degree = append([]uint8(nil), m.neighborCount...)
		if m.flags&MultipleSolves != 0 {
			copy(m.neighborCountCopy, degree)
		}
	}

	survivors := solver.CanonicalSurvivors(m.top, m.halls)
	n := solver.SolveParallel(survivors, degree, start, end, m.cores)

	for _, s := range m.solution {
		s.Reset()
	}
	for _, w := range survivors[:n] {
		axis := m.top.AxisOf(w.Cell1, w.Cell2)
		m.solution[axis].Set(w.Cell1)
	}

	m.solutionLen = n
	m.solvedOnce = true
	m.log.Printf("maze: solved start=%d end=%d cores=%d solutionLength=%d", start, end, m.cores, n)
	return nil
}

// Dims returns the per-axis extents this Maze was created with.
func (m *Maze) Dims() []int { return append([]int(nil), m.top.Dims...) }

// TotalCells returns the number of cells in the grid.
func (m *Maze) TotalCells() int { return m.top.TotalCells }

// TotalWalls returns the number of possible walls in the grid.
func (m *Maze) TotalWalls() int { return m.top.TotalWalls }

// SolutionLength returns the number of walls on the most recently solved
// path, or 0 if Solve has not been called since the last Generate.
func (m *Maze) SolutionLength() int { return m.solutionLen }

// Halls returns a read-only per-axis view of which walls are open.
func (m *Maze) Halls() []*bitvector.BitVector { return m.halls }

// Solution returns a read-only per-axis view of the most recently solved
// path (all bits clear if Solve has not been called since the last
// Generate), or nil if OutputSolution was not requested.
func (m *Maze) Solution() []*bitvector.BitVector { return m.solution }

// NeighborCount returns a read-only view of the per-cell open-hall degree
// array, or nil if OutputSolution was not requested.
func (m *Maze) NeighborCount() []uint8 { return m.neighborCount }

// Save writes the maze (halls, solution, solutionLength) to w in the
// on-disk .maze format.
func (m *Maze) Save(w io.Writer) error {
	solution := m.solution
	if solution == nil {
		solution = make([]*bitvector.BitVector, len(m.top.Dims))
		for i := range solution {
			solution[i] = bitvector.New(m.top.TotalCells)
		}
	}
	if err := codec.Write(w, m.top, m.halls, solution, m.solutionLen); err != nil {
		return errors.Wrap(err, "maze: save")
	}
	return nil
}

// Load reads a .maze file from r. If its dims match this Maze's
// topology, buffers are reused in place; otherwise a fresh Maze is
// allocated (preserving cfg) and returned. On any error the receiver is
// left unmodified.
func (m *Maze) Load(r io.Reader, cfg Config) (*Maze, error) {
	f, err := codec.Read(r)
	if err != nil {
		return nil, errors.Wrap(ErrTruncatedFile, err.Error())
	}

	target := m
	if !sameDims(m.top.Dims, f.Dims) {
		target, err = Create(f.Dims, cfg)
		if err != nil {
			return nil, err
		}
	}

	codec.Unpack(target.top, f, target.halls, orSolutionBuffers(target))
	target.solutionLen = f.SolutionLength
	target.generated = true
	target.solvedOnce = f.SolutionLength > 0
	if target.flags&OutputSolution != 0 {
		recomputeDegree(target.top, target.halls, target.neighborCount)
		if target.flags&MultipleSolves != 0 {
			copy(target.neighborCountCopy, target.neighborCount)
		}
	}
	target.log.Printf("maze: loaded dims=%v solutionLength=%d", target.top.Dims, target.solutionLen)
	return target, nil
}

func orSolutionBuffers(m *Maze) []*bitvector.BitVector {
	if m.solution != nil {
		return m.solution
	}
	solution := make([]*bitvector.BitVector, len(m.top.Dims))
	for i := range solution {
		solution[i] = bitvector.New(m.top.TotalCells)
	}
	return solution
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
