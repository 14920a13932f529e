package maze_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artcfox/maze-generator"
	"github.com/artcfox/maze-generator/internal/bitvector"
)

func mustCreate(t *testing.T, dims []int, flags maze.Flags, seed int64) *maze.Maze {
	t.Helper()
	m, err := maze.Create(dims, maze.Config{Seed: seed, Flags: flags})
	require.NoError(t, err)
	return m
}

func popcount(bvs []*bitvector.BitVector) int {
	total := 0
	for _, b := range bvs {
		if b != nil {
			total += b.PopCount()
		}
	}
	return total
}

func TestSingleWallMaze(t *testing.T) {
	m := mustCreate(t, []int{2}, maze.OutputSolution, 1)
	m.Generate()
	require.NoError(t, m.Solve(0, 1))

	require.True(t, m.Halls()[0].Get(0))
	require.True(t, m.Solution()[0].Get(0))
	require.Equal(t, 1, m.SolutionLength())
}

func TestTrivialSingleCellMaze(t *testing.T) {
	m := mustCreate(t, []int{1, 1}, maze.OutputSolution, 2)
	m.Generate()
	require.Equal(t, 0, m.TotalWalls())
	require.ErrorIs(t, m.Solve(0, 0), maze.ErrInvalidEndpoints)
}

func Test3x3SolveBetweenCorners(t *testing.T) {
	m := mustCreate(t, []int{3, 3}, maze.OutputSolution, 5)
	m.Generate()
	require.NoError(t, m.Solve(0, 8))

	require.Equal(t, 8, popcount(m.Halls()))
	n := m.SolutionLength()
	require.GreaterOrEqual(t, n, 4)
	require.LessOrEqual(t, n, 8)
}

func TestParallelMatchesSequentialSolve(t *testing.T) {
	m1 := mustCreate(t, []int{10, 10}, maze.OutputSolution, 77)
	m1.Generate()
	m1.SetCores(1)
	require.NoError(t, m1.Solve(0, 99))

	m2 := mustCreate(t, []int{10, 10}, maze.OutputSolution, 77)
	m2.Generate()
	m2.SetCores(4)
	require.NoError(t, m2.Solve(0, 99))

	require.Equal(t, m1.SolutionLength(), m2.SolutionLength())
	for axis := range m1.Halls() {
		require.Equal(t, m1.Solution()[axis].Bytes(), m2.Solution()[axis].Bytes())
	}
}

func TestSolveWithoutOutputSolutionDisabled(t *testing.T) {
	m := mustCreate(t, []int{4, 4}, 0, 9)
	m.Generate()
	require.ErrorIs(t, m.Solve(0, 15), maze.ErrSolvingDisabled)
}

func TestSecondSolveWithoutMultipleSolvesRejected(t *testing.T) {
	m := mustCreate(t, []int{4, 4}, maze.OutputSolution, 9)
	m.Generate()
	require.NoError(t, m.Solve(0, 15))
	require.ErrorIs(t, m.Solve(0, 1), maze.ErrAlreadySolved)
}

func TestMultipleSolvesIsDeterministic(t *testing.T) {
	m := mustCreate(t, []int{5, 5}, maze.OutputSolution|maze.MultipleSolves, 13)
	m.Generate()

	require.NoError(t, m.Solve(0, 24))
	first := append([]byte(nil), m.Solution()[0].Bytes()...)
	firstLen := m.SolutionLength()

	require.NoError(t, m.Solve(3, 20))
	require.NoError(t, m.Solve(0, 24))
	require.Equal(t, firstLen, m.SolutionLength())
	require.Equal(t, first, m.Solution()[0].Bytes())
}

func TestCodecRoundTripViaSaveLoad(t *testing.T) {
	m := mustCreate(t, []int{5, 5}, maze.OutputSolution, 21)
	m.Generate()
	require.NoError(t, m.Solve(0, 24))

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	fresh := mustCreate(t, []int{5, 5}, maze.OutputSolution, 0)
	loaded, err := fresh.Load(&buf, maze.Config{Flags: maze.OutputSolution})
	require.NoError(t, err)

	require.Equal(t, m.Dims(), loaded.Dims())
	require.Equal(t, m.SolutionLength(), loaded.SolutionLength())
	for axis := range m.Halls() {
		require.Equal(t, m.Halls()[axis].Bytes(), loaded.Halls()[axis].Bytes())
		require.Equal(t, m.Solution()[axis].Bytes(), loaded.Solution()[axis].Bytes())
	}
}

func TestTruncatedFileRejected(t *testing.T) {
	m := mustCreate(t, []int{4, 4}, maze.OutputSolution, 6)
	m.Generate()
	require.NoError(t, m.Solve(0, 15))

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])

	fresh := mustCreate(t, []int{4, 4}, maze.OutputSolution, 0)
	_, err := fresh.Load(truncated, maze.Config{Flags: maze.OutputSolution})
	require.ErrorIs(t, err, maze.ErrTruncatedFile)
}

func TestInvalidDimsRejected(t *testing.T) {
	_, err := maze.Create([]int{2, 0}, maze.Config{Seed: 1})
	require.ErrorIs(t, err, maze.ErrInvalidDims)
}

func TestSetCoresIgnoresOutOfRange(t *testing.T) {
	m := mustCreate(t, []int{3, 3}, maze.OutputSolution, 1)
	m.SetCores(0)
	m.SetCores(2000)
	m.Generate()
	require.NoError(t, m.Solve(0, 8))
}
