package codec_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/artcfox/maze-generator/internal/bitvector"
	"github.com/artcfox/maze-generator/internal/codec"
	"github.com/artcfox/maze-generator/internal/generator"
	"github.com/artcfox/maze-generator/internal/solver"
	"github.com/artcfox/maze-generator/internal/topology"
	"github.com/artcfox/maze-generator/internal/unionfind"
)

func buildSolvedMaze(t *testing.T, dims []int, seed int64, start, end int) (*topology.Topology, []*bitvector.BitVector, []*bitvector.BitVector, int) {
	t.Helper()
	top, err := topology.New(dims)
	require.NoError(t, err)
	uf := unionfind.New(top.TotalCells)
	halls := make([]*bitvector.BitVector, len(dims))
	solution := make([]*bitvector.BitVector, len(dims))
	for i := range halls {
		halls[i] = bitvector.New(top.TotalCells)
		solution[i] = bitvector.New(top.TotalCells)
	}
	res := generator.Generate(top, uf, rand.New(rand.NewSource(seed)), true, halls)
	degree := append([]uint8(nil), res.NeighborCount...)

	survivors := solver.CanonicalSurvivors(top, halls)
	n := solver.SolveSequential(survivors, degree, start, end)
	for _, w := range survivors[:n] {
		axis := top.AxisOf(w.Cell1, w.Cell2)
		solution[axis].Set(w.Cell1)
	}
	return top, halls, solution, n
}

func TestRoundTrip(t *testing.T) {
	top, halls, solution, n := buildSolvedMaze(t, []int{5, 5}, 11, 0, 24)

	var buf bytes.Buffer
	require.NoError(t, codec.Write(&buf, top, halls, solution, n))

	f, err := codec.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, top.Dims, f.Dims)
	require.Equal(t, n, f.SolutionLength)

	top2, err := topology.New(f.Dims)
	require.NoError(t, err)
	gotHalls := make([]*bitvector.BitVector, len(f.Dims))
	gotSolution := make([]*bitvector.BitVector, len(f.Dims))
	for i := range gotHalls {
		gotHalls[i] = bitvector.New(top2.TotalCells)
		gotSolution[i] = bitvector.New(top2.TotalCells)
	}
	codec.Unpack(top2, f, gotHalls, gotSolution)

	for axis := range halls {
		require.Equal(t, halls[axis].Bytes(), gotHalls[axis].Bytes(), "axis %d halls mismatch", axis)
		require.Equal(t, solution[axis].Bytes(), gotSolution[axis].Bytes(), "axis %d solution mismatch", axis)
	}
}

func TestByteExactSize(t *testing.T) {
	top, halls, solution, n := buildSolvedMaze(t, []int{3, 3, 3}, 4, 0, 26)

	var buf bytes.Buffer
	require.NoError(t, codec.Write(&buf, top, halls, solution, n))

	require.Equal(t, codec.Size(top), buf.Len())
}

func TestTruncatedFileRejected(t *testing.T) {
	top, halls, solution, n := buildSolvedMaze(t, []int{4, 4}, 2, 0, 15)

	var buf bytes.Buffer
	require.NoError(t, codec.Write(&buf, top, halls, solution, n))

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])
	_, err := codec.Read(truncated)
	require.ErrorIs(t, err, codec.ErrTruncated)
}

func TestZeroDimsLengthRejected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binaryWriteUint32(&buf, 0))
	_, err := codec.Read(&buf)
	require.ErrorIs(t, err, codec.ErrInvalidDims)
}

func binaryWriteUint32(buf *bytes.Buffer, v uint32) error {
	b := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	_, err := buf.Write(b)
	return err
}
