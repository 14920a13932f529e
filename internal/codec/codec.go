// Package codec reads and writes the bit-packed .maze file format: a
// dims header, a maze hall bitstream, a solution length, and a solution
// bitstream, all little-endian and sized to the byte.
package codec

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/artcfox/maze-generator/internal/bitvector"
	"github.com/artcfox/maze-generator/internal/topology"
)

// Errors returned by Read on malformed input.
var (
	ErrTruncated   = errors.New("codec: file is truncated")
	ErrInvalidDims = errors.New("codec: dims_length is zero or a dimension is zero")
)

// File is the decoded contents of a .maze file: enough to rebuild a
// Topology and populate hall/solution bitmaps.
type File struct {
	Dims           []int
	MazeBitstream  []byte
	SolutionLength int
	SolutionBits   []byte
}

func byteLen(n int) int {
	return (n + 7) / 8
}

// Write serializes dims, the per-axis hall bitmaps, solutionLength, and
// the per-axis solution bitmaps in canonical wall order (§4.3 of the
// format this package implements).
func Write(w io.Writer, top *topology.Topology, halls, solution []*bitvector.BitVector, solutionLength int) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(top.Dims))); err != nil {
		return errors.Wrap(err, "codec: write dims_length")
	}
	for _, d := range top.Dims {
		if err := binary.Write(w, binary.LittleEndian, uint32(d)); err != nil {
			return errors.Wrap(err, "codec: write dims")
		}
	}

	mazeBits := packCanonical(top, halls)
	if _, err := w.Write(mazeBits); err != nil {
		return errors.Wrap(err, "codec: write maze bitstream")
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(solutionLength)); err != nil {
		return errors.Wrap(err, "codec: write solutionLength")
	}

	solutionBits := packCanonical(top, solution)
	if _, err := w.Write(solutionBits); err != nil {
		return errors.Wrap(err, "codec: write solution bitstream")
	}

	return nil
}

// packCanonical walks walls in canonical order and packs one bit per wall,
// LSB-first, independent of the per-axis BitVector layout used in memory.
func packCanonical(top *topology.Topology, perAxis []*bitvector.BitVector) []byte {
	out := bitvector.New(top.TotalWalls)
	top.Walk(func(index, position, axis, cell1, cell2 int) {
		if perAxis[axis].Get(position) {
			out.Set(index)
		}
	})
	return out.Bytes()
}

// unpackCanonical is the inverse of packCanonical: it scatters a canonical
// wall bitstream back onto one BitVector per axis, sized to totalCells.
func unpackCanonical(top *topology.Topology, bits []byte, perAxis []*bitvector.BitVector) {
	in := bitvector.FromBytes(top.TotalWalls, bits)
	for _, h := range perAxis {
		h.Reset()
	}
	top.Walk(func(index, position, axis, cell1, cell2 int) {
		if in.Get(index) {
			perAxis[axis].Set(position)
		}
	})
}

// Read parses the header and validates the file is neither truncated nor
// internally inconsistent, but does not allocate bitmaps: callers use
// Unpack against a Topology matching File.Dims (freshly built, or an
// existing one reused when dims match).
func Read(r io.Reader) (*File, error) {
	var dimsLength uint32
	if err := binary.Read(r, binary.LittleEndian, &dimsLength); err != nil {
		return nil, ErrTruncated
	}
	if dimsLength == 0 {
		return nil, ErrInvalidDims
	}

	dims := make([]int, dimsLength)
	for i := range dims {
		var d uint32
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			return nil, ErrTruncated
		}
		dims[i] = int(d)
	}

	top, err := topology.New(dims)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDims, err.Error())
	}

	mazeBits := make([]byte, byteLen(top.TotalWalls))
	if _, err := io.ReadFull(r, mazeBits); err != nil {
		return nil, ErrTruncated
	}

	var solutionLength uint32
	if err := binary.Read(r, binary.LittleEndian, &solutionLength); err != nil {
		return nil, ErrTruncated
	}

	solutionBits := make([]byte, byteLen(top.TotalWalls))
	if _, err := io.ReadFull(r, solutionBits); err != nil {
		return nil, ErrTruncated
	}

	return &File{
		Dims:           dims,
		MazeBitstream:  mazeBits,
		SolutionLength: int(solutionLength),
		SolutionBits:   solutionBits,
	}, nil
}

// Unpack scatters f's bitstreams onto halls/solution, one BitVector per
// axis sized to top.TotalCells. top must describe the same dims as f.
func Unpack(top *topology.Topology, f *File, halls, solution []*bitvector.BitVector) {
	unpackCanonical(top, f.MazeBitstream, halls)
	unpackCanonical(top, f.SolutionBits, solution)
}

// Size returns the exact on-disk byte size of a file for the given
// topology, per §4.6: 4·(dims_length + 2) + 2·⌈totalWalls/8⌉.
func Size(top *topology.Topology) int {
	return 4*(len(top.Dims)+2) + 2*byteLen(top.TotalWalls)
}
