// Package topology derives the arithmetic that maps an N-dimensional
// rectangular grid onto a flat cell index, and enumerates the walls
// between adjacent cells in the canonical order shared by maze generation
// and the on-disk codec.
package topology

import (
	"github.com/pkg/errors"
)

// Topology holds the derived sizing of an N-dimensional grid.
type Topology struct {
	Dims       []int
	PlaceValue []int
	TotalCells int
	TotalWalls int
}

// New derives a Topology from a sequence of positive per-axis extents.
// Axis 0 is the innermost (fastest-varying) dimension.
func New(dims []int) (*Topology, error) {
	if len(dims) == 0 {
		return nil, errors.New("topology: dims must have at least one axis")
	}
	for i, d := range dims {
		if d <= 0 {
			return nil, errors.Errorf("topology: dims[%d] = %d, must be positive", i, d)
		}
	}

	placeValue := make([]int, len(dims))
	totalCells := 1
	for i, d := range dims {
		placeValue[i] = totalCells
		totalCells *= d
	}

	totalWalls := 0
	for i, d := range dims {
		if d < 2 {
			continue
		}
		subTotal := 1
		for j, dj := range dims {
			if j != i {
				subTotal *= dj
			}
		}
		totalWalls += subTotal * (d - 1)
	}

	return &Topology{
		Dims:       append([]int(nil), dims...),
		PlaceValue: placeValue,
		TotalCells: totalCells,
		TotalWalls: totalWalls,
	}, nil
}

// Coordinates decomposes a flat cell position into its per-axis coordinates.
func (t *Topology) Coordinates(position int) []int {
	coords := make([]int, len(t.Dims))
	for i, pv := range t.PlaceValue {
		coords[i] = (position / pv) % t.Dims[i]
	}
	return coords
}

// WallFunc is called once per wall in canonical order: index is the wall's
// position in the canonical enumeration (and thus its bit index on disk),
// axis is the dimension the wall spans, and cell1/cell2 are its endpoints
// (cell2 == cell1 + PlaceValue[axis]).
type WallFunc func(index, position, axis, cell1, cell2 int)

// Walk enumerates every wall in canonical order: position ascending
// outermost, axis ascending innermost. This is the order the initial
// lottery is seeded in and the only order the file codec depends on.
func (t *Topology) Walk(fn WallFunc) {
	index := 0
	for position := 0; position < t.TotalCells; position++ {
		for axis, d := range t.Dims {
			if d < 2 {
				continue
			}
			if (position/t.PlaceValue[axis])%d < d-1 {
				cell2 := position + t.PlaceValue[axis]
				fn(index, position, axis, position, cell2)
				index++
			}
		}
	}
}

// AxisOf returns the axis a wall (cell1, cell2) with cell2 > cell1 spans.
// It returns -1 if no axis matches (cell2 is not a valid neighbor of
// cell1).
func (t *Topology) AxisOf(cell1, cell2 int) int {
	diff := cell2 - cell1
	for axis, pv := range t.PlaceValue {
		if t.Dims[axis] < 2 {
			// A size-1 axis never carries a wall, and may share a
			// PlaceValue with a real axis when it sits between them.
			continue
		}
		if pv == diff {
			return axis
		}
	}
	return -1
}
