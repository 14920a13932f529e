// Package generator builds a uniform random spanning tree over a grid
// topology using randomized Kruskal's algorithm backed by a union-find
// forest.
package generator

import (
	"math/rand"

	"github.com/artcfox/maze-generator/internal/bitvector"
	"github.com/artcfox/maze-generator/internal/topology"
	"github.com/artcfox/maze-generator/internal/unionfind"
)

// Wall is an unordered pair of adjacent cells, cell2 == cell1 + placeValue
// for the wall's axis.
type Wall struct {
	Cell1, Cell2 int
}

// Result is the outcome of a single Generate call.
type Result struct {
	// Lottery has one slot per wall; the first KnockedOut entries are
	// the walls removed to form the spanning tree, in arbitrary order.
	// The remainder of the slice is unspecified (rejected walls may be
	// overwritten and others repeated) and callers must not rely on its
	// contents or order.
	Lottery    []Wall
	KnockedOut int
	// NeighborCount[c] is the number of open halls incident to cell c.
	// Populated only when trackDegree is requested.
	NeighborCount []uint8
}

// Generate runs randomized Kruskal over top, seeding uf from scratch, and
// returns the spanning tree as a partially-shuffled lottery. rng must be
// non-nil and is consumed directly (the caller owns seeding). If
// trackDegree is true, NeighborCount is populated as walls are accepted.
// If halls is non-nil, one BitVector per axis, the spanning tree is also
// projected onto halls (cleared first).
func Generate(top *topology.Topology, uf *unionfind.UnionFind, rng *rand.Rand, trackDegree bool, halls []*bitvector.BitVector) *Result {
	lottery := make([]Wall, top.TotalWalls)
	top.Walk(func(index, position, axis, cell1, cell2 int) {
		lottery[index] = Wall{Cell1: cell1, Cell2: cell2}
	})

	uf.Reset(top.TotalCells)

	var neighborCount []uint8
	if trackDegree {
		neighborCount = make([]uint8, top.TotalCells)
	}

	extent := len(lottery)
	knockedOut := 0
	target := top.TotalCells - 1

	for knockedOut < target {
		r := knockedOut + rng.Intn(extent-knockedOut)
		w := lottery[r]
		root1 := uf.Find(w.Cell1)
		root2 := uf.Find(w.Cell2)
		if root1 != root2 {
			uf.Union(root1, root2)
			if trackDegree {
				neighborCount[w.Cell1]++
				neighborCount[w.Cell2]++
			}
			lottery[r], lottery[knockedOut] = lottery[knockedOut], lottery[r]
			knockedOut++
		} else {
			lottery[r] = lottery[extent-1]
			extent--
		}
	}

	if halls != nil {
		project(top, lottery[:knockedOut], halls)
	}

	return &Result{
		Lottery:       lottery,
		KnockedOut:    knockedOut,
		NeighborCount: neighborCount,
	}
}

func project(top *topology.Topology, walls []Wall, halls []*bitvector.BitVector) {
	for _, hall := range halls {
		hall.Reset()
	}
	for _, w := range walls {
		axis := top.AxisOf(w.Cell1, w.Cell2)
		halls[axis].Set(w.Cell1)
	}
}
