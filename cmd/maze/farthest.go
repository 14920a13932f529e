package main

import (
	mazepkg "github.com/artcfox/maze-generator"
	"github.com/artcfox/maze-generator/internal/topology"
)

// FarthestPair runs the classic double-sweep longest-path heuristic over a
// generated maze's spanning tree: a BFS from any cell finds a farthest
// cell A; a second BFS from A finds a farthest cell B. (A, B) is then the
// diameter of the tree, the same "pick the two most separated openings"
// goal the teacher program's searchBestOpenings pursued by brute-force
// repeated solves.
func FarthestPair(m *mazepkg.Maze) (start, end int) {
	top, err := topology.New(m.Dims())
	if err != nil {
		return 0, m.TotalCells() - 1
	}
	halls := m.Halls()

	bfsFarthest := func(from int) int {
		dist := make([]int, top.TotalCells)
		for i := range dist {
			dist[i] = -1
		}
		dist[from] = 0
		queue := []int{from}
		farthest := from
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if dist[cur] > dist[farthest] {
				farthest = cur
			}
			for axis, pv := range top.PlaceValue {
				if halls[axis].Get(cur) {
					if nxt := cur + pv; dist[nxt] == -1 {
						dist[nxt] = dist[cur] + 1
						queue = append(queue, nxt)
					}
				}
				if prev := cur - pv; prev >= 0 && halls[axis].Get(prev) && dist[prev] == -1 {
					dist[prev] = dist[cur] + 1
					queue = append(queue, prev)
				}
			}
		}
		return farthest
	}

	a := bfsFarthest(0)
	b := bfsFarthest(a)
	return a, b
}
