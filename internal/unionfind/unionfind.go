// Package unionfind implements a disjoint-set forest over a dense range of
// integer indices, using union-by-rank and path compression. Rank is
// encoded as a negative value in the same slot that would otherwise hold a
// parent index: a root x has slot[x] == -(rank+1); a non-root holds the
// index of its parent.
package unionfind

// UnionFind is a disjoint-set forest over [0, n).
type UnionFind struct {
	slot []int32
}

// New allocates a UnionFind over n elements, each in its own singleton set.
func New(n int) *UnionFind {
	u := &UnionFind{slot: make([]int32, n)}
	u.Reset(n)
	return u
}

// Reset re-initializes the forest to n singleton sets, all entries -1.
func (u *UnionFind) Reset(n int) {
	if cap(u.slot) < n {
		u.slot = make([]int32, n)
	} else {
		u.slot = u.slot[:n]
	}
	for i := range u.slot {
		u.slot[i] = -1
	}
}

// Find returns the root of x's set, compressing the path walked.
func (u *UnionFind) Find(x int) int {
	root := x
	for u.slot[root] >= 0 {
		root = int(u.slot[root])
	}
	for u.slot[x] >= 0 {
		next := int(u.slot[x])
		u.slot[x] = int32(root)
		x = next
	}
	return root
}

// Union merges the sets rooted at r1 and r2, by rank. r1 and r2 must
// already be roots (i.e. the result of Find).
func (u *UnionFind) Union(r1, r2 int) {
	if u.slot[r2] < u.slot[r1] {
		u.slot[r1] = int32(r2)
		return
	}
	if u.slot[r1] == u.slot[r2] {
		u.slot[r1]--
	}
	u.slot[r2] = int32(r1)
}

// SameSet reports whether x and y are in the same set.
func (u *UnionFind) SameSet(x, y int) bool {
	return u.Find(x) == u.Find(y)
}
