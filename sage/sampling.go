package sage

import (
	"math/rand/v2"

	"golang.org/x/exp/constraints"
)

// Uncapped disables the per-layer neighbor sample cap: every layer takes
// all in-neighbors of each target.
const Uncapped = 0

// sampleNeighbors returns min(k, len(candidates)) distinct elements of
// candidates, drawn uniformly without replacement from rng. With
// k == Uncapped, or when there are at most k candidates, it returns
// candidates itself -- callers must treat the result as read-only.
//
// A nil rng falls back to the process-global random stream.
func sampleNeighbors(candidates []int32, k int, rng *rand.Rand) []int32 {
	if k == Uncapped || len(candidates) <= k {
		return candidates
	}
	picks := make([]int32, k)
	sampleKOfN(picks, len(candidates), rng)
	out := make([]int32, k)
	for i, idx := range picks {
		out[i] = candidates[idx]
	}
	return out
}

// sampleKOfN stores k distinct random values out of 0..n-1 in picks,
// k = len(picks), k < n.
func sampleKOfN(picks []int32, n int, rng *rand.Rand) {
	k := len(picks)
	if k*k < n {
		sampleKOfNLinear(picks, n, rng)
	} else {
		sampleKOfNReservoir(picks, n, rng)
	}
}

// sampleKOfNLinear checks each draw against the previous ones: O(k^2), but
// faster than hashing for the small k of typical sample caps.
func sampleKOfNLinear(picks []int32, n int, rng *rand.Rand) {
	for ii := range picks {
		var x int32
	takeANumber:
		for {
			x = int32(intN(rng, n))
			for jj := range ii {
				if picks[jj] == x {
					continue takeANumber
				}
			}
			break
		}
		picks[ii] = x
	}
}

// sampleKOfNReservoir runs reservoir sampling over all n values, for when
// k is a large fraction of n.
func sampleKOfNReservoir(picks []int32, n int, rng *rand.Rand) {
	k := len(picks)
	for ii := range k {
		picks[ii] = int32(ii)
	}
	for ii := k; ii < n; ii++ {
		pos := intN(rng, ii+1)
		if pos < k {
			picks[pos] = int32(ii)
		}
	}
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// frontier accumulates the union-of-dependencies of one layer: an
// insertion-ordered deduplicated node list with the node→position index
// used to gather each node's hidden vector from the child feature source's
// output.
type frontier[T constraints.Integer] struct {
	nodes []T
	index map[T]int
}

func newFrontier[T constraints.Integer](sizeHint int) *frontier[T] {
	return &frontier[T]{
		nodes: make([]T, 0, sizeHint),
		index: make(map[T]int, sizeHint),
	}
}

// Add inserts node if not yet present.
func (f *frontier[T]) Add(node T) {
	if _, found := f.index[node]; found {
		return
	}
	f.index[node] = len(f.nodes)
	f.nodes = append(f.nodes, node)
}

// IndexOf returns the position of node in Nodes. The node must have been
// added.
func (f *frontier[T]) IndexOf(node T) int { return f.index[node] }

// Nodes returns the deduplicated nodes in insertion order.
func (f *frontier[T]) Nodes() []T { return f.nodes }

// Len returns the number of distinct nodes added.
func (f *frontier[T]) Len() int { return len(f.nodes) }
