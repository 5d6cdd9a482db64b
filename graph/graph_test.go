package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEdges(t *testing.T) {
	// Authors 0..9 writing papers 0..4, as in-edges of the papers.
	g := FromEdges(10, []Edge{
		{0, 2}, // Node 0 points to node 2.
		{3, 2},
		{4, 2},
		{0, 3},
		{0, 4},
		{4, 4},
		{7, 4},
	})
	assert.Equal(t, 10, g.NumNodes())
	assert.Equal(t, 7, g.NumEdges())

	assert.ElementsMatch(t, []int32{0, 3, 4}, g.InNeighbors(2))
	assert.ElementsMatch(t, []int32{0}, g.InNeighbors(3))
	assert.ElementsMatch(t, []int32{0, 4, 7}, g.InNeighbors(4))
	assert.Empty(t, g.InNeighbors(0))
	assert.Empty(t, g.InNeighbors(9))

	assert.Equal(t, 3, g.InDegree(4))
	assert.Equal(t, 0, g.InDegree(5))
	assert.Equal(t, 3, g.MaxInDegree())
}

func TestFromEdgesDoesNotRetainInput(t *testing.T) {
	edges := []Edge{{1, 0}, {2, 0}}
	g := FromEdges(3, edges)
	edges[0] = Edge{2, 1}
	assert.ElementsMatch(t, []int32{1, 2}, g.InNeighbors(0))
	assert.Empty(t, g.InNeighbors(1))
}

func TestNoEdges(t *testing.T) {
	g := FromEdges(4, nil)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 0, g.NumEdges())
	for node := range int32(4) {
		assert.Empty(t, g.InNeighbors(node))
	}
	assert.Equal(t, 0, g.MaxInDegree())
}

func TestOutOfRangePanics(t *testing.T) {
	g := FromEdges(3, []Edge{{0, 1}})
	require.Panics(t, func() { g.InNeighbors(3) })
	require.Panics(t, func() { g.InNeighbors(-1) })
	require.Panics(t, func() { FromEdges(0, nil) })
	require.Panics(t, func() { FromEdges(2, []Edge{{0, 5}}) })
}

func TestString(t *testing.T) {
	g := FromEdges(1500, []Edge{{0, 1}, {1, 2}})
	assert.Equal(t, "Directed graph: 1,500 nodes, 2 edges", g.String())
}
