// Package graph defines the adjacency contract consumed by the sampling
// layers, along with Directed, a compact immutable in-memory implementation
// built from an edge list.
package graph

import (
	"fmt"
	"sort"

	humanize "github.com/dustin/go-humanize"
	. "github.com/gomlx/exceptions"
)

// Graph exposes the in-adjacency of a directed graph.
//
// Implementations must be safe for concurrent readers: the sampling layers
// treat a Graph as read-only for the duration of a forward pass.
type Graph interface {
	// InNeighbors returns the ids of the nodes with an edge pointing into
	// node -- its predecessors. The returned slice must not be modified by
	// the caller.
	InNeighbors(node int32) []int32

	// NumNodes returns the total number of nodes.
	NumNodes() int
}

// Edge is a directed source→target pair.
type Edge struct {
	Source, Target int32
}

// Directed is an immutable directed graph over a dense node universe
// (ids 0 to NumNodes-1) with CSR in-adjacency: the sources of all edges,
// grouped by their target node.
//
// Build one with FromEdges. It implements Graph.
type Directed struct {
	// starts has one entry per node (shifted by 1): the in-edge list of
	// node i is edgeSources[starts[i-1]:starts[i]], with an implicit 0
	// for i == 0. It is normal for a node to have an empty list.
	starts []int32

	// edgeSources lists the source node of every edge, ordered by target
	// node.
	edgeSources []int32
}

// FromEdges builds a Directed graph with numNodes nodes, ids 0 to
// numNodes-1, from the given edges. The edges slice is not retained nor
// modified.
//
// It panics if numNodes <= 0 or if any edge endpoint is out of range.
func FromEdges(numNodes int, edges []Edge) *Directed {
	if numNodes <= 0 {
		Panicf("graph.FromEdges: numNodes=%d, it must be > 0", numNodes)
	}
	for _, e := range edges {
		if e.Source < 0 || int(e.Source) >= numNodes || e.Target < 0 || int(e.Target) >= numNodes {
			Panicf("graph.FromEdges: edge %d→%d out of range, graph has %d nodes",
				e.Source, e.Target, numNodes)
		}
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Target < sorted[j].Target })

	g := &Directed{
		starts:      make([]int32, numNodes),
		edgeSources: make([]int32, len(sorted)),
	}
	currentTarget := int32(0)
	for row, e := range sorted {
		g.edgeSources[row] = e.Source
		for currentTarget < e.Target {
			g.starts[currentTarget] = int32(row)
			currentTarget++
		}
	}
	for ; int(currentTarget) < numNodes; currentTarget++ {
		g.starts[currentTarget] = int32(len(sorted))
	}
	return g
}

// NumNodes returns the total number of nodes.
func (g *Directed) NumNodes() int { return len(g.starts) }

// NumEdges returns the total number of edges.
func (g *Directed) NumEdges() int { return len(g.edgeSources) }

// InNeighbors returns the sources of the edges pointing into node.
// Don't modify the returned slice, it is in use by the graph -- make a copy
// if you need to modify it.
func (g *Directed) InNeighbors(node int32) []int32 {
	if node < 0 || int(node) >= len(g.starts) {
		Panicf("invalid node index %d, graph has only %d nodes", node, len(g.starts))
	}
	var start int32
	if node > 0 {
		start = g.starts[node-1]
	}
	return g.edgeSources[start:g.starts[node]]
}

// InDegree returns the number of edges pointing into node.
func (g *Directed) InDegree(node int32) int {
	return len(g.InNeighbors(node))
}

// MaxInDegree returns the largest in-degree across all nodes.
func (g *Directed) MaxInDegree() int {
	maxDegree := 0
	for node := range int32(len(g.starts)) {
		if d := g.InDegree(node); d > maxDegree {
			maxDegree = d
		}
	}
	return maxDegree
}

// String returns a one-line description of the graph sizes.
func (g *Directed) String() string {
	return fmt.Sprintf("Directed graph: %s nodes, %s edges",
		humanize.Comma(int64(g.NumNodes())), humanize.Comma(int64(g.NumEdges())))
}
