package navigation

import (
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/parameter"
)

// NoParent marks the root node of a search tree
const NoParent = -1

// SearchNode is one cell record in the A* arena
// Parent is an arena index valid only for the request that created it
type SearchNode struct {
	Loc    core.CellKey
	Parent int
	G      float64 // Cost from start
	H      float64 // Heuristic estimate to goal
	F      float64 // G + weight*H
	Closed bool

	heapPos int // Position in heap frontier, -1 when absent
}

// SearchState owns the node arena and the cell index for the active request
// At most one node exists per cell; a cheaper route overwrites the node in place
type SearchState struct {
	nodes []SearchNode
	index map[core.CellKey]int
}

// NewSearchState creates an empty state with preallocated arena capacity
func NewSearchState() *SearchState {
	return &SearchState{
		nodes: make([]SearchNode, 0, parameter.NavArenaHint),
		index: make(map[core.CellKey]int, parameter.NavArenaHint),
	}
}

// Reset discards every node; indices from the previous request become invalid
func (s *SearchState) Reset() {
	s.nodes = s.nodes[:0]
	clear(s.index)
}

// Len returns the number of nodes created for the current request
func (s *SearchState) Len() int {
	return len(s.nodes)
}

// Empty reports whether no node exists
func (s *SearchState) Empty() bool {
	return len(s.nodes) == 0
}

// Node returns the node at arena index i
func (s *SearchState) Node(i int) SearchNode {
	return s.nodes[i]
}

// Lookup returns the arena index for a cell
func (s *SearchState) Lookup(k core.CellKey) (int, bool) {
	i, ok := s.index[k]
	return i, ok
}

// OpenCount returns the number of non-closed nodes
func (s *SearchState) OpenCount() int {
	n := 0
	for i := range s.nodes {
		if !s.nodes[i].Closed {
			n++
		}
	}
	return n
}

// ClosedCount returns the number of closed nodes
func (s *SearchState) ClosedCount() int {
	return len(s.nodes) - s.OpenCount()
}

// add appends a node and indexes its cell, returning the arena index
func (s *SearchState) add(n SearchNode) int {
	n.heapPos = -1
	idx := len(s.nodes)
	s.nodes = append(s.nodes, n)
	s.index[n.Loc] = idx
	return idx
}

// Chain walks parent links from idx to the root and returns cells in root→idx order
// Walk length is bounded by the arena size
func (s *SearchState) Chain(idx int) []core.CellKey {
	if idx < 0 || idx >= len(s.nodes) {
		return nil
	}
	var chain []core.CellKey
	for i, guard := idx, 0; i != NoParent && guard <= len(s.nodes); guard++ {
		chain = append(chain, s.nodes[i].Loc)
		i = s.nodes[i].Parent
	}
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain
}
