package navigation

import (
	"container/heap"
	"fmt"
	"strings"
)

// FrontierMode selects how the lowest-F open node is found
type FrontierMode uint8

const (
	// FrontierScan linearly scans every node each step, O(n)
	FrontierScan FrontierMode = iota
	// FrontierHeap keeps open nodes in a binary heap with decrease-key
	FrontierHeap
)

// String returns the configuration name of the mode
func (m FrontierMode) String() string {
	switch m {
	case FrontierScan:
		return "scan"
	case FrontierHeap:
		return "heap"
	default:
		return fmt.Sprintf("FrontierMode(%d)", uint8(m))
	}
}

// ParseFrontierMode maps a configuration name to a mode, case-insensitive
func ParseFrontierMode(name string) (FrontierMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "scan", "linear", "":
		return FrontierScan, true
	case "heap":
		return FrontierHeap, true
	}
	return 0, false
}

// frontier selects the next node to expand
// Both implementations order by (F, arena index) so they select identical nodes
type frontier interface {
	reset()
	// open registers a node that was created or reopened
	open(s *SearchState, idx int)
	// next removes and returns the lowest-F open node
	next(s *SearchState) (int, bool)
}

func newFrontier(mode FrontierMode) frontier {
	if mode == FrontierHeap {
		return &heapFrontier{}
	}
	return scanFrontier{}
}

// less orders nodes by F, then by creation order
func less(s *SearchState, a, b int) bool {
	fa, fb := s.nodes[a].F, s.nodes[b].F
	if fa != fb {
		return fa < fb
	}
	return a < b
}

// --- Linear scan ---

type scanFrontier struct{}

func (scanFrontier) reset() {}

func (scanFrontier) open(*SearchState, int) {}

func (scanFrontier) next(s *SearchState) (int, bool) {
	best := -1
	for i := range s.nodes {
		if s.nodes[i].Closed {
			continue
		}
		if best < 0 || less(s, i, best) {
			best = i
		}
	}
	return best, best >= 0
}

// --- Binary heap ---

type heapFrontier struct {
	h openHeap
}

func (f *heapFrontier) reset() {
	f.h.items = f.h.items[:0]
	f.h.state = nil
}

func (f *heapFrontier) open(s *SearchState, idx int) {
	f.h.state = s
	if pos := s.nodes[idx].heapPos; pos >= 0 {
		heap.Fix(&f.h, pos)
		return
	}
	heap.Push(&f.h, idx)
}

func (f *heapFrontier) next(s *SearchState) (int, bool) {
	f.h.state = s
	if len(f.h.items) == 0 {
		return -1, false
	}
	return heap.Pop(&f.h).(int), true
}

// openHeap implements heap.Interface over arena indices
type openHeap struct {
	items []int
	state *SearchState
}

func (h *openHeap) Len() int           { return len(h.items) }
func (h *openHeap) Less(i, j int) bool { return less(h.state, h.items[i], h.items[j]) }
func (h *openHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.state.nodes[h.items[i]].heapPos = i
	h.state.nodes[h.items[j]].heapPos = j
}

func (h *openHeap) Push(x any) {
	idx := x.(int)
	h.state.nodes[idx].heapPos = len(h.items)
	h.items = append(h.items, idx)
}

func (h *openHeap) Pop() any {
	n := len(h.items)
	idx := h.items[n-1]
	h.items = h.items[:n-1]
	h.state.nodes[idx].heapPos = -1
	return idx
}
