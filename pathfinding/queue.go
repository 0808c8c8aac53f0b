package pathfinding

import (
	"github.com/lixenwraith/gridpath/core"
)

// PathRequest is one queued search
// Start is kept as given so a failed search can fall back to the exact position
type PathRequest[ID comparable] struct {
	Requester ID
	Start     core.GridPoint
	Goal      core.GridPoint
	StartCell core.CellKey
	GoalCell  core.CellKey
}

// RequestQueue is a FIFO of pending requests; the head is the active one
type RequestQueue[ID comparable] struct {
	items []PathRequest[ID]
	head  int
}

// NewRequestQueue creates an empty queue
func NewRequestQueue[ID comparable]() *RequestQueue[ID] {
	return &RequestQueue[ID]{}
}

// Push appends a request
func (q *RequestQueue[ID]) Push(r PathRequest[ID]) {
	q.items = append(q.items, r)
}

// Peek returns the head without removing it
func (q *RequestQueue[ID]) Peek() (PathRequest[ID], bool) {
	if q.head >= len(q.items) {
		var zero PathRequest[ID]
		return zero, false
	}
	return q.items[q.head], true
}

// Pop removes and returns the head
func (q *RequestQueue[ID]) Pop() (PathRequest[ID], bool) {
	r, ok := q.Peek()
	if !ok {
		return r, false
	}
	q.items[q.head] = PathRequest[ID]{}
	q.head++

	// Compact once the consumed prefix dominates
	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	} else if q.head > 32 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items, q.head = q.items[:n], 0
	}
	return r, true
}

// Len returns the number of queued requests, the active one included
func (q *RequestQueue[ID]) Len() int {
	return len(q.items) - q.head
}
