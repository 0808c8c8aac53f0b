package event

import (
	"sync/atomic"

	"github.com/lixenwraith/gridpath/parameter"
)

// EventQueue is a lock-free MPSC ring buffer
//
// Push may run on any goroutine; Consume belongs to the frame loop.
// A slot is visible to the consumer only after its published flag is set.
// When full, the oldest unread events are overwritten and counted as dropped.
type EventQueue struct {
	slots     [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // next slot to read
	tail      atomic.Uint64 // next slot to write
	dropped   atomic.Uint64
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event; never blocks
func (q *EventQueue) Push(ev GameEvent) {
	var slot uint64
	for {
		slot = q.tail.Load()
		if q.tail.CompareAndSwap(slot, slot+1) {
			break
		}
	}

	idx := slot & parameter.EventBufferMask
	q.slots[idx] = ev
	q.published[idx].Store(true)

	head := q.head.Load()
	if overflow := slot + 1 - head; overflow > parameter.EventQueueSize {
		if q.head.CompareAndSwap(head, slot+1-parameter.EventQueueSize) {
			q.dropped.Add(overflow - parameter.EventQueueSize)
		}
	}
}

// Emit is Push with the fields spelled out
func (q *EventQueue) Emit(et EventType, payload any, frame int64) {
	q.Push(GameEvent{Type: et, Payload: payload, Frame: frame})
}

// Consume drains published events in FIFO order
// Stops early at a slot whose writer has not finished
func (q *EventQueue) Consume() []GameEvent {
	for {
		start, tail := q.head.Load(), q.tail.Load()
		if tail == start {
			return nil
		}

		n := min(tail-start, uint64(parameter.EventQueueSize))
		head := tail - n

		out := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.published[idx].Load() {
				break
			}
			out = append(out, q.slots[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(start, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns an approximate pending count
func (q *EventQueue) Len() int {
	head, tail := q.head.Load(), q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, uint64(parameter.EventQueueSize)))
}

// Dropped returns how many events were overwritten before being consumed
func (q *EventQueue) Dropped() uint64 {
	return q.dropped.Load()
}
