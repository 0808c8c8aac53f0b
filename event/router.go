package event

// Handler processes routed events within a context T
type Handler[T any] interface {
	// HandleEvent is called synchronously during dispatch
	HandleEvent(ctx T, ev GameEvent)

	// EventTypes lists the types the handler subscribes to
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, ev GameEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, ev GameEvent) { h.Fn(ctx, ev) }
func (h HandlerFunc[T]) EventTypes() []EventType       { return h.Types }

// Router drains a queue and fans events out to handlers
// Dispatch is single-threaded; handlers run in registration order
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *EventQueue
}

// NewRouter creates a router attached to queue
func NewRouter[T any](queue *EventQueue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register subscribes handler to its declared types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes pending events and routes each in FIFO order
// Events pushed by handlers are picked up on the next call; returns the number dispatched
func (r *Router[T]) DispatchAll(ctx T) int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for t
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
