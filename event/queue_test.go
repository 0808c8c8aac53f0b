package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Consume())

	for i := 0; i < 5; i++ {
		q.Emit(EventPathReady, &PathReadyPayload{Expanded: i}, int64(i))
	}
	assert.Equal(t, 5, q.Len())

	got := q.Consume()
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, EventPathReady, ev.Type)
		assert.Equal(t, i, ev.Payload.(*PathReadyPayload).Expanded)
		assert.Equal(t, int64(i), ev.Frame)
	}
	assert.Zero(t, q.Len())
	assert.Nil(t, q.Consume())
}

func TestQueueOverwritesOldest(t *testing.T) {
	q := NewEventQueue()
	extra := 6
	for i := 0; i < parameter.EventQueueSize+extra; i++ {
		q.Emit(EventGridChanged, nil, int64(i))
	}
	assert.Equal(t, parameter.EventQueueSize, q.Len())
	assert.Equal(t, uint64(extra), q.Dropped())

	got := q.Consume()
	require.Len(t, got, parameter.EventQueueSize)
	assert.Equal(t, int64(extra), got[0].Frame)
	assert.Equal(t, int64(parameter.EventQueueSize+extra-1), got[len(got)-1].Frame)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	const producers, each = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Emit(EventPathRequested, nil, 0)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, q.Consume(), producers*each)
}

type recorder struct {
	seen []EventType
}

func (r *recorder) HandleEvent(_ *int, ev GameEvent) { r.seen = append(r.seen, ev.Type) }
func (r *recorder) EventTypes() []EventType         { return []EventType{EventPathReady, EventSoundRequest} }

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter[*int](q)

	rec := &recorder{}
	r.Register(rec)

	count := 0
	r.Register(HandlerFunc[*int]{
		Types: []EventType{EventPathReady},
		Fn: func(ctx *int, ev GameEvent) {
			*ctx++
			q.Emit(EventSoundRequest, &SoundRequestPayload{Kind: SoundFound}, ev.Frame)
		},
	})
	assert.Equal(t, 2, r.HandlerCount(EventPathReady))

	q.Emit(EventGridChanged, nil, 1)
	q.Emit(EventPathReady, nil, 1)

	assert.Equal(t, 2, r.DispatchAll(&count))
	assert.Equal(t, 1, count)
	assert.Equal(t, []EventType{EventPathReady}, rec.seen)

	// Follow-up events land on the next dispatch
	assert.Equal(t, 1, r.DispatchAll(&count))
	assert.Equal(t, []EventType{EventPathReady, EventSoundRequest}, rec.seen)
}

func TestRegistry(t *testing.T) {
	InitRegistry()
	InitRegistry()

	et, ok := GetEventType("EventPathReady")
	require.True(t, ok)
	assert.Equal(t, EventPathReady, et)
	assert.Equal(t, "EventPathReady", GetEventName(et))
	assert.Equal(t, "Tick", GetEventName(EventTick))
	assert.Equal(t, "EventType(99)", GetEventName(99))

	_, isPayload := NewPayloadStruct(EventPathReady).(*PathReadyPayload)
	assert.True(t, isPayload)
	assert.Nil(t, NewPayloadStruct(EventTick))
}
