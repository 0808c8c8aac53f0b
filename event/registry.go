package event

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	registryOnce  sync.Once
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
)

// RegisterType maps a name to an EventType and its payload struct type
// payloadInstance is a pointer to the payload struct, or nil for payload-less events
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance == nil {
		return
	}
	t := reflect.TypeOf(payloadInstance)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	typeToPayload[et] = t
}

// GetEventType resolves a name, case-insensitive for the implicit Tick
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the registered name, or a numeric fallback
func GetEventName(et EventType) string {
	if et == EventTick {
		return "Tick"
	}
	if name, ok := typeToName[et]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(et))
}

// NewPayloadStruct returns a pointer to a zero payload for et, nil if none is registered
func NewPayloadStruct(et EventType) any {
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry registers every sandbox event; safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		RegisterType("EventPathRequested", EventPathRequested, &PathRequestedPayload{})
		RegisterType("EventPathReady", EventPathReady, &PathReadyPayload{})
		RegisterType("EventGridChanged", EventGridChanged, &GridChangedPayload{})
		RegisterType("EventSoundRequest", EventSoundRequest, &SoundRequestPayload{})
	})
}
