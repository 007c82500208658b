// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Signals published by the locomotion core
const (
	StateChanged    Type = "state_changed"
	Jumped          Type = "jumped"
	JumpRejected    Type = "jump_rejected"
	DodgeStarted    Type = "dodge_started"
	DodgeEnded      Type = "dodge_ended"
	DodgeRejected   Type = "dodge_rejected"
	DegenerateFrame Type = "degenerate_frame"
	CameraOccluded  Type = "camera_occluded"
	SessionStarted  Type = "session_started"
	SessionReset    Type = "session_reset"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
	Step      uint64
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type entry struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]entry
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]entry),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], entry{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, e := range handlers {
		if e.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. A nil bus drops the
// event so components can run without one.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, e := range handlers {
		e.handler(event)
	}
}

// StateEvent reports a locomotion state transition
type StateEvent struct {
	BaseEvent
	From string
	To   string
}

// NewStateEvent creates a new state transition event
func NewStateEvent(source interface{}, step uint64, from, to string) *StateEvent {
	return &StateEvent{
		BaseEvent: BaseEvent{EventType: StateChanged, Source: source, Step: step},
		From:      from,
		To:        to,
	}
}

// TriggerEvent reports what happened to a jump or dodge trigger
type TriggerEvent struct {
	BaseEvent
	Reason string
}

// NewTriggerEvent creates a new trigger event
func NewTriggerEvent(eventType Type, source interface{}, step uint64, reason string) *TriggerEvent {
	return &TriggerEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source, Step: step},
		Reason:    reason,
	}
}

// FrameEvent reports a step where no gravity frame could be resolved
type FrameEvent struct {
	BaseEvent
	Component string
	Held      bool // previous frame reused
}

// NewFrameEvent creates a new degenerate-frame event
func NewFrameEvent(source interface{}, step uint64, component string, held bool) *FrameEvent {
	return &FrameEvent{
		BaseEvent: BaseEvent{EventType: DegenerateFrame, Source: source, Step: step},
		Component: component,
		Held:      held,
	}
}
