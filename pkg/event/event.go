// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Gameplay event types
const (
	ProjectileLaunched    Type = "projectile_launched"
	AbilityActivated      Type = "ability_activated"
	ProjectileSplit       Type = "projectile_split"
	ProjectileOutOfBounds Type = "projectile_out_of_bounds"
	EntityDestroyed       Type = "entity_destroyed"
	VariantSelected       Type = "variant_selected"
	GameWon               Type = "game_won"
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

// Subscription identifies a registered handler
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   Subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == sub {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// EntityEvent describes something that happened to a single entity
type EntityEvent struct {
	BaseEvent
	EntityID string
	Kind     string
	Reason   string
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID, kind, reason string) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Kind:     kind,
		Reason:   reason,
	}
}

// LaunchEvent is published when a projectile leaves the sling
type LaunchEvent struct {
	BaseEvent
	EntityID  string
	Variant   string
	Magnitude float64
	Angle     float64
}

// NewLaunchEvent creates a new launch event
func NewLaunchEvent(source interface{}, entityID, variant string, magnitude, angle float64) *LaunchEvent {
	return &LaunchEvent{
		BaseEvent: BaseEvent{
			EventType: ProjectileLaunched,
			Source:    source,
		},
		EntityID:  entityID,
		Variant:   variant,
		Magnitude: magnitude,
		Angle:     angle,
	}
}

// SplitEvent is published when a projectile is replaced by its fragments
type SplitEvent struct {
	BaseEvent
	ParentID    string
	FragmentIDs []string
}

// NewSplitEvent creates a new split event
func NewSplitEvent(source interface{}, parentID string, fragmentIDs []string) *SplitEvent {
	return &SplitEvent{
		BaseEvent: BaseEvent{
			EventType: ProjectileSplit,
			Source:    source,
		},
		ParentID:    parentID,
		FragmentIDs: fragmentIDs,
	}
}
