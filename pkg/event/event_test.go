// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()
	require.NotNil(t, bus)
	assert.NotNil(t, bus.handlers)
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"launch event", ProjectileLaunched, "test_source"},
		{"destroyed event", EntityDestroyed, 123},
		{"empty source", GameWon, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			assert.Equal(t, tt.eventType, e.GetType())
			assert.Equal(t, tt.source, e.GetSource())
		})
	}
}

func TestBusPublish_WithSubscribers_CallsAllHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []int

	bus.Subscribe(GameWon, func(Event) { calls = append(calls, 1) })
	bus.Subscribe(GameWon, func(Event) { calls = append(calls, 2) })
	bus.Subscribe(EntityDestroyed, func(Event) { calls = append(calls, 3) })

	bus.Publish(&BaseEvent{EventType: GameWon})

	assert.Equal(t, []int{1, 2}, calls)
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Publish(&BaseEvent{EventType: ProjectileSplit})
	})
}

func TestBusUnsubscribe_RemovesOnlyTargetHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(EntityDestroyed, func(Event) { first++ })
	bus.Subscribe(EntityDestroyed, func(Event) { second++ })

	bus.Publish(&BaseEvent{EventType: EntityDestroyed})
	bus.Unsubscribe(EntityDestroyed, sub)
	bus.Publish(&BaseEvent{EventType: EntityDestroyed})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	// unknown subscription is ignored
	bus.Unsubscribe(GameWon, sub)
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(VariantSelected, func(Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	bus.Publish(&BaseEvent{EventType: VariantSelected})
	assert.Equal(t, 20, count)
}

func TestNewEntityEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	e := NewEntityEvent(EntityDestroyed, "src", "id-1", "target", "impact")

	assert.Equal(t, EntityDestroyed, e.GetType())
	assert.Equal(t, "src", e.GetSource())
	assert.Equal(t, "id-1", e.EntityID)
	assert.Equal(t, "target", e.Kind)
	assert.Equal(t, "impact", e.Reason)
}

func TestNewLaunchAndSplitEvents(t *testing.T) {
	l := NewLaunchEvent(nil, "p1", "boost", 5000, 0.5)
	assert.Equal(t, ProjectileLaunched, l.GetType())
	assert.Equal(t, 5000.0, l.Magnitude)

	s := NewSplitEvent(nil, "p1", []string{"a", "b", "c"})
	assert.Equal(t, ProjectileSplit, s.GetType())
	assert.Len(t, s.FragmentIDs, 3)
}
