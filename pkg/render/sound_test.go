package render

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-slingshot/pkg/event"
)

// newCapturingSoundManager returns a manager that records streamers instead
// of sending them to the speaker
func newCapturingSoundManager() (*SoundManager, *[]beep.Streamer) {
	var played []beep.Streamer
	sm := NewSoundManager(nil)
	sm.initialized = true
	sm.output = func(s beep.Streamer) { played = append(played, s) }
	return sm, &played
}

func streamLength(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestToneFor(t *testing.T) {
	tests := []struct {
		eventType event.Type
		wantOK    bool
	}{
		{event.ProjectileLaunched, true},
		{event.AbilityActivated, true},
		{event.ProjectileSplit, true},
		{event.EntityDestroyed, true},
		{event.VariantSelected, true},
		{event.GameWon, true},
		{event.ProjectileOutOfBounds, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			tone, ok := ToneFor(tt.eventType)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Greater(t, tone.Frequency, 0.0)
				assert.Less(t, tone.Frequency, float64(sampleRate)/2)
				assert.Greater(t, tone.Duration, time.Duration(0))
			}
		})
	}
}

func TestSoundManager_SilentBeforeInitialize(t *testing.T) {
	sm := NewSoundManager(nil)
	var played int
	sm.output = func(beep.Streamer) { played++ }

	require.NoError(t, sm.Play(Tone{Frequency: 440, Duration: 10 * time.Millisecond}))
	assert.Zero(t, played)
	assert.NotPanics(t, sm.Cleanup)
}

func TestSoundManager_PlayLength(t *testing.T) {
	sm, played := newCapturingSoundManager()

	require.NoError(t, sm.Play(Tone{Frequency: 440, Duration: 10 * time.Millisecond}))
	require.Len(t, *played, 1)
	assert.Equal(t, sampleRate.N(10*time.Millisecond), streamLength((*played)[0]))
}

func TestSoundManager_InvalidFrequency(t *testing.T) {
	sm, played := newCapturingSoundManager()

	assert.Error(t, sm.Play(Tone{Frequency: 30000, Duration: time.Millisecond}))
	assert.Empty(t, *played)
}

func TestSoundManager_AttachDetach(t *testing.T) {
	sm, played := newCapturingSoundManager()
	bus := event.NewEventBus()

	sm.Attach(bus)
	bus.Publish(event.NewLaunchEvent(nil, "p1", "standard", 100, 0))
	bus.Publish(event.NewEntityEvent(event.ProjectileOutOfBounds, nil, "p1", "projectile", "out_of_bounds"))
	bus.Publish(event.NewEntityEvent(event.EntityDestroyed, nil, "t1", "target", "impact"))
	assert.Len(t, *played, 2)

	sm.Detach()
	bus.Publish(event.NewLaunchEvent(nil, "p2", "standard", 100, 0))
	assert.Len(t, *played, 2)
}
