package render

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

const sampleRate = beep.SampleRate(44100)

// Tone is a short sine beep
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

var eventTones = map[event.Type]Tone{
	event.ProjectileLaunched: {Frequency: 440, Duration: 80 * time.Millisecond},
	event.AbilityActivated:   {Frequency: 660, Duration: 60 * time.Millisecond},
	event.ProjectileSplit:    {Frequency: 880, Duration: 60 * time.Millisecond},
	event.EntityDestroyed:    {Frequency: 220, Duration: 150 * time.Millisecond},
	event.VariantSelected:    {Frequency: 520, Duration: 30 * time.Millisecond},
	event.GameWon:            {Frequency: 1046, Duration: 400 * time.Millisecond},
}

// ToneFor returns the tone played for an event type
func ToneFor(t event.Type) (Tone, bool) {
	tone, ok := eventTones[t]
	return tone, ok
}

type soundSubscription struct {
	eventType event.Type
	id        event.Subscription
}

// SoundManager plays event tones through the system speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	output      func(beep.Streamer)
	logger      *logging.Logger

	bus  *event.Bus
	subs []soundSubscription
}

// NewSoundManager creates a sound manager. Nothing plays until Initialize
// succeeds.
func NewSoundManager(logger *logging.Logger) *SoundManager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger.With("component", "sound"),
	}
	sm.output = sm.mix
	return sm
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return logging.WrapError(err, "initialize speaker")
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) mix(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Attach plays a tone for every event with one
func (sm *SoundManager) Attach(bus *event.Bus) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.bus = bus
	for t, tone := range eventTones {
		tone := tone
		id := bus.Subscribe(t, func(event.Event) {
			if err := sm.Play(tone); err != nil {
				sm.logger.Warn(context.Background(), "tone failed", "error", err.Error())
			}
		})
		sm.subs = append(sm.subs, soundSubscription{eventType: t, id: id})
	}
}

// Detach removes all bus subscriptions
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, s := range sm.subs {
		sm.bus.Unsubscribe(s.eventType, s.id)
	}
	sm.subs = nil
}

// Play queues a tone. It is a no-op before Initialize.
func (sm *SoundManager) Play(tone Tone) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	sine, err := generators.SineTone(sampleRate, tone.Frequency)
	if err != nil {
		return err
	}
	quiet := &effects.Volume{Streamer: sine, Base: 2, Volume: -2}
	sm.output(beep.Take(sampleRate.N(tone.Duration), quiet))
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.initialized = false
}
