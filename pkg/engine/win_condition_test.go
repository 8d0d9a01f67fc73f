// pkg/engine/win_condition_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-slingshot/pkg/collision"
	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/event"
)

// TestWinCondition_LatchesOnFirstEmptyTick verifies that the win flag flips
// on the tick the last target disappears and never flips back
func TestWinCondition_LatchesOnFirstEmptyTick(t *testing.T) {
	s, rec := newTestSession(t, nil)
	tracker := &sessionTracker{s: s}

	s.Tick(0)
	assert.False(t, s.Won())

	s.mu.Lock()
	for _, target := range append([]*entity.Target(nil), s.targets...) {
		tracker.Destroy(target, collision.ReasonImpact)
	}
	s.mu.Unlock()

	// destruction alone does not latch; the next tick does
	assert.False(t, s.Won())
	assert.Empty(t, s.Targets())

	s.Tick(0)
	assert.True(t, s.Won())
	assert.Equal(t, StatusWon, s.Snapshot().Status)

	for i := 0; i < 10; i++ {
		s.Tick(0)
	}
	assert.True(t, s.Won())
	assert.Equal(t, 1, rec.count(event.GameWon))
}

// TestWinCondition_EmptySceneWinsImmediately verifies that a scene without
// targets is won on the first tick
func TestWinCondition_EmptySceneWinsImmediately(t *testing.T) {
	s, rec := newTestSession(t, func(c *config.GameConfig) {
		c.Scene.Targets = nil
	})

	assert.False(t, s.Won())
	s.Tick(0)
	s.Tick(0)
	assert.True(t, s.Won())
	assert.Equal(t, 1, rec.count(event.GameWon))
}

// TestWinCondition_NotReachedWhileTargetsRemain verifies that removing some
// targets does not end the game
func TestWinCondition_NotReachedWhileTargetsRemain(t *testing.T) {
	s, rec := newTestSession(t, nil)
	tracker := &sessionTracker{s: s}

	s.mu.Lock()
	tracker.Destroy(s.targets[0], collision.ReasonImpact)
	s.mu.Unlock()

	s.Tick(0)
	require.Len(t, s.Targets(), 2)
	assert.False(t, s.Won())
	assert.Equal(t, 0, rec.count(event.GameWon))
}
