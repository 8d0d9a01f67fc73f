package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)
	require.NoError(t, config.Validate())

	assert.Equal(t, 1200.0, config.Screen.Width)
	assert.Equal(t, 650.0, config.Screen.Height)
	assert.Equal(t, physics.EngineChipmunk, config.Physics.Engine)
	assert.Equal(t, 900.0, config.Physics.Gravity)
	assert.Equal(t, 15.0, config.Physics.FloorY)
	assert.Equal(t, 10.0, config.Physics.FloorFriction)
	assert.Equal(t, geometry.Point2D{X: 200, Y: 200}, config.Launch.Anchor)
	assert.Equal(t, 80.0, config.Launch.ActivationRadius)
	assert.Equal(t, 100.0, config.Launch.MaxDrag)
	assert.Equal(t, 100.0, config.Collision.LowImpulse)
	assert.Equal(t, 1200.0, config.Collision.KillImpulse)
	assert.Equal(t, -150.0, config.Bounds.MinY)
	assert.Equal(t, 1500.0, config.Bounds.MaxX)

	assert.Len(t, config.Scene.Columns, 5)
	assert.Len(t, config.Scene.Beams, 3)
	assert.Len(t, config.Scene.Targets, 3)
	assert.Equal(t, geometry.Point2D{X: 690, Y: 150}, config.Scene.Targets[2])

	assert.Equal(t, KeyBindings{Standard: "z", Split: "x", Boost: "c", Ability: "space"}, config.Keys)
}

func TestGameConfig_VariantConfig(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		variant entity.Variant
		ability entity.Ability
	}{
		{entity.VariantStandard, entity.AbilityNone},
		{entity.VariantSplit, entity.AbilitySplit},
		{entity.VariantBoost, entity.AbilityBoost},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			vc, err := config.VariantConfig(tt.variant)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, vc.Variant)
			assert.Equal(t, tt.ability, vc.Ability)
			assert.Equal(t, 5.0, vc.Mass)
			assert.Equal(t, 100.0, vc.MaxImpulse)
			assert.Equal(t, 50.0, vc.PowerMultiplier)
		})
	}

	_, err := config.VariantConfig("purple")
	assert.ErrorIs(t, err, entity.ErrUnknownVariant)
}

func TestGameConfig_WorldConfig(t *testing.T) {
	config := DefaultConfig()
	wc := config.WorldConfig()

	assert.Equal(t, config.Screen.Width, wc.FloorWidth)
	assert.Equal(t, config.Physics.Gravity, wc.Gravity)
	assert.Equal(t, config.Physics.Engine, wc.Engine)

	_, err := physics.NewWorld(wc, nil)
	assert.NoError(t, err)
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GameConfig)
	}{
		{"zero width", func(c *GameConfig) { c.Screen.Width = 0 }},
		{"unknown engine", func(c *GameConfig) { c.Physics.Engine = "ode" }},
		{"box2d without scale", func(c *GameConfig) {
			c.Physics.Engine = physics.EngineBox2D
			c.Physics.PixelsPerMeter = 0
		}},
		{"zero time step", func(c *GameConfig) { c.Physics.TimeStep = 0 }},
		{"zero activation radius", func(c *GameConfig) { c.Launch.ActivationRadius = 0 }},
		{"negative drag", func(c *GameConfig) { c.Launch.MaxDrag = -1 }},
		{"unknown default variant", func(c *GameConfig) { c.Launch.DefaultVariant = "green" }},
		{"variant with zero mass", func(c *GameConfig) { c.Variants.Boost.Mass = 0 }},
		{"variant with unknown ability", func(c *GameConfig) { c.Variants.Split.Ability = "warp" }},
		{"target with negative radius", func(c *GameConfig) { c.Target.Radius = -3 }},
		{"flat column", func(c *GameConfig) { c.Structure.Column.Height = 0 }},
		{"kill below low", func(c *GameConfig) { c.Collision.KillImpulse = 10 }},
		{"duplicate key", func(c *GameConfig) { c.Keys.Boost = "z" }},
		{"missing key", func(c *GameConfig) { c.Keys.Ability = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("box2d with scale", func(t *testing.T) {
		config := DefaultConfig()
		config.Physics.Engine = physics.EngineBox2D
		assert.NoError(t, config.Validate())
	})
}

func TestParseConfig_OverlaysDefaults(t *testing.T) {
	data := []byte(`
physics:
  engine: box2d
  gravity: 450
variants:
  boost:
    ability_multiplier: 3
collision:
  kill_impulse: 900
scene:
  targets:
    - {x: 700, y: 40}
keys:
  ability: b
`)
	config, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, physics.EngineBox2D, config.Physics.Engine)
	assert.Equal(t, 450.0, config.Physics.Gravity)
	assert.Equal(t, 15.0, config.Physics.FloorY)
	assert.Equal(t, 3.0, config.Variants.Boost.AbilityMultiplier)
	assert.Equal(t, 5.0, config.Variants.Boost.Mass)
	assert.Equal(t, entity.AbilityBoost, config.Variants.Boost.Ability)
	assert.Equal(t, 900.0, config.Collision.KillImpulse)
	assert.Equal(t, []geometry.Point2D{{X: 700, Y: 40}}, config.Scene.Targets)
	assert.Len(t, config.Scene.Columns, 5)
	assert.Equal(t, "b", config.Keys.Ability)
	assert.NoError(t, config.Validate())
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("physics:\n  engnie: box2d\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = ParseConfig([]byte("physics: [1, 2"))
	assert.Error(t, err)

	config, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slingshot.yaml")

	original := DefaultConfig()
	original.Physics.Gravity = 700
	original.Scene.Beams = original.Scene.Beams[:1]
	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 700.0, loaded.Physics.Gravity)
	assert.Len(t, loaded.Scene.Beams, 1)
	assert.Equal(t, original.Variants, loaded.Variants)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveConfig_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := SaveConfig(DefaultConfig(), filepath.Join(blocker, "nested.yaml"))
	assert.Error(t, err)
}
