// pkg/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for a slingshot session
type GameConfig struct {
	Screen    ScreenConfig        `yaml:"screen"`
	Physics   PhysicsConfig       `yaml:"physics"`
	Launch    LaunchConfig        `yaml:"launch"`
	Variants  VariantsConfig      `yaml:"variants"`
	Target    entity.TargetConfig `yaml:"target"`
	Structure entity.PieceConfig  `yaml:"structure"`
	Collision CollisionConfig     `yaml:"collision"`
	Bounds    BoundsConfig        `yaml:"bounds"`
	Scene     SceneConfig         `yaml:"scene"`
	Keys      KeyBindings         `yaml:"keys"`
	Sound     bool                `yaml:"sound"`
	LogLevel  string              `yaml:"log_level"`
}

// ScreenConfig is the playfield size in playfield units
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Engine         string  `yaml:"engine"`
	Gravity        float64 `yaml:"gravity"`
	FloorY         float64 `yaml:"floor_y"`
	FloorFriction  float64 `yaml:"floor_friction"`
	TimeStep       float64 `yaml:"time_step"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
}

// LaunchConfig describes the sling
type LaunchConfig struct {
	Anchor           geometry.Point2D `yaml:"anchor"`
	ActivationRadius float64          `yaml:"activation_radius"`
	MaxDrag          float64          `yaml:"max_drag"`
	AbilityMinSpeed  float64          `yaml:"ability_min_speed"`
	DefaultVariant   entity.Variant   `yaml:"default_variant"`
}

// VariantsConfig holds one entry per built-in projectile variant
type VariantsConfig struct {
	Standard entity.VariantConfig `yaml:"standard"`
	Split    entity.VariantConfig `yaml:"split"`
	Boost    entity.VariantConfig `yaml:"boost"`
}

// CollisionConfig contains the destruction thresholds
type CollisionConfig struct {
	LowImpulse  float64 `yaml:"low_impulse"`
	KillImpulse float64 `yaml:"kill_impulse"`
}

// BoundsConfig is the region outside which projectiles are removed
type BoundsConfig struct {
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
}

// SceneConfig is the initial layout
type SceneConfig struct {
	Columns []geometry.Point2D `yaml:"columns"`
	Beams   []geometry.Point2D `yaml:"beams"`
	Targets []geometry.Point2D `yaml:"targets"`
}

// KeyBindings maps keys to actions. Values are key names as the frontends
// report them ("z", "space", ...).
type KeyBindings struct {
	Standard string `yaml:"standard"`
	Split    string `yaml:"split"`
	Boost    string `yaml:"boost"`
	Ability  string `yaml:"ability"`
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	const width, height = 1200.0, 650.0
	w2 := width / 2

	return &GameConfig{
		Screen: ScreenConfig{Width: width, Height: height},
		Physics: PhysicsConfig{
			Engine:         physics.EngineChipmunk,
			Gravity:        900,
			FloorY:         15,
			FloorFriction:  10,
			TimeStep:       physics.DefaultTimeStep,
			PixelsPerMeter: 50,
		},
		Launch: LaunchConfig{
			Anchor:           geometry.Point2D{X: 200, Y: 200},
			ActivationRadius: 80,
			MaxDrag:          100,
			AbilityMinSpeed:  1,
			DefaultVariant:   entity.VariantStandard,
		},
		Variants: VariantsConfig{
			Standard: entity.DefaultVariantConfig(entity.VariantStandard),
			Split:    entity.DefaultVariantConfig(entity.VariantSplit),
			Boost:    entity.DefaultVariantConfig(entity.VariantBoost),
		},
		Target:    entity.DefaultTargetConfig(),
		Structure: entity.DefaultPieceConfig(),
		Collision: CollisionConfig{LowImpulse: 100, KillImpulse: 1200},
		Bounds:    BoundsConfig{MinY: -150, MaxX: 1500},
		Scene: SceneConfig{
			Columns: []geometry.Point2D{
				{X: w2 + 40, Y: 150},
				{X: w2 + 117, Y: 150},
				{X: w2, Y: 50},
				{X: w2 + 77, Y: 50},
				{X: w2 + 154, Y: 50},
			},
			Beams: []geometry.Point2D{
				{X: w2 + 79, Y: 200},
				{X: w2 + 35, Y: 100},
				{X: w2 + 120, Y: 100},
			},
			Targets: []geometry.Point2D{
				{X: w2 + 50, Y: 50},
				{X: w2 + 125, Y: 50},
				{X: w2 + 90, Y: 150},
			},
		},
		Keys: KeyBindings{
			Standard: "z",
			Split:    "x",
			Boost:    "c",
			Ability:  "space",
		},
		Sound:    true,
		LogLevel: "INFO",
	}
}

// LoadConfig loads a YAML configuration file on top of the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of the defaults
func ParseConfig(data []byte) (*GameConfig, error) {
	config := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// VariantConfig returns the parameters of a variant with its name filled in
func (c *GameConfig) VariantConfig(v entity.Variant) (entity.VariantConfig, error) {
	var vc entity.VariantConfig
	switch v {
	case entity.VariantStandard:
		vc = c.Variants.Standard
	case entity.VariantSplit:
		vc = c.Variants.Split
	case entity.VariantBoost:
		vc = c.Variants.Boost
	default:
		return entity.VariantConfig{}, fmt.Errorf("%w: %q", entity.ErrUnknownVariant, v)
	}
	vc.Variant = v
	return vc, nil
}

// WorldConfig returns the physics world parameters. The floor spans the
// screen width.
func (c *GameConfig) WorldConfig() physics.Config {
	return physics.Config{
		Engine:         c.Physics.Engine,
		Gravity:        c.Physics.Gravity,
		FloorY:         c.Physics.FloorY,
		FloorWidth:     c.Screen.Width,
		FloorFriction:  c.Physics.FloorFriction,
		TimeStep:       c.Physics.TimeStep,
		PixelsPerMeter: c.Physics.PixelsPerMeter,
	}
}

// Validate reports the first invalid field
func (c *GameConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return invalid("screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}

	switch c.Physics.Engine {
	case physics.EngineChipmunk:
	case physics.EngineBox2D:
		if c.Physics.PixelsPerMeter <= 0 {
			return invalid("physics.pixels_per_meter must be positive for box2d")
		}
	default:
		return invalid("physics.engine %q is not one of %s, %s", c.Physics.Engine, physics.EngineChipmunk, physics.EngineBox2D)
	}
	if c.Physics.TimeStep <= 0 {
		return invalid("physics.time_step must be positive, got %v", c.Physics.TimeStep)
	}

	if c.Launch.ActivationRadius <= 0 {
		return invalid("launch.activation_radius must be positive, got %v", c.Launch.ActivationRadius)
	}
	if c.Launch.MaxDrag <= 0 {
		return invalid("launch.max_drag must be positive, got %v", c.Launch.MaxDrag)
	}
	if c.Launch.AbilityMinSpeed < 0 {
		return invalid("launch.ability_min_speed must not be negative, got %v", c.Launch.AbilityMinSpeed)
	}
	if _, err := entity.ParseVariant(string(c.Launch.DefaultVariant)); err != nil {
		return invalid("launch.default_variant: %v", err)
	}

	for _, v := range entity.Variants {
		vc, _ := c.VariantConfig(v)
		if err := vc.Validate(); err != nil {
			return invalid("variants.%s: %v", v, err)
		}
	}
	if err := c.Target.Validate(); err != nil {
		return invalid("target: %v", err)
	}
	if err := c.Structure.Validate(); err != nil {
		return invalid("structure: %v", err)
	}

	if c.Collision.LowImpulse < 0 || c.Collision.KillImpulse < c.Collision.LowImpulse {
		return invalid("collision thresholds must satisfy 0 <= low <= kill, got %v/%v",
			c.Collision.LowImpulse, c.Collision.KillImpulse)
	}

	if err := c.Keys.validate(); err != nil {
		return invalid("keys: %v", err)
	}
	return nil
}

func (k KeyBindings) validate() error {
	seen := map[string]string{}
	for action, key := range map[string]string{
		"standard": k.Standard,
		"split":    k.Split,
		"boost":    k.Boost,
		"ability":  k.Ability,
	} {
		if key == "" {
			return fmt.Errorf("%s has no key", action)
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("key %q bound to both %s and %s", key, other, action)
		}
		seen[key] = action
	}
	return nil
}
