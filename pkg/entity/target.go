package entity

import (
	"fmt"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// TargetConfig holds the physical parameters of a target
type TargetConfig struct {
	Mass       float64 `yaml:"mass"`
	Radius     float64 `yaml:"radius"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

// DefaultTargetConfig returns the stock target parameters
func DefaultTargetConfig() TargetConfig {
	return TargetConfig{Mass: 2, Radius: 12, Elasticity: 0.8, Friction: 0.4}
}

func (c TargetConfig) bodySpec(pos geometry.Point2D) physics.BodySpec {
	return physics.BodySpec{
		Shape:      physics.ShapeCircle,
		Position:   pos,
		Mass:       c.Mass,
		Radius:     c.Radius,
		Elasticity: c.Elasticity,
		Friction:   c.Friction,
		Layer:      physics.LayerTarget,
	}
}

// Validate reports why the parameters cannot produce a target
func (c TargetConfig) Validate() error {
	return c.bodySpec(geometry.Point2D{}).Validate()
}

// Target is what the player has to eliminate
type Target struct {
	BaseEntity
	Config TargetConfig
}

// NewTarget creates a target body at pos
func NewTarget(world *physics.World, cfg TargetConfig, pos geometry.Point2D) (*Target, error) {
	h, err := world.AddBody(cfg.bodySpec(pos))
	if err != nil {
		return nil, fmt.Errorf("spawning target: %w", err)
	}
	return &Target{BaseEntity: newBaseEntity(h, pos, 0), Config: cfg}, nil
}

// Kind implements Entity
func (t *Target) Kind() Kind {
	return KindTarget
}

// RenderState implements Entity
func (t *Target) RenderState() RenderState {
	return RenderState{
		ID:         t.ID,
		Kind:       KindTarget,
		Appearance: string(KindTarget),
		Position:   t.Position,
		Rotation:   t.Rotation,
		Width:      t.Config.Radius * 2,
		Height:     t.Config.Radius * 2,
		Radius:     t.Config.Radius,
	}
}
