package entity

import (
	"fmt"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// PieceShape selects the geometry of a structure piece
type PieceShape string

const (
	ShapeColumn PieceShape = "column"
	ShapeBeam   PieceShape = "beam"
)

// Extent is a box size in playfield units
type Extent struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PieceConfig holds the parameters shared by all structure pieces plus the
// size of each shape
type PieceConfig struct {
	Mass       float64 `yaml:"mass"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
	Column     Extent  `yaml:"column"`
	Beam       Extent  `yaml:"beam"`
}

// DefaultPieceConfig returns the stock structure parameters
func DefaultPieceConfig() PieceConfig {
	return PieceConfig{
		Mass:       2,
		Elasticity: 0.8,
		Friction:   1,
		Column:     Extent{Width: 22, Height: 70},
		Beam:       Extent{Width: 100, Height: 30},
	}
}

// ExtentOf returns the configured size for a shape
func (c PieceConfig) ExtentOf(shape PieceShape) (Extent, error) {
	switch shape {
	case ShapeColumn:
		return c.Column, nil
	case ShapeBeam:
		return c.Beam, nil
	default:
		return Extent{}, fmt.Errorf("%w: unknown structure shape %q", physics.ErrInvalidBody, shape)
	}
}

func (c PieceConfig) bodySpec(shape PieceShape, pos geometry.Point2D) (physics.BodySpec, error) {
	ext, err := c.ExtentOf(shape)
	if err != nil {
		return physics.BodySpec{}, err
	}
	return physics.BodySpec{
		Shape:      physics.ShapeBox,
		Position:   pos,
		Mass:       c.Mass,
		Width:      ext.Width,
		Height:     ext.Height,
		Elasticity: c.Elasticity,
		Friction:   c.Friction,
		Layer:      physics.LayerStructure,
	}, nil
}

// Validate checks both shapes
func (c PieceConfig) Validate() error {
	for _, shape := range []PieceShape{ShapeColumn, ShapeBeam} {
		spec, err := c.bodySpec(shape, geometry.Point2D{})
		if err != nil {
			return err
		}
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("%s: %w", shape, err)
		}
	}
	return nil
}

// StructurePiece is a passive box that shields the targets
type StructurePiece struct {
	BaseEntity
	Shape  PieceShape
	Extent Extent
}

// NewStructurePiece creates a column or beam body at pos
func NewStructurePiece(world *physics.World, shape PieceShape, cfg PieceConfig, pos geometry.Point2D) (*StructurePiece, error) {
	spec, err := cfg.bodySpec(shape, pos)
	if err != nil {
		return nil, fmt.Errorf("spawning structure piece: %w", err)
	}
	h, err := world.AddBody(spec)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", shape, err)
	}
	return &StructurePiece{
		BaseEntity: newBaseEntity(h, pos, 0),
		Shape:      shape,
		Extent:     Extent{Width: spec.Width, Height: spec.Height},
	}, nil
}

// Kind implements Entity
func (s *StructurePiece) Kind() Kind {
	return KindStructure
}

// RenderState implements Entity
func (s *StructurePiece) RenderState() RenderState {
	return RenderState{
		ID:         s.ID,
		Kind:       KindStructure,
		Appearance: string(s.Shape),
		Position:   s.Position,
		Rotation:   s.Rotation,
		Width:      s.Extent.Width,
		Height:     s.Extent.Height,
	}
}
