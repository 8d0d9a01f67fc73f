// pkg/entity/entity.go
package entity

import (
	"github.com/google/uuid"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// ID is a unique identifier for an entity
type ID string

// NewID returns a fresh random entity ID
func NewID() ID {
	return ID(uuid.NewString())
}

// Kind groups entities by gameplay role
type Kind string

const (
	KindProjectile Kind = "projectile"
	KindTarget     Kind = "target"
	KindStructure  Kind = "structure"
)

// Entity is the base interface for all game objects. Every entity owns
// exactly one physics handle.
type Entity interface {
	GetID() ID
	Handle() physics.Handle
	Kind() Kind
	Sync(world *physics.World)
	RenderState() RenderState
}

// RenderState is everything a frontend needs to draw an entity without
// textures
type RenderState struct {
	ID         ID
	Kind       Kind
	Appearance string // variant look for projectiles, piece shape for structure
	Position   geometry.Point2D
	Rotation   float64
	Width      float64
	Height     float64
	Radius     float64 // zero for boxes
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	handle   physics.Handle
	Position geometry.Point2D
	Rotation float64
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// Handle returns the physics handle owned by the entity
func (e *BaseEntity) Handle() physics.Handle {
	return e.handle
}

// Sync copies position and rotation back from the simulation. A body that
// is no longer in the world leaves the last known transform in place.
func (e *BaseEntity) Sync(world *physics.World) {
	pos, angle, ok := world.Transform(e.handle)
	if !ok {
		return
	}
	e.Position = pos
	e.Rotation = angle
}

func newBaseEntity(handle physics.Handle, pos geometry.Point2D, angle float64) BaseEntity {
	return BaseEntity{
		ID:       NewID(),
		handle:   handle,
		Position: pos,
		Rotation: angle,
	}
}
