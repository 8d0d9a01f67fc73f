// Package physics adapts an external rigid-body engine to the game. The
// World owns the simulation space, hands out opaque Handles for the bodies
// it creates and delivers post-solve contacts once the engine step has
// returned, so contact handlers are free to remove bodies.
package physics

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// Engine names accepted by Config.Engine
const (
	EngineChipmunk = "chipmunk"
	EngineBox2D    = "box2d"
)

// DefaultTimeStep is the fixed simulation step (60 Hz)
const DefaultTimeStep = 1.0 / 60.0

var (
	// ErrInvalidBody is returned when a BodySpec cannot describe a real body
	ErrInvalidBody = errors.New("invalid body")
	// ErrUnknownEngine is returned for an unsupported Config.Engine value
	ErrUnknownEngine = errors.New("unknown physics engine")
	// ErrHandlerRegistered is returned when a second contact handler is registered
	ErrHandlerRegistered = errors.New("contact handler already registered")
)

// Handle identifies one body and its single shape inside a World
type Handle uint64

// FloorHandle is carried by the static floor shape; no entity owns it
const FloorHandle Handle = 0

// Layer tags a shape for the collision handler. All layers collide with
// each other; the tag only groups shapes.
type Layer int

const (
	LayerFloor Layer = iota
	LayerProjectile
	LayerTarget
	LayerStructure
)

var allLayers = []Layer{LayerFloor, LayerProjectile, LayerTarget, LayerStructure}

func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "floor"
	case LayerProjectile:
		return "projectile"
	case LayerTarget:
		return "target"
	case LayerStructure:
		return "structure"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// ShapeKind selects the collision geometry of a body
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// BodySpec describes a dynamic body with exactly one shape
type BodySpec struct {
	Shape      ShapeKind
	Position   geometry.Point2D
	Angle      float64
	Mass       float64
	Radius     float64 // circles
	Width      float64 // boxes
	Height     float64 // boxes
	Elasticity float64
	Friction   float64
	Layer      Layer
}

// Validate reports why the spec cannot be simulated, if it cannot
func (s BodySpec) Validate() error {
	if !(s.Mass > 0) || math.IsInf(s.Mass, 0) {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidBody, s.Mass)
	}
	switch s.Shape {
	case ShapeCircle:
		if !(s.Radius > 0) {
			return fmt.Errorf("%w: circle radius must be positive, got %v", ErrInvalidBody, s.Radius)
		}
	case ShapeBox:
		if !(s.Width > 0) || !(s.Height > 0) {
			return fmt.Errorf("%w: box size must be positive, got %vx%v", ErrInvalidBody, s.Width, s.Height)
		}
	default:
		return fmt.Errorf("%w: unknown shape kind %d", ErrInvalidBody, s.Shape)
	}
	if s.Elasticity < 0 || s.Friction < 0 {
		return fmt.Errorf("%w: elasticity and friction must not be negative", ErrInvalidBody)
	}
	return nil
}

// Moment returns the moment of inertia about the body origin
func (s BodySpec) Moment() float64 {
	if s.Shape == ShapeBox {
		return s.Mass * (s.Width*s.Width + s.Height*s.Height) / 12
	}
	return s.Mass * s.Radius * s.Radius / 2
}

// Contact is one post-solve collision report
type Contact struct {
	A       Handle
	B       Handle
	Impulse float64 // magnitude of the total impulse applied during the contact
}

// Involves reports whether h is one of the two colliding shapes
func (c Contact) Involves(h Handle) bool {
	return c.A == h || c.B == h
}

// Config contains the simulation parameters
type Config struct {
	Engine         string
	Gravity        float64 // downward acceleration, playfield units/s²
	FloorY         float64
	FloorWidth     float64
	FloorFriction  float64
	TimeStep       float64
	PixelsPerMeter float64 // box2d only
}

// Backend is an engine binding. Handles are allocated by the World; a
// backend only maps them to its own records and buffers post-solve
// contacts during Step.
type Backend interface {
	Name() string
	AddFloor(a, b geometry.Point2D, friction float64)
	AddBody(h Handle, spec BodySpec)
	RemoveBody(h Handle) bool
	Transform(h Handle) (geometry.Point2D, float64, bool)
	SetTransform(h Handle, pos geometry.Point2D, angle float64) bool
	Velocity(h Handle) (geometry.Point2D, bool)
	SetVelocity(h Handle, v geometry.Point2D) bool
	ApplyImpulse(h Handle, impulse geometry.Point2D) bool
	Step(dt float64) []Contact
}

// World is the simulation façade used by the rest of the game
type World struct {
	backend   Backend
	cfg       Config
	logger    *logging.Logger
	next      Handle
	live      map[Handle]Layer
	onContact func(Contact)
}

// NewWorld creates the simulation space, sets gravity and adds the floor
func NewWorld(cfg Config, logger *logging.Logger) (*World, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = DefaultTimeStep
	}

	gravity := geometry.Point2D{X: 0, Y: -cfg.Gravity}

	var backend Backend
	switch cfg.Engine {
	case "", EngineChipmunk:
		cfg.Engine = EngineChipmunk
		backend = newChipmunkBackend(gravity)
	case EngineBox2D:
		if cfg.PixelsPerMeter <= 0 {
			return nil, fmt.Errorf("%w: box2d needs a positive pixels-per-meter scale", ErrInvalidBody)
		}
		backend = newBox2DBackend(gravity, cfg.PixelsPerMeter)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}

	return newWorldWithBackend(cfg, backend, logger), nil
}

func newWorldWithBackend(cfg Config, backend Backend, logger *logging.Logger) *World {
	w := &World{
		backend: backend,
		cfg:     cfg,
		logger:  logger.With("component", "physics", "engine", backend.Name()),
		next:    FloorHandle,
		live:    make(map[Handle]Layer),
	}
	backend.AddFloor(
		geometry.Point2D{X: 0, Y: cfg.FloorY},
		geometry.Point2D{X: cfg.FloorWidth, Y: cfg.FloorY},
		cfg.FloorFriction,
	)
	return w
}

// Engine returns the name of the backing engine
func (w *World) Engine() string {
	return w.backend.Name()
}

// AddBody creates a body and its shape. Invalid specs are rejected before
// anything is added to the space.
func (w *World) AddBody(spec BodySpec) (Handle, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	w.next++
	h := w.next
	w.backend.AddBody(h, spec)
	w.live[h] = spec.Layer
	return h, nil
}

// Remove destroys the body and shape behind h. Removing a handle that is
// not in the space is a no-op reported by the false return value and a
// warning; it never fails the caller.
func (w *World) Remove(h Handle) bool {
	if _, ok := w.live[h]; !ok {
		w.logger.Warn(context.Background(), "remove of absent physics handle", "handle", uint64(h))
		return false
	}
	delete(w.live, h)
	if !w.backend.RemoveBody(h) {
		w.logger.Warn(context.Background(), "physics backend lost track of handle", "handle", uint64(h))
	}
	return true
}

// Contains reports whether h has a live body in the space
func (w *World) Contains(h Handle) bool {
	_, ok := w.live[h]
	return ok
}

// LayerOf returns the layer a live handle was created with
func (w *World) LayerOf(h Handle) (Layer, bool) {
	l, ok := w.live[h]
	return l, ok
}

// BodyCount returns the number of live bodies, the floor excluded
func (w *World) BodyCount() int {
	return len(w.live)
}

// Transform returns position and rotation of a live body
func (w *World) Transform(h Handle) (geometry.Point2D, float64, bool) {
	if !w.Contains(h) {
		return geometry.Point2D{}, 0, false
	}
	return w.backend.Transform(h)
}

// SetTransform teleports a live body
func (w *World) SetTransform(h Handle, pos geometry.Point2D, angle float64) bool {
	return w.Contains(h) && w.backend.SetTransform(h, pos, angle)
}

// Velocity returns the linear velocity of a live body
func (w *World) Velocity(h Handle) (geometry.Point2D, bool) {
	if !w.Contains(h) {
		return geometry.Point2D{}, false
	}
	return w.backend.Velocity(h)
}

// SetVelocity overrides the linear velocity of a live body
func (w *World) SetVelocity(h Handle, v geometry.Point2D) bool {
	return w.Contains(h) && w.backend.SetVelocity(h, v)
}

// ApplyImpulse applies a world-space impulse at the body origin
func (w *World) ApplyImpulse(h Handle, impulse geometry.Point2D) bool {
	return w.Contains(h) && w.backend.ApplyImpulse(h, impulse)
}

// OnContact registers the single post-solve contact callback
func (w *World) OnContact(fn func(Contact)) error {
	if w.onContact != nil {
		return ErrHandlerRegistered
	}
	w.onContact = fn
	return nil
}

// Step advances the simulation by dt (the fixed step when dt <= 0), then
// delivers the contacts buffered during the step. Returns the number of
// contacts delivered.
func (w *World) Step(dt float64) int {
	if dt <= 0 {
		dt = w.cfg.TimeStep
	}
	contacts := w.backend.Step(dt)

	if w.onContact == nil {
		return 0
	}
	for _, c := range contacts {
		w.onContact(c)
	}
	return len(contacts)
}

