package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
)

// chipmunkBackend binds the World to the Chipmunk2D port. Playfield units
// are used directly, with no scaling.
type chipmunkBackend struct {
	space   *cp.Space
	bodies  map[Handle]*cp.Body
	shapes  map[Handle]*cp.Shape
	pending []Contact
}

func newChipmunkBackend(gravity geometry.Point2D) *chipmunkBackend {
	b := &chipmunkBackend{
		space:  cp.NewSpace(),
		bodies: make(map[Handle]*cp.Body),
		shapes: make(map[Handle]*cp.Shape),
	}
	b.space.SetGravity(toCP(gravity))

	// One handler per unordered layer pair; every pair reports impulses.
	for i, a := range allLayers {
		for _, c := range allLayers[i:] {
			handler := b.space.NewCollisionHandler(cp.CollisionType(a), cp.CollisionType(c))
			handler.PostSolveFunc = b.postSolve
		}
	}
	return b
}

func (b *chipmunkBackend) Name() string {
	return EngineChipmunk
}

func (b *chipmunkBackend) postSolve(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	sa, sb := arb.Shapes()
	b.pending = append(b.pending, Contact{
		A:       shapeHandle(sa),
		B:       shapeHandle(sb),
		Impulse: arb.TotalImpulse().Length(),
	})
}

func shapeHandle(s *cp.Shape) Handle {
	if s == nil {
		return FloorHandle
	}
	if h, ok := s.UserData.(Handle); ok {
		return h
	}
	return FloorHandle
}

func (b *chipmunkBackend) AddFloor(a, c geometry.Point2D, friction float64) {
	floor := cp.NewSegment(b.space.StaticBody, toCP(a), toCP(c), 0)
	floor.SetFriction(friction)
	floor.SetCollisionType(cp.CollisionType(LayerFloor))
	floor.UserData = FloorHandle
	b.space.AddShape(floor)
}

func (b *chipmunkBackend) AddBody(h Handle, spec BodySpec) {
	var moment float64
	if spec.Shape == ShapeBox {
		moment = cp.MomentForBox(spec.Mass, spec.Width, spec.Height)
	} else {
		moment = cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{})
	}

	body := b.space.AddBody(cp.NewBody(spec.Mass, moment))
	body.SetPosition(toCP(spec.Position))
	body.SetAngle(spec.Angle)

	var shape *cp.Shape
	if spec.Shape == ShapeBox {
		shape = cp.NewBox(body, spec.Width, spec.Height, 0)
	} else {
		shape = cp.NewCircle(body, spec.Radius, cp.Vector{})
	}
	shape.SetElasticity(spec.Elasticity)
	shape.SetFriction(spec.Friction)
	shape.SetCollisionType(cp.CollisionType(spec.Layer))
	shape.UserData = h
	b.space.AddShape(shape)

	b.bodies[h] = body
	b.shapes[h] = shape
}

func (b *chipmunkBackend) RemoveBody(h Handle) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	if shape := b.shapes[h]; shape != nil {
		b.space.RemoveShape(shape)
	}
	b.space.RemoveBody(body)
	delete(b.bodies, h)
	delete(b.shapes, h)
	return true
}

func (b *chipmunkBackend) Transform(h Handle) (geometry.Point2D, float64, bool) {
	body, ok := b.bodies[h]
	if !ok {
		return geometry.Point2D{}, 0, false
	}
	return fromCP(body.Position()), body.Angle(), true
}

func (b *chipmunkBackend) SetTransform(h Handle, pos geometry.Point2D, angle float64) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	body.SetPosition(toCP(pos))
	body.SetAngle(angle)
	return true
}

func (b *chipmunkBackend) Velocity(h Handle) (geometry.Point2D, bool) {
	body, ok := b.bodies[h]
	if !ok {
		return geometry.Point2D{}, false
	}
	return fromCP(body.Velocity()), true
}

func (b *chipmunkBackend) SetVelocity(h Handle, v geometry.Point2D) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	body.SetVelocityVector(toCP(v))
	return true
}

func (b *chipmunkBackend) ApplyImpulse(h Handle, impulse geometry.Point2D) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	body.ApplyImpulseAtWorldPoint(toCP(impulse), body.Position())
	return true
}

func (b *chipmunkBackend) Step(dt float64) []Contact {
	b.pending = b.pending[:0]
	b.space.Step(dt)
	out := make([]Contact, len(b.pending))
	copy(out, b.pending)
	return out
}

func toCP(p geometry.Point2D) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func fromCP(v cp.Vector) geometry.Point2D {
	return geometry.Point2D{X: v.X, Y: v.Y}
}
