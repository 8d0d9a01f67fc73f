package physics

import (
	"math"

	"github.com/ByteArena/box2d"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
)

const (
	box2dVelocityIterations = 8
	box2dPositionIterations = 3
)

// box2dBackend binds the World to the Box2D port. Box2D is tuned for
// meters, so playfield units are divided by ppm on the way in and
// multiplied back on the way out. Masses are not scaled.
type box2dBackend struct {
	world    *box2d.B2World
	ppm      float64
	bodies   map[Handle]*box2d.B2Body
	listener *box2dListener
}

// box2dListener implements box2d.B2ContactListenerInterface
type box2dListener struct {
	ppm     float64
	pending []Contact
}

func (l *box2dListener) BeginContact(contact box2d.B2ContactInterface) {}

func (l *box2dListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *box2dListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *box2dListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
	var normal, tangent float64
	for i := 0; i < impulse.Count; i++ {
		normal += impulse.NormalImpulses[i]
		tangent += impulse.TangentImpulses[i]
	}
	l.pending = append(l.pending, Contact{
		A:       fixtureHandle(contact.GetFixtureA()),
		B:       fixtureHandle(contact.GetFixtureB()),
		Impulse: math.Hypot(normal, tangent) * l.ppm,
	})
}

func fixtureHandle(f *box2d.B2Fixture) Handle {
	if f == nil {
		return FloorHandle
	}
	if h, ok := f.GetUserData().(Handle); ok {
		return h
	}
	return FloorHandle
}

func newBox2DBackend(gravity geometry.Point2D, ppm float64) *box2dBackend {
	world := box2d.MakeB2World(box2d.MakeB2Vec2(gravity.X/ppm, gravity.Y/ppm))
	listener := &box2dListener{ppm: ppm}
	world.SetContactListener(listener)

	return &box2dBackend{
		world:    &world,
		ppm:      ppm,
		bodies:   make(map[Handle]*box2d.B2Body),
		listener: listener,
	}
}

func (b *box2dBackend) Name() string {
	return EngineBox2D
}

func (b *box2dBackend) toB2(p geometry.Point2D) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(p.X/b.ppm, p.Y/b.ppm)
}

func (b *box2dBackend) fromB2(v box2d.B2Vec2) geometry.Point2D {
	return geometry.Point2D{X: v.X * b.ppm, Y: v.Y * b.ppm}
}

func (b *box2dBackend) AddFloor(a, c geometry.Point2D, friction float64) {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_staticBody
	body := b.world.CreateBody(&bodydef)

	vertices := []box2d.B2Vec2{b.toB2(a), b.toB2(c)}
	shape := box2d.MakeB2ChainShape()
	shape.CreateChain(vertices, len(vertices))

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Friction = friction
	fixturedef.UserData = FloorHandle
	body.CreateFixtureFromDef(&fixturedef)
}

// AddBody derives the fixture density from the requested mass so Box2D
// computes the same mass and moment as the Chipmunk backend.
func (b *box2dBackend) AddBody(h Handle, spec BodySpec) {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_dynamicBody
	bodydef.Position = b.toB2(spec.Position)
	bodydef.Angle = spec.Angle
	body := b.world.CreateBody(&bodydef)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Friction = spec.Friction
	fixturedef.Restitution = spec.Elasticity
	fixturedef.UserData = h

	if spec.Shape == ShapeBox {
		hw, hh := spec.Width/2/b.ppm, spec.Height/2/b.ppm
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(hw, hh)
		fixturedef.Shape = &shape
		fixturedef.Density = spec.Mass / (4 * hw * hh)
	} else {
		r := spec.Radius / b.ppm
		shape := box2d.MakeB2CircleShape()
		shape.SetRadius(r)
		fixturedef.Shape = &shape
		fixturedef.Density = spec.Mass / (math.Pi * r * r)
	}
	body.CreateFixtureFromDef(&fixturedef)
	body.SetUserData(h)

	b.bodies[h] = body
}

func (b *box2dBackend) RemoveBody(h Handle) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	b.world.DestroyBody(body)
	delete(b.bodies, h)
	return true
}

func (b *box2dBackend) Transform(h Handle) (geometry.Point2D, float64, bool) {
	body, ok := b.bodies[h]
	if !ok {
		return geometry.Point2D{}, 0, false
	}
	return b.fromB2(body.GetPosition()), body.GetAngle(), true
}

func (b *box2dBackend) SetTransform(h Handle, pos geometry.Point2D, angle float64) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	body.SetTransform(b.toB2(pos), angle)
	return true
}

func (b *box2dBackend) Velocity(h Handle) (geometry.Point2D, bool) {
	body, ok := b.bodies[h]
	if !ok {
		return geometry.Point2D{}, false
	}
	return b.fromB2(body.GetLinearVelocity()), true
}

func (b *box2dBackend) SetVelocity(h Handle, v geometry.Point2D) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	body.SetLinearVelocity(b.toB2(v))
	body.SetAwake(true)
	return true
}

func (b *box2dBackend) ApplyImpulse(h Handle, impulse geometry.Point2D) bool {
	body, ok := b.bodies[h]
	if !ok {
		return false
	}
	body.ApplyLinearImpulse(b.toB2(impulse), body.GetPosition(), true)
	return true
}

func (b *box2dBackend) Step(dt float64) []Contact {
	b.listener.pending = b.listener.pending[:0]
	b.world.Step(dt, box2dVelocityIterations, box2dPositionIterations)
	out := make([]Contact, len(b.listener.pending))
	copy(out, b.listener.pending)
	return out
}
