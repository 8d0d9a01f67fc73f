// pkg/entity/projectile.go
package entity

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Projectile is a launched circular body. Its variant-specific behavior is
// selected by the Ability tag.
type Projectile struct {
	BaseEntity
	Variant    Variant
	Appearance Variant
	Ability    Ability
	Config     VariantConfig

	initialImpulse  float64
	abilityConsumed bool
}

// Activation describes what the caller has to do after Activate
type Activation struct {
	Fired      bool
	Fragments  []*Projectile
	RemoveSelf bool
}

func (c VariantConfig) bodySpec() physics.BodySpec {
	return physics.BodySpec{
		Shape:      physics.ShapeCircle,
		Mass:       c.Mass,
		Radius:     c.Radius,
		Elasticity: c.Elasticity,
		Friction:   c.Friction,
		Layer:      physics.LayerProjectile,
	}
}

// EffectiveImpulse clamps a raw gesture magnitude to [0, MaxImpulse] and
// scales it by the power multiplier
func (c VariantConfig) EffectiveImpulse(magnitude float64) float64 {
	return math.Min(math.Max(0, magnitude), c.MaxImpulse) * c.PowerMultiplier
}

// NewProjectile creates a projectile at position and applies the launch
// impulse once, at the body origin, along iv.Angle
func NewProjectile(world *physics.World, iv geometry.ImpulseVector, position geometry.Point2D, cfg VariantConfig) (*Projectile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spawning projectile: %w", err)
	}

	p, err := spawnProjectile(world, position, 0, cfg)
	if err != nil {
		return nil, err
	}

	p.initialImpulse = cfg.EffectiveImpulse(iv.Magnitude)
	world.ApplyImpulse(p.handle, geometry.FromAngle(iv.Angle, p.initialImpulse))
	return p, nil
}

func spawnProjectile(world *physics.World, position geometry.Point2D, angle float64, cfg VariantConfig) (*Projectile, error) {
	spec := cfg.bodySpec()
	spec.Position = position
	spec.Angle = angle

	h, err := world.AddBody(spec)
	if err != nil {
		return nil, fmt.Errorf("spawning projectile: %w", err)
	}

	return &Projectile{
		BaseEntity:      newBaseEntity(h, position, angle),
		Variant:         cfg.Variant,
		Appearance:      cfg.Variant,
		Ability:         cfg.Ability,
		Config:          cfg,
		abilityConsumed: cfg.Ability == AbilityNone,
	}, nil
}

// Kind implements Entity
func (p *Projectile) Kind() Kind {
	return KindProjectile
}

// InitialImpulse is the scaled launch impulse applied at spawn
func (p *Projectile) InitialImpulse() float64 {
	return p.initialImpulse
}

// AbilityConsumed reports whether the ability can no longer fire.
// Projectiles without an ability are consumed from spawn.
func (p *Projectile) AbilityConsumed() bool {
	return p.abilityConsumed
}

// Speed returns the current linear speed, zero when the body is gone
func (p *Projectile) Speed(world *physics.World) float64 {
	v, ok := world.Velocity(p.handle)
	if !ok {
		return 0
	}
	return v.Length()
}

// Activate fires the projectile's ability. It has an effect at most once;
// a consumed projectile returns an empty Activation.
func (p *Projectile) Activate(world *physics.World) (Activation, error) {
	if p.abilityConsumed {
		return Activation{}, nil
	}

	switch p.Ability {
	case AbilityBoost:
		return p.boost(world), nil
	case AbilitySplit:
		return p.split(world)
	default:
		return Activation{}, fmt.Errorf("%w: %q", ErrUnknownAbility, p.Ability)
	}
}

func (p *Projectile) boost(world *physics.World) Activation {
	extra := math.Max(0, p.Config.AbilityMultiplier-1) * p.initialImpulse

	angle := p.Rotation
	if _, a, ok := world.Transform(p.handle); ok {
		angle = a
	}
	world.ApplyImpulse(p.handle, geometry.FromAngle(angle, extra))

	p.abilityConsumed = true
	return Activation{Fired: true}
}

// split replaces the projectile with three fragments fanned around its
// heading. A projectile at rest keeps its ability.
func (p *Projectile) split(world *physics.World) (Activation, error) {
	v, ok := world.Velocity(p.handle)
	if !ok {
		return Activation{}, nil
	}
	speed := v.Length()
	if speed <= 0 {
		return Activation{}, nil
	}

	pos, _, _ := world.Transform(p.handle)
	heading := v.Angle()
	spread := geometry.DegreesToRadians(p.Config.SplitSpreadDegrees)
	fragCfg := p.Config.fragment()

	fragments := make([]*Projectile, 0, 3)
	for _, offset := range []float64{spread, 0, -spread} {
		angle := heading + offset
		f, err := spawnProjectile(world, pos, angle, fragCfg)
		if err != nil {
			for _, done := range fragments {
				world.Remove(done.handle)
			}
			return Activation{}, err
		}
		f.Appearance = p.Appearance
		world.SetVelocity(f.handle, geometry.FromAngle(angle, speed))
		fragments = append(fragments, f)
	}

	p.abilityConsumed = true
	return Activation{Fired: true, Fragments: fragments, RemoveSelf: true}, nil
}

// RenderState implements Entity
func (p *Projectile) RenderState() RenderState {
	return RenderState{
		ID:         p.ID,
		Kind:       KindProjectile,
		Appearance: string(p.Appearance),
		Position:   p.Position,
		Rotation:   p.Rotation,
		Width:      p.Config.Radius * 2,
		Height:     p.Config.Radius * 2,
		Radius:     p.Config.Radius,
	}
}
