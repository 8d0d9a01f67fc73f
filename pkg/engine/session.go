// pkg/engine/session.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/opd-ai/go-slingshot/pkg/collision"
	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/event"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Status is the session outcome state
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Reasons reported with removal events
const (
	ReasonOutOfBounds = "out_of_bounds"
	ReasonSplit       = "split"
)

var (
	// ErrNotAiming is returned by a release that has no gesture in progress
	ErrNotAiming = errors.New("no launch gesture in progress")
	// ErrSessionClosed is returned by operations on a closed session
	ErrSessionClosed = errors.New("session closed")
)

// Session owns the physics world and every live entity of one game. All
// methods are safe to call from multiple goroutines, but frontends drive
// it from a single loop. Bus handlers run after the session lock is
// released.
type Session struct {
	ID string

	cfg      *config.GameConfig
	world    *physics.World
	resolver *collision.Resolver
	bus      *event.Bus
	logger   *logging.Logger
	ctx      context.Context

	mu          sync.Mutex
	projectiles []*entity.Projectile
	structure   []*entity.StructurePiece
	targets     []*entity.Target
	owners      map[physics.Handle]entity.Entity

	selected  entity.Variant
	aiming    bool
	dragStart geometry.Point2D
	dragEnd   geometry.Point2D
	status    Status
	ticks     uint64
	closed    bool

	pending []event.Event
}

// NewSession validates cfg, builds the world and resolver and spawns the
// configured scene. A nil logger or bus gets a no-op logger or a private
// bus.
func NewSession(cfg *config.GameConfig, logger *logging.Logger, bus *event.Bus) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}

	id := uuid.NewString()
	logger = logger.With("component", "session")

	world, err := physics.NewWorld(cfg.WorldConfig(), logger)
	if err != nil {
		return nil, logging.WrapError(err, "creating physics world")
	}
	resolver, err := collision.NewResolver(cfg.Collision.LowImpulse, cfg.Collision.KillImpulse)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       id,
		cfg:      cfg,
		world:    world,
		resolver: resolver,
		bus:      bus,
		logger:   logger,
		ctx:      logging.WithCorrelationID(context.Background(), id),
		owners:   make(map[physics.Handle]entity.Entity),
		selected: cfg.Launch.DefaultVariant,
		status:   StatusPlaying,
	}

	tracker := &sessionTracker{s: s}
	if err := world.OnContact(func(c physics.Contact) {
		s.resolver.Resolve(c, tracker)
	}); err != nil {
		return nil, err
	}

	if err := s.buildScene(); err != nil {
		return nil, err
	}

	s.logger.Info(s.ctx, "session started",
		"engine", world.Engine(),
		"targets", len(s.targets),
		"structure", len(s.structure),
	)
	return s, nil
}

// buildScene spawns columns, beams and targets from the configuration
func (s *Session) buildScene() error {
	scene := s.cfg.Scene
	pieces := []struct {
		shape entity.PieceShape
		at    []geometry.Point2D
	}{
		{entity.ShapeColumn, scene.Columns},
		{entity.ShapeBeam, scene.Beams},
	}
	for _, group := range pieces {
		for _, pos := range group.at {
			p, err := entity.NewStructurePiece(s.world, group.shape, s.cfg.Structure, pos)
			if err != nil {
				return err
			}
			s.structure = append(s.structure, p)
			s.owners[p.Handle()] = p
		}
	}

	for _, pos := range scene.Targets {
		t, err := entity.NewTarget(s.world, s.cfg.Target, pos)
		if err != nil {
			return err
		}
		s.targets = append(s.targets, t)
		s.owners[t.Handle()] = t
	}
	return nil
}

// sessionTracker exposes entity lookup and removal to the collision
// resolver. It runs with the session lock held.
type sessionTracker struct {
	s *Session
}

func (t *sessionTracker) Owner(h physics.Handle) (entity.Entity, bool) {
	e, ok := t.s.owners[h]
	return e, ok
}

func (t *sessionTracker) Destroy(e entity.Entity, reason string) {
	if t.s.removeEntity(e) {
		t.s.logger.Debug(t.s.ctx, "entity destroyed", "entity_id", e.GetID(), "kind", e.Kind(), "reason", reason)
		t.s.queue(event.NewEntityEvent(event.EntityDestroyed, t.s.ID, string(e.GetID()), string(e.Kind()), reason))
	}
}

// removeEntity drops e from the world, the index and its collection
func (s *Session) removeEntity(e entity.Entity) bool {
	h := e.Handle()
	if _, ok := s.owners[h]; !ok {
		return false
	}
	delete(s.owners, h)
	s.world.Remove(h)

	switch v := e.(type) {
	case *entity.Projectile:
		s.projectiles = removeFrom(s.projectiles, v)
	case *entity.Target:
		s.targets = removeFrom(s.targets, v)
	case *entity.StructurePiece:
		s.structure = removeFrom(s.structure, v)
	}
	return true
}

func removeFrom[T comparable](list []T, item T) []T {
	for i, v := range list {
		if v == item {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func (s *Session) addProjectile(p *entity.Projectile) {
	s.projectiles = append(s.projectiles, p)
	s.owners[p.Handle()] = p
}

func (s *Session) queue(e event.Event) {
	s.pending = append(s.pending, e)
}

// unlockAndPublish releases the lock and then delivers queued events
func (s *Session) unlockAndPublish() {
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, e := range events {
		s.bus.Publish(e)
	}
}

// OnLaunchGestureStart begins aiming when p lies within the activation
// radius of the anchor. Returns whether the gesture was accepted.
func (s *Session) OnLaunchGestureStart(p geometry.Point2D) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if geometry.Distance(p, s.cfg.Launch.Anchor) > s.cfg.Launch.ActivationRadius {
		return false
	}
	s.aiming = true
	s.dragStart = p
	s.dragEnd = p
	return true
}

// OnLaunchGestureDrag moves the drag endpoint, clamped to the max drag
// radius around the gesture start
func (s *Session) OnLaunchGestureDrag(p geometry.Point2D) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.aiming {
		return
	}
	s.dragEnd = geometry.ClampDragEndpoint(s.dragStart, p, s.cfg.Launch.MaxDrag)
}

// OnLaunchGestureRelease finishes aiming and spawns a projectile of the
// selected variant at the clamped release point
func (s *Session) OnLaunchGestureRelease(p geometry.Point2D) (*entity.Projectile, error) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if !s.aiming {
		return nil, ErrNotAiming
	}
	s.aiming = false
	s.dragEnd = geometry.ClampDragEndpoint(s.dragStart, p, s.cfg.Launch.MaxDrag)

	iv := geometry.DeriveImpulseVector(s.dragStart, s.dragEnd)
	vc, err := s.cfg.VariantConfig(s.selected)
	if err != nil {
		s.logger.Error(s.ctx, "launch rejected", err, "variant", s.selected)
		return nil, err
	}

	proj, err := entity.NewProjectile(s.world, iv, s.dragEnd, vc)
	if err != nil {
		s.logger.Error(s.ctx, "launch rejected", err, "variant", s.selected)
		return nil, err
	}
	s.addProjectile(proj)

	s.logger.Info(s.ctx, "projectile launched",
		"entity_id", proj.GetID(),
		"variant", proj.Variant,
		"magnitude", iv.Magnitude,
		"angle", geometry.RadiansToDegrees(iv.Angle),
	)
	s.queue(event.NewLaunchEvent(s.ID, string(proj.GetID()), string(proj.Variant), proj.InitialImpulse(), iv.Angle))
	return proj, nil
}

// OnAbilityTrigger activates the first projectile, in launch order, whose
// ability is unconsumed and whose speed exceeds the configured minimum.
// Returns whether an ability fired.
func (s *Session) OnAbilityTrigger() bool {
	s.mu.Lock()
	defer s.unlockAndPublish()

	if s.closed {
		return false
	}
	for _, p := range s.projectiles {
		if p.AbilityConsumed() || p.Speed(s.world) <= s.cfg.Launch.AbilityMinSpeed {
			continue
		}
		return s.activate(p)
	}
	return false
}

func (s *Session) activate(p *entity.Projectile) bool {
	act, err := p.Activate(s.world)
	if err != nil {
		s.logger.Error(s.ctx, "ability failed", err, "entity_id", p.GetID())
		return false
	}
	if !act.Fired {
		return false
	}

	s.logger.Info(s.ctx, "ability activated", "entity_id", p.GetID(), "ability", p.Ability)
	s.queue(event.NewEntityEvent(event.AbilityActivated, s.ID, string(p.GetID()), string(p.Ability), ""))

	if len(act.Fragments) > 0 {
		ids := make([]string, 0, len(act.Fragments))
		for _, f := range act.Fragments {
			s.addProjectile(f)
			ids = append(ids, string(f.GetID()))
		}
		s.queue(event.NewSplitEvent(s.ID, string(p.GetID()), ids))
	}
	if act.RemoveSelf {
		s.removeEntity(p)
	}
	return true
}

// OnVariantSelect changes the variant used by future launches
func (s *Session) OnVariantSelect(v entity.Variant) error {
	s.mu.Lock()
	defer s.unlockAndPublish()

	if _, err := s.cfg.VariantConfig(v); err != nil {
		return err
	}
	if s.selected == v {
		return nil
	}
	s.selected = v
	s.logger.Debug(s.ctx, "variant selected", "variant", v)
	s.queue(event.NewEntityEvent(event.VariantSelected, s.ID, "", string(v), ""))
	return nil
}

// Tick advances the session by one frame: step the world (dt <= 0 uses
// the configured fixed step), resolve contacts, sync entities, drop
// projectiles that left the playfield and latch the win.
func (s *Session) Tick(dt float64) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	if s.closed {
		return
	}

	s.world.Step(dt)
	s.ticks++

	s.syncAll()
	s.removeOutOfBounds()

	if s.status == StatusPlaying && len(s.targets) == 0 {
		s.status = StatusWon
		s.logger.Info(s.ctx, "game won", "tick", s.ticks, "projectiles_used", len(s.projectiles))
		s.queue(&event.BaseEvent{EventType: event.GameWon, Source: s.ID})
	}
}

func (s *Session) syncAll() {
	for _, p := range s.structure {
		p.Sync(s.world)
	}
	for _, t := range s.targets {
		t.Sync(s.world)
	}
	for _, p := range s.projectiles {
		p.Sync(s.world)
	}
}

func (s *Session) removeOutOfBounds() {
	bounds := s.cfg.Bounds
	var gone []*entity.Projectile
	for _, p := range s.projectiles {
		if p.Position.Y < bounds.MinY || p.Position.X > bounds.MaxX {
			gone = append(gone, p)
		}
	}
	for _, p := range gone {
		if s.removeEntity(p) {
			s.logger.Debug(s.ctx, "projectile left the playfield", "entity_id", p.GetID(), "x", p.Position.X, "y", p.Position.Y)
			s.queue(event.NewEntityEvent(event.ProjectileOutOfBounds, s.ID, string(p.GetID()), string(entity.KindProjectile), ReasonOutOfBounds))
		}
	}
}

// Status returns the session outcome state
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Won reports whether every target has been eliminated
func (s *Session) Won() bool {
	return s.Status() == StatusWon
}

// Selected returns the variant used by the next launch
func (s *Session) Selected() entity.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Aiming reports whether a launch gesture is in progress
func (s *Session) Aiming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiming
}

// Projectiles returns a copy of the live projectiles in launch order
func (s *Session) Projectiles() []*entity.Projectile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Projectile(nil), s.projectiles...)
}

// Targets returns a copy of the live targets
func (s *Session) Targets() []*entity.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Target(nil), s.targets...)
}

// Structure returns a copy of the live structure pieces
func (s *Session) Structure() []*entity.StructurePiece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.StructurePiece(nil), s.structure...)
}

// World exposes the physics world for inspection
func (s *Session) World() *physics.World {
	return s.world
}

// Config returns the configuration the session was built from
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}

// Bus returns the event bus the session publishes on
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// Close removes every body from the world. Later operations are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	for h := range s.owners {
		s.world.Remove(h)
	}
	s.owners = map[physics.Handle]entity.Entity{}
	s.projectiles, s.targets, s.structure = nil, nil, nil
	s.aiming = false
	s.closed = true
	s.logger.Info(s.ctx, "session closed", "ticks", s.ticks, "status", s.status)
	_ = s.logger.Sync()
}
