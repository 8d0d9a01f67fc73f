package engine

import (
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
)

// Snapshot is a consistent, copy-only view of a session for frontends
type Snapshot struct {
	SessionID string
	Tick      uint64
	Status    Status
	Selected  entity.Variant

	Anchor           geometry.Point2D
	ActivationRadius float64
	Aiming           bool
	DragStart        geometry.Point2D
	DragEnd          geometry.Point2D

	// Entities are ordered structure, targets, projectiles so projectiles
	// draw on top
	Entities []entity.RenderState

	Projectiles int
	Targets     int
	Structure   int
}

// Snapshot captures the current state for rendering
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:        s.ID,
		Tick:             s.ticks,
		Status:           s.status,
		Selected:         s.selected,
		Anchor:           s.cfg.Launch.Anchor,
		ActivationRadius: s.cfg.Launch.ActivationRadius,
		Aiming:           s.aiming,
		DragStart:        s.dragStart,
		DragEnd:          s.dragEnd,
		Projectiles:      len(s.projectiles),
		Targets:          len(s.targets),
		Structure:        len(s.structure),
	}

	snap.Entities = make([]entity.RenderState, 0, snap.Projectiles+snap.Targets+snap.Structure)
	for _, p := range s.structure {
		snap.Entities = append(snap.Entities, p.RenderState())
	}
	for _, t := range s.targets {
		snap.Entities = append(snap.Entities, t.RenderState())
	}
	for _, p := range s.projectiles {
		snap.Entities = append(snap.Entities, p.RenderState())
	}
	return snap
}

// Draw renders the snapshot's entities through r as one frame
func (snap Snapshot) Draw(r entity.Renderer) {
	entity.DrawFrame(r, snap.Entities)
}
