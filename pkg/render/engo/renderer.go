// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
)

// spriteSink is the part of common.RenderSystem the renderer feeds
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements entity.Renderer using the Engo game engine. It
// keeps one sprite per entity ID and drops sprites whose entity was not
// drawn in the last frame.
type EngoRenderer struct {
	sink    spriteSink
	camera  *Camera
	sprites map[entity.ID]*sprite

	anchor *sprite
	aim    *sprite
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(sink spriteSink, camera *Camera) *EngoRenderer {
	return &EngoRenderer{
		sink:    sink,
		camera:  camera,
		sprites: make(map[entity.ID]*sprite),
	}
}

// RenderProjectile implements entity.Renderer
func (r *EngoRenderer) RenderProjectile(state entity.RenderState) {
	r.draw(state)
}

// RenderTarget implements entity.Renderer
func (r *EngoRenderer) RenderTarget(state entity.RenderState) {
	r.draw(state)
}

// RenderStructure implements entity.Renderer
func (r *EngoRenderer) RenderStructure(state entity.RenderState) {
	r.draw(state)
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. The render system draws on its own;
// this only retires sprites of removed entities.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.sink.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// DrawSnapshot renders one frame of a session
func (r *EngoRenderer) DrawSnapshot(snap engine.Snapshot) {
	r.Clear()
	r.renderAnchor(snap.Anchor, snap.ActivationRadius)
	for _, s := range snap.Entities {
		entity.Draw(r, s)
	}
	r.renderAim(snap.DragStart, snap.DragEnd, snap.Aiming)
	r.Present()
}

// SpriteCount returns how many entity sprites are live
func (r *EngoRenderer) SpriteCount() int {
	return len(r.sprites)
}

func (r *EngoRenderer) draw(state entity.RenderState) {
	s, exists := r.sprites[state.ID]
	if !exists {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{Drawable: DrawableFor(state)}
		s.RenderComponent.SetZIndex(ZIndexFor(state.Kind))
		r.sprites[state.ID] = s
		r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.seen = true

	w, h := SizeFor(state)
	s.Width = r.camera.ScreenLength(w)
	s.Height = r.camera.ScreenLength(h)
	s.Rotation = ScreenRotation(state.Rotation)
	s.SetCenter(r.camera.WorldToScreen(state.Position))
	s.Color = ColorFor(state)
}

func (r *EngoRenderer) renderAnchor(center geometry.Point2D, radius float64) {
	if r.anchor == nil {
		r.anchor = &sprite{BasicEntity: ecs.NewBasic()}
		r.anchor.RenderComponent = common.RenderComponent{
			Drawable: common.Circle{BorderWidth: 2, BorderColor: outlineColor},
			Color:    color.Transparent,
		}
		r.anchor.RenderComponent.SetZIndex(zStructure)
		r.sink.Add(&r.anchor.BasicEntity, &r.anchor.RenderComponent, &r.anchor.SpaceComponent)
	}
	d := r.camera.ScreenLength(2 * radius)
	r.anchor.Width, r.anchor.Height = d, d
	r.anchor.SetCenter(r.camera.WorldToScreen(center))
}

// renderAim draws the rubber band as a thin box rotated about its start
func (r *EngoRenderer) renderAim(start, end geometry.Point2D, active bool) {
	if r.aim == nil {
		r.aim = &sprite{BasicEntity: ecs.NewBasic()}
		r.aim.RenderComponent = common.RenderComponent{
			Drawable: common.Rectangle{},
			Color:    outlineColor,
		}
		r.aim.RenderComponent.SetZIndex(zAim)
		r.sink.Add(&r.aim.BasicEntity, &r.aim.RenderComponent, &r.aim.SpaceComponent)
	}
	r.aim.Hidden = !active
	if !active {
		return
	}
	from := r.camera.WorldToScreen(start)
	to := r.camera.WorldToScreen(end)
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	r.aim.Position = from
	r.aim.Width = float32(math.Hypot(dx, dy))
	r.aim.Height = 3
	r.aim.Rotation = float32(geometry.RadiansToDegrees(math.Atan2(dy, dx)))
}

// AimHidden reports whether the rubber band is currently hidden
func (r *EngoRenderer) AimHidden() bool {
	return r.aim == nil || r.aim.Hidden
}
