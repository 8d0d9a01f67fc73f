// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// HUDLine is one line of HUD text
type HUDLine struct {
	Text  string
	Color color.Color
}

var (
	hudColor      = color.RGBA{A: 255}
	selectedColor = color.RGBA{R: 200, A: 255}
	wonColor      = color.RGBA{G: 110, A: 255}
)

// HUDLines builds the legend, hint and status text for a frame. The
// selected variant is highlighted and a banner is appended once the game
// is won.
func HUDLines(snap engine.Snapshot, legend []render.LegendEntry) []HUDLine {
	lines := make([]HUDLine, 0, len(legend)+3)
	for _, entry := range legend {
		c := color.Color(hudColor)
		if entry.Variant == snap.Selected {
			c = selectedColor
		}
		lines = append(lines, HUDLine{Text: entry.Label(), Color: c})
	}
	lines = append(lines,
		HUDLine{Text: render.AbilityHint, Color: hudColor},
		HUDLine{Text: fmt.Sprintf("Targets left: %d", snap.Targets), Color: hudColor},
	)
	if msg := render.StatusText(snap.Status == engine.StatusWon); msg != "" {
		lines = append(lines, HUDLine{Text: msg, Color: wonColor})
	}
	return lines
}

// HUDSystem manages the heads-up display
type HUDSystem struct {
	sink   spriteSink
	font   *common.Font
	legend []render.LegendEntry

	lines []*sprite
	last  []HUDLine

	origin     engo.Point
	lineHeight float32
}

// NewHUDSystem creates a HUD. Without a font the HUD tracks its lines but
// draws nothing.
func NewHUDSystem(sink spriteSink, font *common.Font, legend []render.LegendEntry) *HUDSystem {
	return &HUDSystem{
		sink:       sink,
		font:       font,
		legend:     legend,
		origin:     engo.Point{X: 10, Y: 10},
		lineHeight: 22,
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update satisfies the ecs.System interface; text changes arrive through
// Show
func (hud *HUDSystem) Update(dt float32) {}

// Show updates the HUD text for a snapshot
func (hud *HUDSystem) Show(snap engine.Snapshot) {
	lines := HUDLines(snap, hud.legend)
	hud.last = lines
	if hud.font == nil {
		return
	}

	for len(hud.lines) < len(lines) {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent.SetZIndex(zHUD)
		s.Position = engo.Point{X: hud.origin.X, Y: hud.origin.Y + float32(len(hud.lines))*hud.lineHeight}
		hud.lines = append(hud.lines, s)
		hud.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	for i, s := range hud.lines {
		if i >= len(lines) {
			s.Hidden = true
			continue
		}
		s.Hidden = false
		s.Drawable = common.Text{Font: hud.font, Text: lines[i].Text}
		s.Color = lines[i].Color
	}
}

// Lines returns the text shown by the last call to Show
func (hud *HUDSystem) Lines() []HUDLine {
	return hud.last
}
