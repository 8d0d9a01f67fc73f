package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
)

// Viewport maps the y-up playfield onto a grid of terminal cells with the
// origin at the top-left
type Viewport struct {
	WorldWidth  float64
	WorldHeight float64
	Cols        int
	Rows        int
}

func (v Viewport) cellWidth() float64  { return v.WorldWidth / float64(v.Cols) }
func (v Viewport) cellHeight() float64 { return v.WorldHeight / float64(v.Rows) }

// WorldToCell converts playfield coordinates to a cell. The result may lie
// outside the grid.
func (v Viewport) WorldToCell(p geometry.Point2D) (int, int) {
	x := int(math.Floor(p.X / v.cellWidth()))
	y := v.Rows - 1 - int(math.Floor(p.Y/v.cellHeight()))
	return x, y
}

// CellToWorld returns the playfield coordinates of a cell's center
func (v Viewport) CellToWorld(x, y int) geometry.Point2D {
	return geometry.Point2D{
		X: (float64(x) + 0.5) * v.cellWidth(),
		Y: (float64(v.Rows-1-y) + 0.5) * v.cellHeight(),
	}
}

// Contains reports whether a cell lies on the grid
func (v Viewport) Contains(x, y int) bool {
	return x >= 0 && x < v.Cols && y >= 0 && y < v.Rows
}

// TerminalRenderer draws entities onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	view   Viewport
	legend []LegendEntry
}

// NewTerminalRenderer creates a renderer covering the whole screen
func NewTerminalRenderer(screen tcell.Screen, worldWidth, worldHeight float64, legend []LegendEntry) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		legend: legend,
		view:   Viewport{WorldWidth: worldWidth, WorldHeight: worldHeight},
	}
	r.Resize()
	return r
}

// Resize adopts the current screen size
func (r *TerminalRenderer) Resize() {
	cols, rows := r.screen.Size()
	r.view.Cols = max(cols, 1)
	r.view.Rows = max(rows, 1)
}

// Viewport returns the active mapping
func (r *TerminalRenderer) Viewport() Viewport {
	return r.view
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
	ground := styleOf(colorWood)
	for x := 0; x < r.view.Cols; x++ {
		r.screen.SetContent(x, r.view.Rows-1, '=', nil, ground)
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderProjectile implements entity.Renderer
func (r *TerminalRenderer) RenderProjectile(state entity.RenderState) {
	r.fillCircle(state, 'o')
}

// RenderTarget implements entity.Renderer
func (r *TerminalRenderer) RenderTarget(state entity.RenderState) {
	r.fillCircle(state, '@')
}

// RenderStructure implements entity.Renderer
func (r *TerminalRenderer) RenderStructure(state entity.RenderState) {
	glyph := '#'
	if state.Appearance == string(entity.ShapeBeam) {
		glyph = '='
	}
	r.fillBox(state, glyph)
}

// DrawFrame renders a whole snapshot including the HUD
func (r *TerminalRenderer) DrawFrame(snap engine.Snapshot) {
	r.Clear()
	r.drawAnchor(snap)
	for _, s := range snap.Entities {
		entity.Draw(r, s)
	}
	if snap.Aiming {
		r.drawLine(snap.DragStart, snap.DragEnd, '.', styleOf(colorBlack))
	}
	r.drawHUD(snap)
	r.Present()
}

func (r *TerminalRenderer) fillCircle(state entity.RenderState, glyph rune) {
	style := styleOf(ColorFor(state))
	cx, cy := r.view.WorldToCell(state.Position)
	r.set(cx, cy, glyph, style)

	spanX := int(math.Ceil(state.Radius/r.view.cellWidth())) + 1
	spanY := int(math.Ceil(state.Radius/r.view.cellHeight())) + 1
	for y := cy - spanY; y <= cy+spanY; y++ {
		for x := cx - spanX; x <= cx+spanX; x++ {
			if r.view.CellToWorld(x, y).Distance(state.Position) <= state.Radius {
				r.set(x, y, glyph, style)
			}
		}
	}
}

// fillBox marks every cell whose center lies inside the rotated box
func (r *TerminalRenderer) fillBox(state entity.RenderState, glyph rune) {
	style := styleOf(ColorFor(state))
	cx, cy := r.view.WorldToCell(state.Position)
	r.set(cx, cy, glyph, style)

	hw, hh := state.Width/2, state.Height/2
	reach := math.Hypot(hw, hh)
	spanX := int(math.Ceil(reach/r.view.cellWidth())) + 1
	spanY := int(math.Ceil(reach/r.view.cellHeight())) + 1
	for y := cy - spanY; y <= cy+spanY; y++ {
		for x := cx - spanX; x <= cx+spanX; x++ {
			local := r.view.CellToWorld(x, y).Sub(state.Position).Rotate(-state.Rotation)
			if math.Abs(local.X) <= hw && math.Abs(local.Y) <= hh {
				r.set(x, y, glyph, style)
			}
		}
	}
}

func (r *TerminalRenderer) drawLine(from, to geometry.Point2D, glyph rune, style tcell.Style) {
	step := math.Min(r.view.cellWidth(), r.view.cellHeight()) / 2
	n := int(from.Distance(to)/step) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x, y := r.view.WorldToCell(from.Add(to.Sub(from).Scale(t)))
		r.set(x, y, glyph, style)
	}
}

func (r *TerminalRenderer) drawAnchor(snap engine.Snapshot) {
	style := styleOf(colorGray)
	segments := 32
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		p := snap.Anchor.Add(geometry.FromAngle(angle, snap.ActivationRadius))
		x, y := r.view.WorldToCell(p)
		r.set(x, y, '·', style)
	}
	x, y := r.view.WorldToCell(snap.Anchor)
	r.set(x, y, 'Y', styleOf(colorWood))
}

func (r *TerminalRenderer) drawHUD(snap engine.Snapshot) {
	text := styleOf(colorBlack)
	for i, entry := range r.legend {
		style := text
		if entry.Variant == snap.Selected {
			style = style.Reverse(true)
		}
		r.drawText(1, 1+i, entry.Label(), style)
		r.set(0, 1+i, 'o', styleOf(entry.Color))
	}
	r.drawText(1, len(r.legend)+2, AbilityHint, styleOf(colorGray))

	if msg := StatusText(snap.Status == engine.StatusWon); msg != "" {
		x := (r.view.Cols - len([]rune(msg))) / 2
		r.drawText(max(x, 0), r.view.Rows/2, msg, styleOf(colorGreen).Bold(true))
	}
}

func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.set(x, y, ch, style)
		x++
	}
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if r.view.Contains(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func styleOf(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
