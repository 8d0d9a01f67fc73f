// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/geometry"
)

// Camera maps the y-up playfield onto engo's y-down canvas. The whole
// playfield is always visible; zoom scales it to the window.
type Camera struct {
	worldWidth  float64
	worldHeight float64

	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewCamera creates a camera for a playfield of the given size
func NewCamera(worldWidth, worldHeight float64) *Camera {
	return &Camera{
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		zoom:        1.0,
		minZoom:     0.1,
		maxZoom:     3.0,
	}
}

// FitTo picks the largest zoom that shows the whole playfield on a canvas
func (c *Camera) FitTo(canvasWidth, canvasHeight float32) {
	zx := canvasWidth / float32(c.worldWidth)
	zy := canvasHeight / float32(c.worldHeight)
	c.SetZoom(float32(math.Min(float64(zx), float64(zy))))
}

// SetZoom sets the camera zoom level
func (c *Camera) SetZoom(zoom float32) {
	c.zoom = c.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (c *Camera) GetZoom() float32 {
	return c.zoom
}

func (c *Camera) clampZoom(zoom float32) float32 {
	if zoom < c.minZoom {
		return c.minZoom
	}
	if zoom > c.maxZoom {
		return c.maxZoom
	}
	return zoom
}

// WorldToScreen converts playfield coordinates to canvas coordinates
func (c *Camera) WorldToScreen(p geometry.Point2D) engo.Point {
	return engo.Point{
		X: float32(p.X) * c.zoom,
		Y: float32(c.worldHeight-p.Y) * c.zoom,
	}
}

// ScreenToWorld converts canvas coordinates to playfield coordinates
func (c *Camera) ScreenToWorld(p engo.Point) geometry.Point2D {
	return geometry.Point2D{
		X: float64(p.X / c.zoom),
		Y: c.worldHeight - float64(p.Y/c.zoom),
	}
}

// ScreenLength scales a playfield distance to the canvas
func (c *Camera) ScreenLength(d float64) float32 {
	return float32(d) * c.zoom
}

// ScreenRotation converts a counter-clockwise angle in radians to engo's
// clockwise degrees
func ScreenRotation(angle float64) float32 {
	return float32(-geometry.RadiansToDegrees(angle))
}
