// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// NullRenderer is a headless implementation of entity.Renderer that only
// logs what it would draw.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
	drawn  int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{
		logger: logger.With("component", "null_renderer"),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.drawn = 0
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "frame presented",
		"frame", d.frames,
		"entities", d.drawn,
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(state entity.RenderState) {
	d.render(state)
}

// RenderTarget implements entity.Renderer.
func (d *NullRenderer) RenderTarget(state entity.RenderState) {
	d.render(state)
}

// RenderStructure implements entity.Renderer.
func (d *NullRenderer) RenderStructure(state entity.RenderState) {
	d.render(state)
}

func (d *NullRenderer) render(state entity.RenderState) {
	d.drawn++
	d.logger.Debug(context.Background(), "render entity",
		"entity_id", string(state.ID),
		"kind", string(state.Kind),
		"appearance", state.Appearance,
		"x", state.Position.X,
		"y", state.Position.Y,
	)
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Drawn returns how many entities the current frame has drawn so far
func (d *NullRenderer) Drawn() int {
	return d.drawn
}
