// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

const fontURL = "slingshot/goregular.ttf"

// Z layers, back to front
const (
	zStructure  float32 = 1
	zTarget     float32 = 2
	zProjectile float32 = 3
	zAim        float32 = 4
	zHUD        float32 = 10
)

var outlineColor = color.RGBA{A: 255}

// AssetManager owns the HUD font. Entities are drawn from engo primitives
// so no textures are loaded.
type AssetManager struct {
	font *common.Font
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// LoadAssets registers the embedded Go font with engo and prepares it
func (am *AssetManager) LoadAssets() error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return err
	}
	font := &common.Font{
		URL:  fontURL,
		FG:   color.Black,
		Size: 16,
	}
	if err := font.CreatePreloaded(); err != nil {
		return err
	}
	am.font = font
	return nil
}

// Font returns the HUD font, or nil before LoadAssets succeeds
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// DrawableFor returns the primitive shape for an entity
func DrawableFor(state entity.RenderState) common.Drawable {
	if state.Radius > 0 {
		return common.Circle{BorderWidth: 1, BorderColor: outlineColor}
	}
	return common.Rectangle{BorderWidth: 1, BorderColor: outlineColor}
}

// SizeFor returns an entity's extent in playfield units
func SizeFor(state entity.RenderState) (width, height float64) {
	if state.Radius > 0 {
		return 2 * state.Radius, 2 * state.Radius
	}
	return state.Width, state.Height
}

// ZIndexFor keeps projectiles above targets above structure
func ZIndexFor(kind entity.Kind) float32 {
	switch kind {
	case entity.KindProjectile:
		return zProjectile
	case entity.KindTarget:
		return zTarget
	}
	return zStructure
}

// ColorFor returns the fill color of an entity
func ColorFor(state entity.RenderState) color.Color {
	return render.ColorFor(state)
}
