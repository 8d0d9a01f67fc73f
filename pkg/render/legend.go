package render

import (
	"image/color"
	"strings"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/entity"
)

// LegendEntry describes one selectable projectile variant for the HUD
type LegendEntry struct {
	Key     string
	Variant entity.Variant
	Name    string
	Color   color.RGBA
}

// Label is the single-line form used by text frontends
func (e LegendEntry) Label() string {
	return "[" + strings.ToUpper(e.Key) + "] " + e.Name
}

var (
	colorRed    = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	colorBlue   = color.RGBA{R: 60, G: 110, B: 230, A: 255}
	colorYellow = color.RGBA{R: 240, G: 210, B: 40, A: 255}
	colorGreen  = color.RGBA{R: 90, G: 200, B: 70, A: 255}
	colorWood   = color.RGBA{R: 150, G: 100, B: 50, A: 255}
	colorBlack  = color.RGBA{A: 255}
	colorWhite  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorGray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Legend lists the variants in selection order with their bound keys
func Legend(keys config.KeyBindings) []LegendEntry {
	return []LegendEntry{
		{Key: keys.Standard, Variant: entity.VariantStandard, Name: "Red", Color: colorRed},
		{Key: keys.Split, Variant: entity.VariantSplit, Name: "Blue", Color: colorBlue},
		{Key: keys.Boost, Variant: entity.VariantBoost, Name: "Yellow", Color: colorYellow},
	}
}

// VariantColor returns the draw color of a projectile appearance
func VariantColor(v entity.Variant) color.RGBA {
	switch v {
	case entity.VariantStandard:
		return colorRed
	case entity.VariantSplit:
		return colorBlue
	case entity.VariantBoost:
		return colorYellow
	}
	return colorGray
}

// ColorFor picks the draw color for an entity
func ColorFor(state entity.RenderState) color.RGBA {
	switch state.Kind {
	case entity.KindProjectile:
		return VariantColor(entity.Variant(state.Appearance))
	case entity.KindTarget:
		return colorGreen
	case entity.KindStructure:
		return colorWood
	}
	return colorGray
}

// StatusText is the banner shown once every target is gone
func StatusText(won bool) string {
	if won {
		return "YOU WON! Every target was destroyed."
	}
	return ""
}

// AbilityHint is shown next to the launch anchor
const AbilityHint = "Right click or space to activate the ability."
