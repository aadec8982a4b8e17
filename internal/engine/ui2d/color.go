package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for UI theming.
var (
	// Panel theme (dark, blue accents)
	ColorPanelBg      = Color{0.12, 0.12, 0.12, 0.92}
	ColorPanelBorder  = Color{0.25, 0.25, 0.25, 1}
	ColorTitleBar     = Color{0.07, 0.07, 0.07, 1}
	ColorWidgetBg     = Color{0.2, 0.2, 0.2, 1}
	ColorWidgetHover  = Color{0.27, 0.27, 0.27, 1}
	ColorWidgetActive = Color{0.33, 0.33, 0.33, 1}
	ColorText         = Color{0.92, 0.92, 0.92, 1}
	ColorTextDim      = Color{0.6, 0.6, 0.6, 1}
	ColorHighlight    = Color{0.18, 0.66, 0.93, 1}
)

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
