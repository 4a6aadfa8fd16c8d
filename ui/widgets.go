package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/scene"
)

// SpeedWarning is the fraction of max speed above which the speed bar turns red.
const SpeedWarning = 0.8

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string, c rl.Color) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, c)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a [0, 1] fill bar after the label column.
func (r *Renderer) DrawBar(x, y int32, label string, value float64, width int32, fill rl.Color) int32 {
	value = min(max(value, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth

	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*value), r.Theme.BarHeight, fill)

	return y + r.Theme.LineHeight
}

// SpeedColor returns the speed bar fill for a speed fraction.
func (r *Renderer) SpeedColor(fraction float64) rl.Color {
	if fraction > SpeedWarning {
		return r.Theme.BarFillHigh
	}
	return r.Theme.BarFill
}

func sceneColor(c scene.Color, alpha float64) rl.Color {
	ch := func(v float64) uint8 { return uint8(min(max(v, 0), 1)*255 + 0.5) }
	return rl.Color{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(alpha)}
}
