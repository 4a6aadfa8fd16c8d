package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/radar"
)

// RadarPanel draws a radar frame in the bottom-right corner.
type RadarPanel struct {
	renderer *Renderer
	margin   int32
}

// NewRadarPanel creates a radar panel.
func NewRadarPanel() *RadarPanel {
	return &RadarPanel{renderer: NewRenderer(), margin: 10}
}

// Bounds returns the panel rectangle for a screen size.
func (p *RadarPanel) Bounds(f radar.Frame, screenW, screenH int32) rl.Rectangle {
	w, h := float32(f.Width), float32(f.Height)
	return rl.Rectangle{
		X:      float32(screenW-p.margin) - w,
		Y:      float32(screenH-p.margin) - h,
		Width:  w,
		Height: h,
	}
}

// Draw renders the frame.
func (p *RadarPanel) Draw(f radar.Frame, screenW, screenH int32) {
	r := p.renderer
	b := p.Bounds(f, screenW, screenH)
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	center := rl.Vector2{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
	at := func(x, y float64) rl.Vector2 {
		return rl.Vector2{X: center.X + float32(x), Y: center.Y + float32(y)}
	}

	// Range rings and crosshair.
	for _, frac := range []float32{0.25, 0.5} {
		rl.DrawCircleLinesV(center, b.Width*frac, rl.Fade(r.Theme.PanelBorder, 0.5))
	}
	rl.DrawLineV(rl.Vector2{X: b.X, Y: center.Y}, rl.Vector2{X: b.X + b.Width, Y: center.Y}, rl.Fade(r.Theme.PanelBorder, 0.3))
	rl.DrawLineV(rl.Vector2{X: center.X, Y: b.Y}, rl.Vector2{X: center.X, Y: b.Y + b.Height}, rl.Fade(r.Theme.PanelBorder, 0.3))

	for _, path := range f.Paths {
		c := sceneColor(radar.PathColor, 0.35)
		if path.Locked || path.Selected {
			c = sceneColor(radar.PathColor, 0.9)
		}
		for _, run := range path.Runs {
			for i := 1; i < len(run); i++ {
				rl.DrawLineV(at(run[i-1].X, run[i-1].Y), at(run[i].X, run[i].Y), c)
			}
		}
	}

	for _, blip := range f.Blips {
		pos := at(blip.Offset.X, blip.Offset.Y)
		switch blip.Kind {
		case radar.BlipLandmark:
			rl.DrawCircleV(pos, float32(blip.Size), sceneColor(blip.Color, 1))
			rl.DrawText(blip.Name, int32(pos.X)+5, int32(pos.Y)-5, 10, r.Theme.LabelColor)
		case radar.BlipCasualty:
			s := float32(blip.Size)
			c := sceneColor(blip.Color, 1)
			rl.DrawLineV(rl.Vector2{X: pos.X - s, Y: pos.Y - s}, rl.Vector2{X: pos.X + s, Y: pos.Y + s}, c)
			rl.DrawLineV(rl.Vector2{X: pos.X - s, Y: pos.Y + s}, rl.Vector2{X: pos.X + s, Y: pos.Y - s}, c)
		case radar.BlipShip:
			rl.DrawCircleV(pos, float32(blip.Size), sceneColor(blip.Color, 1))
			if blip.Locked {
				rl.DrawCircleLinesV(pos, float32(blip.Size)+3, r.Theme.Warning)
			}
		}
	}

	// Player marker points along the heading; radar +Y is world +Z.
	tip := at(math.Sin(f.Heading)*8, math.Cos(f.Heading)*8)
	rl.DrawLineV(center, tip, r.Theme.Accent)
	rl.DrawCircleV(center, 2, r.Theme.Accent)
}

// DrawLabels writes ship names at their projected screen positions.
func DrawLabels(labels []fleet.Label) {
	th := DefaultTheme()
	for _, l := range labels {
		c := th.LabelColor
		if l.Hovered || l.Selected {
			c = rl.White
		}
		x, y := int32(l.Screen.X), int32(l.Screen.Y)
		rl.DrawText(l.Name, x-rl.MeasureText(l.Name, 10)/2, y-12, 10, c)
		rl.DrawText(fmtSpeed(l.Speed), x-10, y, 10, rl.Fade(c, 0.7))
	}
}
