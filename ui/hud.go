package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/game"
)

// Readout is the HUD text for one snapshot.
type Readout struct {
	Mode      string
	Speed     string
	PercentC  string
	Yaw       string
	Position  string
	Countdown string // empty when the fleet is not counting down
	Fleet     string
	Lock      string // empty without a lock
	Flags     string

	SpeedFraction float64
}

// NewReadout formats a snapshot for display.
func NewReadout(snap game.Snapshot) Readout {
	tel := snap.Flight
	r := Readout{
		Mode:          tel.Mode,
		Speed:         fmt.Sprintf("%.0f", tel.Speed),
		PercentC:      fmt.Sprintf("%.4f%% c", tel.PercentC),
		Yaw:           fmt.Sprintf("%03.0f deg", tel.YawDegrees),
		Position:      fmt.Sprintf("%.0f, %.0f, %.0f", tel.Position.X, tel.Position.Y, tel.Position.Z),
		Fleet:         snap.FleetStatus,
		SpeedFraction: tel.SpeedFraction,
	}
	if snap.CountingDown {
		r.Countdown = fmt.Sprintf("Maneuver in %.1fs", snap.Countdown)
	} else if snap.Maneuvering {
		r.Countdown = "Fleet maneuvering"
	}
	if tel.Locked {
		r.Lock = fmt.Sprintf("%s  %.0fu  ETA %s", snap.LockName, tel.LockDistance, FormatETA(tel.LockETA))
	}

	var flags []string
	if snap.Observer {
		flags = append(flags, "OBSERVER")
	}
	if snap.AutoAttack {
		flags = append(flags, "AUTO")
	}
	if snap.Autopilot {
		flags = append(flags, "AUTOPILOT")
	}
	if tel.Flicker {
		flags = append(flags, "FLICKER")
	}
	for i, f := range flags {
		if i > 0 {
			r.Flags += " | "
		}
		r.Flags += f
	}
	return r
}

// FormatETA renders seconds to impact; a stationary craft never arrives.
func FormatETA(sec float64) string {
	if math.IsInf(sec, 1) || math.IsNaN(sec) {
		return "--"
	}
	if sec >= 60 {
		return fmt.Sprintf("%dm%02ds", int(sec)/60, int(sec)%60)
	}
	return fmt.Sprintf("%.1fs", sec)
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Snapshot     game.Snapshot
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    280,
	}
}

// Draw renders the flight panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	ro := NewReadout(data.Snapshot)
	pad := r.Theme.Padding
	x, y := pad, pad

	lines := int32(7)
	if ro.Countdown != "" {
		lines++
	}
	if ro.Lock != "" {
		lines++
	}
	r.DrawPanel(x, y, h.width, lines*r.Theme.LineHeight+pad*3)

	cx, cy := x+pad, y+pad
	modeColor := r.Theme.Accent
	if data.Snapshot.Flight.Attack {
		modeColor = r.Theme.Warning
	}
	cy = r.DrawSectionHeader(cx, cy, ro.Mode, modeColor)
	cy = r.DrawBar(cx, cy, "SPEED", ro.SpeedFraction, h.width-pad*2, r.SpeedColor(ro.SpeedFraction))
	cy = r.DrawLabelValue(cx, cy, "VELOCITY", ro.Speed+"  "+ro.PercentC)
	cy = r.DrawLabelValue(cx, cy, "HEADING", ro.Yaw)
	cy = r.DrawLabelValue(cx, cy, "POSITION", ro.Position)
	if ro.Lock != "" {
		cy = r.DrawLabelValue(cx, cy, "LOCK", ro.Lock)
	}
	cy = r.DrawLabelValue(cx, cy, "FLEET", ro.Fleet)
	if ro.Countdown != "" {
		rl.DrawText(ro.Countdown, cx, cy, r.Theme.FontSize, r.Theme.Warning)
		cy += r.Theme.LineHeight
	}
	rl.DrawText(ro.Flags, cx, cy, r.Theme.FontSize, r.Theme.SectionHeader)

	status := fmt.Sprintf("Tick: %d | FPS: %d", data.Snapshot.Tick, data.FPS)
	if data.Paused {
		status += " | PAUSED"
	}
	rl.DrawText(status, pad, data.ScreenHeight-44, 14, rl.Gray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func fmtSpeed(v float64) string {
	return fmt.Sprintf("%.0f u/s", v)
}
