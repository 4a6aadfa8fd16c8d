package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/game"
)

// Toggles are the button edges raised by the controls panel this frame.
type Toggles struct {
	Attack     bool
	Flicker    bool
	AutoAttack bool
	Observer   bool
	Autopilot  bool
	Pause      bool
}

// Apply merges the toggles into in. Autopilot and Pause are not part of the
// per-tick input and are left to the caller.
func (t Toggles) Apply(in game.Input) game.Input {
	in.Flight.ToggleAttack = in.Flight.ToggleAttack || t.Attack
	in.Flight.ToggleFlicker = in.Flight.ToggleFlicker || t.Flicker
	in.ToggleAutoAttack = in.ToggleAutoAttack || t.AutoAttack
	in.ToggleObserver = in.ToggleObserver || t.Observer
	return in
}

// ControlsPanel renders the right-side mode toggles.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	buttonH  float32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
		buttonH:  26,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

type toggleButton struct {
	label  string
	key    string
	active bool
	out    *bool
}

// Bounds returns the panel rectangle.
func (c *ControlsPanel) Bounds(screenW int32) rl.Rectangle {
	pad := c.renderer.Theme.Padding
	return rl.Rectangle{
		X:      float32(screenW - c.width - pad),
		Y:      float32(pad),
		Width:  float32(c.width),
		Height: float32(pad)*2 + 6*(c.buttonH+4) + float32(c.renderer.Theme.LineHeight),
	}
}

// Hovered reports whether the mouse is over the panel.
func (c *ControlsPanel) Hovered(screenW int32) bool {
	return c.visible && rl.CheckCollisionPointRec(rl.GetMousePosition(), c.Bounds(screenW))
}

// Draw renders the buttons reflecting snap and returns which ones flipped.
func (c *ControlsPanel) Draw(snap game.Snapshot, paused bool, screenW int32) Toggles {
	var t Toggles
	if !c.visible {
		return t
	}

	r := c.renderer
	b := c.Bounds(screenW)
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	pad := float32(r.Theme.Padding)
	y := b.Y + pad
	rl.DrawText("Controls", int32(b.X+pad), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(r.Theme.LineHeight) + 4

	buttons := []toggleButton{
		{"Attack", "H", snap.Flight.Attack, &t.Attack},
		{"Flicker", "U", snap.Flight.Flicker, &t.Flicker},
		{"Auto-attack", "K", snap.AutoAttack, &t.AutoAttack},
		{"Observer", "O", snap.Observer, &t.Observer},
		{"Autopilot", "", snap.Autopilot, &t.Autopilot},
		{"Pause", "Tab", paused, &t.Pause},
	}
	for _, btn := range buttons {
		label := btn.label
		if btn.key != "" {
			label += " [" + btn.key + "]"
		}
		bounds := rl.Rectangle{X: b.X + pad, Y: y, Width: b.Width - pad*2, Height: c.buttonH}
		*btn.out = gui.Toggle(bounds, label, btn.active) != btn.active
		y += c.buttonH + 4
	}
	return t
}
