package renderer

import (
	"testing"

	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

func TestControlsInput(t *testing.T) {
	tests := []struct {
		name  string
		c     Controls
		pitch float64
		yaw   float64
		pan   kinematics.Vec2
	}{
		{"idle", Controls{}, 0, 0, kinematics.Vec2{}},
		{"w noses up", Controls{PitchUp: true}, 1, 0, kinematics.Vec2{}},
		{"a turns left", Controls{YawLeft: true}, 0, 1, kinematics.Vec2{}},
		{"opposing keys cancel", Controls{YawLeft: true, YawRight: true}, 0, 0, kinematics.Vec2{}},
		{"stick up noses up", Controls{StickY: -0.5}, 0.5, 0, kinematics.Vec2{}},
		{"stick inside deadzone", Controls{StickX: 0.1, StickY: -0.1}, 0, 0, kinematics.Vec2{}},
		{"key plus stick clamps", Controls{PitchUp: true, StickY: -0.8}, 1, 0, kinematics.Vec2{}},
		{"arrows pan", Controls{PanRight: true, PanUp: true}, 0, 0, kinematics.Vec2{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.c.Input()
			if in.Flight.Pitch != tt.pitch || in.Flight.Yaw != tt.yaw {
				t.Errorf("pitch=%v yaw=%v, want %v %v", in.Flight.Pitch, in.Flight.Yaw, tt.pitch, tt.yaw)
			}
			if in.Flight.Pan != tt.pan {
				t.Errorf("pan = %v, want %v", in.Flight.Pan, tt.pan)
			}
		})
	}
}

func TestControlsToggles(t *testing.T) {
	c := Controls{
		Attack: true, Observer: true, Boost: true, Tactical: true,
		Pointer: kinematics.Vec2{X: 10, Y: 20}, PointerActive: true, Clicked: true,
	}
	in := c.Input()
	if !in.Flight.ToggleAttack || in.Flight.ToggleFlicker {
		t.Error("attack toggle not mapped")
	}
	if !in.ToggleObserver || in.ToggleAutoAttack {
		t.Error("observer toggle not mapped")
	}
	if !in.Flight.Boost || !in.Flight.TacticalTurn || in.Flight.Brake {
		t.Error("held keys not mapped")
	}
	if !in.Pointer.Clicked || in.Pointer.Pos.X != 10 {
		t.Errorf("pointer = %+v", in.Pointer)
	}
}

func TestColorConversion(t *testing.T) {
	c := color(scene.Hex(0xff8000), 0.5)
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 128 {
		t.Errorf("color = %+v", c)
	}
}
