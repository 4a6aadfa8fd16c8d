// Package ui draws the cockpit HUD, the tactical radar and the toggle panel
// over the 3D view.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Accent         rl.Color
	Warning        rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 5, G: 12, B: 20, A: 200},
		PanelBorder:    rl.Color{R: 0, G: 120, B: 130, A: 255},
		SectionHeader:  rl.Color{R: 0, G: 243, B: 255, A: 255},
		LabelColor:     rl.Color{R: 120, G: 170, B: 180, A: 255},
		ValueColor:     rl.Color{R: 220, G: 240, B: 245, A: 255},
		Accent:         rl.Color{R: 0, G: 243, B: 255, A: 255},
		Warning:        rl.Color{R: 255, G: 51, B: 102, A: 255},
		BarBg:          rl.Color{R: 20, G: 35, B: 45, A: 255},
		BarFill:        rl.Color{R: 0, G: 200, B: 220, A: 255},
		BarFillHigh:    rl.Color{R: 230, G: 60, B: 60, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
