package report

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Chart colours.
var (
	colorLow    = mustHex("#171738")
	colorMid    = mustHex("#ff71ce")
	colorHigh   = mustHex("#01cdfe")
	colorBar    = lipgloss.Color("#9678ff")
	colorAccent = lipgloss.Color("#ff71ce")
	colorNode   = lipgloss.Color("#01cdfe")
	colorMuted  = lipgloss.Color("#888888")
)

// HeatColor maps value on the scale [0, hi] to the three-stop heatmap
// palette: dark at 0, pink at hi/2, cyan at hi.
func HeatColor(value, hi int) colorful.Color {
	t := 0.0
	if hi > 0 {
		t = float64(value) / float64(hi)
	}
	switch {
	case t <= 0:
		return colorLow
	case t >= 1:
		return colorHigh
	case t < 0.5:
		return colorLow.BlendRgb(colorMid, t*2).Clamped()
	default:
		return colorMid.BlendRgb(colorHigh, (t-0.5)*2).Clamped()
	}
}

// textOn picks a readable foreground for the given background.
func textOn(bg colorful.Color) lipgloss.Color {
	_, _, l := bg.Hcl()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
