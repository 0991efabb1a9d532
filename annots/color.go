package annots

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with components in 0..1, as PDF stores them.
type Color struct {
	R float64
	G float64
	B float64
}

var (
	Yellow = Color{R: 1, G: 1, B: 0}
	Black  = Color{R: 0, G: 0, B: 0}
)

func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}

	return Color{R: c.R, G: c.G, B: c.B}, nil
}

func ColorFromRGBA(c color.Color) Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return Black
	}

	return Color{R: cf.R, G: cf.G, B: cf.B}
}

func ColorFromFloats(clr []float64) (Color, bool) {
	if len(clr) < 3 {
		return Color{}, false
	}

	return Color{R: clamp(clr[0]), G: clamp(clr[1]), B: clamp(clr[2])}, true
}

func (c Color) Floats() []float64 {
	return []float64{c.R, c.G, c.B}
}

func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func (c Color) RGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: alpha,
	}
}

// Category names the color by hue, the way a person would describe it.
func (c Color) Category() string {
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()

	if l < 0.12 {
		return "Black"
	}
	if l > 0.98 {
		return "White"
	}
	if s < 0.2 {
		return "Gray"
	}
	if h < 15 {
		return "Red"
	}
	if h < 45 {
		return "Orange"
	}
	if h < 65 {
		return "Yellow"
	}
	if h < 170 {
		return "Green"
	}
	if h < 190 {
		return "Cyan"
	}
	if h < 263 {
		return "Blue"
	}
	if h < 280 {
		return "Purple"
	}
	if h < 335 {
		return "Magenta"
	}
	return "Red"
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v) * 255))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
