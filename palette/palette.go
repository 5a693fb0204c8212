// Package palette generates the rover, fixed point and background colors from
// hue/saturation/value ranges.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with components normalized to [0,1].
type Color struct {
	R, G, B float64
}

// FromHSV converts hue in degrees [0,360) and saturation/value in [0,1].
func FromHSV(h, s, v float64) Color {
	c := colorful.Hsv(h, s, v)
	return Color{R: c.R, G: c.G, B: c.B}
}

// HSV decodes the color back to hue, saturation and value.
func (c Color) HSV() (h, s, v float64) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
}

// RGBA returns the opaque 8-bit color used by the render backends.
func (c Color) RGBA() color.RGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Range bounds the HSV components a sampled color may take.
type Range struct {
	HueMin float64
	HueMax float64
	SatMin float64
	SatMax float64
	ValMin float64
	ValMax float64
}

// Default ranges.
var (
	Bright = Range{HueMin: 90, HueMax: 180, SatMin: 0.8, SatMax: 1.0, ValMin: 0.8, ValMax: 1.0}
	Dark   = Range{HueMin: 0, HueMax: 90, SatMin: 0.2, SatMax: 0.4, ValMin: 0, ValMax: 0.2}
)

// Validate rejects ranges outside the HSV domain or with min > max.
func (r Range) Validate() error {
	for _, v := range [...]float64{r.HueMin, r.HueMax, r.SatMin, r.SatMax, r.ValMin, r.ValMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bounds must be finite, got %+v", r)
		}
	}
	switch {
	case r.HueMin < 0 || r.HueMax >= 360:
		return fmt.Errorf("hue must lie in [0,360), got [%g,%g]", r.HueMin, r.HueMax)
	case r.SatMin < 0 || r.SatMax > 1:
		return fmt.Errorf("saturation must lie in [0,1], got [%g,%g]", r.SatMin, r.SatMax)
	case r.ValMin < 0 || r.ValMax > 1:
		return fmt.Errorf("value must lie in [0,1], got [%g,%g]", r.ValMin, r.ValMax)
	case r.HueMin > r.HueMax || r.SatMin > r.SatMax || r.ValMin > r.ValMax:
		return fmt.Errorf("range minimum exceeds maximum")
	}
	return nil
}

// Sample draws one color uniformly from the range.
func (r Range) Sample(rng *rand.Rand) Color {
	h := lerp(r.HueMin, r.HueMax, rng.Float64())
	s := lerp(r.SatMin, r.SatMax, rng.Float64())
	v := lerp(r.ValMin, r.ValMax, rng.Float64())
	return FromHSV(h, s, v)
}

// Generator hands out bright rover colors and dark point/background colors.
type Generator struct {
	rng    *rand.Rand
	bright Range
	dark   Range
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand, bright, dark Range) *Generator {
	return &Generator{rng: rng, bright: bright, dark: dark}
}

// Bright returns a new rover color.
func (g *Generator) Bright() Color {
	return g.bright.Sample(g.rng)
}

// Dark returns a new fixed point or background color.
func (g *Generator) Dark() Color {
	return g.dark.Sample(g.rng)
}

func lerp(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}
