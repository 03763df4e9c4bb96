package ui

import (
	"image/color"
	"math"
)

// fillMaskRGBA tints each cell by its intensity in [0, 1]. Zero leaves the
// pixel transparent so the grid underneath shows through.
func fillMaskRGBA(buf []byte, mask []float64, tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range mask {
		base := i * 4
		intensity := clamp01(v)
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(intensity)
		buf[base+0] = scaleColorComponent(tint.R, glow)
		buf[base+1] = scaleColorComponent(tint.G, glow)
		buf[base+2] = scaleColorComponent(tint.B, glow)
		buf[base+3] = uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
	}
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 70*t))
	g := uint8(math.Round(170 + 70*t))
	b := uint8(math.Round(230 + 20*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
