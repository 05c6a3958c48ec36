package colormap

import (
	"math"
	"sync"
)

// Lightness and chroma of the ramp. Hue turns from violet through blue and
// green to yellow as lightness rises, so near and far are distinguishable
// even on a grayscale print.
const (
	rampMinL     = 12.0
	rampMaxL     = 96.0
	rampChroma   = 55.0
	rampStartHue = 300.0
	rampHueTurn  = -215.0
)

// RampLab returns the Lab color of the ramp at t, clamped to [0, 1].
func RampLab(t float64) (L, a, b float64) {
	t = clamp01(t)
	L = rampMinL + (rampMaxL-rampMinL)*t
	c := rampChroma * math.Sin(math.Pi*t)
	h := (rampStartHue + rampHueTurn*t) * math.Pi / 180
	return L, c * math.Cos(h), c * math.Sin(h)
}

var rampLUT = sync.OnceValue(func() (ans [256][3]uint8) {
	to8 := func(x float64) uint8 { return uint8(math.Round(x * 255)) }
	for i := range ans {
		r, g, b := LabToSRGB(RampLab(float64(i) / 255))
		ans[i] = [3]uint8{to8(r), to8(g), to8(b)}
	}
	return
})

// Ramp returns the 8-bit sRGB color for a normalised depth t in [0, 1].
func Ramp(t float64) (r, g, b uint8) {
	i := int(math.Round(clamp01(t) * 255))
	c := rampLUT()[i]
	return c[0], c[1], c[2]
}

// Ramp8 returns the ramp color for an already quantised position.
func Ramp8(i uint8) (r, g, b uint8) {
	c := rampLUT()[i]
	return c[0], c[1], c[2]
}
