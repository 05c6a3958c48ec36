package depthrgb

import (
	"math"
	"sync"
)

// HalftoneCheatMax is the depth assumed to bound every real sample by
// HalftoneFixedMax.
const HalftoneCheatMax = 1140

// Scale min-max normalises v into [0, 255]. Values above max saturate at 255
// and values below min at 0. When max <= min every value maps to 0.
func Scale(v, min_val, max_val uint16) uint8 {
	if max_val <= min_val || v <= min_val {
		return 0
	}
	n := uint64(v-min_val) * 255 / uint64(max_val-min_val)
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Unscale inverts Scale for the average of the three channels of a pixel.
// The average is truncated to an integer before scaling and the result is
// rounded half to even.
func Unscale(r, g, b uint8, min_val, max_val uint16) uint16 {
	if max_val <= min_val {
		return min_val
	}
	avg := (uint32(r) + uint32(g) + uint32(b)) / 3
	v := math.RoundToEven(float64(avg)*float64(max_val-min_val)/255) + float64(min_val)
	return uint16(min(v, math.MaxUint16))
}

func halftone_rgb(d *Depth, lut func(uint16) uint8) *NRGB {
	ans := NewNRGB(d.Rect)
	for y := range d.Rect.Dy() {
		drow := ans.Row(y)
		for _, v := range d.Row(y) {
			g := lut(v)
			s := drow[0:3:3]
			s[0], s[1], s[2] = g, g, g
			drow = drow[3:]
		}
	}
	return ans
}

func halftone_depth(rgb *NRGB, min_val, max_val uint16) *Depth {
	ans := NewDepth(rgb.Rect)
	for y := range rgb.Rect.Dy() {
		row := rgb.Row(y)
		drow := ans.Row(y)
		for x := range drow {
			s := row[3*x : 3*x+3 : 3*x+3]
			drow[x] = Unscale(s[0], s[1], s[2], min_val, max_val)
		}
	}
	return ans
}

var halftoneCheatLUT = sync.OnceValue(func() []uint8 {
	ans := make([]uint8, math.MaxUint16+1)
	for i := range ans {
		ans[i] = Scale(uint16(i), 0, HalftoneCheatMax)
	}
	return ans
})

// HalftoneFixedMax normalises depth against the constant HalftoneCheatMax and
// replicates the result into all three channels. Depths above the constant
// saturate.
type HalftoneFixedMax struct{}

var _ Transcoder = HalftoneFixedMax{}

func (HalftoneFixedMax) ToRGB(d *Depth) *NRGB {
	lut := halftoneCheatLUT()
	return halftone_rgb(d, func(v uint16) uint8 { return lut[v] })
}

func (HalftoneFixedMax) ToDepth(rgb *NRGB) *Depth {
	return halftone_depth(rgb, 0, HalftoneCheatMax)
}

// HalftoneEmbeddedMax normalises depth against the largest sample of each
// image and stores that maximum in the R (high byte) and G (low byte)
// channels of the pixel at the image origin.
//
// The stored maximum goes through the same lossy codec as everything else,
// so a codec that perturbs the origin pixel corrupts every decoded depth.
// The origin pixel itself never decodes to its original depth.
type HalftoneEmbeddedMax struct{}

var _ Transcoder = HalftoneEmbeddedMax{}

func (HalftoneEmbeddedMax) ToRGB(d *Depth) *NRGB {
	m := d.Max()
	ans := halftone_rgb(d, func(v uint16) uint8 { return Scale(v, 0, m) })
	if !d.Rect.Empty() {
		s := ans.Pix[0:3:3]
		s[0], s[1] = uint8(m>>8), uint8(m)
	}
	return ans
}

// EmbeddedMax returns the maximum stored in the origin pixel of rgb.
func (HalftoneEmbeddedMax) EmbeddedMax(rgb *NRGB) uint16 {
	if rgb.Rect.Empty() {
		return 0
	}
	return uint16(rgb.Pix[0])<<8 | uint16(rgb.Pix[1])
}

func (t HalftoneEmbeddedMax) ToDepth(rgb *NRGB) *Depth {
	return halftone_depth(rgb, 0, t.EmbeddedMax(rgb))
}
