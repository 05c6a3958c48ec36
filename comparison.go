package depthrgb

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
	"github.com/kovidgoyal/depthrgb/colormap"
)

var _ = fmt.Print

// Frame is one rendered image of a Comparison.
type Frame struct {
	Number uint
	Label  string
	Image  image.Image `json:"-"`
	Delay  time.Duration
}

// Comparison is a looping flipbook that alternates between an original depth
// image and its reconstruction, rendered with a shared depth scale so that
// the differences are visible.
type Comparison struct {
	Frames    []*Frame
	LoopCount uint // 0 means loop forever, 1 means loop once, ...
}

type comparisonConfig struct {
	delay      time.Duration
	falseColor bool
	scale_max  uint16
}

var defaultComparisonConfig = comparisonConfig{
	delay:      time.Second,
	falseColor: true,
}

// ComparisonOption sets an optional parameter for NewComparison.
type ComparisonOption func(*comparisonConfig)

// FrameDelay sets how long each frame is shown. Default is one second.
func FrameDelay(d time.Duration) ComparisonOption {
	return func(c *comparisonConfig) {
		c.delay = d
	}
}

// FalseColor selects rendering through the perceptual color ramp (the
// default) or as plain grayscale.
func FalseColor(enabled bool) ComparisonOption {
	return func(c *comparisonConfig) {
		c.falseColor = enabled
	}
}

// ScaleMax fixes the depth that maps to the top of the rendering scale.
// By default the maximum of the original image is used.
func ScaleMax(v uint16) ComparisonOption {
	return func(c *comparisonConfig) {
		c.scale_max = v
	}
}

func render(d *Depth, scale_max uint16, false_color bool) image.Image {
	b := d.Rect
	if false_color {
		ans := NewNRGB(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := range b.Dy() {
			drow := ans.Row(y)
			for _, v := range d.Row(y) {
				s := drow[0:3:3]
				s[0], s[1], s[2] = colormap.Ramp8(Scale(v, 0, scale_max))
				drow = drow[3:]
			}
		}
		return ans.AsRGBA()
	}
	ans := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		drow := ans.Pix[y*ans.Stride:]
		for x, v := range d.Row(y) {
			drow[x] = Scale(v, 0, scale_max)
		}
	}
	return ans
}

// NewComparison builds a two frame flipbook of original and decoded.
func NewComparison(original, decoded *Depth, opts ...ComparisonOption) (*Comparison, error) {
	cfg := defaultComparisonConfig
	for _, option := range opts {
		option(&cfg)
	}
	if original.Rect.Size() != decoded.Rect.Size() {
		return nil, fmt.Errorf("cannot compare images of different sizes: %v != %v", original.Rect.Size(), decoded.Rect.Size())
	}
	scale_max := cfg.scale_max
	if scale_max == 0 {
		scale_max = max(1, original.Max())
	}
	ans := &Comparison{}
	for _, x := range []struct {
		label string
		d     *Depth
	}{{"original", original}, {"decoded", decoded}} {
		ans.Frames = append(ans.Frames, &Frame{
			Number: uint(len(ans.Frames) + 1), Label: x.label, Delay: cfg.delay,
			Image: render(x.d, scale_max, cfg.falseColor),
		})
	}
	return ans, nil
}

// converts a time.Duration to a numerator and denominator of type uint16.
// It finds the best rational approximation of the duration in seconds.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}

	// Convert duration to seconds as a float64
	val := d.Seconds()

	// Use continued fractions to find the best rational approximation.
	// We look for the convergent that is closest to the original value
	// while keeping the numerator and denominator within uint16 bounds.

	bestNum, bestDen := uint16(0), uint16(1)
	bestError := math.Abs(val)

	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0

	f := val

	for i := 2; i < 100; i++ { // Limit iterations to prevent infinite loops
		a := int64(f)

		// Calculate next convergent
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]

		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			// This convergent is out of bounds, so the previous one was the best we could do.
			break
		}

		numConv := uint16(h[2])
		denConv := uint16(k[2])

		currentVal := float64(numConv) / float64(denConv)
		currentError := math.Abs(val - currentVal)

		if currentError < bestError {
			bestError = currentError
			bestNum = numConv
			bestDen = denConv
		}

		// Check if we have a perfect approximation
		if f-float64(a) == 0.0 {
			break
		}

		f = 1.0 / (f - float64(a))

		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}

	return bestNum, bestDen
}

func (self *Comparison) as_apng() (ans apng.APNG) {
	ans.LoopCount = self.LoopCount
	for _, f := range self.Frames {
		d := apng.Frame{
			DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE, Image: f.Image,
		}
		d.DelayNumerator, d.DelayDenominator = as_fraction(f.Delay)
		ans.Frames = append(ans.Frames, d)
	}
	return
}

// EncodeAsPNG writes the flipbook as an animated PNG. A single frame
// comparison is written as a plain PNG.
func (self *Comparison) EncodeAsPNG(w io.Writer) error {
	switch len(self.Frames) {
	case 0:
		return fmt.Errorf("comparison has no frames")
	case 1:
		return png.Encode(w, self.Frames[0].Image)
	}
	return apng.Encode(w, self.as_apng())
}
