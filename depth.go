package depthrgb

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var _ = fmt.Print

// ErrNotDepthImage means a decoded image has more than one channel and so
// cannot be interpreted as a depth map.
var ErrNotDepthImage = errors.New("depthrgb: not a single channel depth image")

// Depth is an in-memory grid of 16-bit depth samples. Its At method returns
// color.Gray16 values so that it can be handed to any image encoder.
type Depth struct {
	// Pix holds the depth samples. The sample at (x, y) is
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)].
	Pix []uint16
	// Stride is the Pix stride (in samples) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

func (p *Depth) ColorModel() color.Model { return color.Gray16Model }

func (p *Depth) Bounds() image.Rectangle { return p.Rect }

func (p *Depth) At(x, y int) color.Color {
	return color.Gray16{Y: p.DepthAt(x, y)}
}

func (p *Depth) DepthAt(x, y int) uint16 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	return p.Pix[p.PixOffset(x, y)]
}

// PixOffset returns the index of the element of Pix that corresponds to
// the pixel at (x, y).
func (p *Depth) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

// Row returns the samples of row y, where y is relative to Rect.Min.Y.
func (p *Depth) Row(y int) []uint16 {
	w := p.Rect.Dx()
	i := y * p.Stride
	return p.Pix[i : i+w : i+w]
}

// Max returns the largest sample in the image, or zero for an empty image.
func (p *Depth) Max() (ans uint16) {
	for y := range p.Rect.Dy() {
		for _, v := range p.Row(y) {
			ans = max(ans, v)
		}
	}
	return
}

func (p *Depth) Clone() *Depth {
	ans := NewDepth(p.Rect)
	for y := range p.Rect.Dy() {
		copy(ans.Row(y), p.Row(y))
	}
	return ans
}

// AsGray16 returns a copy of the image as an *image.Gray16, which the
// standard library PNG and TIFF encoders handle without conversion.
func (p *Depth) AsGray16() *image.Gray16 {
	ans := image.NewGray16(p.Rect)
	for y := range p.Rect.Dy() {
		drow := ans.Pix[y*ans.Stride:]
		for x, v := range p.Row(y) {
			drow[2*x] = uint8(v >> 8)
			drow[2*x+1] = uint8(v)
		}
	}
	return ans
}

func NewDepth(r image.Rectangle) *Depth {
	return &Depth{
		Pix:    make([]uint16, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

// NewDepthFromRows builds an image from row-major sample values. All rows
// must have the same length.
func NewDepthFromRows(rows [][]uint16) (*Depth, error) {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	ans := NewDepth(image.Rect(0, 0, w, h))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d samples, expected %d", y, len(row), w)
		}
		copy(ans.Row(y), row)
	}
	return ans, nil
}

// DepthFromImage converts a single channel image to a depth map. Sample values
// are taken as is: 8-bit grayscale images yield depths in [0, 255], they are
// not scaled up to 16 bits.
func DepthFromImage(img image.Image) (*Depth, error) {
	b := img.Bounds()
	ans := NewDepth(b)
	switch src := img.(type) {
	case *Depth:
		return src.Clone(), nil
	case *image.Gray16:
		for y := range b.Dy() {
			row := src.Pix[y*src.Stride:]
			for x := range ans.Row(y) {
				ans.Pix[y*ans.Stride+x] = uint16(row[2*x])<<8 | uint16(row[2*x+1])
			}
		}
	case *image.Gray:
		for y := range b.Dy() {
			row := src.Pix[y*src.Stride:]
			for x := range ans.Row(y) {
				ans.Pix[y*ans.Stride+x] = uint16(row[x])
			}
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotDepthImage, img)
	}
	return ans, nil
}
