package depthrgb

import (
	"fmt"
	"image"
	"image/color"
)

var _ = fmt.Print

type NRGBColor struct {
	R, G, B uint8
}

func (c NRGBColor) String() string {
	return fmt.Sprintf("NRGBColor{%02X %02X %02X}", c.R, c.G, c.B)
}

func (c NRGBColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 65535 // (255 << 8 | 255)
	return
}

// NRGB is an in-memory, fully opaque, 8 bits per channel RGB image. It is
// what transcoders produce and what codecs consume.
type NRGB struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

func nrgbModel(c color.Color) color.Color {
	if _, ok := c.(NRGBColor); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	switch a {
	case 0xffff:
		return NRGBColor{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	case 0:
		return NRGBColor{0, 0, 0}
	default:
		// Since Color.RGBA returns an alpha-premultiplied color, we should have r <= a && g <= a && b <= a.
		r = (r * 0xffff) / a
		g = (g * 0xffff) / a
		b = (b * 0xffff) / a
		return NRGBColor{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
}

var NRGBModel color.Model = color.ModelFunc(nrgbModel)

func (p *NRGB) ColorModel() color.Model { return NRGBModel }

func (p *NRGB) Bounds() image.Rectangle { return p.Rect }

func (p *NRGB) At(x, y int) color.Color {
	return p.NRGBAt(x, y)
}

func (p *NRGB) NRGBAt(x, y int) NRGBColor {
	if !(image.Point{x, y}.In(p.Rect)) {
		return NRGBColor{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small cap improves performance, see https://golang.org/issue/27857
	return NRGBColor{s[0], s[1], s[2]}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *NRGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// Row returns the bytes of row y, where y is relative to Rect.Min.Y.
func (p *NRGB) Row(y int) []uint8 {
	n := 3 * p.Rect.Dx()
	i := y * p.Stride
	return p.Pix[i : i+n : i+n]
}

func (p *NRGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	p.SetNRGB(x, y, NRGBModel.Convert(c).(NRGBColor))
}

func (p *NRGB) SetNRGB(x, y int, c NRGBColor) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small cap improves performance, see https://golang.org/issue/27857
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (p *NRGB) Opaque() bool { return true }

// ContiguousPix returns the pixels as a tightly packed R, G, B buffer with no
// padding between rows. The returned slice shares memory with p when p is
// already packed.
func (p *NRGB) ContiguousPix() []uint8 {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if p.Stride == 3*w && len(p.Pix) >= 3*w*h {
		return p.Pix[:3*w*h]
	}
	ans := make([]uint8, 0, 3*w*h)
	for y := range h {
		ans = append(ans, p.Row(y)...)
	}
	return ans
}

// AsRGBA returns a copy of the image as an opaque *image.RGBA. The standard
// library encoders have fast paths for this type.
func (p *NRGB) AsRGBA() *image.RGBA {
	ans := image.NewRGBA(p.Rect)
	for y := range p.Rect.Dy() {
		src := p.Row(y)
		dst := ans.Pix[y*ans.Stride:]
		for len(src) > 0 {
			d := dst[0:4:4]
			d[0], d[1], d[2], d[3] = src[0], src[1], src[2], 0xff
			src = src[3:]
			dst = dst[4:]
		}
	}
	return ans
}

func NewNRGB(r image.Rectangle) *NRGB {
	return &NRGB{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

func NewNRGBWithContiguousRGBPixels(p []byte, left, top, width, height int) (*NRGB, error) {
	const bpp = 3
	if expected := bpp * width * height; expected != len(p) {
		return nil, fmt.Errorf("the image width and height dont match the size of the specified pixel data: width=%d height=%d sz=%d != %d", width, height, len(p), expected)
	}
	return &NRGB{
		Pix:    p,
		Stride: bpp * width,
		Rect:   image.Rectangle{image.Point{left, top}, image.Point{left + width, top + height}},
	}, nil
}

// NRGBFromImage converts the output of an image decoder into an *NRGB,
// dropping alpha. The result always has its origin at (0, 0).
func NRGBFromImage(img image.Image) *NRGB {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	ans := NewNRGB(image.Rect(0, 0, width, height))
	switch src := img.(type) {
	case *NRGB:
		for y := range height {
			copy(ans.Row(y), src.Row(y))
		}
	case *image.YCbCr:
		for y := range height {
			drow := ans.Row(y)
			for x := range width {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				d := drow[3*x : 3*x+3 : 3*x+3]
				d[0], d[1], d[2] = color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
			}
		}
	case *image.RGBA:
		for y := range height {
			row := src.Pix[y*src.Stride:]
			drow := ans.Row(y)
			for x := range width {
				copy(drow[3*x:3*x+3], row[4*x:4*x+3])
			}
		}
	case *image.NRGBA:
		for y := range height {
			row := src.Pix[y*src.Stride:]
			drow := ans.Row(y)
			for x := range width {
				copy(drow[3*x:3*x+3], row[4*x:4*x+3])
			}
		}
	case *image.Gray:
		for y := range height {
			row := src.Pix[y*src.Stride:]
			drow := ans.Row(y)
			for x := range width {
				g := row[x]
				drow[3*x], drow[3*x+1], drow[3*x+2] = g, g, g
			}
		}
	default:
		for y := range height {
			for x := range width {
				ans.SetNRGB(x, y, NRGBModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(NRGBColor))
			}
		}
	}
	return ans
}
