package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom-codec/jpeg/baseline"
	"github.com/cocosip/go-dicom-codec/jpegls/nearlossless"
	"github.com/kovidgoyal/depthrgb"
)

func from_interleaved(pix []byte, width, height, components int) (*depthrgb.NRGB, error) {
	switch components {
	case 3:
		if len(pix) < 3*width*height {
			return nil, fmt.Errorf("%w: %d bytes of pixel data for %dx%d", ErrCorrupt, len(pix), width, height)
		}
		return depthrgb.NewNRGBWithContiguousRGBPixels(pix[:3*width*height], 0, 0, width, height)
	case 1:
		if len(pix) < width*height {
			return nil, fmt.Errorf("%w: %d bytes of pixel data for %dx%d", ErrCorrupt, len(pix), width, height)
		}
		rgb := make([]byte, 0, 3*width*height)
		for _, g := range pix[:width*height] {
			rgb = append(rgb, g, g, g)
		}
		return depthrgb.NewNRGBWithContiguousRGBPixels(rgb, 0, 0, width, height)
	}
	return nil, fmt.Errorf("%w: %d components", ErrCorrupt, components)
}

// JPEGBaseline is an independent baseline JPEG implementation (8-bit,
// Huffman, 4:2:0) from the go-dicom-codec project.
type JPEGBaseline struct{}

func (JPEGBaseline) Name() string { return "jpeg-baseline" }

func (JPEGBaseline) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	return baseline.Encode(img.ContiguousPix(), img.Rect.Dx(), img.Rect.Dy(), 3, quality)
}

func (JPEGBaseline) Decode(data []byte) (*depthrgb.NRGB, error) {
	pix, width, height, components, err := baseline.Decode(data)
	if err != nil {
		return nil, err
	}
	return from_interleaved(pix, width, height, components)
}

// JPEGLS is the JPEG-LS near-lossless codec. Each channel is coded on its
// own with no color transform and no chroma subsampling, so the per sample
// error is bounded by NEAR. Quality 100 is exactly lossless.
type JPEGLS struct{}

func (JPEGLS) Name() string { return "jpegls" }

// Near returns the JPEG-LS NEAR parameter used for quality.
func (JPEGLS) Near(quality int) int {
	return (100 - quality) / 3
}

func (c JPEGLS) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	return nearlossless.Encode(img.ContiguousPix(), img.Rect.Dx(), img.Rect.Dy(), 3, 8, c.Near(quality))
}

func (JPEGLS) Decode(data []byte) (*depthrgb.NRGB, error) {
	pix, width, height, components, bit_depth, _, err := nearlossless.Decode(data)
	if err != nil {
		return nil, err
	}
	if bit_depth != 8 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrCorrupt, bit_depth)
	}
	return from_interleaved(pix, width, height, components)
}
