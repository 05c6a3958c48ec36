package codec

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/kovidgoyal/depthrgb"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func decode_image(data []byte, decode func(*bytes.Reader) (image.Image, error)) (*depthrgb.NRGB, error) {
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return depthrgb.NRGBFromImage(img), nil
}

// JPEG is the baseline photographic codec of the standard library. Color
// images are written as YCbCr with 4:2:0 chroma subsampling.
type JPEG struct{}

func (JPEG) Name() string { return "jpeg" }

func (JPEG) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.AsRGBA(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JPEG) Decode(data []byte) (*depthrgb.NRGB, error) {
	return decode_image(data, func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) })
}

// PNG is lossless. Quality selects the zlib compression level: below 34 is
// fastest, 34 to 66 is the default and above is best compression.
type PNG struct{}

func (PNG) Name() string   { return "png" }
func (PNG) Lossless() bool { return true }

func png_level(quality int) png.CompressionLevel {
	switch {
	case quality < 34:
		return png.BestSpeed
	case quality < 67:
		return png.DefaultCompression
	}
	return png.BestCompression
}

func (PNG) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png_level(quality)}
	if err := encoder.Encode(&buf, img.AsRGBA()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (PNG) Decode(data []byte) (*depthrgb.NRGB, error) {
	return decode_image(data, func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) })
}

// TIFF is lossless, deflate compressed with a horizontal predictor.
type TIFF struct{}

func (TIFF) Name() string   { return "tiff" }
func (TIFF) Lossless() bool { return true }

func (TIFF) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img.AsRGBA(), &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TIFF) Decode(data []byte) (*depthrgb.NRGB, error) {
	return decode_image(data, func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) })
}

// BMP is uncompressed. Quality is validated and otherwise ignored.
type BMP struct{}

func (BMP) Name() string   { return "bmp" }
func (BMP) Lossless() bool { return true }

func (BMP) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img.AsRGBA()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (BMP) Decode(data []byte) (*depthrgb.NRGB, error) {
	return decode_image(data, func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) })
}
