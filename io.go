package depthrgb

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kovidgoyal/depthrgb/types"

	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"

	"golang.org/x/image/tiff"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
	ReadDir(string) ([]os.DirEntry, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error)  { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)     { return os.Open(name) }
func (localFS) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

var fs fileSystem = localFS{}

// ErrMissingInput means the directory of reference depth images does not exist.
var ErrMissingInput = errors.New("depthrgb: missing input directory")

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the depth image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

func read_orientation(data []byte) orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return orientationUnspecified
	}
	orient, err := x.Get(exif.Orientation)
	if err == nil && orient != nil && orient.Format() == exif_tiff.IntVal {
		if v, err := orient.Int(0); err == nil && v > 0 && v < 9 {
			return orientation(v)
		}
	}
	return orientationUnspecified
}

// Decode reads a single channel PNG or TIFF image from r as a depth map.
func Decode(r io.Reader, opts ...DecodeOption) (*Depth, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	ans, err := DepthFromImage(img)
	if err != nil {
		return nil, err
	}
	if cfg.autoOrientation {
		if o := read_orientation(data); o != orientationUnspecified {
			ans = fixOrientation(ans, o)
		}
	}
	return ans, nil
}

// Open loads a depth image from file.
//
// Examples:
//
//	// Load a 16-bit depth map from file.
//	d, err := depthrgb.Open("kitchen.png")
func Open(filename string, opts ...DecodeOption) (*Depth, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	ans, err := Decode(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, nil
}

// NamedDepth is a depth image together with the file name it was loaded from.
type NamedDepth struct {
	Name  string
	Depth *Depth
}

// LoadDir loads every PNG and TIFF file in dir, sorted by file name. A missing
// directory is reported as ErrMissingInput.
func LoadDir(dir string, opts ...DecodeOption) ([]NamedDepth, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at: %s", ErrMissingInput, dir)
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromFilename(e.Name()); err == nil {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	ans := make([]NamedDepth, 0, len(names))
	for _, name := range names {
		d, err := Open(filepath.Join(dir, name), opts...)
		if err != nil {
			return nil, err
		}
		ans = append(ans, NamedDepth{Name: name, Depth: d})
	}
	return ans, nil
}

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	PNG     = types.PNG
	TIFF    = types.TIFF
)

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("depthrgb: unsupported image format")

// FormatFromExtension parses image format from filename extension:
// "png" and "tif" (or "tiff") are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from filename:
// "png" and "tif" (or "tiff") are supported.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	return FormatFromExtension(ext)
}

type encodeConfig struct {
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes the depth image d to w as a 16-bit grayscale PNG or TIFF.
func Encode(w io.Writer, d *Depth, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	switch format {
	case PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		return encoder.Encode(w, d.AsGray16())

	case TIFF:
		return tiff.Encode(w, d.AsGray16(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}

	return ErrUnsupportedFormat
}

// Save saves the depth image to file with the specified filename.
// The format is determined from the filename extension:
// "png" and "tif" (or "tiff") are supported.
//
// Examples:
//
//	// Save the decoded depth as a 16-bit PNG.
//	err := depthrgb.Save(d, "decoded.png")
func Save(d *Depth, filename string, opts ...EncodeOption) (err error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	err = Encode(file, d, f, opts...)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	return err
}
