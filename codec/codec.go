// Package codec adapts image and general purpose compressors to a single
// interface that the evaluation harness drives at a chosen quality.
package codec

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/depthrgb"
)

// Codec compresses an RGB image at a quality in [1, 100], higher meaning less
// loss. Lossless codecs validate quality but may ignore it or map it to a
// speed/size trade-off.
type Codec interface {
	Name() string
	Encode(img *depthrgb.NRGB, quality int) ([]byte, error)
	Decode(data []byte) (*depthrgb.NRGB, error)
}

var (
	// ErrInvalidQuality is returned when quality is outside [1, 100]
	ErrInvalidQuality = errors.New("invalid quality (must be 1-100)")

	// ErrCorrupt is returned when compressed data cannot be decoded
	ErrCorrupt = errors.New("corrupt compressed data")

	// ErrUnknownCodec is returned when a codec is not found in a Registry
	ErrUnknownCodec = errors.New("codec not found")
)

// Error wraps a failure of an external codec.
type Error struct {
	Codec string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s codec failed to %s: %s", e.Codec, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error unless it already is one.
func Wrap(c Codec, op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Codec: c.Name(), Op: op, Err: err}
}

// ValidateQuality checks that quality is in [1, 100].
func ValidateQuality(quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	return nil
}

// IsLossless reports whether c reproduces its input exactly at every quality.
func IsLossless(c Codec) bool {
	l, ok := c.(interface{ Lossless() bool })
	return ok && l.Lossless()
}
