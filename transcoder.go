package depthrgb

import (
	"fmt"
	"image"
)

var _ = fmt.Print

// Transcoder converts between 16-bit depth images and 8-bit RGB images.
// Implementations hold no state between calls, work for any bounds and
// always return a newly allocated image with the same bounds as their input.
type Transcoder interface {
	ToRGB(d *Depth) *NRGB
	ToDepth(rgb *NRGB) *Depth
}

// ContractViolationError reports a transcoder output of the wrong shape. It
// indicates a bug in the transcoder and is never recoverable.
type ContractViolationError struct {
	Op        string
	Want, Got image.Rectangle
	Reason    string
}

func (e *ContractViolationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("contract violation in %s: bounds %v, expected %v", e.Op, e.Got, e.Want)
}

// CheckRGB verifies that rgb is a well formed image with bounds of the same
// size as want.
func CheckRGB(op string, want image.Rectangle, rgb *NRGB) error {
	if rgb == nil {
		return &ContractViolationError{Op: op, Want: want, Reason: "nil RGB image"}
	}
	if rgb.Rect.Size() != want.Size() {
		return &ContractViolationError{Op: op, Want: want, Got: rgb.Rect}
	}
	w, h := rgb.Rect.Dx(), rgb.Rect.Dy()
	if h == 0 || w == 0 {
		return nil
	}
	if rgb.Stride < 3*w {
		return &ContractViolationError{Op: op, Want: want, Got: rgb.Rect, Reason: fmt.Sprintf("stride %d is less than %d", rgb.Stride, 3*w)}
	}
	if needed := (h-1)*rgb.Stride + 3*w; len(rgb.Pix) < needed {
		return &ContractViolationError{Op: op, Want: want, Got: rgb.Rect, Reason: fmt.Sprintf("pixel buffer has %d bytes, need %d", len(rgb.Pix), needed)}
	}
	return nil
}

// CheckDepth verifies that d is a well formed depth image with bounds of the
// same size as want.
func CheckDepth(op string, want image.Rectangle, d *Depth) error {
	if d == nil {
		return &ContractViolationError{Op: op, Want: want, Reason: "nil depth image"}
	}
	if d.Rect.Size() != want.Size() {
		return &ContractViolationError{Op: op, Want: want, Got: d.Rect}
	}
	w, h := d.Rect.Dx(), d.Rect.Dy()
	if h == 0 || w == 0 {
		return nil
	}
	if d.Stride < w {
		return &ContractViolationError{Op: op, Want: want, Got: d.Rect, Reason: fmt.Sprintf("stride %d is less than %d", d.Stride, w)}
	}
	if needed := (h-1)*d.Stride + w; len(d.Pix) < needed {
		return &ContractViolationError{Op: op, Want: want, Got: d.Rect, Reason: fmt.Sprintf("sample buffer has %d samples, need %d", len(d.Pix), needed)}
	}
	return nil
}
