package bench

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/depthrgb"
)

// Metric summarises the reconstruction error between two depth images of
// the same size as a non-negative number.
type Metric func(original, reconstructed *depthrgb.Depth) (float64, error)

type sizeMismatchError struct {
	want, got any
}

func (e *sizeMismatchError) Error() string {
	return fmt.Sprintf("image sizes are not equal: %v != %v", e.got, e.want)
}

func accumulate(a, b *depthrgb.Depth, f func(diff float64) float64) (float64, error) {
	if a.Rect.Size() != b.Rect.Size() {
		return 0, &sizeMismatchError{want: a.Rect.Size(), got: b.Rect.Size()}
	}
	n := a.Rect.Dx() * a.Rect.Dy()
	if n == 0 {
		return 0, nil
	}
	var sum float64
	for y := range a.Rect.Dy() {
		brow := b.Row(y)
		for x, v := range a.Row(y) {
			sum += f(float64(brow[x]) - float64(v))
		}
	}
	return sum / float64(n), nil
}

// MeanAbsoluteError is mean(|reconstructed - original|) in depth units. It is
// the default metric.
func MeanAbsoluteError(original, reconstructed *depthrgb.Depth) (float64, error) {
	return accumulate(original, reconstructed, math.Abs)
}

// NormalizedMSE is mean(((reconstructed - original) / 65535)^2).
func NormalizedMSE(original, reconstructed *depthrgb.Depth) (float64, error) {
	return accumulate(original, reconstructed, func(d float64) float64 {
		d /= math.MaxUint16
		return d * d
	})
}

// MetricByName returns the metric for "mae" or "nmse".
func MetricByName(name string) (Metric, error) {
	switch name {
	case "mae":
		return MeanAbsoluteError, nil
	case "nmse":
		return NormalizedMSE, nil
	}
	return nil, fmt.Errorf("unknown metric: %#v, must be one of mae or nmse", name)
}
