package depthrgb

import (
	"image"
)

// FlipH flips the image horizontally (from left to right).
func FlipH(src *Depth) *Depth {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := NewDepth(image.Rect(0, 0, w, h))
	for y := range h {
		srow, drow := src.Row(y), dst.Row(y)
		for x, v := range srow {
			drow[w-1-x] = v
		}
	}
	return dst
}

// FlipV flips the image vertically (from top to bottom).
func FlipV(src *Depth) *Depth {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := NewDepth(image.Rect(0, 0, w, h))
	for y := range h {
		copy(dst.Row(h-1-y), src.Row(y))
	}
	return dst
}

// Rotate180 rotates the image 180 degrees counter-clockwise.
func Rotate180(src *Depth) *Depth {
	return FlipV(FlipH(src))
}

// Transpose flips the image horizontally and rotates 90 degrees counter-clockwise.
func Transpose(src *Depth) *Depth {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := NewDepth(image.Rect(0, 0, h, w))
	for y := range h {
		for x, v := range src.Row(y) {
			dst.Pix[x*dst.Stride+y] = v
		}
	}
	return dst
}

// Transverse flips the image vertically and rotates 90 degrees counter-clockwise.
func Transverse(src *Depth) *Depth {
	return Rotate180(Transpose(src))
}

// Rotate90 rotates the image 90 degrees counter-clockwise.
func Rotate90(src *Depth) *Depth {
	return FlipV(Transpose(src))
}

// Rotate270 rotates the image 270 degrees counter-clockwise.
func Rotate270(src *Depth) *Depth {
	return FlipH(Transpose(src))
}

// orientation is an EXIF flag that specifies the transformation
// that should be applied to image to display it correctly.
type orientation int

const (
	orientationUnspecified = 0
	orientationNormal      = 1
	orientationFlipH       = 2
	orientationRotate180   = 3
	orientationFlipV       = 4
	orientationTranspose   = 5
	orientationRotate270   = 6
	orientationTransverse  = 7
	orientationRotate90    = 8
)

// fixOrientation applies a transform to img corresponding to the given orientation flag.
func fixOrientation(img *Depth, o orientation) *Depth {
	switch o {
	case orientationFlipH:
		img = FlipH(img)
	case orientationFlipV:
		img = FlipV(img)
	case orientationRotate90:
		img = Rotate90(img)
	case orientationRotate180:
		img = Rotate180(img)
	case orientationRotate270:
		img = Rotate270(img)
	case orientationTranspose:
		img = Transpose(img)
	case orientationTransverse:
		img = Transverse(img)
	}
	return img
}
