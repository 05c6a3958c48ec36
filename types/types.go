package types

import (
	"fmt"
)

var _ = fmt.Print

// Format is a depth image file format.
type Format int

// Depth image file formats. Only formats that can hold 16-bit single channel
// samples are listed.
const (
	UNKNOWN Format = iota
	PNG
	TIFF
)

var FormatExts = map[string]Format{
	"png":  PNG,
	"tif":  TIFF,
	"tiff": TIFF,
}

var formatNames = map[Format]string{
	PNG:  "PNG",
	TIFF: "TIFF",
}

func (f Format) String() string {
	return formatNames[f]
}
