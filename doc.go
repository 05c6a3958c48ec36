/*
Package depthrgb converts 16-bit depth images into 8-bit, 3-channel RGB images and
back, so that depth can be carried through pipelines built for lossy colour image
compression.

Every algorithm implements the Transcoder interface. Transcoders accept a *Depth
of any size and return a freshly allocated *NRGB of the same bounds, and vice
versa. The bench sub-package measures how much depth precision each algorithm
loses after a lossy codec round trip.
*/
package depthrgb

import "fmt"

type DepthRGBVersion struct {
	Major, Minor, Patch uint
}

func (v DepthRGBVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var Version = DepthRGBVersion{0, 4, 0}
