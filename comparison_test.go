package depthrgb

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/kettek/apng"
	"github.com/kovidgoyal/depthrgb/colormap"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestAsFraction(t *testing.T) {
	for _, tc := range []struct {
		d        time.Duration
		num, den uint16
	}{
		{0, 0, 1},
		{-time.Second, 0, 1},
		{time.Second, 1, 1},
		{500 * time.Millisecond, 1, 2},
		{1500 * time.Millisecond, 3, 2},
		{100 * time.Millisecond, 1, 10},
	} {
		num, den := as_fraction(tc.d)
		require.Equal(t, [2]uint16{tc.num, tc.den}, [2]uint16{num, den}, "duration: %s", tc.d)
	}
}

func TestComparison(t *testing.T) {
	original := random_depth(16, 8, 1140)
	decoded := HalftoneFixedMax{}.ToDepth(HalftoneFixedMax{}.ToRGB(original))

	c, err := NewComparison(original, decoded, FrameDelay(500*time.Millisecond))
	require.NoError(t, err)
	require.Len(t, c.Frames, 2)
	require.Equal(t, "original", c.Frames[0].Label)
	require.Equal(t, "decoded", c.Frames[1].Label)
	require.Equal(t, uint(2), c.Frames[1].Number)

	var buf bytes.Buffer
	require.NoError(t, c.EncodeAsPNG(&buf))
	a, err := apng.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, a.Frames, 2)
	for _, f := range a.Frames {
		require.Equal(t, image.Pt(16, 8), f.Image.Bounds().Size())
		require.Equal(t, uint16(1), f.DelayNumerator)
		require.Equal(t, uint16(2), f.DelayDenominator)
	}

	_, err = NewComparison(original, NewDepth(image.Rect(0, 0, 8, 16)))
	require.Error(t, err)
}

func TestComparisonRendering(t *testing.T) {
	d, err := NewDepthFromRows([][]uint16{{0, 50, 100}})
	require.NoError(t, err)
	c, err := NewComparison(d, d, FalseColor(false))
	require.NoError(t, err)
	g, ok := c.Frames[0].Image.(*image.Gray)
	require.True(t, ok)
	require.Equal(t, []uint8{0, 127, 255}, g.Pix)

	// a fixed scale saturates depths above it
	c, err = NewComparison(d, d, FalseColor(false), ScaleMax(50))
	require.NoError(t, err)
	require.Equal(t, []uint8{0, 255, 255}, c.Frames[1].Image.(*image.Gray).Pix)

	c, err = NewComparison(d, d)
	require.NoError(t, err)
	rgba, ok := c.Frames[0].Image.(*image.RGBA)
	require.True(t, ok)
	r, g2, b := colormap.Ramp8(255)
	require.Equal(t, []uint8{r, g2, b, 0xff}, rgba.Pix[8:12])

	// a single frame is written as a plain PNG
	c.Frames = c.Frames[:1]
	var buf bytes.Buffer
	require.NoError(t, c.EncodeAsPNG(&buf))
	_, err = png.Decode(&buf)
	require.NoError(t, err)
	c.Frames = nil
	require.Error(t, c.EncodeAsPNG(&buf))
}
