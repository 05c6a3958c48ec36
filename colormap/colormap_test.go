package colormap

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestLabToXYZ(t *testing.T) {
	X, Y, Z := lab_to_xyz(100, 0, 0)
	require.InDeltaSlice(t, whiteD50[:], []float64{X, Y, Z}, 1e-12)
	X, Y, Z = lab_to_xyz(0, 0, 0)
	require.InDeltaSlice(t, []float64{0, 0, 0}, []float64{X, Y, Z}, 1e-12)
	// the linear segment below the cube root knee
	_, Y, _ = lab_to_xyz(5, 0, 0)
	require.InDelta(t, 5/903.2963, Y, 1e-6)
}

func TestLabToSRGB(t *testing.T) {
	for _, tc := range []struct {
		name    string
		L, a, b float64
	}{
		{"neutral gray", 50, 0, 0},
		{"vivid warm", 60, 80, 60},
		{"out of gamut", 50, 120, 120},
		{"very dark saturated", 5, 60, -40},
		{"very bright saturated", 99, -80, 90},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := LabToSRGB(tc.L, tc.a, tc.b)
			for _, c := range []float64{r, g, b} {
				require.GreaterOrEqual(t, c, 0.)
				require.LessOrEqual(t, c, 1.)
			}
		})
	}
	// D50 white maps to sRGB white
	r, g, b := LabToSRGB(100, 0, 0)
	require.InDeltaSlice(t, []float64{1, 1, 1}, []float64{r, g, b}, 1e-3)
	// gray stays gray
	r, g, b = LabToSRGB(50, 0, 0)
	require.InDelta(t, r, g, 1e-3)
	require.InDelta(t, g, b, 1e-3)
}

func luminance(r, g, b uint8) float64 {
	lin := func(c uint8) float64 {
		x := float64(c) / 255
		if x <= 0.04045 {
			return x / 12.92
		}
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}

func TestRampIsMonotonicInLightness(t *testing.T) {
	prev := -1.0
	for i := range 256 {
		y := luminance(Ramp8(uint8(i)))
		require.Greater(t, y, prev-5e-3, "position: %d", i)
		prev = max(prev, y)
	}
	require.Less(t, luminance(Ramp8(0)), luminance(Ramp8(255)))
}

func TestRamp(t *testing.T) {
	for _, tc := range []struct {
		t float64
		i uint8
	}{{0, 0}, {1, 255}, {-3, 0}, {7, 255}, {0.5, 128}} {
		r, g, b := Ramp(tc.t)
		r8, g8, b8 := Ramp8(tc.i)
		require.Equal(t, [3]uint8{r8, g8, b8}, [3]uint8{r, g, b}, "t: %v", tc.t)
	}
	L, a, b := RampLab(0)
	require.Equal(t, rampMinL, L)
	require.InDelta(t, 0, a, 1e-12)
	require.InDelta(t, 0, b, 1e-12)
}
