package colormap

import (
	"math"
)

// Conversions from CIE L*a*b* (D50) to sRGB (D65). Chromatic adaptation
// (Bradford) is fused with the XYZ to linear sRGB matrix at init time. Colors
// outside the sRGB cube are brought in by scaling chroma towards the neutral
// axis at constant lightness.

type vec3 [3]float64
type mat3 [3][3]float64

// Note that whiteD50 uses Z value from ICC spec rather that CIE spec.
var (
	whiteD50 = vec3{0.96422, 1.00000, 0.82491}
	whiteD65 = vec3{0.95047, 1.00000, 1.08883}
)

var (
	bradford = mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	invBradford = mat3{
		{0.9869929, -0.1470543, 0.1599627},
		{0.4323053, 0.5183603, 0.0492912},
		{-0.0085287, 0.0400428, 0.9684867},
	}
	srgbFromXYZ = mat3{
		{3.2406, -1.5372, -0.4986},
		{-0.9689, 1.8758, 0.0415},
		{0.0557, -0.2040, 1.0570},
	}
)

var xyzD50ToLinearSRGB mat3

func init() {
	xyzD50ToLinearSRGB = mul(srgbFromXYZ, adaptation(whiteD50, whiteD65))
}

// LabToSRGB converts a D50 Lab color to gamma encoded sRGB in [0,1],
// desaturating out of gamut colors.
func LabToSRGB(L, a, b float64) (r, g, bl float64) {
	r, g, bl = lab_to_srgb_unmapped(L, a, b)
	if in_gamut(r, g, bl) {
		return clamp01(r), clamp01(g), clamp01(bl)
	}
	lo, hi := 0.0, 1.0
	fr, fg, fb := lab_to_srgb_unmapped(L, 0, 0)
	for range 24 {
		mid := (lo + hi) / 2
		r0, g0, b0 := lab_to_srgb_unmapped(L, a*mid, b*mid)
		if in_gamut(r0, g0, b0) {
			fr, fg, fb = r0, g0, b0
			lo = mid
		} else {
			hi = mid
		}
	}
	return clamp01(fr), clamp01(fg), clamp01(fb)
}

func lab_to_srgb_unmapped(L, a, b float64) (r, g, bl float64) {
	X, Y, Z := lab_to_xyz(L, a, b)
	rl, gl, blin := apply(xyzD50ToLinearSRGB, vec3{X, Y, Z})
	return compand(rl), compand(gl), compand(blin)
}

func finv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

// lab_to_xyz converts D50 Lab to XYZ relative to the D50 white point (Y=1).
func lab_to_xyz(L, a, b float64) (X, Y, Z float64) {
	fy := (L + 16.0) / 116.0
	fx := fy + (a / 500.0)
	fz := fy - (b / 200.0)
	return finv(fx) * whiteD50[0], finv(fy) * whiteD50[1], finv(fz) * whiteD50[2]
}

func compand(c float64) float64 {
	if c <= 0 {
		return c
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func in_gamut(r, g, b float64) bool {
	const eps = 1e-12
	return r >= -eps && g >= -eps && b >= -eps && r <= 1+eps && g <= 1+eps && b <= 1+eps
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

func mul(a, b mat3) (out mat3) {
	for i := range 3 {
		for j := range 3 {
			for k := range 3 {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

func apply(m mat3, v vec3) (x, y, z float64) {
	x = m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2]
	y = m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2]
	z = m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2]
	return
}

// adaptation builds the Bradford matrix adapting XYZ from src to dst white.
func adaptation(src, dst vec3) mat3 {
	sl, sm, ss := apply(bradford, src)
	dl, dm, ds := apply(bradford, dst)
	diag := mat3{
		{dl / sl, 0, 0},
		{0, dm / sm, 0},
		{0, 0, ds / ss},
	}
	return mul(invBradford, mul(diag, bradford))
}
