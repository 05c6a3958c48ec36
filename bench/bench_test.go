package bench

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/edaniels/golog"
	"github.com/google/go-cmp/cmp"
	"github.com/kovidgoyal/depthrgb"
	"github.com/kovidgoyal/depthrgb/codec"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func depth(t *testing.T, rows ...[]uint16) *depthrgb.Depth {
	t.Helper()
	ans, err := depthrgb.NewDepthFromRows(rows)
	require.NoError(t, err)
	return ans
}

// textured is a smooth ramp with noise, similar to a real depth capture.
func textured(w, h int) *depthrgb.Depth {
	r := rand.New(rand.NewPCG(uint64(w), 3))
	ans := depthrgb.NewDepth(image.Rect(0, 0, w, h))
	for y := range h {
		row := ans.Row(y)
		for x := range row {
			row[x] = uint16(200*(x+y) + r.IntN(2000))
		}
	}
	return ans
}

type bad_transcoder struct{ depthrgb.WrapBit }

func (bad_transcoder) ToRGB(d *depthrgb.Depth) *depthrgb.NRGB {
	return depthrgb.NewNRGB(image.Rect(0, 0, d.Rect.Dx()+1, d.Rect.Dy()))
}

type shrinking_codec struct{ codec.PNG }

func (shrinking_codec) Name() string { return "shrinking" }

func (shrinking_codec) Decode(data []byte) (*depthrgb.NRGB, error) {
	return depthrgb.NewNRGB(image.Rect(0, 0, 1, 1)), nil
}

type failing_codec struct{ codec.PNG }

func (failing_codec) Name() string { return "failing" }

func (failing_codec) Encode(*depthrgb.NRGB, int) ([]byte, error) {
	return nil, errors.New("out of cheese")
}

func TestMetrics(t *testing.T) {
	a := depth(t, []uint16{0, 100}, []uint16{65535, 7})
	b := depth(t, []uint16{10, 100}, []uint16{0, 7})
	mae, err := MeanAbsoluteError(a, b)
	require.NoError(t, err)
	require.Equal(t, (10.+65535)/4, mae)
	nmse, err := NormalizedMSE(a, b)
	require.NoError(t, err)
	require.InDelta(t, (math.Pow(10./65535, 2)+1)/4, nmse, 1e-15)

	mae, err = MeanAbsoluteError(a, a)
	require.NoError(t, err)
	require.Zero(t, mae)
	mae, err = MeanAbsoluteError(depthrgb.NewDepth(image.Rectangle{}), depthrgb.NewDepth(image.Rectangle{}))
	require.NoError(t, err)
	require.Zero(t, mae)

	_, err = MeanAbsoluteError(a, depth(t, []uint16{1, 2}))
	require.Error(t, err)

	m, err := MetricByName("nmse")
	require.NoError(t, err)
	v, err := m(a, b)
	require.NoError(t, err)
	require.Equal(t, nmse, v)
	_, err = MetricByName("psnr")
	require.Error(t, err)
}

func TestReconstruct(t *testing.T) {
	d := textured(24, 16)
	for _, name := range depthrgb.DefaultRegistry().Names() {
		tr, err := depthrgb.DefaultRegistry().New(name)
		require.NoError(t, err)
		for _, c := range []codec.Codec{codec.PNG{}, codec.JPEG{}} {
			back, err := Reconstruct(tr, c, d, 50)
			require.NoError(t, err, "%s through %s", name, c.Name())
			require.Equal(t, d.Rect, back.Rect)
		}
	}
	back, err := Reconstruct(depthrgb.WrapBit{}, codec.Zstd{}, d, 3)
	require.NoError(t, err)
	require.Equal(t, d.Pix, back.Pix)
}

func TestReconstructErrors(t *testing.T) {
	d := textured(8, 8)
	var cv *depthrgb.ContractViolationError
	_, err := Reconstruct(bad_transcoder{}, codec.PNG{}, d, 50)
	require.ErrorAs(t, err, &cv)
	require.Equal(t, "ToRGB", cv.Op)

	var ce *codec.Error
	_, err = Reconstruct(depthrgb.Grayscale{}, failing_codec{}, d, 50)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "encode", ce.Op)
	require.Equal(t, "failing", ce.Codec)

	_, err = Reconstruct(depthrgb.Grayscale{}, shrinking_codec{}, d, 50)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "decode", ce.Op)

	_, err = Reconstruct(depthrgb.Grayscale{}, codec.PNG{}, d, 0)
	require.ErrorIs(t, err, codec.ErrInvalidQuality)
}

func TestQualityImprovesFidelity(t *testing.T) {
	d := textured(64, 64)
	score := func(q int) float64 {
		back, err := Reconstruct(depthrgb.Grayscale{}, codec.JPEG{}, d, q)
		require.NoError(t, err)
		ans, err := MeanAbsoluteError(d, back)
		require.NoError(t, err)
		return ans
	}
	require.LessOrEqual(t, score(90), score(10))
}

func TestWrapBitNearLossless(t *testing.T) {
	d := depth(t, []uint16{0, 65535}, []uint16{1, 1140})
	res, err := Run(depthrgb.WrapBit{}, []depthrgb.NamedDepth{{Name: "corners", Depth: d}},
		WithCodec(codec.JPEGLS{}), WithQualities(10, 100))
	require.NoError(t, err)
	require.Zero(t, res["corners"][100])
	require.Greater(t, res["corners"][10], 0.)
}

func TestWrapBitThroughJPEG(t *testing.T) {
	d := depth(t, []uint16{0, 65535}, []uint16{1, 1140})
	res, err := Run(depthrgb.WrapBit{}, []depthrgb.NamedDepth{{Name: "corners", Depth: d}},
		WithMetric(NormalizedMSE), WithQualities(10, 100))
	require.NoError(t, err)
	// chroma subsampling perturbs the low bit planes even at quality 100
	require.Less(t, res["corners"][100], 1e-4)
	require.Greater(t, res["corners"][10], res["corners"][100])
}

func TestRun(t *testing.T) {
	images := []depthrgb.NamedDepth{
		{Name: "a", Depth: textured(16, 8)},
		{Name: "b", Depth: textured(5, 9)},
		{Name: "empty", Depth: depthrgb.NewDepth(image.Rectangle{})},
	}
	res, err := Run(depthrgb.WrapBit{}, images, WithCodec(codec.S2{}), WithLogger(golog.NewTestLogger(t)), WithParallelism(3))
	require.NoError(t, err)
	want := Result{}
	for _, img := range images {
		want[img.Name] = map[int]float64{}
		for _, q := range DefaultQualities {
			want[img.Name][q] = 0
		}
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}

	// results do not depend on the number of workers
	images = images[:2]
	serial, err := Run(depthrgb.Grayscale{}, images, WithParallelism(1), WithMetric(NormalizedMSE))
	require.NoError(t, err)
	parallel, err := Run(depthrgb.Grayscale{}, images, WithMetric(NormalizedMSE))
	require.NoError(t, err)
	require.Equal(t, serial, parallel)
	require.Len(t, serial["a"], len(DefaultQualities))

	res, err = Run(depthrgb.Grayscale{}, nil)
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestRunAborts(t *testing.T) {
	images := []depthrgb.NamedDepth{{Name: "a", Depth: textured(4, 4)}, {Name: "b", Depth: textured(4, 4)}}
	res, err := Run(bad_transcoder{}, images)
	require.Nil(t, res)
	var cv *depthrgb.ContractViolationError
	require.ErrorAs(t, err, &cv)
	require.Contains(t, err.Error(), "a at quality 10")

	res, err = Run(depthrgb.Grayscale{}, images, WithQualities(10, 101))
	require.Nil(t, res)
	require.ErrorIs(t, err, codec.ErrInvalidQuality)

	_, err = Run(depthrgb.Grayscale{}, images, WithCodec(nil))
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	images := []depthrgb.NamedDepth{{Name: "a", Depth: textured(16, 8)}, {Name: "b", Depth: textured(3, 3)}}
	pairs, err := Compare(depthrgb.WrapBit{}, images, 50, WithCodec(codec.LZ4{}))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	for _, img := range images {
		p := pairs[img.Name]
		require.Same(t, img.Depth, p.Original)
		require.Equal(t, img.Depth.Pix, p.Decoded.Pix)
	}
	_, err = Compare(depthrgb.WrapBit{}, images, 0)
	require.ErrorIs(t, err, codec.ErrInvalidQuality)
}
