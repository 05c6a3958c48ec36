package depthrgb

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func rows(d *Depth) (ans [][]uint16) {
	for y := range d.Rect.Dy() {
		ans = append(ans, append([]uint16(nil), d.Row(y)...))
	}
	return
}

func TestOrientation(t *testing.T) {
	src, err := NewDepthFromRows([][]uint16{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	for _, tc := range []struct {
		name string
		f    func(*Depth) *Depth
		want [][]uint16
	}{
		{"FlipH", FlipH, [][]uint16{{3, 2, 1}, {6, 5, 4}}},
		{"FlipV", FlipV, [][]uint16{{4, 5, 6}, {1, 2, 3}}},
		{"Rotate180", Rotate180, [][]uint16{{6, 5, 4}, {3, 2, 1}}},
		{"Transpose", Transpose, [][]uint16{{1, 4}, {2, 5}, {3, 6}}},
		{"Transverse", Transverse, [][]uint16{{6, 3}, {5, 2}, {4, 1}}},
		{"Rotate90", Rotate90, [][]uint16{{3, 6}, {2, 5}, {1, 4}}},
		{"Rotate270", Rotate270, [][]uint16{{4, 1}, {5, 2}, {6, 3}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, rows(tc.f(src))); diff != "" {
				t.Fatalf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
	require.Equal(t, rows(src), rows(fixOrientation(src, orientationNormal)))
	require.Equal(t, rows(Rotate90(src)), rows(fixOrientation(src, orientationRotate90)))
}

func TestDepthFromImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0], g.Pix[1] = 7, 255
	d, err := DepthFromImage(g)
	require.NoError(t, err)
	require.Equal(t, []uint16{7, 255}, d.Pix)

	g16 := image.NewGray16(image.Rect(1, 1, 3, 2))
	g16.SetGray16(2, 1, color.Gray16{Y: 0xabcd})
	d, err = DepthFromImage(g16)
	require.NoError(t, err)
	require.Equal(t, image.Rect(1, 1, 3, 2), d.Rect)
	require.Equal(t, uint16(0xabcd), d.DepthAt(2, 1))
	require.Equal(t, uint16(0), d.DepthAt(1, 1))

	_, err = DepthFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.ErrorIs(t, err, ErrNotDepthImage)

	_, err = NewDepthFromRows([][]uint16{{1, 2}, {3}})
	require.Error(t, err)
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	d := random_depth(13, 7, 65535)
	for _, name := range []string{"a.png", "b.tif", "c.TIFF"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(d, path))
			back, err := Open(path)
			require.NoError(t, err)
			require.Equal(t, d.Rect, back.Rect)
			require.Equal(t, d.Pix, back.Pix)
		})
	}
	ramp := NewDepth(image.Rect(0, 0, 64, 64))
	for i := range ramp.Pix {
		ramp.Pix[i] = uint16(i)
	}
	best, stored := filepath.Join(dir, "best.png"), filepath.Join(dir, "stored.png")
	require.NoError(t, Save(ramp, best, PNGCompressionLevel(png.BestCompression)))
	require.NoError(t, Save(ramp, stored, PNGCompressionLevel(png.NoCompression)))
	best_info, err := os.Stat(best)
	require.NoError(t, err)
	stored_info, err := os.Stat(stored)
	require.NoError(t, err)
	require.Less(t, best_info.Size(), stored_info.Size())
	back, err := Open(best)
	require.NoError(t, err)
	require.Equal(t, ramp.Pix, back.Pix)

	require.ErrorIs(t, Save(d, filepath.Join(dir, "x.jpg")), ErrUnsupportedFormat)
	_, err = Open(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	_, err = Decode(&buf)
	require.ErrorIs(t, err, ErrNotDepthImage)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	a, err := NewDepthFromRows([][]uint16{{1, 2}})
	require.NoError(t, err)
	b, err := NewDepthFromRows([][]uint16{{3}, {4}})
	require.NoError(t, err)
	require.NoError(t, Save(b, filepath.Join(dir, "b.tiff")))
	require.NoError(t, Save(a, filepath.Join(dir, "a.png")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	images, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, "a.png", images[0].Name)
	require.Equal(t, "b.tiff", images[1].Name)
	require.Equal(t, [][]uint16{{3}, {4}}, rows(images[1].Depth))

	missing := filepath.Join(dir, "does-not-exist")
	_, err = LoadDir(missing)
	require.ErrorIs(t, err, ErrMissingInput)
	require.Contains(t, err.Error(), missing)
}

func TestFormatFromFilename(t *testing.T) {
	for name, want := range map[string]Format{"x.png": PNG, "x.PNG": PNG, "a/b.tif": TIFF, "c.tiff": TIFF} {
		f, err := FormatFromFilename(name)
		require.NoError(t, err)
		require.Equal(t, want, f, name)
	}
	_, err := FormatFromFilename("x.webp")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Equal(t, "PNG", PNG.String())
}
