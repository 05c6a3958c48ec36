package codec

import (
	"fmt"
	"sync"

	"github.com/kovidgoyal/depthrgb"
	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// The first payload byte says whether the block is compressed, lz4 reports
// incompressible input by writing nothing.
const (
	lz4Stored     = 0
	lz4Compressed = 1
)

// An LZ4 match extends by 255 bytes per length byte.
const lz4MaxRatio = 1 << 9

// LZ4 is lossless. Quality up to 50 uses the fast block compressor, above
// that the high compression compressor with a level rising with quality.
type LZ4 struct{}

func (LZ4) Name() string   { return "lz4" }
func (LZ4) Lossless() bool { return true }

func (LZ4) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	return raw_frame(img, func(pix []byte) ([]byte, error) {
		if len(pix) == 0 {
			return nil, nil
		}
		dst := make([]byte, 1+lz4.CompressBlockBound(len(pix)))
		var n int
		var err error
		if quality <= 50 {
			lc := lz4CompressorPool.Get().(*lz4.Compressor)
			defer lz4CompressorPool.Put(lc)
			n, err = lc.CompressBlock(pix, dst[1:])
		} else {
			hc := lz4.CompressorHC{Level: lz4Levels[(quality-51)*len(lz4Levels)/50]}
			n, err = hc.CompressBlock(pix, dst[1:])
		}
		if err != nil {
			return nil, err
		}
		if n == 0 || n >= len(pix) {
			return append([]byte{lz4Stored}, pix...), nil
		}
		dst[0] = lz4Compressed
		return dst[:1+n], nil
	})
}

func (LZ4) Decode(data []byte) (*depthrgb.NRGB, error) {
	return raw_unframe(data, lz4MaxRatio, func(payload []byte, size int) ([]byte, error) {
		if len(payload) == 0 {
			return nil, nil
		}
		switch payload[0] {
		case lz4Stored:
			return payload[1:], nil
		case lz4Compressed:
			buf := make([]byte, size)
			n, err := lz4.UncompressBlock(payload[1:], buf)
			if err != nil {
				return nil, err
			}
			return buf[:n], nil
		}
		return nil, fmt.Errorf("%w: unknown lz4 block type %d", ErrCorrupt, payload[0])
	})
}
