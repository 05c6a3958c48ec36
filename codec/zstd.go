package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/kovidgoyal/depthrgb"
)

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// A zstd RLE block stores 128 KiB in four bytes.
const zstdMaxRatio = 1 << 16

// Zstd is lossless. Quality maps linearly onto zstd levels 1 to 22.
type Zstd struct{}

func (Zstd) Name() string   { return "zstd" }
func (Zstd) Lossless() bool { return true }

// Level returns the zstd compression level used for quality.
func (Zstd) Level(quality int) int {
	return 1 + (quality-1)*21/99
}

func (c Zstd) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.Level(quality))),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()
	return raw_frame(img, func(pix []byte) ([]byte, error) {
		return encoder.EncodeAll(pix, nil), nil
	})
}

func (Zstd) Decode(data []byte) (*depthrgb.NRGB, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)
	return raw_unframe(data, zstdMaxRatio, func(payload []byte, size int) ([]byte, error) {
		return decoder.DecodeAll(payload, make([]byte, 0, size))
	})
}
