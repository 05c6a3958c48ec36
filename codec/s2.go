package codec

import (
	"github.com/klauspost/compress/s2"
	"github.com/kovidgoyal/depthrgb"
)

// S2 repeat codes describe up to 16 MiB in five bytes.
const s2MaxRatio = 1 << 22

// S2 is lossless. Quality below 34 uses the fast encoder, 34 to 66 the better
// encoder and above that the best encoder.
type S2 struct{}

func (S2) Name() string   { return "s2" }
func (S2) Lossless() bool { return true }

func (S2) Encode(img *depthrgb.NRGB, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}
	encode := s2.EncodeBest
	switch {
	case quality < 34:
		encode = s2.Encode
	case quality < 67:
		encode = s2.EncodeBetter
	}
	return raw_frame(img, func(pix []byte) ([]byte, error) {
		return encode(nil, pix), nil
	})
}

func (S2) Decode(data []byte) (*depthrgb.NRGB, error) {
	return raw_unframe(data, s2MaxRatio, func(payload []byte, size int) ([]byte, error) {
		if n, err := s2.DecodedLen(payload); err != nil {
			return nil, err
		} else if n != size {
			return nil, ErrCorrupt
		}
		return s2.Decode(nil, payload)
	})
}
