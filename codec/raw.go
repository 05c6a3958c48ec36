package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/kovidgoyal/depthrgb"
)

// Raw codecs store the image as an 8 byte header (big endian uint32 width
// and height) followed by the compressed, tightly packed R, G, B bytes.
const raw_header_size = 8

func raw_frame(img *depthrgb.NRGB, compress func(pix []byte) ([]byte, error)) ([]byte, error) {
	payload, err := compress(img.ContiguousPix())
	if err != nil {
		return nil, err
	}
	ans := make([]byte, raw_header_size, raw_header_size+len(payload))
	binary.BigEndian.PutUint32(ans, uint32(img.Rect.Dx()))
	binary.BigEndian.PutUint32(ans[4:], uint32(img.Rect.Dy()))
	return append(ans, payload...), nil
}

// raw_unframe rejects headers claiming more than max_ratio decompressed bytes
// per payload byte, so that a corrupt header cannot make decompress allocate
// far more memory than the data could ever expand to.
func raw_unframe(data []byte, max_ratio int, decompress func(payload []byte, size int) ([]byte, error)) (*depthrgb.NRGB, error) {
	if len(data) < raw_header_size {
		return nil, fmt.Errorf("%w: %d bytes is too short for the header", ErrCorrupt, len(data))
	}
	width := int(binary.BigEndian.Uint32(data))
	height := int(binary.BigEndian.Uint32(data[4:]))
	const max_pixels = 1 << 30
	if width > max_pixels || height > max_pixels || width*height > max_pixels {
		return nil, fmt.Errorf("%w: implausible size %dx%d", ErrCorrupt, width, height)
	}
	size := 3 * width * height
	payload := data[raw_header_size:]
	if size > max_ratio*max(1, len(payload)) {
		return nil, fmt.Errorf("%w: %d payload bytes cannot expand to %dx%d", ErrCorrupt, len(payload), width, height)
	}
	pix, err := decompress(payload, size)
	if err != nil {
		return nil, err
	}
	if len(pix) != size {
		return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", ErrCorrupt, len(pix), size)
	}
	return depthrgb.NewNRGBWithContiguousRGBPixels(pix, 0, 0, width, height)
}
