// Package bench measures how much depth precision a transcoder loses when its
// RGB output goes through a lossy codec.
package bench

import (
	"github.com/kovidgoyal/depthrgb"
	"github.com/kovidgoyal/depthrgb/codec"
)

// Reconstruct runs d through t.ToRGB, a c.Encode/c.Decode round trip at
// quality and t.ToDepth. This is the only place codec loss is introduced.
// Transcoder outputs of the wrong shape are reported as
// *depthrgb.ContractViolationError, codec failures as *codec.Error.
func Reconstruct(t depthrgb.Transcoder, c codec.Codec, d *depthrgb.Depth, quality int) (*depthrgb.Depth, error) {
	rgb := t.ToRGB(d)
	if err := depthrgb.CheckRGB("ToRGB", d.Rect, rgb); err != nil {
		return nil, err
	}
	data, err := c.Encode(rgb, quality)
	if err != nil {
		return nil, codec.Wrap(c, "encode", err)
	}
	decoded, err := c.Decode(data)
	if err != nil {
		return nil, codec.Wrap(c, "decode", err)
	}
	if decoded == nil || decoded.Rect.Size() != rgb.Rect.Size() {
		var got any
		if decoded != nil {
			got = decoded.Rect.Size()
		}
		return nil, codec.Wrap(c, "decode", &sizeMismatchError{want: rgb.Rect.Size(), got: got})
	}
	ans := t.ToDepth(decoded)
	if err := depthrgb.CheckDepth("ToDepth", decoded.Rect, ans); err != nil {
		return nil, err
	}
	return ans, nil
}
