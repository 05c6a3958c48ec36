package depthrgb

import (
	"sync"
)

// WrapBit spreads the 16 depth bits over the three channels, favouring the
// high bit planes of each byte. Depth bit i lands in channel i%3 at bit
// position 7-(15-i)/3. Without an intervening lossy step the mapping is an
// exact bit permutation, so ToDepth inverts ToRGB for every input.
type WrapBit struct{}

var _ Transcoder = WrapBit{}

// WrapBitPosition returns the channel (0=R, 1=G, 2=B) and bit position that
// depth bit i is stored in.
func WrapBitPosition(i int) (channel, bit int) {
	return i % 3, 7 - (15-i)/3
}

type wrapbit_tables struct {
	// encode[0] maps the low depth byte, encode[1] the high depth byte, to
	// the R, G, B bits they contribute
	encode [2][256][3]uint8
	// decode[c] maps a byte of channel c to the depth bits it carries
	decode [3][256]uint16
}

var wrapbitTables = sync.OnceValue(func() *wrapbit_tables {
	t := &wrapbit_tables{}
	for i := range 16 {
		c, pos := WrapBitPosition(i)
		half, bit := i/8, i%8
		for v := range 256 {
			if v&(1<<bit) != 0 {
				t.encode[half][v][c] |= 1 << pos
			}
			if v&(1<<pos) != 0 {
				t.decode[c][v] |= 1 << i
			}
		}
	}
	return t
})

func (WrapBit) ToRGB(d *Depth) *NRGB {
	t := wrapbitTables()
	ans := NewNRGB(d.Rect)
	for y := range d.Rect.Dy() {
		drow := ans.Row(y)
		for _, v := range d.Row(y) {
			lo, hi := &t.encode[0][v&0xff], &t.encode[1][v>>8]
			s := drow[0:3:3]
			s[0], s[1], s[2] = lo[0]|hi[0], lo[1]|hi[1], lo[2]|hi[2]
			drow = drow[3:]
		}
	}
	return ans
}

func (WrapBit) ToDepth(rgb *NRGB) *Depth {
	t := wrapbitTables()
	ans := NewDepth(rgb.Rect)
	for y := range rgb.Rect.Dy() {
		row := rgb.Row(y)
		drow := ans.Row(y)
		for x := range drow {
			s := row[3*x : 3*x+3 : 3*x+3]
			drow[x] = t.decode[0][s[0]] | t.decode[1][s[1]] | t.decode[2][s[2]]
		}
	}
	return ans
}
