package depthrgb

// Grayscale keeps the high byte of every depth sample and replicates it into
// all three channels. The low byte is always lost.
type Grayscale struct{}

var _ Transcoder = Grayscale{}

func (Grayscale) ToRGB(d *Depth) *NRGB {
	ans := NewNRGB(d.Rect)
	for y := range d.Rect.Dy() {
		drow := ans.Row(y)
		for _, v := range d.Row(y) {
			g := uint8(v >> 8)
			s := drow[0:3:3]
			s[0], s[1], s[2] = g, g, g
			drow = drow[3:]
		}
	}
	return ans
}

func (Grayscale) ToDepth(rgb *NRGB) *Depth {
	ans := NewDepth(rgb.Rect)
	for y := range rgb.Rect.Dy() {
		row := rgb.Row(y)
		drow := ans.Row(y)
		for x := range drow {
			s := row[3*x : 3*x+3 : 3*x+3]
			avg := (uint16(s[0]) + uint16(s[1]) + uint16(s[2])) / 3
			drow[x] = avg << 8
		}
	}
	return ans
}
