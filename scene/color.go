package scene

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/smasonuk/bsptree"
)

// minChannel keeps generated colours visible on a dark background.
const minChannel = 40

// Color derives a stable colour from the exact vertex coordinates of p, so
// the fragments of a split polygon are told apart but keep their colour from
// frame to frame.
func Color(p *bsptree.Polygon) color.RGBA {
	h := xxhash.New()
	var buf [8]byte
	for _, v := range p.Vertices() {
		for _, c := range v {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
			_, _ = h.Write(buf[:])
		}
	}
	sum := h.Sum64()

	return color.RGBA{
		R: max(uint8(sum>>16), minChannel),
		G: max(uint8(sum>>8), minChannel),
		B: max(uint8(sum), minChannel),
		A: 0xff,
	}
}
