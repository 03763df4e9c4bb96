// Package render turns fire grids into images: the colour palette shared by
// every output, labelled frames and the frame capture writer.
package render

import (
	"image/color"

	"firespread/internal/fire"
)

// Palette maps each cell state to its display colour, indexed by state value.
var Palette = []color.RGBA{
	fire.Empty:   {R: 0x22, G: 0x8b, B: 0x22, A: 0xff},
	fire.Burning: {R: 0xe0, G: 0x1e, B: 0x1e, A: 0xff},
	fire.Burned:  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
}

// FillRGBA converts cell states into RGBA pixels in buf, one pixel per cell.
func FillRGBA(buf []byte, cells []uint8) {
	fillPaletteRGBA(buf, cells, Palette)
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last colour. When the palette is
// empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
