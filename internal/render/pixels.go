// Package render converts cell buffers into RGBA pixels.
package render

import "image/color"

// fillBinaryRGBA converts binary cell data (0 dead, non-zero alive) into
// RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA maps cell values through palette. Values past the end of
// the palette use its last entry; an empty palette yields transparent
// pixels.
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

// NeighborPalette shades neighbor counts 0..8 from transparent to a warm
// translucent tint.
func NeighborPalette() []color.RGBA {
	p := make([]color.RGBA, 9)
	for n := range p {
		if n == 0 {
			continue
		}
		p[n] = color.RGBA{R: uint8(20 * n), G: uint8(8 * n), B: 0, A: uint8(18 * n)}
	}
	return p
}
