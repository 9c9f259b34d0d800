package render

import (
	"image/color"
	"testing"
)

func TestFillBinaryRGBA(t *testing.T) {
	cells := []uint8{0, 1, 2}
	buf := make([]byte, len(cells)*4)
	fillBinaryRGBA(buf, cells, color.RGBA{R: 255, A: 255}, color.RGBA{B: 10, A: 255})

	want := []byte{0, 0, 10, 255, 255, 0, 0, 255, 255, 0, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestFillPaletteRGBA(t *testing.T) {
	palette := NeighborPalette()
	cells := []uint8{0, 3, 12}
	buf := make([]byte, len(cells)*4)
	fillPaletteRGBA(buf, cells, palette)

	if buf[3] != 0 {
		t.Fatal("zero neighbors should be transparent")
	}
	if buf[4] != palette[3].R || buf[7] != palette[3].A {
		t.Fatalf("count 3 pixel = %v", buf[4:8])
	}
	if buf[8] != palette[8].R {
		t.Fatal("counts past the palette should clamp to the last entry")
	}

	fillPaletteRGBA(buf, cells, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatal("empty palette should clear the buffer")
		}
	}
}
