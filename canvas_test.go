// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/wayland/shm"
)

// testBuffer builds a SharedBuffer over raw shared memory without a
// session, for exercising the pixel paths alone.
func testBuffer(t *testing.T, w, h int) *SharedBuffer {
	t.Helper()
	region, err := shm.Allocate(w * h * 4)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	t.Cleanup(func() { region.Close() })
	return &SharedBuffer{
		Region: region,
		Width:  w,
		Height: h,
		Stride: w * 4,
		Format: FormatARGB8888,
	}
}

// TestCanvasSetAt verifies Set writes the alpha, red, green, blue
// byte layout and At reads it back.
func TestCanvasSetAt(t *testing.T) {
	c := testBuffer(t, 4, 4).Canvas()

	c.Set(2, 1, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF})

	d := c.buf.Region.Bytes()
	i := 1*c.buf.Stride + 2*4
	if d[i] != 0xFF || d[i+1] != 0x11 || d[i+2] != 0x22 || d[i+3] != 0x33 {
		t.Errorf("bytes at (2,1) = % x, want ff 11 22 33", d[i:i+4])
	}

	got := c.At(2, 1).(color.RGBA)
	if got != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}) {
		t.Errorf("At(2,1) = %+v", got)
	}

	// Out of bounds writes are dropped, reads return zero.
	c.Set(-1, 0, color.RGBA{R: 0xFF, A: 0xFF})
	c.Set(4, 4, color.RGBA{R: 0xFF, A: 0xFF})
	if got := c.At(-1, 0).(color.RGBA); got != (color.RGBA{}) {
		t.Errorf("At(-1,0) = %+v, want zero", got)
	}
}

// TestCanvasBlitRGBA verifies the fast same-size path converts RGBA
// into the buffer's byte order.
func TestCanvasBlitRGBA(t *testing.T) {
	c := testBuffer(t, 2, 2).Canvas()

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF})
	src.SetRGBA(1, 1, color.RGBA{B: 0xFF, A: 0xFF})

	c.BlitRGBA(src)

	d := c.buf.Region.Bytes()
	if d[0] != 0xFF || d[1] != 0xAA || d[2] != 0xBB || d[3] != 0xCC {
		t.Errorf("pixel (0,0) = % x, want ff aa bb cc", d[:4])
	}
	i := 1*c.buf.Stride + 1*4
	if d[i] != 0xFF || d[i+1] != 0x00 || d[i+2] != 0x00 || d[i+3] != 0xFF {
		t.Errorf("pixel (1,1) = % x, want ff 00 00 ff", d[i:i+4])
	}
}

// TestCanvasBlitRGBAScales verifies the size-mismatch path scales the
// source over the whole canvas.
func TestCanvasBlitRGBAScales(t *testing.T) {
	c := testBuffer(t, 4, 4).Canvas()

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, color.RGBA{G: 0x80, A: 0xFF})
		}
	}

	c.BlitRGBA(src)

	for _, p := range [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		got := c.At(p[0], p[1]).(color.RGBA)
		if got.A != 0xFF || got.G != 0x80 || got.R != 0 || got.B != 0 {
			t.Errorf("scaled pixel (%d,%d) = %+v", p[0], p[1], got)
		}
	}
}
