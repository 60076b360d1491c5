// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"image/color"
	"testing"
)

// TestHex tests hex color parsing in the supported formats.
func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want ARGB
	}{
		{"#0000FF", Blue},
		{"0000ff", Blue},
		{"#FFF", White},
		{"#FF0000FF", Blue},
		{"#80FF0000", ARGB{A: 0x80, R: 0xFF}},
		{"#000000", Black},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

// TestColorConversions tests the color.Color bridge in both
// directions.
func TestColorConversions(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c.A != 0xFF {
		t.Errorf("RGB alpha = %#x, want 0xFF", c.A)
	}

	std := c.Color()
	r, g, b, a := std.RGBA()
	if uint8(r>>8) != 0x12 || uint8(g>>8) != 0x34 || uint8(b>>8) != 0x56 || a != 0xFFFF {
		t.Errorf("Color() = %v", std)
	}

	back := FromColor(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF})
	if back != c {
		t.Errorf("FromColor = %+v, want %+v", back, c)
	}
}
