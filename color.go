// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import "image/color"

// ARGB is a 32-bit color in the byte order shared memory buffers use:
// alpha, red, green, blue.
type ARGB struct {
	A, R, G, B uint8
}

// Color converts ARGB to the standard color.Color interface.
func (c ARGB) Color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) ARGB {
	return ARGB{A: 0xFF, R: r, G: g, B: b}
}

// FromColor converts a standard color.Color to ARGB.
func FromColor(c color.Color) ARGB {
	r, g, b, a := c.RGBA()
	return ARGB{
		A: uint8(a >> 8),
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "AARRGGBB", with optional "#".
func Hex(hex string) ARGB {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var a, r, g, b uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHexByte(hex[0:1], &r)
		parseHexByte(hex[1:2], &g)
		parseHexByte(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		parseHexByte(hex[0:2], &r)
		parseHexByte(hex[2:4], &g)
		parseHexByte(hex[4:6], &b)
	case 8: // AARRGGBB
		parseHexByte(hex[0:2], &a)
		parseHexByte(hex[2:4], &r)
		parseHexByte(hex[4:6], &g)
		parseHexByte(hex[6:8], &b)
	}

	return ARGB{A: uint8(a), R: uint8(r), G: uint8(g), B: uint8(b)}
}

func parseHexByte(s string, out *uint32) {
	var v uint32
	for i := 0; i < len(s); i++ {
		v <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		}
	}
	*out = v
}

// Common colors.
var (
	Black = ARGB{A: 0xFF}
	White = ARGB{A: 0xFF, R: 0xFF, G: 0xFF, B: 0xFF}
	Red   = ARGB{A: 0xFF, R: 0xFF}
	Green = ARGB{A: 0xFF, G: 0xFF}
	Blue  = ARGB{A: 0xFF, B: 0xFF}
)
