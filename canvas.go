// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Canvas exposes a shared buffer as a draw.Image so callers can use
// the standard image pipeline to produce window content. Writes go
// straight into the mapped region; the caller must only draw between
// a release and the next attach (the window's draw callback runs at
// exactly that point).
type Canvas struct {
	buf *SharedBuffer
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.buf.Width, c.buf.Height)
}

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	if x < 0 || x >= c.buf.Width || y < 0 || y >= c.buf.Height {
		return color.RGBA{}
	}
	d := c.buf.Region.Bytes()
	i := y*c.buf.Stride + x*4
	return color.RGBA{A: d[i], R: d[i+1], G: d[i+2], B: d[i+3]}
}

// Set implements draw.Image.
func (c *Canvas) Set(x, y int, col color.Color) {
	if x < 0 || x >= c.buf.Width || y < 0 || y >= c.buf.Height {
		return
	}
	v := color.RGBAModel.Convert(col).(color.RGBA)
	d := c.buf.Region.Bytes()
	i := y*c.buf.Stride + x*4
	d[i+0] = v.A
	d[i+1] = v.R
	d[i+2] = v.G
	d[i+3] = v.B
}

// Fill paints the whole canvas with c.
func (c *Canvas) Fill(col ARGB) { c.buf.Fill(col) }

// BlitRGBA copies src into the canvas, converting to the buffer's
// ARGB byte layout. When the sizes differ the source is scaled with
// nearest-neighbor interpolation; window content produced at one
// configure size therefore survives a resize until the caller redraws.
func (c *Canvas) BlitRGBA(src *image.RGBA) {
	if src.Bounds().Dx() == c.buf.Width && src.Bounds().Dy() == c.buf.Height {
		d := c.buf.Region.Bytes()
		for y := 0; y < c.buf.Height; y++ {
			si := src.PixOffset(src.Bounds().Min.X, src.Bounds().Min.Y+y)
			di := y * c.buf.Stride
			for x := 0; x < c.buf.Width; x++ {
				d[di+0] = src.Pix[si+3]
				d[di+1] = src.Pix[si+0]
				d[di+2] = src.Pix[si+1]
				d[di+3] = src.Pix[si+2]
				si += 4
				di += 4
			}
		}
		return
	}
	xdraw.NearestNeighbor.Scale(c, c.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}
