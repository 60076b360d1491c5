// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"fmt"

	"github.com/gogpu/wayland/shm"
	"github.com/gogpu/wayland/wire"
)

// SharedBuffer is a protocol-visible pixel buffer backed by a shared
// memory region. The region outlives every protocol object derived
// from it: the backing descriptor stays open and the mapping stays
// valid until the compositor's release event has been observed and the
// buffer retired.
type SharedBuffer struct {
	Region *shm.Region

	Width  int
	Height int
	Stride int
	Format Format

	id      uint32
	poolID  uint32
	s       *Session
	retired bool
}

// provisionBuffer turns freshly allocated shared memory into a
// protocol buffer: create_pool scoped to exactly size bytes, then
// create_buffer describing the full region at offset 0. The pool
// object is destroyed immediately afterwards; per protocol the buffer
// keeps the pool's storage alive on the compositor side.
func (s *Session) provisionBuffer(width, height int, format Format) (*SharedBuffer, error) {
	if len(s.shmFormats) > 0 && !s.supportsFormat(format) {
		return nil, fmt.Errorf("wayland: compositor does not support %s", format)
	}
	stride := width * format.BytesPerPixel()
	size := stride * height
	region, err := shm.Allocate(size)
	if err != nil {
		return nil, err
	}

	b := &SharedBuffer{
		Region: region,
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		s:      s,
	}
	b.poolID = s.allocate(nil) // wl_shm_pool emits no events
	err = s.send(wire.NewMessage(s.caps[CapShm], shmCreatePool).
		PutUint32(b.poolID).
		PutFd(int(region.File().Fd())).
		PutInt32(int32(size)))
	if err != nil {
		region.Close()
		return nil, err
	}

	b.id = s.allocate(b.event)
	err = s.send(wire.NewMessage(b.poolID, shmPoolCreateBuffer).
		PutUint32(b.id).
		PutInt32(0).
		PutInt32(int32(width)).
		PutInt32(int32(height)).
		PutInt32(int32(stride)).
		PutUint32(uint32(format)))
	if err != nil {
		region.Close()
		return nil, err
	}

	if err := s.send(wire.NewMessage(b.poolID, shmPoolDestroy)); err != nil {
		return nil, err
	}
	Logger().Debug("buffer provisioned",
		"buffer", b.id, "width", width, "height", height,
		"stride", stride, "format", format.String())
	return b, nil
}

func (s *Session) supportsFormat(f Format) bool {
	for _, have := range s.shmFormats {
		if have == f {
			return true
		}
	}
	return false
}

// event handles wl_buffer events. Release means the compositor is done
// reading the region; once a retired buffer is released its backing
// memory can finally go away.
func (b *SharedBuffer) event(m *wire.Message) error {
	if m.Opcode != bufferEventRelease {
		return &ProtocolSequenceError{Object: "wl_buffer", State: "attached", Event: eventName("wl_buffer", m.Opcode)}
	}
	b.Region.MarkReleased()
	Logger().Debug("buffer released", "buffer", b.id)
	if b.retired {
		return b.destroy()
	}
	return nil
}

// retire schedules the buffer for destruction: immediately if the
// compositor has already released it, otherwise as soon as the release
// event arrives. Until then the descriptor and mapping stay intact.
func (b *SharedBuffer) retire() error {
	b.retired = true
	if !b.Region.InUse() {
		return b.destroy()
	}
	return nil
}

func (b *SharedBuffer) destroy() error {
	if err := b.s.send(wire.NewMessage(b.id, bufferDestroy)); err != nil {
		return err
	}
	delete(b.s.handlers, b.id)
	if err := b.Region.Close(); err != nil {
		return err
	}
	return nil
}

// Fill paints every pixel of the buffer with c, honoring the stride.
// Bytes are stored alpha, red, green, blue.
func (b *SharedBuffer) Fill(c ARGB) {
	data := b.Region.Bytes()
	for y := 0; y < b.Height; y++ {
		row := data[y*b.Stride : y*b.Stride+b.Width*4]
		for x := 0; x < b.Width*4; x += 4 {
			row[x+0] = c.A
			row[x+1] = c.R
			row[x+2] = c.G
			row[x+3] = c.B
		}
	}
}

// Canvas returns a draw.Image view of the buffer for arbitrary
// client-side drawing.
func (b *SharedBuffer) Canvas() *Canvas { return &Canvas{buf: b} }
