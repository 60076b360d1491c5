// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import "github.com/gogpu/wayland/wire"

// Surface is a client-visible drawable. It owns at most one currently
// attached SharedBuffer; attaching a new buffer replaces the previous
// one, it does not compose.
type Surface struct {
	s  *Session
	id uint32
}

// createSurface asks the compositor for a new surface. The object is
// live client-side immediately; wl_surface events (enter/leave) carry
// no state this client acts on and are surfaced at debug level.
func (s *Session) createSurface() (*Surface, error) {
	sf := &Surface{s: s}
	sf.id = s.allocate(func(m *wire.Message) error {
		Logger().Debug("surface event ignored",
			"surface", sf.id, "opcode", m.Opcode)
		return nil
	})
	err := s.send(wire.NewMessage(s.caps[CapCompositor], compositorCreateSurface).
		PutUint32(sf.id))
	if err != nil {
		return nil, err
	}
	return sf, nil
}

// attach sets b as the surface's pending buffer at the given offset
// and marks its region in use by the compositor. Passing nil detaches.
func (sf *Surface) attach(b *SharedBuffer, x, y int32) error {
	var id uint32
	if b != nil {
		id = b.id
	}
	err := sf.s.send(wire.NewMessage(sf.id, surfaceAttach).
		PutUint32(id).
		PutInt32(x).
		PutInt32(y))
	if err != nil {
		return err
	}
	if b != nil {
		b.Region.MarkInUse()
	}
	return nil
}

// damage marks the given rectangle as needing repaint on the next
// commit.
func (sf *Surface) damage(x, y, width, height int32) error {
	return sf.s.send(wire.NewMessage(sf.id, surfaceDamage).
		PutInt32(x).PutInt32(y).PutInt32(width).PutInt32(height))
}

// commit atomically applies the surface's pending state.
func (sf *Surface) commit() error {
	return sf.s.send(wire.NewMessage(sf.id, surfaceCommit))
}
