// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/wayland/wire"
)

// WindowState is the handshake state of a toplevel window. The states
// form a loop, not a one-shot sequence: every configure event restarts
// the cycle from a committed window.
type WindowState int

const (
	// StateCreated: the surface exists, roles not yet requested.
	StateCreated WindowState = iota

	// StateAwaitingConfigure: roles requested, waiting for the
	// compositor's configure. Attaching a buffer now would be a
	// protocol violation; no code path can express it.
	StateAwaitingConfigure

	// StateConfigured: a configure has been acknowledged, content is
	// being produced.
	StateConfigured

	// StateCommitted: content attached and committed. The next
	// configure moves the window back to StateConfigured.
	StateCommitted
)

// String implements fmt.Stringer.
func (s WindowState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateAwaitingConfigure:
		return "awaiting-configure"
	case StateConfigured:
		return "configured"
	case StateCommitted:
		return "committed"
	}
	return "unknown"
}

// Window is a toplevel window: a surface wrapped with window
// semantics. It owns the xdg_surface, xdg_toplevel, and optional
// decoration objects, and drives the configure/ack/attach/commit
// handshake for its surface.
type Window struct {
	s       *Session
	surface *Surface

	xdgSurfaceID uint32
	toplevelID   uint32
	decorationID uint32 // 0 when the compositor offers no manager

	state  WindowState
	title  string
	width  int
	height int

	// Size proposed by the latest toplevel configure, applied when
	// the following xdg_surface configure is acknowledged. Zero means
	// the client picks.
	pendingWidth  int
	pendingHeight int

	background ARGB
	draw       func(*Canvas)
	format     Format

	// Decoration mode in effect, as reported by the compositor.
	decorationMode DecorationMode

	buffer *SharedBuffer
}

// CreateWindow creates a toplevel window. The surface and role objects
// are requested immediately; the window then waits for the first
// configure event, and only the configure handler ever attaches and
// commits content. width and height are the size used when the
// compositor expresses no preference.
//
// The session is a single-window client; a second call fails with
// ErrWindowExists.
func (s *Session) CreateWindow(title string, width, height int, opts ...WindowOption) (*Window, error) {
	if s.window != nil {
		return nil, ErrWindowExists
	}
	o := defaultWindowOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sf, err := s.createSurface()
	if err != nil {
		return nil, err
	}
	w := &Window{
		s:          s,
		surface:    sf,
		state:      StateCreated,
		title:      norm.NFC.String(title),
		width:      width,
		height:     height,
		background: o.background,
		draw:       o.draw,
		format:     o.format,
	}

	w.xdgSurfaceID = s.allocate(w.xdgSurfaceEvent)
	err = s.send(wire.NewMessage(s.caps[CapWmBase], wmBaseGetXdgSurface).
		PutUint32(w.xdgSurfaceID).
		PutUint32(sf.id))
	if err != nil {
		return nil, err
	}

	w.toplevelID = s.allocate(w.toplevelEvent)
	if err := s.send(wire.NewMessage(w.xdgSurfaceID, xdgSurfaceGetToplevel).PutUint32(w.toplevelID)); err != nil {
		return nil, err
	}
	if err := s.send(wire.NewMessage(w.toplevelID, toplevelSetTitle).PutString(w.title)); err != nil {
		return nil, err
	}
	if o.appID != "" {
		if err := s.send(wire.NewMessage(w.toplevelID, toplevelSetAppID).PutString(o.appID)); err != nil {
			return nil, err
		}
	}

	if mgr := s.caps[CapDecorationManager]; mgr != 0 {
		w.decorationID = s.allocate(w.decorationEvent)
		err = s.send(wire.NewMessage(mgr, decorationMgrGetToplevelDecoration).
			PutUint32(w.decorationID).
			PutUint32(w.toplevelID))
		if err != nil {
			return nil, err
		}
		if err := s.send(wire.NewMessage(w.decorationID, decorationSetMode).PutUint32(uint32(o.decoration))); err != nil {
			return nil, err
		}
	} else if o.decoration == DecorationServerSide {
		Logger().Info("server-side decorations unavailable")
	}

	// Commit the bare surface so the compositor sends the first
	// configure. No buffer may be attached yet.
	if err := sf.commit(); err != nil {
		return nil, err
	}
	w.state = StateAwaitingConfigure

	s.window = w
	return w, nil
}

// State returns the window's handshake state.
func (w *Window) State() WindowState { return w.state }

// Size returns the current buffer size.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Title returns the window title as sent to the compositor.
func (w *Window) Title() string { return w.title }

// DecorationMode returns the decoration mode the compositor reported,
// or zero before the first decoration configure event.
func (w *Window) DecorationMode() DecorationMode { return w.decorationMode }

// xdgSurfaceEvent drives the handshake. A configure event must be
// acknowledged with its exact serial before new content is committed;
// the compositor may kill the connection over a missing or stale ack.
func (w *Window) xdgSurfaceEvent(m *wire.Message) error {
	if m.Opcode != xdgSurfaceEventConfigure {
		return &ProtocolSequenceError{Object: "xdg_surface", State: w.state.String(), Event: eventName("xdg_surface", m.Opcode)}
	}
	if w.state == StateCreated {
		return &ProtocolSequenceError{Object: "xdg_surface", State: w.state.String(), Event: "configure"}
	}
	serial, err := m.Uint32()
	if err != nil {
		return err
	}
	Logger().Debug("configure", "serial", serial, "state", w.state.String())

	if err := w.s.send(wire.NewMessage(w.xdgSurfaceID, xdgSurfaceAckConfigure).PutUint32(serial)); err != nil {
		return err
	}
	w.state = StateConfigured

	if w.pendingWidth > 0 && w.pendingHeight > 0 {
		w.width, w.height = w.pendingWidth, w.pendingHeight
	}
	w.pendingWidth, w.pendingHeight = 0, 0

	if err := w.present(); err != nil {
		return err
	}
	w.state = StateCommitted
	return nil
}

// present provisions a buffer for the current size, fills it, and
// performs the attach/commit pair. Only reachable from the configure
// handler, after the ack.
func (w *Window) present() error {
	b, err := w.s.provisionBuffer(w.width, w.height, w.format)
	if err != nil {
		return err
	}
	b.Fill(w.background)
	if w.draw != nil {
		w.draw(b.Canvas())
	}

	if err := w.surface.attach(b, 0, 0); err != nil {
		return err
	}
	if err := w.surface.damage(0, 0, int32(w.width), int32(w.height)); err != nil {
		return err
	}
	if err := w.surface.commit(); err != nil {
		return err
	}

	if old := w.buffer; old != nil {
		if err := old.retire(); err != nil {
			return err
		}
	}
	w.buffer = b
	return nil
}

// toplevelEvent handles xdg_toplevel events. The configure carries the
// compositor's size proposal and window states; the states array has
// no policy in this client and is surfaced, not dropped.
func (w *Window) toplevelEvent(m *wire.Message) error {
	switch m.Opcode {
	case toplevelEventConfigure:
		width, err := m.Int32()
		if err != nil {
			return err
		}
		height, err := m.Int32()
		if err != nil {
			return err
		}
		states, err := m.Array()
		if err != nil {
			return err
		}
		w.pendingWidth, w.pendingHeight = int(width), int(height)
		if len(states) > 0 {
			Logger().Warn("window state change unhandled",
				"states", len(states)/4, "width", width, "height", height)
		}
		return nil
	case toplevelEventClose:
		Logger().Info("compositor requested close")
		return ErrWindowClosed
	}
	Logger().Warn("toplevel event unhandled", "opcode", m.Opcode)
	return nil
}

// decorationEvent observes the decoration mode actually in effect.
// Advisory only; it never blocks the surface handshake.
func (w *Window) decorationEvent(m *wire.Message) error {
	if m.Opcode != decorationEventConfigure {
		return &ProtocolSequenceError{Object: "zxdg_toplevel_decoration_v1", State: w.state.String(), Event: eventName("decoration", m.Opcode)}
	}
	mode, err := m.Uint32()
	if err != nil {
		return err
	}
	w.decorationMode = DecorationMode(mode)
	Logger().Info("decoration mode in effect", "mode", w.decorationMode.String())
	return nil
}
