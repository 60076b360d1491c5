// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/wayland/wire"
)

// Conn is the message-level transport the session drives. *wire.Conn
// implements it; tests substitute a scripted fake.
type Conn interface {
	Send(*wire.Message) error
	Recv() (*wire.Message, error)
	Close() error
}

// ErrWindowExists is returned by CreateWindow when the session already
// owns a window. This is a single-window client.
var ErrWindowExists = errors.New("wayland: session already owns a window")

// handler consumes events addressed to one protocol object.
type handler func(*wire.Message) error

// Session owns a connection to the compositor and every protocol
// object derived from it. All methods must be called from the single
// goroutine that runs the event loop; between events all handling is
// synchronous, so no internal locking exists.
type Session struct {
	conn     Conn
	registry *Registry

	nextID   uint32
	handlers map[uint32]handler

	registryID uint32
	caps       map[Capability]uint32 // capability -> bound object id
	boundNames map[uint32]Capability // global name -> bound capability

	// Pixel formats the compositor advertised on wl_shm.
	shmFormats []Format

	window *Window
}

// Connect performs the startup sequence over an established transport:
// get_registry, one blocking roundtrip to observe and bind the
// advertised globals, a required-capability check, and a second
// roundtrip so every bind acknowledgment and immediate capability
// event (wl_shm formats) has been processed before the session is
// handed to the caller. The ordering is a protocol requirement, not an
// optimization: a capability must not be used before its bind has been
// seen by the compositor.
func Connect(conn Conn) (*Session, error) {
	s := &Session{
		conn:       conn,
		registry:   newRegistry(),
		nextID:     displayID + 1,
		handlers:   make(map[uint32]handler),
		caps:       make(map[Capability]uint32),
		boundNames: make(map[uint32]Capability),
	}
	s.handlers[displayID] = s.displayEvent

	s.registryID = s.allocate(s.registryEvent)
	if err := s.send(wire.NewMessage(displayID, displayGetRegistry).PutUint32(s.registryID)); err != nil {
		return nil, err
	}
	if err := s.Roundtrip(); err != nil {
		return nil, fmt.Errorf("wayland: initial roundtrip: %w", err)
	}

	for _, cap := range []Capability{CapCompositor, CapShm, CapWmBase} {
		if s.caps[cap] == 0 {
			return nil, &MissingCapabilityError{Interface: cap.String()}
		}
	}
	if s.caps[CapDecorationManager] == 0 {
		Logger().Info("compositor offers no decoration manager")
	}

	if err := s.Roundtrip(); err != nil {
		return nil, fmt.Errorf("wayland: bind roundtrip: %w", err)
	}
	return s, nil
}

// Registry returns the observed global set.
func (s *Session) Registry() *Registry { return s.registry }

// ShmFormats returns the pixel formats the compositor advertised.
func (s *Session) ShmFormats() []Format {
	out := make([]Format, len(s.shmFormats))
	copy(out, s.shmFormats)
	return out
}

// Close closes the transport.
func (s *Session) Close() error { return s.conn.Close() }

// Run blocks in the receive-dispatch cycle until a fatal error. It
// never returns nil: a compositor-initiated window close surfaces as
// ErrWindowClosed, end of stream as ErrSessionClosed, everything else
// as the dispatch error that stopped the loop. There is no retry
// policy; this is deliberately fail-fast for a single-window client.
func (s *Session) Run() error {
	for {
		m, err := s.conn.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrSessionClosed
			}
			return fmt.Errorf("wayland: receive: %w", err)
		}
		if err := s.dispatch(m); err != nil {
			return err
		}
	}
}

// Roundtrip issues wl_display.sync and dispatches events in order
// until the matching callback fires, guaranteeing the compositor has
// processed everything sent before it.
func (s *Session) Roundtrip() error {
	done := false
	cb := s.allocate(func(m *wire.Message) error {
		if m.Opcode != callbackEventDone {
			return &ProtocolSequenceError{Object: "wl_callback", State: "pending", Event: eventName("wl_callback", m.Opcode)}
		}
		done = true
		return nil
	})
	if err := s.send(wire.NewMessage(displayID, displaySync).PutUint32(cb)); err != nil {
		return err
	}
	for !done {
		m, err := s.conn.Recv()
		if err != nil {
			return fmt.Errorf("roundtrip receive: %w", err)
		}
		if err := s.dispatch(m); err != nil {
			return err
		}
	}
	// done is the callback's only event; the object is dead now.
	delete(s.handlers, cb)
	return nil
}

// allocate reserves a client-side object id and installs its handler.
// Objects with no events get a surfacing handler rather than none, so
// a misdirected event is observable instead of silently dropped.
func (s *Session) allocate(h handler) uint32 {
	id := s.nextID
	s.nextID++
	if h == nil {
		h = func(m *wire.Message) error {
			Logger().Warn("event on event-less object",
				"object", m.Object, "opcode", m.Opcode)
			return nil
		}
	}
	s.handlers[id] = h
	return id
}

func (s *Session) send(m *wire.Message) error {
	if err := s.conn.Send(m); err != nil {
		return fmt.Errorf("wayland: send to object %d: %w", m.Object, err)
	}
	return nil
}

// dispatch routes one event to its object's handler. Events addressed
// to an id the client no longer tracks are legal (they can be in
// flight when an object dies) and are surfaced at warn level.
func (s *Session) dispatch(m *wire.Message) error {
	h, ok := s.handlers[m.Object]
	if !ok {
		Logger().Warn("event for unknown object",
			"object", m.Object, "opcode", m.Opcode)
		return nil
	}
	return h(m)
}

// displayEvent handles wl_display: fatal protocol errors and object id
// retirement.
func (s *Session) displayEvent(m *wire.Message) error {
	switch m.Opcode {
	case displayEventError:
		objectID, err := m.Uint32()
		if err != nil {
			return err
		}
		code, err := m.Uint32()
		if err != nil {
			return err
		}
		msg, err := m.String()
		if err != nil {
			return err
		}
		return &DisplayError{ObjectID: objectID, Code: code, Message: msg}
	case displayEventDeleteID:
		id, err := m.Uint32()
		if err != nil {
			return err
		}
		delete(s.handlers, id)
		Logger().Debug("object id retired", "object", id)
		return nil
	}
	return &ProtocolSequenceError{Object: "wl_display", State: "connected", Event: eventName("wl_display", m.Opcode)}
}

// registryEvent handles wl_registry: global advertisements and
// removals. Recognized interfaces are bound on sight with the clamped
// version; unknown interfaces are recorded and explicitly ignored.
func (s *Session) registryEvent(m *wire.Message) error {
	switch m.Opcode {
	case registryEventGlobal:
		name, err := m.Uint32()
		if err != nil {
			return err
		}
		iface, err := m.String()
		if err != nil {
			return err
		}
		version, err := m.Uint32()
		if err != nil {
			return err
		}
		g := Global{Name: name, Interface: iface, Version: version}
		s.registry.observe(g)

		cap, ok := capabilityFor(iface)
		if !ok {
			Logger().Debug("ignoring global",
				"interface", iface, "name", name, "version", version)
			return nil
		}
		return s.bindGlobal(cap, g)

	case registryEventGlobalRemove:
		name, err := m.Uint32()
		if err != nil {
			return err
		}
		g, known := s.registry.remove(name)
		if cap, bound := s.boundNames[name]; bound {
			// No degrade path exists for losing a capability the
			// session is built on; fail fast.
			return &UnhandledEventError{
				Object: "wl_registry",
				Event:  "global_remove",
				Detail: fmt.Sprintf("bound global %s (name %d) removed", cap, name),
			}
		}
		if known {
			Logger().Debug("unused global removed",
				"interface", g.Interface, "name", name)
		} else {
			Logger().Debug("removal of unobserved global", "name", name)
		}
		return nil
	}
	return &ProtocolSequenceError{Object: "wl_registry", State: "bound", Event: eventName("wl_registry", m.Opcode)}
}

// bindGlobal instantiates a local handle for an advertised global.
// The handle is live client-side as soon as the request is issued; the
// roundtrip in Connect guarantees the compositor has seen the bind
// before the handle is used.
func (s *Session) bindGlobal(cap Capability, g Global) error {
	if s.caps[cap] != 0 {
		// Re-advertisement of a bound interface; keep the original
		// binding, capabilities are bound once for the session's life.
		Logger().Debug("ignoring re-advertisement of bound global",
			"interface", g.Interface, "name", g.Name)
		return nil
	}
	id := s.allocate(s.capabilityEvent(cap))
	version := bindVersion(cap, g)
	err := s.send(wire.NewMessage(s.registryID, registryBind).
		PutUint32(g.Name).
		PutString(g.Interface).
		PutUint32(version).
		PutUint32(id))
	if err != nil {
		return err
	}
	s.caps[cap] = id
	s.boundNames[g.Name] = cap
	Logger().Info("bound global",
		"interface", g.Interface, "version", version, "object", id)
	return nil
}

// capabilityEvent returns the event handler for a bound capability.
func (s *Session) capabilityEvent(cap Capability) handler {
	switch cap {
	case CapShm:
		return s.shmEvent
	case CapWmBase:
		return s.wmBaseEvent
	}
	// wl_compositor and zxdg_decoration_manager_v1 emit no events.
	return func(m *wire.Message) error {
		Logger().Warn("unexpected event on capability",
			"capability", cap.String(), "opcode", m.Opcode)
		return nil
	}
}

// shmEvent records the pixel formats the compositor supports.
func (s *Session) shmEvent(m *wire.Message) error {
	if m.Opcode != shmEventFormat {
		return &ProtocolSequenceError{Object: ifaceShm, State: "bound", Event: eventName(ifaceShm, m.Opcode)}
	}
	v, err := m.Uint32()
	if err != nil {
		return err
	}
	s.shmFormats = append(s.shmFormats, Format(v))
	Logger().Debug("shm format advertised", "format", Format(v).String())
	return nil
}

// wmBaseEvent services the liveness check. The pong must go out
// immediately with the ping's serial, regardless of any pending
// surface work; the compositor treats a late answer as a hang.
func (s *Session) wmBaseEvent(m *wire.Message) error {
	if m.Opcode != wmBaseEventPing {
		return &ProtocolSequenceError{Object: ifaceWmBase, State: "bound", Event: eventName(ifaceWmBase, m.Opcode)}
	}
	serial, err := m.Uint32()
	if err != nil {
		return err
	}
	Logger().Debug("ping", "serial", serial)
	return s.send(wire.NewMessage(s.caps[CapWmBase], wmBasePong).PutUint32(serial))
}

// eventName labels an event opcode for error messages.
func eventName(iface string, opcode uint16) string {
	return fmt.Sprintf("%s@%d", iface, opcode)
}
