// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

import (
	"errors"
	"fmt"
)

// Sentinel errors for session lifecycle.
var (
	// ErrSessionClosed is returned from Run when the transport reports
	// end of stream.
	ErrSessionClosed = errors.New("wayland: session closed")

	// ErrWindowClosed is returned from Run when the compositor asks
	// the toplevel window to close.
	ErrWindowClosed = errors.New("wayland: window closed by compositor")
)

// MissingCapabilityError reports that a required global was never
// advertised by the compositor. Fatal at startup, before any surface
// work begins.
type MissingCapabilityError struct {
	Interface string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("wayland: required global %s not advertised", e.Interface)
}

// ProtocolSequenceError reports an event received while the owning
// object is in a state that does not expect it. Continuing after one
// risks undefined compositor behavior, so it is always fatal.
type ProtocolSequenceError struct {
	Object string
	State  string
	Event  string
}

func (e *ProtocolSequenceError) Error() string {
	return fmt.Sprintf("wayland: %s received %s in state %s",
		e.Object, e.Event, e.State)
}

// UnhandledEventError reports a recognized event this client has no
// policy for. It is surfaced instead of silently dropped; whether it
// is fatal depends on the event (removal of a bound global is, a
// window state change is not).
type UnhandledEventError struct {
	Object string
	Event  string
	Detail string
}

func (e *UnhandledEventError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("wayland: unhandled %s event on %s", e.Event, e.Object)
	}
	return fmt.Sprintf("wayland: unhandled %s event on %s: %s",
		e.Event, e.Object, e.Detail)
}

// DisplayError reports a fatal error event from the compositor. The
// connection is unusable afterwards.
type DisplayError struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

func (e *DisplayError) Error() string {
	return fmt.Sprintf("wayland: display error on object %d (code %d): %s",
		e.ObjectID, e.Code, e.Message)
}
