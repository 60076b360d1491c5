// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wire implements the byte-level Wayland client transport.
//
// The session layer (package wayland) never touches bytes: it consumes
// this package through two operations only, "send request" and
// "receive event", both expressed as [Message] values. A Message is an
// object id, an opcode, a marshalled argument buffer, and any file
// descriptors travelling with it as ancillary data.
//
// # Connection discovery
//
// [Dial] locates the compositor socket the same way libwayland does:
//
//   - $WAYLAND_SOCKET names an already-connected inherited descriptor
//   - $WAYLAND_DISPLAY, joined with $XDG_RUNTIME_DIR unless absolute
//   - the literal name "wayland-0" as a last resort
//
// # Byte order
//
// The Wayland wire format uses the host byte order; the package probes
// it once at init. All 32-bit words, string length prefixes, and the
// message header follow it.
package wire
