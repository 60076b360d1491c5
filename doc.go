// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wayland is a pure Go Wayland client session driver for
// shared-memory presentation.
//
// # Overview
//
// The package drives the client side of a Wayland session up to a
// presented window: it discovers and binds the compositor's globals,
// provisions shared-memory pixel buffers, and runs the xdg-shell
// configure/ack/commit handshake plus the ping/pong liveness exchange.
// It is the presentation companion to the GoGPU ecosystem for
// compositors reached over wl_shm; GPU-backed buffers are out of scope.
//
// # Quick Start
//
//	conn, err := wire.Dial()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := wayland.Connect(conn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	_, err = s.CreateWindow("Hello, world!", 500, 500,
//	    wayland.WithBackground(wayland.Blue))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(s.Run())
//
// # Architecture
//
// The module is organized into:
//   - Public API: Session, Window, SharedBuffer, Canvas, Registry
//   - wire: the byte-level transport (unix socket, fd passing)
//   - shm: anonymous shared memory allocation and lifetime tracking
//
// Everything runs on the goroutine that calls Run: one blocking
// receive, one synchronous dispatch, repeated until a fatal error.
// Handlers therefore need no locking, and responses (configure acks,
// pongs) go out in the order their events arrived.
package wayland
