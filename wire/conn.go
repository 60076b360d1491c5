// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wire

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// Environment variables consulted by Dial, in order.
const (
	// EnvSocket names an inherited, already-connected socket fd.
	EnvSocket = "WAYLAND_SOCKET"

	// EnvDisplay names the compositor socket, relative to
	// EnvRuntimeDir unless it is an absolute path.
	EnvDisplay = "WAYLAND_DISPLAY"

	// EnvRuntimeDir is the directory compositor sockets live in.
	EnvRuntimeDir = "XDG_RUNTIME_DIR"

	// FallbackDisplay is used when EnvDisplay is unset.
	FallbackDisplay = "wayland-0"
)

// ErrNoRuntimeDir is returned by Dial when neither WAYLAND_SOCKET nor
// XDG_RUNTIME_DIR is set, leaving no way to locate the compositor.
var ErrNoRuntimeDir = errors.New("wire: XDG_RUNTIME_DIR not set")

// maxFdsPerMessage bounds the ancillary buffer on receive. libwayland
// uses 28; no core or xdg-shell event carries more than one.
const maxFdsPerMessage = 28

// Conn is a message-level connection to a Wayland compositor.
//
// Conn is not safe for concurrent use; the session layer owns it from
// a single goroutine, matching the protocol's single-dispatcher model.
type Conn struct {
	uc     *net.UnixConn
	header [8]byte

	// fds received with ancillary data but not yet claimed by a
	// message body read.
	pending []int
}

// Dial connects to the compositor named by the environment. See the
// package documentation for the discovery order.
func Dial() (*Conn, error) {
	if v := os.Getenv(EnvSocket); v != "" {
		fd, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("wire: bad %s %q: %w", EnvSocket, v, err)
		}
		// The inherited fd must not leak into children.
		unix.CloseOnExec(fd)
		f := os.NewFile(uintptr(fd), "wayland-socket")
		defer f.Close()
		c, err := net.FileConn(f)
		if err != nil {
			return nil, fmt.Errorf("wire: adopt %s: %w", EnvSocket, err)
		}
		uc, ok := c.(*net.UnixConn)
		if !ok {
			c.Close()
			return nil, fmt.Errorf("wire: %s is not a unix socket", EnvSocket)
		}
		os.Unsetenv(EnvSocket)
		return NewConn(uc), nil
	}

	name := os.Getenv(EnvDisplay)
	if name == "" {
		name = FallbackDisplay
	}
	if !filepath.IsAbs(name) {
		dir := os.Getenv(EnvRuntimeDir)
		if dir == "" {
			return nil, ErrNoRuntimeDir
		}
		name = filepath.Join(dir, name)
	}
	uc, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: name, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("wire: connect %s: %w", name, err)
	}
	return NewConn(uc), nil
}

// NewConn wraps an already-connected unix socket.
func NewConn(uc *net.UnixConn) *Conn {
	return &Conn{uc: uc}
}

// Send writes one request. Attached file descriptors are sent as
// SCM_RIGHTS ancillary data on the same write as the message bytes, so
// the compositor receives them with this message and not a later one.
func (c *Conn) Send(m *Message) error {
	buf := make([]byte, 8, m.size())
	byteOrder.PutUint32(buf[0:], m.Object)
	byteOrder.PutUint32(buf[4:], uint32(m.size())<<16|uint32(m.Opcode))
	buf = append(buf, m.body...)

	if len(m.fds) == 0 {
		if _, err := c.uc.Write(buf); err != nil {
			return fmt.Errorf("wire: send: %w", err)
		}
		return nil
	}
	oob := unix.UnixRights(m.fds...)
	if _, _, err := c.uc.WriteMsgUnix(buf, oob, nil); err != nil {
		return fmt.Errorf("wire: send: %w", err)
	}
	return nil
}

// Recv blocks until one event is available and returns it. Descriptors
// arriving as ancillary data are attached to the returned message.
func (c *Conn) Recv() (*Message, error) {
	if err := c.readFull(c.header[:]); err != nil {
		return nil, fmt.Errorf("wire: read header: %w", err)
	}
	object := byteOrder.Uint32(c.header[0:])
	word := byteOrder.Uint32(c.header[4:])
	size := int(word >> 16)
	if size < 8 {
		return nil, fmt.Errorf("wire: header declares size %d", size)
	}
	m := &Message{
		Object: object,
		Opcode: uint16(word & 0xFFFF),
		body:   make([]byte, size-8),
	}
	if err := c.readFull(m.body); err != nil {
		return nil, fmt.Errorf("wire: read body: %w", err)
	}
	m.fds, c.pending = c.pending, nil
	return m, nil
}

// Close closes the underlying socket.
func (c *Conn) Close() error { return c.uc.Close() }

// readFull fills buf, collecting any ancillary descriptors that arrive
// interleaved with the stream into c.pending.
func (c *Conn) readFull(buf []byte) error {
	oob := make([]byte, unix.CmsgSpace(maxFdsPerMessage*4))
	for len(buf) > 0 {
		n, oobn, _, _, err := c.uc.ReadMsgUnix(buf, oob)
		if err != nil {
			return err
		}
		if oobn > 0 {
			fds, err := parseRights(oob[:oobn])
			if err != nil {
				return err
			}
			c.pending = append(c.pending, fds...)
		}
		buf = buf[n:]
	}
	return nil
}

func parseRights(oob []byte) ([]int, error) {
	cmsgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, fmt.Errorf("wire: parse control message: %w", err)
	}
	var fds []int
	for _, cm := range cmsgs {
		got, err := unix.ParseUnixRights(&cm)
		if err != nil {
			return nil, fmt.Errorf("wire: parse SCM_RIGHTS: %w", err)
		}
		for _, fd := range got {
			unix.CloseOnExec(fd)
		}
		fds = append(fds, got...)
	}
	return fds, nil
}
