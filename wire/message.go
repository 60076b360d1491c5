// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// byteOrder is the host byte order, probed once at init. The Wayland
// wire format is host-endian, not network-endian.
var byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
} = binary.LittleEndian

func init() {
	n := uint32(1)
	b := (*[4]byte)(unsafe.Pointer(&n))
	if b[0] == 0 {
		byteOrder = binary.BigEndian
	}
}

// Errors reported while reading message arguments.
var (
	// ErrTruncated is returned when an argument read runs past the end
	// of the message body.
	ErrTruncated = errors.New("wire: truncated message body")

	// ErrBadString is returned when a string argument is not
	// NUL-terminated or its padded length disagrees with the body.
	ErrBadString = errors.New("wire: malformed string argument")

	// ErrNoFd is returned when a file descriptor argument is requested
	// but no descriptor arrived with the message.
	ErrNoFd = errors.New("wire: no file descriptor attached")
)

// Fixed is a signed 24.8 fixed-point number, the wire representation
// of fractional coordinates.
type Fixed int32

// FixedFromFloat converts a float64 to 24.8 fixed point.
func FixedFromFloat(v float64) Fixed {
	return Fixed(math.Round(v * 256))
}

// Float returns the value as a float64.
func (f Fixed) Float() float64 { return float64(f) / 256 }

// Int returns the integer part, truncated toward zero.
func (f Fixed) Int() int { return int(f / 256) }

// Message is a single protocol message: one request (client to server)
// or one event (server to client). The argument buffer is written with
// the Put methods and read back, in order, with the typed getters.
//
// A Message is not safe for concurrent use. The read cursor starts at
// the beginning of the body regardless of how the body was produced,
// so a freshly built request can be decoded directly in tests.
type Message struct {
	// Object is the id of the object the message is addressed to.
	Object uint32

	// Opcode identifies the request or event within the object's
	// interface.
	Opcode uint16

	body []byte
	fds  []int
	off  int
}

// NewMessage creates an empty message addressed to the given object.
func NewMessage(object uint32, opcode uint16) *Message {
	return &Message{Object: object, Opcode: opcode}
}

// size returns the total on-wire size: 8-byte header plus body.
func (m *Message) size() int { return 8 + len(m.body) }

// Rewind resets the read cursor to the start of the body so the
// arguments can be decoded again.
func (m *Message) Rewind() { m.off = 0 }

// Fds returns the file descriptors attached to the message. The caller
// must not close descriptors it did not attach itself.
func (m *Message) Fds() []int { return m.fds }

// PutUint32 appends a 32-bit unsigned argument.
func (m *Message) PutUint32(v uint32) *Message {
	m.body = byteOrder.AppendUint32(m.body, v)
	return m
}

// PutInt32 appends a 32-bit signed argument.
func (m *Message) PutInt32(v int32) *Message {
	return m.PutUint32(uint32(v))
}

// PutFixed appends a 24.8 fixed-point argument.
func (m *Message) PutFixed(v Fixed) *Message {
	return m.PutUint32(uint32(v))
}

// PutString appends a string argument: 32-bit length including the
// terminating NUL, the bytes, the NUL, padded to a 32-bit boundary.
func (m *Message) PutString(s string) *Message {
	n := len(s) + 1
	m.PutUint32(uint32(n))
	m.body = append(m.body, s...)
	m.body = append(m.body, 0)
	for len(m.body)%4 != 0 {
		m.body = append(m.body, 0)
	}
	return m
}

// PutArray appends an array argument: 32-bit byte length, the bytes,
// padded to a 32-bit boundary.
func (m *Message) PutArray(b []byte) *Message {
	m.PutUint32(uint32(len(b)))
	m.body = append(m.body, b...)
	for len(m.body)%4 != 0 {
		m.body = append(m.body, 0)
	}
	return m
}

// PutFd attaches a file descriptor. Descriptors occupy no space in the
// body; they travel as SCM_RIGHTS ancillary data, in attachment order.
func (m *Message) PutFd(fd int) *Message {
	m.fds = append(m.fds, fd)
	return m
}

// Uint32 reads the next 32-bit unsigned argument.
func (m *Message) Uint32() (uint32, error) {
	if m.off+4 > len(m.body) {
		return 0, ErrTruncated
	}
	v := byteOrder.Uint32(m.body[m.off:])
	m.off += 4
	return v, nil
}

// Int32 reads the next 32-bit signed argument.
func (m *Message) Int32() (int32, error) {
	v, err := m.Uint32()
	return int32(v), err
}

// Fixed reads the next 24.8 fixed-point argument.
func (m *Message) Fixed() (Fixed, error) {
	v, err := m.Uint32()
	return Fixed(v), err
}

// String reads the next string argument.
func (m *Message) String() (string, error) {
	n, err := m.Uint32()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrBadString
	}
	padded := (int(n) + 3) &^ 3
	if m.off+padded > len(m.body) {
		return "", ErrTruncated
	}
	b := m.body[m.off : m.off+int(n)]
	if b[len(b)-1] != 0 {
		return "", ErrBadString
	}
	m.off += padded
	return string(b[:len(b)-1]), nil
}

// Array reads the next array argument. The returned slice aliases the
// message body and is only valid until the message is discarded.
func (m *Message) Array() ([]byte, error) {
	n, err := m.Uint32()
	if err != nil {
		return nil, err
	}
	padded := (int(n) + 3) &^ 3
	if m.off+padded > len(m.body) {
		return nil, ErrTruncated
	}
	b := m.body[m.off : m.off+int(n)]
	m.off += padded
	return b, nil
}

// Fd takes the next attached file descriptor. Ownership transfers to
// the caller.
func (m *Message) Fd() (int, error) {
	if len(m.fds) == 0 {
		return -1, ErrNoFd
	}
	fd := m.fds[0]
	m.fds = m.fds[1:]
	return fd, nil
}

// GoString implements fmt.GoStringer for %#v debug output. String is
// taken by the string argument getter.
func (m *Message) GoString() string {
	return fmt.Sprintf("wire.Message{object=%d opcode=%d len=%d fds=%d}",
		m.Object, m.Opcode, len(m.body), len(m.fds))
}
