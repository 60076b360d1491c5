// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wire

import (
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

// connPair returns two connected message-level endpoints over a unix
// socketpair.
func connPair(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	pair := make([]*Conn, 2)
	for i, fd := range fds {
		f := os.NewFile(uintptr(fd), "socketpair")
		c, err := net.FileConn(f)
		f.Close()
		if err != nil {
			t.Fatalf("FileConn: %v", err)
		}
		uc := c.(*net.UnixConn)
		t.Cleanup(func() { uc.Close() })
		pair[i] = NewConn(uc)
	}
	return pair[0], pair[1]
}

// TestConnSendRecv sends a framed message across a socketpair and
// checks that header and arguments survive.
func TestConnSendRecv(t *testing.T) {
	a, b := connPair(t)

	m := NewMessage(7, 3).PutUint32(99).PutString("xdg_wm_base")
	if err := a.Send(m); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, err := b.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if got.Object != 7 || got.Opcode != 3 {
		t.Errorf("header = object %d opcode %d, want 7, 3", got.Object, got.Opcode)
	}
	v, err := got.Uint32()
	if err != nil || v != 99 {
		t.Fatalf("Uint32 = %d, %v; want 99, nil", v, err)
	}
	s, err := got.String()
	if err != nil || s != "xdg_wm_base" {
		t.Fatalf("String = %q, %v; want xdg_wm_base, nil", s, err)
	}
}

// TestConnSendRecvFd passes a file descriptor as ancillary data, the
// way create_pool hands the compositor its backing file.
func TestConnSendRecvFd(t *testing.T) {
	a, b := connPair(t)

	memfd, err := unix.MemfdCreate("conn-test", unix.MFD_CLOEXEC)
	if err != nil {
		t.Skipf("memfd_create unavailable: %v", err)
	}
	f := os.NewFile(uintptr(memfd), "conn-test")
	defer f.Close()
	if _, err := f.WriteString("shared"); err != nil {
		t.Fatalf("write memfd: %v", err)
	}

	m := NewMessage(4, 0).PutUint32(12).PutFd(int(f.Fd())).PutInt32(6)
	if err := a.Send(m); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, err := b.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	fd, err := got.Fd()
	if err != nil {
		t.Fatalf("Fd: %v", err)
	}
	rf := os.NewFile(uintptr(fd), "received")
	defer rf.Close()

	buf := make([]byte, 6)
	if _, err := rf.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt received fd: %v", err)
	}
	if string(buf) != "shared" {
		t.Errorf("received fd content = %q, want shared", buf)
	}
}

// TestConnSequence verifies multiple messages are framed independently
// and arrive in order.
func TestConnSequence(t *testing.T) {
	a, b := connPair(t)

	for i := uint32(0); i < 5; i++ {
		if err := a.Send(NewMessage(2, 0).PutUint32(i)); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
	}
	for i := uint32(0); i < 5; i++ {
		got, err := b.Recv()
		if err != nil {
			t.Fatalf("Recv %d: %v", i, err)
		}
		v, err := got.Uint32()
		if err != nil {
			t.Fatalf("Uint32 %d: %v", i, err)
		}
		if v != i {
			t.Errorf("message %d carried %d", i, v)
		}
	}
}
