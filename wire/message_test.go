// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wire

import (
	"errors"
	"testing"
)

// TestMessageBindArguments encodes a registry bind request and decodes
// it back, covering the uint32 and string codecs together.
func TestMessageBindArguments(t *testing.T) {
	m := NewMessage(2, 0).
		PutUint32(17).
		PutString("wl_compositor").
		PutUint32(4).
		PutUint32(3)

	name, err := m.Uint32()
	if err != nil {
		t.Fatalf("Uint32: %v", err)
	}
	if name != 17 {
		t.Errorf("name = %d, want 17", name)
	}
	iface, err := m.String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if iface != "wl_compositor" {
		t.Errorf("iface = %q, want wl_compositor", iface)
	}
	version, err := m.Uint32()
	if err != nil {
		t.Fatalf("Uint32: %v", err)
	}
	if version != 4 {
		t.Errorf("version = %d, want 4", version)
	}
	id, err := m.Uint32()
	if err != nil {
		t.Fatalf("Uint32: %v", err)
	}
	if id != 3 {
		t.Errorf("id = %d, want 3", id)
	}
}

// TestMessageStringPadding verifies strings are padded to 32-bit
// boundaries so following arguments stay aligned.
func TestMessageStringPadding(t *testing.T) {
	for _, s := range []string{"", "a", "abc", "abcd", "abcde"} {
		m := NewMessage(1, 0).PutString(s).PutUint32(0xDEADBEEF)
		if len(m.body)%4 != 0 {
			t.Errorf("PutString(%q): body length %d not 32-bit aligned", s, len(m.body))
		}
		got, err := m.String()
		if err != nil {
			t.Fatalf("String after PutString(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("String = %q, want %q", got, s)
		}
		v, err := m.Uint32()
		if err != nil {
			t.Fatalf("Uint32 after string %q: %v", s, err)
		}
		if v != 0xDEADBEEF {
			t.Errorf("trailing uint32 = %#x, want 0xDEADBEEF", v)
		}
	}
}

// TestMessageArray verifies array round-trips with padding.
func TestMessageArray(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	m := NewMessage(1, 0).PutArray(payload).PutUint32(7)

	got, err := m.Array()
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Array = %v, want %v", got, payload)
	}
	v, err := m.Uint32()
	if err != nil {
		t.Fatalf("Uint32 after array: %v", err)
	}
	if v != 7 {
		t.Errorf("trailing uint32 = %d, want 7", v)
	}
}

// TestMessageTruncated verifies reads past the end of the body fail
// loudly instead of returning garbage.
func TestMessageTruncated(t *testing.T) {
	m := NewMessage(1, 0).PutUint32(1)
	if _, err := m.Uint32(); err != nil {
		t.Fatalf("first Uint32: %v", err)
	}
	if _, err := m.Uint32(); !errors.Is(err, ErrTruncated) {
		t.Errorf("second Uint32 err = %v, want ErrTruncated", err)
	}
	if _, err := m.String(); !errors.Is(err, ErrTruncated) {
		t.Errorf("String on empty err = %v, want ErrTruncated", err)
	}
}

// TestMessageRewind verifies the read cursor can be reset.
func TestMessageRewind(t *testing.T) {
	m := NewMessage(1, 0).PutUint32(42)
	for i := 0; i < 2; i++ {
		v, err := m.Uint32()
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		if v != 42 {
			t.Errorf("pass %d: got %d, want 42", i, v)
		}
		m.Rewind()
	}
}

// TestMessageFd verifies descriptor arguments transfer in order and
// run out loudly.
func TestMessageFd(t *testing.T) {
	m := NewMessage(1, 0).PutFd(5).PutFd(9)
	fd, err := m.Fd()
	if err != nil || fd != 5 {
		t.Fatalf("first Fd = %d, %v; want 5, nil", fd, err)
	}
	fd, err = m.Fd()
	if err != nil || fd != 9 {
		t.Fatalf("second Fd = %d, %v; want 9, nil", fd, err)
	}
	if _, err := m.Fd(); !errors.Is(err, ErrNoFd) {
		t.Errorf("third Fd err = %v, want ErrNoFd", err)
	}
}

// TestFixed exercises the 24.8 fixed-point conversions.
func TestFixed(t *testing.T) {
	tests := []struct {
		f    float64
		want Fixed
	}{
		{0, 0},
		{1, 256},
		{-1, -256},
		{0.5, 128},
		{100.25, 25664},
	}
	for _, tt := range tests {
		got := FixedFromFloat(tt.f)
		if got != tt.want {
			t.Errorf("FixedFromFloat(%v) = %d, want %d", tt.f, got, tt.want)
		}
		if back := got.Float(); back != tt.f {
			t.Errorf("Fixed(%d).Float() = %v, want %v", got, back, tt.f)
		}
	}
	if FixedFromFloat(3.75).Int() != 3 {
		t.Errorf("Int() = %d, want 3", FixedFromFloat(3.75).Int())
	}
}
