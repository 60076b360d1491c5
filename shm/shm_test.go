// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shm

import (
	"errors"
	"testing"
)

// TestAllocate verifies the region has exactly the requested size and
// that writes through the mapping reach the backing file, which is
// what the compositor reads.
func TestAllocate(t *testing.T) {
	const size = 4096
	r, err := Allocate(size)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	defer r.Close()

	if r.Size() != size {
		t.Errorf("Size() = %d, want %d", r.Size(), size)
	}
	if len(r.Bytes()) != size {
		t.Errorf("len(Bytes()) = %d, want %d", len(r.Bytes()), size)
	}

	copy(r.Bytes(), "through the mapping")

	buf := make([]byte, 19)
	if _, err := r.File().ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt backing file: %v", err)
	}
	if string(buf) != "through the mapping" {
		t.Errorf("backing file = %q, want the mapped write", buf)
	}
}

// TestAllocateBadSize verifies zero and negative sizes fail with an
// AllocationError, not a panic or a zero-length mapping.
func TestAllocateBadSize(t *testing.T) {
	for _, size := range []int{0, -1, -4096} {
		_, err := Allocate(size)
		var ae *AllocationError
		if !errors.As(err, &ae) {
			t.Fatalf("Allocate(%d) err = %v, want *AllocationError", size, err)
		}
		if !errors.Is(err, ErrBadSize) {
			t.Errorf("Allocate(%d) err = %v, want ErrBadSize cause", size, err)
		}
	}
}

// TestCloseWhileInUse verifies the region refuses to tear down while
// the compositor may still be reading it.
func TestCloseWhileInUse(t *testing.T) {
	r, err := Allocate(1024)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	r.MarkInUse()
	if !r.InUse() {
		t.Fatal("InUse() = false after MarkInUse")
	}
	if err := r.Close(); !errors.Is(err, ErrRegionInUse) {
		t.Errorf("Close while in use = %v, want ErrRegionInUse", err)
	}
	if r.Bytes() == nil {
		t.Error("mapping torn down by refused Close")
	}

	r.MarkReleased()
	if err := r.Close(); err != nil {
		t.Errorf("Close after release: %v", err)
	}
	if r.Bytes() != nil {
		t.Error("Bytes() non-nil after Close")
	}
}

// TestCloseIdempotent verifies repeated Close calls are safe.
func TestCloseIdempotent(t *testing.T) {
	r, err := Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
