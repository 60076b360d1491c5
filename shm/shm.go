// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shm

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Errors returned by the allocator.
var (
	// ErrBadSize is returned when Allocate is called with a size that
	// is zero or negative.
	ErrBadSize = errors.New("shm: size must be positive")

	// ErrRegionInUse is returned by Close while the compositor may
	// still be reading the region.
	ErrRegionInUse = errors.New("shm: region still in use by server")
)

// AllocationError reports a failed shared memory allocation. It is
// fatal to the caller; no allocation is retried.
type AllocationError struct {
	Op   string // "create", "truncate", or "map"
	Size int
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("shm: %s %d bytes: %v", e.Op, e.Size, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// Region is an anonymous shared memory region: a sized backing file
// plus a read-write MAP_SHARED mapping of it.
type Region struct {
	f      *os.File
	data   []byte
	size   int
	inUse  bool
	closed bool
}

// Allocate creates an anonymous file of exactly size bytes and maps it
// read-write, shared. The compositor sees the same pages by mapping
// the descriptor on its side.
//
// The file is a sealed memfd when the kernel supports it, with an
// unlinked temporary file in XDG_RUNTIME_DIR as fallback.
func Allocate(size int) (*Region, error) {
	if size <= 0 {
		return nil, &AllocationError{Op: "create", Size: size, Err: ErrBadSize}
	}
	f, err := createBacking()
	if err != nil {
		return nil, &AllocationError{Op: "create", Size: size, Err: err}
	}
	if err := unix.Ftruncate(int(f.Fd()), int64(size)); err != nil {
		f.Close()
		return nil, &AllocationError{Op: "truncate", Size: size, Err: err}
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, &AllocationError{Op: "map", Size: size, Err: err}
	}
	return &Region{f: f, data: data, size: size}, nil
}

func createBacking() (*os.File, error) {
	fd, err := unix.MemfdCreate("gogpu-wayland-shm",
		unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err == nil {
		// Sealing protects the compositor from the file shrinking
		// underneath its mapping.
		unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS, unix.F_SEAL_SHRINK)
		return os.NewFile(uintptr(fd), "gogpu-wayland-shm"), nil
	}
	f, err := os.CreateTemp(os.Getenv("XDG_RUNTIME_DIR"), "gogpu-wayland-shm-*")
	if err != nil {
		return nil, err
	}
	// Unlink immediately; the descriptor keeps the inode alive.
	os.Remove(f.Name())
	return f, nil
}

// Bytes returns the mapped memory. The slice stays valid until Close.
func (r *Region) Bytes() []byte {
	if r.closed {
		return nil
	}
	return r.data
}

// File returns the backing file. The descriptor is owned by the
// region; callers pass it to the compositor but must not close it.
func (r *Region) File() *os.File { return r.f }

// Size returns the region size in bytes.
func (r *Region) Size() int { return r.size }

// MarkInUse records that the compositor may read the region. Called
// when a buffer backed by this region is attached and committed.
func (r *Region) MarkInUse() { r.inUse = true }

// MarkReleased records that the compositor is done with the region,
// observed via the buffer release event.
func (r *Region) MarkReleased() { r.inUse = false }

// InUse reports whether the compositor may still read the region.
func (r *Region) InUse() bool { return r.inUse }

// Close unmaps the region and closes the backing descriptor. It fails
// with ErrRegionInUse until a release has been observed, and is a
// no-op once it has succeeded.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	if r.inUse {
		return ErrRegionInUse
	}
	err := unix.Munmap(r.data)
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	r.data = nil
	r.closed = true
	if err != nil {
		return fmt.Errorf("shm: close: %w", err)
	}
	return nil
}
