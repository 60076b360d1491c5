// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shm allocates anonymous shared memory for pixel buffers.
//
// A [Region] bundles the three things whose lifetimes must stay in
// lockstep: the backing file descriptor, the client-side mapping, and
// an in-use flag tracking whether the compositor may still be reading
// the memory. The descriptor stays open and the mapping stays valid
// until Close, and Close refuses to run while the region is in use —
// the compositor reads the same pages through its own mapping of the
// descriptor, so tearing either down early is a use-after-free from
// its point of view.
package shm
