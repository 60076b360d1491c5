// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

// Interface names of the globals this client understands. Anything
// else the compositor advertises is recorded but never bound.
const (
	ifaceCompositor    = "wl_compositor"
	ifaceShm           = "wl_shm"
	ifaceWmBase        = "xdg_wm_base"
	ifaceDecorationMgr = "zxdg_decoration_manager_v1"
)

// Capability identifies a bound global. The set is closed: the mapping
// from interface name to capability is exhaustive and unknown
// interfaces are explicitly ignored at the registry.
type Capability int

const (
	// CapCompositor creates surfaces.
	CapCompositor Capability = iota

	// CapShm creates shared memory pools and buffers.
	CapShm

	// CapWmBase assigns window roles to surfaces and owns the
	// ping/pong liveness exchange.
	CapWmBase

	// CapDecorationManager negotiates server-side decorations.
	// Optional; not every compositor offers it.
	CapDecorationManager
)

// String returns the capability's interface name.
func (c Capability) String() string {
	switch c {
	case CapCompositor:
		return ifaceCompositor
	case CapShm:
		return ifaceShm
	case CapWmBase:
		return ifaceWmBase
	case CapDecorationManager:
		return ifaceDecorationMgr
	}
	return "unknown"
}

// capabilityFor maps an advertised interface name onto the closed
// capability set. ok is false for interfaces this client ignores.
func capabilityFor(iface string) (Capability, bool) {
	switch iface {
	case ifaceCompositor:
		return CapCompositor, true
	case ifaceShm:
		return CapShm, true
	case ifaceWmBase:
		return CapWmBase, true
	case ifaceDecorationMgr:
		return CapDecorationManager, true
	}
	return 0, false
}

// maxVersion is the highest protocol version this client understands
// per capability. Binds request min(advertised, maxVersion); asking
// for more than we implement is a protocol violation.
var maxVersion = map[Capability]uint32{
	CapCompositor:        4,
	CapShm:               1,
	CapWmBase:            1,
	CapDecorationManager: 1,
}

// Format is a wl_shm pixel format code.
type Format uint32

const (
	// FormatARGB8888 is 32-bit ARGB. In this client's buffers the
	// bytes of each pixel are stored alpha, red, green, blue.
	FormatARGB8888 Format = 0

	// FormatXRGB8888 is FormatARGB8888 with the alpha byte ignored.
	FormatXRGB8888 Format = 1
)

// BytesPerPixel returns the pixel stride of the format.
func (f Format) BytesPerPixel() int { return 4 }

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatARGB8888:
		return "ARGB8888"
	case FormatXRGB8888:
		return "XRGB8888"
	}
	return "unknown"
}

// DecorationMode is a zxdg_toplevel_decoration_v1 mode.
type DecorationMode uint32

const (
	// DecorationClientSide: the client draws its own decorations.
	DecorationClientSide DecorationMode = 1

	// DecorationServerSide: the compositor draws the decorations.
	DecorationServerSide DecorationMode = 2
)

// String implements fmt.Stringer.
func (m DecorationMode) String() string {
	switch m {
	case DecorationClientSide:
		return "client-side"
	case DecorationServerSide:
		return "server-side"
	}
	return "unknown"
}

// wl_display lives at the fixed object id 1; all other ids are
// allocated by the client starting at 2.
const displayID = 1

// Request opcodes, by interface.
const (
	displaySync        = 0
	displayGetRegistry = 1

	registryBind = 0

	compositorCreateSurface = 0

	shmCreatePool = 0

	shmPoolCreateBuffer = 0
	shmPoolDestroy      = 1

	bufferDestroy = 0

	surfaceAttach = 1
	surfaceDamage = 2
	surfaceCommit = 6

	wmBaseGetXdgSurface = 2
	wmBasePong          = 3

	xdgSurfaceGetToplevel  = 1
	xdgSurfaceAckConfigure = 4

	toplevelSetTitle = 2
	toplevelSetAppID = 3

	decorationMgrGetToplevelDecoration = 1

	decorationSetMode = 1
)

// Event opcodes, by interface.
const (
	displayEventError    = 0
	displayEventDeleteID = 1

	registryEventGlobal       = 0
	registryEventGlobalRemove = 1

	callbackEventDone = 0

	shmEventFormat = 0

	bufferEventRelease = 0

	wmBaseEventPing = 0

	xdgSurfaceEventConfigure = 0

	toplevelEventConfigure = 0
	toplevelEventClose     = 1

	decorationEventConfigure = 0
)
