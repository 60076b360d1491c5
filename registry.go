// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

// Global is one capability advertisement from the compositor.
type Global struct {
	// Name is the compositor-assigned numeric id of the global,
	// opaque to the client.
	Name uint32

	// Interface is the protocol interface the global implements.
	Interface string

	// Version is the highest version the compositor offers.
	Version uint32
}

// Registry tracks the compositor's advertised globals. It is written
// only from the event loop's dispatch path; there are no concurrent
// writers.
//
// Globals are indexed by interface string because that is what binding
// selects on. A duplicate advertisement for an interface overwrites
// the previous one in place, keeping insertion order stable.
type Registry struct {
	globals []Global
	index   map[string]int
}

func newRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// observe records an advertised global.
func (r *Registry) observe(g Global) {
	if i, ok := r.index[g.Interface]; ok {
		r.globals[i] = g
		return
	}
	r.index[g.Interface] = len(r.globals)
	r.globals = append(r.globals, g)
}

// remove forgets the global with the given name. It reports whether a
// global was actually removed and what it was.
func (r *Registry) remove(name uint32) (Global, bool) {
	for i, g := range r.globals {
		if g.Name != name {
			continue
		}
		r.globals = append(r.globals[:i], r.globals[i+1:]...)
		delete(r.index, g.Interface)
		for iface, j := range r.index {
			if j > i {
				r.index[iface] = j - 1
			}
		}
		return g, true
	}
	return Global{}, false
}

// Lookup returns the most recently advertised global for an interface.
func (r *Registry) Lookup(iface string) (Global, bool) {
	i, ok := r.index[iface]
	if !ok {
		return Global{}, false
	}
	return r.globals[i], true
}

// Globals returns the observed globals in advertisement order.
func (r *Registry) Globals() []Global {
	out := make([]Global, len(r.globals))
	copy(out, r.globals)
	return out
}

// bindVersion returns the version to request when binding g: the
// minimum of what the compositor advertised and what this client
// understands. Never request a version the client does not implement.
func bindVersion(cap Capability, g Global) uint32 {
	if max := maxVersion[cap]; g.Version > max {
		return max
	}
	return g.Version
}
