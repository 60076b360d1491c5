// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wayland

// WindowOption configures a Window during creation.
//
// Example:
//
//	// Opaque blue window with server-side decorations
//	w, err := s.CreateWindow("hello", 500, 500,
//	    wayland.WithBackground(wayland.Blue),
//	    wayland.WithDecorationMode(wayland.DecorationServerSide))
type WindowOption func(*windowOptions)

// windowOptions holds optional configuration for CreateWindow.
type windowOptions struct {
	appID      string
	background ARGB
	draw       func(*Canvas)
	decoration DecorationMode
	format     Format
}

func defaultWindowOptions() windowOptions {
	return windowOptions{
		background: Black,
		decoration: DecorationServerSide,
		format:     FormatARGB8888,
	}
}

// WithAppID sets the application id advertised to the compositor,
// used for window grouping and desktop-file matching.
func WithAppID(id string) WindowOption {
	return func(o *windowOptions) { o.appID = id }
}

// WithBackground sets the color each frame is cleared to before the
// draw callback (if any) runs.
func WithBackground(c ARGB) WindowOption {
	return func(o *windowOptions) { o.background = c }
}

// WithDrawFunc sets a callback invoked with a fresh canvas every time
// a configure cycle produces a new buffer. The callback runs on the
// event loop goroutine; it must not block.
func WithDrawFunc(draw func(*Canvas)) WindowOption {
	return func(o *windowOptions) { o.draw = draw }
}

// WithDecorationMode declares the preferred decoration mode. The
// preference is advisory: the compositor reports the mode actually in
// effect through the decoration object's configure event, visible via
// [Window.DecorationMode]. Ignored when the compositor offers no
// decoration manager.
func WithDecorationMode(m DecorationMode) WindowOption {
	return func(o *windowOptions) { o.decoration = m }
}

// WithFormat sets the pixel format buffers are provisioned with.
// The default is FormatARGB8888.
func WithFormat(f Format) WindowOption {
	return func(o *windowOptions) { o.format = f }
}
