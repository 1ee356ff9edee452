// Package engine wires a grid layout and render driver to a host document.
//
// Init looks up the drawing surface, attaches listeners, and performs the
// first rebuild. After that a rebuild happens:
//
//   - immediately, when the rotation or cell-size input changes
//   - once per resize burst, after the debounce quiet period (150ms by default)
//   - whenever Rebuild is called
//
// Each Engine owns its debounce timer, so any number of engines can share a
// process or even a document without interfering. Rebuilds on one engine are
// serialized; a rebuild computes one grid.Metrics snapshot and renders the
// whole frame from it.
//
// If the surface cannot be found, Init returns a nil *Engine and a
// MISSING_SURFACE error without touching the document.
package engine
