// Package shaping implements the domain core behind the boundary:
// text buffers, font stores, shape orchestration and glyph result
// snapshots.
//
// The Unicode-to-glyph work is delegated to the external OpenType
// engine (github.com/boxesandglue/textshape); this package owns the
// lifecycle rules around it:
//
//   - A TextBuffer is mutable and host-owned until a shape call
//     consumes it. Reuse after consumption is reported as an error
//     rather than silently corrupting state.
//   - A FontStore keeps only validated raw bytes. Every operation
//     that needs font structure re-derives a transient parsed view,
//     so no parsed structure borrowing from the byte buffer ever
//     outlives a single call.
//   - A GlyphResult materializes two equal-length, fixed-layout
//     snapshot arrays at construction and never moves them; it can be
//     recycled into a fresh empty TextBuffer, which invalidates the
//     snapshots.
//
// All operations are synchronous and CPU-bound. Values here carry no
// internal locking: each has a single logical owner. The one
// exception is documented on FontStore, whose read-only use is safe
// from concurrent shape calls.
package shaping
