// Package shapebridge exposes a text-shaping engine across a
// memory-management boundary.
//
// The shaping work itself is delegated to an external OpenType engine;
// this module makes the crossing safe for hosts that cannot manage
// native memory directly (wasm guests, P/Invoke-style bindings).
// Objects live behind opaque, address-stable handles, failures are
// reported as sentinel values rather than raised, and shaping results
// are materialized as fixed-layout snapshot arrays the host can read
// without re-entering the library.
//
// # Architecture Overview
//
// The module is organized into flat top-level packages:
//
//	shapebridge/         Root package with the fixed-layout ABI types
//	├── shaping/         Text buffers, font stores, shape orchestration
//	├── ffi/             Flat handle-based entry-point surface
//	├── wasmhost/        wazero host module exposing the ffi surface
//	├── resource/        Opaque handle table
//	└── errors/          Structured errors with sentinel status mapping
//
// # Quick Start
//
// Shape text through the boundary surface:
//
//	b := ffi.New()
//	defer b.Close()
//
//	font := b.FontFromData(fontBytes)
//	buf := b.BufferNew()
//	b.BufferAddUTF8(buf, []byte("Hello"))
//
//	result := b.Shape(font, buf) // buf is consumed here
//	if result != 0 {
//	    infos := b.ResultInfos(result)
//	    positions := b.ResultPositions(result)
//	    _ = infos
//	    _ = positions
//	    b.ResultFree(result)
//	}
//	b.FontFree(font)
//
// # Ownership Rules
//
// Every handle has a single logical owner. Constructors return the
// null handle (0) on invalid input; operations on the null handle are
// safe no-ops or return a documented negative status. A buffer passed
// to a shape call is consumed: once both handles pass the null checks,
// the buffer handle is released regardless of outcome and must not be
// used again. No handle is internally synchronized; concurrent
// mutation of the same handle without external mutual exclusion is
// undefined behavior. Concurrent shape calls against the same font
// store are safe, since the store is read-only and each call re-parses
// its own transient view.
package shapebridge
