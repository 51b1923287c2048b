// Package wasmhost exposes the ffi boundary to wasm guests as a
// wazero host module.
//
// Guests import "glyphbridge:shaping/ffi" and call the kebab-case
// exports mirroring the ffi entry points. Handles travel as i32; text,
// feature lists and variation lists are passed as pointer+count into
// guest linear memory; glyph and position snapshots are copied out as
// little-endian fixed-layout records (8 bytes per glyph info, 16 bytes
// per position) into a guest-provided pointer+capacity region.
//
// Unreadable guest pointers are reported through the same in-band
// channels as null arguments; host functions never trap.
package wasmhost
