package shaping

import (
	"github.com/boxesandglue/textshape/ot"

	"github.com/glyphbridge/shapebridge"
	"github.com/glyphbridge/shapebridge/errors"
)

// GlyphResult owns the output of one shape call: the shaped engine
// buffer plus two index-aligned snapshot arrays materialized at
// construction. The snapshots are contiguous, fixed-layout and never
// reallocated, so a host may hold pointers into them until the next
// mutating or freeing operation on this result.
type GlyphResult struct {
	inner     *ot.Buffer
	infos     []shapebridge.GlyphInfo
	positions []shapebridge.GlyphPosition
}

func newGlyphResult(inner *ot.Buffer) *GlyphResult {
	n := len(inner.Info)
	infos := make([]shapebridge.GlyphInfo, n)
	positions := make([]shapebridge.GlyphPosition, n)
	for i, gi := range inner.Info {
		infos[i] = shapebridge.GlyphInfo{
			GlyphID: uint32(gi.GlyphID),
			Cluster: uint32(gi.Cluster),
		}
	}
	// Engine positions are int16 font units; the exported layout is
	// int32 regardless of engine internals.
	for i, gp := range inner.Pos {
		positions[i] = shapebridge.GlyphPosition{
			XAdvance: int32(gp.XAdvance),
			YAdvance: int32(gp.YAdvance),
			XOffset:  int32(gp.XOffset),
			YOffset:  int32(gp.YOffset),
		}
	}
	return &GlyphResult{inner: inner, infos: infos, positions: positions}
}

// Len returns the number of glyphs, 0 once the result has been
// recycled or freed.
func (r *GlyphResult) Len() int {
	return len(r.infos)
}

// Infos returns the cached glyph array. Both snapshot arrays always
// have identical length. The slice aliases the result's storage: it
// is valid only until the result is recycled or freed.
func (r *GlyphResult) Infos() []shapebridge.GlyphInfo {
	return r.infos
}

// Positions returns the cached position array under the same validity
// rules as Infos.
func (r *GlyphResult) Positions() []shapebridge.GlyphPosition {
	return r.positions
}

// Recycle converts the result into a fresh empty TextBuffer, reusing
// the underlying storage to avoid reallocation on the next shape
// round-trip. The result and both snapshot arrays are invalidated.
func (r *GlyphResult) Recycle() (*TextBuffer, error) {
	if r.inner == nil {
		return nil, errors.Invalidated(errors.PhaseResult)
	}
	inner := r.inner
	r.inner = nil
	r.infos = nil
	r.positions = nil
	inner.Reset()
	return newTextBufferFrom(inner), nil
}

// Drop poisons the snapshot arrays when the result is removed from a
// handle table. The engine buffer is kept so a retire-to-buffer
// sequence can still recycle it.
func (r *GlyphResult) Drop() {
	r.infos = nil
	r.positions = nil
}
