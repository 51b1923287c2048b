package ffi

import (
	"go.uber.org/zap"

	"github.com/glyphbridge/shapebridge"
	"github.com/glyphbridge/shapebridge/errors"
	"github.com/glyphbridge/shapebridge/resource"
	"github.com/glyphbridge/shapebridge/shaping"
)

// Resource type IDs for the handle table. Handles are typed: a buffer
// handle passed where a font handle is expected fails the lookup the
// same way a stale handle does.
const (
	TypeIDBuffer uint32 = 1
	TypeIDFont   uint32 = 2
	TypeIDResult uint32 = 3
)

// Boundary owns the handle table mapping opaque uint32 handles to live
// buffers, font stores and glyph results. One Boundary per embedding
// host; the table is safe for concurrent use but individual handles
// follow the single-owner contract.
type Boundary struct {
	table *resource.Table
	log   *zap.Logger
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithLogger sets the logger for debug-level failure reporting.
func WithLogger(log *zap.Logger) Option {
	return func(b *Boundary) {
		b.log = log
	}
}

// New creates a Boundary with an empty handle table.
func New(opts ...Option) *Boundary {
	b := &Boundary{
		table: resource.NewTable(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Close releases every live resource. Outstanding handles become
// permanently invalid.
func (b *Boundary) Close() error {
	return b.table.Close()
}

// Len returns the number of live resources across all types.
func (b *Boundary) Len() int {
	return b.table.Len()
}

func (b *Boundary) buffer(h resource.Handle) (*shaping.TextBuffer, bool) {
	v, ok := b.table.GetTyped(h, TypeIDBuffer)
	if !ok {
		return nil, false
	}
	return v.(*shaping.TextBuffer), true
}

func (b *Boundary) font(h resource.Handle) (*shaping.FontStore, bool) {
	v, ok := b.table.GetTyped(h, TypeIDFont)
	if !ok {
		return nil, false
	}
	return v.(*shaping.FontStore), true
}

func (b *Boundary) result(h resource.Handle) (*shaping.GlyphResult, bool) {
	v, ok := b.table.GetTyped(h, TypeIDResult)
	if !ok {
		return nil, false
	}
	return v.(*shaping.GlyphResult), true
}

// --- buffer entry points ---

// BufferNew creates an empty text buffer and returns its handle.
func (b *Boundary) BufferNew() resource.Handle {
	return b.table.Insert(TypeIDBuffer, shaping.NewTextBuffer())
}

// BufferAddUTF8 appends UTF-8 text. Statuses: -1 null handle, -2 null
// text, -3 invalid UTF-8.
func (b *Boundary) BufferAddUTF8(h resource.Handle, text []byte) int32 {
	buf, ok := b.buffer(h)
	if !ok {
		return errors.StatusNullHandle
	}
	if text == nil {
		return errors.StatusNullArgument
	}
	if err := buf.AppendUTF8(text); err != nil {
		b.log.Debug("buffer append rejected", zap.Uint32("handle", uint32(h)), zap.Error(err))
		return errors.StatusOf(err)
	}
	return errors.StatusOK
}

// BufferAddUTF16 appends UTF-16 code units, repairing invalid
// sequences with U+FFFD. Statuses: -1 null handle, -2 null units.
func (b *Boundary) BufferAddUTF16(h resource.Handle, units []uint16) int32 {
	buf, ok := b.buffer(h)
	if !ok {
		return errors.StatusNullHandle
	}
	if units == nil {
		return errors.StatusNullArgument
	}
	if err := buf.AppendUTF16(units); err != nil {
		b.log.Debug("buffer append rejected", zap.Uint32("handle", uint32(h)), zap.Error(err))
		return errors.StatusOf(err)
	}
	return errors.StatusOK
}

// BufferLen returns the codepoint count, -1 on a null handle.
func (b *Boundary) BufferLen(h resource.Handle) int32 {
	buf, ok := b.buffer(h)
	if !ok {
		return -1
	}
	return int32(buf.Len())
}

// BufferClear resets content and segment properties.
func (b *Boundary) BufferClear(h resource.Handle) int32 {
	buf, ok := b.buffer(h)
	if !ok {
		return errors.StatusNullHandle
	}
	buf.Clear()
	return errors.StatusOK
}

// BufferSetDirection sets the direction from its wire code. A null
// handle is a silent no-op, matching the void upstream setter.
func (b *Boundary) BufferSetDirection(h resource.Handle, dir uint32) {
	buf, ok := b.buffer(h)
	if !ok {
		return
	}
	buf.SetDirection(shapebridge.Direction(dir))
}

// BufferDirection returns the direction wire code, 0 on a null handle.
func (b *Boundary) BufferDirection(h resource.Handle) uint32 {
	buf, ok := b.buffer(h)
	if !ok {
		return uint32(shapebridge.DirectionUnset)
	}
	return uint32(buf.Direction())
}

// BufferSetScript sets the ISO-15924 script tag. A null handle is a
// silent no-op.
func (b *Boundary) BufferSetScript(h resource.Handle, tag uint32) {
	buf, ok := b.buffer(h)
	if !ok {
		return
	}
	buf.SetScript(shapebridge.Tag(tag))
}

// BufferScript returns the script tag, 0 when unset or on a null
// handle.
func (b *Boundary) BufferScript(h resource.Handle) uint32 {
	buf, ok := b.buffer(h)
	if !ok {
		return 0
	}
	return uint32(buf.Script())
}

// BufferSetLanguage parses and stores a BCP-47 tag. Statuses: -1 null
// handle, -2 empty tag, -4 unparseable tag.
func (b *Boundary) BufferSetLanguage(h resource.Handle, lang string) int32 {
	buf, ok := b.buffer(h)
	if !ok {
		return errors.StatusNullHandle
	}
	if lang == "" {
		return errors.StatusNullArgument
	}
	if err := buf.SetLanguage(lang); err != nil {
		b.log.Debug("language rejected", zap.String("tag", lang), zap.Error(err))
		return errors.StatusOf(err)
	}
	return errors.StatusOK
}

// BufferGuessSegmentProperties fills unset segment properties from
// content.
func (b *Boundary) BufferGuessSegmentProperties(h resource.Handle) int32 {
	buf, ok := b.buffer(h)
	if !ok {
		return errors.StatusNullHandle
	}
	buf.GuessSegmentProperties()
	return errors.StatusOK
}

// BufferFree releases a buffer. Freeing the null handle or an already
// freed handle is a no-op.
func (b *Boundary) BufferFree(h resource.Handle) {
	b.table.RemoveTyped(h, TypeIDBuffer)
}

// --- font entry points ---

// FontFromData builds a font store from raw bytes at face index 0.
// Returns the null handle when the bytes do not validate.
func (b *Boundary) FontFromData(data []byte) resource.Handle {
	return b.FontFromDataIndex(data, 0)
}

// FontFromDataIndex builds a font store from raw bytes at the given
// collection face index. Returns the null handle when the bytes or
// index do not validate.
func (b *Boundary) FontFromDataIndex(data []byte, index int32) resource.Handle {
	store, err := shaping.NewFontStore(data, int(index))
	if err != nil {
		b.log.Debug("font rejected", zap.Int32("index", index), zap.Error(err))
		return resource.Nil
	}
	return b.table.Insert(TypeIDFont, store)
}

// FontUnitsPerEm returns the design grid size, -1 on a null handle or
// a re-parse failure.
func (b *Boundary) FontUnitsPerEm(h resource.Handle) int32 {
	font, ok := b.font(h)
	if !ok {
		return -1
	}
	return font.UnitsPerEm()
}

// FontFree releases a font store. Null-safe.
func (b *Boundary) FontFree(h resource.Handle) {
	b.table.RemoveTyped(h, TypeIDFont)
}

// --- shape entry points ---

// Shape shapes with default features and variations. See ShapeFull.
func (b *Boundary) Shape(font, buf resource.Handle) resource.Handle {
	return b.ShapeFull(font, buf, nil, nil)
}

// ShapeWithFeatures shapes with explicit features. See ShapeFull.
func (b *Boundary) ShapeWithFeatures(font, buf resource.Handle, features []shapebridge.Feature) resource.Handle {
	return b.ShapeFull(font, buf, features, nil)
}

// ShapeFull shapes buf against font under the given features and
// variations and returns a result handle.
//
// The buffer handle is consumed on any shaping attempt; when either
// handle is null the call fails before ownership transfer and the
// buffer stays live. The font handle is never consumed.
func (b *Boundary) ShapeFull(font, buf resource.Handle, features []shapebridge.Feature, variations []shapebridge.Variation) resource.Handle {
	store, ok := b.font(font)
	if !ok {
		return resource.Nil
	}

	// The remove is the atomic buffer precondition check: a missing or
	// wrong-typed handle fails here without side effects, and a present
	// one is consumed in the same table operation, so two racing shape
	// calls cannot both claim it.
	v, ok := b.table.RemoveTyped(buf, TypeIDBuffer)
	if !ok {
		return resource.Nil
	}
	textBuf := v.(*shaping.TextBuffer)

	res, err := shaping.Shape(store, textBuf, features, variations)
	if err != nil {
		b.log.Debug("shape failed",
			zap.Uint32("font", uint32(font)),
			zap.Uint32("buffer", uint32(buf)),
			zap.Error(err))
		return resource.Nil
	}
	return b.table.Insert(TypeIDResult, res)
}

// --- result entry points ---

// ResultLen returns the glyph count, -1 on a null handle.
func (b *Boundary) ResultLen(h resource.Handle) int32 {
	res, ok := b.result(h)
	if !ok {
		return -1
	}
	return int32(res.Len())
}

// ResultInfos returns the cached glyph array, nil on a null handle.
// The slice aliases result storage and is valid until the result is
// retired or freed.
func (b *Boundary) ResultInfos(h resource.Handle) []shapebridge.GlyphInfo {
	res, ok := b.result(h)
	if !ok {
		return nil
	}
	return res.Infos()
}

// ResultPositions returns the cached position array under the same
// rules as ResultInfos.
func (b *Boundary) ResultPositions(h resource.Handle) []shapebridge.GlyphPosition {
	res, ok := b.result(h)
	if !ok {
		return nil
	}
	return res.Positions()
}

// ResultRetireToBuffer consumes a result handle and returns a fresh
// empty buffer handle reusing the result's engine storage. Returns
// the null handle when the result handle is null.
func (b *Boundary) ResultRetireToBuffer(h resource.Handle) resource.Handle {
	v, ok := b.table.RemoveTyped(h, TypeIDResult)
	if !ok {
		return resource.Nil
	}
	buf, err := v.(*shaping.GlyphResult).Recycle()
	if err != nil {
		b.log.Debug("result recycle failed", zap.Uint32("handle", uint32(h)), zap.Error(err))
		return resource.Nil
	}
	return b.table.Insert(TypeIDBuffer, buf)
}

// ResultFree releases a result. Null-safe.
func (b *Boundary) ResultFree(h resource.Handle) {
	b.table.RemoveTyped(h, TypeIDResult)
}
