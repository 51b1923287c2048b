package shaping

import (
	"github.com/boxesandglue/textshape/ot"
	"go.uber.org/zap"

	"github.com/glyphbridge/shapebridge/errors"
)

// FontStore holds validated, immutable raw font bytes plus the face
// index they were validated against. It keeps no parsed structure
// alive between calls: parsed views borrow from the byte buffer, so
// each operation that needs font structure derives its own transient
// view and discards it.
//
// A FontStore is read-only after construction. Concurrent shape calls
// against the same store are safe as long as no concurrent call frees
// it.
type FontStore struct {
	data  []byte
	index int
}

// NewFontStore copies data into an owned buffer and validates it as a
// parseable font at the given face index. Invalid input fails here,
// at construction, never later.
func NewFontStore(data []byte, index int) (*FontStore, error) {
	if len(data) == 0 {
		return nil, errors.NullArgument(errors.PhaseFont, "data")
	}
	if index < 0 {
		return nil, errors.NullArgument(errors.PhaseFont, "index")
	}

	owned := make([]byte, len(data))
	copy(owned, data)

	// Validate now, then throw the parsed view away.
	if _, err := ot.ParseFont(owned, index); err != nil {
		return nil, errors.FontParse(errors.PhaseFont, index, err)
	}
	return &FontStore{data: owned, index: index}, nil
}

// Index returns the face index the store was built with.
func (s *FontStore) Index() int {
	return s.index
}

// parse derives a transient parsed view for a single call.
func (s *FontStore) parse() (*ot.Font, error) {
	font, err := ot.ParseFont(s.data, s.index)
	if err != nil {
		return nil, errors.Reparse(errors.PhaseFont, err)
	}
	return font, nil
}

// UnitsPerEm re-derives a parsed view and reports the font's units
// per em. Returns -1 if the store's bytes unexpectedly fail to
// re-parse.
func (s *FontStore) UnitsPerEm() int32 {
	font, err := s.parse()
	if err != nil {
		Logger().Debug("units-per-em re-parse failed", zap.Error(err))
		return -1
	}
	face, err := ot.NewFace(font)
	if err != nil {
		Logger().Debug("units-per-em face derivation failed", zap.Error(err))
		return -1
	}
	return int32(face.Upem())
}
