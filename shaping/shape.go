package shaping

import (
	"github.com/boxesandglue/textshape/ot"
	"go.uber.org/zap"

	"github.com/glyphbridge/shapebridge"
	"github.com/glyphbridge/shapebridge/errors"
)

// Shape shapes buf against font and returns a GlyphResult.
//
// The buffer is consumed: the call takes ownership immediately and
// the caller must not use buf afterward, regardless of outcome. The
// font store is read-only and reusable.
//
// Steps, in order: guess unset segment properties (an explicitly set
// direction suppresses the guess), resolve variations into a fresh
// per-call instance, build a shaper over a transient parsed view of
// the font, delegate to the engine's shape operation, materialize the
// snapshot arrays. The delegation is pure: identical font bytes,
// buffer state, features and variations produce identical output.
func Shape(font *FontStore, buf *TextBuffer, features []shapebridge.Feature, variations []shapebridge.Variation) (*GlyphResult, error) {
	if font == nil {
		return nil, errors.NullHandle(errors.PhaseShape)
	}
	if buf == nil {
		return nil, errors.New(errors.PhaseShape, errors.KindNullArgument).
			Detail("buffer is nil").
			Build()
	}
	if err := buf.guard(); err != nil {
		return nil, err
	}

	// Ownership transfer happens here; every path below discards the
	// buffer exactly once, by either wrapping it in a result or
	// dropping it for collection.
	inner := buf.take()

	parsed, err := font.parse()
	if err != nil {
		Logger().Debug("shape re-parse failed", zap.Error(err))
		return nil, err
	}
	shaper, err := ot.NewShaper(parsed)
	if err != nil {
		Logger().Debug("shaper construction failed", zap.Error(err))
		return nil, errors.Wrap(errors.PhaseShape, errors.KindReparse, err, "shaper construction failed")
	}

	// A variation instance is derived fresh per call and dies with
	// the shaper; the same store may be shaped at other instances by
	// other calls.
	if len(variations) > 0 {
		shaper.SetVariations(engineVariations(variations))
	}

	if inner.Direction == ot.DirectionInvalid {
		inner.GuessSegmentProperties()
	}

	shaper.Shape(inner, engineFeatures(features))

	return newGlyphResult(inner), nil
}

func engineFeatures(features []shapebridge.Feature) []ot.Feature {
	if len(features) == 0 {
		return nil
	}
	out := make([]ot.Feature, len(features))
	for i, f := range features {
		end := uint(f.End)
		if f.End == shapebridge.FeatureGlobalEnd {
			end = ot.FeatureGlobalEnd
		}
		out[i] = ot.Feature{
			Tag:   ot.Tag(f.Tag),
			Value: f.Value,
			Start: uint(f.Start),
			End:   end,
		}
	}
	return out
}

func engineVariations(variations []shapebridge.Variation) []ot.Variation {
	out := make([]ot.Variation, len(variations))
	for i, v := range variations {
		out[i] = ot.Variation{
			Tag:   ot.Tag(v.Tag),
			Value: v.Value,
		}
	}
	return out
}
