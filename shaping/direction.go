package shaping

import (
	"github.com/boxesandglue/textshape/ot"

	"github.com/glyphbridge/shapebridge"
)

// engineDirection maps a wire-code direction to the engine's
// representation. Unknown codes map to the engine's unset value.
func engineDirection(d shapebridge.Direction) ot.Direction {
	switch d {
	case shapebridge.DirectionLTR:
		return ot.DirectionLTR
	case shapebridge.DirectionRTL:
		return ot.DirectionRTL
	case shapebridge.DirectionTTB:
		return ot.DirectionTTB
	case shapebridge.DirectionBTT:
		return ot.DirectionBTT
	default:
		return ot.DirectionInvalid
	}
}

// wireDirection maps an engine direction back to its wire code.
func wireDirection(d ot.Direction) shapebridge.Direction {
	switch d {
	case ot.DirectionLTR:
		return shapebridge.DirectionLTR
	case ot.DirectionRTL:
		return shapebridge.DirectionRTL
	case ot.DirectionTTB:
		return shapebridge.DirectionTTB
	case ot.DirectionBTT:
		return shapebridge.DirectionBTT
	default:
		return shapebridge.DirectionUnset
	}
}
