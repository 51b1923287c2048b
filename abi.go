package shapebridge

// Tag is a 4-byte code packed big-endian into a uint32, so that the
// integer value of "Latn" is 0x4C61746E. Scripts, features and
// variation axes all use this layout on the wire.
type Tag uint32

// MakeTag packs four bytes into a Tag.
func MakeTag(a, b, c, d byte) Tag {
	return Tag(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// TagFromString packs the first four bytes of s into a Tag, padding
// with spaces. Returns 0 for an empty string.
func TagFromString(s string) Tag {
	if s == "" {
		return 0
	}
	var b [4]byte
	b[0], b[1], b[2], b[3] = ' ', ' ', ' ', ' '
	copy(b[:], s)
	return MakeTag(b[0], b[1], b[2], b[3])
}

// String returns the tag as a 4-character string.
func (t Tag) String() string {
	return string([]byte{
		byte(t >> 24),
		byte(t >> 16),
		byte(t >> 8),
		byte(t),
	})
}

// Direction is the text direction of a buffer. The numeric values are
// wire codes fixed for binding stability; they are not contiguous on
// purpose (0 is shared with "no value" sentinels in generated stubs).
type Direction uint32

const (
	DirectionUnset Direction = 0
	DirectionLTR   Direction = 4
	DirectionRTL   Direction = 5
	DirectionTTB   Direction = 6
	DirectionBTT   Direction = 7
)

// IsValid reports whether d is one of the four concrete directions.
func (d Direction) IsValid() bool {
	return d >= DirectionLTR && d <= DirectionBTT
}

// Feature selects an OpenType feature over a half-open cluster range.
type Feature struct {
	// Tag is the feature tag, e.g. 'liga' or 'kern'.
	Tag Tag
	// Value is the feature value: 0 disables, 1 enables, higher
	// values select alternates.
	Value uint32
	// Start is the first cluster the feature applies to.
	Start uint32
	// End is one past the last cluster; FeatureGlobalEnd means
	// "to the end of the buffer".
	End uint32
}

// FeatureGlobalEnd marks a feature range that is open to the end of
// the buffer.
const FeatureGlobalEnd uint32 = 0xFFFFFFFF

// Variation is a coordinate in a variable font's design space.
type Variation struct {
	// Tag is the axis tag, e.g. 'wght' or 'wdth'.
	Tag Tag
	// Value is the axis value in design units.
	Value float32
}

// GlyphInfo is one entry of a shaping result's glyph array.
// The layout is fixed: two little-endian uint32 fields, 8 bytes.
type GlyphInfo struct {
	// GlyphID is the glyph index in the font.
	GlyphID uint32
	// Cluster is the offset into the original text this glyph maps
	// back to, in the units of the encoding the text was added in.
	Cluster uint32
}

// GlyphPosition is one entry of a shaping result's position array.
// The layout is fixed: four little-endian int32 fields, 16 bytes.
type GlyphPosition struct {
	XAdvance int32
	YAdvance int32
	XOffset  int32
	YOffset  int32
}

// Record sizes of the snapshot arrays as serialized for a host.
const (
	GlyphInfoSize     = 8
	GlyphPositionSize = 16
	FeatureSize       = 16
	VariationSize     = 8
)
