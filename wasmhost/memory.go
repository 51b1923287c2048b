package wasmhost

import (
	"encoding/binary"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/glyphbridge/shapebridge"
)

// readBytes copies a guest region. A zero pointer or an out-of-range
// region reads as (nil, false).
func readBytes(mem api.Memory, ptr, length uint32) ([]byte, bool) {
	if ptr == 0 {
		return nil, false
	}
	if length == 0 {
		return []byte{}, true
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return nil, false
	}
	// mem.Read aliases guest memory; copy so later guest writes cannot
	// race the host-side use.
	out := make([]byte, length)
	copy(out, data)
	return out, true
}

// byteLength widens a record count to a byte length. A count whose
// product would wrap uint32 can never fit in a 32-bit memory, so it
// reads as out of range rather than as a tiny wrapped length.
func byteLength(count, recordSize uint32) (uint32, bool) {
	length := uint64(count) * uint64(recordSize)
	if length > math.MaxUint32 {
		return 0, false
	}
	return uint32(length), true
}

// readUTF16 copies a guest region of 16-bit code units.
func readUTF16(mem api.Memory, ptr, count uint32) ([]uint16, bool) {
	length, ok := byteLength(count, 2)
	if !ok {
		return nil, false
	}
	raw, ok := readBytes(mem, ptr, length)
	if !ok {
		return nil, false
	}
	units := make([]uint16, count)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return units, true
}

// readFeatures decodes a guest feature list: 16-byte records of four
// little-endian u32 fields (tag, value, start, end).
func readFeatures(mem api.Memory, ptr, count uint32) ([]shapebridge.Feature, bool) {
	if count == 0 {
		return nil, true
	}
	length, ok := byteLength(count, shapebridge.FeatureSize)
	if !ok {
		return nil, false
	}
	raw, ok := readBytes(mem, ptr, length)
	if !ok {
		return nil, false
	}
	features := make([]shapebridge.Feature, count)
	for i := range features {
		rec := raw[i*shapebridge.FeatureSize:]
		features[i] = shapebridge.Feature{
			Tag:   shapebridge.Tag(binary.LittleEndian.Uint32(rec[0:])),
			Value: binary.LittleEndian.Uint32(rec[4:]),
			Start: binary.LittleEndian.Uint32(rec[8:]),
			End:   binary.LittleEndian.Uint32(rec[12:]),
		}
	}
	return features, true
}

// readVariations decodes a guest variation list: 8-byte records of a
// little-endian u32 tag and an f32 value.
func readVariations(mem api.Memory, ptr, count uint32) ([]shapebridge.Variation, bool) {
	if count == 0 {
		return nil, true
	}
	length, ok := byteLength(count, shapebridge.VariationSize)
	if !ok {
		return nil, false
	}
	raw, ok := readBytes(mem, ptr, length)
	if !ok {
		return nil, false
	}
	variations := make([]shapebridge.Variation, count)
	for i := range variations {
		rec := raw[i*shapebridge.VariationSize:]
		variations[i] = shapebridge.Variation{
			Tag:   shapebridge.Tag(binary.LittleEndian.Uint32(rec[0:])),
			Value: math.Float32frombits(binary.LittleEndian.Uint32(rec[4:])),
		}
	}
	return variations, true
}

// encodeGlyphInfos serializes a snapshot into 8-byte little-endian
// records (glyph id, cluster).
func encodeGlyphInfos(infos []shapebridge.GlyphInfo) []byte {
	out := make([]byte, len(infos)*shapebridge.GlyphInfoSize)
	for i, gi := range infos {
		rec := out[i*shapebridge.GlyphInfoSize:]
		binary.LittleEndian.PutUint32(rec[0:], gi.GlyphID)
		binary.LittleEndian.PutUint32(rec[4:], gi.Cluster)
	}
	return out
}

// encodeGlyphPositions serializes a snapshot into 16-byte
// little-endian records (x advance, y advance, x offset, y offset,
// each a signed 32-bit value).
func encodeGlyphPositions(positions []shapebridge.GlyphPosition) []byte {
	out := make([]byte, len(positions)*shapebridge.GlyphPositionSize)
	for i, gp := range positions {
		rec := out[i*shapebridge.GlyphPositionSize:]
		binary.LittleEndian.PutUint32(rec[0:], uint32(gp.XAdvance))
		binary.LittleEndian.PutUint32(rec[4:], uint32(gp.YAdvance))
		binary.LittleEndian.PutUint32(rec[8:], uint32(gp.XOffset))
		binary.LittleEndian.PutUint32(rec[12:], uint32(gp.YOffset))
	}
	return out
}
