package wasmhost

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/glyphbridge/shapebridge"
	"github.com/glyphbridge/shapebridge/ffi"
)

func TestInstantiateExports(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	boundary := ffi.New()
	defer boundary.Close()

	mod, err := New(boundary).Instantiate(ctx, r)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	names := []string{
		"buffer-new", "buffer-add-utf8", "buffer-add-utf16", "buffer-len",
		"buffer-clear", "buffer-set-direction", "buffer-direction",
		"buffer-set-script", "buffer-script", "buffer-set-language",
		"buffer-guess-segment-properties", "buffer-free",
		"font-from-data", "font-from-data-index", "font-units-per-em",
		"font-free",
		"shape", "shape-with-features", "shape-full",
		"result-len", "result-copy-infos", "result-copy-positions",
		"result-retire-to-buffer", "result-free",
	}
	for _, name := range names {
		if mod.ExportedFunction(name) == nil {
			t.Errorf("Export %q missing", name)
		}
	}
}

func TestHostCallsWithoutGuestMemory(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	boundary := ffi.New()
	defer boundary.Close()

	mod, err := New(boundary).Instantiate(ctx, r)
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}

	call := func(name string, args ...uint64) uint64 {
		t.Helper()
		res, err := mod.ExportedFunction(name).Call(ctx, args...)
		if err != nil {
			t.Fatalf("%s trapped: %v", name, err)
		}
		if len(res) == 0 {
			return 0
		}
		return res[0]
	}

	h := call("buffer-new")
	if h == 0 {
		t.Fatal("buffer-new returned the null handle")
	}
	if n := int32(uint32(call("buffer-len", h))); n != 0 {
		t.Errorf("buffer-len = %d, want 0", n)
	}

	call("buffer-set-direction", h, uint64(shapebridge.DirectionRTL))
	if d := uint32(call("buffer-direction", h)); d != uint32(shapebridge.DirectionRTL) {
		t.Errorf("buffer-direction = %d, want %d", d, shapebridge.DirectionRTL)
	}

	latn := uint64(shapebridge.TagFromString("Latn"))
	call("buffer-set-script", h, latn)
	if s := call("buffer-script", h); s != latn {
		t.Errorf("buffer-script = %#x, want %#x", s, latn)
	}

	// Null-handle paths stay in-band through the wasm surface.
	if n := int32(uint32(call("buffer-len", 0))); n != -1 {
		t.Errorf("buffer-len(0) = %d, want -1", n)
	}
	if res := call("shape", 0, h); res != 0 {
		t.Errorf("shape with null font = %d, want 0", res)
	}
	if n := int32(uint32(call("buffer-len", h))); n != 0 {
		t.Error("Failed shape precondition must not consume the buffer")
	}
	if n := int32(uint32(call("result-len", 0))); n != -1 {
		t.Errorf("result-len(0) = %d, want -1", n)
	}
	if rb := call("result-retire-to-buffer", 0); rb != 0 {
		t.Errorf("result-retire-to-buffer(0) = %d, want 0", rb)
	}

	call("buffer-free", h)
	if n := int32(uint32(call("buffer-len", h))); n != -1 {
		t.Errorf("buffer-len after free = %d, want -1", n)
	}
	// Frees are null-safe.
	call("buffer-free", 0)
	call("font-free", 0)
	call("result-free", 0)
}

func TestEncodeGlyphInfos(t *testing.T) {
	infos := []shapebridge.GlyphInfo{
		{GlyphID: 0x11223344, Cluster: 7},
		{GlyphID: 2, Cluster: 0xAABBCCDD},
	}
	raw := encodeGlyphInfos(infos)
	if len(raw) != 2*shapebridge.GlyphInfoSize {
		t.Fatalf("Encoded length = %d, want %d", len(raw), 2*shapebridge.GlyphInfoSize)
	}
	if got := binary.LittleEndian.Uint32(raw[0:]); got != 0x11223344 {
		t.Errorf("Glyph 0 id = %#x", got)
	}
	if got := binary.LittleEndian.Uint32(raw[4:]); got != 7 {
		t.Errorf("Glyph 0 cluster = %d", got)
	}
	if got := binary.LittleEndian.Uint32(raw[12:]); got != 0xAABBCCDD {
		t.Errorf("Glyph 1 cluster = %#x", got)
	}
}

func TestEncodeGlyphPositions(t *testing.T) {
	positions := []shapebridge.GlyphPosition{
		{XAdvance: 512, YAdvance: 0, XOffset: -3, YOffset: 100},
	}
	raw := encodeGlyphPositions(positions)
	if len(raw) != shapebridge.GlyphPositionSize {
		t.Fatalf("Encoded length = %d, want %d", len(raw), shapebridge.GlyphPositionSize)
	}
	if got := int32(binary.LittleEndian.Uint32(raw[0:])); got != 512 {
		t.Errorf("XAdvance = %d, want 512", got)
	}
	if got := int32(binary.LittleEndian.Uint32(raw[8:])); got != -3 {
		t.Errorf("XOffset = %d, want -3 (sign preserved through the wire)", got)
	}
	if got := int32(binary.LittleEndian.Uint32(raw[12:])); got != 100 {
		t.Errorf("YOffset = %d, want 100", got)
	}
}
