package wasmhost

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/glyphbridge/shapebridge/errors"
	"github.com/glyphbridge/shapebridge/ffi"
)

// A minimal module exporting one page of linear memory, for driving
// the guest-memory readers without a full guest build.
var memoryOnlyModule = []byte{
	0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, // magic + version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 memory, min 1 page
	0x07, 0x0A, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // export "memory"
}

func guestMemoryModule(t *testing.T, r wazero.Runtime) api.Module {
	t.Helper()
	mod, err := r.Instantiate(context.Background(), memoryOnlyModule)
	if err != nil {
		t.Fatalf("Instantiating memory module: %v", err)
	}
	return mod
}

func TestReadersRejectWrappingCounts(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mem := guestMemoryModule(t, r).Memory()

	// Each count is chosen so count*recordSize wraps uint32 to a tiny
	// value; the read must fail outright, not pass the bounds check on
	// the wrapped length.
	if _, ok := readUTF16(mem, 8, 0x80000001); ok {
		t.Error("readUTF16 accepted a wrapping unit count")
	}
	if _, ok := readFeatures(mem, 8, 0x10000001); ok {
		t.Error("readFeatures accepted a wrapping record count")
	}
	if _, ok := readVariations(mem, 8, 0x20000001); ok {
		t.Error("readVariations accepted a wrapping record count")
	}

	// Non-wrapping but out-of-range counts fail the same way.
	if _, ok := readUTF16(mem, 8, 0x7FFFFFFF); ok {
		t.Error("readUTF16 accepted a count beyond the memory size")
	}

	// Sane counts still read.
	if units, ok := readUTF16(mem, 8, 4); !ok || len(units) != 4 {
		t.Errorf("readUTF16 in-bounds read failed: ok=%v len=%d", ok, len(units))
	}
	if features, ok := readFeatures(mem, 8, 2); !ok || len(features) != 2 {
		t.Errorf("readFeatures in-bounds read failed: ok=%v len=%d", ok, len(features))
	}
}

func TestHostFunctionsSurviveHostileCounts(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	boundary := ffi.New()
	defer boundary.Close()
	h := New(boundary)

	guest := guestMemoryModule(t, r)
	buf := boundary.BufferNew()

	// Hostile counts surface as sentinels through the host functions,
	// never as traps.
	stack := []uint64{uint64(uint32(buf)), 8, 0x80000001}
	h.bufferAddUTF16(ctx, guest, stack)
	if got := int32(uint32(stack[0])); got != errors.StatusNullArgument {
		t.Errorf("buffer-add-utf16 with wrapping count = %d, want %d", got, errors.StatusNullArgument)
	}
	if n := boundary.BufferLen(buf); n != 0 {
		t.Errorf("Rejected append modified the buffer: len = %d", n)
	}

	stack = []uint64{0, uint64(uint32(buf)), 8, 0x10000001, 0, 0}
	h.shapeFull(ctx, guest, stack)
	if got := uint32(stack[0]); got != 0 {
		t.Errorf("shape-full with wrapping feature count = %d, want 0", got)
	}
	if n := boundary.BufferLen(buf); n != 0 {
		t.Error("Failed shape-full precondition must not consume the buffer")
	}

	stack = []uint64{0, uint64(uint32(buf)), 0, 0, 8, 0x20000001}
	h.shapeFull(ctx, guest, stack)
	if got := uint32(stack[0]); got != 0 {
		t.Errorf("shape-full with wrapping variation count = %d, want 0", got)
	}
}
