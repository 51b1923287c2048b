package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/glyphbridge/shapebridge/errors"
	"github.com/glyphbridge/shapebridge/ffi"
	"github.com/glyphbridge/shapebridge/resource"
)

// ModuleName is the import namespace guests use for the shaping
// boundary.
const ModuleName = "glyphbridge:shaping/ffi"

// HostModule bridges a Boundary to wasm guests.
type HostModule struct {
	boundary *ffi.Boundary
	log      *zap.Logger
}

// Option configures a HostModule.
type Option func(*HostModule)

// WithLogger sets the logger for registration and guest-memory
// failure reporting.
func WithLogger(log *zap.Logger) Option {
	return func(h *HostModule) {
		h.log = log
	}
}

// New creates a HostModule over an existing boundary. The boundary may
// be shared with host-side callers; handles created by guests and by
// the host live in the same table.
func New(boundary *ffi.Boundary, opts ...Option) *HostModule {
	h := &HostModule{
		boundary: boundary,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var i32 = api.ValueTypeI32

// Instantiate registers every boundary entry point on r under
// ModuleName and instantiates the host module.
func (h *HostModule) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)

	type hostFn struct {
		name    string
		params  []api.ValueType
		results []api.ValueType
		fn      api.GoModuleFunc
	}

	fns := []hostFn{
		{"buffer-new", nil, []api.ValueType{i32}, h.bufferNew},
		{"buffer-add-utf8", []api.ValueType{i32, i32, i32}, []api.ValueType{i32}, h.bufferAddUTF8},
		{"buffer-add-utf16", []api.ValueType{i32, i32, i32}, []api.ValueType{i32}, h.bufferAddUTF16},
		{"buffer-len", []api.ValueType{i32}, []api.ValueType{i32}, h.bufferLen},
		{"buffer-clear", []api.ValueType{i32}, []api.ValueType{i32}, h.bufferClear},
		{"buffer-set-direction", []api.ValueType{i32, i32}, nil, h.bufferSetDirection},
		{"buffer-direction", []api.ValueType{i32}, []api.ValueType{i32}, h.bufferDirection},
		{"buffer-set-script", []api.ValueType{i32, i32}, nil, h.bufferSetScript},
		{"buffer-script", []api.ValueType{i32}, []api.ValueType{i32}, h.bufferScript},
		{"buffer-set-language", []api.ValueType{i32, i32, i32}, []api.ValueType{i32}, h.bufferSetLanguage},
		{"buffer-guess-segment-properties", []api.ValueType{i32}, []api.ValueType{i32}, h.bufferGuess},
		{"buffer-free", []api.ValueType{i32}, nil, h.bufferFree},
		{"font-from-data", []api.ValueType{i32, i32}, []api.ValueType{i32}, h.fontFromData},
		{"font-from-data-index", []api.ValueType{i32, i32, i32}, []api.ValueType{i32}, h.fontFromDataIndex},
		{"font-units-per-em", []api.ValueType{i32}, []api.ValueType{i32}, h.fontUnitsPerEm},
		{"font-free", []api.ValueType{i32}, nil, h.fontFree},
		{"shape", []api.ValueType{i32, i32}, []api.ValueType{i32}, h.shape},
		{"shape-with-features", []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}, h.shapeWithFeatures},
		{"shape-full", []api.ValueType{i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}, h.shapeFull},
		{"result-len", []api.ValueType{i32}, []api.ValueType{i32}, h.resultLen},
		{"result-copy-infos", []api.ValueType{i32, i32, i32}, []api.ValueType{i32}, h.resultCopyInfos},
		{"result-copy-positions", []api.ValueType{i32, i32, i32}, []api.ValueType{i32}, h.resultCopyPositions},
		{"result-retire-to-buffer", []api.ValueType{i32}, []api.ValueType{i32}, h.resultRetireToBuffer},
		{"result-free", []api.ValueType{i32}, nil, h.resultFree},
	}

	for _, f := range fns {
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(errors.PhaseHost, ModuleName, "*", err)
	}
	return mod, nil
}

func handleArg(v uint64) resource.Handle {
	return resource.Handle(uint32(v))
}

// statusWord widens a signed status code to the i32 stack slot via its
// two's-complement uint32 representation.
func statusWord(s int32) uint64 {
	return uint64(uint32(s))
}

func (h *HostModule) bufferNew(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.BufferNew()))
}

func (h *HostModule) bufferAddUTF8(_ context.Context, mod api.Module, stack []uint64) {
	handle := handleArg(stack[0])
	text, ok := readBytes(mod.Memory(), uint32(stack[1]), uint32(stack[2]))
	if !ok {
		h.log.Debug("unreadable text region", zap.Uint32("ptr", uint32(stack[1])))
		stack[0] = statusWord(errors.StatusNullArgument)
		return
	}
	stack[0] = uint64(uint32(h.boundary.BufferAddUTF8(handle, text)))
}

func (h *HostModule) bufferAddUTF16(_ context.Context, mod api.Module, stack []uint64) {
	handle := handleArg(stack[0])
	units, ok := readUTF16(mod.Memory(), uint32(stack[1]), uint32(stack[2]))
	if !ok {
		h.log.Debug("unreadable text region", zap.Uint32("ptr", uint32(stack[1])))
		stack[0] = statusWord(errors.StatusNullArgument)
		return
	}
	stack[0] = uint64(uint32(h.boundary.BufferAddUTF16(handle, units)))
}

func (h *HostModule) bufferLen(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.BufferLen(handleArg(stack[0]))))
}

func (h *HostModule) bufferClear(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.BufferClear(handleArg(stack[0]))))
}

func (h *HostModule) bufferSetDirection(_ context.Context, _ api.Module, stack []uint64) {
	h.boundary.BufferSetDirection(handleArg(stack[0]), uint32(stack[1]))
}

func (h *HostModule) bufferDirection(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(h.boundary.BufferDirection(handleArg(stack[0])))
}

func (h *HostModule) bufferSetScript(_ context.Context, _ api.Module, stack []uint64) {
	h.boundary.BufferSetScript(handleArg(stack[0]), uint32(stack[1]))
}

func (h *HostModule) bufferScript(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(h.boundary.BufferScript(handleArg(stack[0])))
}

func (h *HostModule) bufferSetLanguage(_ context.Context, mod api.Module, stack []uint64) {
	handle := handleArg(stack[0])
	raw, ok := readBytes(mod.Memory(), uint32(stack[1]), uint32(stack[2]))
	if !ok {
		stack[0] = statusWord(errors.StatusNullArgument)
		return
	}
	stack[0] = uint64(uint32(h.boundary.BufferSetLanguage(handle, string(raw))))
}

func (h *HostModule) bufferGuess(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.BufferGuessSegmentProperties(handleArg(stack[0]))))
}

func (h *HostModule) bufferFree(_ context.Context, _ api.Module, stack []uint64) {
	h.boundary.BufferFree(handleArg(stack[0]))
}

func (h *HostModule) fontFromData(_ context.Context, mod api.Module, stack []uint64) {
	data, ok := readBytes(mod.Memory(), uint32(stack[0]), uint32(stack[1]))
	if !ok {
		stack[0] = uint64(uint32(resource.Nil))
		return
	}
	stack[0] = uint64(uint32(h.boundary.FontFromData(data)))
}

func (h *HostModule) fontFromDataIndex(_ context.Context, mod api.Module, stack []uint64) {
	data, ok := readBytes(mod.Memory(), uint32(stack[0]), uint32(stack[1]))
	if !ok {
		stack[0] = uint64(uint32(resource.Nil))
		return
	}
	stack[0] = uint64(uint32(h.boundary.FontFromDataIndex(data, int32(uint32(stack[2])))))
}

func (h *HostModule) fontUnitsPerEm(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.FontUnitsPerEm(handleArg(stack[0]))))
}

func (h *HostModule) fontFree(_ context.Context, _ api.Module, stack []uint64) {
	h.boundary.FontFree(handleArg(stack[0]))
}

func (h *HostModule) shape(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.Shape(handleArg(stack[0]), handleArg(stack[1]))))
}

func (h *HostModule) shapeWithFeatures(_ context.Context, mod api.Module, stack []uint64) {
	font, buf := handleArg(stack[0]), handleArg(stack[1])
	features, ok := readFeatures(mod.Memory(), uint32(stack[2]), uint32(stack[3]))
	if !ok {
		stack[0] = uint64(uint32(resource.Nil))
		return
	}
	stack[0] = uint64(uint32(h.boundary.ShapeWithFeatures(font, buf, features)))
}

func (h *HostModule) shapeFull(_ context.Context, mod api.Module, stack []uint64) {
	font, buf := handleArg(stack[0]), handleArg(stack[1])
	features, ok := readFeatures(mod.Memory(), uint32(stack[2]), uint32(stack[3]))
	if !ok {
		stack[0] = uint64(uint32(resource.Nil))
		return
	}
	variations, ok := readVariations(mod.Memory(), uint32(stack[4]), uint32(stack[5]))
	if !ok {
		stack[0] = uint64(uint32(resource.Nil))
		return
	}
	stack[0] = uint64(uint32(h.boundary.ShapeFull(font, buf, features, variations)))
}

func (h *HostModule) resultLen(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.ResultLen(handleArg(stack[0]))))
}

// resultCopyInfos writes up to cap 8-byte records at ptr and returns
// the total glyph count, so a guest can size a second call. -1 on a
// null handle, -2 when the destination region is unwritable.
func (h *HostModule) resultCopyInfos(_ context.Context, mod api.Module, stack []uint64) {
	handle := handleArg(stack[0])
	ptr, capacity := uint32(stack[1]), uint32(stack[2])

	infos := h.boundary.ResultInfos(handle)
	if infos == nil {
		stack[0] = statusWord(-1)
		return
	}
	n := uint32(len(infos))
	written := n
	if capacity < written {
		written = capacity
	}
	if written > 0 {
		if !mod.Memory().Write(ptr, encodeGlyphInfos(infos[:written])) {
			h.log.Debug("unwritable snapshot region", zap.Uint32("ptr", ptr))
			stack[0] = statusWord(errors.StatusNullArgument)
			return
		}
	}
	stack[0] = uint64(n)
}

// resultCopyPositions mirrors resultCopyInfos with 16-byte records.
func (h *HostModule) resultCopyPositions(_ context.Context, mod api.Module, stack []uint64) {
	handle := handleArg(stack[0])
	ptr, capacity := uint32(stack[1]), uint32(stack[2])

	positions := h.boundary.ResultPositions(handle)
	if positions == nil {
		stack[0] = statusWord(-1)
		return
	}
	n := uint32(len(positions))
	written := n
	if capacity < written {
		written = capacity
	}
	if written > 0 {
		if !mod.Memory().Write(ptr, encodeGlyphPositions(positions[:written])) {
			h.log.Debug("unwritable snapshot region", zap.Uint32("ptr", ptr))
			stack[0] = statusWord(errors.StatusNullArgument)
			return
		}
	}
	stack[0] = uint64(n)
}

func (h *HostModule) resultRetireToBuffer(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(uint32(h.boundary.ResultRetireToBuffer(handleArg(stack[0]))))
}

func (h *HostModule) resultFree(_ context.Context, _ api.Module, stack []uint64) {
	h.boundary.ResultFree(handleArg(stack[0]))
}
