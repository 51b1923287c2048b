package shaping

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/boxesandglue/textshape/ot"
	"golang.org/x/text/language"

	"github.com/glyphbridge/shapebridge"
	"github.com/glyphbridge/shapebridge/errors"
)

// TextBuffer holds input codepoints plus segment properties for one
// shaping run. It is mutable and owned by the host until a shape call
// consumes it.
type TextBuffer struct {
	inner *ot.Buffer

	// lang is the canonicalized BCP-47 tag, empty if unset.
	lang string

	// consumed guards against use-after-shape: the boundary contract
	// makes such use undefined, but detecting it here turns silent
	// corruption into a reportable error.
	consumed bool
}

// NewTextBuffer creates an empty buffer with all segment properties
// unset.
func NewTextBuffer() *TextBuffer {
	return &TextBuffer{inner: ot.NewBuffer()}
}

// newTextBufferFrom wraps a recycled engine buffer.
func newTextBufferFrom(inner *ot.Buffer) *TextBuffer {
	return &TextBuffer{inner: inner}
}

// take transfers ownership of the engine buffer to a shape call.
func (b *TextBuffer) take() *ot.Buffer {
	inner := b.inner
	b.inner = nil
	b.consumed = true
	return inner
}

func (b *TextBuffer) guard() error {
	if b.consumed {
		return errors.Consumed(errors.PhaseBuffer)
	}
	return nil
}

// AppendUTF8 appends text codepoint by codepoint. Cluster values are
// byte offsets into text. Invalid UTF-8 rejects the whole call and
// leaves the buffer unmodified.
func (b *TextBuffer) AppendUTF8(text []byte) error {
	if err := b.guard(); err != nil {
		return err
	}
	if text == nil {
		return errors.NullArgument(errors.PhaseBuffer, "text")
	}
	if !utf8.Valid(text) {
		return errors.InvalidUTF8(errors.PhaseBuffer, text)
	}

	cps := make([]ot.Codepoint, 0, len(text))
	clusters := make([]int, 0, len(text))
	byteIdx := 0
	for _, r := range string(text) {
		cps = append(cps, ot.Codepoint(r))
		clusters = append(clusters, byteIdx)
		byteIdx += utf8.RuneLen(r)
	}
	b.append(cps, clusters)
	return nil
}

// AppendUTF16 appends text given as 16-bit code units. Surrogate
// pairs are decoded; invalid sequences are repaired in place with
// U+FFFD instead of failing the call. Cluster values are unit
// offsets: a codepoint advances the cluster counter by however many
// units it consumed, so positions keep their original-encoding
// meaning.
func (b *TextBuffer) AppendUTF16(units []uint16) error {
	if err := b.guard(); err != nil {
		return err
	}
	if units == nil {
		return errors.NullArgument(errors.PhaseBuffer, "units")
	}

	cps := make([]ot.Codepoint, 0, len(units))
	clusters := make([]int, 0, len(units))
	cluster := 0
	for i := 0; i < len(units); {
		u := units[i]
		r := rune(utf8.RuneError)
		width := 1
		switch {
		case u < 0xD800 || u >= 0xE000:
			r = rune(u)
		case u < 0xDC00 && i+1 < len(units):
			if dec := utf16.DecodeRune(rune(u), rune(units[i+1])); dec != utf8.RuneError {
				r = dec
				width = 2
			}
		}
		cps = append(cps, ot.Codepoint(r))
		clusters = append(clusters, cluster)
		cluster += width
		i += width
	}
	b.append(cps, clusters)
	return nil
}

func (b *TextBuffer) append(cps []ot.Codepoint, clusters []int) {
	// The engine assigns slice-index clusters; overwrite them with
	// the original-encoding offsets tracked by the caller.
	start := len(b.inner.Info)
	b.inner.AddCodepoints(cps)
	for i, c := range clusters {
		b.inner.Info[start+i].Cluster = c
	}
}

// Len returns the number of codepoints in the buffer, or 0 on a
// consumed buffer.
func (b *TextBuffer) Len() int {
	if b.consumed {
		return 0
	}
	return b.inner.Len()
}

// Clear resets content, cluster counters and segment properties. The
// buffer identity is unchanged and the underlying storage is kept for
// reuse.
func (b *TextBuffer) Clear() {
	if b.consumed {
		return
	}
	b.inner.Reset()
	b.lang = ""
}

// SetDirection sets the text direction from its wire code. Codes
// outside the enumeration reset the direction to unset.
func (b *TextBuffer) SetDirection(d shapebridge.Direction) {
	if b.consumed {
		return
	}
	b.inner.Direction = engineDirection(d)
}

// Direction returns the current direction's wire code.
func (b *TextBuffer) Direction() shapebridge.Direction {
	if b.consumed {
		return shapebridge.DirectionUnset
	}
	return wireDirection(b.inner.Direction)
}

// SetScript sets the ISO-15924 script tag.
func (b *TextBuffer) SetScript(tag shapebridge.Tag) {
	if b.consumed {
		return
	}
	b.inner.Script = ot.Tag(tag)
}

// Script returns the script tag, 0 if unset.
func (b *TextBuffer) Script() shapebridge.Tag {
	if b.consumed {
		return 0
	}
	return shapebridge.Tag(b.inner.Script)
}

// SetLanguage parses a BCP-47 tag and stores its canonical form.
// Invalid input is rejected with the buffer left unmodified; bytes
// that are not valid UTF-8 report an encoding failure, distinct from
// a well-encoded but unparseable tag.
func (b *TextBuffer) SetLanguage(lang string) error {
	if err := b.guard(); err != nil {
		return err
	}
	if lang == "" {
		return errors.NullArgument(errors.PhaseBuffer, "language")
	}
	if !utf8.ValidString(lang) {
		return errors.InvalidUTF8(errors.PhaseBuffer, []byte(lang))
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return errors.InvalidLanguage(errors.PhaseBuffer, lang, err)
	}
	b.lang = tag.String()
	b.inner.Language = otLanguageTag(tag)
	return nil
}

// Language returns the canonicalized BCP-47 tag, empty if unset.
func (b *TextBuffer) Language() string {
	if b.consumed {
		return ""
	}
	return b.lang
}

// GuessSegmentProperties fills in unset segment properties from
// buffer content. Explicitly set properties are never overridden, so
// invoking it twice without intervening mutation is a no-op the
// second time.
func (b *TextBuffer) GuessSegmentProperties() {
	if b.consumed {
		return
	}
	b.inner.GuessSegmentProperties()
}

// otLanguageTag derives the language-system tag handed to the engine
// from a parsed BCP-47 tag: the primary subtag, uppercased and
// space-padded. Tags a font does not carry simply fall back to its
// default language system.
func otLanguageTag(tag language.Tag) ot.Tag {
	base, _ := tag.Base()
	s := strings.ToUpper(base.String())
	var b [4]byte
	b[0], b[1], b[2], b[3] = ' ', ' ', ' ', ' '
	copy(b[:], s)
	return ot.MakeTag(b[0], b[1], b[2], b[3])
}
