package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(PhaseFont, KindFontParse).
		Detail("table directory truncated").
		Build()

	s := err.Error()
	if !strings.Contains(s, "[font]") {
		t.Errorf("Expected phase in message, got %q", s)
	}
	if !strings.Contains(s, "font_parse") {
		t.Errorf("Expected kind in message, got %q", s)
	}
	if !strings.Contains(s, "table directory truncated") {
		t.Errorf("Expected detail in message, got %q", s)
	}
}

func TestErrorCauseChain(t *testing.T) {
	cause := stderrors.New("underlying")
	err := FontParse(PhaseFont, 2, cause)

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "underlying") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}
	if err.Value != 2 {
		t.Errorf("Expected face index 2 as value, got %v", err.Value)
	}
}

func TestErrorIs(t *testing.T) {
	a := NullHandle(PhaseBuffer)
	b := NullHandle(PhaseBuffer)
	c := NullHandle(PhaseFont)

	if !stderrors.Is(a, b) {
		t.Error("Same phase and kind should match")
	}
	if stderrors.Is(a, c) {
		t.Error("Different phase should not match")
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int32
	}{
		{NullHandle(PhaseBuffer), StatusNullHandle},
		{Consumed(PhaseShape), StatusNullHandle},
		{Invalidated(PhaseResult), StatusNullHandle},
		{NullArgument(PhaseBuffer, "text"), StatusNullArgument},
		{InvalidUTF8(PhaseBuffer, []byte{0xFF}), StatusEncoding},
		{InvalidLanguage(PhaseBuffer, "x!", nil), StatusValidation},
		{FontParse(PhaseFont, 0, nil), StatusValidation},
		{Reparse(PhaseShape, nil), StatusValidation},
	}

	for _, tt := range tests {
		if got := tt.err.Status(); got != tt.status {
			t.Errorf("%s: Status() = %d, want %d", tt.err.Kind, got, tt.status)
		}
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(nil) != StatusOK {
		t.Error("nil error should map to StatusOK")
	}
	if StatusOf(stderrors.New("plain")) != StatusValidation {
		t.Error("plain error should map to StatusValidation")
	}
	if StatusOf(NullArgument(PhaseFont, "data")) != StatusNullArgument {
		t.Error("structured error should use its own mapping")
	}
}
