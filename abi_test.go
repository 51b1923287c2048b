package shapebridge

import "testing"

func TestTagPacking(t *testing.T) {
	if got := MakeTag('L', 'a', 't', 'n'); got != 0x4C61746E {
		t.Errorf("MakeTag(Latn) = %#x, want 0x4C61746E", got)
	}
	if got := TagFromString("Latn"); got != 0x4C61746E {
		t.Errorf("TagFromString(Latn) = %#x, want 0x4C61746E", got)
	}
}

func TestTagRoundTrip(t *testing.T) {
	for _, s := range []string{"Latn", "Arab", "liga", "kern", "wght", "DFLT"} {
		if got := TagFromString(s).String(); got != s {
			t.Errorf("Round trip of %q produced %q", s, got)
		}
	}
}

func TestTagPadding(t *testing.T) {
	if got := TagFromString("en"); got.String() != "en  " {
		t.Errorf("Short tag padded to %q, want %q", got.String(), "en  ")
	}
	if got := TagFromString(""); got != 0 {
		t.Errorf("Empty tag = %#x, want 0", got)
	}
	// Over-long input truncates to the first four bytes.
	if got := TagFromString("weight"); got != TagFromString("weig") {
		t.Error("Long tag should truncate to four bytes")
	}
}

func TestDirectionWireCodes(t *testing.T) {
	cases := []struct {
		d     Direction
		code  uint32
		valid bool
	}{
		{DirectionUnset, 0, false},
		{DirectionLTR, 4, true},
		{DirectionRTL, 5, true},
		{DirectionTTB, 6, true},
		{DirectionBTT, 7, true},
		{Direction(1), 1, false},
		{Direction(8), 8, false},
	}
	for _, tc := range cases {
		if uint32(tc.d) != tc.code {
			t.Errorf("Direction %v has wire code %d, want %d", tc.d, uint32(tc.d), tc.code)
		}
		if tc.d.IsValid() != tc.valid {
			t.Errorf("Direction %d IsValid = %v, want %v", tc.d, tc.d.IsValid(), tc.valid)
		}
	}
}
