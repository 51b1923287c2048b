// Package testutil provides utilities for testing.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
)

// FindTestFont locates a test font by name. It searches the module's
// testdata/fonts directory first, then a few common system font
// locations. Returns "" when the font cannot be found; callers are
// expected to t.Skip in that case.
func FindTestFont(name string) string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	moduleRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")

	candidates := []string{
		filepath.Join(moduleRoot, "testdata", "fonts", name),
		filepath.Join(moduleRoot, "testdata", name),
		filepath.Join("/usr/share/fonts/truetype/dejavu", name),
		filepath.Join("/usr/share/fonts/truetype", name),
		filepath.Join("/usr/share/fonts/TTF", name),
		filepath.Join("/Library/Fonts", name),
		filepath.Join("/System/Library/Fonts/Supplemental", name),
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FindAnyTestFont returns the first font it can locate from a list of
// names that commonly exist either in testdata or on developer
// machines.
func FindAnyTestFont() string {
	names := []string{
		"Roboto-Regular.ttf",
		"DejaVuSans.ttf",
		"FreeSans.ttf",
		"Arial.ttf",
	}
	for _, n := range names {
		if p := FindTestFont(n); p != "" {
			return p
		}
	}
	return ""
}

// FindVariableTestFont returns a variable font if one can be located,
// for tests that exercise design-space instancing.
func FindVariableTestFont() string {
	names := []string{
		"Roboto-VariableFont.ttf",
		"RobotoFlex-VariableFont.ttf",
		"SourceSansVariable-Roman.ttf",
	}
	for _, n := range names {
		if p := FindTestFont(n); p != "" {
			return p
		}
	}
	return ""
}
