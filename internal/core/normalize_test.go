package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// NormalizeStr Tests
// ----------------------------------------------------------------------------

func TestNormalizeStr(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		uppercase bool
		want      string
	}{
		{name: "empty", input: "", uppercase: false, want: ""},
		{name: "whitespace only", input: "   \t  ", uppercase: false, want: ""},
		{name: "trims edges", input: "  7F - Final  ", uppercase: false, want: "7F - Final"},
		{name: "collapses internal runs", input: "7F   -   Final\tAssembly", uppercase: false, want: "7F - Final Assembly"},
		{name: "uppercase", input: "clamp unit", uppercase: true, want: "CLAMP UNIT"},
		{name: "uppercase with collapse", input: "  weld   gun ", uppercase: true, want: "WELD GUN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStr(tt.input, tt.uppercase)
			if got != tt.want {
				t.Errorf("NormalizeStr(%q, %v) = %q, want %q", tt.input, tt.uppercase, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// NormalizeCode Tests
// ----------------------------------------------------------------------------

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain code unchanged", input: "7F-010R-H", want: "7F-010R-H"},
		{name: "lowercase uppercased", input: "7f-010r-h", want: "7F-010R-H"},
		{name: "en dash folded", input: "7F–010", want: "7F-010"},
		{name: "em dash folded", input: "7F—010", want: "7F-010"},
		{name: "minus sign folded", input: "7F−010", want: "7F-010"},
		{name: "fullwidth hyphen folded", input: "7F－010", want: "7F-010"},
		{name: "repeated hyphens collapsed", input: "7F--010---R", want: "7F-010-R"},
		{name: "leading punctuation stripped", input: "--7F-010", want: "7F-010"},
		{name: "trailing punctuation stripped", input: "7F-010**", want: "7F-010"},
		{name: "surrounding noise stripped", input: " (7F-010) ", want: "7F-010"},
		{name: "underscore kept", input: "7F_010", want: "7F_010"},
		{name: "interior space kept as single", input: "7F  010", want: "7F 010"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCode(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CoerceString Tests
// ----------------------------------------------------------------------------

func TestCoerceString(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "string passthrough", input: "7F-010", want: "7F-010"},
		{name: "float without scientific notation", input: 1.2345678901234e+12, want: "1234567890123"},
		{name: "float drops decimals", input: 42.0, want: "42"},
		{name: "int", input: 7, want: "7"},
		{name: "int64", input: int64(9007199254740993), want: "9007199254740993"},
		{name: "bool", input: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceString(tt.input)
			if got != tt.want {
				t.Errorf("CoerceString(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "7F-010", want: "7F-010"},
		{name: "whitespace trimmed", input: "  7F-010  ", want: "7F-010"},
		{name: "excel formula quoted", input: `="7F-010"`, want: "7F-010"},
		{name: "excel formula bare", input: "=7F-010", want: "7F-010"},
		{name: "surrounding quotes", input: `"7F-010"`, want: "7F-010"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanCell(tt.input)
			if got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	header := []string{"Area Name", "  Station ", "Tooling  Number RH"}
	idx := MakeHeaderIndex(header)

	if got, ok := idx["area name"]; !ok || got != 0 {
		t.Errorf("expected area name at 0, got %d (ok=%v)", got, ok)
	}
	if got, ok := idx["station"]; !ok || got != 1 {
		t.Errorf("expected station at 1, got %d (ok=%v)", got, ok)
	}
	if got, ok := idx["tooling number rh"]; !ok || got != 2 {
		t.Errorf("expected tooling number rh at 2, got %d (ok=%v)", got, ok)
	}
}

func TestMakeHeaderIndex_FirstDuplicateWins(t *testing.T) {
	idx := MakeHeaderIndex([]string{"Station", "Station"})
	if got := idx["station"]; got != 0 {
		t.Errorf("expected first duplicate column to win, got position %d", got)
	}
}
