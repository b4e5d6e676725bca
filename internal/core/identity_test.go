package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// ExtractLR Tests
// ----------------------------------------------------------------------------

func TestExtractLR(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "dash R marker", input: "7F-010-R", want: "R"},
		{name: "underscore R marker", input: "7F_010_R2", want: "R"},
		{name: "trailing R", input: "7F-010R", want: "R"},
		{name: "dash L marker", input: "7F-010-L", want: "L"},
		{name: "underscore L marker", input: "7F_010_L2", want: "L"},
		{name: "trailing L", input: "7F-010L", want: "L"},
		{name: "lowercase input", input: "7f-010r", want: "R"},
		{name: "no marker", input: "7F-010-H", want: ""},
		{name: "suffix after side letter hides it", input: "7F-010L-T1", want: ""},

		// R checks run strictly before L checks: a value matching
		// both resolves to R.
		{name: "ambiguous RL resolves to R", input: "FIX-RL", want: "R"},
		{name: "ambiguous both markers resolves to R", input: "7F-R-L", want: "R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLR(tt.input)
			if got != tt.want {
				t.Errorf("ExtractLR(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// DeriveAtomicStation Tests
// ----------------------------------------------------------------------------

func TestDeriveAtomicStation(t *testing.T) {
	tests := []struct {
		name     string
		tooling  string
		fallback string
		want     string
	}{
		{name: "RH tooling keeps side", tooling: "7F-010R-H", fallback: "7F-010", want: "7F-010R"},
		{name: "LH tooling keeps side", tooling: "7F-010L-T1", fallback: "7F-010", want: "7F-010L"},
		{name: "no side letter", tooling: "7F-010-H", fallback: "7F-010", want: "7F-010"},
		{name: "empty tooling returns fallback", tooling: "", fallback: "7F-010", want: "7F-010"},
		{name: "whitespace tooling returns fallback", tooling: "   ", fallback: "7F-010", want: "7F-010"},
		{name: "unmatchable tooling returns fallback", tooling: "NOSTATION", fallback: "7F-010", want: "7F-010"},
		{name: "digit prefix matches primary", tooling: "016ZF-001-010-H", fallback: "", want: "016ZF-001"},
		{name: "loose pattern after decoration", tooling: "KIT-TV-12R", fallback: "X", want: "TV-12"},
		{name: "normalizes before matching", tooling: "7f–010r-h", fallback: "7F-010", want: "7F-010R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveAtomicStation(tt.tooling, tt.fallback)
			if got != tt.want {
				t.Errorf("DeriveAtomicStation(%q, %q) = %q, want %q", tt.tooling, tt.fallback, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ExtractAreaPrefix Tests
// ----------------------------------------------------------------------------

func TestExtractAreaPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "alphanumeric run", input: "7F - Final Assembly", want: "7F"},
		{name: "letters only", input: "Body Shop", want: "Body"},
		{name: "leading whitespace", input: "  7M - Body", want: "7M"},
		{name: "no alphanumeric start", input: "- Final", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAreaPrefix(tt.input)
			if got != tt.want {
				t.Errorf("ExtractAreaPrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Mismatch Tests
// ----------------------------------------------------------------------------

func TestCheckToolingAreaMismatch(t *testing.T) {
	tests := []struct {
		name    string
		tooling string
		area    string
		want    bool
	}{
		{name: "prefix disagrees", tooling: "7M-010R-H", area: "7F - Final", want: true},
		{name: "prefix agrees", tooling: "7M-010R-H", area: "7M - Body", want: false},
		{name: "underscore delimiter", tooling: "7M_010", area: "7F - Final", want: true},
		{name: "empty tooling", tooling: "", area: "7F - Final", want: false},
		{name: "empty area", tooling: "7M-010", area: "", want: false},
		{name: "area without prefix", tooling: "7M-010", area: "- Final", want: false},
		{name: "case insensitive", tooling: "7f-010", area: "7F - Final", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckToolingAreaMismatch(tt.tooling, tt.area)
			if got != tt.want {
				t.Errorf("CheckToolingAreaMismatch(%q, %q) = %v, want %v", tt.tooling, tt.area, got, tt.want)
			}
		})
	}
}

func TestCheckToolingStationMismatch(t *testing.T) {
	tests := []struct {
		name    string
		tooling string
		station string
		want    bool
	}{
		{name: "atomic extends group", tooling: "7F-010R-H", station: "7F-010", want: false},
		{name: "different station", tooling: "7M-020R-H", station: "7F-010", want: true},
		{name: "empty tooling", tooling: "", station: "7F-010", want: false},
		{name: "empty station", tooling: "7F-010R-H", station: "", want: false},
		{name: "unmatchable tooling", tooling: "NOSTATION", station: "7F-010", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckToolingStationMismatch(tt.tooling, tt.station)
			if got != tt.want {
				t.Errorf("CheckToolingStationMismatch(%q, %q) = %v, want %v", tt.tooling, tt.station, got, tt.want)
			}
		})
	}
}
