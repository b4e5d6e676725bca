package core

import (
	"testing"
)

func TestToolingKey(t *testing.T) {
	tests := []struct {
		name    string
		program string
		tooling string
		want    string
	}{
		{name: "plain", program: "P702", tooling: "7F-010R-H", want: "P702|7F-010R-H"},
		{name: "normalizes tooling", program: "P702", tooling: " 7f–010r-h ", want: "P702|7F-010R-H"},
		{name: "other program", program: "U553", tooling: "7F-010L-T1", want: "U553|7F-010L-T1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToolingKey(tt.program, tt.tooling)
			if got != tt.want {
				t.Errorf("ToolingKey(%q, %q) = %q, want %q", tt.program, tt.tooling, got, tt.want)
			}
		})
	}
}

func TestFidesKey(t *testing.T) {
	got := FidesKey("P702", "016zf-001-010-h")
	want := "P702|FIDES|016ZF-001-010-H"
	if got != want {
		t.Errorf("FidesKey = %q, want %q", got, want)
	}

	if !IsFidesKey(got) {
		t.Errorf("IsFidesKey(%q) = false, want true", got)
	}
	if IsFidesKey("P702|7F-010R-H") {
		t.Error("IsFidesKey should be false for tooling keys")
	}
}

func TestGroupIdentityKey(t *testing.T) {
	tests := []struct {
		name        string
		area        string
		station     string
		equipmentNo string
		equipType   string
		rowIndex    int
		want        string
	}{
		{
			name:        "equipment number preferred",
			area:        "7F - Final",
			station:     "7F-010",
			equipmentNo: "EQ-001",
			equipType:   "Clamp Unit",
			rowIndex:    41,
			want:        "X590|7F - FINAL|7F-010|EQ-001",
		},
		{
			name:      "row index fallback",
			area:      "7F - Final",
			station:   "7F-010",
			equipType: "Clamp Unit",
			rowIndex:  41,
			want:      "X590|7F - FINAL|7F-010|CLAMP UNIT|row:41",
		},
		{
			name:     "fallback with empty type",
			area:     "7F - Final",
			station:  "7F-010",
			rowIndex: 7,
			want:     "X590|7F - FINAL|7F-010||row:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupIdentityKey("X590", tt.area, tt.station, tt.equipmentNo, tt.equipType, tt.rowIndex)
			if got != tt.want {
				t.Errorf("GroupIdentityKey = %q, want %q", got, tt.want)
			}
		})
	}
}

// Key stability: the same source identifiers always produce
// byte-identical keys, regardless of cosmetic differences.
func TestKeyStability(t *testing.T) {
	a := ToolingKey("P702", "7F-010R-H")
	b := ToolingKey("P702", "  7f—010r-h  ")
	if a != b {
		t.Errorf("cosmetically different tooling values produced different keys: %q vs %q", a, b)
	}
}

func TestBuildDisplayCode(t *testing.T) {
	tests := []struct {
		name        string
		tooling     string
		equipmentNo string
		station     string
		equipType   string
		want        string
	}{
		{name: "tooling wins", tooling: "7F-010R-H", equipmentNo: "EQ-001", station: "7F-010", equipType: "Clamp", want: "7F-010R-H"},
		{name: "equipment second", equipmentNo: "EQ-001", station: "7F-010", equipType: "Clamp", want: "EQ-001"},
		{name: "station and type", station: "7F-010", equipType: "Clamp", want: "7F-010-CLAMP"},
		{name: "station only", station: "7F-010", want: "7F-010"},
		{name: "type only", equipType: "Clamp", want: "CLAMP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDisplayCode(tt.tooling, tt.equipmentNo, tt.station, tt.equipType)
			if got != tt.want {
				t.Errorf("BuildDisplayCode = %q, want %q", got, tt.want)
			}
		})
	}
}
