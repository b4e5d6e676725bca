package core

// identity.go derives equipment identity from tooling numbers: which
// side of the line a tool sits on, which atomic station it belongs to,
// and whether its number contradicts the area or station it was listed
// under. These rules encode how the programs actually name tooling
// (mechanical vs. electrical numbering) and must stay byte-stable, or
// re-imports would mint new identities for unchanged equipment.

import (
	"regexp"
	"strings"
)

var (
	// atomicStation matches <alphanumeric prefix>-<digits> plus an
	// optional trailing side letter, anchored at the start of the
	// normalized tooling number: "7F-010R-H" -> "7F-010R".
	atomicStation = regexp.MustCompile(`^[A-Z0-9]+-[0-9]+[LR]?`)

	// atomicStationLoose is the fallback pattern, letters-only prefix
	// and no anchor, for tooling numbers with decoration before the
	// station token.
	atomicStationLoose = regexp.MustCompile(`[A-Z]+-[0-9]+`)

	// areaPrefix is the leading alphanumeric run of an area name:
	// "7F - Final Assembly" -> "7F".
	areaPrefix = regexp.MustCompile(`^[A-Za-z0-9]+`)
)

// ExtractLR returns "R" or "L" when the tooling number carries a side
// marker, otherwise "". The R checks run strictly before the L checks:
// a value satisfying both resolves to R. That ordering is a deliberate
// tie-break relied on by key construction.
func ExtractLR(toolingNo string) string {
	s := strings.ToUpper(strings.TrimSpace(toolingNo))
	if s == "" {
		return ""
	}
	switch {
	case strings.Contains(s, "-R"), strings.Contains(s, "_R"), strings.HasSuffix(s, "R"):
		return "R"
	case strings.Contains(s, "-L"), strings.Contains(s, "_L"), strings.HasSuffix(s, "L"):
		return "L"
	default:
		return ""
	}
}

// DeriveAtomicStation extracts the per-side station from a tooling
// number, falling back to the printed station group when the number is
// absent or carries no recognizable station token.
//
//	DeriveAtomicStation("7F-010R-H", "7F-010")  == "7F-010R"
//	DeriveAtomicStation("7F-010L-T1", "7F-010") == "7F-010L"
//	DeriveAtomicStation("", "7F-010")           == "7F-010"
func DeriveAtomicStation(toolingNo, fallback string) string {
	if strings.TrimSpace(toolingNo) == "" {
		return fallback
	}
	code := NormalizeCode(toolingNo)
	if m := atomicStation.FindString(code); m != "" {
		return m
	}
	if m := atomicStationLoose.FindString(code); m != "" {
		return m
	}
	return fallback
}

// ExtractAreaPrefix returns the leading alphanumeric run of an area
// name, or "" when the area does not start with one.
func ExtractAreaPrefix(areaName string) string {
	return areaPrefix.FindString(strings.TrimSpace(areaName))
}

// CheckToolingAreaMismatch reports whether the tooling number's first
// dash/underscore-delimited token disagrees with the area prefix. Both
// sides must be non-empty for a mismatch; blanks never mismatch.
func CheckToolingAreaMismatch(toolingNo, areaName string) bool {
	code := NormalizeCode(toolingNo)
	if code == "" {
		return false
	}
	tok := code
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		tok = code[:i]
	}
	prefix := strings.ToUpper(ExtractAreaPrefix(areaName))
	return tok != "" && prefix != "" && tok != prefix
}

// CheckToolingStationMismatch reports whether the atomic station
// derived from the tooling number fails to start with the normalized
// station group. False whenever either input is empty.
func CheckToolingStationMismatch(toolingNo, stationGroup string) bool {
	if strings.TrimSpace(toolingNo) == "" || strings.TrimSpace(stationGroup) == "" {
		return false
	}
	atomic := DeriveAtomicStation(toolingNo, "")
	if atomic == "" {
		return false
	}
	return !strings.HasPrefix(atomic, NormalizeCode(stationGroup))
}
