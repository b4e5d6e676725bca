package core

// keys.go builds canonical keys, the identity strings downstream
// diffing compares between imports. Two styles exist:
//
//   - group-identity (X590 / flat layout): every row yields a key, with
//     progressively weaker fallbacks down to a row-index suffix;
//   - tooling-preferred (P702 and U553): tooling number first, FIDES
//     mechanical fallback second, and no key at all when neither
//     identifier exists.
//
// Key segments are normalized before joining so cosmetic edits in the
// source (casing, doubled spaces, unicode hyphens) do not change
// identity.

import (
	"fmt"
	"strings"
)

// keySep joins canonical key segments.
const keySep = "|"

// fidesSegment marks a mechanical (engineering-numbering) fallback key.
const fidesSegment = "FIDES"

// ToolingKey builds the electrical identity key shared by all layouts:
// PROGRAM|<normalized tooling number>.
func ToolingKey(program, toolingNo string) string {
	return program + keySep + NormalizeCode(toolingNo)
}

// FidesKey builds the mechanical fallback key of the tooling-preferred
// style: PROGRAM|FIDES|<normalized equipment number>.
func FidesKey(program, equipmentNo string) string {
	return program + keySep + fidesSegment + keySep + NormalizeCode(equipmentNo)
}

// IsFidesKey reports whether a canonical key is a mechanical fallback.
func IsFidesKey(key string) bool {
	return strings.Contains(key, keySep+fidesSegment+keySep)
}

// GroupIdentityKey builds the flat layout's key for a row without any
// tooling number. With a mechanical equipment number the key is stable
// across re-imports; without one it degrades to a row-index-suffixed
// key, which is NOT stable when the sheet's row order or count changes.
// That class of equipment carries no identifier at all in the source,
// so best effort is all there is.
func GroupIdentityKey(program, areaName, stationGroup, equipmentNo, equipmentType string, rowIndex int) string {
	area := NormalizeStr(areaName, true)
	station := NormalizeCode(stationGroup)
	if NormalizeCode(equipmentNo) != "" {
		return strings.Join([]string{program, area, station, NormalizeCode(equipmentNo)}, keySep)
	}
	typ := NormalizeStr(equipmentType, true)
	return strings.Join([]string{program, area, station, typ, fmt.Sprintf("row:%d", rowIndex)}, keySep)
}

// BuildDisplayCode picks the best human-readable label for an entity:
// tooling number, then equipment number, then station plus equipment
// type.
func BuildDisplayCode(toolingNo, equipmentNo, stationGroup, equipmentType string) string {
	if code := NormalizeCode(toolingNo); code != "" {
		return code
	}
	if code := NormalizeCode(equipmentNo); code != "" {
		return code
	}
	station := NormalizeCode(stationGroup)
	typ := NormalizeStr(equipmentType, true)
	switch {
	case station != "" && typ != "":
		return station + "-" + typ
	case station != "":
		return station
	default:
		return typ
	}
}
