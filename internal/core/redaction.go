package core

// redaction.go holds the two cell-level detectors that gate or annotate
// entity production: strike-through (an authoritative deletion signal)
// and the punctuation-run heuristic for values that look blanked out.

import "regexp"

// redactionRun matches a run of three or more dash/underscore/dot/slash
// characters, the way hidden or scrubbed values usually show up in
// exported tool lists ("----", "___", "./.").
var redactionRun = regexp.MustCompile(`[-_./]{3,}`)

// PossiblyRedacted reports whether an identifier value contains a
// suspicious punctuation run. Advisory only: a flagged value still
// produces entities.
func PossiblyRedacted(value string) bool {
	return redactionRun.MatchString(value)
}

// rowDeleted reports whether any identifier cell of the row is struck
// through. Only the identifier columns of the active variant are
// inspected, and only cells that still carry text.
func rowDeleted(sheet Sheet, idx HeaderIndex, rowIdx int, identifierCols []string) bool {
	if sheet.Struck == nil {
		return false
	}
	row := sheet.Rows[rowIdx]
	for _, col := range identifierCols {
		pos, ok := idx[col]
		if !ok || pos >= len(row) {
			continue
		}
		if CleanCell(row[pos]) == "" {
			continue
		}
		if sheet.Struck(rowIdx, pos) {
			return true
		}
	}
	return false
}

// redactionAnomalies scans the identifier cells of a row and returns a
// POSSIBLE_REDACTION anomaly for each suspicious value.
func redactionAnomalies(sheet Sheet, idx HeaderIndex, rowIdx int, identifierCols []string) []Anomaly {
	var out []Anomaly
	row := sheet.Rows[rowIdx]
	for _, col := range identifierCols {
		pos, ok := idx[col]
		if !ok || pos >= len(row) {
			continue
		}
		value := CleanCell(row[pos])
		if value == "" || !PossiblyRedacted(value) {
			continue
		}
		out = append(out, Anomaly{
			Code:    AnomalyPossibleRedaction,
			Row:     rowIdx,
			Message: "identifier value looks redacted",
			Details: map[string]any{"column": col, "value": value},
		})
	}
	return out
}
