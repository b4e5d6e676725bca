package core

// validate.go assembles the per-sheet validation report. The validator
// runs once, after all entities for the sheet are known, and is the
// only place duplicate canonical keys can be seen: uniqueness is
// meaningless row by row.

import "github.com/equipsync/toollist/internal/schema"

// BuildReport makes a single pass over the produced entities, detects
// duplicate canonical keys, and folds the accumulated anomalies into
// the final report.
//
// Duplicates are recorded but never resolved here: both entities stay
// in the output so downstream diffing can surface the ambiguity.
func BuildReport(sheet Sheet, variant schema.Variant, rowsNormalized int, entities []ToolEntity, anomalies []Anomaly) Report {
	report := Report{
		File:           sheet.File,
		Sheet:          sheet.Name,
		Variant:        variant,
		RowsRead:       len(sheet.Rows),
		RowsNormalized: rowsNormalized,
		EntityCount:    len(entities),
		Anomalies:      anomalies,
	}

	seen := make(map[string]int, len(entities))
	for _, e := range entities {
		if firstRow, dup := seen[e.CanonicalKey]; dup {
			report.DuplicateKeys++
			report.Anomalies = append(report.Anomalies, Anomaly{
				Code:    AnomalyDuplicateCanonicalKey,
				Row:     e.Source.Row,
				Message: "canonical key already produced in this sheet",
				Details: map[string]any{"key": e.CanonicalKey, "firstRow": firstRow},
			})
		} else {
			seen[e.CanonicalKey] = e.Source.Row
		}

		if e.StationGroup == "" {
			report.MissingStationGroup++
		}
		if IsFidesKey(e.CanonicalKey) {
			report.MissingTooling++
		}
	}

	// Deleted-row count comes from the anomalies, which only exist in
	// debug mode; the default report reads zero here even when
	// struck-through rows were skipped.
	for _, a := range report.Anomalies {
		if a.Code == AnomalyDeletedRow {
			report.RowsDeleted++
		}
	}

	return report
}
