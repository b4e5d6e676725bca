package core

// process.go is the engine entry point the ingestion coordinator calls
// once per sheet. Rows are processed in a strict top-to-bottom scan;
// the sectioned layout's area inheritance depends on that order.

import (
	"fmt"

	"github.com/equipsync/toollist/internal/schema"
)

// ProcessSheet normalizes one sheet's rows and converts them into
// canonical tool entities plus a validation report.
//
// The schema variant is taken from opts.Variant when set, otherwise
// detected from the filename and header signature. Detection failure is
// the only fatal condition: the whole sheet is rejected with
// schema.ErrUnknownSchema and no partial parse is attempted.
func ProcessSheet(sheet Sheet, opts Options) (*Result, error) {
	variant := opts.Variant
	if variant == schema.VariantUnknown {
		detected, err := schema.Detect(sheet.File, sheet.Header)
		if err != nil {
			return nil, err
		}
		variant = detected
	}

	idx := MakeHeaderIndex(sheet.Header)

	var rows []NormalizedRow
	var anomalies []Anomaly
	switch variant {
	case schema.VariantFlat:
		rows, anomalies = normalizeFlat(sheet, idx)
	case schema.VariantSectioned:
		rows, anomalies = normalizeSectioned(sheet, idx)
	case schema.VariantPaired:
		rows, anomalies = normalizePaired(sheet, idx)
	default:
		return nil, fmt.Errorf("%w: unhandled variant %s", schema.ErrUnknownSchema, variant)
	}

	var entities []ToolEntity
	rowsNormalized := 0
	for _, row := range rows {
		if row.Deleted {
			if opts.Debug {
				anomalies = append(anomalies, Anomaly{
					Code:    AnomalyDeletedRow,
					Row:     row.RowIndex,
					Message: "row skipped: identifier cells struck through",
				})
			}
			continue
		}
		rowsNormalized++

		var rowEntities []ToolEntity
		var rowAnomalies []Anomaly
		switch variant {
		case schema.VariantFlat:
			rowEntities, rowAnomalies = buildFlatEntities(sheet, row)
		case schema.VariantSectioned:
			rowEntities, rowAnomalies = buildSectionedEntities(sheet, row)
		case schema.VariantPaired:
			rowEntities, rowAnomalies = buildPairedEntities(sheet, row)
		}
		entities = append(entities, rowEntities...)
		anomalies = append(anomalies, rowAnomalies...)
	}

	report := BuildReport(sheet, variant, rowsNormalized, entities, anomalies)

	return &Result{
		Entities:   entities,
		Validation: report,
		Variant:    variant,
	}, nil
}
