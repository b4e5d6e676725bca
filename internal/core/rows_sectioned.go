package core

// rows_sectioned.go normalizes the P702 sectioned layout. Area names
// appear on their own section-header rows (area set, station empty) and
// apply to every data row below until the next header. That makes the
// normalization a strict left-to-right fold over the whole row
// sequence; it cannot be parallelized within a sheet.

import "github.com/equipsync/toollist/internal/schema"

// sectionCarry is the single piece of state threaded through the fold.
type sectionCarry struct {
	area string
}

// normalizeSectioned folds the sheet's rows top to bottom, inheriting
// the current area from section headers.
func normalizeSectioned(sheet Sheet, idx HeaderIndex) ([]NormalizedRow, []Anomaly) {
	identifierCols := schema.VariantSectioned.IdentifierColumns()
	var rows []NormalizedRow
	var anomalies []Anomaly

	carry := sectionCarry{}
	for i := range sheet.Rows {
		var row *NormalizedRow
		carry, row = foldSectionedRow(carry, sheet, idx, i, identifierCols)
		if row == nil {
			continue
		}
		anomalies = append(anomalies, redactionAnomalies(sheet, idx, i, identifierCols)...)
		rows = append(rows, *row)
	}

	return rows, anomalies
}

// foldSectionedRow advances the fold by one input row, returning the
// updated carry and the normalized row, if the input materializes one.
// Section headers update the carry and materialize nothing.
func foldSectionedRow(carry sectionCarry, sheet Sheet, idx HeaderIndex, rowIdx int, identifierCols []string) (sectionCarry, *NormalizedRow) {
	raw := sheet.Rows[rowIdx]
	if rowEmpty(raw) {
		return carry, nil
	}

	area := NormalizeStr(getCell(raw, idx, schema.ColSecAreaName), false)
	station := NormalizeCode(getCell(raw, idx, schema.ColSecStation))

	// Section header: area printed, station blank.
	if area != "" && station == "" {
		carry.area = area
		return carry, nil
	}
	if area == "" {
		area = carry.area
	}

	equipmentNo := NormalizeCode(getCell(raw, idx, schema.ColSecEquipmentNo))
	rh := toolingRef(getCell(raw, idx, schema.ColSecToolingRH))
	lh := toolingRef(getCell(raw, idx, schema.ColSecToolingLH))

	if station == "" && equipmentNo == "" && rh.Number == "" && lh.Number == "" {
		return carry, nil
	}

	// Atomic station comes from whichever tooling number exists, RH
	// preferred, and otherwise equals the group.
	atomic := station
	if rh.Number != "" {
		atomic = DeriveAtomicStation(rh.Number, station)
	} else if lh.Number != "" {
		atomic = DeriveAtomicStation(lh.Number, station)
	}

	return carry, &NormalizedRow{
		Variant:       schema.VariantSectioned,
		RowIndex:      rowIdx,
		AreaName:      area,
		StationGroup:  station,
		StationAtomic: atomic,
		EquipmentType: NormalizeStr(getCell(raw, idx, schema.ColSecEquipType), false),
		EquipmentNo:   equipmentNo,
		ToolingRH:     rh,
		ToolingLH:     lh,
		Deleted:       rowDeleted(sheet, idx, rowIdx, identifierCols),
		Raw:           rawCells(sheet.Header, raw),
	}
}
