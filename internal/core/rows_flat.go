package core

// rows_flat.go normalizes the X590 flat layout. Every data row stands
// on its own: the station column is already atomic and there are no
// section headers to inherit from.

import "github.com/equipsync/toollist/internal/schema"

// normalizeFlat maps the sheet's rows into normalized rows, one per
// raw row that carries a station value.
func normalizeFlat(sheet Sheet, idx HeaderIndex) ([]NormalizedRow, []Anomaly) {
	identifierCols := schema.VariantFlat.IdentifierColumns()
	var rows []NormalizedRow
	var anomalies []Anomaly

	for i, raw := range sheet.Rows {
		if rowEmpty(raw) {
			continue
		}
		station := NormalizeCode(getCell(raw, idx, schema.ColFlatStation))
		if station == "" {
			continue
		}

		anomalies = append(anomalies, redactionAnomalies(sheet, idx, i, identifierCols)...)

		rows = append(rows, NormalizedRow{
			Variant:       schema.VariantFlat,
			RowIndex:      i,
			AreaName:      NormalizeStr(getCell(raw, idx, schema.ColFlatArea), false),
			StationGroup:  station,
			StationAtomic: station,
			EquipmentType: NormalizeStr(getCell(raw, idx, schema.ColFlatEquipType), false),
			EquipmentNo:   NormalizeCode(getCell(raw, idx, schema.ColFlatEquipmentNo)),
			ToolingRH:     toolingRef(getCell(raw, idx, schema.ColFlatToolingRH)),
			ToolingLH:     toolingRef(getCell(raw, idx, schema.ColFlatToolingLH)),
			Deleted:       rowDeleted(sheet, idx, i, identifierCols),
			Raw:           rawCells(sheet.Header, raw),
		})
	}

	return rows, anomalies
}
