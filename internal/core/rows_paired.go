package core

// rows_paired.go normalizes the U553 paired layout: area lives in a
// "Sub Area Name" column, the station may come from either the station
// column or a work-cell fallback, and each row carries two independent
// left/right tooling pairs, a shown one and an opposite-hand one.

import "github.com/equipsync/toollist/internal/schema"

func normalizePaired(sheet Sheet, idx HeaderIndex) ([]NormalizedRow, []Anomaly) {
	identifierCols := schema.VariantPaired.IdentifierColumns()
	var rows []NormalizedRow
	var anomalies []Anomaly

	for i, raw := range sheet.Rows {
		if rowEmpty(raw) {
			continue
		}

		station := NormalizeCode(getCell(raw, idx, schema.ColPairStation))
		if station == "" {
			station = NormalizeCode(getCell(raw, idx, schema.ColPairWorkCell))
		}

		equipmentNo := NormalizeCode(getCell(raw, idx, schema.ColPairEquipmentNo))
		oppEquipmentNo := NormalizeCode(getCell(raw, idx, schema.ColPairOppEquipmentNo))
		rh := toolingRef(getCell(raw, idx, schema.ColPairToolingRH))
		lh := toolingRef(getCell(raw, idx, schema.ColPairToolingLH))
		oppRH := toolingRef(getCell(raw, idx, schema.ColPairOppToolingRH))
		oppLH := toolingRef(getCell(raw, idx, schema.ColPairOppToolingLH))

		if station == "" && equipmentNo == "" && oppEquipmentNo == "" &&
			rh.Number == "" && lh.Number == "" && oppRH.Number == "" && oppLH.Number == "" {
			continue
		}

		anomalies = append(anomalies, redactionAnomalies(sheet, idx, i, identifierCols)...)

		atomic := station
		switch {
		case rh.Number != "":
			atomic = DeriveAtomicStation(rh.Number, station)
		case lh.Number != "":
			atomic = DeriveAtomicStation(lh.Number, station)
		}

		rows = append(rows, NormalizedRow{
			Variant:             schema.VariantPaired,
			RowIndex:            i,
			AreaName:            NormalizeStr(getCell(raw, idx, schema.ColPairSubAreaName), false),
			StationGroup:        station,
			StationAtomic:       atomic,
			EquipmentType:       NormalizeStr(getCell(raw, idx, schema.ColPairEquipType), false),
			EquipmentNo:         equipmentNo,
			OppositeEquipmentNo: oppEquipmentNo,
			ToolingRH:           rh,
			ToolingLH:           lh,
			OppositeToolingRH:   oppRH,
			OppositeToolingLH:   oppLH,
			Deleted:             rowDeleted(sheet, idx, i, identifierCols),
			Raw:                 rawCells(sheet.Header, raw),
		})
	}

	return rows, anomalies
}
