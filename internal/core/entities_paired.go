package core

// entities_paired.go fans a U553 row out into up to four entities, one
// per present tooling number across the shown and opposite left/right
// pairs. Only when all four tooling columns are blank does the row fall
// back to FIDES mechanical entities, one per present equipment number,
// each flagged individually.

import "github.com/equipsync/toollist/internal/schema"

func buildPairedEntities(sheet Sheet, row NormalizedRow) ([]ToolEntity, []Anomaly) {
	program := schema.VariantPaired.Program()
	refs := []ToolingRef{row.ToolingRH, row.ToolingLH, row.OppositeToolingRH, row.OppositeToolingLH}
	anomalies := mismatchAnomalies(row, refs...)

	var entities []ToolEntity
	for _, ref := range refs {
		if ref.Number == "" {
			continue
		}
		e := baseEntity(sheet, row, program)
		e.CanonicalKey = ToolingKey(program, ref.Number)
		e.DisplayCode = BuildDisplayCode(ref.Number, row.EquipmentNo, row.StationGroup, row.EquipmentType)
		e.StationAtomic = DeriveAtomicStation(ref.Number, row.StationGroup)
		e.Side = ref.Side
		e.Aliases = entityAliases(row, ref.Number)
		entities = append(entities, e)
	}
	if len(entities) > 0 {
		return entities, anomalies
	}

	// No tooling anywhere on the row: up to two mechanical entities,
	// one from the shown equipment number and one from the opposite.
	for _, equipmentNo := range []string{row.EquipmentNo, row.OppositeEquipmentNo} {
		if equipmentNo == "" {
			continue
		}
		e := baseEntity(sheet, row, program)
		e.CanonicalKey = FidesKey(program, equipmentNo)
		e.DisplayCode = BuildDisplayCode("", equipmentNo, row.StationGroup, row.EquipmentType)
		e.EquipmentNo = equipmentNo
		aliasRow := row
		aliasRow.EquipmentNo = equipmentNo
		e.Aliases = entityAliases(aliasRow)
		entities = append(entities, e)
		anomalies = append(anomalies, Anomaly{
			Code:    AnomalyEquipmentNoButNoTooling,
			Row:     row.RowIndex,
			Message: "equipment number present but no tooling number",
			Details: map[string]any{"equipment": equipmentNo},
		})
	}
	return entities, anomalies
}
