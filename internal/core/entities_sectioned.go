package core

// entities_sectioned.go fans a P702 row out using the tooling-preferred
// key style. A non-empty mechanical equipment number gates all entity
// production for this layout: rows listing tooling numbers without any
// equipment number produce nothing, though their mismatch anomalies are
// still reported.

import "github.com/equipsync/toollist/internal/schema"

// buildSectionedEntities produces two entities when both RH and LH
// tooling numbers exist, otherwise one, keyed by RH, then LH, then the
// FIDES mechanical fallback.
func buildSectionedEntities(sheet Sheet, row NormalizedRow) ([]ToolEntity, []Anomaly) {
	program := schema.VariantSectioned.Program()
	anomalies := mismatchAnomalies(row, row.ToolingRH, row.ToolingLH)

	if row.EquipmentNo == "" {
		return nil, anomalies
	}

	if row.ToolingRH.Number != "" && row.ToolingLH.Number != "" {
		var entities []ToolEntity
		for _, ref := range []ToolingRef{row.ToolingRH, row.ToolingLH} {
			e := baseEntity(sheet, row, program)
			e.CanonicalKey = ToolingKey(program, ref.Number)
			e.DisplayCode = BuildDisplayCode(ref.Number, row.EquipmentNo, row.StationGroup, row.EquipmentType)
			e.StationAtomic = DeriveAtomicStation(ref.Number, row.StationGroup)
			e.Side = ref.Side
			e.Aliases = entityAliases(row, ref.Number)
			entities = append(entities, e)
		}
		return entities, anomalies
	}

	e := baseEntity(sheet, row, program)
	switch {
	case row.ToolingRH.Number != "":
		e.CanonicalKey = ToolingKey(program, row.ToolingRH.Number)
		e.DisplayCode = BuildDisplayCode(row.ToolingRH.Number, row.EquipmentNo, row.StationGroup, row.EquipmentType)
		e.StationAtomic = DeriveAtomicStation(row.ToolingRH.Number, row.StationGroup)
		e.Side = row.ToolingRH.Side
		e.Aliases = entityAliases(row, row.ToolingRH.Number)
	case row.ToolingLH.Number != "":
		e.CanonicalKey = ToolingKey(program, row.ToolingLH.Number)
		e.DisplayCode = BuildDisplayCode(row.ToolingLH.Number, row.EquipmentNo, row.StationGroup, row.EquipmentType)
		e.StationAtomic = DeriveAtomicStation(row.ToolingLH.Number, row.StationGroup)
		e.Side = row.ToolingLH.Side
		e.Aliases = entityAliases(row, row.ToolingLH.Number)
	default:
		// Mechanical identity only.
		e.CanonicalKey = FidesKey(program, row.EquipmentNo)
		e.DisplayCode = BuildDisplayCode("", row.EquipmentNo, row.StationGroup, row.EquipmentType)
		e.Aliases = entityAliases(row)
		anomalies = append(anomalies, Anomaly{
			Code:    AnomalyEquipmentNoButNoTooling,
			Row:     row.RowIndex,
			Message: "equipment number present but no tooling number",
			Details: map[string]any{"equipment": row.EquipmentNo},
		})
	}
	return []ToolEntity{e}, anomalies
}
