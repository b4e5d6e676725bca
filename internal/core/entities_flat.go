package core

// entities_flat.go fans an X590 row out into entities using the
// group-identity key style: a row always yields at least one entity,
// with the key degrading from tooling number to equipment number to a
// row-index-suffixed last resort.

import "github.com/equipsync/toollist/internal/schema"

// buildFlatEntities produces up to three entities for a flat-layout
// row: one per present RH/LH tooling number, or a single fallback
// entity when neither side has one.
func buildFlatEntities(sheet Sheet, row NormalizedRow) ([]ToolEntity, []Anomaly) {
	program := schema.VariantFlat.Program()
	anomalies := mismatchAnomalies(row, row.ToolingRH, row.ToolingLH)

	var entities []ToolEntity
	for _, ref := range []ToolingRef{row.ToolingRH, row.ToolingLH} {
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

	// No tooling on either side: exactly one fallback entity.
	e := baseEntity(sheet, row, program)
	e.CanonicalKey = GroupIdentityKey(program, row.AreaName, row.StationGroup, row.EquipmentNo, row.EquipmentType, row.RowIndex)
	e.DisplayCode = BuildDisplayCode("", row.EquipmentNo, row.StationGroup, row.EquipmentType)
	e.Aliases = entityAliases(row)
	return []ToolEntity{e}, anomalies
}
