package core

// entities.go holds the pieces shared by the per-variant entity
// builders: the common entity skeleton, alias assembly, and the
// tooling-number mismatch checks that run for every present tooling
// regardless of how many entities a row ends up producing.

// baseEntity copies the row-level fields every entity starts from.
func baseEntity(sheet Sheet, row NormalizedRow, program string) ToolEntity {
	return ToolEntity{
		Program:       program,
		AreaName:      row.AreaName,
		StationGroup:  row.StationGroup,
		StationAtomic: row.StationAtomic,
		EquipmentType: row.EquipmentType,
		EquipmentNo:   row.EquipmentNo,
		Source:        SourceRef{File: sheet.File, Sheet: sheet.Name, Row: row.RowIndex},
		Raw:           row.Raw,
	}
}

// entityAliases assembles the non-authoritative alias strings attached
// to every entity: the mechanical number, the tooling number(s)
// involved, the station group, and the area prefix. Used downstream for
// fuzzy cross-referencing, never for identity.
func entityAliases(row NormalizedRow, toolingNos ...string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(row.EquipmentNo)
	for _, t := range toolingNos {
		add(NormalizeCode(t))
	}
	add(row.StationGroup)
	add(NormalizeCode(ExtractAreaPrefix(row.AreaName)))
	return out
}

// mismatchAnomalies checks every present tooling number against the
// row's area prefix and station group.
func mismatchAnomalies(row NormalizedRow, refs ...ToolingRef) []Anomaly {
	var out []Anomaly
	for _, ref := range refs {
		if ref.Number == "" {
			continue
		}
		if CheckToolingAreaMismatch(ref.Number, row.AreaName) {
			out = append(out, Anomaly{
				Code:    AnomalyToolingPrefixMismatch,
				Row:     row.RowIndex,
				Message: "tooling number prefix disagrees with area",
				Details: map[string]any{"tooling": ref.Number, "area": row.AreaName},
			})
		}
		if CheckToolingStationMismatch(ref.Number, row.StationGroup) {
			out = append(out, Anomaly{
				Code:    AnomalyToolingStationMismatch,
				Row:     row.RowIndex,
				Message: "tooling number does not match station group",
				Details: map[string]any{"tooling": ref.Number, "station": row.StationGroup},
			})
		}
	}
	return out
}
