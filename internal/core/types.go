package core

import (
	"github.com/equipsync/toollist/internal/schema"
)

// Sheet is the raw material handed over by the workbook reader: one
// header row, the data rows below it, and an optional per-cell
// strike-through predicate. The core never touches file formats.
type Sheet struct {
	File   string
	Name   string
	Header []string
	Rows   [][]string

	// Struck reports whether the cell at (row, col) is struck
	// through. row indexes Rows, col indexes Header. Nil for sources
	// without style information (CSV).
	Struck func(row, col int) bool
}

// HeaderIndex maps column names (lowercase, whitespace-collapsed) to
// their position in a row.
type HeaderIndex map[string]int

// RawCell preserves one original header/value pair. Cells are kept in
// column order so source metadata survives the import losslessly.
type RawCell struct {
	Column string
	Value  string
}

// ToolingRef is one electrical tooling number plus the left/right side
// derived from it.
type ToolingRef struct {
	Number string // normalized code, empty when the column was blank
	Side   string // "R", "L", or ""
}

// NormalizedRow is the unified intermediate shape every schema variant
// maps into. A row with a non-empty area and an empty station is a
// section header and is never materialized as a NormalizedRow; its
// area becomes ambient context for the rows below it.
type NormalizedRow struct {
	Variant  schema.Variant
	RowIndex int // zero-based index into Sheet.Rows

	AreaName      string
	StationGroup  string // station as printed in the source
	StationAtomic string // derived per-side station, may equal the group
	EquipmentType string

	// Mechanical identifiers: shown and (paired layout only) opposite.
	EquipmentNo         string
	OppositeEquipmentNo string

	// Electrical identifiers, RH/LH for the shown side and, in the
	// paired layout, for the opposite side.
	ToolingRH         ToolingRef
	ToolingLH         ToolingRef
	OppositeToolingRH ToolingRef
	OppositeToolingLH ToolingRef

	// Deleted marks rows whose identifier cells are struck through.
	// Deleted rows contribute no entities.
	Deleted bool

	Raw []RawCell
}

// SourceRef locates an entity in its source file.
type SourceRef struct {
	File  string
	Sheet string
	Row   int
}

// ToolEntity is the canonical output unit for one piece of tooling.
type ToolEntity struct {
	// CanonicalKey is the program-qualified identity string, meant to
	// be unique within one import batch and stable across re-imports.
	CanonicalKey string

	// DisplayCode is the best human-readable label for the entity.
	DisplayCode string

	Program       string
	AreaName      string
	StationGroup  string
	StationAtomic string
	EquipmentType string
	EquipmentNo   string
	Side          string // "R", "L", or ""

	// Aliases are normalized strings for fuzzy downstream matching.
	// They are explicitly non-authoritative and never used for
	// identity.
	Aliases []string

	Source SourceRef
	Raw    []RawCell
}

// AnomalyCode tags one kind of detected inconsistency.
type AnomalyCode string

const (
	AnomalyToolingPrefixMismatch   AnomalyCode = "TOOLING_PREFIX_MISMATCH"
	AnomalyToolingStationMismatch  AnomalyCode = "TOOLING_STATION_MISMATCH"
	AnomalyEquipmentNoButNoTooling AnomalyCode = "EQUIPMENT_NO_BUT_NO_TOOLING"
	AnomalyDuplicateCanonicalKey   AnomalyCode = "DUPLICATE_CANONICAL_KEY"
	AnomalyDeletedRow              AnomalyCode = "DELETED_ROW"
	AnomalyPossibleRedaction       AnomalyCode = "POSSIBLE_REDACTION"
)

// Anomaly is a non-fatal diagnostic attached to the validation report.
type Anomaly struct {
	Code    AnomalyCode
	Row     int // zero-based index into Sheet.Rows
	Message string
	Details map[string]any
}

// Report is the per-sheet validation aggregate, built once after all
// entities are known.
type Report struct {
	File    string
	Sheet   string
	Variant schema.Variant

	RowsRead       int
	RowsNormalized int
	EntityCount    int

	// RowsDeleted is derived from DELETED_ROW anomalies, which are
	// only emitted in debug mode; in the default path it stays zero
	// even when struck-through rows were skipped.
	RowsDeleted int

	MissingStationGroup int
	MissingTooling      int
	DuplicateKeys       int

	Anomalies []Anomaly
}

// Options control a single ProcessSheet call.
type Options struct {
	// Variant overrides schema detection when set to anything other
	// than schema.VariantUnknown.
	Variant schema.Variant

	// Debug includes diagnostic-only anomalies (deleted rows) in the
	// report. It changes report contents, never entity output.
	Debug bool
}

// Result is what ProcessSheet hands back to the ingestion coordinator.
type Result struct {
	Entities   []ToolEntity
	Validation Report
	Variant    schema.Variant
}
