// Package core normalizes tool-list rows into canonical tool entities.
//
// This package is the heart of the importer, containing all domain logic
// independent of any file format or persistence layer. It can be used by
// CLI commands, services, or tests without modification.
//
// # Pipeline
//
// Each sheet flows through a fixed sequence:
//
//  1. A schema variant is selected (caller override or schema.Detect).
//  2. The variant's row normalizer maps raw cells into [NormalizedRow]
//     values, consulting the strike-through predicate and the redaction
//     heuristic on identifier columns.
//  3. The variant's entity builder fans each row out into zero to four
//     [ToolEntity] values, each carrying a canonical key.
//  4. The validator makes one pass over the produced entities and
//     assembles the per-sheet [Report].
//
// The entry point is [ProcessSheet]; everything else is exported for
// targeted testing and for callers that need individual pieces (key
// construction, code normalization).
//
// # Canonical keys
//
// A canonical key is the program-qualified string that identifies one
// physical piece of tooling across re-imports:
//
//	P702|7F-010R-H               tooling (electrical) identity
//	P702|FIDES|016ZF-001-010-H   mechanical fallback identity
//	X590|7F|7F-010|CLAMP|row:41  last resort, not re-import stable
//
// Downstream diffing compares canonical keys between imports, so key
// construction must stay byte-stable for unchanged source identifiers.
//
// # Anomalies
//
// All data problems short of an unknown schema are advisory: they
// accumulate as [Anomaly] values in the report and never abort the
// sheet. Deleted rows (struck-through identifier cells) contribute no
// entities; their anomalies are only recorded when [Options.Debug] is
// set.
package core
