// Package schema defines the known tool-list layouts and selects one
// for each incoming file. Each manufacturing program exports its tool
// list with a different column set; the rest of the pipeline branches
// on the Variant chosen here and nowhere else.
package schema

// Variant identifies one of the known tool-list layouts.
type Variant int

const (
	// VariantUnknown is the zero value; Detect never returns it
	// without an error.
	VariantUnknown Variant = iota

	// VariantFlat is the X590 export: one row per station, the
	// station column is already atomic, no section headers.
	VariantFlat

	// VariantSectioned is the P702 export: area names appear on
	// section-header rows and apply to every row below them.
	VariantSectioned

	// VariantPaired is the U553 export: a "shown" and an "opposite"
	// left/right tooling pair on every row.
	VariantPaired
)

// String returns the variant name used in logs and reports.
func (v Variant) String() string {
	switch v {
	case VariantFlat:
		return "flat"
	case VariantSectioned:
		return "sectioned"
	case VariantPaired:
		return "paired"
	default:
		return "unknown"
	}
}

// Program returns the manufacturing program code that qualifies every
// canonical key produced for this variant.
func (v Variant) Program() string {
	switch v {
	case VariantFlat:
		return "X590"
	case VariantSectioned:
		return "P702"
	case VariantPaired:
		return "U553"
	default:
		return ""
	}
}

// Column names per variant, lowercased the way MakeHeaderIndex stores
// them. Normalizers look cells up through these constants only.
const (
	// Flat (X590)
	ColFlatArea          = "area"
	ColFlatStation       = "station"
	ColFlatEquipType     = "equipment type"
	ColFlatEquipmentNo   = "equipment no."
	ColFlatToolingRH     = "tooling no. rh"
	ColFlatToolingLH     = "tooling no. lh"

	// Sectioned (P702)
	ColSecAreaName     = "area name"
	ColSecStation      = "station"
	ColSecEquipType    = "equipment type"
	ColSecEquipmentNo  = "equipment no"
	ColSecToolingRH    = "tooling number rh"
	ColSecToolingLH    = "tooling number lh"

	// Paired (U553)
	ColPairSubAreaName    = "sub area name"
	ColPairStation        = "station"
	ColPairWorkCell       = "work cell"
	ColPairEquipType      = "equipment type"
	ColPairEquipmentNo    = "equipment no"
	ColPairOppEquipmentNo = "opposite equipment no"
	ColPairToolingRH      = "tooling number rh"
	ColPairToolingLH      = "tooling number lh"
	ColPairOppToolingRH   = "opposite tooling number rh"
	ColPairOppToolingLH   = "opposite tooling number lh"
)

// IdentifierColumns lists the columns whose cells carry equipment
// identity for the variant. Strike-through on any of them marks the
// row deleted, and redaction checks run on their values.
func (v Variant) IdentifierColumns() []string {
	switch v {
	case VariantFlat:
		return []string{ColFlatEquipmentNo, ColFlatToolingRH, ColFlatToolingLH}
	case VariantSectioned:
		return []string{ColSecEquipmentNo, ColSecToolingRH, ColSecToolingLH}
	case VariantPaired:
		return []string{
			ColPairEquipmentNo, ColPairOppEquipmentNo,
			ColPairToolingRH, ColPairToolingLH,
			ColPairOppToolingRH, ColPairOppToolingLH,
		}
	default:
		return nil
	}
}
