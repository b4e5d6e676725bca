package schema

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownSchema is returned when neither the filename nor the header
// signature matches a known tool-list layout. The whole file is
// rejected; there is no degraded parse.
var ErrUnknownSchema = errors.New("unknown tool list schema")

// Filename tokens the programs put in their exports. Checked after the
// strongest header signal so a mislabeled U553 file still routes by its
// distinctive column set.
const (
	tokenSectioned = "p702"
	tokenFlat      = "x590"
)

// Detect selects the layout for a file from its name and header row.
// Header matching is case-insensitive and whitespace-collapsed.
//
// Order matters: the "sub area name" column is unique to the paired
// layout and wins outright; filename tokens come next; the remaining
// header signatures are fallbacks for renamed files.
func Detect(fileName string, header []string) (Variant, error) {
	cols := make(map[string]bool, len(header))
	for _, h := range header {
		cols[strings.ToLower(strings.Join(strings.Fields(h), " "))] = true
	}
	name := strings.ToLower(filepath.Base(fileName))

	switch {
	case cols[ColPairSubAreaName]:
		return VariantPaired, nil
	case strings.Contains(name, tokenSectioned):
		return VariantSectioned, nil
	case strings.Contains(name, tokenFlat):
		return VariantFlat, nil
	case cols[ColPairOppToolingRH]:
		return VariantPaired, nil
	case cols[ColSecAreaName] && cols[ColSecToolingRH]:
		return VariantSectioned, nil
	case cols[ColFlatArea] && cols[ColFlatToolingRH]:
		return VariantFlat, nil
	}

	return VariantUnknown, fmt.Errorf("%w: %s", ErrUnknownSchema, filepath.Base(fileName))
}

// Parse maps a variant name (as accepted on the CLI and in
// programs.yaml) back to its Variant.
func Parse(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "x590":
		return VariantFlat, nil
	case "sectioned", "p702":
		return VariantSectioned, nil
	case "paired", "u553":
		return VariantPaired, nil
	case "", "auto":
		return VariantUnknown, nil
	default:
		return VariantUnknown, fmt.Errorf("unknown schema variant %q", s)
	}
}
