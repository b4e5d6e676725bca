package core

// normalize.go provides the pure string normalization primitives shared
// by every schema variant.
//
// Tool lists arrive with the usual spreadsheet damage: stray
// whitespace, unicode hyphen look-alikes pasted from CAD tools,
// numeric codes rendered in scientific notation, Excel formula
// prefixes. Everything identity-related funnels through these
// functions so the same source value always normalizes to the same
// string.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// dashRun collapses repeated hyphens left over after folding.
	dashRun = regexp.MustCompile(`-{2,}`)

	// edgeNonWord strips leading/trailing runs of non-word characters
	// from a code.
	edgeNonWord = regexp.MustCompile(`^\W+|\W+$`)
)

// stripMarks removes combining marks so accented characters fold to
// their ASCII base before code comparison.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// hyphenVariants maps the unicode hyphen look-alikes that show up in
// exported tool lists to ASCII '-'.
var hyphenVariants = map[rune]bool{
	'‐': true, // hyphen
	'‑': true, // non-breaking hyphen
	'‒': true, // figure dash
	'–': true, // en dash
	'—': true, // em dash
	'―': true, // horizontal bar
	'−': true, // minus sign
	'﹣': true, // small hyphen-minus
	'－': true, // fullwidth hyphen-minus
}

// NormalizeStr trims the value and collapses internal whitespace runs
// to a single space, optionally uppercasing. Total; never fails.
func NormalizeStr(s string, uppercase bool) string {
	s = strings.Join(strings.Fields(s), " ")
	if uppercase {
		s = strings.ToUpper(s)
	}
	return s
}

// NormalizeCode normalizes an identifier: uppercase, unicode hyphen
// variants folded to ASCII '-', repeated hyphens collapsed, and any
// leading or trailing run of non-word characters stripped.
func NormalizeCode(s string) string {
	s = NormalizeStr(s, true)
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.Map(func(r rune) rune {
		if hyphenVariants[r] {
			return '-'
		}
		return r
	}, s)
	s = dashRun.ReplaceAllString(s, "-")
	s = edgeNonWord.ReplaceAllString(s, "")
	return s
}

// CoerceString renders a raw cell value as a string. Numeric values are
// formatted without scientific notation and without a decimal point so
// long numeric codes survive the spreadsheet round-trip intact.
func CoerceString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', 0, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', 0, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprint(n)
	}
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// whitespace, Excel formula prefixes (="value"), and surrounding
// quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// MakeHeaderIndex creates a HeaderIndex from a header row. Keys are
// lowercased and whitespace-collapsed for tolerant matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(NormalizeStr(CleanCell(h), false))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}
