package core

// rows.go holds the helpers shared by the per-variant row normalizers.

import "strings"

// getCell reads one cell through the header index, cleaned of
// spreadsheet artifacts. Missing columns and short rows read as "".
func getCell(row []string, idx HeaderIndex, col string) string {
	pos, ok := idx[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// toolingRef builds a ToolingRef from a raw cell value. The side comes
// from the value itself, not from which column it sat in: the programs
// occasionally file a left-hand tool under the RH column, and the
// number is authoritative.
func toolingRef(raw string) ToolingRef {
	if strings.TrimSpace(raw) == "" {
		return ToolingRef{}
	}
	return ToolingRef{
		Number: NormalizeCode(raw),
		Side:   ExtractLR(raw),
	}
}

// rawCells captures the original header-to-value association of a row,
// in column order, for lossless metadata carry-through.
func rawCells(header, row []string) []RawCell {
	out := make([]RawCell, 0, len(header))
	for i, h := range header {
		var v string
		if i < len(row) {
			v = row[i]
		}
		out = append(out, RawCell{Column: h, Value: v})
	}
	return out
}

// rowEmpty reports whether every cell of the row is blank.
func rowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
