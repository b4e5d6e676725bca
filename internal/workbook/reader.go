// Package workbook reads tool-list files into the in-memory sheets the
// core engine consumes. It owns every file-format concern: xlsx cell
// extraction, cell-style inspection for strike-through detection,
// header-row scanning, and CSV fallbacks for programs that export both
// formats. The core never sees a file.
package workbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/equipsync/toollist/internal/core"
)

// MaxHeaderSearchRows is the maximum number of leading rows scanned for
// the header. Tool lists routinely carry a title block above it.
var MaxHeaderSearchRows = 20

// headerMarker is the one column every known layout has; the first row
// containing it is taken as the header row.
const headerMarker = "station"

// sciNotation matches raw cell values Excel stored as floating point
// ("1.23457E+12"); those are re-rendered as plain digit strings so
// numeric equipment codes keep their identity.
var sciNotation = regexp.MustCompile(`^[+-]?\d+(\.\d+)?[eE][+-]?\d+$`)

// Load reads every usable sheet of an .xlsx or .csv file.
func Load(path string) ([]core.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Base(path))
	}
}

func loadExcel(path string) ([]core.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var sheets []core.Sheet
	for _, sheetName := range f.GetSheetList() {
		sheet, ok, err := readSheet(f, path, sheetName)
		if err != nil {
			return nil, err
		}
		if ok {
			sheets = append(sheets, sheet)
		}
	}
	return sheets, nil
}

// readSheet extracts one sheet; ok is false for sheets without a
// recognizable header row (cover pages, revision logs).
func readSheet(f *excelize.File, path, sheetName string) (core.Sheet, bool, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return core.Sheet{}, false, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}

	headerIdx := FindHeaderRow(rows)
	if headerIdx < 0 {
		return core.Sheet{}, false, nil
	}

	header := rows[headerIdx]
	data := make([][]string, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = normalizeRawValue(v)
		}
		data = append(data, cells)
	}

	// Strike-through is a style property, so it has to be captured
	// while the workbook is open. One lookup per cell, style results
	// cached by style ID.
	struck, err := struckMatrix(f, sheetName, headerIdx+1, len(data), len(header))
	if err != nil {
		return core.Sheet{}, false, err
	}

	return core.Sheet{
		File:   filepath.Base(path),
		Name:   sheetName,
		Header: header,
		Rows:   data,
		Struck: func(row, col int) bool {
			return row >= 0 && row < len(struck) && col >= 0 && col < len(struck[row]) && struck[row][col]
		},
	}, true, nil
}

// struckMatrix captures the strike-through flag for every data cell.
// firstDataRow is the zero-based sheet row of the first data row.
func struckMatrix(f *excelize.File, sheetName string, firstDataRow, rowCount, colCount int) ([][]bool, error) {
	cache := make(map[int]bool)
	matrix := make([][]bool, rowCount)
	for r := 0; r < rowCount; r++ {
		matrix[r] = make([]bool, colCount)
		for c := 0; c < colCount; c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, firstDataRow+r+1)
			if err != nil {
				return nil, err
			}
			styleID, err := f.GetCellStyle(sheetName, cell)
			if err != nil {
				return nil, fmt.Errorf("cell style %s!%s: %w", sheetName, cell, err)
			}
			strike, ok := cache[styleID]
			if !ok {
				style, err := f.GetStyle(styleID)
				if err != nil {
					return nil, fmt.Errorf("style %d: %w", styleID, err)
				}
				strike = style != nil && style.Font != nil && style.Font.Strike
				cache[styleID] = strike
			}
			matrix[r][c] = strike
		}
	}
	return matrix, nil
}

func loadCSV(path string) ([]core.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	rows, err := readCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", filepath.Base(path), err)
	}

	headerIdx := FindHeaderRow(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("no header row found in %s", filepath.Base(path))
	}

	// CSV carries no cell styles, so no strike-through predicate.
	return []core.Sheet{{
		File:   filepath.Base(path),
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Header: rows[headerIdx],
		Rows:   rows[headerIdx+1:],
	}}, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1 // tool lists are ragged
	return reader.ReadAll()
}

// skipBOM drops a UTF-8 byte order mark if present.
func skipBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(r, buf)
	if n == 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf[:n])), r)
}

// FindHeaderRow returns the index of the first row that looks like a
// tool-list header, or -1. Only the first MaxHeaderSearchRows rows are
// considered.
func FindHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > MaxHeaderSearchRows {
		limit = MaxHeaderSearchRows
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.EqualFold(strings.TrimSpace(cell), headerMarker) {
				return i
			}
		}
	}
	return -1
}

// normalizeRawValue re-renders scientific-notation cell values as plain
// digit strings; everything else passes through untouched.
func normalizeRawValue(v string) string {
	s := strings.TrimSpace(v)
	if !sciNotation.MatchString(s) {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return core.CoerceString(f)
}
