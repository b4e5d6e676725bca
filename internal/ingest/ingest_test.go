package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equipsync/toollist/internal/config"
	"github.com/equipsync/toollist/internal/core"
	"github.com/equipsync/toollist/internal/schema"
)

var flatHeader = []string{"Area", "Station", "Equipment Type", "Equipment No.", "Tooling No. RH", "Tooling No. LH"}

func flatSheet(file string, rows ...[]string) core.Sheet {
	return core.Sheet{File: file, Name: "Tool List", Header: flatHeader, Rows: rows}
}

func fakeLoader(sheets map[string][]core.Sheet) func(string) ([]core.Sheet, error) {
	return func(path string) ([]core.Sheet, error) {
		s, ok := sheets[filepath.Base(path)]
		if !ok {
			return nil, errors.New("unknown file")
		}
		return s, nil
	}
}

func TestRunMergesInFileOrder(t *testing.T) {
	loader := fakeLoader(map[string][]core.Sheet{
		"a_x590.xlsx": {flatSheet("a_x590.xlsx",
			[]string{"1A", "1A-010", "ROBOT", "880001", "1A-010R-ROB-01", ""})},
		"b_x590.xlsx": {flatSheet("b_x590.xlsx",
			[]string{"1A", "1A-020", "FIXTURE", "880002", "", "1A-020L-FIX-01"})},
	})

	c := New(Options{MaxConcurrent: 2})
	batch, err := c.Run(context.Background(), []string{"a_x590.xlsx", "b_x590.xlsx"}, loader)
	require.NoError(t, err)

	require.Len(t, batch.Files, 2)
	assert.Equal(t, "a_x590.xlsx", batch.Files[0].File)
	assert.Equal(t, "b_x590.xlsx", batch.Files[1].File)
	require.Len(t, batch.Entities, 2)
	assert.Equal(t, "a_x590.xlsx", batch.Entities[0].Source.File, "merge order must follow file order")
	assert.Empty(t, batch.BatchDuplicates)
}

func TestRunRoutingRuleForcesVariant(t *testing.T) {
	// The filename token says x590 but the columns are the sectioned
	// layout; the routing rule must win over autodetection.
	sectionedHeader := []string{"Area Name", "Station", "Equipment Type", "Equipment No", "Tooling Number RH", "Tooling Number LH"}
	loader := fakeLoader(map[string][]core.Sheet{
		"x590_mislabeled.xlsx": {{
			File:   "x590_mislabeled.xlsx",
			Name:   "Tool List",
			Header: sectionedHeader,
			Rows: [][]string{
				{"Framing", "7F-010", "WELD GUN", "910001", "7F-010R-GUN-01", ""},
			},
		}},
	})
	rules := &config.Programs{Rules: []config.ProgramRule{
		{Program: "P702", Match: "x590_mislabeled.xlsx", Variant: "sectioned"},
	}}

	c := New(Options{Rules: rules})
	batch, err := c.Run(context.Background(), []string{"x590_mislabeled.xlsx"}, loader)
	require.NoError(t, err)

	require.Len(t, batch.Files[0].Sheets, 1)
	sr := batch.Files[0].Sheets[0]
	assert.Equal(t, schema.VariantSectioned, sr.Variant)
	require.Len(t, sr.Entities, 1)
	assert.Equal(t, "P702|7F-010R-GUN-01", sr.Entities[0].CanonicalKey)
}

func TestRunCrossFileDuplicates(t *testing.T) {
	row := []string{"1A", "1A-010", "ROBOT", "880001", "1A-010R-ROB-01", ""}
	loader := fakeLoader(map[string][]core.Sheet{
		"first_x590.xlsx":  {flatSheet("first_x590.xlsx", row)},
		"second_x590.xlsx": {flatSheet("second_x590.xlsx", row)},
	})

	c := New(Options{})
	batch, err := c.Run(context.Background(), []string{"first_x590.xlsx", "second_x590.xlsx"}, loader)
	require.NoError(t, err)

	require.Len(t, batch.BatchDuplicates, 1)
	a := batch.BatchDuplicates[0]
	assert.Equal(t, core.AnomalyDuplicateCanonicalKey, a.Code)
	assert.Equal(t, "X590|1A-010R-ROB-01", a.Details["key"])
	assert.Equal(t, []string{
		"first_x590.xlsx[Tool List] row 0",
		"second_x590.xlsx[Tool List] row 0",
	}, a.Details["sources"])
	assert.Equal(t, 1, batch.AnomalyCount())
}

func TestRunSameFileCrossSheetDuplicate(t *testing.T) {
	// The same tooling number on two sheets of one workbook must be
	// caught at batch scope: neither sheet's own validator can see it.
	row := []string{"1A", "1A-010", "ROBOT", "880001", "1A-010R-ROB-01", ""}
	loader := fakeLoader(map[string][]core.Sheet{
		"plant_x590.xlsx": {
			{File: "plant_x590.xlsx", Name: "Line 1", Header: flatHeader, Rows: [][]string{row}},
			{File: "plant_x590.xlsx", Name: "Line 2", Header: flatHeader, Rows: [][]string{row}},
		},
	})

	c := New(Options{})
	batch, err := c.Run(context.Background(), []string{"plant_x590.xlsx"}, loader)
	require.NoError(t, err)

	for _, sr := range batch.Files[0].Sheets {
		assert.Zero(t, sr.Report.DuplicateKeys, "sheet %s sees no duplicate on its own", sr.Sheet)
	}

	require.Len(t, batch.BatchDuplicates, 1)
	a := batch.BatchDuplicates[0]
	assert.Equal(t, core.AnomalyDuplicateCanonicalKey, a.Code)
	assert.Equal(t, "X590|1A-010R-ROB-01", a.Details["key"])
	assert.Equal(t, 0, a.Row, "anomaly carries the offending source row")
	assert.Equal(t, []string{
		"plant_x590.xlsx[Line 1] row 0",
		"plant_x590.xlsx[Line 2] row 0",
	}, a.Details["sources"])
}

func TestRunPropagatesFileError(t *testing.T) {
	loader := fakeLoader(nil)

	c := New(Options{MaxConcurrent: 4})
	_, err := c.Run(context.Background(), []string{"missing_x590.xlsx"}, loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing_x590.xlsx")
}

func TestRunUnknownSchema(t *testing.T) {
	loader := fakeLoader(map[string][]core.Sheet{
		"mystery.xlsx": {{
			File:   "mystery.xlsx",
			Name:   "Sheet1",
			Header: []string{"Foo", "Bar"},
			Rows:   [][]string{{"1", "2"}},
		}},
	})

	c := New(Options{})
	_, err := c.Run(context.Background(), []string{"mystery.xlsx"}, loader)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownSchema)
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.csv", "notes.txt", "c.XLSM"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	paths, err := DiscoverFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	assert.Equal(t, []string{"a.csv", "b.xlsx", "c.XLSM"}, names)
}
