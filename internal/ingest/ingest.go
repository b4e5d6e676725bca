// Package ingest coordinates full import runs: it discovers tool-list
// files, routes each one to the right schema variant, resolves
// entities in parallel and optionally persists the merged result.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/equipsync/toollist/internal/config"
	"github.com/equipsync/toollist/internal/core"
	"github.com/equipsync/toollist/internal/logging"
	"github.com/equipsync/toollist/internal/schema"
	"github.com/equipsync/toollist/internal/store"
)

// Options controls a coordinator.
type Options struct {
	// Rules force variants per file name pattern; nil means every
	// file is autodetected.
	Rules *config.Programs

	// MaxConcurrent bounds parallel file processing. Values below 1
	// mean sequential.
	MaxConcurrent int

	// Debug enables per-row diagnostics in the engine.
	Debug bool
}

// SheetResult is the outcome for one sheet of one file.
type SheetResult struct {
	Sheet    string
	Variant  schema.Variant
	Entities []core.ToolEntity
	Report   core.Report
}

// FileResult is the outcome for one file.
type FileResult struct {
	File   string
	Sheets []SheetResult
}

// BatchResult is the merged outcome of a full run.
type BatchResult struct {
	Files    []FileResult
	Entities []core.ToolEntity

	// BatchDuplicates lists canonical keys produced by more than one
	// sheet, whether the sheets sit in one file or several.
	// Within-sheet duplicates are already reported per sheet; this
	// catches the same tooling exported twice.
	BatchDuplicates []core.Anomaly
}

// Coordinator runs imports.
type Coordinator struct {
	opts Options
}

func New(opts Options) *Coordinator {
	return &Coordinator{opts: opts}
}

// DiscoverFiles returns every tool-list file directly under dir,
// sorted by name.
func DiscoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".xlsx", ".xlsm", ".csv":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Run processes every file and merges the results in file order, so
// the same inputs always yield the same batch.
func (c *Coordinator) Run(ctx context.Context, paths []string, load func(string) ([]core.Sheet, error)) (*BatchResult, error) {
	results := make([]*FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	limit := c.opts.MaxConcurrent
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := c.processFile(gctx, path, load)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			results[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{}
	for _, fr := range results {
		batch.Files = append(batch.Files, *fr)
		for _, sr := range fr.Sheets {
			batch.Entities = append(batch.Entities, sr.Entities...)
		}
	}
	batch.BatchDuplicates = batchDuplicates(batch.Entities)
	return batch, nil
}

func (c *Coordinator) processFile(ctx context.Context, path string, load func(string) ([]core.Sheet, error)) (*FileResult, error) {
	logger := logging.WithFields(ctx, "file", filepath.Base(path))

	sheets, err := load(path)
	if err != nil {
		return nil, err
	}

	opts := core.Options{Debug: c.opts.Debug}
	if c.opts.Rules != nil {
		if v, ok := c.opts.Rules.VariantFor(path); ok {
			opts.Variant = v
			logger.Debug("variant forced by routing rule", "variant", v)
		}
	}

	fr := &FileResult{File: filepath.Base(path)}
	for _, sheet := range sheets {
		result, err := core.ProcessSheet(sheet, opts)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		logger.Info("sheet processed",
			"sheet", sheet.Name,
			"variant", result.Variant,
			"rows", result.Validation.RowsRead,
			"tools", result.Validation.EntityCount,
			"anomalies", len(result.Validation.Anomalies))
		fr.Sheets = append(fr.Sheets, SheetResult{
			Sheet:    sheet.Name,
			Variant:  result.Variant,
			Entities: result.Entities,
			Report:   result.Validation,
		})
	}
	return fr, nil
}

// batchDuplicates flags canonical keys produced by more than one
// sheet. Entities arrive in merge order, so the recorded sources and
// the offending row are deterministic.
func batchDuplicates(entities []core.ToolEntity) []core.Anomaly {
	sources := make(map[string][]core.SourceRef)
	for _, e := range entities {
		sources[e.CanonicalKey] = append(sources[e.CanonicalKey], e.Source)
	}

	var keys []string
	for key, refs := range sources {
		sheets := make(map[string]bool, len(refs))
		for _, s := range refs {
			sheets[s.File+"\x00"+s.Sheet] = true
		}
		if len(sheets) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var anomalies []core.Anomaly
	for _, key := range keys {
		refs := sources[key]
		locations := make([]string, len(refs))
		for i, s := range refs {
			locations[i] = fmt.Sprintf("%s[%s] row %d", s.File, s.Sheet, s.Row)
		}
		// The first occurrence from a different sheet than the first
		// is the offending row.
		offending := refs[1]
		for _, s := range refs[1:] {
			if s.File != refs[0].File || s.Sheet != refs[0].Sheet {
				offending = s
				break
			}
		}
		anomalies = append(anomalies, core.Anomaly{
			Code:    core.AnomalyDuplicateCanonicalKey,
			Row:     offending.Row,
			Message: fmt.Sprintf("canonical key %s produced %d times across sheets", key, len(refs)),
			Details: map[string]any{"key": key, "sources": locations},
		})
	}
	return anomalies
}

// AnomalyCount totals the anomalies across every sheet plus the batch
// level duplicates.
func (b *BatchResult) AnomalyCount() int {
	n := len(b.BatchDuplicates)
	for _, fr := range b.Files {
		for _, sr := range fr.Sheets {
			n += len(sr.Report.Anomalies)
		}
	}
	return n
}

// Persist writes the batch to the store inside one import run: tools
// are upserted, tools missing from this batch are retired, and the run
// itself is recorded.
func Persist(ctx context.Context, st *store.Store, batch *BatchResult, startedAt time.Time) (store.Diff, error) {
	runID := uuid.New()
	ctx = logging.WithRunID(ctx, runID.String())
	logger := logging.FromContext(ctx)

	records := make([]store.ToolRecord, 0, len(batch.Entities))
	for _, e := range batch.Entities {
		records = append(records, store.RecordFromEntity(e, runID))
	}

	existing, err := st.ExistingKeys(ctx)
	if err != nil {
		return store.Diff{}, err
	}
	diff := store.ComputeDiff(existing, records)

	if err := st.UpsertTools(ctx, records); err != nil {
		return store.Diff{}, err
	}
	retired, err := st.RetireTools(ctx, diff.Retired)
	if err != nil {
		return store.Diff{}, err
	}

	run := store.ImportRun{
		ID:         runID,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		FileCount:  len(batch.Files),
		ToolCount:  len(records),
		Anomalies:  batch.AnomalyCount(),
	}
	if err := st.CreateRun(ctx, run); err != nil {
		return store.Diff{}, err
	}

	logger.Info("import persisted",
		"created", len(diff.Created),
		"updated", len(diff.Updated),
		"retired", retired)
	return diff, nil
}
