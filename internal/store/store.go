// Package store persists resolved tool entities and import runs in
// Postgres. Record UUIDs are derived from canonical keys, so the same
// physical tooling maps to the same row across re-imports.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/equipsync/toollist/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// toolNamespace seeds the deterministic record IDs. Never change it;
// every persisted row's UUID derives from it.
var toolNamespace = uuid.MustParse("a4b1e0d2-6c3f-4e8a-9b57-3d21f0c64e19")

// ToolID returns the stable UUID for a canonical key.
func ToolID(canonicalKey string) uuid.UUID {
	return uuid.NewSHA1(toolNamespace, []byte(canonicalKey))
}

// ToolRecord is the persisted form of a resolved tool entity.
type ToolRecord struct {
	ID             uuid.UUID
	CanonicalKey   string
	DisplayCode    string
	Program        string
	AreaName       string
	StationGroup   string
	StationAtomic  string
	EquipmentType  string
	EquipmentNo    string
	Side           string
	Aliases        []string
	SourceFile     string
	SourceSheet    string
	SourceRow      int
	ImportRunID    uuid.UUID
}

// ImportRun records one invocation of the importer.
type ImportRun struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	FileCount  int
	ToolCount  int
	Anomalies  int
}

// RecordFromEntity converts a resolved entity for persistence.
func RecordFromEntity(e core.ToolEntity, runID uuid.UUID) ToolRecord {
	return ToolRecord{
		ID:            ToolID(e.CanonicalKey),
		CanonicalKey:  e.CanonicalKey,
		DisplayCode:   e.DisplayCode,
		Program:       e.Program,
		AreaName:      e.AreaName,
		StationGroup:  e.StationGroup,
		StationAtomic: e.StationAtomic,
		EquipmentType: e.EquipmentType,
		EquipmentNo:   e.EquipmentNo,
		Side:          e.Side,
		Aliases:       e.Aliases,
		SourceFile:    e.Source.File,
		SourceSheet:   e.Source.Sheet,
		SourceRow:     e.Source.Row,
		ImportRunID:   runID,
	}
}

// Store wraps all persistence operations.
type Store struct {
	db DBTX
}

func New(db DBTX) *Store {
	return &Store{db: db}
}

const insertRunSQL = `
INSERT INTO import_runs (id, started_at, finished_at, file_count, tool_count, anomaly_count)
VALUES ($1, $2, $3, $4, $5, $6)`

// CreateRun persists a finished import run.
func (s *Store) CreateRun(ctx context.Context, run ImportRun) error {
	_, err := s.db.Exec(ctx, insertRunSQL,
		run.ID, run.StartedAt, run.FinishedAt, run.FileCount, run.ToolCount, run.Anomalies)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

const upsertToolSQL = `
INSERT INTO tools (
	id, canonical_key, display_code, program,
	area_name, station_group, station_atomic,
	equipment_type, equipment_no, side, aliases,
	source_file, source_sheet, source_row,
	import_run_id, last_seen_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
ON CONFLICT (id) DO UPDATE SET
	display_code   = EXCLUDED.display_code,
	area_name      = EXCLUDED.area_name,
	station_group  = EXCLUDED.station_group,
	station_atomic = EXCLUDED.station_atomic,
	equipment_type = EXCLUDED.equipment_type,
	equipment_no   = EXCLUDED.equipment_no,
	side           = EXCLUDED.side,
	aliases        = EXCLUDED.aliases,
	source_file    = EXCLUDED.source_file,
	source_sheet   = EXCLUDED.source_sheet,
	source_row     = EXCLUDED.source_row,
	import_run_id  = EXCLUDED.import_run_id,
	last_seen_at   = now()`

// UpsertTools writes every record, inserting new tools and refreshing
// ones seen in earlier runs.
func (s *Store) UpsertTools(ctx context.Context, records []ToolRecord) error {
	for _, r := range records {
		_, err := s.db.Exec(ctx, upsertToolSQL,
			r.ID, r.CanonicalKey, r.DisplayCode, r.Program,
			r.AreaName, r.StationGroup, r.StationAtomic,
			r.EquipmentType, r.EquipmentNo, r.Side, r.Aliases,
			r.SourceFile, r.SourceSheet, r.SourceRow,
			r.ImportRunID)
		if err != nil {
			return fmt.Errorf("upsert tool %s: %w", r.CanonicalKey, err)
		}
	}
	return nil
}

const selectKeysSQL = `SELECT canonical_key FROM tools ORDER BY canonical_key`

// ExistingKeys returns every canonical key currently persisted.
func (s *Store) ExistingKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, selectKeysSQL)
	if err != nil {
		return nil, fmt.Errorf("select canonical keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan canonical key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

const retireToolsSQL = `
UPDATE tools SET retired_at = now()
WHERE canonical_key = ANY($1) AND retired_at IS NULL`

// RetireTools marks tools absent from the latest import as retired.
// Rows are kept so historical references stay resolvable.
func (s *Store) RetireTools(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	tag, err := s.db.Exec(ctx, retireToolsSQL, keys)
	if err != nil {
		return 0, fmt.Errorf("retire tools: %w", err)
	}
	return tag.RowsAffected(), nil
}

const selectToolByKeySQL = `
SELECT id, canonical_key, display_code, program,
	area_name, station_group, station_atomic,
	equipment_type, equipment_no, side, aliases,
	source_file, source_sheet, source_row, import_run_id
FROM tools WHERE canonical_key = $1`

// ErrNotFound is returned when a canonical key has no persisted tool.
var ErrNotFound = errors.New("tool not found")

// ToolByKey looks up one tool by canonical key.
func (s *Store) ToolByKey(ctx context.Context, key string) (ToolRecord, error) {
	var r ToolRecord
	err := s.db.QueryRow(ctx, selectToolByKeySQL, key).Scan(
		&r.ID, &r.CanonicalKey, &r.DisplayCode, &r.Program,
		&r.AreaName, &r.StationGroup, &r.StationAtomic,
		&r.EquipmentType, &r.EquipmentNo, &r.Side, &r.Aliases,
		&r.SourceFile, &r.SourceSheet, &r.SourceRow, &r.ImportRunID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ToolRecord{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return ToolRecord{}, fmt.Errorf("select tool %s: %w", key, err)
	}
	return r, nil
}
