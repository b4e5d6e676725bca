package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/equipsync/toollist/internal/config"
	"github.com/equipsync/toollist/internal/ingest"
	"github.com/equipsync/toollist/internal/logging"
	"github.com/equipsync/toollist/internal/store"
	"github.com/equipsync/toollist/internal/workbook"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "toollist",
		Short:        "Normalize tool-list spreadsheets into canonical tool entities",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(cfg))
	root.AddCommand(newImportCmd(cfg))
	root.AddCommand(newShowCmd(cfg))
	return root
}

// runBatch discovers and processes every tool list under dir.
func runBatch(ctx context.Context, cfg *config.Config, dir string, debug bool) (*ingest.BatchResult, error) {
	rules, err := config.LoadPrograms(cfg.Import.ProgramsFile)
	if err != nil {
		return nil, err
	}

	paths, err := ingest.DiscoverFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no tool list files in %s", dir)
	}

	coordinator := ingest.New(ingest.Options{
		Rules:         rules,
		MaxConcurrent: cfg.Import.MaxConcurrent,
		Debug:         debug || cfg.Import.Debug,
	})
	return coordinator.Run(ctx, paths, workbook.Load)
}

func newValidateCmd(cfg *config.Config) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Process tool lists and print validation reports without persisting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Import.Timeout)
			defer cancel()

			batch, err := runBatch(ctx, cfg, args[0], debug)
			if err != nil {
				return err
			}
			printBatch(cmd, batch)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Report deleted rows individually")
	return cmd
}

func newImportCmd(cfg *config.Config) *cobra.Command {
	var (
		apply bool
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Process tool lists and persist resolved tools (dry-run without --apply)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Import.Timeout)
			defer cancel()

			startedAt := time.Now().UTC()
			batch, err := runBatch(ctx, cfg, args[0], debug)
			if err != nil {
				return err
			}
			printBatch(cmd, batch)

			if !apply {
				cmd.Println("dry-run: nothing persisted (use --apply)")
				return nil
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required with --apply")
			}

			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			diff, err := ingest.Persist(ctx, store.New(pool), batch, startedAt)
			if err != nil {
				return err
			}
			cmd.Printf("persisted: %d created, %d updated, %d retired\n",
				len(diff.Created), len(diff.Updated), len(diff.Retired))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Apply changes to the database (default is dry-run)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Report deleted rows individually")
	return cmd
}

func newShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <canonical-key>",
		Short: "Look up one persisted tool by its canonical key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required for show")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Import.Timeout)
			defer cancel()

			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			r, err := store.New(pool).ToolByKey(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s\n", r.CanonicalKey)
			cmd.Printf("  id:        %s\n", r.ID)
			cmd.Printf("  display:   %s\n", r.DisplayCode)
			cmd.Printf("  program:   %s\n", r.Program)
			cmd.Printf("  area:      %s\n", r.AreaName)
			cmd.Printf("  station:   %s (atomic %s)\n", r.StationGroup, r.StationAtomic)
			cmd.Printf("  equipment: %s %s\n", r.EquipmentType, r.EquipmentNo)
			if r.Side != "" {
				cmd.Printf("  side:      %s\n", r.Side)
			}
			cmd.Printf("  aliases:   %s\n", strings.Join(r.Aliases, ", "))
			cmd.Printf("  source:    %s[%s] row %d\n", r.SourceFile, r.SourceSheet, r.SourceRow)
			return nil
		},
	}
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func printBatch(cmd *cobra.Command, batch *ingest.BatchResult) {
	for _, fr := range batch.Files {
		for _, sr := range fr.Sheets {
			r := sr.Report
			cmd.Printf("%s [%s] %s: rows=%d normalized=%d tools=%d deleted=%d no_station=%d no_tooling=%d dup_keys=%d\n",
				fr.File, sr.Sheet, sr.Variant,
				r.RowsRead, r.RowsNormalized, r.EntityCount,
				r.RowsDeleted, r.MissingStationGroup, r.MissingTooling, r.DuplicateKeys)
			for _, a := range r.Anomalies {
				cmd.Printf("  row %d: %s: %s\n", a.Row, a.Code, a.Message)
			}
		}
	}
	for _, a := range batch.BatchDuplicates {
		cmd.Printf("batch: %s: %s\n", a.Code, a.Message)
	}
	cmd.Printf("total: %d files, %d tools, %d anomalies\n",
		len(batch.Files), len(batch.Entities), batch.AnomalyCount())
}
