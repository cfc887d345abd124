package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/filmotheque/internal/config"
	"github.com/jask/filmotheque/internal/database"
	"github.com/jask/filmotheque/internal/database/repository"
	"github.com/jask/filmotheque/internal/logging"
	"github.com/jask/filmotheque/internal/provider"
	"github.com/jask/filmotheque/internal/service"
	"github.com/jask/filmotheque/internal/store"
	"github.com/jask/filmotheque/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if len(os.Args) > 1 {
		if err := runCommand(ctx, cfg, os.Args[1]); err != nil {
			log.Fatalf("%s: %v", os.Args[1], err)
		}
		return
	}

	// Deferred closes live in run.
	if err := run(ctx, cfg); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer logFile.Close()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logFile})

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("open source")
		return fmt.Errorf("source: %w", err)
	}
	defer closeSource()

	st := store.New(provider.Validating{Next: source})
	app := tui.New(ctx, st, tui.Options{
		PageSizes:       cfg.UI.PageSizes,
		DefaultPageSize: cfg.UI.DefaultPageSize,
		CategoryLatency: cfg.UI.CategoryLatency,
	})
	defer app.Close()

	logging.Info().Str("source", cfg.Source.Kind).Msg("starting")
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error().Err(err).Msg("program exited")
		return err
	}
	return nil
}

func openSource(ctx context.Context, cfg config.Config) (store.Provider, func(), error) {
	noop := func() {}
	switch cfg.Source.Kind {
	case config.SourceJSON:
		return provider.JSONFile{Path: cfg.Source.Path, Latency: cfg.Source.Latency}, noop, nil
	case config.SourceSQLite:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewMovieRepo(db)
		return provider.SQLite{Repo: repo, Latency: cfg.Source.Latency}, func() { db.Close() }, nil
	default:
		return provider.NewStatic(cfg.Source.Latency), noop, nil
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if err := database.Migrate(cfg.Database.Path, cfg.Database.MigrationsDir); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.Database.Seed {
		if err := database.SeedDefaults(ctx, db, provider.SeedMovies()); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed defaults: %w", err)
		}
	}

	if cfg.Database.ImportPath != "" {
		ingester := &service.IngestService{
			Movies:  repository.NewMovieRepo(db),
			Imports: repository.NewImportRepo(db),
		}
		res, err := ingester.ImportFile(ctx, cfg.Database.ImportPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("import %s: %w", cfg.Database.ImportPath, err)
		}
		logging.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Int("errors", len(res.Errors)).Msg("catalog import")
	}
	return db, nil
}

// runCommand handles the non-interactive subcommands.
func runCommand(ctx context.Context, cfg config.Config, name string) error {
	switch name {
	case "init-config":
		path, err := config.Save(cfg)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "reset-db":
		if err := database.Migrate(cfg.Database.Path, cfg.Database.MigrationsDir); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		m := &service.MaintenanceService{DB: db}
		if err := m.Reset(ctx); err != nil {
			return err
		}
		fmt.Println("catalog reset:", cfg.Database.Path)
		return nil
	default:
		return fmt.Errorf("unknown command (want init-config or reset-db)")
	}
}
