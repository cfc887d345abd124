package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jask/filmotheque/internal/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded up migrations to the database at dbPath.
func RunMigrations(dbPath string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	return up(dbPath, func(driver migratedb.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	})
}

// RunMigrationsFrom applies the up migrations found in a directory.
func RunMigrationsFrom(dbPath, migrationsPath string) error {
	return up(dbPath, func(driver migratedb.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite3", driver)
	})
}

// Migrate applies the migrations in dir, or the embedded ones when dir is
// empty.
func Migrate(dbPath, dir string) error {
	if dir == "" {
		return RunMigrations(dbPath)
	}
	return RunMigrationsFrom(dbPath, dir)
}

// up migrates through a dedicated connection: closing the migrator closes the
// database it was given.
func up(dbPath string, build func(migratedb.Driver) (*migrate.Migrate, error)) error {
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate driver: %w", err)
	}
	m, err := build(driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logging.Debug().Str("db", dbPath).Msg("schema up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, _, _ := m.Version()
	logging.Info().Str("db", dbPath).Uint("version", version).Msg("schema migrated")
	return nil
}
