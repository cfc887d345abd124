package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/database/repository"
)

func openMigrated(t *testing.T) (string, *repository.MovieRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return dbPath, repository.NewMovieRepo(db)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath, repo := openMigrated(t)
	require.NoError(t, RunMigrations(dbPath))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRunMigrationsFromDirectory(t *testing.T) {
	t.Parallel()

	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	dbPath := filepath.Join(t.TempDir(), "dir.db")
	require.NoError(t, RunMigrationsFrom(dbPath, migrations))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('movies', 'catalog_imports')`).Scan(&count))
	require.Equal(t, 2, count)
}

func TestMigrateChoosesSource(t *testing.T) {
	t.Parallel()

	embedded := filepath.Join(t.TempDir(), "embedded.db")
	require.NoError(t, Migrate(embedded, ""))

	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	fromDir := filepath.Join(t.TempDir(), "dir.db")
	require.NoError(t, Migrate(fromDir, migrations))
	require.NoError(t, Migrate(fromDir, ""))

	require.Error(t, Migrate(filepath.Join(t.TempDir(), "bad.db"), filepath.Join(t.TempDir(), "missing")))
}

func TestSeedDefaults(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	records := []catalog.Record{
		{ID: "1", Title: "Seven", Category: "Thriller", Likes: 2, Dislikes: 1, Image: "assets/seven.jpg"},
		{Title: "No id", Category: "Drame"},
	}
	require.NoError(t, SeedDefaults(ctx, db, records))
	// Second run is a no-op even with different input.
	require.NoError(t, SeedDefaults(ctx, db, []catalog.Record{{ID: "z", Title: "Z"}}))

	repo := repository.NewMovieRepo(db)
	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "1", rows[0].ID)
	require.NotNil(t, rows[0].Image)
	require.Equal(t, "assets/seven.jpg", *rows[0].Image)
	require.Nil(t, rows[1].Image)
	require.Equal(t, RowFromRecord(records[1], 1).ID, rows[1].ID)
	require.Len(t, rows[1].ID, 36)

	next, err := repo.NextSortOrder(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, next)
}

func TestMovieRepoInsertAndUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, repo := openMigrated(t)

	next, err := repo.NextSortOrder(ctx)
	require.NoError(t, err)
	require.Zero(t, next)

	for i, rec := range []catalog.Record{
		{ID: "1", Title: "A1", Category: "A"},
		{ID: "2", Title: "B1", Category: "B"},
		{ID: "3", Title: "C1", Category: "C"},
	} {
		require.NoError(t, repo.Insert(ctx, RowFromRecord(rec, i)))
	}
	require.Error(t, repo.Insert(ctx, RowFromRecord(catalog.Record{ID: "1", Title: "dup"}, 9)))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})

	require.NoError(t, repo.Upsert(ctx, RowFromRecord(catalog.Record{ID: "2", Title: "B2", Category: "B", Likes: 7}, 1)))
	rows, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "B2", rows[1].Title)
	require.Equal(t, 7, rows[1].Likes)
}
