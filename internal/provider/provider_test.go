package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/database"
	"github.com/jask/filmotheque/internal/database/repository"
)

func TestStaticServesSeed(t *testing.T) {
	t.Parallel()

	p := NewStatic(0)
	got, err := p.Movies(context.Background())
	require.NoError(t, err)
	require.Equal(t, SeedMovies(), got)
	require.NoError(t, ValidateRecords(got))

	got[0].Title = "mutated"
	again, err := p.Movies(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Oceans 8", again[0].Title)
}

func TestStaticHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := NewStatic(time.Second).Movies(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestJSONFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.json")
	data := `[
	  {"id": "a", "title": "Alpha", "category": "Drame", "likes": 1, "dislikes": 0, "images": "assets/a.jpg"},
	  {"id": "b", "title": "Beta", "category": "Comedy", "likes": 0, "dislikes": 2}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	got, err := JSONFile{Path: path}.Movies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []catalog.Record{
		{ID: "a", Title: "Alpha", Category: "Drame", Likes: 1, Image: "assets/a.jpg"},
		{ID: "b", Title: "Beta", Category: "Comedy", Dislikes: 2},
	}, got)
}

func TestJSONFileErrors(t *testing.T) {
	t.Parallel()

	_, err := JSONFile{Path: filepath.Join(t.TempDir(), "missing.json")}.Movies(context.Background())
	require.Error(t, err)

	_, err = DecodeJSON(strings.NewReader(`{"id": 1}`))
	require.Error(t, err)

	got, err := DecodeJSON(strings.NewReader(`null`))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestValidateRecords(t *testing.T) {
	t.Parallel()

	cases := map[string][]catalog.Record{
		"missing id":     {{Title: "x"}},
		"missing title":  {{ID: "1"}},
		"negative likes": {{ID: "1", Title: "x", Likes: -1}},
		"negative dis":   {{ID: "1", Title: "x", Dislikes: -3}},
		"duplicate id":   {{ID: "1", Title: "x"}, {ID: "1", Title: "y"}},
	}
	for name, records := range cases {
		err := ValidateRecords(records)
		require.ErrorIs(t, err, ErrInvalidRecord, name)
	}
	require.NoError(t, ValidateRecords(nil))
}

func TestValidatingWrapsProvider(t *testing.T) {
	t.Parallel()

	bad := Func(func(context.Context) ([]catalog.Record, error) {
		return []catalog.Record{{ID: "1"}}, nil
	})
	_, err := Validating{Next: bad}.Movies(context.Background())
	require.ErrorIs(t, err, ErrInvalidRecord)

	failing := Func(func(context.Context) ([]catalog.Record, error) {
		return nil, errors.New("network error")
	})
	_, err = Validating{Next: failing}.Movies(context.Background())
	require.EqualError(t, err, "network error")

	got, err := Validating{Next: NewStatic(0)}.Movies(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(SeedMovies()))
}

func TestSQLiteProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.SeedDefaults(ctx, db, SeedMovies()))

	got, err := SQLite{Repo: repository.NewMovieRepo(db)}.Movies(ctx)
	require.NoError(t, err)
	require.Equal(t, SeedMovies(), got)
}
