package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/database/repository"
)

// SeedDefaults fills an empty movies table with records.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, records []catalog.Record) error {
	movieRepo := repository.NewMovieRepo(db)
	n, err := movieRepo.Count(ctx)
	if err == nil && n > 0 {
		return nil
	}
	return WithTx(db, func(tx *sql.Tx) error {
		repo := repository.NewMovieRepo(tx)
		for idx, r := range records {
			if err := repo.Upsert(ctx, RowFromRecord(r, idx)); err != nil {
				return err
			}
		}
		return nil
	})
}

// RowFromRecord maps a record to a row at position sortOrder. Records without
// an id get one derived from title and category, so reseeding is stable.
func RowFromRecord(r catalog.Record, sortOrder int) repository.Movie {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("movie:"+r.Title+"|"+r.Category)).String()
	}
	var image *string
	if r.Image != "" {
		img := r.Image
		image = &img
	}
	return repository.Movie{
		ID:        id,
		Title:     r.Title,
		Category:  r.Category,
		Likes:     r.Likes,
		Dislikes:  r.Dislikes,
		Image:     image,
		SortOrder: sortOrder,
	}
}
