package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/database/repository"
)

// SQLite reads the catalog from the movies table, in stored order.
type SQLite struct {
	Repo    *repository.MovieRepo
	Latency time.Duration
}

func (p SQLite) Movies(ctx context.Context) ([]catalog.Record, error) {
	if err := sleep(ctx, p.Latency); err != nil {
		return nil, err
	}
	rows, err := p.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	out := make([]catalog.Record, 0, len(rows))
	for _, r := range rows {
		rec := catalog.Record{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Likes:    r.Likes,
			Dislikes: r.Dislikes,
		}
		if r.Image != nil {
			rec.Image = *r.Image
		}
		out = append(out, rec)
	}
	return out, nil
}
