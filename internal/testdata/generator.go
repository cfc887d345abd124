package testdata

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/database/repository"
)

var (
	categories = []string{"Comedy", "Animation", "Thriller", "Drame", "Science-fiction", "Documentaire"}
	words      = []string{"Nuit", "Soleil", "Retour", "Ombre", "Voyage", "Dernier", "Secret", "Ville", "Rêve", "Horizon"}
)

// Movies returns n generated records. The same seed yields the same catalog.
// Every third record has no image.
func Movies(n int, seed int64) []catalog.Record {
	rng := rand.New(rand.NewSource(seed))
	out := make([]catalog.Record, 0, n)
	for i := 0; i < n; i++ {
		title := fmt.Sprintf("%s %s %d", words[rng.Intn(len(words))], words[rng.Intn(len(words))], i+1)
		rec := catalog.Record{
			ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("sample:%d:%d", seed, i))).String(),
			Title:    title,
			Category: categories[rng.Intn(len(categories))],
			Likes:    rng.Intn(500),
			Dislikes: rng.Intn(100),
		}
		if i%3 != 2 {
			rec.Image = fmt.Sprintf("assets/sample-%d.jpg", i+1)
		}
		out = append(out, rec)
	}
	return out
}

// Seed appends n generated movies after the existing rows.
func Seed(ctx context.Context, repo *repository.MovieRepo, n int, seed int64) error {
	next, err := repo.NextSortOrder(ctx)
	if err != nil {
		return err
	}
	for i, r := range Movies(n, seed) {
		row := repository.Movie{
			ID:        r.ID,
			Title:     r.Title,
			Category:  r.Category,
			Likes:     r.Likes,
			Dislikes:  r.Dislikes,
			SortOrder: next + i,
		}
		if r.Image != "" {
			img := r.Image
			row.Image = &img
		}
		if err := repo.Insert(ctx, row); err != nil {
			return fmt.Errorf("seed movie %d: %w", i, err)
		}
	}
	return nil
}
