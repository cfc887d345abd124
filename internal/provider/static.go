package provider

import (
	"context"
	"time"

	"github.com/jask/filmotheque/internal/catalog"
)

// SeedMovies is the built-in catalog.
func SeedMovies() []catalog.Record {
	return []catalog.Record{
		{ID: "1", Title: "Oceans 8", Category: "Comedy", Likes: 4, Dislikes: 1, Image: "assets/oceans8.jpg"},
		{ID: "2", Title: "Midnight Sun", Category: "Comedy", Likes: 2, Dislikes: 0, Image: "assets/midnight-sun.jpg"},
		{ID: "3", Title: "Les indestructibles 2", Category: "Animation", Likes: 3, Dislikes: 1, Image: "assets/indestructibles2.jpg"},
		{ID: "4", Title: "Sans un bruit", Category: "Thriller", Likes: 6, Dislikes: 6, Image: "assets/sans-un-bruit.jpg"},
		{ID: "5", Title: "Creed II", Category: "Drame", Likes: 16, Dislikes: 2, Image: "assets/creed2.jpg"},
		{ID: "6", Title: "Pulp Fiction", Category: "Thriller", Likes: 11, Dislikes: 3, Image: "assets/pulp-fiction.jpg"},
		{ID: "7", Title: "Pulp Fiction", Category: "Thriller", Likes: 12333, Dislikes: 32},
		{ID: "8", Title: "Seven", Category: "Thriller", Likes: 2, Dislikes: 1, Image: "assets/seven.jpg"},
		{ID: "9", Title: "Inception", Category: "Thriller", Likes: 2, Dislikes: 1, Image: "assets/inception.jpg"},
		{ID: "10", Title: "Gone Girl", Category: "Thriller", Likes: 22, Dislikes: 12},
	}
}

// Static serves a fixed record list after Latency.
type Static struct {
	Records []catalog.Record
	Latency time.Duration
}

// NewStatic serves the built-in catalog.
func NewStatic(latency time.Duration) *Static {
	return &Static{Records: SeedMovies(), Latency: latency}
}

func (s *Static) Movies(ctx context.Context) ([]catalog.Record, error) {
	if err := sleep(ctx, s.Latency); err != nil {
		return nil, err
	}
	out := make([]catalog.Record, len(s.Records))
	copy(out, s.Records)
	return out, nil
}
