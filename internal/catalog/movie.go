package catalog

// Record is a movie as delivered by a data provider, before the store
// annotates it with per-session like/dislike flags.
type Record struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Category string `json:"category"`
	Likes    int    `json:"likes" validate:"gte=0"`
	Dislikes int    `json:"dislikes" validate:"gte=0"`
	Image    string `json:"images,omitempty"`
}

// Movie is a catalog entry held by the store.
// Liked and Disliked are never both true.
type Movie struct {
	ID       string
	Title    string
	Category string
	Likes    int
	Dislikes int
	Liked    bool
	Disliked bool
	Image    string
}

// FromRecords annotates provider records with cleared like/dislike flags.
func FromRecords(records []Record) []Movie {
	out := make([]Movie, 0, len(records))
	for _, r := range records {
		out = append(out, Movie{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Likes:    r.Likes,
			Dislikes: r.Dislikes,
			Image:    r.Image,
		})
	}
	return out
}

// Clone returns a copy of movies that shares no backing array.
func Clone(movies []Movie) []Movie {
	if movies == nil {
		return nil
	}
	out := make([]Movie, len(movies))
	copy(out, movies)
	return out
}

const defaultImage = "../../assets/default.jpg"

// ImagePath resolves an image reference to the relative path shown with a
// movie card. Missing references fall back to the default asset.
func ImagePath(ref string) string {
	if ref == "" {
		return defaultImage
	}
	return "../" + ref
}
