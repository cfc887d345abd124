package store

import "github.com/jask/filmotheque/internal/catalog"

// Status is the fetch lifecycle of the collection.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusLoaded  Status = "loaded"
)

// DefaultErrorMessage replaces an empty fetch error message.
const DefaultErrorMessage = "Une erreur est survenue"

// State is a read-only snapshot of the store.
type State struct {
	Movies []catalog.Movie
	Status Status
	Err    string
}

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool { return s.Status == StatusLoading }

// Movie returns the movie with id, if present.
func (s State) Movie(id string) (catalog.Movie, bool) {
	for _, m := range s.Movies {
		if m.ID == id {
			return m, true
		}
	}
	return catalog.Movie{}, false
}

type action interface{ isAction() }

type (
	fetchPending   struct{}
	fetchFulfilled struct{ movies []catalog.Movie }
	fetchRejected  struct{ message string }
	// fetchSettled closes a fetch whose result was suppressed.
	fetchSettled struct{ prior Status }
	deleteMovie  struct{ id string }
	addLike      struct{ id string }
	addDislike   struct{ id string }
)

func (fetchPending) isAction()   {}
func (fetchFulfilled) isAction() {}
func (fetchRejected) isAction()  {}
func (fetchSettled) isAction()   {}
func (deleteMovie) isAction()    {}
func (addLike) isAction()        {}
func (addDislike) isAction()     {}

// reduce returns the state after a. It never modifies s.Movies in place.
func reduce(s State, a action) State {
	switch a := a.(type) {
	case fetchPending:
		s.Status = StatusLoading
		s.Err = ""
	case fetchFulfilled:
		s.Movies = a.movies
		s.Status = StatusLoaded
	case fetchRejected:
		s.Status = StatusError
		s.Err = a.message
		if s.Err == "" {
			s.Err = DefaultErrorMessage
		}
	case fetchSettled:
		s.Status = a.prior
	case deleteMovie:
		out := make([]catalog.Movie, 0, len(s.Movies))
		for _, m := range s.Movies {
			if m.ID != a.id {
				out = append(out, m)
			}
		}
		if len(out) != len(s.Movies) {
			s.Movies = out
		}
	case addLike:
		s.Movies = updateMovie(s.Movies, a.id, func(m *catalog.Movie) {
			if m.Liked {
				return
			}
			m.Likes++
			m.Liked = true
			m.Disliked = false
		})
	case addDislike:
		s.Movies = updateMovie(s.Movies, a.id, func(m *catalog.Movie) {
			if m.Disliked {
				return
			}
			m.Dislikes++
			m.Disliked = true
			m.Liked = false
		})
	}
	return s
}

// updateMovie applies fn to a copy of the collection when id is present, and
// returns movies untouched otherwise.
func updateMovie(movies []catalog.Movie, id string, fn func(*catalog.Movie)) []catalog.Movie {
	for i := range movies {
		if movies[i].ID != id {
			continue
		}
		out := catalog.Clone(movies)
		fn(&out[i])
		return out
	}
	return movies
}
