package catalog

// DefaultPageSizes are the page sizes offered when none are configured.
var DefaultPageSizes = []int{4, 8, 12}

// ViewState is the ephemeral selection driving what the list shows.
// An empty Selected means every category.
type ViewState struct {
	Selected []string
	Page     int
	PerPage  int
}

// NewViewState starts on page 1 with no category selected.
func NewViewState(perPage int) ViewState {
	if perPage <= 0 {
		perPage = DefaultPageSizes[0]
	}
	return ViewState{Page: 1, PerPage: perPage}
}

// WithPerPage changes the page size and goes back to page 1.
func (s ViewState) WithPerPage(n int) ViewState {
	if n <= 0 {
		n = DefaultPageSizes[0]
	}
	s.PerPage = n
	s.Page = 1
	return s
}

// WithPage moves to page p. Values below 1 become 1; the upper bound is left
// to the pagination control, which only emits pages it shows as reachable.
func (s ViewState) WithPage(p int) ViewState {
	if p < 1 {
		p = 1
	}
	s.Page = p
	return s
}

// WithSelected replaces the category selection. The page is kept as is, so a
// page past the end of the new filtered set shows nothing until the user
// navigates back.
func (s ViewState) WithSelected(selected []string) ViewState {
	s.Selected = append([]string(nil), selected...)
	return s
}

// View is the result of applying a ViewState to a collection.
type View struct {
	Filtered   []Movie
	Visible    []Movie
	TotalPages int
}

// Empty reports whether no movie matches the selection.
func (v View) Empty() bool { return len(v.Filtered) == 0 }

// Filter keeps the movies whose category is selected, or all of them when
// nothing is selected.
func Filter(movies []Movie, selected []string) []Movie {
	if len(selected) == 0 {
		return movies
	}
	want := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		want[c] = struct{}{}
	}
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if _, ok := want[m.Category]; ok {
			out = append(out, m)
		}
	}
	return out
}

// TotalPages is ceil(count/perPage), and 0 for an empty set.
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// Paginate returns the 1-indexed page of movies. A page past the end yields
// an empty slice.
func Paginate(movies []Movie, page, perPage int) []Movie {
	if perPage <= 0 {
		perPage = DefaultPageSizes[0]
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(movies) {
		return []Movie{}
	}
	end := start + perPage
	if end > len(movies) {
		end = len(movies)
	}
	return movies[start:end]
}

// Compute filters then paginates movies for state.
func Compute(movies []Movie, state ViewState) View {
	perPage := state.PerPage
	if perPage <= 0 {
		perPage = DefaultPageSizes[0]
	}
	filtered := Filter(movies, state.Selected)
	return View{
		Filtered:   filtered,
		Visible:    Paginate(filtered, state.Page, perPage),
		TotalPages: TotalPages(len(filtered), perPage),
	}
}
