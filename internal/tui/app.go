package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/logging"
	"github.com/jask/filmotheque/internal/store"
)

// Options configures the list screen.
type Options struct {
	PageSizes       []int
	DefaultPageSize int
	CategoryLatency time.Duration
}

// App is the movie list screen. It composes the store, the view engine and
// the two controls; every user intent ends up either in the store or in the
// view state held here.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	store   *store.Store
	deriver catalog.Deriver
	sizes   []int

	state    store.State
	view     catalog.ViewState
	filter   FilterControl
	cursor   int
	keys     keyMap
	help     help.Model
	width    int
	status   string
	quitting bool
}

type fetchDoneMsg struct{ err error }

type pageChangedMsg int

type itemsPerPageChangedMsg int

type selectionChangedMsg []string

// New builds the screen. The context bounds every load it starts; Close (or
// quitting) cancels it so late results are dropped.
func New(ctx context.Context, st *store.Store, opts Options) *App {
	sizes := opts.PageSizes
	if len(sizes) == 0 {
		sizes = catalog.DefaultPageSizes
	}
	perPage := opts.DefaultPageSize
	if perPage <= 0 {
		perPage = sizes[0]
	}
	ctx, cancel := context.WithCancel(ctx)
	return &App{
		ctx:     ctx,
		cancel:  cancel,
		log:     logging.With().Str("component", "tui").Logger(),
		store:   st,
		deriver: catalog.Deriver{Latency: opts.CategoryLatency},
		sizes:   append([]int(nil), sizes...),
		state:   st.Snapshot(),
		view:    catalog.NewViewState(perPage),
		filter:  newFilterControl(),
		keys:    newKeyMap(),
		help:    help.New(),
		width:   80,
	}
}

// Close cancels in-flight loads.
func (a *App) Close() { a.cancel() }

func (a *App) Init() tea.Cmd {
	return a.fetch()
}

func (a *App) fetch() tea.Cmd {
	ticket := a.store.Begin()
	a.state = a.store.Snapshot()
	return func() tea.Msg {
		return fetchDoneMsg{err: a.store.Load(a.ctx, ticket)}
	}
}

// reloadCategories hands the filter a loader bound to the current collection.
func (a *App) reloadCategories() tea.Cmd {
	movies := catalog.Clone(a.state.Movies)
	return a.filter.Reload(func() ([]catalog.Option, error) {
		return a.deriver.Load(a.ctx, movies)
	})
}

func (a *App) sync() {
	a.state = a.store.Snapshot()
	if !a.showFilter() {
		a.filter.Hide()
	}
	if n := len(a.visible()); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) computed() catalog.View {
	return catalog.Compute(a.state.Movies, a.view)
}

func (a *App) visible() []catalog.Movie {
	return a.computed().Visible
}

func (a *App) pagination() Pagination {
	return Pagination{
		CurrentPage:  a.view.Page,
		TotalPages:   a.computed().TotalPages,
		ItemsPerPage: a.view.PerPage,
		Sizes:        a.sizes,
		OnPageChange: func(page int) tea.Cmd {
			return func() tea.Msg { return pageChangedMsg(page) }
		},
		OnItemsPerPageChange: func(size int) tea.Cmd {
			return func() tea.Msg { return itemsPerPageChangedMsg(size) }
		},
	}
}

func (a *App) filterProps() FilterProps {
	return FilterProps{
		Selected: a.view.Selected,
		OnChange: func(selected []string) tea.Cmd {
			return func() tea.Msg { return selectionChangedMsg(selected) }
		},
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		// ctrl+c quits from anywhere, the open filter included.
		if m.Type == tea.KeyCtrlC {
			return a.quit()
		}
		if a.filter.Open() {
			return a, a.filter.Update(m, a.filterProps())
		}
		return a.handleKey(m)
	case fetchDoneMsg:
		a.sync()
		switch {
		case m.err == nil:
			a.status = ""
			return a, a.reloadCategories()
		case errors.Is(m.err, store.ErrStale), errors.Is(m.err, context.Canceled):
			a.log.Debug().Err(m.err).Msg("fetch result dropped")
		default:
			a.status = ""
			a.log.Warn().Err(m.err).Msg("fetch failed")
		}
	case optionsLoadedMsg:
		return a, a.filter.Update(m, a.filterProps())
	case pageChangedMsg:
		a.view = a.view.WithPage(int(m))
		a.cursor = 0
	case itemsPerPageChangedMsg:
		a.view = a.view.WithPerPage(int(m))
		a.cursor = 0
	case selectionChangedMsg:
		a.view = a.view.WithSelected(m)
		a.sync()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a.quit()
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.visible())-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Like):
		if mv, ok := a.focused(); ok {
			if mv.Disliked {
				a.status = textLikeDisabled
				return a, nil
			}
			a.store.Like(mv.ID)
			a.status = ""
			a.sync()
		}
	case key.Matches(m, a.keys.Dislike):
		if mv, ok := a.focused(); ok {
			if mv.Liked {
				a.status = textDislikeDisabled
				return a, nil
			}
			a.store.Dislike(mv.ID)
			a.status = ""
			a.sync()
		}
	case key.Matches(m, a.keys.Delete):
		if mv, ok := a.focused(); ok {
			a.store.Delete(mv.ID)
			a.status = fmt.Sprintf(textDeleted, mv.Title)
			a.sync()
			return a, a.reloadCategories()
		}
	case key.Matches(m, a.keys.PrevPage):
		if a.showPagination() {
			return a, a.pagination().Prev()
		}
	case key.Matches(m, a.keys.NextPage):
		if a.showPagination() {
			return a, a.pagination().Next()
		}
	case key.Matches(m, a.keys.PageSize):
		if a.showPagination() {
			return a, a.pagination().CycleSize()
		}
	case key.Matches(m, a.keys.Filter):
		if a.showFilter() {
			a.filter.Show()
		}
	case key.Matches(m, a.keys.Refresh):
		a.status = textRefreshing
		return a, a.fetch()
	}
	return a, nil
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.quitting = true
	a.Close()
	return a, tea.Quit
}

func (a *App) focused() (catalog.Movie, bool) {
	vis := a.visible()
	if a.cursor < 0 || a.cursor >= len(vis) {
		return catalog.Movie{}, false
	}
	return vis[a.cursor], true
}

func (a *App) showFilter() bool { return len(a.state.Movies) > 0 }

func (a *App) showPagination() bool { return !a.computed().Empty() }

func (a *App) showEmpty() bool { return a.computed().Empty() && !a.state.Loading() }

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var sections []string
	if a.state.Loading() {
		sections = append(sections, textLoading)
	}
	if a.state.Err != "" {
		sections = append(sections, errorStyle.Render(a.state.Err))
	}
	sections = append(sections, titleStyle.Render(textHeading))
	if a.showFilter() {
		sections = append(sections, a.filter.View(a.filterProps()))
	}
	if grid := a.renderGrid(); grid != "" {
		sections = append(sections, grid)
	}
	if a.showEmpty() {
		sections = append(sections, emptyStyle.Render(textEmptyCategory))
	}
	if a.showPagination() {
		sections = append(sections, a.pagination().View())
	}
	sections = append(sections, a.help.View(a.keys))
	if a.status != "" {
		sections = append(sections, statusStyle.Render(a.status))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderGrid() string {
	vis := a.visible()
	if len(vis) == 0 {
		return ""
	}
	perRow := a.width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for start := 0; start < len(vis); start += perRow {
		end := start + perRow
		if end > len(vis) {
			end = len(vis)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(vis[i], i == a.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(m catalog.Movie, focused bool) string {
	inner := cardWidth - 4
	like := "[+ " + textLikeButton + "]"
	dislike := "[-]"
	switch {
	case m.Liked:
		like = activeStyle.Render(like)
		dislike = disabledStyle.Render(dislike)
	case m.Disliked:
		like = disabledStyle.Render(like)
		dislike = dislikedStyle.Render(dislike)
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(m.Title, inner, "…")),
		ansi.Truncate(textCategory+m.Category, inner, "…"),
		fmt.Sprintf("%s%d", textLikes, m.Likes),
		fmt.Sprintf("%s%d", textDislikes, m.Dislikes),
		statusStyle.Render(ansi.Truncate(catalog.ImagePath(m.Image), inner, "…")),
		like + " " + dislike,
	}
	style := cardStyle
	if focused {
		style = focusedCard
	}
	return style.Render(strings.Join(lines, "\n"))
}
