package tui

import (
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/filmotheque/internal/catalog"
)

// OptionLoader fetches the options offered by the filter.
type OptionLoader func() ([]catalog.Option, error)

// FilterProps is what the owner passes in on each use.
type FilterProps struct {
	Selected []string
	OnChange func(selected []string) tea.Cmd
}

// FilterControl is a multi-select over asynchronously loaded categories. It
// owns its options, loading flag and open/query state; the selection belongs
// to the caller.
type FilterControl struct {
	options []catalog.Option
	loading bool
	rev     int
	open    bool
	cursor  int
	query   string
	keys    filterKeyMap
}

func newFilterControl() FilterControl {
	return FilterControl{loading: true, keys: newFilterKeyMap()}
}

type optionsLoadedMsg struct {
	rev     int
	options []catalog.Option
	err     error
}

// Reload marks the control loading and starts load. Results from earlier
// reloads are discarded when they arrive.
func (f *FilterControl) Reload(load OptionLoader) tea.Cmd {
	f.rev++
	f.loading = true
	rev := f.rev
	return func() tea.Msg {
		opts, err := load()
		return optionsLoadedMsg{rev: rev, options: opts, err: err}
	}
}

// Loading reports whether options are being loaded.
func (f FilterControl) Loading() bool { return f.loading }

// Open reports whether the option list is shown.
func (f FilterControl) Open() bool { return f.open }

// Options returns the loaded options.
func (f FilterControl) Options() []catalog.Option { return f.options }

func (f *FilterControl) Show() {
	f.open = true
	f.query = ""
	f.cursor = 0
}

func (f *FilterControl) Hide() {
	f.open = false
	f.query = ""
}

// Update handles option results and, while open, keys.
func (f *FilterControl) Update(msg tea.Msg, props FilterProps) tea.Cmd {
	switch m := msg.(type) {
	case optionsLoadedMsg:
		if m.rev != f.rev {
			return nil
		}
		f.loading = false
		if m.err == nil {
			f.options = m.options
		}
		f.clampCursor()
	case tea.KeyMsg:
		if !f.open {
			return nil
		}
		return f.handleKey(m, props)
	}
	return nil
}

func (f *FilterControl) handleKey(m tea.KeyMsg, props FilterProps) tea.Cmd {
	switch {
	case key.Matches(m, f.keys.Close):
		f.Hide()
	case key.Matches(m, f.keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(m, f.keys.Down):
		if f.cursor < len(f.Matches())-1 {
			f.cursor++
		}
	case key.Matches(m, f.keys.Toggle):
		matches := f.Matches()
		if len(matches) == 0 {
			return nil
		}
		return emit(props, toggle(props.Selected, matches[f.cursor].Value))
	case key.Matches(m, f.keys.Clear):
		if len(props.Selected) == 0 {
			return nil
		}
		return emit(props, []string{})
	case key.Matches(m, f.keys.Erase):
		if r := []rune(f.query); len(r) > 0 {
			f.query = string(r[:len(r)-1])
			f.clampCursor()
		}
	case m.Type == tea.KeyRunes:
		f.query += string(m.Runes)
		f.cursor = 0
	}
	return nil
}

func emit(props FilterProps, selected []string) tea.Cmd {
	if props.OnChange == nil {
		return nil
	}
	return props.OnChange(selected)
}

// toggle adds or removes value, keeping selection order.
func toggle(selected []string, value string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == value {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func (f *FilterControl) clampCursor() {
	n := len(f.Matches())
	if f.cursor >= n {
		f.cursor = n - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

// Matches returns the options matching the typed query, best first. Labels
// containing the query rank ahead of near misses; a near miss is a label
// whose prefix is within one edit per four query runes.
func (f FilterControl) Matches() []catalog.Option {
	q := strings.ToLower(strings.TrimSpace(f.query))
	if q == "" {
		return f.options
	}
	type scored struct {
		opt   catalog.Option
		score int
		idx   int
	}
	budget := len([]rune(q)) / 4
	var hits []scored
	for i, o := range f.options {
		label := strings.ToLower(o.Label)
		if strings.Contains(label, q) {
			hits = append(hits, scored{o, 0, i})
			continue
		}
		prefix := []rune(label)
		if n := len([]rune(q)); len(prefix) > n {
			prefix = prefix[:n]
		}
		if d := levenshtein.ComputeDistance(q, string(prefix)); d <= budget {
			hits = append(hits, scored{o, d, i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].idx < hits[j].idx
	})
	out := make([]catalog.Option, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.opt)
	}
	return out
}

func (f FilterControl) View(props FilterProps) string {
	var chips []string
	for _, o := range f.options {
		if slices.Contains(props.Selected, o.Value) {
			chips = append(chips, chipStyle.Render(o.Label))
		}
	}
	head := statusStyle.Render(textFilterPlaceholder)
	if len(chips) > 0 {
		head = strings.Join(chips, " ")
	}
	if f.loading {
		head += " " + statusStyle.Render("…")
	}
	if !f.open {
		return head
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n> " + f.query + "\n")
	matches := f.Matches()
	switch {
	case f.loading && len(f.options) == 0:
		b.WriteString(statusStyle.Render(textLoading))
	case len(matches) == 0:
		b.WriteString(statusStyle.Render(textNoCategories))
	default:
		lines := make([]string, 0, len(matches))
		for i, o := range matches {
			marker := "  "
			if i == f.cursor {
				marker = "▶ "
			}
			box := "[ ] "
			if slices.Contains(props.Selected, o.Value) {
				box = "[x] "
			}
			lines = append(lines, marker+box+o.Label)
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	return filterBox.Render(b.String())
}
