package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pagination renders page navigation and the page-size selector. It holds no
// state: the list screen builds one from its view state on every use, and
// the callbacks carry intents back up.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	ItemsPerPage int
	Sizes        []int

	OnPageChange         func(page int) tea.Cmd
	OnItemsPerPageChange func(size int) tea.Cmd
}

// CanPrev is false on the first page.
func (p Pagination) CanPrev() bool { return p.CurrentPage > 1 }

// CanNext is false on the last page (and past it).
func (p Pagination) CanNext() bool { return p.CurrentPage < p.TotalPages }

// Prev emits the previous page, or nothing when disabled.
func (p Pagination) Prev() tea.Cmd {
	if !p.CanPrev() || p.OnPageChange == nil {
		return nil
	}
	return p.OnPageChange(p.CurrentPage - 1)
}

// Next emits the next page, or nothing when disabled.
func (p Pagination) Next() tea.Cmd {
	if !p.CanNext() || p.OnPageChange == nil {
		return nil
	}
	return p.OnPageChange(p.CurrentPage + 1)
}

// SetSize emits a page-size change. Sizes outside the offered set are ignored.
func (p Pagination) SetSize(n int) tea.Cmd {
	if p.OnItemsPerPageChange == nil {
		return nil
	}
	for _, s := range p.Sizes {
		if s == n {
			return p.OnItemsPerPageChange(n)
		}
	}
	return nil
}

// CycleSize emits the size after the current one, wrapping around.
func (p Pagination) CycleSize() tea.Cmd {
	if len(p.Sizes) == 0 {
		return nil
	}
	next := p.Sizes[0]
	for i, s := range p.Sizes {
		if s == p.ItemsPerPage {
			next = p.Sizes[(i+1)%len(p.Sizes)]
			break
		}
	}
	return p.SetSize(next)
}

func (p Pagination) View() string {
	prev, next := "‹", "›"
	if p.CanPrev() {
		prev = activeStyle.Render(prev)
	} else {
		prev = disabledStyle.Render(prev)
	}
	// The arrow dims only on the last page itself, like a button disabled
	// when current == total.
	if p.CurrentPage == p.TotalPages {
		next = disabledStyle.Render(next)
	} else {
		next = activeStyle.Render(next)
	}
	nav := fmt.Sprintf("%s  %s  %s", prev, fmt.Sprintf(textPageOf, p.CurrentPage, p.TotalPages), next)

	sizes := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		if s == p.ItemsPerPage {
			sizes = append(sizes, activeStyle.Render(fmt.Sprintf("[%d]", s)))
			continue
		}
		sizes = append(sizes, fmt.Sprintf(" %d ", s))
	}
	perPage := textPerPage + " " + strings.Join(sizes, "")
	return lipgloss.JoinVertical(lipgloss.Left, nav, perPage)
}
