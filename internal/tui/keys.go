package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Like     key.Binding
	Dislike  key.Binding
	Delete   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	PageSize key.Binding
	Filter   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "précédent")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "suivant")),
		Like:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		Dislike:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dislike")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "supprimer")),
		PrevPage: key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "page préc.")),
		NextPage: key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "page suiv.")),
		PageSize: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "films/page")),
		Filter:   key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "catégories")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recharger")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "aide")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quitter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Like, k.Dislike, k.Delete, k.PrevPage, k.NextPage, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Like, k.Dislike, k.Delete},
		{k.PrevPage, k.NextPage, k.PageSize},
		{k.Filter, k.Refresh, k.Help, k.Quit},
	}
}

type filterKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Close  key.Binding
	Erase  key.Binding
}

func newFilterKeyMap() filterKeyMap {
	return filterKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "haut")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "bas")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("entrée", "cocher")),
		Clear:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "tout effacer")),
		Close:  key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("échap", "fermer")),
		Erase:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	}
}
