package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the grid view.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevColumn   key.Binding
	NextColumn   key.Binding
	Sort         key.Binding
	Filter       key.Binding
	ClearFilters key.Binding
	Columns      key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	BiggerPage   key.Binding
	SmallerPage  key.Binding
	Reload       key.Binding
	Export       key.Binding
	Quit         key.Binding
}

// PopoverKeyMap defines the key bindings shared by the filter popovers and the column chooser.
type PopoverKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	ClearAll  key.Binding
	Apply     key.Binding
	Cancel    key.Binding
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           newBinding([]string{"up", "k"}, "up", "↑/k"),
		Down:         newBinding([]string{"down", "j"}, "down", "↓/j"),
		PrevColumn:   newBinding([]string{"left", "h"}, "prev column", "←/h"),
		NextColumn:   newBinding([]string{"right", "l"}, "next column", "→/l"),
		Sort:         newBinding([]string{"s"}, "sort", "s"),
		Filter:       newBinding([]string{"f", "/"}, "filter", "f"),
		ClearFilters: newBinding([]string{"x"}, "clear filters", "x"),
		Columns:      newBinding([]string{"c"}, "columns", "c"),
		NextPage:     newBinding([]string{"n", "pgdown"}, "next page", "n"),
		PrevPage:     newBinding([]string{"p", "pgup"}, "prev page", "p"),
		FirstPage:    newBinding([]string{"home", "g"}, "first page", "g"),
		LastPage:     newBinding([]string{"end", "G"}, "last page", "G"),
		BiggerPage:   newBinding([]string{"+", "="}, "bigger pages", "+"),
		SmallerPage:  newBinding([]string{"-"}, "smaller pages", "-"),
		Reload:       newBinding([]string{"r"}, "reload", "r"),
		Export:       newBinding([]string{"e"}, "export csv", "e"),
		Quit:         newBinding([]string{"q", "ctrl+c"}, "quit", "q"),
	}
}

func DefaultPopoverKeyMap() PopoverKeyMap {
	return PopoverKeyMap{
		Up:        newBinding([]string{"up", "ctrl+p"}, "up", "↑"),
		Down:      newBinding([]string{"down", "ctrl+n"}, "down", "↓"),
		Toggle:    newBinding([]string{" ", "tab"}, "toggle", "space"),
		SelectAll: newBinding([]string{"ctrl+a"}, "select all", "ctrl+a"),
		ClearAll:  newBinding([]string{"ctrl+x"}, "clear", "ctrl+x"),
		Apply:     newBinding([]string{"enter"}, "apply", "enter"),
		Cancel:    newBinding([]string{"esc"}, "cancel", "esc"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Filter, k.Columns, k.NextPage, k.PrevPage, k.Export, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevColumn, k.NextColumn},
		{k.Sort, k.Filter, k.ClearFilters, k.Columns},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.BiggerPage, k.SmallerPage},
		{k.Reload, k.Export, k.Quit},
	}
}

func (k PopoverKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.SelectAll, k.ClearAll, k.Apply, k.Cancel}
}

func (k PopoverKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
