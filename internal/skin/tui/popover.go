package tui

import (
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"strings"
)

const maxListLines = 10

func (m *Model[T]) openFilter() tea.Cmd {
	c, ok := m.focused()
	if !ok || c.Filter == nil {
		m.status = "column has no filter"
		return nil
	}

	m.field = c.FilterField()
	m.cursor = 0
	m.status = ""
	m.input.Reset()
	current := m.view.Filters[m.field]

	switch c.FilterType() {
	case column.FilterText:
		m.mode = modeTextFilter
		m.input.Placeholder = "Filter " + c.Name
		if s, ok := current.TextValue(); ok {
			m.input.SetValue(s)
		}
	case column.FilterMultiSelect:
		m.mode = modeOptions
		m.input.Placeholder = "Search " + c.Name
		m.selected = map[string]bool{}
		if values, ok := current.Values(); ok {
			for _, v := range values {
				m.selected[v] = true
			}
		}
	case column.FilterPeople:
		m.mode = modePeople
		m.input.Placeholder = "Search people"
		if p, ok := current.PersonValue(); ok {
			m.input.SetValue(p.Email)
		}
	default:
		return nil
	}
	return m.input.Focus()
}

func (m *Model[T]) closePopover() {
	m.mode = modeGrid
	m.input.Blur()
	m.input.Reset()
	m.selected = nil
	m.cursor = 0
}

func (m *Model[T]) updateInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model[T]) moveCursor(msg tea.KeyMsg, n int) bool {
	switch {
	case key.Matches(msg, m.popKeys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.popKeys.Down):
		m.cursor = max(0, min(n-1, m.cursor+1))
	default:
		return false
	}
	return true
}

func (m *Model[T]) updateTextFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.popKeys.Cancel):
		m.closePopover()
	case key.Matches(msg, m.popKeys.Apply):
		m.grid.SetTextFilter(m.field, m.input.Value())
		m.closePopover()
	case key.Matches(msg, m.popKeys.ClearAll):
		m.grid.SetTextFilter(m.field, "")
		m.closePopover()
	default:
		return m.updateInput(msg)
	}
	return nil
}

func (m *Model[T]) updateOptions(msg tea.KeyMsg) tea.Cmd {
	visible := m.grid.SearchOptions(m.field, m.input.Value())
	if m.moveCursor(msg, len(visible)) {
		return nil
	}

	switch {
	case key.Matches(msg, m.popKeys.Cancel):
		m.closePopover()
	case key.Matches(msg, m.popKeys.Toggle):
		if m.cursor < len(visible) {
			v := visible[m.cursor]
			m.selected[v] = !m.selected[v]
		}
	case key.Matches(msg, m.popKeys.SelectAll):
		for _, v := range visible {
			m.selected[v] = true
		}
	case key.Matches(msg, m.popKeys.ClearAll):
		clear(m.selected)
	case key.Matches(msg, m.popKeys.Apply):
		m.grid.SetMultiSelectFilter(m.field, m.selectedValues())
		m.closePopover()
	default:
		m.cursor = 0
		return m.updateInput(msg)
	}
	return nil
}

// selectedValues lists the selection in option order. Selected values that are no longer
// offered keep their place at the end.
func (m *Model[T]) selectedValues() []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range m.grid.FilterOptions()[m.field] {
		if m.selected[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	for v, on := range m.selected {
		if on && !seen[v] {
			out = append(out, v)
		}
	}
	return out
}

func (m *Model[T]) updatePeople(msg tea.KeyMsg) tea.Cmd {
	results := m.grid.PeopleResults()
	if m.moveCursor(msg, len(results.People)) {
		return nil
	}

	switch {
	case key.Matches(msg, m.popKeys.Cancel):
		m.closePopover()
	case key.Matches(msg, m.popKeys.ClearAll):
		m.grid.SetPeopleFilter(m.field, nil)
		m.closePopover()
	case key.Matches(msg, m.popKeys.Apply):
		text := strings.TrimSpace(m.input.Value())
		switch {
		case !results.Loading && m.cursor < len(results.People) && results.Query == text:
			p := results.People[m.cursor]
			m.grid.SetPeopleFilter(m.field, &p)
		case strings.Contains(text, "@"):
			m.grid.SetPeopleFilter(m.field, &filter.Person{DisplayName: text, Email: text})
		case text == "":
			m.grid.SetPeopleFilter(m.field, nil)
		default:
			m.status = "pick a person or type an email"
			return nil
		}
		m.closePopover()
	default:
		cmd := m.updateInput(msg)
		m.cursor = 0
		m.grid.SearchPeople(m.input.Value())
		return cmd
	}
	return nil
}

// window returns the slice bounds of at most maxListLines entries around the cursor.
func window(n, cursor int) (int, int) {
	start := max(0, min(cursor-maxListLines/2, n-maxListLines))
	return start, min(n, start+maxListLines)
}

func (m Model[T]) popoverView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch m.mode {
	case modeOptions:
		if m.grid.LoadingOptions()[m.field] {
			b.WriteString(m.spinner.View() + m.styles.Loading.Render("Loading options..."))
			break
		}
		opts := m.grid.SearchOptions(m.field, m.input.Value())
		if len(opts) == 0 {
			b.WriteString(m.styles.Disabled.Render("No options"))
			break
		}
		start, end := window(len(opts), m.cursor)
		for i := start; i < end; i++ {
			box := "[ ]"
			if m.selected[opts[i]] {
				box = "[x]"
			}
			b.WriteString(m.line(i, box+" "+opts[i]))
		}
		b.WriteString(m.styles.Summary.Render(fmt.Sprintf("%d selected", len(m.selectedValues()))))

	case modePeople:
		if !m.grid.SupportsPeople() {
			b.WriteString(m.styles.Disabled.Render("No directory: type an email and press enter"))
			break
		}
		r := m.grid.PeopleResults()
		switch {
		case r.Loading:
			b.WriteString(m.spinner.View() + m.styles.Loading.Render("Searching..."))
		case r.Query != "" && len(r.People) == 0:
			b.WriteString(m.styles.Disabled.Render("No people found"))
		}
		start, end := window(len(r.People), m.cursor)
		for i := start; i < end; i++ {
			p := r.People[i]
			b.WriteString(m.line(i, p.DisplayName+" <"+p.Email+">"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model[T]) line(i int, text string) string {
	if i == m.cursor {
		return m.styles.ActivePage.Render("› "+text) + "\n"
	}
	return m.styles.Page.Render("  "+text) + "\n"
}
