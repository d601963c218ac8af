// Package tui is the interactive terminal skin of the grid.
package tui

import (
	"fmt"
	skintable "github.com/alaarab/ogrid-go/internal/skin/table"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/csvexport"
	"github.com/alaarab/ogrid-go/pkg/grid"
	"github.com/alaarab/ogrid-go/pkg/pager"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"slices"
	"strings"
	"time"
)

type mode int

const (
	modeGrid mode = iota
	modeTextFilter
	modeOptions
	modePeople
	modeColumns
)

const (
	defaultWidthHint = 12
	minTableHeight   = 3
)

type Config[T any] struct {
	Grid *grid.Grid[T]
	// Updates delivers grid notifications. Optional.
	Updates *Updates
	// Downloader receives CSV exports. Exporting is disabled without one.
	Downloader csvexport.Downloader
	// Label names the rows in the pager summary.
	Label string
	Title string
}

// Model is the bubbletea model over one grid.
type Model[T any] struct {
	grid       *grid.Grid[T]
	updates    *Updates
	downloader csvexport.Downloader
	label      string
	title      string

	keys    KeyMap
	popKeys PopoverKeyMap
	styles  skintable.Styles

	rows    table.Model
	spinner spinner.Model
	input   textinput.Model
	help    help.Model

	view  grid.View[T]
	mode  mode
	focus int

	// popover state
	field    string
	cursor   int
	selected map[string]bool

	status   string
	width    int
	height   int
	quitting bool
	now      func() time.Time
}

func New[T any](cfg *Config[T]) Model[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(skintable.ColorAccent)

	in := textinput.New()
	in.CharLimit = 120
	in.Width = 40

	rows := table.New(
		table.WithFocused(true),
		table.WithHeight(pager.PageSizeOptions[0]),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(skintable.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(skintable.ColorAccent)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(skintable.ColorAccent)
	rows.SetStyles(s)

	m := Model[T]{
		grid:       cfg.Grid,
		updates:    cfg.Updates,
		downloader: cfg.Downloader,
		label:      cfg.Label,
		title:      cfg.Title,
		keys:       DefaultKeyMap(),
		popKeys:    DefaultPopoverKeyMap(),
		styles:     skintable.DefaultStyles(),
		rows:       rows,
		spinner:    sp,
		input:      in,
		help:       help.New(),
		now:        time.Now,
	}
	m.sync()
	return m
}

func (m Model[T]) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.updates != nil {
		cmds = append(cmds, m.updates.wait)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case updatedMsg:
		m.sync()
		return m, m.updates.wait

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeGrid:
			cmd = m.updateGrid(msg)
		case modeTextFilter:
			cmd = m.updateTextFilter(msg)
		case modeOptions:
			cmd = m.updateOptions(msg)
		case modePeople:
			cmd = m.updatePeople(msg)
		case modeColumns:
			cmd = m.updateColumns(msg)
		}
		m.sync()
		return m, cmd
	}
	return m, nil
}

func (m *Model[T]) updateGrid(msg tea.KeyMsg) tea.Cmd {
	g := m.grid
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.PrevColumn):
		m.focus = max(0, m.focus-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.focus = min(len(m.view.Columns)-1, m.focus+1)
	case key.Matches(msg, m.keys.Sort):
		if c, ok := m.focused(); ok {
			g.ToggleSort(c.ID)
		}
	case key.Matches(msg, m.keys.Filter):
		return m.openFilter()
	case key.Matches(msg, m.keys.ClearFilters):
		g.ClearFilters()
	case key.Matches(msg, m.keys.Columns):
		m.mode, m.cursor = modeColumns, 0
	case key.Matches(msg, m.keys.NextPage):
		if m.view.Pager.HasNext() {
			g.SetPage(m.view.Page + 1)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.view.Pager.HasPrev() {
			g.SetPage(m.view.Page - 1)
		}
	case key.Matches(msg, m.keys.FirstPage):
		g.SetPage(1)
	case key.Matches(msg, m.keys.LastPage):
		if m.view.Pager.TotalPages > 0 {
			g.SetPage(m.view.Pager.TotalPages)
		}
	case key.Matches(msg, m.keys.BiggerPage):
		g.SetPageSize(stepPageSize(m.view.PageSize, 1))
	case key.Matches(msg, m.keys.SmallerPage):
		g.SetPageSize(stepPageSize(m.view.PageSize, -1))
	case key.Matches(msg, m.keys.Reload):
		g.Reload()
	case key.Matches(msg, m.keys.Export):
		m.export()
	default:
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return cmd
	}
	return nil
}

// stepPageSize moves to the neighbouring page size option.
func stepPageSize(current, step int) int {
	opts := pager.PageSizeOptions
	i := slices.Index(opts, current)
	if i < 0 {
		i, _ = slices.BinarySearch(opts, current)
		if step > 0 {
			i--
		}
	}
	return opts[min(max(i+step, 0), len(opts)-1)]
}

func (m *Model[T]) export() {
	if m.downloader == nil {
		m.status = "export is not configured"
		return
	}
	name := csvexport.DefaultFilename(m.now())
	if err := m.grid.ExportCSV(m.downloader, name, grid.ExportAll); err != nil {
		log.Error().Err(err).Msg("export failed")
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = "exported " + name
}

func (m *Model[T]) focused() (column.Def[T], bool) {
	if m.focus < 0 || m.focus >= len(m.view.Columns) {
		return column.Def[T]{}, false
	}
	return m.view.Columns[m.focus], true
}

// sync pulls the grid view into the table.
func (m *Model[T]) sync() {
	m.view = m.grid.View()
	m.focus = min(max(m.focus, 0), max(len(m.view.Columns)-1, 0))

	headers := skintable.Headers(m.view)
	cols := make([]table.Column, 0, len(m.view.Columns))
	for i, c := range m.view.Columns {
		title := headers[i]
		if i == m.focus {
			title = "[" + title + "]"
		}
		cols = append(cols, table.Column{Title: title, Width: columnWidth(c, title)})
	}

	cells := skintable.Cells(m.view)
	rows := make([]table.Row, 0, len(cells))
	for _, r := range cells {
		rows = append(rows, table.Row(r))
	}

	// rows must never be longer or shorter than the columns they are drawn with
	cursor := m.rows.Cursor()
	m.rows.SetRows(nil)
	m.rows.SetColumns(cols)
	m.rows.SetRows(rows)
	if len(rows) > 0 {
		m.rows.SetCursor(min(max(cursor, 0), len(rows)-1))
	}
}

func columnWidth[T any](c column.Def[T], title string) int {
	w := c.IdealWidth
	if w == 0 {
		w = c.DefaultWidth
	}
	if w == 0 {
		w = defaultWidthHint
	}
	return max(w, c.MinWidth, lipgloss.Width(title))
}

func (m *Model[T]) resize() {
	if m.height == 0 {
		return
	}
	// everything but the title, footer, status and help lines; the table fits its own
	// header row inside this height
	m.rows.SetHeight(max(minTableHeight, m.height-8))
}

func (m Model[T]) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.rows.View())
	b.WriteString("\n")

	if len(m.view.Items) == 0 && !m.view.Loading {
		b.WriteString(m.styles.EmptyState(m.view.HasActiveFilters))
		b.WriteString("\n")
	}
	if footer := m.styles.Footer(m.view.Pager, m.label); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}

	switch m.mode {
	case modeTextFilter, modeOptions, modePeople:
		b.WriteString(m.popoverView())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.popKeys))
	case modeColumns:
		b.WriteString(m.chooserView())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.popKeys))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model[T]) header() string {
	title := m.title
	if title == "" {
		title = "OGrid"
	}
	parts := []string{m.styles.Header.Render(title)}
	if m.view.Loading {
		parts = append(parts, m.spinner.View()+m.styles.Loading.Render("loading"))
	}
	if m.view.HasActiveFilters {
		parts = append(parts, m.styles.Summary.Render(fmt.Sprintf("%d filter(s) active", len(m.view.Filters))))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Summary.Render(m.status))
	}
	return strings.Join(parts, "  ")
}
