package tui

import (
	"errors"
	"github.com/alaarab/ogrid-go/internal/demo"
	"github.com/alaarab/ogrid-go/pkg/csvexport"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/grid"
	"github.com/alaarab/ogrid-go/pkg/query"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEscape}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	space    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	ctrlA    = tea.KeyMsg{Type: tea.KeyCtrlA}
	ctrlX    = tea.KeyMsg{Type: tea.KeyCtrlX}
	projects = demo.MakeProjects(12, 1)
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, d csvexport.Downloader) (Model[demo.Project], *grid.Grid[demo.Project]) {
	t.Helper()
	g, err := grid.New(&grid.Config[demo.Project]{
		Columns:         demo.Columns(),
		Data:            projects,
		DefaultPageSize: 5,
	})
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return New(&Config[demo.Project]{Grid: g, Downloader: d, Label: "projects"}), g
}

func press(t *testing.T, m Model[demo.Project], msgs ...tea.Msg) Model[demo.Project] {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model[demo.Project])
		require.True(t, ok)
	}
	return m
}

func TestModel_view(t *testing.T) {
	req := require.New(t)
	m, _ := newModel(t, nil)

	out := m.View()
	req.Contains(out, "[Project Name ▲]")
	req.Contains(out, "Project A")
	req.Contains(out, "Showing 1 to 5 of 12 projects")
	req.Contains(out, "sort")
	req.NotContains(out, "Owner Email")
}

func TestModel_sortAndFocus(t *testing.T) {
	req := require.New(t)
	m, g := newModel(t, nil)

	m = press(t, m, runes("s"))
	req.Equal(query.Sort{Field: "name", Direction: query.Desc}, g.Sort())

	m = press(t, m, runes("l"), runes("l"), runes("s"))
	req.Equal(query.Sort{Field: "owner", Direction: query.Asc}, g.Sort())
	req.Contains(m.View(), "[Owner ▲]")

	// focus stops at the edges
	m = press(t, m, runes("h"), runes("h"), runes("h"), runes("h"))
	req.Zero(m.focus)
}

func TestModel_paging(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		keys     []tea.Msg
		page     int
		pageSize int
	}{
		"next":              {keys: []tea.Msg{runes("n")}, page: 2, pageSize: 5},
		"next past the end": {keys: []tea.Msg{runes("n"), runes("n"), runes("n"), runes("n")}, page: 3, pageSize: 5},
		"prev on first":     {keys: []tea.Msg{runes("p")}, page: 1, pageSize: 5},
		"last":              {keys: []tea.Msg{runes("G")}, page: 3, pageSize: 5},
		"last then first":   {keys: []tea.Msg{runes("G"), runes("g")}, page: 1, pageSize: 5},
		"bigger pages":      {keys: []tea.Msg{runes("n"), runes("+")}, page: 1, pageSize: 10},
		"bigger twice":      {keys: []tea.Msg{runes("+"), runes("+")}, page: 1, pageSize: 20},
		"smaller":           {keys: []tea.Msg{runes("+"), runes("+"), runes("-")}, page: 1, pageSize: 10},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, g := newModel(t, nil)
			press(t, m, tc.keys...)
			require.Equal(t, tc.page, g.Page())
			require.Equal(t, tc.pageSize, g.PageSize())
		})
	}
}

func TestStepPageSize(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		current, step, want int
	}{
		"up":             {current: 20, step: 1, want: 50},
		"down":           {current: 20, step: -1, want: 10},
		"top":            {current: 100, step: 1, want: 100},
		"bottom":         {current: 10, step: -1, want: 10},
		"between up":     {current: 30, step: 1, want: 50},
		"between down":   {current: 30, step: -1, want: 20},
		"below all up":   {current: 5, step: 1, want: 10},
		"above all down": {current: 500, step: -1, want: 100},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, stepPageSize(tc.current, tc.step))
		})
	}
}

func TestModel_textFilter(t *testing.T) {
	req := require.New(t)
	m, g := newModel(t, nil)

	m = press(t, m, runes("f"))
	req.Equal(modeTextFilter, m.mode)
	m = press(t, m, runes("project b"), enter)

	req.Equal(modeGrid, m.mode)
	req.Equal(filter.Filters{"name": filter.Text("project b")}, g.Filters())
	req.Contains(m.View(), "1 filter(s) active")
	req.Contains(m.View(), "Project Name ▲ •")

	// reopening shows the current text, esc keeps it
	m = press(t, m, runes("f"))
	req.Equal("project b", m.input.Value())
	m = press(t, m, esc)
	req.Len(g.Filters(), 1)

	m = press(t, m, runes("x"))
	req.Empty(g.Filters())
	req.False(m.view.HasActiveFilters)
}

func TestModel_optionsFilter(t *testing.T) {
	req := require.New(t)
	m, g := newModel(t, nil)

	m = press(t, m, runes("l"), runes("f"))
	req.Equal(modeOptions, m.mode)
	req.Contains(m.View(), "[ ] Active")

	m = press(t, m, down, space, enter)
	req.Equal(filter.Filters{"status": filter.MultiSelect("Cancelled")}, g.Filters())

	m = press(t, m, runes("f"))
	req.True(m.selected["Cancelled"])
	m = press(t, m, ctrlX, runes("o"))
	req.Equal([]string{"Completed", "On Hold"}, g.SearchOptions("status", m.input.Value()))
	m = press(t, m, ctrlA, enter)
	req.Equal(filter.Filters{"status": filter.MultiSelect("Completed", "On Hold")}, g.Filters())
	req.Equal(modeGrid, m.mode)
}

func TestModel_noFilter(t *testing.T) {
	m, _ := newModel(t, nil)
	// budget has no filter
	m = press(t, m, runes("l"), runes("l"), runes("l"), runes("l"), runes("f"))
	require.Equal(t, modeGrid, m.mode)
	require.Equal(t, "column has no filter", m.status)
}

func TestModel_columnChooser(t *testing.T) {
	req := require.New(t)
	m, g := newModel(t, nil)

	m = press(t, m, runes("c"))
	req.Equal(modeColumns, m.mode)
	req.Contains(m.View(), "Columns (6 of 8)")

	m = press(t, m, space)
	req.Equal("Project Name is required", m.status)
	req.True(g.IsColumnVisible("name"))

	m = press(t, m, down, space)
	req.False(g.IsColumnVisible("status"))

	m = press(t, m, ctrlA)
	req.Len(g.VisibleColumns(), 8)

	m = press(t, m, ctrlX, esc)
	req.Equal([]string{"name"}, g.VisibleColumns())
	req.Equal(modeGrid, m.mode)
	req.Len(m.rows.Columns(), 1)
}

func TestModel_peopleFilterWithoutDirectory(t *testing.T) {
	req := require.New(t)
	m, g := newModel(t, nil)

	g.SelectAllColumns()
	m = press(t, m, runes("l"), runes("l"), runes("l"), runes("f"))
	req.Equal(modePeople, m.mode)
	req.Contains(m.View(), "No directory")

	m = press(t, m, runes("nobody"), enter)
	req.Equal("pick a person or type an email", m.status)
	req.Equal(modePeople, m.mode)

	m = press(t, m, ctrlX)
	m = press(t, m, runes("f"), runes("carol.lee@example.com"), enter)
	req.Equal(modeGrid, m.mode)

	v, ok := g.Filters()["ownerEmail"].PersonValue()
	req.True(ok)
	req.Equal("carol.lee@example.com", v.Email)
	for _, p := range g.View().Items {
		req.Equal("Carol Lee", p.Owner)
	}
}

func TestModel_export(t *testing.T) {
	req := require.New(t)

	var got csvexport.Blob
	m, _ := newModel(t, csvexport.DownloaderFunc(func(b csvexport.Blob) error {
		got = b
		return nil
	}))
	m.now = func() time.Time { return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) }

	m = press(t, m, runes("e"))
	req.Equal("exported export_2026-05-04.csv", m.status)
	req.Len(strings.Split(string(got.Data), "\n"), 13, "header plus every row, not just the page")

	m, _ = newModel(t, csvexport.DownloaderFunc(func(csvexport.Blob) error { return errors.New("disk full") }))
	m = press(t, m, runes("e"))
	req.Equal("export failed: failed to export 12 rows: disk full", m.status)

	m, _ = newModel(t, nil)
	m = press(t, m, runes("e"))
	req.Equal("export is not configured", m.status)
}

func TestModel_quit(t *testing.T) {
	m, _ := newModel(t, nil)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.Empty(t, next.View())
}

func TestModel_resize(t *testing.T) {
	m, _ := newModel(t, nil)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Equal(t, 22, lipgloss.Height(m.rows.View()), "header row and body together")
	require.Less(t, m.rows.Height(), 22)
	require.LessOrEqual(t, lipgloss.Height(m.View()), 30)
}

func TestUpdates(t *testing.T) {
	req := require.New(t)
	u := NewUpdates()
	u.Notify()
	u.Notify()

	req.Equal(updatedMsg{}, u.wait())
	req.Empty(u.ch)

	m, g := newModel(t, nil)
	m.updates = u
	g.SetPage(2)
	next, cmd := m.Update(updatedMsg{})
	req.NotNil(cmd)
	req.Equal(2, next.(Model[demo.Project]).view.Page)
}
