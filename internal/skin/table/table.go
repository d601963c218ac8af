// Package table draws a grid view as static text with lipgloss. The interactive skin reuses
// its header, pager and empty-state pieces.
package table

import (
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/grid"
	"github.com/alaarab/ogrid-go/pkg/pager"
	"github.com/alaarab/ogrid-go/pkg/query"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"strconv"
	"strings"
)

var (
	ColorAccent = lipgloss.Color("62")
	ColorText   = lipgloss.Color("252")
	ColorDim    = lipgloss.Color("242")
	ColorBorder = lipgloss.Color("238")
	ColorWarn   = lipgloss.Color("214")
)

const (
	sortAsc    = "▲"
	sortDesc   = "▼"
	filterMark = "•"
	ellipsis   = "…"
)

// Styles holds the lipgloss styles of the grid skins.
type Styles struct {
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Border     lipgloss.Style
	Summary    lipgloss.Style
	Page       lipgloss.Style
	ActivePage lipgloss.Style
	Disabled   lipgloss.Style
	Empty      lipgloss.Style
	Loading    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1),
		Cell:       lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1),
		Border:     lipgloss.NewStyle().Foreground(ColorBorder),
		Summary:    lipgloss.NewStyle().Foreground(ColorDim),
		Page:       lipgloss.NewStyle().Foreground(ColorText),
		ActivePage: lipgloss.NewStyle().Bold(true).Reverse(true),
		Disabled:   lipgloss.NewStyle().Foreground(ColorDim),
		Empty:      lipgloss.NewStyle().Foreground(ColorWarn).Italic(true),
		Loading:    lipgloss.NewStyle().Foreground(ColorAccent),
	}
}

// HeaderLabel is the column title with its sort arrow and a mark when a filter is active.
func HeaderLabel[T any](c column.Def[T], s query.Sort, active bool) string {
	label := c.Name
	if label == "" {
		label = c.ID
	}
	if s.Field == c.ID {
		if s.Direction == query.Desc {
			label += " " + sortDesc
		} else {
			label += " " + sortAsc
		}
	}
	if active {
		label += " " + filterMark
	}
	return label
}

// Headers returns the header labels of the visible columns.
func Headers[T any](v grid.View[T]) []string {
	out := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		_, active := v.Filters[c.FilterField()]
		out = append(out, HeaderLabel(c, v.Sort, c.Filter != nil && active))
	}
	return out
}

// Cells returns the display text of every visible cell on the page.
func Cells[T any](v grid.View[T]) [][]string {
	rows := make([][]string, 0, len(v.Items))
	for _, item := range v.Items {
		row := make([]string, 0, len(v.Columns))
		for _, c := range v.Columns {
			row = append(row, c.Text(item))
		}
		rows = append(rows, row)
	}
	return rows
}

// PageButtons renders the numbered buttons, e.g. "‹ 1 … 4 [5] 6 … 20 ›".
func (s Styles) PageButtons(l pager.Layout) string {
	if !l.Visible() {
		return ""
	}
	parts := []string{s.arrow("‹", l.HasPrev())}
	if l.StartEllipsis {
		parts = append(parts, s.Page.Render("1"), s.Disabled.Render(ellipsis))
	}
	for _, p := range l.Pages {
		if p == l.Page {
			parts = append(parts, s.ActivePage.Render("["+strconv.Itoa(p)+"]"))
			continue
		}
		parts = append(parts, s.Page.Render(strconv.Itoa(p)))
	}
	if l.EndEllipsis {
		parts = append(parts, s.Disabled.Render(ellipsis), s.Page.Render(strconv.Itoa(l.TotalPages)))
	}
	parts = append(parts, s.arrow("›", l.HasNext()))
	return strings.Join(parts, " ")
}

func (s Styles) arrow(a string, enabled bool) string {
	if enabled {
		return s.Page.Render(a)
	}
	return s.Disabled.Render(a)
}

// Footer is the summary and page buttons line, empty when there is nothing to page.
func (s Styles) Footer(l pager.Layout, label string) string {
	if !l.Visible() {
		return ""
	}
	return s.Summary.Render(l.Summary(label)) + "  " + s.PageButtons(l) + "  " +
		s.Summary.Render(fmt.Sprintf("%d / page", l.PageSize))
}

// EmptyState is shown instead of rows when the page is empty.
func (s Styles) EmptyState(hasActiveFilters bool) string {
	if hasActiveFilters {
		return s.Empty.Render("No results match the current filters. Clear all filters to see every row.")
	}
	return s.Empty.Render("There is no data to display.")
}

// Table builds the lipgloss table for one page.
func (s Styles) Table(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
}

// Render draws one page with its footer in the default styles. label names the rows in the
// summary, "items" when empty.
func Render[T any](v grid.View[T], label string) string {
	return RenderWith(DefaultStyles(), v, label)
}

func RenderWith[T any](s Styles, v grid.View[T], label string) string {
	var b strings.Builder
	b.WriteString(s.Table(Headers(v), Cells(v)).Render())
	b.WriteString("\n")

	switch {
	case v.Loading:
		b.WriteString(s.Loading.Render("Loading..."))
		b.WriteString("\n")
	case len(v.Items) == 0:
		b.WriteString(s.EmptyState(v.HasActiveFilters))
		b.WriteString("\n")
	}

	if footer := s.Footer(v.Pager, label); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}
	return b.String()
}
