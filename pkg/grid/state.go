package grid

import (
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/query"
	"slices"
)

// Page returns the current 1-based page.
func (g *Grid[T]) Page() int {
	if p := g.page.get(); p >= 1 {
		return p
	}
	return 1
}

// PageSize returns the current page size.
func (g *Grid[T]) PageSize() int {
	return g.pageSize.get()
}

// Sort returns the active sort.
func (g *Grid[T]) Sort() query.Sort {
	return g.sort.get()
}

// Filters returns a copy of the active filters.
func (g *Grid[T]) Filters() filter.Filters {
	return g.filters.get().Clone()
}

// HasActiveFilters reports whether any filter narrows the rows, for the empty state.
func (g *Grid[T]) HasActiveFilters() bool {
	return filter.HasActive(g.filters.get())
}

// Params are the query inputs of the current state.
func (g *Grid[T]) Params() query.Params {
	p := query.Params{
		Page:     g.Page(),
		PageSize: g.PageSize(),
		Filters:  g.Filters(),
	}
	if s := g.Sort(); s.Field != "" {
		if s.Direction == "" {
			s.Direction = query.Asc
		}
		p.Sort = &s
	}
	return p
}

// SetPage moves to page p. Pages below 1 are clamped.
func (g *Grid[T]) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	g.page.set(p)
	g.changed()
}

// SetPageSize changes the page size and returns to the first page.
func (g *Grid[T]) SetPageSize(n int) {
	g.pageSize.set(n)
	g.page.set(1)
	g.changed()
}

// SetSort replaces the active sort and returns to the first page.
func (g *Grid[T]) SetSort(s query.Sort) {
	if s.Field != "" && s.Direction == "" {
		s.Direction = query.Asc
	}
	g.sort.set(s)
	g.page.set(1)
	g.changed()
}

// ToggleSort is what clicking a column's sort control does: the sorted column flips direction,
// any other sortable column becomes the sort ascending. Unknown and unsortable columns are
// ignored.
func (g *Grid[T]) ToggleSort(columnID string) {
	c, ok := column.Find(g.columns, columnID)
	if !ok || !c.Sortable() {
		g.logger.Debug().Msgf("ignoring sort toggle on column %q", columnID)
		return
	}

	current := g.Sort()
	next := query.Sort{Field: columnID, Direction: query.Asc}
	if current.Field == columnID {
		next.Direction = current.Direction.Toggle()
	}
	g.SetSort(next)
}

// SetFilters replaces every filter and returns to the first page.
func (g *Grid[T]) SetFilters(f filter.Filters) {
	g.filters.set(f.Normalize())
	g.page.set(1)
	g.changed()
}

// SetFilter merges one filter field. An absent value removes the field.
func (g *Grid[T]) SetFilter(field string, v filter.Value) {
	g.SetFilters(filter.Merge(g.filters.get(), field, v))
}

func (g *Grid[T]) SetTextFilter(field, text string) {
	g.SetFilter(field, filter.Text(text))
}

func (g *Grid[T]) SetMultiSelectFilter(field string, values []string) {
	g.SetFilter(field, filter.MultiSelect(values...))
}

// SetPeopleFilter selects a person; nil clears the field.
func (g *Grid[T]) SetPeopleFilter(field string, p *filter.Person) {
	var v filter.Value
	if p != nil {
		v = filter.PersonFilter(*p)
	}
	g.SetFilter(field, v)
}

// ClearFilters removes every filter.
func (g *Grid[T]) ClearFilters() {
	g.SetFilters(filter.Filters{})
}

// VisibleColumns returns the ids of the visible columns in column order.
func (g *Grid[T]) VisibleColumns() []string {
	visible := g.visible.get()
	ids := make([]string, 0, len(visible))
	for _, c := range g.columns {
		if slices.Contains(visible, c.ID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// IsColumnVisible reports whether the column is shown.
func (g *Grid[T]) IsColumnVisible(columnID string) bool {
	return slices.Contains(g.visible.get(), columnID)
}

// SetColumnVisible shows or hides one column. Required columns cannot be hidden and unknown
// ids are ignored.
func (g *Grid[T]) SetColumnVisible(columnID string, visible bool) {
	c, ok := column.Find(g.columns, columnID)
	if !ok || (c.Required && !visible) {
		return
	}

	current := g.VisibleColumns()
	if slices.Contains(current, columnID) == visible {
		return
	}
	next := make([]string, 0, len(g.columns))
	for _, col := range g.columns {
		shown := slices.Contains(current, col.ID)
		if col.ID == columnID {
			shown = visible
		}
		if shown {
			next = append(next, col.ID)
		}
	}
	g.setVisible(next)
}

// ToggleColumnVisibility flips one column.
func (g *Grid[T]) ToggleColumnVisibility(columnID string) {
	g.SetColumnVisible(columnID, !g.IsColumnVisible(columnID))
}

// SelectAllColumns shows every hidden column.
func (g *Grid[T]) SelectAllColumns() {
	ids := make([]string, 0, len(g.columns))
	for _, c := range g.columns {
		ids = append(ids, c.ID)
	}
	g.setVisible(ids)
}

// ClearAllColumns hides every visible column that is not required.
func (g *Grid[T]) ClearAllColumns() {
	current := g.VisibleColumns()
	var ids []string
	for _, c := range g.columns {
		if c.Required && slices.Contains(current, c.ID) {
			ids = append(ids, c.ID)
		}
	}
	g.setVisible(ids)
}

// VisibleColumnDefs returns the definitions of the visible columns in order.
func (g *Grid[T]) VisibleColumnDefs() []column.Def[T] {
	visible := g.visible.get()
	defs := make([]column.Def[T], 0, len(visible))
	for _, c := range g.columns {
		if slices.Contains(visible, c.ID) {
			defs = append(defs, c)
		}
	}
	return defs
}

// visibility never affects the rows, so it never fetches
func (g *Grid[T]) setVisible(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	g.visible.set(ids)
	g.notify()
}

// changed runs after every transition touching page, page size, sort or filters.
func (g *Grid[T]) changed() {
	if g.source != nil {
		g.fetch()
		return
	}
	g.notify()
}
