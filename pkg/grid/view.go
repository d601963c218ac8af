package grid

import (
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/pager"
	"github.com/alaarab/ogrid-go/pkg/query"
)

// View is everything a skin needs to draw the grid once.
type View[T any] struct {
	Items      []T
	TotalCount int
	Loading    bool

	Page     int
	PageSize int
	Sort     query.Sort
	Filters  filter.Filters

	// Columns are the visible column definitions in order.
	Columns          []column.Def[T]
	HasActiveFilters bool
	Pager            pager.Layout
}

// View computes the current page. In client mode the rows are filtered, sorted and paged on
// every call; in server mode it is the latest response of the data source.
func (g *Grid[T]) View() View[T] {
	params := g.Params()

	var res query.Result[T]
	var loading bool
	if g.source == nil {
		res = query.Run(g.data, g.columns, params)
	} else {
		g.mu.Lock()
		res = query.Result[T]{
			Items:      append([]T{}, g.result.Items...),
			TotalCount: g.result.TotalCount,
		}
		loading = g.loading
		g.mu.Unlock()
	}

	v := View[T]{
		Items:            res.Items,
		TotalCount:       res.TotalCount,
		Loading:          loading,
		Page:             params.Page,
		PageSize:         params.PageSize,
		Filters:          params.Filters,
		Columns:          g.VisibleColumnDefs(),
		HasActiveFilters: filter.HasActive(params.Filters),
		Pager:            pager.New(params.Page, params.PageSize, res.TotalCount),
	}
	if params.Sort != nil {
		v.Sort = *params.Sort
	}
	return v
}

// Rows returns every row passing the current filters in sort order, without paging. Server
// mode only knows the current page.
func (g *Grid[T]) Rows() []T {
	if g.source != nil {
		return g.View().Items
	}
	params := g.Params()
	return query.SortRows(query.Filter(g.data, g.columns, params.Filters), g.columns, params.Sort)
}
