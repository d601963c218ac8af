package grid

import (
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/options"
)

// FilterOptions returns the option list of every multi-select filter field. Options declared on
// the column win; otherwise a data source that can list options is asked, and rows held by the
// grid are the fallback.
func (g *Grid[T]) FilterOptions() map[string][]string {
	var loaded map[string][]string
	if g.loader != nil {
		loaded = g.loader.Snapshot().FilterOptions
	}
	derived := options.DeriveFromData(g.data, g.columns)

	now := g.now()
	out := map[string][]string{}
	for _, c := range g.columns {
		if c.FilterType() != column.FilterMultiSelect {
			continue
		}
		field := c.FilterField()
		if _, done := out[field]; done {
			continue
		}
		if static, ok := c.Filter.StaticOptions(now); ok {
			out[field] = static
			continue
		}
		if g.loader != nil {
			if opts, ok := loaded[field]; ok {
				out[field] = opts
			} else {
				out[field] = []string{}
			}
			continue
		}
		out[field] = derived[field]
	}
	return out
}

// LoadingOptions lists the fields whose options are being fetched. It is only ever populated
// for data sources that can list options.
func (g *Grid[T]) LoadingOptions() map[string]bool {
	if g.loader == nil {
		return map[string]bool{}
	}
	return g.loader.Snapshot().LoadingOptions
}

// SearchOptions filters the options of field by text, for the multi-select popover.
func (g *Grid[T]) SearchOptions(field, text string) []string {
	return options.Search(g.FilterOptions()[field], text)
}
