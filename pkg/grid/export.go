package grid

import (
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/csvexport"
)

// ExportScope selects which rows ExportCSV writes.
type ExportScope int

const (
	// ExportPage writes the rows of the current page.
	ExportPage ExportScope = iota
	// ExportAll writes every row passing the filters. Server mode only has the current page.
	ExportAll
)

// ExportCSV writes the visible columns of the selected rows as CSV and hands the file to d.
// Cells use the column's Render function when it has one.
func (g *Grid[T]) ExportCSV(d csvexport.Downloader, filename string, scope ExportScope) error {
	var items []T
	switch scope {
	case ExportAll:
		items = g.Rows()
	default:
		items = g.View().Items
	}

	defs := g.VisibleColumnDefs()
	byID := make(map[string]column.Def[T], len(defs))
	for _, c := range defs {
		byID[c.ID] = c
	}
	value := func(item T, columnID string) any {
		c := byID[columnID]
		if c.Render != nil {
			return c.Render(item)
		}
		return c.RawValue(item)
	}

	if err := csvexport.Export(items, csvexport.Columns(defs), value, filename, d); err != nil {
		return fmt.Errorf("failed to export %d rows: %w", len(items), err)
	}
	g.logger.Info().Int("rows", len(items)).Int("columns", len(defs)).Msg("exported CSV")
	return nil
}
