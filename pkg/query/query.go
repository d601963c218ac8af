package query

import (
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"slices"
	"strings"
)

// Direction is the sort order of the active sort field.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

func (d Direction) sign() int {
	if d == Desc {
		return -1
	}
	return 1
}

// Sort is the single active sort of a grid.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Params are the inputs of one query: the page to return, how to sort and what to filter.
// They are also what a server-side data source receives.
type Params struct {
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Sort     *Sort          `json:"sort,omitempty"`
	Filters  filter.Filters `json:"filters"`
}

// Equal reports whether two parameter sets ask for the same page.
func (p Params) Equal(o Params) bool {
	if p.Page != o.Page || p.PageSize != o.PageSize {
		return false
	}
	if (p.Sort == nil) != (o.Sort == nil) {
		return false
	}
	if p.Sort != nil && *p.Sort != *o.Sort {
		return false
	}
	return p.Filters.Equal(o.Filters)
}

// Result is one page of rows plus the number of rows that matched before paging.
type Result[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Run filters, sorts and pages rows in memory. It never modifies rows and never fails: filters
// on fields no column declares and sorts on unknown columns are ignored.
func Run[T any](rows []T, columns []column.Def[T], p Params) Result[T] {
	filtered := Filter(rows, columns, p.Filters)
	sorted := SortRows(filtered, columns, p.Sort)
	return Result[T]{
		Items:      Paginate(sorted, p.Page, p.PageSize),
		TotalCount: len(sorted),
	}
}

// Filter returns the rows passing every active column filter, in their original order.
func Filter[T any](rows []T, columns []column.Def[T], filters filter.Filters) []T {
	var preds []func(T) bool
	for _, col := range columns {
		if pred := predicate(col, filters[col.FilterField()]); pred != nil {
			preds = append(preds, pred)
		}
	}

	out := make([]T, 0, len(rows))
rows:
	for _, r := range rows {
		for _, pred := range preds {
			if !pred(r) {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}

// predicate builds the row test for one column, nil when the column has no active filter of
// its own type.
func predicate[T any](col column.Def[T], v filter.Value) func(T) bool {
	switch col.FilterType() {
	case column.FilterMultiSelect:
		selected, ok := v.Values()
		if !ok || len(selected) == 0 {
			return nil
		}
		return func(r T) bool {
			return slices.Contains(selected, column.ToString(col.RawValue(r)))
		}
	case column.FilterText:
		text, ok := v.TextValue()
		text = strings.ToLower(strings.TrimSpace(text))
		if !ok || text == "" {
			return nil
		}
		return func(r T) bool {
			return strings.Contains(strings.ToLower(textOf(col.RawValue(r))), text)
		}
	case column.FilterPeople:
		p, ok := v.PersonValue()
		if !ok || p.Email == "" {
			return nil
		}
		email := strings.ToLower(p.Email)
		return func(r T) bool {
			return strings.ToLower(textOf(col.RawValue(r))) == email
		}
	}
	return nil
}

// textOf stringifies a cell for text and people matching, where a missing value is empty.
func textOf(v any) string {
	if column.IsNil(v) {
		return ""
	}
	return column.ToString(v)
}

// SortRows returns a sorted copy of rows. Rows that compare equal keep their relative order.
// A nil sort, an empty field or a field no column declares returns the rows unchanged.
func SortRows[T any](rows []T, columns []column.Def[T], s *Sort) []T {
	out := slices.Clone(rows)
	if s == nil || s.Field == "" {
		return out
	}
	col, ok := column.Find(columns, s.Field)
	if !ok {
		return out
	}

	dir := s.Direction.sign()
	if col.Compare != nil {
		slices.SortStableFunc(out, func(a, b T) int {
			return col.Compare(a, b) * dir
		})
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return Compare(col.RawValue(a), col.RawValue(b)) * dir
	})
	return out
}

// Compare is the default ascending comparator: missing values first, numbers numerically and
// everything else as lower-cased strings.
func Compare(a, b any) int {
	aNil, bNil := column.IsNil(a), column.IsNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}

	an, aNum := column.Number(a)
	bn, bNum := column.Number(b)
	if aNum && bNum {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}

	return strings.Compare(strings.ToLower(column.ToString(a)), strings.ToLower(column.ToString(b)))
}

// Paginate returns the 1-based page of rows. Pages past the end are empty. A page below 1 is
// treated as the first page and a non-positive page size disables paging.
func Paginate[T any](rows []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	// compared by division so huge pages never overflow the offset
	if len(rows) == 0 || page-1 > (len(rows)-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(rows)-start)
	return rows[start:end]
}
