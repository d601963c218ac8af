// Package options derives, fetches and searches the option lists of multi-select filters.
package options

import (
	"github.com/alaarab/ogrid-go/pkg/column"
	"slices"
	"strings"
)

// MultiSelectFields returns the filter fields of every multi-select column, without duplicates,
// in column order.
func MultiSelectFields[T any](columns []column.Def[T]) []string {
	var fields []string
	for _, c := range columns {
		if c.FilterType() != column.FilterMultiSelect {
			continue
		}
		if f := c.FilterField(); !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// FetchFields is MultiSelectFields restricted to columns whose options come from the data
// source rather than from the column definition.
func FetchFields[T any](columns []column.Def[T]) []string {
	var fields []string
	for _, c := range columns {
		if c.FilterType() != column.FilterMultiSelect {
			continue
		}
		switch c.Filter.OptionsSource {
		case column.OptionsStatic, column.OptionsYears:
			continue
		case column.OptionsAuto:
			if c.Filter.Options != nil {
				continue
			}
		}
		if f := c.FilterField(); !slices.Contains(fields, f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// DeriveFromData lists the distinct non-empty values of every multi-select column, sorted.
// Columns sharing a filter field contribute to the same list.
func DeriveFromData[T any](rows []T, columns []column.Def[T]) map[string][]string {
	sets := map[string]map[string]struct{}{}
	for _, c := range columns {
		if c.FilterType() != column.FilterMultiSelect {
			continue
		}
		field := c.FilterField()
		set, ok := sets[field]
		if !ok {
			set = map[string]struct{}{}
			sets[field] = set
		}
		for _, row := range rows {
			v := c.RawValue(row)
			if column.IsNil(v) {
				continue
			}
			if s := column.ToString(v); s != "" {
				set[s] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(sets))
	for field, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		slices.Sort(values)
		out[field] = values
	}
	return out
}

// Search returns the options containing text, case-insensitively, in their original order.
// Blank text matches everything.
func Search(options []string, text string) []string {
	needle := strings.ToLower(strings.TrimSpace(text))
	out := make([]string, 0, len(options))
	for _, o := range options {
		if needle == "" || strings.Contains(strings.ToLower(o), needle) {
			out = append(out, o)
		}
	}
	return out
}
