package column

import (
	"strconv"
	"time"
)

// FilterType is the kind of header filter a column offers.
type FilterType string

const (
	FilterNone        FilterType = ""
	FilterText        FilterType = "text"
	FilterMultiSelect FilterType = "multiSelect"
	FilterPeople      FilterType = "people"
)

// OptionsSource tells the grid where a multiSelect column gets its option list from.
type OptionsSource string

const (
	OptionsAuto   OptionsSource = ""
	OptionsAPI    OptionsSource = "api"
	OptionsStatic OptionsSource = "static"
	OptionsYears  OptionsSource = "years"
)

const defaultYearsCount = 5

// FilterDef describes the filter attached to a column.
type FilterDef struct {
	Type FilterType
	// Field is the key the filter value is stored under. Defaults to the column id, so two
	// columns can share one filter by pointing at the same field.
	Field         string
	OptionsSource OptionsSource
	Options       []string
	YearsCount    int
}

// StaticOptions returns the options that are known without looking at data or asking a data
// source. The bool is false when the column relies on derived or fetched options.
func (f *FilterDef) StaticOptions(now time.Time) ([]string, bool) {
	if f == nil {
		return nil, false
	}

	switch f.OptionsSource {
	case OptionsYears:
		n := f.YearsCount
		if n <= 0 {
			n = defaultYearsCount
		}
		years := make([]string, 0, n)
		for i := 0; i < n; i++ {
			years = append(years, strconv.Itoa(now.Year()-i))
		}
		return years, true
	case OptionsStatic:
		return append([]string(nil), f.Options...), true
	case OptionsAuto:
		if f.Options != nil {
			return append([]string(nil), f.Options...), true
		}
	}
	return nil, false
}

// Def is the integrator supplied definition of one grid column over rows of type T.
//
// The zero value of the boolean fields is the common case: columns are sortable and visible
// unless DisableSorting or DefaultHidden say otherwise.
type Def[T any] struct {
	ID             string
	Name           string
	DisableSorting bool
	Filter         *FilterDef
	DefaultHidden  bool
	Required       bool

	// sizing hints, used by the skins only
	MinWidth     int
	DefaultWidth int
	IdealWidth   int

	// Value returns the raw cell value. When nil, the value is looked up by ID on the row.
	Value func(item T) any
	// Compare orders two rows for this column. When nil the default comparator is used.
	Compare func(a, b T) int
	// Render formats the cell for display and export. The core never inspects it beyond that.
	Render func(item T) string
}

// Sortable reports whether the column exposes a sort control.
func (d Def[T]) Sortable() bool {
	return !d.DisableSorting
}

// FilterType returns the column's filter type, FilterNone when it has no filter.
func (d Def[T]) FilterType() FilterType {
	if d.Filter == nil {
		return FilterNone
	}
	return d.Filter.Type
}

// FilterField returns the key the column's filter value lives under.
func (d Def[T]) FilterField() string {
	if d.Filter != nil && d.Filter.Field != "" {
		return d.Filter.Field
	}
	return d.ID
}

// RawValue returns the unformatted value of the column for item.
func (d Def[T]) RawValue(item T) any {
	if d.Value != nil {
		return d.Value(item)
	}
	return Lookup(item, d.ID)
}

// Text returns the display text of the cell: Render when set, otherwise the raw value as a
// string with missing values rendered empty.
func (d Def[T]) Text(item T) string {
	if d.Render != nil {
		return d.Render(item)
	}
	v := d.RawValue(item)
	if IsNil(v) {
		return ""
	}
	return ToString(v)
}

// Find returns the column with the given id.
func Find[T any](columns []Def[T], id string) (Def[T], bool) {
	for _, c := range columns {
		if c.ID == id {
			return c, true
		}
	}
	return Def[T]{}, false
}

// Info is the minimal column description the column chooser needs.
type Info struct {
	ID       string
	Name     string
	Required bool
}

// Infos projects column definitions to chooser entries, preserving order.
func Infos[T any](columns []Def[T]) []Info {
	out := make([]Info, 0, len(columns))
	for _, c := range columns {
		out = append(out, Info{ID: c.ID, Name: c.Name, Required: c.Required})
	}
	return out
}
