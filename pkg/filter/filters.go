package filter

import (
	"maps"
)

// Filters maps a filter field to its active value. Fields without a filter are absent; the map
// never holds a zero Value when it is built through Merge.
type Filters map[string]Value

// Clone returns a shallow copy of f. A nil map clones to an empty one.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	maps.Copy(out, f)
	return out
}

// Equal reports whether both maps hold the same active filters.
func (f Filters) Equal(o Filters) bool {
	if len(f.active()) != len(o.active()) {
		return false
	}
	for k, v := range f {
		if v.IsZero() {
			continue
		}
		if !v.Equal(o[k]) {
			return false
		}
	}
	return true
}

// Normalize returns a copy of f with every value normalized and empty values removed.
func (f Filters) Normalize() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if v = v.normalize(); !v.IsZero() {
			out[k] = v
		}
	}
	return out
}

func (f Filters) active() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if !v.IsZero() {
			out[k] = v
		}
	}
	return out
}

// Merge returns a copy of prev with field set to v. A value that normalizes to "no filter"
// deletes the field instead of storing an empty entry.
func Merge(prev Filters, field string, v Value) Filters {
	next := prev.Clone()
	v = v.normalize()
	if v.IsZero() {
		delete(next, field)
		return next
	}
	next[field] = v
	return next
}

// HasActive reports whether any field carries a filter.
func HasActive(f Filters) bool {
	for _, v := range f {
		if !v.normalize().IsZero() {
			return true
		}
	}
	return false
}

// Split is a Filters map bucketed by kind, the shape the header filter widgets consume.
type Split struct {
	MultiSelect map[string][]string
	Text        map[string]string
	People      map[string]Person
}

// SplitFilters buckets every active filter into exactly one of the three typed maps. Zero
// values are dropped.
func SplitFilters(f Filters) Split {
	out := Split{
		MultiSelect: map[string][]string{},
		Text:        map[string]string{},
		People:      map[string]Person{},
	}
	for field, v := range f {
		switch v.kind {
		case KindMultiSelect:
			out.MultiSelect[field] = append([]string(nil), v.values...)
		case KindText:
			out.Text[field] = v.text
		case KindPerson:
			out.People[field] = v.person
		}
	}
	return out
}
