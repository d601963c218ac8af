package column

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type project struct {
	ID     string  `json:"id"`
	Name   string  `grid:"title"`
	Budget float64 `json:"budget"`
	Owner  *string
	hidden string
}

type valuerRow map[string]int

func (v valuerRow) FieldValue(key string) any {
	if n, ok := v[key]; ok {
		return n
	}
	return nil
}

func TestLookup(t *testing.T) {
	t.Parallel()
	owner := "ann@example.com"
	p := project{ID: "p1", Name: "Apollo", Budget: 12.5, Owner: &owner, hidden: "x"}

	tests := map[string]struct {
		item any
		key  string
		want any
	}{
		"map any":             {item: map[string]any{"k": 1}, key: "k", want: 1},
		"map any missing":     {item: map[string]any{"k": 1}, key: "x", want: nil},
		"map string":          {item: map[string]string{"k": "v"}, key: "k", want: "v"},
		"map string missing":  {item: map[string]string{"k": "v"}, key: "x", want: nil},
		"valuer":              {item: valuerRow{"a": 3}, key: "a", want: 3},
		"struct json tag":     {item: p, key: "budget", want: 12.5},
		"struct grid tag":     {item: p, key: "title", want: "Apollo"},
		"struct field name":   {item: p, key: "owner", want: &owner},
		"pointer to struct":   {item: &p, key: "id", want: "p1"},
		"unexported ignored":  {item: p, key: "hidden", want: nil},
		"unknown field":       {item: p, key: "nope", want: nil},
		"nil item":            {item: nil, key: "k", want: nil},
		"nil pointer":         {item: (*project)(nil), key: "id", want: nil},
		"non string map keys": {item: map[int]string{1: "a"}, key: "1", want: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, Lookup(tc.item, tc.key))
		})
	}
}

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestToString(t *testing.T) {
	t.Parallel()
	s := "ptr"
	var nilPtr *string
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		in   any
		want string
	}{
		"nil":         {in: nil, want: Undefined},
		"nil pointer": {in: nilPtr, want: Undefined},
		"string":      {in: "abc", want: "abc"},
		"pointer":     {in: &s, want: "ptr"},
		"int":         {in: 42, want: "42"},
		"int64 big":   {in: int64(9007199254740993), want: "9007199254740993"},
		"uint":        {in: uint8(7), want: "7"},
		"float":       {in: 2.5, want: "2.5"},
		"float whole": {in: 200.0, want: "200"},
		"bool":        {in: true, want: "true"},
		"bytes":       {in: []byte("raw"), want: "raw"},
		"time":        {in: ts, want: "2024-03-01T10:00:00Z"},
		"stringer":    {in: stringer{}, want: "custom"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, ToString(tc.in))
		})
	}
}

func TestNumber(t *testing.T) {
	req := require.New(t)

	n, ok := Number(3)
	req.True(ok)
	req.Equal(3.0, n)

	n, ok = Number(float32(1.5))
	req.True(ok)
	req.Equal(1.5, n)

	_, ok = Number("3")
	req.False(ok)

	_, ok = Number(nil)
	req.False(ok)
}

func TestDef(t *testing.T) {
	req := require.New(t)

	plain := Def[map[string]any]{ID: "status", Name: "Status"}
	req.True(plain.Sortable())
	req.Equal(FilterNone, plain.FilterType())
	req.Equal("status", plain.FilterField())
	req.Equal("Active", plain.RawValue(map[string]any{"status": "Active"}))
	req.Equal("", plain.Text(map[string]any{}))

	shared := Def[map[string]any]{
		ID:             "state",
		DisableSorting: true,
		Filter:         &FilterDef{Type: FilterMultiSelect, Field: "status"},
		Value:          func(m map[string]any) any { return m["raw"] },
		Render:         func(m map[string]any) string { return "rendered" },
	}
	req.False(shared.Sortable())
	req.Equal(FilterMultiSelect, shared.FilterType())
	req.Equal("status", shared.FilterField())
	req.Equal(1, shared.RawValue(map[string]any{"raw": 1, "state": 2}))
	req.Equal("rendered", shared.Text(map[string]any{}))

	cols := []Def[map[string]any]{plain, shared}
	found, ok := Find(cols, "state")
	req.True(ok)
	req.Equal("state", found.ID)
	_, ok = Find(cols, "missing")
	req.False(ok)

	req.Equal([]Info{
		{ID: "status", Name: "Status"},
		{ID: "state"},
	}, Infos(cols))
}

func TestFilterDef_StaticOptions(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		def    *FilterDef
		want   []string
		wantOK bool
	}{
		"nil def":             {def: nil},
		"api":                 {def: &FilterDef{Type: FilterMultiSelect, OptionsSource: OptionsAPI, Options: []string{"a"}}},
		"auto without values": {def: &FilterDef{Type: FilterMultiSelect}},
		"auto with values": {
			def:    &FilterDef{Type: FilterMultiSelect, Options: []string{"b", "a"}},
			want:   []string{"b", "a"},
			wantOK: true,
		},
		"static": {
			def:    &FilterDef{Type: FilterMultiSelect, OptionsSource: OptionsStatic},
			want:   nil,
			wantOK: true,
		},
		"years default count": {
			def:    &FilterDef{Type: FilterMultiSelect, OptionsSource: OptionsYears},
			want:   []string{"2025", "2024", "2023", "2022", "2021"},
			wantOK: true,
		},
		"years custom count": {
			def:    &FilterDef{Type: FilterMultiSelect, OptionsSource: OptionsYears, YearsCount: 2},
			want:   []string{"2025", "2024"},
			wantOK: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := tc.def.StaticOptions(now)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.want, got)
		})
	}
}
