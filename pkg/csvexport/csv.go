package csvexport

import (
	"github.com/alaarab/ogrid-go/pkg/column"
	"strings"
	"time"
)

// MIMEType is the content type of exported files.
const MIMEType = "text/csv;charset=utf-8"

// Column is the part of a column definition the codec needs.
type Column struct {
	ID   string
	Name string
}

// ValueFunc returns the cell value of item for a column id.
type ValueFunc[T any] func(item T, columnID string) any

// EscapeValue renders one CSV field. nil becomes empty. Values containing a comma, a double
// quote or a newline are wrapped in double quotes with inner quotes doubled; nothing else is
// quoted.
func EscapeValue(v any) string {
	if column.IsNil(v) {
		return ""
	}
	s := column.ToString(v)
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// BuildHeader joins the escaped column names in order.
func BuildHeader(columns []Column) string {
	fields := make([]string, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, EscapeValue(c.Name))
	}
	return strings.Join(fields, ",")
}

// BuildRows renders one line per item, in item order.
func BuildRows[T any](items []T, columns []Column, getValue ValueFunc[T]) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		fields := make([]string, 0, len(columns))
		for _, c := range columns {
			fields = append(fields, EscapeValue(getValue(item, c.ID)))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return lines
}

// Build renders the whole document: the header line followed by one line per item, separated
// by newlines, without a trailing newline.
func Build[T any](items []T, columns []Column, getValue ValueFunc[T]) string {
	lines := append([]string{BuildHeader(columns)}, BuildRows(items, columns, getValue)...)
	return strings.Join(lines, "\n")
}

// DefaultFilename is the export name used when the caller gives none.
func DefaultFilename(now time.Time) string {
	return "export_" + now.UTC().Format(time.DateOnly) + ".csv"
}

// Columns converts grid column definitions to codec columns, preserving order.
func Columns[T any](defs []column.Def[T]) []Column {
	out := make([]Column, 0, len(defs))
	for _, d := range defs {
		out = append(out, Column{ID: d.ID, Name: d.Name})
	}
	return out
}
