package column

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Undefined is the string form of a missing value. Multi-select filters compare against it, so a
// row without a value only matches when "undefined" is one of the selected options.
const Undefined = "undefined"

// Valuer lets a row type expose its fields by column id without reflection.
type Valuer interface {
	FieldValue(key string) any
}

// Lookup returns the value stored under key on item. Maps are indexed directly, Valuer
// implementations are asked, and structs are searched for a field tagged `grid:"key"`, then
// `json:"key"`, then a field whose name matches key case-insensitively. Missing keys yield nil.
func Lookup(item any, key string) any {
	switch row := item.(type) {
	case nil:
		return nil
	case Valuer:
		return row.FieldValue(key)
	case map[string]any:
		return row[key]
	case map[string]string:
		if v, ok := row[key]; ok {
			return v
		}
		return nil
	}

	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		f, ok := structField(rv.Type(), key)
		if !ok {
			return nil
		}
		return rv.FieldByIndex(f.Index).Interface()
	}
	return nil
}

func structField(t reflect.Type, key string) (reflect.StructField, bool) {
	var byJSON, byName *reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tagName(f.Tag.Get("grid")) == key {
			return f, true
		}
		if byJSON == nil && tagName(f.Tag.Get("json")) == key {
			byJSON = &f
		}
		if byName == nil && strings.EqualFold(f.Name, key) {
			byName = &f
		}
	}
	if byJSON != nil {
		return *byJSON, true
	}
	if byName != nil {
		return *byName, true
	}
	return reflect.StructField{}, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// IsNil reports whether v is nil or a nil pointer, map, slice or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Number returns v as a float64 when it holds any Go numeric type.
func Number(v any) (float64, bool) {
	v = indirect(v)
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ToString converts a raw cell value to its string form. Missing values become Undefined.
func ToString(v any) string {
	if IsNil(v) {
		return Undefined
	}
	v = indirect(v)

	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format(time.RFC3339)
	case fmt.Stringer:
		return s.String()
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return fmt.Sprint(v)
}

func indirect(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if _, ok := rv.Interface().(fmt.Stringer); ok {
			break
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
