package filter

import (
	"strings"
)

// Kind tags the shape of a filter Value.
type Kind int

const (
	// KindNone is the zero Value: no filter.
	KindNone Kind = iota
	KindText
	KindMultiSelect
	KindPerson
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMultiSelect:
		return "multiSelect"
	case KindPerson:
		return "person"
	}
	return "none"
}

// Person is a directory entry used by people filters. It is identified by Email.
type Person struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Photo       string `json:"photo,omitempty"`
}

// Value is one filter value: text, a list of selected options, or a person. The zero value
// means "no filter". Constructors normalize empty input to the zero value, so a Value that is
// not KindNone always carries something to filter by.
type Value struct {
	kind   Kind
	text   string
	values []string
	person Person
}

// Text returns a text filter for s, trimmed. Blank input yields no filter.
func Text(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// MultiSelect returns a filter matching any of values. An empty selection yields no filter.
func MultiSelect(values ...string) Value {
	if len(values) == 0 {
		return Value{}
	}
	return Value{kind: KindMultiSelect, values: append([]string(nil), values...)}
}

// PersonFilter returns a filter on p's email. A person without an email yields no filter.
func PersonFilter(p Person) Value {
	if p.Email == "" {
		return Value{}
	}
	return Value{kind: KindPerson, person: p}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero reports whether v is "no filter".
func (v Value) IsZero() bool {
	return v.kind == KindNone
}

// TextValue returns the text of a text filter.
func (v Value) TextValue() (string, bool) {
	return v.text, v.kind == KindText
}

// Values returns a copy of the selected options of a multi-select filter.
func (v Value) Values() ([]string, bool) {
	if v.kind != KindMultiSelect {
		return nil, false
	}
	return append([]string(nil), v.values...), true
}

// PersonValue returns the selected person of a people filter.
func (v Value) PersonValue() (Person, bool) {
	return v.person, v.kind == KindPerson
}

// Equal reports whether two values filter by the same thing.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindMultiSelect:
		if len(v.values) != len(o.values) {
			return false
		}
		for i := range v.values {
			if v.values[i] != o.values[i] {
				return false
			}
		}
		return true
	case KindPerson:
		return v.person == o.person
	}
	return true
}

// normalize re-applies the constructor rules, for values built by decoding or by hand.
func (v Value) normalize() Value {
	switch v.kind {
	case KindText:
		return Text(v.text)
	case KindMultiSelect:
		return MultiSelect(v.values...)
	case KindPerson:
		return PersonFilter(v.person)
	}
	return Value{}
}
