package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnsupportedShape = errors.New("unsupported filter value")

// MarshalJSON encodes text filters as strings, multi-select filters as arrays and people
// filters as person objects. No filter encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindMultiSelect:
		return json.Marshal(v.values)
	case KindPerson:
		return json.Marshal(v.person)
	}
	return []byte("null"), nil
}

// UnmarshalJSON is where an untyped filter value from a client gets its kind: strings are text,
// arrays are multi-select, objects with an "email" key are people. Anything empty decodes to
// no filter.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case 'n':
		*v = Value{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*v = MultiSelect(values...)
		return nil
	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(data, &keys); err != nil {
			return err
		}
		if _, ok := keys["email"]; !ok {
			*v = Value{}
			return nil
		}
		var p Person
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*v = PersonFilter(p)
		return nil
	}
	return fmt.Errorf("%w: %s", errUnsupportedShape, data)
}

// DirectoryEntry is a user record as returned by a people directory. Directories disagree on
// where the address lives, so ToPerson looks in Email, then Mail, then UserPrincipalName.
type DirectoryEntry struct {
	ID                string `json:"id,omitempty"`
	DisplayName       string `json:"displayName"`
	Email             string `json:"email,omitempty"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
	Photo             string `json:"photo,omitempty"`
}

// ToPerson converts a directory entry to a Person. A nil entry returns nil.
func ToPerson(e *DirectoryEntry) *Person {
	if e == nil {
		return nil
	}
	email := e.Email
	if email == "" {
		email = e.Mail
	}
	if email == "" {
		email = e.UserPrincipalName
	}
	return &Person{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		Email:       email,
		Photo:       e.Photo,
	}
}
