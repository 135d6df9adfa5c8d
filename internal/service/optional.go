package service

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Optional is a JSON field that records whether the key was present in the
// payload. Set is true whenever the key appeared, even with a null value.
// Valid is false for null and for values that cannot be read as T. A quoted
// value is also accepted when its contents decode as T, so "1500" fills an
// Optional[float64]. An Optional[[]string] also accepts mixed arrays; see
// looseStrings.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Valid = false

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	if list, ok := any(&o.Value).(*[]string); ok {
		if items, ok := looseStrings(data); ok {
			*list, o.Valid = items, true
			return nil
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err == nil {
		o.Value, o.Valid = v, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var inner T
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &inner); err == nil {
			o.Value, o.Valid = inner, true
			return nil
		}
	}

	var zero T
	o.Value = zero
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns a pointer to a copy of the value, or nil when not valid.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// stringOrNil maps absent, null and empty strings to nil.
func stringOrNil(o Optional[string]) *string {
	if !o.Valid || o.Value == "" {
		return nil
	}
	v := o.Value
	return &v
}

// listOrEmpty returns the decoded list, or an empty list for anything that
// was not a JSON array.
func listOrEmpty(o Optional[[]string]) []string {
	if !o.Valid || o.Value == nil {
		return []string{}
	}
	return o.Value
}

// looseStrings reads a JSON array element by element. Strings are kept as is,
// numbers and booleans keep their literal text, and nulls, objects and nested
// arrays are dropped.
func looseStrings(data []byte) ([]string, bool) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
			continue
		}
		var scalar any
		if json.Unmarshal(item, &scalar) != nil {
			continue
		}
		switch scalar.(type) {
		case float64, bool:
			out = append(out, string(bytes.TrimSpace(item)))
		}
	}
	return out, true
}
