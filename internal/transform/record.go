package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one raw resource row as fetched from storage, keyed by field name.
// Values are text, booleans or numbers. A Transformer only borrows a Record
// for the duration of a single call and must not modify it.
type Record map[string]any

// Value returns the raw value stored under field, or a *MissingFieldError
// if the record has no such field.
func (r Record) Value(field string) (any, error) {
	v, ok := r[field]
	if !ok {
		return nil, &MissingFieldError{Field: field}
	}
	return v, nil
}

// String returns field rendered as text.
func (r Record) String(field string) (string, error) {
	v, err := r.Value(field)
	if err != nil {
		return "", err
	}

	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Bool returns field coerced to a strict boolean, see Truthy.
func (r Record) Bool(field string) (bool, error) {
	v, err := r.Value(field)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// Truthy coerces a stored value to a boolean.
//
// Booleans are returned as-is, numbers are true when non-zero, and text is
// false only when empty or "0". A nil value is false. Any other value is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case []byte:
		return len(t) != 0 && string(t) != "0"
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return t != ""
		}
		return f != 0
	default:
		return true
	}
}
