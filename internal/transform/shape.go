package transform

import (
	"bytes"
	"encoding/json"
)

// Shape is the public representation of a Record produced by a Transformer.
// Fields keep the order in which they were set, so the JSON object written to
// clients lists them in the order the transformer declares them.
type Shape struct {
	keys   []string
	values map[string]any
}

// Set assigns value to key. Setting an existing key overwrites the value
// without changing its position.
func (s *Shape) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s Shape) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the field names in declaration order.
func (s Shape) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of fields.
func (s Shape) Len() int { return len(s.keys) }

// Map returns a copy of the fields as a plain map.
func (s Shape) Map() map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, k := range s.keys {
		out[k] = s.values[k]
	}
	return out
}

// MarshalJSON encodes the shape as a JSON object in field order.
func (s Shape) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
