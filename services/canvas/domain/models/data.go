package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
)

// Data is the type-specific payload bag of a canvas item, stored as a JSON object.
type Data map[string]any

// Clone returns a shallow copy of the bag. Values are JSON scalars in practice.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Merge returns a copy of d with every key of o written over it.
func (d Data) Merge(o Data) Data {
	out := make(Data, len(d)+len(o))
	maps.Copy(out, d)
	maps.Copy(out, o)
	return out
}

// String returns the value under key when it is a string.
func (d Data) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Bool returns the value under key when it is a bool.
func (d Data) Bool(key string) (bool, bool) {
	b, ok := d[key].(bool)
	return b, ok
}

// Int returns the value under key as an int. JSON numbers decode as float64.
func (d Data) Int(key string) (int, bool) {
	switch v := d[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case json.Number:
		i, err := v.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

// Value implements driver.Valuer. A nil bag is stored as an empty object.
func (d Data) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, fmt.Errorf("encode item data: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner for jsonb and TEXT columns.
func (d *Data) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Data{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan item data: unsupported type %T", src)
	}
	out := Data{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("scan item data: %w", err)
		}
	}
	*d = out
	return nil
}
