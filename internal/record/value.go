package record

import (
	"fmt"
	"sort"
)

// Value is a sealed interface over the scalar types a record field can hold.
// Only Null, Int, Real, Text, and Blob implement it. Keeping the set closed
// means arbitrary runtime types never reach the SQL layer - everything is
// converted at the boundary via FromNative / FromDriver.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an absent value. On insert a Null field is omitted
// entirely (the column default applies); on update it becomes a literal
// NULL assignment.
type Null struct{}

func (Null) value() {}

// Int represents an integral value, stored as an INTEGER column.
type Int int64

func (Int) value() {}

// Real represents a floating-point value, stored as a REAL column.
type Real float64

func (Real) value() {}

// Text represents a character-string value, stored as a TEXT column.
type Text string

func (Text) value() {}

// Blob represents an opaque byte value, stored as a BLOB column.
// Blob is also the fallback storage kind for anything the schema
// evolver cannot classify.
type Blob []byte

func (Blob) value() {}

// Record is an ephemeral mapping from field name to scalar value.
// Records have no identity beyond a single call - they are materialized
// into a relational row and immediately discardable.
type Record map[string]Value

// SortedFields returns the record's field names in sorted order.
// Used wherever clause or column order must be deterministic.
func (r Record) SortedFields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// FromNative converts a Go scalar into a Value.
//
// Mapping: nil -> Null, integral types -> Int, floats -> Real,
// string -> Text, []byte -> Blob, bool -> Int 0/1 (SQLite convention).
// A Value passes through unchanged. Anything else is an error - arbitrary
// runtime types must not leak into the store.
func FromNative(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		return Int(val), nil
	case float32:
		return Real(val), nil
	case float64:
		return Real(val), nil
	case string:
		return Text(val), nil
	case []byte:
		return Blob(val), nil
	case bool:
		if val {
			return Int(1), nil
		}
		return Int(0), nil
	default:
		return nil, fmt.Errorf("unsupported field type %T", v)
	}
}

// FromNativeMap converts a map of Go scalars into a Record.
func FromNativeMap(m map[string]any) (Record, error) {
	rec := make(Record, len(m))
	for k, v := range m {
		val, err := FromNative(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		rec[k] = val
	}
	return rec, nil
}

// FromDriver converts a scalar returned by the database driver into a Value.
// The driver hands back int64, float64, string, []byte, bool, or nil;
// whatever type the engine reports is preserved.
func FromDriver(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case int64:
		return Int(val), nil
	case float64:
		return Real(val), nil
	case string:
		return Text(val), nil
	case []byte:
		// Copy - the driver may reuse the buffer between rows.
		b := make([]byte, len(val))
		copy(b, val)
		return Blob(b), nil
	case bool:
		if val {
			return Int(1), nil
		}
		return Int(0), nil
	default:
		return nil, fmt.Errorf("unsupported driver type %T", v)
	}
}

// ToNative converts a Value back to the Go scalar handed to callers.
// Null becomes nil.
func ToNative(v Value) any {
	switch val := v.(type) {
	case Null:
		return nil
	case Int:
		return int64(val)
	case Real:
		return float64(val)
	case Text:
		return string(val)
	case Blob:
		return []byte(val)
	default:
		return nil
	}
}

// ToNativeMap converts a Record into a map of Go scalars.
func (r Record) ToNativeMap() map[string]any {
	m := make(map[string]any, len(r))
	for k, v := range r {
		m[k] = ToNative(v)
	}
	return m
}

// IsNull reports whether v is the Null value.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}
