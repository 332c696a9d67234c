package dto

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field that tells an omitted key apart from an explicit
// null. Set is true when the key was present; Valid is true when it carried
// a non-null value.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewNullable returns a set, non-null value
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a set, null value
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Valid = false
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value as a pointer, nil when null or unset
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// ValidationValue exposes the inner value to the request validator; null
// and unset values validate as absent.
func (n Nullable[T]) ValidationValue() interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}
