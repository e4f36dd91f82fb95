// Package optional provides the wrapper type instantiated by generated
// companion structs: a value of type T, or the absence of a value. Absence
// round-trips through JSON as null so partially populated payloads keep
// their shape.
package optional

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// Optional holds a value of type T or nothing. The zero value is None.
type Optional[T any] struct {
	value T
	some  bool
}

// Some returns an Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, some: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr converts a possibly nil pointer into an Optional.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool {
	return o.some
}

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.some
}

// MustGet returns the held value, panicking when absent.
func (o Optional[T]) MustGet() T {
	if !o.some {
		panic("optional: value is absent")
	}
	return o.value
}

// OrElse returns the held value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.some {
		return fallback
	}
	return o.value
}

// Ptr returns a pointer to a copy of the held value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.some {
		return nil
	}
	value := o.value
	return &value
}

// String implements fmt.Stringer.
func (o Optional[T]) String() string {
	if !o.some {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MarshalJSON encodes the held value, or null when absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.some {
		return append([]byte(nil), jsonNull...), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absence and any other payload as a value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = None[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
