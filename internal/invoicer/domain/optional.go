package domain

import "encoding/json"

// Optional tells an absent JSON key apart from an explicit null. Set is true
// whenever the key was present in the document, Null additionally when its
// value was the literal null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a present value that was explicitly null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Ptr returns nil for an absent or null value, or a pointer to a copy of it.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
