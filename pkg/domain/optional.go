package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state request field: absent, explicit null, or a value.
// The payment manager's partial-update semantics require callers to
// distinguish "leave unchanged" (absent) from "clear" (null), which a plain
// pointer cannot express. Fields that are absent from the JSON body keep
// the zero Optional (Set=false); "field": null yields Set=true, Valid=false.
type Optional[T any] struct {
	Set   bool
	Valid bool
	value T
}

// Some builds a present Optional carrying a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, value: v}
}

// Null builds a present-but-null Optional (explicit clear).
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Get returns the value and whether it is present and non-null.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.Set && o.Valid
}

// MustGet is for call sites that already checked Get; mostly tests.
func (o Optional[T]) MustGet() T {
	if !o.Set || !o.Valid {
		panic("optional: MustGet on absent or null value")
	}
	return o.value
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
