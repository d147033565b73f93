package nordic

import (
	"encoding/json"
	"strconv"
)

// Number is the set of field types that may be absent in a Nordic record.
type Number interface {
	~int | ~float64
}

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T Number] struct {
	v  T
	ok bool
}

// Some returns a present Optional holding v.
func Some[T Number](v T) Optional[T] {
	return Optional[T]{v: v, ok: true}
}

// None returns an absent Optional.
func None[T Number]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.v, o.ok
}

// Present reports whether a value was decoded.
func (o Optional[T]) Present() bool {
	return o.ok
}

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if !o.ok {
		return def
	}
	return o.v
}

// Equal reports whether both sides are absent or both hold the same value.
func (o Optional[T]) Equal(other Optional[T]) bool {
	if o.ok != other.ok {
		return false
	}
	return !o.ok || o.v == other.v
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "absent"
	}
	switch v := any(o.v).(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	b, _ := json.Marshal(o.v)
	return string(b)
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
