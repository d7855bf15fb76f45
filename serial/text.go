package serial

import (
	"errors"
	"fmt"

	"enumcodec/codec"
)

// ErrNotVariant is returned when marshaling a value that is not one of the
// declared variants.
var ErrNotVariant = errors.New("value is not a declared variant")

// Text marshals enumeration values as their encode strings.
type Text[E comparable] struct {
	codec *codec.Codec[E]
}

// NewText returns a Text over c.
func NewText[E comparable](c *codec.Codec[E]) Text[E] {
	return Text[E]{codec: c}
}

// Marshal returns the encode string of v. Unlike Codec.Encode it refuses
// undeclared values, so they never reach the wire.
func (t Text[E]) Marshal(v E) ([]byte, error) {
	if !t.codec.Contains(v) {
		return nil, fmt.Errorf("%s: %w", t.codec.Encode(v), ErrNotVariant)
	}

	return []byte(t.codec.Encode(v)), nil
}

// Unmarshal decodes data into v. On failure v is left unchanged and the
// error wraps codec.ErrUnknownVariant.
func (t Text[E]) Unmarshal(data []byte, v *E) error {
	decoded, err := t.codec.Decode(string(data))
	if err != nil {
		return err
	}

	*v = decoded

	return nil
}
