package serial

import (
	"github.com/vmihailenco/msgpack/v5"

	"enumcodec/codec"
)

// EncodeMsgpack writes v as a msgpack string. It backs EncodeMsgpack
// methods of generated enumerations.
func EncodeMsgpack[E comparable](enc *msgpack.Encoder, c *codec.Codec[E], v E) error {
	text, err := NewText(c).Marshal(v)
	if err != nil {
		return err
	}

	return enc.EncodeString(string(text))
}

// DecodeMsgpack reads a msgpack string into v.
func DecodeMsgpack[E comparable](dec *msgpack.Decoder, c *codec.Codec[E], v *E) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}

	return NewText(c).Unmarshal([]byte(s), v)
}
