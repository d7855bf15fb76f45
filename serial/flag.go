package serial

import (
	"strings"

	"github.com/spf13/pflag"

	"enumcodec/codec"
	"enumcodec/internal/common"
)

// Flag is a pflag.Value holding one enumeration value.
type Flag[E comparable] struct {
	codec *codec.Codec[E]
	value *E
}

var _ pflag.Value = (*Flag[int])(nil)

// NewFlag returns a Flag storing into p, initialized to def.
func NewFlag[E comparable](c *codec.Codec[E], p *E, def E) *Flag[E] {
	*p = def

	return &Flag[E]{codec: c, value: p}
}

// FlagVar defines an enumeration flag on fs. The usage string is suffixed
// with the accepted spellings.
func FlagVar[E comparable](fs *pflag.FlagSet, c *codec.Codec[E], p *E, name string, def E, usage string) {
	fs.Var(NewFlag(c, p, def), name, usage+" ("+strings.Join(Choices(c), "|")+")")
}

func (f *Flag[E]) String() string {
	if f.value == nil {
		return ""
	}

	return f.codec.Encode(*f.value)
}

func (f *Flag[E]) Set(s string) error {
	v, err := f.codec.Decode(s)
	if err != nil {
		return err
	}

	*f.value = v

	return nil
}

func (f *Flag[E]) Type() string {
	return f.codec.Name()
}

// Choices lists the decode string of every variant that accepts input,
// aliases excluded, in declaration order.
func Choices[E comparable](c *codec.Codec[E]) []string {
	var out []string

	for _, entry := range c.Table().Variants {
		if key, ok := common.First(entry.DecodeKeys); ok {
			out = append(out, key)
		}
	}

	return out
}
