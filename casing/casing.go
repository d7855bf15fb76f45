package casing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknown indicates a casing name outside the catalogue.
var ErrUnknown = errors.New("unknown casing")

// Transform identifies one casing transform from the catalogue.
type Transform int

const (
	// Identity leaves the base name unchanged. It is the zero value and is
	// what resolution falls back to when no casing directive applies.
	Identity Transform = iota
	Snake
	Kebab
	Pascal
	UpperCamel
	LowerCamel
	ShoutySnake
	ShoutyKebab
	Title
	Train
	Upper
	Lower
	Percent

	transformCount = int(iota)
)

var transformNames = [transformCount]string{
	Identity:    "identity",
	Snake:       "snake",
	Kebab:       "kebab",
	Pascal:      "pascal",
	UpperCamel:  "upper_camel",
	LowerCamel:  "lower_camel",
	ShoutySnake: "shouty_snake",
	ShoutyKebab: "shouty_kebab",
	Title:       "title",
	Train:       "train",
	Upper:       "upper",
	Lower:       "lower",
	Percent:     "percent",
}

var byName = func() map[string]Transform {
	m := make(map[string]Transform, transformCount-1)
	for t := Snake; int(t) < transformCount; t++ {
		m[transformNames[t]] = t
	}

	return m
}()

// Lookup resolves a catalogue name to its Transform.
// "identity" is not addressable; unknown names wrap ErrUnknown.
func Lookup(name string) (Transform, error) {
	if t, ok := byName[name]; ok {
		return t, nil
	}

	if hint := suggest(name); hint != "" {
		return Identity, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknown, name, hint)
	}

	return Identity, fmt.Errorf("%w %q", ErrUnknown, name)
}

// Names returns the addressable catalogue names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// String returns the catalogue name of the transform.
func (t Transform) String() string {
	if t < 0 || int(t) >= transformCount {
		return fmt.Sprintf("Transform(%d)", int(t))
	}

	return transformNames[t]
}

// IsValid reports whether t is a member of the catalogue (Identity included).
func (t Transform) IsValid() bool {
	return t >= 0 && int(t) < transformCount
}

// Apply transforms s. Applying an invalid Transform returns s unchanged.
func (t Transform) Apply(s string) string {
	switch t {
	case Snake:
		return joinWords(Words(s), "_", strings.ToLower)
	case Kebab:
		return joinWords(Words(s), "-", strings.ToLower)
	case Pascal, UpperCamel:
		return joinWords(Words(s), "", capitalize)
	case LowerCamel:
		words := Words(s)
		if len(words) == 0 {
			return ""
		}

		return strings.ToLower(words[0]) + joinWords(words[1:], "", capitalize)
	case ShoutySnake:
		return joinWords(Words(s), "_", strings.ToUpper)
	case ShoutyKebab:
		return joinWords(Words(s), "-", strings.ToUpper)
	case Title:
		return joinWords(Words(s), " ", capitalize)
	case Train:
		return joinWords(Words(s), "-", capitalize)
	case Upper:
		return strings.ToUpper(s)
	case Lower:
		return strings.ToLower(s)
	case Percent:
		return PercentEncode(s)
	default:
		return s
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Transform) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid casing %d", int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transform) UnmarshalText(data []byte) error {
	if string(data) == transformNames[Identity] {
		*t = Identity
		return nil
	}

	parsed, err := Lookup(string(data))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

func joinWords(words []string, sep string, fn func(string) string) string {
	var b strings.Builder

	for i, w := range words {
		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(fn(w))
	}

	return b.String()
}

func capitalize(w string) string {
	if w == "" {
		return w
	}

	r := []rune(strings.ToLower(w))
	r[0] = toUpperRune(r[0])

	return string(r)
}
