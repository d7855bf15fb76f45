package codec

import (
	"fmt"
	"reflect"
	"strings"
)

// Enum declares an enumeration together with the Go values of its variants.
type Enum[E comparable] struct {
	// Name is the enumeration name, used in diagnostics and Qualified.
	Name string
	// Directives are the enumeration-scope directives.
	Directives []Directive
	// Variants in declaration order.
	Variants []Variant[E]
	// Tag reports the declared position of v, or -1 if v is not a
	// variant. It is required when any variant carries payload: values
	// of the same variant with different payloads must share a tag.
	// When nil, values are identified by ==.
	Tag func(v E) int
}

// Variant is one variant with its Go value. For payload-bearing variants
// Value is the prototype returned by Decode.
type Variant[E comparable] struct {
	Ident      string
	Value      E
	Directives []Directive
	HasPayload bool
}

// V is shorthand for a Variant without payload.
func V[E comparable](ident string, value E, directives ...Directive) Variant[E] {
	return Variant[E]{Ident: ident, Value: value, Directives: directives}
}

// Declaration returns the value-free declaration of e.
func (e Enum[E]) Declaration() Declaration {
	decl := Declaration{
		Name:       e.Name,
		Directives: e.Directives,
		Variants:   make([]VariantDecl, len(e.Variants)),
	}

	for i, v := range e.Variants {
		decl.Variants[i] = VariantDecl{Ident: v.Ident, Directives: v.Directives, HasPayload: v.HasPayload}
	}

	return decl
}

// Codec is the runtime codec of one enumeration. It is immutable and safe
// for concurrent use.
type Codec[E comparable] struct {
	table  *Table
	values []E
	index  map[E]int
	tag    func(E) int
}

// Build compiles e into a Codec.
func Build[E comparable](e Enum[E]) (*Codec[E], error) {
	return build(e, e.Declaration())
}

// MustBuild is like Build but panics on error. It is meant for
// package-level codec variables.
func MustBuild[E comparable](e Enum[E]) *Codec[E] {
	c, err := Build(e)
	if err != nil {
		panic("codec: " + err.Error())
	}

	return c
}

func build[E comparable](e Enum[E], decl Declaration) (*Codec[E], error) {
	table, err := Compile(decl)
	if err != nil {
		return nil, err
	}

	c := &Codec[E]{
		table:  table,
		values: make([]E, len(e.Variants)),
		tag:    e.Tag,
	}

	for i, v := range e.Variants {
		c.values[i] = v.Value
	}

	if c.tag != nil {
		return c, nil
	}

	if !table.Enumerable {
		return nil, newConfigError(ErrMissingTag, table.Enum, "", "",
			"payload-bearing: "+strings.Join(table.payloadIdents(), ", "))
	}

	c.index = make(map[E]int, len(c.values))
	for i, v := range c.values {
		if !isComparableValue(v) {
			return nil, newConfigError(ErrInvalidDeclaration, table.Enum, table.Variants[i].Ident, "",
				fmt.Sprintf("value of type %T is not comparable", v))
		}

		if prev, dup := c.index[v]; dup {
			return nil, newConfigError(ErrDuplicateVariant, table.Enum, table.Variants[i].Ident, "",
				fmt.Sprintf("shares value %v with %s", v, table.Variants[prev].Ident))
		}

		c.index[v] = i
	}

	return c, nil
}

// isComparableValue guards interface-typed E whose dynamic type would
// panic as a map key.
func isComparableValue(v any) bool {
	if v == nil {
		return true
	}

	return reflect.TypeOf(v).Comparable()
}

// Name returns the enumeration name.
func (c *Codec[E]) Name() string {
	return c.table.Enum
}

// Table returns the compiled table backing the codec.
func (c *Codec[E]) Table() *Table {
	return c.table
}

func (c *Codec[E]) ordinal(v E) (int, bool) {
	if c.tag != nil {
		i := c.tag(v)
		return i, i >= 0 && i < len(c.values)
	}

	i, ok := c.index[v]

	return i, ok
}

// Contains reports whether v is one of the declared variants.
func (c *Codec[E]) Contains(v E) bool {
	_, ok := c.ordinal(v)
	return ok
}

// Encode returns the encode string of v. It never fails: a value outside
// the declared set renders as Name(value).
func (c *Codec[E]) Encode(v E) string {
	if i, ok := c.ordinal(v); ok {
		return c.table.Encode(i)
	}

	return fmt.Sprintf("%s(%v)", c.table.Enum, v)
}

// Decode returns the variant s decodes to, the default variant when s is
// unrecognized and a default is configured, or a *DecodeError.
func (c *Codec[E]) Decode(s string) (E, error) {
	i, err := c.table.Resolve(s)
	if err != nil {
		var zero E
		return zero, err
	}

	return c.values[i], nil
}

// Default returns the configured default variant.
func (c *Codec[E]) Default() (E, bool) {
	i, ok := c.table.DefaultIndex()
	if !ok {
		var zero E
		return zero, false
	}

	return c.values[i], true
}

// Equal reports whether a and b are the same variant. Payload is ignored
// when a Tag function is configured.
func (c *Codec[E]) Equal(a, b E) bool {
	ia, okA := c.ordinal(a)
	ib, okB := c.ordinal(b)

	if okA && okB {
		return ia == ib
	}

	return a == b
}

// Ident returns the variant identifier of v, or "" if v is not declared.
func (c *Codec[E]) Ident(v E) string {
	if i, ok := c.ordinal(v); ok {
		return c.table.Variants[i].Ident
	}

	return ""
}

// Qualified returns "Enum.Ident" for v, for debugging output.
func (c *Codec[E]) Qualified(v E) string {
	if i, ok := c.ordinal(v); ok {
		return c.table.Enum + "." + c.table.Variants[i].Ident
	}

	return c.Encode(v)
}

// Enumerable is a Codec over an enumeration without payload-bearing
// variants, which additionally exposes the ordered variant list.
type Enumerable[E comparable] struct {
	*Codec[E]
}

// BuildEnumerable compiles e and fails with ErrNotEnumerable if any
// variant carries payload.
func BuildEnumerable[E comparable](e Enum[E]) (*Enumerable[E], error) {
	decl := e.Declaration()
	decl.Enumerate = true

	c, err := build(e, decl)
	if err != nil {
		return nil, err
	}

	return &Enumerable[E]{Codec: c}, nil
}

// MustBuildEnumerable is like BuildEnumerable but panics on error.
func MustBuildEnumerable[E comparable](e Enum[E]) *Enumerable[E] {
	c, err := BuildEnumerable(e)
	if err != nil {
		panic("codec: " + err.Error())
	}

	return c
}

// Values returns all variants in declaration order, rejected ones included.
func (e *Enumerable[E]) Values() []E {
	out := make([]E, len(e.values))
	copy(out, e.values)

	return out
}
