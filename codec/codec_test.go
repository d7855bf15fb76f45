package codec

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum int

const (
	generation testEnum = iota
	load
	customers
)

func testEnumDecl(enumDirectives []Directive, g, l, c []Directive) Enum[testEnum] {
	return Enum[testEnum]{
		Name:       "TestEnum",
		Directives: enumDirectives,
		Variants: []Variant[testEnum]{
			V("Generation", generation, g...),
			V("Load", load, l...),
			V("Customers", customers, c...),
		},
	}
}

func TestCodec_Standard(t *testing.T) {
	c, err := Build(testEnumDecl(nil, nil, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "Generation", c.Encode(generation))

	v, err := c.Decode("Generation")
	require.NoError(t, err)
	assert.Equal(t, generation, v)

	_, err = c.Decode("generation")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Equal(t, `invalid variant "generation" for enum TestEnum (did you mean "Generation"?)`, err.Error())

	_, err = c.Decode("Not a variant")
	assert.EqualError(t, err, `invalid variant "Not a variant" for enum TestEnum`)
}

func TestCodec_DefaultFallback(t *testing.T) {
	c, err := Build(testEnumDecl([]Directive{D(DirectiveDefaultVariant, "Generation")}, nil, nil, nil))
	require.NoError(t, err)

	v, err := c.Decode("Not a variant")
	require.NoError(t, err)
	assert.Equal(t, generation, v)

	def, ok := c.Default()
	assert.True(t, ok)
	assert.Equal(t, generation, def)

	v, err = c.Decode("Load")
	require.NoError(t, err)
	assert.Equal(t, load, v)
}

func TestCodec_Reject(t *testing.T) {
	c, err := Build(testEnumDecl(nil, []Directive{D(DirectiveReject)}, nil, nil))
	require.NoError(t, err)

	_, err = c.Decode("Generation")
	assert.Error(t, err)

	_, err = c.Decode("Load")
	assert.NoError(t, err)

	_, err = c.Decode("Customers")
	assert.NoError(t, err)

	assert.Equal(t, "Generation", c.Encode(generation))
}

func TestCodec_RejectWithDefault(t *testing.T) {
	c, err := Build(testEnumDecl(
		[]Directive{D(DirectiveDefaultVariant, "Customers")},
		[]Directive{D(DirectiveReject)}, nil, nil,
	))
	require.NoError(t, err)

	v, err := c.Decode("Generation")
	require.NoError(t, err)
	assert.Equal(t, customers, v)
}

func TestCodec_Alias(t *testing.T) {
	c, err := Build(testEnumDecl(nil, nil, nil, []Directive{D(DirectiveAlias, "People")}))
	require.NoError(t, err)

	v, err := c.Decode("People")
	require.NoError(t, err)
	assert.Equal(t, customers, v)

	v, err = c.Decode("Customers")
	require.NoError(t, err)
	assert.Equal(t, customers, v)

	assert.Equal(t, "Customers", c.Encode(customers))
}

func TestCodec_Rename(t *testing.T) {
	c, err := Build(testEnumDecl(nil, nil, []Directive{D(DirectiveRename, "Load-Test")}, nil))
	require.NoError(t, err)

	v, err := c.Decode("Load-Test")
	require.NoError(t, err)
	assert.Equal(t, load, v)
	assert.Equal(t, "Load-Test", c.Encode(load))

	_, err = c.Decode("Load")
	assert.Error(t, err)
}

func TestCodec_OutputName(t *testing.T) {
	c, err := Build(testEnumDecl(nil, []Directive{D(DirectiveOutputName, "Gen")}, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "Gen", c.Encode(generation))

	v, err := c.Decode("Generation")
	require.NoError(t, err)
	assert.Equal(t, generation, v)
}

func TestCodec_KebabCasing(t *testing.T) {
	type greeting string

	c, err := Build(Enum[greeting]{
		Name:       "Greeting",
		Directives: []Directive{D(DirectiveCasing, "kebab")},
		Variants: []Variant[greeting]{
			V[greeting]("HelloWorld", "hw"),
			V[greeting]("FooBar", "fb"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", c.Encode("hw"))

	v, err := c.Decode("foo-bar")
	require.NoError(t, err)
	assert.Equal(t, greeting("fb"), v)
}

func TestCodec_EncodeUnknownValue(t *testing.T) {
	c, err := Build(testEnumDecl(nil, nil, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "TestEnum(42)", c.Encode(testEnum(42)))
	assert.Equal(t, "TestEnum(42)", c.Qualified(testEnum(42)))
	assert.False(t, c.Contains(testEnum(42)))
	assert.Equal(t, "", c.Ident(testEnum(42)))
}

func TestCodec_Properties(t *testing.T) {
	c, err := Build(testEnumDecl(
		[]Directive{D(DirectiveCasing, "snake")},
		[]Directive{D(DirectiveReject), D(DirectiveAlias, "gen")},
		[]Directive{D(DirectiveOutputCasing, "title")},
		[]Directive{D(DirectiveAlias, "people")},
	))
	require.NoError(t, err)

	all := []testEnum{generation, load, customers}

	// Encode totality.
	for _, v := range all {
		assert.NotEmpty(t, c.Encode(v))
	}

	// Round trip where both directions resolve identically.
	v, err := c.Decode(c.Encode(customers))
	require.NoError(t, err)
	assert.Equal(t, customers, v)

	// Load encodes with title but still decodes through snake.
	assert.Equal(t, "Load", c.Encode(load))
	v, err = c.Decode("load")
	require.NoError(t, err)
	assert.Equal(t, load, v)

	// Rejection exclusivity.
	for _, input := range []string{"generation", "Generation", "gen", c.Encode(generation)} {
		_, err := c.Decode(input)
		assert.Error(t, err, input)
	}

	// Alias additivity.
	for _, input := range []string{"customers", "people"} {
		v, err := c.Decode(input)
		require.NoError(t, err)
		assert.Equal(t, customers, v)
	}
}

func TestCodec_QualifiedAndIdent(t *testing.T) {
	c, err := Build(testEnumDecl([]Directive{D(DirectiveCasing, "kebab")}, nil, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "TestEnum.Customers", c.Qualified(customers))
	assert.Equal(t, "Customers", c.Ident(customers))
	assert.Equal(t, "TestEnum", c.Name())
	assert.Same(t, c.Table(), c.Table())
}

func TestBuild_DuplicateValues(t *testing.T) {
	_, err := Build(Enum[int]{
		Name:     "Dup",
		Variants: []Variant[int]{V("A", 1), V("B", 1)},
	})
	assert.ErrorIs(t, err, ErrDuplicateVariant)
}

func TestBuild_ConfigErrorSurfaces(t *testing.T) {
	_, err := Build(testEnumDecl([]Directive{D(DirectiveCasing, "nope")}, nil, nil, nil))
	assert.ErrorIs(t, err, ErrUnknownCasing)

	assert.Panics(t, func() {
		MustBuild(testEnumDecl([]Directive{D(DirectiveDefaultVariant, "Nope")}, nil, nil, nil))
	})
}

// shape is a payload-bearing enumeration: the variant is Kind, Size is payload.
type shape struct {
	Kind int
	Size float64
}

func shapeEnum(tag func(shape) int) Enum[shape] {
	return Enum[shape]{
		Name:       "Shape",
		Directives: []Directive{D(DirectiveCasing, "lower")},
		Variants: []Variant[shape]{
			{Ident: "Point", Value: shape{Kind: 0}},
			{Ident: "Circle", Value: shape{Kind: 1}, HasPayload: true},
		},
		Tag: tag,
	}
}

func TestCodec_PayloadIdentity(t *testing.T) {
	c, err := Build(shapeEnum(func(s shape) int { return s.Kind }))
	require.NoError(t, err)

	small := shape{Kind: 1, Size: 1}
	large := shape{Kind: 1, Size: 100}

	assert.True(t, c.Equal(small, large))
	assert.False(t, c.Equal(small, shape{Kind: 0}))
	assert.Equal(t, "circle", c.Encode(large))
	assert.Equal(t, "Shape.Circle", c.Qualified(small))

	v, err := c.Decode("circle")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Kind)
}

func TestCodec_PayloadRequiresTag(t *testing.T) {
	_, err := Build(shapeEnum(nil))
	assert.ErrorIs(t, err, ErrMissingTag)
}

func TestBuildEnumerable(t *testing.T) {
	e, err := BuildEnumerable(testEnumDecl(nil, []Directive{D(DirectiveReject)}, nil, nil))
	require.NoError(t, err)

	values := e.Values()
	assert.Equal(t, []testEnum{generation, load, customers}, values)

	values[0] = customers
	assert.Equal(t, generation, e.Values()[0], "Values returns a copy")

	assert.Equal(t, "Load", e.Encode(load))

	_, err = BuildEnumerable(shapeEnum(func(s shape) int { return s.Kind }))
	assert.ErrorIs(t, err, ErrNotEnumerable)

	assert.Panics(t, func() { MustBuildEnumerable(shapeEnum(func(s shape) int { return s.Kind })) })
}

func TestCodec_ConcurrentReads(t *testing.T) {
	c := MustBuild(testEnumDecl([]Directive{D(DirectiveCasing, "shouty_snake")}, nil, nil, nil))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			for j := 0; j < 200; j++ {
				v := testEnum((i + j) % 3)
				got, err := c.Decode(c.Encode(v))
				if err != nil || got != v {
					t.Errorf("round trip of %v failed: %v %v", v, got, err)
					return
				}
			}
		}(i)
	}

	wg.Wait()
}

func ExampleCodec() {
	type stage int

	c := MustBuild(Enum[stage]{
		Name:       "Stage",
		Directives: []Directive{D(DirectiveCasing, "kebab"), D(DirectiveDefaultVariant, "Generation")},
		Variants: []Variant[stage]{
			V[stage]("Generation", 0),
			V[stage]("LoadTest", 1, D(DirectiveAlias, "load")),
		},
	})

	v, _ := c.Decode("load")
	fmt.Println(c.Encode(v))

	v, _ = c.Decode("unknown")
	fmt.Println(c.Encode(v))
	// Output:
	// load-test
	// generation
}
