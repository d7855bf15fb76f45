package serial

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"enumcodec/codec"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelVeryVerbose
)

var levelCodec = codec.MustBuild(codec.Enum[level]{
	Name: "Level",
	Directives: []codec.Directive{
		codec.D(codec.DirectiveCasing, "kebab"),
		codec.D(codec.DirectiveSerializationHook),
	},
	Variants: []codec.Variant[level]{
		codec.V("Debug", levelDebug),
		codec.V("Info", levelInfo),
		codec.V("Warn", levelWarn, codec.D(codec.DirectiveAlias, "warning")),
		codec.V("VeryVerbose", levelVeryVerbose),
	},
})

func (l level) MarshalText() ([]byte, error) {
	return NewText(levelCodec).Marshal(l)
}

func (l *level) UnmarshalText(data []byte) error {
	return NewText(levelCodec).Unmarshal(data, l)
}

func (l level) EncodeMsgpack(enc *msgpack.Encoder) error {
	return EncodeMsgpack(enc, levelCodec, l)
}

func (l *level) DecodeMsgpack(dec *msgpack.Decoder) error {
	return DecodeMsgpack(dec, levelCodec, l)
}

type record struct {
	Name  string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Level level  `json:"level" yaml:"level" toml:"level" msgpack:"level"`
}

func TestText(t *testing.T) {
	text := NewText(levelCodec)

	data, err := text.Marshal(levelVeryVerbose)
	require.NoError(t, err)
	assert.Equal(t, "very-verbose", string(data))

	_, err = text.Marshal(level(9))
	assert.ErrorIs(t, err, ErrNotVariant)
	assert.Contains(t, err.Error(), "Level(9)")

	var l level
	require.NoError(t, text.Unmarshal([]byte("warning"), &l))
	assert.Equal(t, levelWarn, l)

	err = text.Unmarshal([]byte("Warn"), &l)
	assert.ErrorIs(t, err, codec.ErrUnknownVariant)
	assert.Equal(t, levelWarn, l, "value is unchanged on failure")
}

func TestFormats_RoundTrip(t *testing.T) {
	for _, name := range FormatNames() {
		t.Run(name, func(t *testing.T) {
			f, err := LookupFormat(name)
			require.NoError(t, err)
			assert.Equal(t, name, f.Name())
			assert.NotEmpty(t, f.ContentType())

			original := record{Name: "ingest", Level: levelVeryVerbose}

			data, err := f.Marshal(original)
			require.NoError(t, err)
			assert.Contains(t, string(data), "very-verbose")
			assert.NotContains(t, string(data), "VeryVerbose")

			var restored record
			require.NoError(t, f.Unmarshal(data, &restored))
			assert.Equal(t, original, restored)
		})
	}
}

func TestFormats_RejectUnknownVariant(t *testing.T) {
	var r record

	err := json.Unmarshal([]byte(`{"name":"x","level":"loud"}`), &r)
	assert.ErrorIs(t, err, codec.ErrUnknownVariant)

	for _, name := range []string{"yaml", "toml"} {
		f, err := LookupFormat(name)
		require.NoError(t, err)

		var data []byte
		if name == "yaml" {
			data = []byte("name: x\nlevel: loud\n")
		} else {
			data = []byte("name = \"x\"\nlevel = \"loud\"\n")
		}

		assert.Error(t, f.Unmarshal(data, &r), name)
	}

	_, err = json.Marshal(record{Level: level(9)})
	assert.ErrorIs(t, err, ErrNotVariant)
}

func TestFormats_Declaration(t *testing.T) {
	decl := codec.Declaration{
		Name: "Stage",
		Directives: []codec.Directive{
			codec.D(codec.DirectiveCasing, "kebab"),
			codec.D(codec.DirectiveDefaultVariant, "Load"),
		},
		Variants: []codec.VariantDecl{
			{Ident: "Generation", Directives: []codec.Directive{codec.D(codec.DirectiveReject)}},
			{Ident: "Load", Directives: []codec.Directive{codec.D(codec.DirectiveAlias, "load test")}},
		},
	}

	table, err := codec.Compile(decl)
	require.NoError(t, err)

	for _, name := range FormatNames() {
		t.Run(name, func(t *testing.T) {
			f, err := LookupFormat(name)
			require.NoError(t, err)

			data, err := f.Marshal(decl)
			require.NoError(t, err)

			var restored codec.Declaration
			require.NoError(t, f.Unmarshal(data, &restored))
			assert.Equal(t, decl, restored)

			data, err = f.Marshal(table)
			require.NoError(t, err)

			var dumped codec.Table
			require.NoError(t, f.Unmarshal(data, &dumped))
			assert.Equal(t, table.Enum, dumped.Enum)
			assert.Equal(t, table.Default, dumped.Default)
			assert.Equal(t, table.Variants, dumped.Variants)
		})
	}
}

func TestLookupFormat_Unknown(t *testing.T) {
	_, err := LookupFormat("yml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), `did you mean "yaml"`)

	_, err = LookupFormat("protobuf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var l level
	FlagVar(fs, levelCodec, &l, "level", levelInfo, "log level")
	assert.Equal(t, levelInfo, l)

	f := fs.Lookup("level")
	require.NotNil(t, f)
	assert.Equal(t, "info", f.DefValue)
	assert.Equal(t, "Level", f.Value.Type())
	assert.Contains(t, f.Usage, "debug|info|warn|very-verbose")

	require.NoError(t, fs.Parse([]string{"--level", "warning"}))
	assert.Equal(t, levelWarn, l)
	assert.Equal(t, "warn", f.Value.String())

	err := fs.Parse([]string{"--level=loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid variant "loud" for enum Level`)
}

func TestChoices_SkipsRejected(t *testing.T) {
	c := codec.MustBuild(codec.Enum[int]{
		Name: "Mode",
		Variants: []codec.Variant[int]{
			codec.V("Fast", 0),
			codec.V("Legacy", 1, codec.D(codec.DirectiveReject)),
			codec.V("Safe", 2, codec.D(codec.DirectiveAlias, "careful")),
		},
	})

	assert.Equal(t, []string{"Fast", "Safe"}, Choices(c))
}
