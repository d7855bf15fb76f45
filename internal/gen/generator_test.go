package gen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enumcodec/codec"
	"enumcodec/internal/analyze"
	"enumcodec/internal/diagnostic"
	"enumcodec/internal/plan"
)

const stagePkg = "enumcodec/examples/stage"

func loadStagePlan(t *testing.T) *plan.Plan {
	t.Helper()

	analyzer := analyze.NewAnalyzer()
	graph, err := analyzer.LoadPackages(stagePkg)
	require.NoError(t, err)

	p, err := plan.NewResolver(plan.DefaultConfig()).ResolveGraph(graph, analyzer.Diagnostics())
	require.NoError(t, err)

	return p
}

func generateOne(t *testing.T, cfg GeneratorConfig, p *plan.Plan) GeneratedFile {
	t.Helper()

	files, err := NewGenerator(cfg).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	return files[0]
}

func TestGenerate_MatchesCheckedIn(t *testing.T) {
	p := loadStagePlan(t)
	file := generateOne(t, GeneratorConfig{Msgpack: true}, p)

	assert.Equal(t, "stage_enumcodec.go", file.Filename)
	assert.Equal(t, filepath.Join(file.Dir, file.Filename), file.Path())

	want, err := os.ReadFile(file.Path())
	require.NoError(t, err)

	assert.Equal(t, string(want), string(file.Content),
		"checked-in code is stale; run go generate ./examples/stage")
}

func TestGenerate_Content(t *testing.T) {
	p := loadStagePlan(t)
	src := string(generateOne(t, DefaultGeneratorConfig(), p).Content)

	for _, want := range []string{
		"// Code generated by enumcodec. DO NOT EDIT.",
		"package stage",
		`case "load-test", "load", "load test":`,
		`return "people"`,
		`return "legacy"`,
		"func DefaultStage() Stage {",
		"func (s Stage) MarshalText() ([]byte, error) {",
		`return "Stage.LoadTest"`,
		`return fmt.Sprintf("Priority(%v)", string(p))`,
		`codec.NewDecodeError("Priority", s, _PriorityDecodeKeys)`,
		`var _PriorityDecodeKeys = []string{"high", "low", "veryhigh"}`,
	} {
		assert.Contains(t, src, want)
	}

	// Legacy is rejected: encodable, never decoded.
	assert.NotContains(t, src, `case "legacy"`)
	assert.NotContains(t, src, "func DefaultPriority")
	assert.NotContains(t, src, "func (p Priority) MarshalText")
	assert.NotContains(t, src, "msgpack")

	_, err := parser.ParseFile(token.NewFileSet(), "stage_enumcodec.go", src, parser.ParseComments)
	require.NoError(t, err)
}

func TestGenerate_Msgpack(t *testing.T) {
	p := loadStagePlan(t)
	src := string(generateOne(t, GeneratorConfig{Msgpack: true}, p).Content)

	assert.Contains(t, src, `"github.com/vmihailenco/msgpack/v5"`)
	assert.Contains(t, src, "func (s Stage) EncodeMsgpack(enc *msgpack.Encoder) error {")
	assert.Contains(t, src, "func (s *Stage) DecodeMsgpack(dec *msgpack.Decoder) error {")
	// Only enumerations with a serialization hook get msgpack methods.
	assert.NotContains(t, src, "func (p Priority) EncodeMsgpack")
}

func TestGenerate_OutputOverrides(t *testing.T) {
	p := loadStagePlan(t)
	out := t.TempDir()

	file := generateOne(t, GeneratorConfig{OutputDir: out, Filename: "enums_gen.go"}, p)
	assert.Equal(t, out, file.Dir)
	assert.Equal(t, "enums_gen.go", file.Filename)

	written, err := WriteFiles([]GeneratedFile{file}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "enums_gen.go")}, written)

	got, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, file.Content, got)
}

func TestWriteFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir")

	files := []GeneratedFile{
		{Dir: "ignored", Filename: "a.go", Content: []byte("package a\n")},
		{Filename: "b.go", Content: []byte("package b\n")},
	}

	written, err := WriteFiles(files, out)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	b, err := os.ReadFile(filepath.Join(out, "b.go"))
	require.NoError(t, err)
	assert.Equal(t, "package b\n", string(b))

	_, err = WriteFiles([]GeneratedFile{{Filename: "c.go"}}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output directory")
}

func TestGenerate_SkipsPackagelessAndFailed(t *testing.T) {
	table, err := codec.Compile(codec.Declaration{Name: "Loose", Variants: []codec.VariantDecl{{Ident: "A"}}})
	require.NoError(t, err)

	p := &plan.Plan{
		Enums: []plan.ResolvedEnum{
			{Decl: codec.Declaration{Name: "Loose"}, Table: table},
			{Decl: codec.Declaration{Name: "Broken"}, Package: &analyze.PackageInfo{Path: "x", Name: "x"}},
		},
		Diagnostics: diagnostic.Diagnostics{},
	}

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGenerate_UnformattedSidecar(t *testing.T) {
	table, err := codec.Compile(codec.Declaration{Name: "Mode", Variants: []codec.VariantDecl{{Ident: "ModeA"}}})
	require.NoError(t, err)

	dir := t.TempDir()
	pkg := &analyze.PackageInfo{Path: "example.com/mode", Name: "mode", Dir: dir}
	// A basic type that is not an identifier breaks the generated source.
	src := &analyze.EnumInfo{Basic: "not a type"}

	p := &plan.Plan{Enums: []plan.ResolvedEnum{{Decl: codec.Declaration{Name: "Mode"}, Table: table, Source: src, Package: pkg}}}

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting code")

	sidecar := filepath.Join(dir, "_mode_enumcodec.unformatted.go")
	b, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "// Code generated by enumcodec."))
}

func TestReceiver(t *testing.T) {
	assert.Equal(t, "s", receiver("Stage"))
	assert.Equal(t, "é", receiver("État"))
	assert.Equal(t, "v", receiver(""))
}
