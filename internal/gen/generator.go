package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"enumcodec/codec"
	"enumcodec/internal/analyze"
	"enumcodec/internal/plan"
)

// Import paths referenced by generated code.
const (
	codecImport   = "enumcodec/codec"
	serialImport  = "enumcodec/serial"
	msgpackImport = "github.com/vmihailenco/msgpack/v5"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir overrides the directory generated files are written to.
	// Empty means next to the package sources.
	OutputDir string
	// Filename overrides the generated file name. Empty means
	// "<package>_enumcodec.go".
	Filename string
	// Msgpack adds EncodeMsgpack/DecodeMsgpack methods to enumerations
	// with a serialization hook.
	Msgpack bool
	// Logger receives progress at debug level. Nil discards.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
	log    *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	log := config.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Generator{config: config, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "stage_enumcodec.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per package holding compiled enumerations.
// Enumerations from declaration files have no package and are skipped.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	groups := p.ByPackage()

	pkgs := make([]*analyze.PackageInfo, 0, len(groups))
	for pkg := range groups {
		pkgs = append(pkgs, pkg)
	}

	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].Path < pkgs[j].Path
	})

	files := make([]GeneratedFile, 0, len(pkgs))

	for _, pkg := range pkgs {
		file, err := g.generatePackage(pkg, groups[pkg])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		g.log.Debug("generated file", "package", pkg.Path, "file", file.Filename, "enums", len(groups[pkg]))
		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generatePackage(pkg *analyze.PackageInfo, enums []*plan.ResolvedEnum) (*GeneratedFile, error) {
	data := g.buildTemplateData(pkg, enums)

	dir := pkg.Dir
	if g.config.OutputDir != "" {
		dir = g.config.OutputDir
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{Dir: dir, Filename: data.Filename, Content: buf.Bytes()}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: keep the unformatted code around to aid debugging.
		_ = writeUnformatted(*file)

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []importSpec
	Enums       []enumData
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// enumData is one enumeration as the template sees it. String fields
// holding Go literals are already quoted.
type enumData struct {
	Type       string
	Recv       string
	Basic      string
	Variants   []variantData
	Decode     []decodeCase
	DecodeKeys string
	Default    string
	Hook       bool
	Msgpack    bool
}

type variantData struct {
	Const     string
	Encoded   string
	Qualified string
}

type decodeCase struct {
	Const string
	Keys  string
}

// Consts returns the constant names joined for a case clause or literal.
func (e enumData) Consts() string {
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = v.Const
	}

	return strings.Join(names, ", ")
}

func (g *Generator) buildTemplateData(pkg *analyze.PackageInfo, enums []*plan.ResolvedEnum) *templateData {
	data := &templateData{
		PackageName: pkg.Name,
		Filename:    g.filename(pkg),
	}

	imports := map[string]bool{"fmt": true}

	for _, e := range enums {
		ed := buildEnum(e.Table, e.Source)
		ed.Msgpack = ed.Hook && g.config.Msgpack

		if ed.Default == "" {
			imports[codecImport] = true
		}

		if ed.Hook {
			imports[serialImport] = true
		}

		if ed.Msgpack {
			imports[msgpackImport] = true
		}

		data.Enums = append(data.Enums, ed)
	}

	for path := range imports {
		data.Imports = append(data.Imports, importSpec{Path: path})
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data
}

func buildEnum(t *codec.Table, src *analyze.EnumInfo) enumData {
	ed := enumData{
		Type:  t.Enum,
		Recv:  receiver(t.Enum),
		Basic: src.Basic,
		Hook:  t.SerializationHook,
	}

	for _, entry := range t.Variants {
		ed.Variants = append(ed.Variants, variantData{
			Const:     entry.Declared,
			Encoded:   strconv.Quote(entry.Encoded),
			Qualified: strconv.Quote(t.Enum + "." + entry.Ident),
		})

		if len(entry.DecodeKeys) > 0 {
			ed.Decode = append(ed.Decode, decodeCase{
				Const: entry.Declared,
				Keys:  quoteJoin(entry.DecodeKeys),
			})
		}
	}

	if i, ok := t.DefaultIndex(); ok {
		ed.Default = t.Variants[i].Declared
	} else {
		ed.DecodeKeys = quoteJoin(t.DecodeKeys())
	}

	return ed
}

func (g *Generator) filename(pkg *analyze.PackageInfo) string {
	if g.config.Filename != "" {
		return g.config.Filename
	}

	return strings.ToLower(pkg.Name) + "_enumcodec.go"
}

// receiver derives a method receiver name from a type name.
func receiver(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return "v"
	}

	return string(unicode.ToLower(r))
}

func quoteJoin(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strconv.Quote(s)
	}

	return strings.Join(quoted, ", ")
}

// Path returns where the file is written.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}
