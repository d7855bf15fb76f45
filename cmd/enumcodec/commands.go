package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"enumcodec/codec"
	"enumcodec/internal/analyze"
	"enumcodec/internal/config"
	"enumcodec/internal/diagnostic"
	"enumcodec/internal/gen"
	"enumcodec/internal/match"
	"enumcodec/internal/plan"
	"enumcodec/serial"
)

// env carries the process streams into command handlers.
type env struct {
	stdout io.Writer
	stderr io.Writer
}

func root(e *env) *command {
	return &command{
		name:    "enumcodec",
		summary: "Compile enumeration declarations into string codecs.",
		env:     e,
		subcommands: []*command{
			genCommand(e),
			checkCommand(e),
			tableCommand(e),
			encodeCommand(e),
			decodeCommand(e),
		},
	}
}

// source selects where declarations come from: a declaration file when
// configPath is set, Go packages otherwise.
type source struct {
	configPath string
	types      []string
	strict     bool
	verbose    bool
}

func (s *source) register(fs *pflag.FlagSet, withTypes bool) {
	fs.StringVar(&s.configPath, "config", "", "declaration file (.yaml, .toml, .jsonc) instead of Go packages")
	fs.BoolVar(&s.strict, "strict", false, "treat warnings as errors")
	fs.BoolVarP(&s.verbose, "verbose", "v", false, "log at debug level")

	if withTypes {
		fs.StringSliceVar(&s.types, "type", nil, "enum type names to process (default: types with directives)")
	}
}

// load runs the front end and the resolver. The plan is returned even
// when resolution fails so its diagnostics can be reported.
func (s *source) load(patterns []string, log *slog.Logger) (*plan.Plan, error) {
	resolver := plan.NewResolver(plan.ResolutionConfig{StrictMode: s.strict, Logger: log})

	if s.configPath != "" {
		f, err := config.LoadFile(s.configPath)
		if err != nil {
			return nil, err
		}

		decls, diags := f.Declarations()
		log.Debug("loaded declaration file", "path", s.configPath, "enums", len(decls))

		return resolver.ResolveDeclarations(decls, diags)
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	analyzer := analyze.NewAnalyzer(s.types...)

	graph, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	log.Debug("analyzed packages", "patterns", patterns, "enums", len(graph.Enums))

	return resolver.ResolveGraph(graph, analyzer.Diagnostics())
}

func genCommand(e *env) *command {
	var (
		src      source
		outDir   string
		filename string
		msgpack  bool
		export   string
	)

	return &command{
		name:    "gen",
		summary: "Generate codec methods for the enum types of Go packages",
		usage:   "enumcodec gen [flags] [packages]",
		env:     e,
		flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("gen", pflag.ContinueOnError)
			src.register(fs, true)
			fs.StringVar(&outDir, "out-dir", "", "write generated files here instead of the package directory")
			fs.StringVar(&filename, "output", "", "generated file name (default <package>_enumcodec.go)")
			fs.BoolVar(&msgpack, "msgpack", false, "also generate msgpack encoder methods for enums with serialization_hook")
			fs.StringVar(&export, "export", "", "also write the analyzed declarations to this YAML file")

			return fs
		},
		run: func(args []string) error {
			if src.configPath != "" {
				return errors.New("gen reads Go packages; --config is not supported")
			}

			log := newLogger(e.stderr, src.verbose)

			p, err := src.load(args, log)
			if err != nil {
				return report(e, p, err)
			}

			printDiagnostics(e.stderr, p.Diagnostics, false)

			if export != "" {
				if err := config.WriteFile(plan.ExportDeclarations(p), export); err != nil {
					return err
				}

				log.Info("exported declarations", "path", export)
			}

			files, err := gen.NewGenerator(gen.GeneratorConfig{
				Filename: filename,
				Msgpack:  msgpack,
				Logger:   log,
			}).Generate(p)
			if err != nil {
				return err
			}

			written, err := gen.WriteFiles(files, outDir)
			if err != nil {
				return err
			}

			for _, path := range written {
				log.Info("wrote file", "path", path)
			}

			return nil
		},
	}
}

func checkCommand(e *env) *command {
	var src source

	return &command{
		name:    "check",
		summary: "Compile declarations and report diagnostics",
		usage:   "enumcodec check [flags] [packages]",
		env:     e,
		flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
			src.register(fs, true)

			return fs
		},
		run: func(args []string) error {
			p, err := src.load(args, newLogger(e.stderr, src.verbose))
			if err != nil {
				return report(e, p, err)
			}

			printDiagnostics(e.stdout, p.Diagnostics, src.verbose)
			fmt.Fprintf(e.stdout, "ok: %d enumerations\n", len(p.Enums))

			return nil
		},
	}
}

// tableDump wraps the tables so that every format, TOML included, gets
// a top-level table.
type tableDump struct {
	Tables []*codec.Table `json:"tables" yaml:"tables" toml:"tables" msgpack:"tables"`
}

func tableCommand(e *env) *command {
	var (
		src    source
		format string
		enum   string
	)

	return &command{
		name:    "table",
		summary: "Print compiled codec tables",
		usage:   "enumcodec table [flags] [packages]",
		env:     e,
		flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("table", pflag.ContinueOnError)
			src.register(fs, true)
			fs.StringVarP(&format, "format", "f", "yaml", fmt.Sprintf("output format %v", serial.FormatNames()))
			fs.StringVar(&enum, "enum", "", "only print this enumeration")

			return fs
		},
		run: func(args []string) error {
			f, err := serial.LookupFormat(format)
			if err != nil {
				return err
			}

			p, err := src.load(args, newLogger(e.stderr, src.verbose))
			if err != nil {
				return report(e, p, err)
			}

			var dump tableDump

			if enum != "" {
				resolved, err := lookupEnum(p, enum)
				if err != nil {
					return err
				}

				dump.Tables = append(dump.Tables, resolved.Table)
			} else {
				for i := range p.Enums {
					dump.Tables = append(dump.Tables, p.Enums[i].Table)
				}
			}

			data, err := f.Marshal(dump)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", f.Name(), err)
			}

			_, err = e.stdout.Write(data)

			return err
		},
	}
}

func encodeCommand(e *env) *command {
	var (
		src  source
		enum string
	)

	return &command{
		name:    "encode",
		summary: "Encode variant identifiers with a declared enumeration",
		usage:   "enumcodec encode --config file --enum NAME IDENT...",
		env:     e,
		flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			src.register(fs, false)
			fs.StringVar(&enum, "enum", "", "enumeration name (required)")

			return fs
		},
		run: func(args []string) error {
			c, err := identCodec(e, &src, enum)
			if err != nil {
				return err
			}

			idents := c.Table().Variants

			for _, ident := range args {
				i, ok := c.Table().Variant(ident)
				if !ok {
					names := make([]string, len(idents))
					for j, v := range idents {
						names[j] = v.Ident
					}

					if hint := match.Closest(ident, names, 2); hint != "" {
						return fmt.Errorf("%s has no variant %q (did you mean %q?)", enum, ident, hint)
					}

					return fmt.Errorf("%s has no variant %q", enum, ident)
				}

				fmt.Fprintln(e.stdout, c.Encode(idents[i].Ident))
			}

			return nil
		},
	}
}

func decodeCommand(e *env) *command {
	var (
		src  source
		enum string
	)

	return &command{
		name:    "decode",
		summary: "Decode strings with a declared enumeration",
		usage:   "enumcodec decode --config file --enum NAME TEXT...",
		env:     e,
		flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			src.register(fs, false)
			fs.StringVar(&enum, "enum", "", "enumeration name (required)")

			return fs
		},
		run: func(args []string) error {
			c, err := identCodec(e, &src, enum)
			if err != nil {
				return err
			}

			for _, text := range args {
				ident, err := c.Decode(text)
				if err != nil {
					return err
				}

				fmt.Fprintln(e.stdout, ident)
			}

			return nil
		},
	}
}

// identCodec builds a runtime codec for one enumeration of a declaration
// file, using the variant identifiers as the Go values.
func identCodec(e *env, src *source, name string) (*codec.Codec[string], error) {
	if src.configPath == "" || name == "" {
		return nil, errors.New("--config and --enum are required")
	}

	p, err := src.load(nil, newLogger(e.stderr, src.verbose))
	if err != nil {
		return nil, report(e, p, err)
	}

	resolved, err := lookupEnum(p, name)
	if err != nil {
		return nil, err
	}

	decl := resolved.Decl
	enum := codec.Enum[string]{
		Name:       decl.Name,
		Directives: decl.Directives,
		Variants:   make([]codec.Variant[string], len(decl.Variants)),
		Tag: func(v string) int {
			if i, ok := resolved.Table.Variant(v); ok {
				return i
			}

			return -1
		},
	}

	for i, v := range decl.Variants {
		enum.Variants[i] = codec.Variant[string]{
			Ident:      v.Ident,
			Value:      resolved.Table.Variants[i].Ident,
			Directives: v.Directives,
			HasPayload: v.HasPayload,
		}
	}

	return codec.Build(enum)
}

func lookupEnum(p *plan.Plan, name string) (*plan.ResolvedEnum, error) {
	if resolved, ok := p.Enum(name); ok {
		return resolved, nil
	}

	if hint := match.Closest(name, p.Names(), 2); hint != "" {
		return nil, fmt.Errorf("no enumeration %q (did you mean %q?)", name, hint)
	}

	return nil, fmt.Errorf("no enumeration %q", name)
}

// report prints the diagnostics of a failed resolution and turns the
// failure into an exit code. Other errors pass through.
func report(e *env, p *plan.Plan, err error) error {
	if p == nil || !errors.Is(err, plan.ErrResolution) {
		return err
	}

	printDiagnostics(e.stderr, p.Diagnostics, false)

	if !p.Diagnostics.HasErrors() {
		fmt.Fprintln(e.stderr, err)
	}

	return &exitError{code: 1}
}

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics, infos bool) {
	for _, diag := range d.Errors {
		fmt.Fprintf(w, "error: %s\n", diag)
	}

	for _, diag := range d.Warnings {
		fmt.Fprintf(w, "warning: %s\n", diag)
	}

	if infos {
		for _, diag := range d.Infos {
			fmt.Fprintf(w, "info: %s\n", diag)
		}
	}
}
