package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"enumcodec/codec"
	"enumcodec/internal/analyze"
	"enumcodec/internal/diagnostic"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// StrictMode fails on warnings as well as errors.
	StrictMode bool
	// Logger receives progress at debug level. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{}
}

// ErrResolution is returned when the plan carries error diagnostics.
var ErrResolution = errors.New("resolution failed")

// Resolver performs the resolution pipeline.
type Resolver struct {
	config ResolutionConfig
	log    *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(config ResolutionConfig) *Resolver {
	log := config.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Resolver{config: config, log: log}
}

// ResolveGraph compiles every enumeration in graph. front carries the
// diagnostics of the analysis step and is merged into the plan.
func (r *Resolver) ResolveGraph(graph *analyze.EnumGraph, front diagnostic.Diagnostics) (*Plan, error) {
	plan := &Plan{Graph: graph, Diagnostics: front}

	if graph == nil {
		return nil, errors.New("enumeration graph is required")
	}

	paths := make([]string, 0, len(graph.Packages))
	for path := range graph.Packages {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	for _, path := range paths {
		pkg := graph.Packages[path]

		for _, e := range graph.Ordered(path) {
			resolved := r.resolve(e.Declaration(), e.Pos.String(), &plan.Diagnostics)
			resolved.Source = e
			resolved.Package = pkg
			plan.Enums = append(plan.Enums, resolved)
		}
	}

	return plan, r.check(plan)
}

// ResolveDeclarations compiles declarations loaded from a file.
func (r *Resolver) ResolveDeclarations(decls []codec.Declaration, front diagnostic.Diagnostics) (*Plan, error) {
	plan := &Plan{Diagnostics: front}

	for _, decl := range decls {
		plan.Enums = append(plan.Enums, r.resolve(decl, "", &plan.Diagnostics))
	}

	return plan, r.check(plan)
}

func (r *Resolver) resolve(decl codec.Declaration, pos string, diags *diagnostic.Diagnostics) ResolvedEnum {
	resolved := ResolvedEnum{Decl: decl}

	table, err := codec.Compile(decl)
	if err != nil {
		compiled := diagnostic.FromError(err)
		for i := range compiled.Errors {
			d := &compiled.Errors[i]
			if d.Pos == "" {
				d.Pos = pos
			}
		}

		r.log.Debug("enumeration failed to compile", "enum", decl.Name, "errors", len(compiled.Errors))
		diags.Merge(compiled)

		return resolved
	}

	resolved.Table = table

	r.log.Debug("enumeration compiled",
		"enum", decl.Name,
		"variants", table.Len(),
		"default", table.Default,
		"hook", table.SerializationHook,
	)
	diags.AddInfo(diagnostic.CodeCompiled, fmt.Sprintf("%d variants", table.Len()), decl.Name, "")

	return resolved
}

// check turns error diagnostics (and warnings in strict mode) into an
// error. The plan is returned either way.
func (r *Resolver) check(plan *Plan) error {
	if plan.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %w", ErrResolution, plan.Diagnostics.Error())
	}

	if r.config.StrictMode && len(plan.Diagnostics.Warnings) > 0 {
		return fmt.Errorf("%w: strict mode: %d warnings", ErrResolution, len(plan.Diagnostics.Warnings))
	}

	return nil
}
