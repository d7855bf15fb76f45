package plan

import (
	"enumcodec/codec"
	"enumcodec/internal/analyze"
	"enumcodec/internal/diagnostic"
)

// Plan is the final output of the resolution pipeline.
type Plan struct {
	// Enums in resolution order: by package path, then source order.
	Enums []ResolvedEnum
	// Graph holds the analyzed packages, nil for declaration files.
	Graph *analyze.EnumGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// ResolvedEnum is one enumeration with its compiled table.
type ResolvedEnum struct {
	Decl codec.Declaration
	// Table is nil when the declaration failed to compile.
	Table *codec.Table
	// Source is the analyzed enumeration, nil for declaration files.
	Source *analyze.EnumInfo
	// Package is the package declaring Source, nil for declaration files.
	Package *analyze.PackageInfo
}

// OK reports whether the enumeration compiled.
func (e *ResolvedEnum) OK() bool {
	return e.Table != nil
}

// Enum returns the resolved enumeration with the given name.
func (p *Plan) Enum(name string) (*ResolvedEnum, bool) {
	for i := range p.Enums {
		if p.Enums[i].Decl.Name == name {
			return &p.Enums[i], true
		}
	}

	return nil, false
}

// Names returns the enumeration names in resolution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Enums))
	for i := range p.Enums {
		names[i] = p.Enums[i].Decl.Name
	}

	return names
}

// ByPackage groups compiled enumerations by package directory, preserving
// order. Enumerations without a package are omitted.
func (p *Plan) ByPackage() map[*analyze.PackageInfo][]*ResolvedEnum {
	out := make(map[*analyze.PackageInfo][]*ResolvedEnum)

	for i := range p.Enums {
		e := &p.Enums[i]
		if e.Package == nil || !e.OK() {
			continue
		}

		out[e.Package] = append(out[e.Package], e)
	}

	return out
}
