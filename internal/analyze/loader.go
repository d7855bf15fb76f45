package analyze

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"enumcodec/codec"
	"enumcodec/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DirectivePrefix introduces a directive comment.
const DirectivePrefix = "//enumcodec:"

// generatedPrefix starts the header of files written by the generator.
const generatedPrefix = "// Code generated by enumcodec."

// Analyzer loads Go packages and extracts enumerations.
type Analyzer struct {
	graph *EnumGraph
	// typeNames restricts extraction to the named types. When empty, every
	// type carrying at least one directive is an enumeration.
	typeNames map[string]bool
	diags     diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer. If typeNames is non-empty only those
// types are extracted, with or without directives.
func NewAnalyzer(typeNames ...string) *Analyzer {
	a := &Analyzer{
		graph:     NewEnumGraph(),
		typeNames: make(map[string]bool, len(typeNames)),
	}

	for _, name := range typeNames {
		a.typeNames[name] = true
	}

	return a
}

// LoadPackages loads the specified packages and extracts their enumerations.
// Patterns are standard Go package patterns (e.g., "./examples/stage").
// Problems with individual declarations are reported through Diagnostics;
// the error is reserved for packages that fail to load.
func (a *Analyzer) LoadPackages(patterns ...string) (*EnumGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	a.checkRequested()

	return a.graph, nil
}

// Graph returns the current enumeration graph.
func (a *Analyzer) Graph() *EnumGraph {
	return a.graph
}

// Diagnostics returns the problems found while extracting enumerations.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// processPackage extracts enumerations from a loaded package: types first,
// then the constants of those types.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	enums := make(map[*types.TypeName]*EnumInfo)
	values := make(map[*EnumInfo][]constant.Value)
	generated := generatedFiles(pkg)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				e := a.analyzeType(pkg, gd, ts, generated)
				if e == nil {
					continue
				}

				enums[pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)] = e
				pkgInfo.Enums = append(pkgInfo.Enums, e.ID)
				a.graph.Enums[e.ID] = e
			}
		}
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}

			for _, spec := range gd.Specs {
				a.analyzeConsts(pkg, gd, spec.(*ast.ValueSpec), enums, values)
			}
		}
	}

	for _, id := range pkgInfo.Enums {
		if e := a.graph.Enums[id]; len(e.Variants) == 0 {
			a.diags.Add(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticWarning,
				Code:     diagnostic.CodeNoVariants,
				Message:  "no constants of this type",
				Enum:     e.ID.Name,
				Pos:      e.Pos.String(),
			})
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeType returns the enumeration declared by ts, or nil if ts is not
// selected.
func (a *Analyzer) analyzeType(
	pkg *packages.Package,
	gd *ast.GenDecl,
	ts *ast.TypeSpec,
	generated map[string]bool,
) *EnumInfo {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || ts.Assign.IsValid() || ts.TypeParams != nil {
		return nil
	}

	doc := ts.Doc
	if doc == nil && len(gd.Specs) == 1 {
		doc = gd.Doc
	}

	if !a.selected(obj.Name(), doc, ts.Comment) {
		return nil
	}

	pos := pkg.Fset.Position(ts.Pos())

	basic, ok := obj.Type().Underlying().(*types.Basic)
	if !ok || basic.Info()&(types.IsInteger|types.IsString) == 0 {
		a.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeInvalidDeclaration,
			Message:  fmt.Sprintf("underlying type %s is not an integer or string type", obj.Type().Underlying()),
			Enum:     obj.Name(),
			Pos:      pos.String(),
		})

		return nil
	}

	directives := a.directives(pkg, obj.Name(), "", doc, ts.Comment)

	if taken := declaredElsewhere(pkg, obj, directives, generated); len(taken) > 0 {
		a.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeNameConflict,
			Message:  fmt.Sprintf("%s already declared; generated code would not compile", strings.Join(taken, ", ")),
			Enum:     obj.Name(),
			Pos:      pos.String(),
		})

		return nil
	}

	return &EnumInfo{
		ID:         TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		Basic:      basic.Name(),
		IsString:   basic.Info()&types.IsString != 0,
		Pos:        pos,
		Directives: directives,
	}
}

// analyzeConsts adds the constants of vs to their enumerations. Blank
// constants and constants repeating an earlier value are skipped: Go cannot
// tell them apart from the variant they duplicate.
func (a *Analyzer) analyzeConsts(
	pkg *packages.Package,
	gd *ast.GenDecl,
	vs *ast.ValueSpec,
	enums map[*types.TypeName]*EnumInfo,
	values map[*EnumInfo][]constant.Value,
) {
	doc := vs.Doc
	if doc == nil && len(gd.Specs) == 1 {
		doc = gd.Doc
	}

	for _, name := range vs.Names {
		e := a.enumOf(pkg, name, enums)
		if e == nil {
			continue
		}

		pos := pkg.Fset.Position(name.Pos())

		if name.Name == "_" {
			a.skip(e, name.Name, pos, "blank constant")
			continue
		}

		c := pkg.TypesInfo.Defs[name].(*types.Const)
		val := c.Val()

		if prev := indexOfValue(values[e], val); prev >= 0 {
			a.skip(e, name.Name, pos, "same value as "+e.Variants[prev].Name)
			continue
		}

		directives := a.directives(pkg, e.ID.Name, name.Name, doc, vs.Comment)

		e.Variants = append(e.Variants, ConstInfo{
			Name:       name.Name,
			Value:      val.ExactString(),
			Pos:        pos,
			Directives: directives,
		})
		values[e] = append(values[e], val)
	}
}

// generatedFiles returns the files of pkg previously written by the
// generator. Their declarations are replaced on regeneration.
func generatedFiles(pkg *packages.Package) map[string]bool {
	out := make(map[string]bool)

	for _, file := range pkg.Syntax {
		if len(file.Comments) == 0 || file.Comments[0].Pos() > file.Package {
			continue
		}

		if strings.HasPrefix(file.Comments[0].List[0].Text, generatedPrefix) {
			out[pkg.Fset.File(file.Pos()).Name()] = true
		}
	}

	return out
}

// declaredElsewhere lists the methods and functions the generator emits
// for obj that the package already declares outside generated files.
func declaredElsewhere(
	pkg *packages.Package,
	obj *types.TypeName,
	directives []codec.Directive,
	generated map[string]bool,
) []string {
	name := obj.Name()
	methods := []string{"String", "IsValid", "GoString"}
	funcs := []string{"Parse" + name, name + "Values"}

	for _, d := range directives {
		switch d.Name {
		case codec.DirectiveSerializationHook:
			methods = append(methods, "MarshalText", "UnmarshalText")
		case codec.DirectiveDefaultVariant:
			funcs = append(funcs, "Default"+name)
		}
	}

	outside := func(o types.Object) bool {
		return !generated[pkg.Fset.Position(o.Pos()).Filename]
	}

	var taken []string

	mset := types.NewMethodSet(types.NewPointer(obj.Type()))
	for _, m := range methods {
		if sel := mset.Lookup(pkg.Types, m); sel != nil && outside(sel.Obj()) {
			taken = append(taken, "method "+m)
		}
	}

	for _, f := range funcs {
		if o := pkg.Types.Scope().Lookup(f); o != nil && outside(o) {
			taken = append(taken, f)
		}
	}

	return taken
}

// enumOf returns the enumeration the constant name belongs to.
func (a *Analyzer) enumOf(pkg *packages.Package, name *ast.Ident, enums map[*types.TypeName]*EnumInfo) *EnumInfo {
	var typ types.Type

	if c, ok := pkg.TypesInfo.Defs[name].(*types.Const); ok {
		typ = c.Type()
	} else if tv, ok := pkg.TypesInfo.Types[name]; ok {
		typ = tv.Type
	}

	named, ok := typ.(*types.Named)
	if !ok {
		return nil
	}

	return enums[named.Obj()]
}

func (a *Analyzer) skip(e *EnumInfo, name string, pos token.Position, why string) {
	a.diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     diagnostic.CodeSkippedConst,
		Message:  "constant skipped: " + why,
		Enum:     e.ID.Name,
		Variant:  name,
		Pos:      pos.String(),
	})
}

// selected reports whether the type name is extracted: it was requested
// by name, or no names were requested and it carries a directive.
func (a *Analyzer) selected(name string, groups ...*ast.CommentGroup) bool {
	if len(a.typeNames) > 0 {
		return a.typeNames[name]
	}

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if strings.HasPrefix(c.Text, DirectivePrefix) {
				return true
			}
		}
	}

	return false
}

// directives parses the directive comments in groups.
func (a *Analyzer) directives(
	pkg *packages.Package,
	enum, variant string,
	groups ...*ast.CommentGroup,
) []codec.Directive {
	var out []codec.Directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			text, ok := strings.CutPrefix(c.Text, DirectivePrefix)
			if !ok {
				continue
			}

			d, err := codec.ParseDirective(text)
			if err != nil {
				a.diags.Add(diagnostic.Diagnostic{
					Severity: diagnostic.DiagnosticError,
					Code:     diagnostic.CodeSyntax,
					Message:  err.Error(),
					Enum:     enum,
					Variant:  variant,
					Pos:      pkg.Fset.Position(c.Pos()).String(),
				})

				continue
			}

			out = append(out, d)
		}
	}

	return out
}

// checkRequested reports explicitly requested types that were not found.
func (a *Analyzer) checkRequested() {
	found := make(map[string]bool, len(a.graph.Enums))
	for id := range a.graph.Enums {
		found[id.Name] = true
	}

	for _, d := range a.diags.Errors {
		found[d.Enum] = true
	}

	var missing []string

	for name := range a.typeNames {
		if !found[name] {
			missing = append(missing, name)
		}
	}

	sort.Strings(missing)

	for _, name := range missing {
		a.diags.AddError(diagnostic.CodeInvalidDeclaration, "type not found or not an enumeration", name, "")
	}
}

func indexOfValue(values []constant.Value, v constant.Value) int {
	for i, prev := range values {
		if constant.Compare(prev, token.EQL, v) {
			return i
		}
	}

	return -1
}
