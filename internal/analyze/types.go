package analyze

import (
	"go/token"

	"enumcodec/codec"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "enumcodec/examples/stage"
	Name    string // e.g., "Stage"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// EnumInfo describes an enumeration found in Go source.
type EnumInfo struct {
	ID         TypeID
	Basic      string // underlying basic type, e.g. "int" or "string"
	IsString   bool
	Pos        token.Position
	Directives []codec.Directive
	Variants   []ConstInfo
}

// ConstInfo describes one variant constant.
type ConstInfo struct {
	Name       string
	Value      string // exact constant value, e.g. "2" or "\"low\""
	Pos        token.Position
	Directives []codec.Directive
}

// Declaration returns the codec declaration of the enumeration. Constant
// enumerations never carry payload, so the ordered variant list is always
// requested.
func (e *EnumInfo) Declaration() codec.Declaration {
	decl := codec.Declaration{
		Name:       e.ID.Name,
		Directives: e.Directives,
		Variants:   make([]codec.VariantDecl, len(e.Variants)),
		Enumerate:  true,
	}

	for i, v := range e.Variants {
		decl.Variants[i] = codec.VariantDecl{Ident: v.Name, Directives: v.Directives}
	}

	return decl
}

// EnumGraph holds all enumerations from loaded packages.
type EnumGraph struct {
	// Enums maps TypeID to EnumInfo.
	Enums map[TypeID]*EnumInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewEnumGraph creates a new empty EnumGraph.
func NewEnumGraph() *EnumGraph {
	return &EnumGraph{
		Enums:    make(map[TypeID]*EnumInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetEnum returns the EnumInfo for a given TypeID, or nil if not found.
func (g *EnumGraph) GetEnum(id TypeID) *EnumInfo {
	return g.Enums[id]
}

// Ordered returns the enumerations of a package in declaration order.
func (g *EnumGraph) Ordered(pkgPath string) []*EnumInfo {
	pkg := g.Packages[pkgPath]
	if pkg == nil {
		return nil
	}

	out := make([]*EnumInfo, 0, len(pkg.Enums))
	for _, id := range pkg.Enums {
		out = append(out, g.Enums[id])
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory of the package sources
	Enums []TypeID // Enumerations defined in this package, in source order
}
