package plan

import (
	"enumcodec/internal/config"
)

// ExportDeclarations converts the plan's declarations into a declaration
// file, so that enumerations found in Go source can be reviewed or used
// without the source.
func ExportDeclarations(plan *Plan) *config.File {
	f := &config.File{
		Version: config.CurrentVersion,
		Enums:   make([]config.EnumSpec, 0, len(plan.Enums)),
	}

	for _, e := range plan.Enums {
		f.Enums = append(f.Enums, config.FromDeclaration(e.Decl))
	}

	return f
}

// ExportDeclarationsYAML generates the declaration file as YAML.
func ExportDeclarationsYAML(plan *Plan) ([]byte, error) {
	return config.Marshal(ExportDeclarations(plan))
}
