package config

import (
	"fmt"

	"enumcodec/codec"
	"enumcodec/internal/diagnostic"
)

// Declarations converts the file into codec declarations. Structured keys
// become directives in a fixed order, followed by the raw directives list.
// Problems that codec.Compile cannot see (syntax of raw directives,
// duplicate enumeration names, file version) are reported here.
func (f *File) Declarations() ([]codec.Declaration, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	if f.Version != CurrentVersion {
		diags.AddError(diagnostic.CodeUnsupported,
			fmt.Sprintf("unsupported declaration file version %q (want %q)", f.Version, CurrentVersion), "", "")

		return nil, diags
	}

	decls := make([]codec.Declaration, 0, len(f.Enums))
	seen := make(map[string]bool, len(f.Enums))

	for i := range f.Enums {
		spec := &f.Enums[i]

		if spec.Name != "" && seen[spec.Name] {
			diags.AddError(diagnostic.CodeDuplicateEnum, "enumeration declared more than once", spec.Name, "")
			continue
		}

		seen[spec.Name] = true

		if len(spec.Variants) == 0 {
			diags.AddWarning(diagnostic.CodeNoVariants, "enumeration has no variants", spec.Name, "")
		}

		decls = append(decls, spec.declaration(&diags))
	}

	return decls, diags
}

func (e *EnumSpec) declaration(diags *diagnostic.Diagnostics) codec.Declaration {
	decl := codec.Declaration{
		Name:      e.Name,
		Enumerate: e.Enumerate,
		Variants:  make([]codec.VariantDecl, len(e.Variants)),
	}

	b := directiveBuilder{enum: e.Name, diags: diags}
	b.arg(codec.DirectiveCasing, e.Casing)
	b.arg(codec.DirectiveInputCasing, e.InputCasing)
	b.arg(codec.DirectiveOutputCasing, e.OutputCasing)
	b.arg(codec.DirectiveDefaultVariant, e.DefaultVariant)
	b.arg(codec.DirectiveTrimPrefix, e.TrimPrefix)
	b.flag(codec.DirectiveSerializationHook, e.SerializationHook)
	b.raw(e.Directives)
	decl.Directives = b.out

	for i, v := range e.Variants {
		vb := directiveBuilder{enum: e.Name, variant: v.Ident, diags: diags}
		vb.arg(codec.DirectiveRename, v.Rename)
		vb.arg(codec.DirectiveInputName, v.InputName)
		vb.arg(codec.DirectiveOutputName, v.OutputName)
		vb.arg(codec.DirectiveCasing, v.Casing)
		vb.arg(codec.DirectiveInputCasing, v.InputCasing)
		vb.arg(codec.DirectiveOutputCasing, v.OutputCasing)
		vb.flag(codec.DirectiveReject, v.Reject)

		for _, alias := range v.Alias {
			vb.out = append(vb.out, codec.D(codec.DirectiveAlias, alias))
		}

		vb.raw(v.Directives)

		decl.Variants[i] = codec.VariantDecl{
			Ident:      v.Ident,
			Directives: vb.out,
			HasPayload: v.Payload,
		}
	}

	return decl
}

type directiveBuilder struct {
	enum    string
	variant string
	diags   *diagnostic.Diagnostics
	out     []codec.Directive
}

func (b *directiveBuilder) arg(name, value string) {
	if value != "" {
		b.out = append(b.out, codec.D(name, value))
	}
}

func (b *directiveBuilder) flag(name string, set bool) {
	if set {
		b.out = append(b.out, codec.D(name))
	}
}

func (b *directiveBuilder) raw(lines []string) {
	for _, line := range lines {
		d, err := codec.ParseDirective(line)
		if err != nil {
			b.diags.AddError(diagnostic.CodeSyntax, err.Error(), b.enum, b.variant)
			continue
		}

		b.out = append(b.out, d)
	}
}

// FromDeclaration is the inverse of Declarations for one enumeration:
// directives with a structured key are lifted into it, everything else
// stays in the raw list.
func FromDeclaration(decl codec.Declaration) EnumSpec {
	spec := EnumSpec{
		Name:      decl.Name,
		Enumerate: decl.Enumerate,
		Variants:  make([]VariantSpec, len(decl.Variants)),
	}

	for _, d := range decl.Directives {
		switch {
		case lift(d, codec.DirectiveCasing, &spec.Casing):
		case lift(d, codec.DirectiveInputCasing, &spec.InputCasing):
		case lift(d, codec.DirectiveOutputCasing, &spec.OutputCasing):
		case lift(d, codec.DirectiveDefaultVariant, &spec.DefaultVariant):
		case lift(d, codec.DirectiveTrimPrefix, &spec.TrimPrefix):
		case d.Name == codec.DirectiveSerializationHook && len(d.Args) == 0 && !spec.SerializationHook:
			spec.SerializationHook = true
		default:
			spec.Directives = append(spec.Directives, d.String())
		}
	}

	for i, v := range decl.Variants {
		vs := VariantSpec{Ident: v.Ident, Payload: v.HasPayload}

		for _, d := range v.Directives {
			switch {
			case lift(d, codec.DirectiveRename, &vs.Rename):
			case lift(d, codec.DirectiveInputName, &vs.InputName):
			case lift(d, codec.DirectiveOutputName, &vs.OutputName):
			case lift(d, codec.DirectiveCasing, &vs.Casing):
			case lift(d, codec.DirectiveInputCasing, &vs.InputCasing):
			case lift(d, codec.DirectiveOutputCasing, &vs.OutputCasing):
			case d.Name == codec.DirectiveReject && len(d.Args) == 0 && !vs.Reject:
				vs.Reject = true
			case d.Name == codec.DirectiveAlias && len(d.Args) == 1:
				vs.Alias = append(vs.Alias, d.Args[0])
			default:
				vs.Directives = append(vs.Directives, d.String())
			}
		}

		spec.Variants[i] = vs
	}

	return spec
}

// lift stores the single argument of d in dst if d is the named directive
// and dst is still unset.
func lift(d codec.Directive, name string, dst *string) bool {
	if d.Name != name || len(d.Args) != 1 || d.Args[0] == "" || *dst != "" {
		return false
	}

	*dst = d.Args[0]

	return true
}
