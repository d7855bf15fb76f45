package codec

import (
	"fmt"

	"enumcodec/casing"
	"enumcodec/internal/match"
)

// Direction selects which side of the codec a resolution is for.
type Direction int

const (
	// Decode derives the strings accepted when parsing (input).
	Decode Direction = iota
	// Encode derives the string produced when rendering (output).
	Encode
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	if d == Encode {
		return "encode"
	}

	return "decode"
}

// Layer holds the casing directives of one scope. casing.Identity means
// "not set": identity cannot be requested by name, so the zero value is
// free to mark absence.
type Layer struct {
	Input  casing.Transform
	Output casing.Transform
	Casing casing.Transform
}

// pick returns the layer's transform for dir: the direction-specific
// directive first, then the combined one.
func (l Layer) pick(dir Direction) casing.Transform {
	specific := l.Input
	if dir == Encode {
		specific = l.Output
	}

	if specific != casing.Identity {
		return specific
	}

	return l.Casing
}

// ResolveCasing selects the transform for one variant in one direction.
// Precedence, highest first: variant direction-specific, variant casing,
// enumeration direction-specific, enumeration casing, identity.
func ResolveCasing(enum, variant Layer, dir Direction) casing.Transform {
	if t := variant.pick(dir); t != casing.Identity {
		return t
	}

	return enum.pick(dir)
}

// Naming holds the name overrides of one variant. Empty means "not set".
type Naming struct {
	Rename     string
	InputName  string
	OutputName string
}

// BaseName selects the name fed into casing for dir.
// Encode: output_name > rename > identifier.
// Decode: input_name > rename > identifier.
func BaseName(ident string, n Naming, dir Direction) string {
	specific := n.InputName
	if dir == Encode {
		specific = n.OutputName
	}

	switch {
	case specific != "":
		return specific
	case n.Rename != "":
		return n.Rename
	default:
		return ident
	}
}

// enumSettings is the validated form of enumeration-scope directives.
type enumSettings struct {
	layer          Layer
	defaultVariant string
	hasDefault     bool
	hook           bool
	trimPrefix     string
}

// variantSettings is the validated form of variant-scope directives.
type variantSettings struct {
	layer   Layer
	naming  Naming
	reject  bool
	aliases []string
}

// directiveSink receives validated directives of one scope and reports
// problems as ConfigErrors.
type directiveSink struct {
	enum    string
	variant string
	scope   Scope
	seen    map[string]bool
	errs    []error
}

func newDirectiveSink(enum, variant string, scope Scope) *directiveSink {
	return &directiveSink{enum: enum, variant: variant, scope: scope, seen: make(map[string]bool)}
}

func (s *directiveSink) fail(sentinel error, directive, detail string) {
	s.errs = append(s.errs, newConfigError(sentinel, s.enum, s.variant, directive, detail))
}

// accept validates name, scope, arity and repetition. It reports whether
// the directive may be applied.
func (s *directiveSink) accept(d Directive) bool {
	spec, ok := directiveSpecs[d.Name]
	if !ok {
		var detail string
		if hint := match.Closest(d.Name, KnownDirectives(s.scope), 2); hint != "" {
			detail = fmt.Sprintf("did you mean %q?", hint)
		}

		s.fail(ErrUnknownDirective, d.Name, detail)

		return false
	}

	if spec.scope&s.scope == 0 {
		s.fail(ErrDirectiveScope, d.Name, "allowed on "+spec.scope.String())
		return false
	}

	if len(d.Args) != spec.arity {
		s.fail(ErrDirectiveArity, d.Name, fmt.Sprintf("expected %d, got %d", spec.arity, len(d.Args)))
		return false
	}

	if s.seen[d.Name] && !spec.repeatable {
		s.fail(ErrDuplicateDirective, d.Name, "")
		return false
	}

	s.seen[d.Name] = true

	return true
}

func (s *directiveSink) transform(d Directive) casing.Transform {
	t, err := casing.Lookup(d.Arg())
	if err != nil {
		s.fail(ErrUnknownCasing, d.Name, err.Error())
		return casing.Identity
	}

	return t
}

func (s *directiveSink) name(d Directive) string {
	if d.Arg() == "" {
		s.fail(ErrInvalidArgument, d.Name, "empty name")
	}

	return d.Arg()
}

// applyCasing handles the three casing directives shared by both scopes.
func (s *directiveSink) applyCasing(l *Layer, d Directive) bool {
	switch d.Name {
	case DirectiveCasing:
		l.Casing = s.transform(d)
	case DirectiveInputCasing:
		l.Input = s.transform(d)
	case DirectiveOutputCasing:
		l.Output = s.transform(d)
	default:
		return false
	}

	return true
}

func parseEnumDirectives(enum string, directives []Directive) (enumSettings, []error) {
	var out enumSettings

	sink := newDirectiveSink(enum, "", ScopeEnum)
	for _, d := range directives {
		if !sink.accept(d) || sink.applyCasing(&out.layer, d) {
			continue
		}

		switch d.Name {
		case DirectiveDefaultVariant:
			out.defaultVariant = sink.name(d)
			out.hasDefault = out.defaultVariant != ""
		case DirectiveSerializationHook:
			out.hook = true
		case DirectiveTrimPrefix:
			out.trimPrefix = sink.name(d)
		}
	}

	return out, sink.errs
}

func parseVariantDirectives(enum, variant string, directives []Directive) (variantSettings, []error) {
	var out variantSettings

	sink := newDirectiveSink(enum, variant, ScopeVariant)
	for _, d := range directives {
		if !sink.accept(d) || sink.applyCasing(&out.layer, d) {
			continue
		}

		switch d.Name {
		case DirectiveReject:
			out.reject = true
		case DirectiveAlias:
			if alias := sink.name(d); alias != "" {
				out.aliases = append(out.aliases, alias)
			}
		case DirectiveRename:
			out.naming.Rename = sink.name(d)
		case DirectiveInputName:
			out.naming.InputName = sink.name(d)
		case DirectiveOutputName:
			out.naming.OutputName = sink.name(d)
		}
	}

	return out, sink.errs
}
