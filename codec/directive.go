package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Directive names.
const (
	DirectiveCasing            = "casing"
	DirectiveInputCasing       = "input_casing"
	DirectiveOutputCasing      = "output_casing"
	DirectiveDefaultVariant    = "default_variant"
	DirectiveSerializationHook = "serialization_hook"
	DirectiveTrimPrefix        = "trim_prefix"
	DirectiveReject            = "reject"
	DirectiveAlias             = "alias"
	DirectiveRename            = "rename"
	DirectiveInputName         = "input_name"
	DirectiveOutputName        = "output_name"
)

// Scope is the level a directive is attached to.
type Scope int

const (
	ScopeEnum Scope = 1 << iota
	ScopeVariant

	scopeBoth = ScopeEnum | ScopeVariant
)

// String returns a human-readable scope name.
func (s Scope) String() string {
	switch s {
	case ScopeEnum:
		return "enumeration"
	case ScopeVariant:
		return "variant"
	case scopeBoth:
		return "enumeration or variant"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

type directiveSpec struct {
	scope      Scope
	arity      int
	repeatable bool
}

var directiveSpecs = map[string]directiveSpec{
	DirectiveCasing:            {scope: scopeBoth, arity: 1},
	DirectiveInputCasing:       {scope: scopeBoth, arity: 1},
	DirectiveOutputCasing:      {scope: scopeBoth, arity: 1},
	DirectiveDefaultVariant:    {scope: ScopeEnum, arity: 1},
	DirectiveSerializationHook: {scope: ScopeEnum, arity: 0},
	DirectiveTrimPrefix:        {scope: ScopeEnum, arity: 1},
	DirectiveReject:            {scope: ScopeVariant, arity: 0},
	DirectiveAlias:             {scope: ScopeVariant, arity: 1, repeatable: true},
	DirectiveRename:            {scope: ScopeVariant, arity: 1},
	DirectiveInputName:         {scope: ScopeVariant, arity: 1},
	DirectiveOutputName:        {scope: ScopeVariant, arity: 1},
}

// Directive is one configuration instruction attached to an enumeration
// or to a single variant.
type Directive struct {
	Name string   `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty" msgpack:"args,omitempty"`
}

// D is shorthand for constructing a Directive.
func D(name string, args ...string) Directive {
	return Directive{Name: name, Args: args}
}

// Arg returns the first argument or "" when there is none.
func (d Directive) Arg() string {
	if len(d.Args) == 0 {
		return ""
	}

	return d.Args[0]
}

// String renders the directive in comment syntax without the prefix,
// quoting arguments that would not survive a round trip through
// ParseDirective.
func (d Directive) String() string {
	parts := make([]string, 0, len(d.Args)+1)
	parts = append(parts, d.Name)

	for _, a := range d.Args {
		if a == "" || strings.IndexFunc(a, unicode.IsSpace) >= 0 || strings.HasPrefix(a, `"`) || strings.HasPrefix(a, "`") {
			a = strconv.Quote(a)
		}

		parts = append(parts, a)
	}

	return strings.Join(parts, " ")
}

// IsKnownDirective reports whether name is a recognized directive.
func IsKnownDirective(name string) bool {
	_, ok := directiveSpecs[name]
	return ok
}

// KnownDirectives returns the recognized directive names allowed in scope.
func KnownDirectives(scope Scope) []string {
	var names []string

	for name, spec := range directiveSpecs {
		if spec.scope&scope != 0 {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// ParseDirective parses the text following a directive prefix, e.g.
// `rename "Load Test"` or `casing kebab`. Arguments are separated by
// white space; an argument may be a Go double-quoted or back-quoted string.
// Only syntax is checked here; names, scopes and arity are checked when
// the declaration is compiled.
func ParseDirective(text string) (Directive, error) {
	fields, err := splitArgs(strings.TrimSpace(text))
	if err != nil {
		return Directive{}, fmt.Errorf("parsing directive %q: %w", text, err)
	}

	if len(fields) == 0 {
		return Directive{}, fmt.Errorf("parsing directive %q: missing name", text)
	}

	d := Directive{Name: fields[0]}
	if len(fields) > 1 {
		d.Args = fields[1:]
	}

	return d, nil
}

func splitArgs(s string) ([]string, error) {
	var out []string

	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return out, nil
		}

		switch s[0] {
		case '"', '`':
			quoted, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("unterminated quoted argument")
			}

			unquoted, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, err
			}

			out = append(out, unquoted)
			s = s[len(quoted):]

			if s != "" && !unicode.IsSpace(rune(s[0])) {
				return nil, fmt.Errorf("missing space after quoted argument")
			}

		default:
			end := strings.IndexFunc(s, unicode.IsSpace)
			if end < 0 {
				end = len(s)
			}

			out = append(out, s[:end])
			s = s[end:]
		}
	}
}
