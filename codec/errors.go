package codec

import (
	"errors"
	"fmt"
	"strings"

	"enumcodec/casing"
	"enumcodec/internal/match"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownDirective indicates a directive name outside the recognized set.
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrDirectiveScope indicates a directive attached to the wrong scope
	// (for example reject on the enumeration).
	ErrDirectiveScope = errors.New("directive not allowed in this scope")

	// ErrDirectiveArity indicates a directive with the wrong number of arguments.
	ErrDirectiveArity = errors.New("wrong number of directive arguments")

	// ErrInvalidArgument indicates a directive argument that is syntactically
	// present but unusable (an empty name).
	ErrInvalidArgument = errors.New("invalid directive argument")

	// ErrDuplicateDirective indicates a non-repeatable directive given twice
	// in the same scope.
	ErrDuplicateDirective = errors.New("duplicate directive")

	// ErrUnknownCasing indicates a casing name outside the catalogue.
	ErrUnknownCasing = casing.ErrUnknown

	// ErrInvalidDeclaration indicates a structurally broken declaration
	// (missing enumeration name, empty identifier).
	ErrInvalidDeclaration = errors.New("invalid declaration")

	// ErrDuplicateVariant indicates two variants with the same identifier
	// or, for Codec, the same Go value.
	ErrDuplicateVariant = errors.New("duplicate variant")

	// ErrUnknownDefault indicates default_variant naming no declared variant.
	ErrUnknownDefault = errors.New("default variant not declared")

	// ErrCollision indicates two different variants sharing a decode string.
	ErrCollision = errors.New("decode string collision")

	// ErrNotEnumerable indicates Enumerate was requested on an enumeration
	// with payload-bearing variants.
	ErrNotEnumerable = errors.New("enumeration has payload-bearing variants")

	// ErrMissingTag indicates payload-bearing variants bound to a Codec
	// without a Tag function to identify them.
	ErrMissingTag = errors.New("payload-bearing variants require a tag function")

	// ErrUnknownVariant indicates a decode input that matches no variant.
	ErrUnknownVariant = errors.New("unknown variant")
)

// ConfigError reports a declaration that cannot be compiled.
// It wraps a sentinel error with the enumeration, variant and directive
// that triggered it.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrCollision, etc.)
	Enum      string // Enumeration name
	Variant   string // Variant identifier, empty for enumeration scope
	Directive string // Directive name, if any
	Detail    string // Extra context
}

func (e *ConfigError) Error() string {
	var b strings.Builder

	b.WriteString("enum ")
	b.WriteString(e.Enum)

	if e.Variant != "" {
		b.WriteString(": variant ")
		b.WriteString(e.Variant)
	}

	if e.Directive != "" {
		b.WriteString(": directive ")
		b.WriteString(e.Directive)
	}

	b.WriteString(": ")
	b.WriteString(e.Err.Error())

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DecodeError reports an input that matches no decode entry of an
// enumeration without a default variant.
type DecodeError struct {
	Enum       string // Enumeration name
	Input      string // Raw input
	Suggestion string // Closest decode string, if one is near
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("invalid variant %q for enum %s", e.Input, e.Enum)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}

	return msg
}

// NewDecodeError returns the error for input s not matching any of keys,
// suggesting the closest key when one is near enough.
func NewDecodeError(enum, s string, keys []string) *DecodeError {
	return &DecodeError{
		Enum:       enum,
		Input:      s,
		Suggestion: match.Closest(s, keys, 3),
	}
}

func (e *DecodeError) Unwrap() error {
	return ErrUnknownVariant
}

// ConfigErrors flattens err into the ConfigErrors it carries, following
// errors.Join trees. Errors that are not ConfigErrors are dropped.
func ConfigErrors(err error) []*ConfigError {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*ConfigError
		for _, e := range joined.Unwrap() {
			out = append(out, ConfigErrors(e)...)
		}

		return out
	}

	var ce *ConfigError
	if errors.As(err, &ce) {
		return []*ConfigError{ce}
	}

	return nil
}

func newConfigError(sentinel error, enum, variant, directive, detail string) *ConfigError {
	return &ConfigError{
		Err:       sentinel,
		Enum:      enum,
		Variant:   variant,
		Directive: directive,
		Detail:    detail,
	}
}
