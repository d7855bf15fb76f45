package diagnostic

import (
	"errors"

	"enumcodec/codec"
)

// Diagnostic codes.
const (
	CodeUnknownDirective   = "unknown_directive"
	CodeDirectiveScope     = "directive_scope"
	CodeDirectiveArity     = "directive_arity"
	CodeInvalidArgument    = "invalid_argument"
	CodeDuplicateDirective = "duplicate_directive"
	CodeUnknownCasing      = "unknown_casing"
	CodeInvalidDeclaration = "invalid_declaration"
	CodeDuplicateVariant   = "duplicate_variant"
	CodeUnknownDefault     = "unknown_default"
	CodeCollision          = "collision"
	CodeNotEnumerable      = "not_enumerable"
	CodeMissingTag         = "missing_tag"

	CodeSyntax        = "syntax"
	CodeDuplicateEnum = "duplicate_enum"
	CodeNoVariants    = "no_variants"
	CodeUnsupported   = "unsupported_version"
	CodeSkippedConst  = "skipped_const"
	CodeNameConflict  = "name_conflict"
	CodeCompiled      = "compiled"
	CodeInternal      = "internal"
)

var codeBySentinel = []struct {
	err  error
	code string
}{
	{codec.ErrUnknownDirective, CodeUnknownDirective},
	{codec.ErrDirectiveScope, CodeDirectiveScope},
	{codec.ErrDirectiveArity, CodeDirectiveArity},
	{codec.ErrInvalidArgument, CodeInvalidArgument},
	{codec.ErrDuplicateDirective, CodeDuplicateDirective},
	{codec.ErrUnknownCasing, CodeUnknownCasing},
	{codec.ErrInvalidDeclaration, CodeInvalidDeclaration},
	{codec.ErrDuplicateVariant, CodeDuplicateVariant},
	{codec.ErrUnknownDefault, CodeUnknownDefault},
	{codec.ErrCollision, CodeCollision},
	{codec.ErrNotEnumerable, CodeNotEnumerable},
	{codec.ErrMissingTag, CodeMissingTag},
}

// CodeOf returns the diagnostic code for err, or CodeInternal if err
// matches none of the codec sentinels.
func CodeOf(err error) string {
	for _, entry := range codeBySentinel {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}

	return CodeInternal
}

// FromError converts the configuration errors in err into error
// diagnostics. Errors that are not *codec.ConfigError become a single
// CodeInternal diagnostic each.
func FromError(err error) Diagnostics {
	var d Diagnostics
	if err == nil {
		return d
	}

	cfgErrs := codec.ConfigErrors(err)
	if len(cfgErrs) == 0 {
		d.AddError(CodeInternal, err.Error(), "", "")
		return d
	}

	for _, ce := range cfgErrs {
		d.Add(FromConfigError(ce))
	}

	return d
}

// FromConfigError converts a single configuration error.
func FromConfigError(ce *codec.ConfigError) Diagnostic {
	msg := ce.Err.Error()
	if ce.Directive != "" {
		msg = "directive " + ce.Directive + ": " + msg
	}

	if ce.Detail != "" {
		msg += ": " + ce.Detail
	}

	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeOf(ce.Err),
		Message:  msg,
		Enum:     ce.Enum,
		Variant:  ce.Variant,
	}
}
