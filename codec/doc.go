// Package codec derives and serves the bidirectional mapping between the
// variants of a closed enumeration and their textual forms.
//
// # Pipeline
//
// A Declaration (enumeration name, enumeration-scope directives and the
// ordered variants with their own directives) is compiled once into an
// immutable Table:
//
//  1. Directives are validated (name, scope, arity, casing names).
//  2. For every variant and direction the base name is chosen
//     (output_name / input_name > rename > identifier).
//  3. For every variant and direction the casing transform is chosen,
//     highest precedence first:
//     variant input_casing/output_casing, variant casing,
//     enumeration input_casing/output_casing, enumeration casing, identity.
//  4. The encode table gets one entry per variant, rejected ones included.
//     The decode table gets the cased decode name plus every alias of each
//     variant that is not rejected.
//  5. Decode keys shared by two different variants fail compilation.
//
// Codec[E] binds a Table to concrete Go values. Encode is total; Decode
// returns the matching variant, the configured default variant, or a
// *DecodeError.
//
// # Directives
//
//	directive           scope        args
//	casing              both         1  (catalogue name, see package casing)
//	input_casing        both         1
//	output_casing       both         1
//	default_variant     enumeration  1
//	serialization_hook  enumeration  0
//	trim_prefix         enumeration  1
//	reject              variant      0
//	alias               variant      1  (repeatable)
//	rename              variant      1
//	input_name          variant      1
//	output_name         variant      1
//
// # Concurrency
//
// Tables and codecs are immutable after construction and safe for
// concurrent use without locking. Build them once, typically into a
// package-level variable with MustBuild.
package codec
