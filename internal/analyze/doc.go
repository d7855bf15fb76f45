// Package analyze provides package loading and enumeration extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// enumerations in Go source: a defined type with an integer or string
// underlying type, plus the constants of that type declared in the same
// package. Directives are read from //enumcodec: comments attached to the
// type declaration (enumeration scope) and to each constant (variant
// scope):
//
//	// Stage is a pipeline step.
//	//
//	//enumcodec:casing kebab
//	type Stage int
//
//	const (
//		Generation Stage = iota
//		//enumcodec:alias "load test"
//		LoadTest
//	)
//
// Key types:
//   - TypeID: package import path + type name
//   - EnumInfo: one enumeration with its directives and variants
//   - ConstInfo: one variant constant
package analyze
