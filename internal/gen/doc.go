// Package gen provides deterministic Go code generation for enumeration
// codecs.
//
// Generation approach uses text/template + go/format. For every package
// with enumerations one file is written next to the sources, holding for
// each enumeration T:
//   - String, the encode direction, as a switch over the constants
//   - ParseT, the decode direction, as a switch over the accepted strings
//     with default-variant fallback or a *codec.DecodeError
//   - IsValid, TValues and GoString ("T.Ident")
//   - DefaultT when a default variant is configured
//   - MarshalText/UnmarshalText when serialization_hook is set, and
//     optionally EncodeMsgpack/DecodeMsgpack
package gen
