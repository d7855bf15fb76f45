// Package diagnostic provides structured errors, warnings, and notes
// reported while loading and compiling enumeration declarations.
//
// Every diagnostic carries a stable code (see the Code constants) so that
// tooling and tests can match on the kind of problem rather than on the
// message text. FromError folds the *codec.ConfigError values returned by
// codec.Compile into diagnostics.
package diagnostic
