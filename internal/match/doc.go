// Package match provides edit-distance scoring used to turn unknown
// names into "did you mean" hints.
//
// Key functions:
//   - Levenshtein: edit distance between two strings, rune based
//   - Closest: best candidate within a distance budget
package match
