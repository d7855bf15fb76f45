package casing

import (
	"strings"
	"unicode"

	"enumcodec/internal/match"
)

// Words splits a base name into its constituent words.
// Boundaries:
//   - any rune that is not a letter or digit is a separator and is dropped
//   - lowercase or digit followed by uppercase: "helloWorld" -> hello, World
//   - the last uppercase rune of a run followed by lowercase starts a word:
//     "HTTPServer" -> HTTP, Server
//   - letter/digit transitions: "Version2Beta" -> Version, 2, Beta
func Words(s string) []string {
	if s == "" {
		return nil
	}

	var words []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}

			continue
		}

		if current.Len() > 0 && startsWord(runes, i) {
			words = append(words, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// startsWord reports whether runes[i] begins a new word. Callers guarantee
// i > 0 and runes[i-1] is not a separator.
func startsWord(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if unicode.IsDigit(r) != unicode.IsDigit(prev) {
		return true
	}

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && nextLower
}

func toUpperRune(r rune) rune {
	return unicode.ToUpper(r)
}

// suggest returns the closest catalogue name to an unknown one, or ""
// when nothing is close enough to be a plausible typo.
func suggest(name string) string {
	return match.Closest(strings.ToLower(name), Names(), 2)
}
