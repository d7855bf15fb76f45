// Package casing provides the fixed catalogue of named string casing
// transforms used to derive the textual form of enum variants.
//
// Every transform except upper, lower and percent first splits its input
// into words (see Words) and then rejoins them in a specific style:
//
//	snake         hello_world
//	kebab         hello-world
//	pascal        HelloWorld   (alias: upper_camel)
//	lower_camel   helloWorld
//	shouty_snake  HELLO_WORLD
//	shouty_kebab  HELLO-WORLD
//	title         Hello World
//	train         Hello-World
//	upper         HELLOWORLD   (whole input, no splitting)
//	lower         helloworld   (whole input, no splitting)
//	percent       Hello%20World (non-alphanumeric bytes escaped)
//
// Transforms are addressed by name only through Lookup; callers hold a
// Transform value, never a function.
package casing
