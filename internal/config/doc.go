// Package config loads enumeration declaration files.
//
// A declaration file describes enumerations without Go source: their
// variants and directives. It may be written in YAML, TOML or JSONC (JSON
// with comments and trailing commas); the syntax is chosen by file
// extension.
//
// Example (YAML):
//
//	version: "1"
//	enums:
//	  - name: Stage
//	    casing: kebab
//	    default_variant: Generation
//	    variants:
//	      - Generation
//	      - ident: LoadTest
//	        alias: [load, "load test"]
//	      - ident: Legacy
//	        reject: true
//	    directives:
//	      - serialization_hook
//
// Structured keys and the raw directives list are equivalent; raw entries
// use the same syntax as //enumcodec: source comments without the prefix.
package config
