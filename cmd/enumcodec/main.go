// Package main provides the CLI entrypoint for enumcodec.
//
// enumcodec compiles enumeration declarations into string codecs:
//   - Parses Go packages for enum types carrying //enumcodec: directives
//   - Reads the same declarations from YAML, TOML or JSONC files
//   - Reports configuration problems as diagnostics
//   - Generates String/Parse/MarshalText methods from the compiled tables
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Commands that already printed their own report return an
		// exitError; don't add a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return root(&env{stdout: stdout, stderr: stderr}).Execute(args)
}

// exitError signals a non-zero exit without an extra error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) ExitCode() int {
	return e.code
}
