package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const declarations = `
version: "1"
enums:
  - name: Stage
    casing: kebab
    default_variant: Generation
    trim_prefix: Stage
    variants:
      - StageGeneration
      - ident: StageLoadTest
        alias: load
      - ident: StageLegacy
        reject: true
  - name: Color
    casing: shouty_snake
    variants: [Red, DarkBlue]
`

func writeDeclarations(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "enums.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestCheck(t *testing.T) {
	path := writeDeclarations(t, declarations)

	out, _, err := runCLI(t, "check", "--config", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 enumerations")
	assert.Contains(t, out, "info: [Stage] [compiled] 3 variants")
}

func TestCheck_Errors(t *testing.T) {
	path := writeDeclarations(t, `
enums:
  - name: Color
    casing: lower
    variants:
      - FooBar
      - ident: Foobar
        directives: ["alais x"]
`)

	_, errOut, err := runCLI(t, "check", "--config", path)
	require.Error(t, err)

	var coder interface{ ExitCode() int }
	require.ErrorAs(t, err, &coder)
	assert.Equal(t, 1, coder.ExitCode())
	assert.Contains(t, errOut, "error: [Color")
	assert.Contains(t, errOut, `did you mean "alias"?`)
}

func TestEncodeDecode(t *testing.T) {
	path := writeDeclarations(t, declarations)

	out, _, err := runCLI(t, "encode", "--config", path, "--enum", "Stage", "LoadTest", "StageLegacy")
	require.NoError(t, err)
	assert.Equal(t, "load-test\nlegacy\n", out)

	out, _, err = runCLI(t, "decode", "--config", path, "--enum", "Stage", "load", "legacy", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "LoadTest\nGeneration\nGeneration\n", out)

	out, _, err = runCLI(t, "decode", "--config", path, "--enum", "Color", "DARK_BLUE")
	require.NoError(t, err)
	assert.Equal(t, "DarkBlue\n", out)

	_, _, err = runCLI(t, "decode", "--config", path, "--enum", "Color", "DARKBLUE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "DARK_BLUE"?`)

	_, _, err = runCLI(t, "encode", "--config", path, "--enum", "Stage", "LoadTset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "LoadTest"?`)

	_, _, err = runCLI(t, "encode", "--config", path, "--enum", "Colour", "Red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no enumeration "Colour" (did you mean "Color"?)`)

	_, _, err = runCLI(t, "encode", "--enum", "Stage", "Red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config and --enum are required")
}

func TestTable(t *testing.T) {
	path := writeDeclarations(t, declarations)

	out, _, err := runCLI(t, "table", "--config", path, "--format", "json", "--enum", "Stage")
	require.NoError(t, err)

	var dump struct {
		Tables []struct {
			Enum     string `json:"enum"`
			Default  string `json:"default"`
			Variants []struct {
				Encoded    string   `json:"encoded"`
				DecodeKeys []string `json:"decode_keys"`
			} `json:"variants"`
		} `json:"tables"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	require.Len(t, dump.Tables, 1)
	assert.Equal(t, "Stage", dump.Tables[0].Enum)
	assert.Equal(t, "Generation", dump.Tables[0].Default)
	assert.Equal(t, []string{"load-test", "load"}, dump.Tables[0].Variants[1].DecodeKeys)
	assert.Empty(t, dump.Tables[0].Variants[2].DecodeKeys)

	for _, format := range []string{"yaml", "toml", "cbor", "msgpack"} {
		out, _, err := runCLI(t, "table", "--config", path, "-f", format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, out, format)
	}

	_, _, err = runCLI(t, "table", "--config", path, "--format", "jsno")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "json"?`)
}

func TestGen(t *testing.T) {
	out := t.TempDir()
	export := filepath.Join(out, "stage.yaml")

	_, _, err := runCLI(t, "gen", "--out-dir", out, "--msgpack", "--export", export, "enumcodec/examples/stage")
	require.NoError(t, err)

	src, err := os.ReadFile(filepath.Join(out, "stage_enumcodec.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "func ParseStage(s string) (Stage, error) {")
	assert.Contains(t, string(src), "EncodeMsgpack")

	decl, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Contains(t, string(decl), "name: Stage")
	assert.Contains(t, string(decl), "name: Priority")

	_, _, err = runCLI(t, "gen", "--config", export)
	require.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, "chek")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "chek" (did you mean "check"?)`)

	_, _, err = runCLI(t, "check", "--bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --bogus")

	_, errOut, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Commands:")
	assert.Contains(t, errOut, "decode")
}
