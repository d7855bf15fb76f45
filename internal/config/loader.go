package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Syntax is the surface syntax of a declaration file.
type Syntax int

//go:generate go tool stringer -type=Syntax -linecomment -output=syntax_string.go

const (
	SyntaxYAML  Syntax = iota // yaml
	SyntaxTOML                // toml
	SyntaxJSONC               // jsonc
)

// ErrUnknownSyntax is returned for file extensions without a known syntax.
var ErrUnknownSyntax = errors.New("unknown declaration file syntax")

// SyntaxOf picks the syntax from the file extension.
func SyntaxOf(path string) (Syntax, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SyntaxYAML, nil
	case ".toml":
		return SyntaxTOML, nil
	case ".json", ".jsonc":
		return SyntaxJSONC, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownSyntax, path)
	}
}

// LoadFile loads and parses a declaration file from the given path.
func LoadFile(path string) (*File, error) {
	syntax, err := SyntaxOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data, syntax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses data written in the given syntax. Unknown keys are errors.
func Parse(data []byte, syntax Syntax) (*File, error) {
	var (
		f   File
		err error
	)

	switch syntax {
	case SyntaxYAML:
		err = parseYAML(data, &f)
	case SyntaxTOML:
		err = parseTOML(data, &f)
	case SyntaxJSONC:
		err = parseJSON(jsonc.ToJSON(data), &f)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSyntax, syntax)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse %s declarations: %w", syntax, err)
	}

	applyDefaults(&f)

	return &f, nil
}

func parseYAML(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(f)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func parseJSON(data []byte, f *File) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	return dec.Decode(f)
}

// parseTOML decodes into a generic tree and re-reads it as JSON, so that
// the string-or-table variant shorthand shares one implementation.
func parseTOML(data []byte, f *File) error {
	var root map[string]any
	if _, err := toml.Decode(string(data), &root); err != nil {
		return err
	}

	buf, err := json.Marshal(root)
	if err != nil {
		return err
	}

	return parseJSON(buf, f)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path as YAML.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal declarations: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}

	return nil
}
