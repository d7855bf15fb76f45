package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"enumcodec/internal/match"
)

// --- StringOrArray ---

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		*s = StringOrArray{str}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// UnmarshalJSON accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = StringOrArray{str}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}

	*s = arr

	return nil
}

// MarshalJSON mirrors MarshalYAML.
func (s StringOrArray) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}

	return json.Marshal([]string(s))
}

// --- VariantSpec ---

var variantKeys = yamlKeys(reflect.TypeOf(VariantSpec{}))

// UnmarshalYAML accepts a bare identifier or a mapping.
func (v *VariantSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = VariantSpec{}
		return node.Decode(&v.Ident)

	case yaml.MappingNode:
		// Node.Decode does not inherit KnownFields from the outer decoder.
		if err := checkKeys(node, variantKeys); err != nil {
			return err
		}

		type plain VariantSpec

		return node.Decode((*plain)(v))

	default:
		return fmt.Errorf("line %d: variant must be an identifier or a mapping", node.Line)
	}
}

// MarshalYAML writes variants that only carry an identifier as a scalar.
func (v VariantSpec) MarshalYAML() (any, error) {
	if v.bare() {
		return v.Ident, nil
	}

	type plain VariantSpec

	return plain(v), nil
}

func (v VariantSpec) bare() bool {
	return v.Rename == "" && v.InputName == "" && v.OutputName == "" &&
		v.Casing == "" && v.InputCasing == "" && v.OutputCasing == "" &&
		!v.Reject && !v.Payload && len(v.Alias) == 0 && len(v.Directives) == 0
}

// UnmarshalJSON accepts a bare identifier or an object.
func (v *VariantSpec) UnmarshalJSON(data []byte) error {
	var ident string
	if err := json.Unmarshal(data, &ident); err == nil {
		*v = VariantSpec{Ident: ident}
		return nil
	}

	type plain VariantSpec

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	return dec.Decode((*plain)(v))
}

func checkKeys(node *yaml.Node, known []string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if slices.Contains(known, key.Value) {
			continue
		}

		msg := fmt.Sprintf("line %d: field %s not found in variant", key.Line, key.Value)
		if hint := match.Closest(key.Value, known, 2); hint != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}

		return errors.New(msg)
	}

	return nil
}

func yamlKeys(t reflect.Type) []string {
	keys := make([]string, 0, t.NumField())

	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")

		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}

	return keys
}
