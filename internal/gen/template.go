package gen

import "text/template"

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by enumcodec. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Enums}}{{template "enum" .}}{{end}}`))

func init() {
	template.Must(fileTemplate.New("enum").Parse(`
// String returns the encoded name of {{.Recv}}.
func ({{.Recv}} {{.Type}}) String() string {
	switch {{.Recv}} {
{{- range .Variants}}
	case {{.Const}}:
		return {{.Encoded}}
{{- end}}
	}

	return fmt.Sprintf("{{.Type}}(%v)", {{.Basic}}({{.Recv}}))
}

// Parse{{.Type}} returns the {{.Type}} that s decodes to.
{{- if .Default}} Unrecognized input yields {{.Default}}.{{end}}
func Parse{{.Type}}(s string) ({{.Type}}, error) {
	switch s {
{{- range .Decode}}
	case {{.Keys}}:
		return {{.Const}}, nil
{{- end}}
	}
{{if .Default}}
	return {{.Default}}, nil
}
{{else}}
	var zero {{.Type}}

	return zero, codec.NewDecodeError("{{.Type}}", s, _{{.Type}}DecodeKeys)
}

var _{{.Type}}DecodeKeys = []string{ {{- .DecodeKeys -}} }
{{end}}
// IsValid reports whether {{.Recv}} is a declared variant.
func ({{.Recv}} {{.Type}}) IsValid() bool {
{{- if .Variants}}
	switch {{.Recv}} {
	case {{.Consts}}:
		return true
	}
{{end}}
	return false
}

// {{.Type}}Values returns all variants of {{.Type}} in declaration order.
func {{.Type}}Values() []{{.Type}} {
	return []{{.Type}}{ {{- .Consts -}} }
}

// GoString returns "{{.Type}}.Ident" for debugging output.
func ({{.Recv}} {{.Type}}) GoString() string {
	switch {{.Recv}} {
{{- range .Variants}}
	case {{.Const}}:
		return {{.Qualified}}
{{- end}}
	}

	return {{.Recv}}.String()
}
{{if .Default}}
// Default{{.Type}} returns the default variant, {{.Default}}.
func Default{{.Type}}() {{.Type}} {
	return {{.Default}}
}
{{end}}
{{- if .Hook}}
// MarshalText implements encoding.TextMarshaler.
func ({{.Recv}} {{.Type}}) MarshalText() ([]byte, error) {
	if !{{.Recv}}.IsValid() {
		return nil, fmt.Errorf("%s: %w", {{.Recv}}, serial.ErrNotVariant)
	}

	return []byte({{.Recv}}.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func ({{.Recv}} *{{.Type}}) UnmarshalText(text []byte) error {
	parsed, err := Parse{{.Type}}(string(text))
	if err != nil {
		return err
	}

	*{{.Recv}} = parsed

	return nil
}
{{end}}
{{- if .Msgpack}}
// EncodeMsgpack implements msgpack.CustomEncoder.
func ({{.Recv}} {{.Type}}) EncodeMsgpack(enc *msgpack.Encoder) error {
	text, err := {{.Recv}}.MarshalText()
	if err != nil {
		return err
	}

	return enc.EncodeString(string(text))
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func ({{.Recv}} *{{.Type}}) DecodeMsgpack(dec *msgpack.Decoder) error {
	text, err := dec.DecodeString()
	if err != nil {
		return err
	}

	return {{.Recv}}.UnmarshalText([]byte(text))
}
{{end}}`))
}
