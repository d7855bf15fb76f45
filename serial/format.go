package serial

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"enumcodec/internal/match"
)

// ErrUnknownFormat is returned by LookupFormat for an unregistered name.
var ErrUnknownFormat = errors.New("unknown format")

// Format encodes and decodes values in one data format.
type Format interface {
	// Name is the registry key, e.g. "yaml".
	Name() string
	// ContentType returns the MIME type, e.g. "application/yaml".
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var formats = map[string]Format{}

func register(f Format) {
	formats[f.Name()] = f
}

func init() {
	register(jsonFormat{})
	register(yamlFormat{})
	register(tomlFormat{})
	register(newCBORFormat())
	register(msgpackFormat{})
}

// LookupFormat returns the format registered under name.
func LookupFormat(name string) (Format, error) {
	if f, ok := formats[name]; ok {
		return f, nil
	}

	if hint := match.Closest(name, FormatNames(), 2); hint != "" {
		return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownFormat, name, hint)
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// FormatNames returns the registered format names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

type jsonFormat struct{}

func (jsonFormat) Name() string        { return "json" }
func (jsonFormat) ContentType() string { return "application/json" }

func (jsonFormat) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

func (jsonFormat) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type yamlFormat struct{}

func (yamlFormat) Name() string                       { return "yaml" }
func (yamlFormat) ContentType() string                { return "application/yaml" }
func (yamlFormat) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlFormat) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

type tomlFormat struct{}

func (tomlFormat) Name() string                       { return "toml" }
func (tomlFormat) ContentType() string                { return "application/toml" }
func (tomlFormat) Marshal(v any) ([]byte, error)      { return toml.Marshal(v) }
func (tomlFormat) Unmarshal(data []byte, v any) error { return toml.Unmarshal(data, v) }

// cborFormat uses Core Deterministic Encoding and carries TextMarshaler
// types as text strings, so enumerations with a serialization hook encode
// as their encode strings.
type cborFormat struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBORFormat() cborFormat {
	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString

	enc, err := encOptions.EncMode()
	if err != nil {
		panic("serial: CBOR encoder initialization failed: " + err.Error())
	}

	dec, err := cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("serial: CBOR decoder initialization failed: " + err.Error())
	}

	return cborFormat{enc: enc, dec: dec}
}

func (cborFormat) Name() string                         { return "cbor" }
func (cborFormat) ContentType() string                  { return "application/cbor" }
func (f cborFormat) Marshal(v any) ([]byte, error)      { return f.enc.Marshal(v) }
func (f cborFormat) Unmarshal(data []byte, v any) error { return f.dec.Unmarshal(data, v) }

type msgpackFormat struct{}

func (msgpackFormat) Name() string                       { return "msgpack" }
func (msgpackFormat) ContentType() string                { return "application/msgpack" }
func (msgpackFormat) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackFormat) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
