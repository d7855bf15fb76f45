// Package serial connects enumeration codecs to serialization formats.
//
// Text adapts a codec.Codec to encoding.TextMarshaler semantics, which is
// all encoding/json, gopkg.in/yaml.v3, github.com/BurntSushi/toml and
// github.com/fxamacker/cbor/v2 (in text-string mode) need to carry an
// enumeration as its encode string. Flag exposes an enumeration as a
// github.com/spf13/pflag value, and EncodeMsgpack/DecodeMsgpack back the
// custom encoder hooks of github.com/vmihailenco/msgpack/v5.
//
// Format is a small registry of named data formats used to dump compiled
// tables and declarations.
package serial
