package codec

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"enumcodec/internal/match"
)

// Declaration is the input to Compile: an enumeration as extracted from
// source code or a declaration file.
type Declaration struct {
	// Name is the enumeration name, used in diagnostics.
	Name string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	// Directives are the enumeration-scope directives.
	Directives []Directive `json:"directives,omitempty" yaml:"directives,omitempty" toml:"directives,omitempty" msgpack:"directives,omitempty"`
	// Variants in declaration order.
	Variants []VariantDecl `json:"variants" yaml:"variants" toml:"variants" msgpack:"variants"`
	// Enumerate requests the ordered list of all variants. Compilation
	// fails if any variant carries payload.
	Enumerate bool `json:"enumerate,omitempty" yaml:"enumerate,omitempty" toml:"enumerate,omitempty" msgpack:"enumerate,omitempty"`
}

// VariantDecl is one declared variant.
type VariantDecl struct {
	Ident      string      `json:"ident" yaml:"ident" toml:"ident" msgpack:"ident"`
	Directives []Directive `json:"directives,omitempty" yaml:"directives,omitempty" toml:"directives,omitempty" msgpack:"directives,omitempty"`
	HasPayload bool        `json:"has_payload,omitempty" yaml:"has_payload,omitempty" toml:"has_payload,omitempty" msgpack:"has_payload,omitempty"`
}

// Table is the compiled, immutable codec of one enumeration.
type Table struct {
	Enum              string  `json:"enum" yaml:"enum" toml:"enum" msgpack:"enum"`
	Variants          []Entry `json:"variants" yaml:"variants" toml:"variants" msgpack:"variants"`
	Default           string  `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" msgpack:"default,omitempty"`
	SerializationHook bool    `json:"serialization_hook" yaml:"serialization_hook" toml:"serialization_hook" msgpack:"serialization_hook"`
	Enumerable        bool    `json:"enumerable" yaml:"enumerable" toml:"enumerable" msgpack:"enumerable"`

	defaultIndex int
	decode       map[string]int
	decodeKeys   []string
}

// Entry is the resolved form of one variant.
type Entry struct {
	Index int `json:"index" yaml:"index" toml:"index" msgpack:"index"`
	// Ident is the variant identifier after trim_prefix.
	Ident string `json:"ident" yaml:"ident" toml:"ident" msgpack:"ident"`
	// Declared is the identifier as declared, before trim_prefix.
	Declared     string `json:"declared" yaml:"declared" toml:"declared" msgpack:"declared"`
	Encoded      string `json:"encoded" yaml:"encoded" toml:"encoded" msgpack:"encoded"`
	EncodeCasing string `json:"encode_casing" yaml:"encode_casing" toml:"encode_casing" msgpack:"encode_casing"`
	DecodeCasing string `json:"decode_casing" yaml:"decode_casing" toml:"decode_casing" msgpack:"decode_casing"`
	// DecodeKeys lists every string decoding to this variant: the cased
	// decode name first, then aliases. Empty for rejected variants.
	DecodeKeys []string `json:"decode_keys,omitempty" yaml:"decode_keys,omitempty" toml:"decode_keys,omitempty" msgpack:"decode_keys,omitempty"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty" msgpack:"aliases,omitempty"`
	Rejected   bool     `json:"rejected,omitempty" yaml:"rejected,omitempty" toml:"rejected,omitempty" msgpack:"rejected,omitempty"`
	HasPayload bool     `json:"has_payload,omitempty" yaml:"has_payload,omitempty" toml:"has_payload,omitempty" msgpack:"has_payload,omitempty"`
}

// DecodeEntry is one row of the decode table.
type DecodeEntry struct {
	Key   string
	Index int
}

// Compile resolves a Declaration into a Table. All configuration problems
// found are returned together (errors.Join of *ConfigError); the Table is
// nil whenever err is non-nil.
func Compile(decl Declaration) (*Table, error) {
	if decl.Name == "" {
		return nil, newConfigError(ErrInvalidDeclaration, "", "", "", "enumeration name is empty")
	}

	settings, errs := parseEnumDirectives(decl.Name, decl.Directives)

	t := &Table{
		Enum:              decl.Name,
		Variants:          make([]Entry, 0, len(decl.Variants)),
		SerializationHook: settings.hook,
		Enumerable:        true,
		defaultIndex:      -1,
		decode:            make(map[string]int),
	}

	byIdent := make(map[string]int, len(decl.Variants))

	for i, v := range decl.Variants {
		ident := strings.TrimPrefix(v.Ident, settings.trimPrefix)
		if v.Ident == "" || ident == "" {
			errs = append(errs, newConfigError(ErrInvalidDeclaration, decl.Name, v.Ident, "",
				fmt.Sprintf("variant %d has an empty identifier", i)))
			continue
		}

		if prev, dup := byIdent[ident]; dup {
			errs = append(errs, newConfigError(ErrDuplicateVariant, decl.Name, ident, "",
				fmt.Sprintf("also declared as %s", t.Variants[prev].Declared)))
			continue
		}

		vs, verrs := parseVariantDirectives(decl.Name, ident, v.Directives)
		errs = append(errs, verrs...)

		entry := resolveEntry(len(t.Variants), ident, settings.layer, vs)
		entry.Declared = v.Ident
		entry.HasPayload = v.HasPayload

		if v.HasPayload {
			t.Enumerable = false
		}

		byIdent[ident] = entry.Index
		t.Variants = append(t.Variants, entry)
	}

	for _, entry := range t.Variants {
		for _, key := range entry.DecodeKeys {
			if owner, taken := t.decode[key]; taken && owner != entry.Index {
				errs = append(errs, newConfigError(ErrCollision, decl.Name, entry.Ident, "",
					fmt.Sprintf("%q already decodes to %s", key, t.Variants[owner].Ident)))
				continue
			}

			t.decode[key] = entry.Index
		}
	}

	if settings.hasDefault {
		idx, ok := t.lookupVariant(settings.defaultVariant)
		if !ok {
			detail := fmt.Sprintf("%q", settings.defaultVariant)
			if hint := match.Closest(settings.defaultVariant, t.idents(), 2); hint != "" {
				detail += fmt.Sprintf(" (did you mean %q?)", hint)
			}

			errs = append(errs, newConfigError(ErrUnknownDefault, decl.Name, "", DirectiveDefaultVariant, detail))
		} else {
			t.defaultIndex = idx
			t.Default = t.Variants[idx].Ident
		}
	}

	if decl.Enumerate && !t.Enumerable {
		errs = append(errs, newConfigError(ErrNotEnumerable, decl.Name, "", "",
			"payload-bearing: "+strings.Join(t.payloadIdents(), ", ")))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	t.decodeKeys = make([]string, 0, len(t.decode))
	for key := range t.decode {
		t.decodeKeys = append(t.decodeKeys, key)
	}

	sort.Strings(t.decodeKeys)

	return t, nil
}

// resolveEntry derives the encode string and decode keys of one variant.
func resolveEntry(index int, ident string, enum Layer, vs variantSettings) Entry {
	encCasing := ResolveCasing(enum, vs.layer, Encode)
	decCasing := ResolveCasing(enum, vs.layer, Decode)

	entry := Entry{
		Index:        index,
		Ident:        ident,
		Encoded:      encCasing.Apply(BaseName(ident, vs.naming, Encode)),
		EncodeCasing: encCasing.String(),
		DecodeCasing: decCasing.String(),
		Aliases:      vs.aliases,
		Rejected:     vs.reject,
	}

	// A rejected variant stays encodable but contributes no decode
	// entries, aliases included.
	if vs.reject {
		return entry
	}

	keys := []string{decCasing.Apply(BaseName(ident, vs.naming, Decode))}
	for _, alias := range vs.aliases {
		if !slices.Contains(keys, alias) {
			keys = append(keys, alias)
		}
	}

	entry.DecodeKeys = keys

	return entry
}

// Len returns the number of variants.
func (t *Table) Len() int {
	return len(t.Variants)
}

// Encode returns the encode string of the variant at index i.
func (t *Table) Encode(i int) string {
	return t.Variants[i].Encoded
}

// Lookup returns the index of the variant s decodes to, without fallback.
func (t *Table) Lookup(s string) (int, bool) {
	i, ok := t.decode[s]
	return i, ok
}

// Resolve performs a full decode: exact match, then the default variant,
// then a *DecodeError.
func (t *Table) Resolve(s string) (int, error) {
	if i, ok := t.decode[s]; ok {
		return i, nil
	}

	if t.defaultIndex >= 0 {
		return t.defaultIndex, nil
	}

	return -1, t.decodeError(s)
}

// DefaultIndex returns the index of the default variant, if configured.
func (t *Table) DefaultIndex() (int, bool) {
	return t.defaultIndex, t.defaultIndex >= 0
}

// DecodeEntries returns the decode table ordered by variant, then by the
// order keys were derived (cased name before aliases).
func (t *Table) DecodeEntries() []DecodeEntry {
	var out []DecodeEntry

	for _, entry := range t.Variants {
		for _, key := range entry.DecodeKeys {
			out = append(out, DecodeEntry{Key: key, Index: entry.Index})
		}
	}

	return out
}

// Variant returns the index of the variant with the given identifier,
// accepting either the trimmed or the declared spelling.
func (t *Table) Variant(ident string) (int, bool) {
	return t.lookupVariant(ident)
}

// lookupVariant prefers the declared spelling: with trim_prefix X, "XA"
// names the variant declared XA, not the one declared XXA.
func (t *Table) lookupVariant(ident string) (int, bool) {
	for _, entry := range t.Variants {
		if entry.Declared == ident {
			return entry.Index, true
		}
	}

	for _, entry := range t.Variants {
		if entry.Ident == ident {
			return entry.Index, true
		}
	}

	return -1, false
}

// DecodeKeys returns every accepted input string, sorted.
func (t *Table) DecodeKeys() []string {
	return slices.Clone(t.decodeKeys)
}

func (t *Table) decodeError(s string) *DecodeError {
	return NewDecodeError(t.Enum, s, t.decodeKeys)
}

func (t *Table) idents() []string {
	out := make([]string, len(t.Variants))
	for i, entry := range t.Variants {
		out[i] = entry.Ident
	}

	return out
}

func (t *Table) payloadIdents() []string {
	var out []string

	for _, entry := range t.Variants {
		if entry.HasPayload {
			out = append(out, entry.Ident)
		}
	}

	return out
}
