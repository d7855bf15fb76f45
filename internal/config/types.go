package config

// CurrentVersion is the only declaration file version understood.
const CurrentVersion = "1"

// File is the top-level declaration file.
type File struct {
	Version string     `yaml:"version,omitempty" json:"version,omitempty"`
	Enums   []EnumSpec `yaml:"enums" json:"enums"`
}

// EnumSpec declares one enumeration.
type EnumSpec struct {
	Name              string        `yaml:"name" json:"name"`
	Casing            string        `yaml:"casing,omitempty" json:"casing,omitempty"`
	InputCasing       string        `yaml:"input_casing,omitempty" json:"input_casing,omitempty"`
	OutputCasing      string        `yaml:"output_casing,omitempty" json:"output_casing,omitempty"`
	DefaultVariant    string        `yaml:"default_variant,omitempty" json:"default_variant,omitempty"`
	TrimPrefix        string        `yaml:"trim_prefix,omitempty" json:"trim_prefix,omitempty"`
	SerializationHook bool          `yaml:"serialization_hook,omitempty" json:"serialization_hook,omitempty"`
	Enumerate         bool          `yaml:"enumerate,omitempty" json:"enumerate,omitempty"`
	Directives        []string      `yaml:"directives,omitempty" json:"directives,omitempty"`
	Variants          []VariantSpec `yaml:"variants" json:"variants"`
}

// VariantSpec declares one variant. In YAML, TOML and JSONC a bare string
// is shorthand for a variant with only an identifier.
type VariantSpec struct {
	Ident        string        `yaml:"ident" json:"ident"`
	Rename       string        `yaml:"rename,omitempty" json:"rename,omitempty"`
	InputName    string        `yaml:"input_name,omitempty" json:"input_name,omitempty"`
	OutputName   string        `yaml:"output_name,omitempty" json:"output_name,omitempty"`
	Casing       string        `yaml:"casing,omitempty" json:"casing,omitempty"`
	InputCasing  string        `yaml:"input_casing,omitempty" json:"input_casing,omitempty"`
	OutputCasing string        `yaml:"output_casing,omitempty" json:"output_casing,omitempty"`
	Reject       bool          `yaml:"reject,omitempty" json:"reject,omitempty"`
	Alias        StringOrArray `yaml:"alias,omitempty" json:"alias,omitempty"`
	Payload      bool          `yaml:"payload,omitempty" json:"payload,omitempty"`
	Directives   []string      `yaml:"directives,omitempty" json:"directives,omitempty"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string
