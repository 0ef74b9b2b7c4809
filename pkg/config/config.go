// Package config defines core configuration types for gomask.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import (
	"maps"
	"slices"
)

// OutputFormat specifies the output format for command results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ColorMode controls colorized output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// TokenConfig declares a custom token or overrides a built-in one.
type TokenConfig struct {
	// Pattern is a regular expression matching a single character, e.g. "[0-9a-f]".
	Pattern string `yaml:"pattern" json:"pattern"`

	// Description is shown by `gomask tokens`.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// FieldConfig describes one masked input field.
type FieldConfig struct {
	// Mask is the mask pattern, e.g. "(NNN) NNN-NNNN". Required.
	Mask string `yaml:"mask" json:"mask"`

	// Unmask emits the raw value instead of the masked text.
	Unmask bool `yaml:"unmask,omitempty" json:"unmask,omitempty"`

	// ParseInt emits the raw value as an integer.
	ParseInt bool `yaml:"parse_int,omitempty" json:"parse_int,omitempty"`

	// HideOnEmpty shows an empty value instead of the blank mask.
	HideOnEmpty bool `yaml:"hide_on_empty,omitempty" json:"hide_on_empty,omitempty"`

	// InitChange emits the initial value when the field is created.
	InitChange bool `yaml:"init_change,omitempty" json:"init_change,omitempty"`

	// Path is the gjson path used by `gomask apply` for JSON records.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Config is the root configuration structure for gomask.
type Config struct {
	// Format specifies the default output format ("text" or "json").
	Format OutputFormat `yaml:"format,omitempty" json:"format,omitempty"`

	// Color controls colorized output ("auto", "always", "never").
	Color ColorMode `yaml:"color,omitempty" json:"color,omitempty"`

	// Tokens contains custom token definitions keyed by symbol.
	Tokens map[string]TokenConfig `yaml:"tokens,omitempty" json:"tokens,omitempty"`

	// Fields contains named field definitions.
	Fields map[string]FieldConfig `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format: FormatText,
		Color:  ColorAuto,
		Tokens: make(map[string]TokenConfig),
		Fields: make(map[string]FieldConfig),
	}
}

// Field returns the named field definition.
func (c *Config) Field(name string) (FieldConfig, bool) {
	if c == nil {
		return FieldConfig{}, false
	}
	fc, ok := c.Fields[name]
	return fc, ok
}

// FieldNames returns the configured field names in sorted order.
func (c *Config) FieldNames() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.Fields))
}

// TokenSymbols returns the configured token symbols in sorted order.
func (c *Config) TokenSymbols() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.Tokens))
}
