package config

import (
	"bytes"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML encodes c with two-space indentation. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line. header is
// written as given, so each of its lines should already start with "#".
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return append([]byte(strings.TrimRight(header, "\n")+"\n\n"), body...), nil
}

// FromYAML decodes a configuration document. JSON documents are valid YAML
// and decode too. Tokens and Fields are never nil in the result.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Tokens == nil {
		cfg.Tokens = make(map[string]TokenConfig)
	}
	if cfg.Fields == nil {
		cfg.Fields = make(map[string]FieldConfig)
	}
	return &cfg, nil
}

// Clone returns a copy of c whose maps can be modified independently.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Tokens = maps.Clone(c.Tokens)
	out.Fields = maps.Clone(c.Fields)
	return &out
}
