package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomask/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
		assert.Nil(t, clone.Fields)
	})

	t.Run("deep copies Fields map", func(t *testing.T) {
		original := &config.Config{
			Fields: map[string]config.FieldConfig{
				"phone": {Mask: "(NNN) NNN-NNNN", Unmask: true},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		require.Contains(t, clone.Fields, "phone")
		assert.True(t, clone.Fields["phone"].Unmask)

		clone.Fields["phone"] = config.FieldConfig{Mask: "NNN"}
		assert.Equal(t, "(NNN) NNN-NNNN", original.Fields["phone"].Mask)
	})

	t.Run("deep copies Tokens map", func(t *testing.T) {
		original := &config.Config{
			Tokens: map[string]config.TokenConfig{
				"H": {Pattern: "[0-9a-f]"},
			},
		}

		clone := original.Clone()
		delete(clone.Tokens, "H")
		assert.Contains(t, original.Tokens, "H")
	})

	t.Run("preserves scalar fields", func(t *testing.T) {
		original := &config.Config{Format: config.FormatJSON, Color: config.ColorNever}
		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, config.ColorNever, clone.Color)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			Format: config.FormatJSON,
			Fields: map[string]config.FieldConfig{
				"zip": {Mask: "NNNNN", ParseInt: true},
			},
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "format: json")
		assert.Contains(t, string(data), "mask: NNNNN")
		assert.Contains(t, string(data), "parse_int: true")
		assert.NotContains(t, string(data), "hide_on_empty")
	})

	t.Run("header is prepended", func(t *testing.T) {
		cfg := config.NewConfig()
		data, err := cfg.ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Regexp(t, `^# generated\n\n`, string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
format: json
tokens:
  H:
    pattern: "[0-9a-f]"
    description: hex
fields:
  phone:
    mask: "(NNN) NNN-NNNN"
    hide_on_empty: true
    path: contact.phone
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, config.FormatJSON, cfg.Format)
		assert.Equal(t, config.TokenConfig{Pattern: "[0-9a-f]", Description: "hex"}, cfg.Tokens["H"])

		phone, ok := cfg.Field("phone")
		require.True(t, ok)
		assert.Equal(t, config.FieldConfig{
			Mask:        "(NNN) NNN-NNNN",
			HideOnEmpty: true,
			Path:        "contact.phone",
		}, phone)
	})

	t.Run("parses JSON", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`{"fields": {"id": {"mask": "NNN", "parse_int": true}}}`))
		require.NoError(t, err)
		assert.True(t, cfg.Fields["id"].ParseInt)
	})

	t.Run("initializes empty maps", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`format: text`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Tokens)
		assert.NotNil(t, cfg.Fields)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("fields: [unterminated"))
		require.Error(t, err)
	})
}

func TestConfigNames(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fields["zip"] = config.FieldConfig{Mask: "NNNNN"}
	cfg.Fields["phone"] = config.FieldConfig{Mask: "NNN"}
	cfg.Tokens["H"] = config.TokenConfig{Pattern: "."}
	cfg.Tokens["B"] = config.TokenConfig{Pattern: "[01]"}

	assert.Equal(t, []string{"phone", "zip"}, cfg.FieldNames())
	assert.Equal(t, []string{"B", "H"}, cfg.TokenSymbols())

	_, ok := cfg.Field("missing")
	assert.False(t, ok)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.FieldNames())
}
