package configloader

import (
	"fmt"
	"os"

	"github.com/yaklabco/gomask/pkg/config"
)

// envVarPrefix is the prefix for all gomask environment variables.
const envVarPrefix = "GOMASK_"

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envMapping binds an environment variable suffix to a config setter.
type envMapping struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string)
}

// envMappings lists the supported environment variables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{
		suffix:      "FORMAT",
		description: "Output format: text or json",
		apply:       func(cfg *config.Config, value string) { cfg.Format = config.OutputFormat(value) },
	},
	{
		suffix:      "COLOR",
		description: "Colorized output: auto, always, or never",
		apply:       func(cfg *config.Config, value string) { cfg.Color = config.ColorMode(value) },
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMASK_ (e.g., GOMASK_FORMAT).
// A nil lookup uses the process environment.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, mapping := range envMappings {
		envVar := envVarPrefix + mapping.suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}
		mapping.apply(cfg, value)
	}

	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		return fmt.Errorf("invalid value for %sFORMAT: %q (expected text or json)", envVarPrefix, cfg.Format)
	}
	if cfg.Color != "" && !IsValidColor(cfg.Color) {
		return fmt.Errorf("invalid value for %sCOLOR: %q (expected auto, always, or never)", envVarPrefix, cfg.Color)
	}

	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, mapping := range envMappings {
		vars[envVarPrefix+mapping.suffix] = mapping.description
	}
	return vars
}
