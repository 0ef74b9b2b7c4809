package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/logging"
	"github.com/yaklabco/gomask/internal/ui/pretty"
	"github.com/yaklabco/gomask/pkg/config"
)

// ErrConfigLoad wraps any failure to resolve configuration.
var ErrConfigLoad = errors.New("failed to load configuration")

// loadConfig resolves configuration for cmd. Only flags the user actually
// set are layered on top; everything else comes from files and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	result, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// resolveConfig is loadConfig but keeps the sources the configuration was
// read from.
func resolveConfig(cmd *cobra.Command) (*configloader.LoadResult, error) {
	logger := logging.FromContext(commandContext(cmd))

	overrides := &config.Config{}
	if flag := cmd.Flags().Lookup("color"); flag != nil && flag.Changed {
		overrides.Color = config.ColorMode(flag.Value.String())
	}
	if flag := cmd.Flags().Lookup("format"); flag != nil && flag.Changed {
		overrides.Format = config.OutputFormat(flag.Value.String())
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFormat, result.Config.Format,
		logging.FieldColor, result.Config.Color,
		logging.FieldFields, len(result.Config.Fields),
	)

	return result, nil
}

// newStyles returns output styles for w under the configured color mode.
func newStyles(cfg *config.Config, w io.Writer) *pretty.Styles {
	return pretty.NewStyles(colorEnabled(cfg, w))
}

func colorEnabled(cfg *config.Config, w io.Writer) bool {
	mode := cfg.Color
	if mode == "" {
		mode = config.ColorAuto
	}
	return pretty.IsColorEnabled(string(mode), w)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
