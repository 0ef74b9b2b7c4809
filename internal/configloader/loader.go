// Package configloader finds, merges and validates gomask configuration.
// Sources are system and user files in XDG locations, the nearest project
// file, an explicit --config file, GOMASK_* variables (with a .env fallback)
// and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yaklabco/gomask/pkg/config"
)

// Layer names, in ascending precedence.
const (
	LayerSystem   = "system"
	LayerUser     = "user"
	LayerProject  = "project"
	LayerExplicit = "explicit"
)

// Layer is one configuration file taking part in a load.
type Layer struct {
	Name string
	Path string
}

// Layers returns the discovered files in ascending precedence.
func (p *ConfigPaths) Layers() []Layer {
	candidates := []Layer{
		{LayerSystem, p.System},
		{LayerUser, p.User},
		{LayerProject, p.Project},
		{LayerExplicit, p.Explicit},
	}

	layers := candidates[:0]
	for _, layer := range candidates {
		if layer.Path != "" {
			layers = append(layers, layer)
		}
	}
	return layers
}

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	WorkingDir   string // defaults to the process working directory
	ExplicitPath string // from --config; always read when set

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool // skips GOMASK_* variables and .env

	// CLIConfig holds flag values and wins over every other source.
	CLIConfig *config.Config
}

func (o LoadOptions) skips(layer string) bool {
	switch layer {
	case LayerSystem:
		return o.IgnoreSystemConfig
	case LayerUser:
		return o.IgnoreUserConfig
	case LayerProject:
		return o.IgnoreProjectConfig
	default:
		return false
	}
}

// LoadResult is the resolved configuration plus where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // files read, in merge order
	Warnings   []string
}

// Load resolves the final configuration. Later sources override earlier ones:
//
//	defaults < system < user < project < --config < .env < GOMASK_* < flags
//
// Any file that fails validation aborts the load with a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	stack := []*config.Config{config.NewConfig()}

	for _, layer := range paths.Layers() {
		if opts.skips(layer.Name) {
			continue
		}
		fileCfg, err := ReadFile(layer.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.Name, err)
		}
		if validation := ValidateWithFile(fileCfg, layer.Path); !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		stack = append(stack, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.Path)
	}

	cfg := MergeAll(stack...)

	if !opts.IgnoreEnv {
		lookup, warning := EnvLookup(paths.DotEnv)
		if warning != nil {
			result.Warnings = append(result.Warnings, warning.Error())
		}
		if err := LoadFromEnv(cfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = MergeAll(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// ReadFile parses one YAML or JSON configuration file.
func ReadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// EnvLookup returns a LookupFunc that prefers the process environment and
// falls back to the values in dotEnvPath. The process environment is never
// modified. An unreadable .env file is reported and otherwise ignored.
func EnvLookup(dotEnvPath string) (LookupFunc, error) {
	var values map[string]string
	var warning error
	if dotEnvPath != "" {
		parsed, err := godotenv.Read(dotEnvPath)
		if err != nil {
			warning = fmt.Errorf("ignoring %s: %w", dotEnvPath, err)
		} else {
			values = parsed
		}
	}

	return func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := values[key]
		return value, ok
	}, warning
}
