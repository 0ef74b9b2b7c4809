package configloader

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomask/pkg/config"
	"github.com/yaklabco/gomask/pkg/field"
	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/record"
	"github.com/yaklabco/gomask/pkg/token"
)

var (
	// ErrUnknownField is returned when a field name is not configured.
	ErrUnknownField = errors.New("unknown field")

	// ErrPathNotProvided is returned when a field bound to records has no path.
	ErrPathNotProvided = errors.New("path not provided")
)

// Registry builds the token registry: the built-in tokens overlaid with the
// configured ones.
func Registry(cfg *config.Config) (token.Registry, error) {
	registry := token.Default()
	if cfg == nil {
		return registry, nil
	}

	for _, symbol := range cfg.TokenSymbols() {
		tok := cfg.Tokens[symbol]
		runes := []rune(symbol)
		if len(runes) != 1 {
			return token.Registry{}, fmt.Errorf("token %q: symbol must be exactly one character", symbol)
		}

		accept, err := token.FromRegexp(tok.Pattern)
		if err != nil {
			return token.Registry{}, fmt.Errorf("token %q: %w", symbol, err)
		}

		description := tok.Description
		if description == "" {
			description = "matches " + tok.Pattern
		}
		registry = registry.With(runes[0], description, accept)
	}

	return registry, nil
}

// FieldOptions translates a field definition into field options.
func FieldOptions(fc config.FieldConfig) []field.Option {
	var opts []field.Option
	if fc.Unmask {
		opts = append(opts, field.WithUnmask())
	}
	if fc.ParseInt {
		opts = append(opts, field.WithParseInt())
	}
	if fc.HideOnEmpty {
		opts = append(opts, field.WithHideOnEmpty())
	}
	if fc.InitChange {
		opts = append(opts, field.WithInitChange())
	}
	return opts
}

// NewField creates the named field with extra options applied after the
// configured ones.
func NewField(cfg *config.Config, name string, extra ...field.Option) (*field.Field, error) {
	fc, ok := cfg.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	registry, err := Registry(cfg)
	if err != nil {
		return nil, err
	}

	fld, err := field.New(fc.Mask, registry, append(FieldOptions(fc), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}

	return fld, nil
}

// Bindings builds record bindings for the named fields, or for every field
// with a path when names is empty. parse_int only matters for ModeUnmask.
func Bindings(cfg *config.Config, names []string, mode record.Mode) ([]record.Binding, error) {
	registry, err := Registry(cfg)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		for _, name := range cfg.FieldNames() {
			if cfg.Fields[name].Path != "" {
				names = append(names, name)
			}
		}
	}

	bindings := make([]record.Binding, 0, len(names))
	for _, name := range names {
		fc, ok := cfg.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		if fc.Mask == "" {
			return nil, fmt.Errorf("field %q: %w", name, field.ErrMaskNotProvided)
		}
		if fc.Path == "" {
			return nil, fmt.Errorf("field %q: %w", name, ErrPathNotProvided)
		}

		bindings = append(bindings, record.Binding{
			Name:     name,
			Path:     fc.Path,
			Engine:   mask.New(fc.Mask, registry),
			Mode:     mode,
			ParseInt: fc.ParseInt,
		})
	}

	return bindings, nil
}
