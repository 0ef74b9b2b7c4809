package configloader

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomask/pkg/config"
	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/token"
)

// ValidationError is one problem found in a configuration. Its message reads
// "file: field: message", omitting the parts that are unknown.
type ValidationError struct {
	Field    string // dotted location, e.g. "fields.phone.mask"
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult collects the problems found by Validate. Only Errors stop
// a configuration from loading.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists every problem, errors first, each prefixed with its
// severity.
func (r *ValidationResult) AllMessages() []string {
	var out []string
	for _, group := range []struct {
		severity string
		items    []ValidationError
	}{{"error", r.Errors}, {"warning", r.Warnings}} {
		for _, item := range group.items {
			out = append(out, group.severity+": "+item.Error())
		}
	}
	return out
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) inFile(path string) *ValidationResult {
	for i := range r.Errors {
		r.Errors[i].FilePath = path
	}
	for i := range r.Warnings {
		r.Warnings[i].FilePath = path
	}
	return r
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownFormats = map[config.OutputFormat]bool{config.FormatText: true, config.FormatJSON: true}
	knownColors  = map[config.ColorMode]bool{config.ColorAuto: true, config.ColorAlways: true, config.ColorNever: true}
)

// Validate checks cfg without touching the filesystem. A nil config is valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}

	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	validateTokens(cfg, result)

	// Field masks are checked against the registry the tokens describe, so a
	// broken token section would only produce noise here.
	if result.Valid() {
		validateFields(cfg, result)
	}

	return result
}

// validateTokens checks that every custom token is one character with a
// compilable pattern.
func validateTokens(cfg *config.Config, result *ValidationResult) {
	for _, symbol := range cfg.TokenSymbols() {
		tok := cfg.Tokens[symbol]
		field := "tokens." + symbol

		if utf8.RuneCountInString(symbol) != 1 {
			result.addError(field, symbol, "token symbol must be exactly one character")
			continue
		}
		if symbol == string(mask.Blank) {
			result.addError(field, symbol, "the blank character cannot be a token")
			continue
		}
		if tok.Pattern == "" {
			result.addError(field+".pattern", tok.Pattern, "pattern not provided")
			continue
		}
		if _, err := token.FromRegexp(tok.Pattern); err != nil {
			result.addError(field+".pattern", tok.Pattern, "invalid pattern: %v", err)
		}
	}
}

// validateFields checks every field definition.
func validateFields(cfg *config.Config, result *ValidationResult) {
	registry, err := Registry(cfg)
	if err != nil {
		result.addError("tokens", nil, "%v", err)
		return
	}

	for _, name := range cfg.FieldNames() {
		fc := cfg.Fields[name]
		field := "fields." + name

		if fc.Mask == "" {
			result.addError(field+".mask", fc.Mask, "mask not provided")
			continue
		}

		if mask.New(fc.Mask, registry).SlotCount() == 0 {
			result.addWarning(field+".mask", fc.Mask, "mask has no editable positions")
		}

		// Records are rewritten with sjson, which only sets plain paths.
		if strings.ContainsAny(fc.Path, "*?#@|") {
			result.addError(field+".path", fc.Path, "path must name a single value; wildcards, queries and modifiers are not supported")
		}
	}
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	return Validate(cfg).inFile(filePath)
}

// IsValidFormat reports whether f is a known output format.
func IsValidFormat(f config.OutputFormat) bool { return knownFormats[f] }

// IsValidColor reports whether c is a known color mode.
func IsValidColor(c config.ColorMode) bool { return knownColors[c] }
