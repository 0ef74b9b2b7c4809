package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every built-in token and includes example fields.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Tokens lists the built-in tokens documented by the full template.
	Tokens []TokenInfo
}

// TokenInfo describes a token for template generation.
// It keeps this package independent of pkg/token.
type TokenInfo struct {
	Symbol      rune
	Description string
}

// exampleFields are written into generated templates.
//
//nolint:gochecknoglobals // Read-only template data.
var exampleFields = map[string]FieldConfig{
	"phone": {
		Mask: "(NNN) NNN-NNNN",
		Path: "contact.phone",
	},
	"zip": {
		Mask:     "NNNNN",
		Unmask:   true,
		ParseInt: true,
		Path:     "address.zip",
	},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == string(FormatJSON) {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Output format: text or json
format: text

# Custom tokens (one character each, pattern matches a single character)
# tokens:
#   H:
#     pattern: "[0-9a-fA-F]"
#     description: hexadecimal digit

# Named fields
fields:
  phone:
    mask: "(NNN) NNN-NNNN"
    # unmask: false
    # parse_int: false
    # hide_on_empty: false
    # init_change: false
    # path: contact.phone
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomask configuration - Full Template
# See: https://github.com/yaklabco/gomask
#
# This template documents every built-in token and every field option.
# Uncomment and modify settings as needed.

# Output format: text or json
format: text

# Colorized output: auto, always, or never
color: auto

# Built-in tokens:
`)

	for _, tok := range opts.Tokens {
		fmt.Fprintf(&buf, "#   %c  %s\n", tok.Symbol, wrapComment(tok.Description, commentWrapWidth))
	}

	buf.WriteString(`#
# Any other character in a mask is a literal and is copied as is.
# A token declared here replaces the built-in token with the same symbol.
tokens:
  H:
    pattern: "[0-9a-fA-F]"
    description: hexadecimal digit

fields:
  # A masked phone number. "path" is used by "gomask apply" to find the
  # value inside JSON records.
  phone:
    mask: "(NNN) NNN-NNNN"
    unmask: false
    parse_int: false
    hide_on_empty: false
    init_change: false
    path: contact.phone

  # Emit the raw digits as an integer instead of the masked text.
  zip:
    mask: "NNNNN"
    unmask: true
    parse_int: true
    path: address.zip

  # Show nothing until the user types.
  color:
    mask: "#HHHHHH"
    hide_on_empty: true
`)

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#      ")
}

// templateToJSON renders the template as JSON. JSON has no comments, so the
// documentation is dropped and only the settings remain.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := &Config{
		Format: FormatText,
		Fields: map[string]FieldConfig{"phone": exampleFields["phone"]},
	}
	if opts.Full {
		cfg.Color = ColorAuto
		cfg.Tokens = map[string]TokenConfig{
			"H": {Pattern: "[0-9a-fA-F]", Description: "hexadecimal digit"},
		}
		cfg.Fields = exampleFields
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomask configuration
# See: https://github.com/yaklabco/gomask`
}
