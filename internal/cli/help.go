package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	// Command name and usage line
	Command lipgloss.Style

	// Section headers (Usage, Available Commands, Flags, etc.)
	Heading lipgloss.Style

	// Subcommand names in the command list
	Subcommand lipgloss.Style

	// Flag names (--flag, -f)
	Flag lipgloss.Style

	// Flag and command descriptions
	Description lipgloss.Style

	// Examples section
	Example lipgloss.Style

	// Dim text (aliases, flag value types)
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles; all of them are plain when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	color := func(c string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &HelpStyles{
		Command:     color("14").Bold(colorEnabled),
		Heading:     color("11").Bold(colorEnabled),
		Subcommand:  color("10"),
		Flag:        color("12"),
		Description: lipgloss.NewStyle(),
		Example:     color("8"),
		Dim:         color("8"),
	}
}

// HelpFormatter renders Cobra help and usage through styled templates.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ description .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.Command.Render,
		"heading":                 h.styles.Heading.Render,
		"subcommand":              h.styles.Subcommand.Render,
		"description":             h.styles.Description.Render,
		"example":                 h.styles.Example.Render,
		"dim":                     h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// flagUsages styles the output of pflag's FlagUsages line by line.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles one "  -o, --output string   description" line. The
// flag part ends at the first run of two or more spaces.
func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	names, desc, ok := strings.Cut(trimmed, "  ")
	if !ok {
		return line
	}

	words := strings.Fields(names)
	for i, word := range words {
		if strings.HasPrefix(word, "-") {
			name, comma := strings.CutSuffix(word, ",")
			words[i] = h.styles.Flag.Render(name)
			if comma {
				words[i] += ","
			}
			continue
		}
		words[i] = h.styles.Dim.Render(word)
	}

	return indent + strings.Join(words, " ") + "   " + h.styles.Description.Render(strings.TrimLeft(desc, " "))
}

// ApplyToCommand installs the styled help and usage functions on cmd. Cobra
// inherits them in subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(h.funcs()).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
