package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/ui/pretty"
	"github.com/yaklabco/gomask/pkg/config"
	"github.com/yaklabco/gomask/pkg/mask"
	"github.com/yaklabco/gomask/pkg/token"
)

// tokenInfo represents a token in JSON output.
type tokenInfo struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// fieldInfo represents a configured field in JSON output.
type fieldInfo struct {
	Name  string `json:"name"`
	Mask  string `json:"mask"`
	Slots int    `json:"slots"`
	Path  string `json:"path,omitempty"`
}

const (
	sourceBuiltin = "builtin"
	sourceConfig  = "config"
)

func newTokensCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List mask tokens",
		Long: `List the token symbols a mask pattern can use: the built-in tokens
N, S, A and X plus any defined under "tokens" in the configuration. Every
other pattern character is a literal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			registry, err := configloader.Registry(cfg)
			if err != nil {
				return err
			}

			infos := tokenInfos(cfg, registry)
			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				return writeJSON(out, infos)
			}

			styles := newStyles(cfg, out)
			table := pretty.Table{
				Headers: []string{"SYMBOL", "SOURCE", "ACCEPTS"},
				Columns: []func(...string) string{styles.Symbol.Render, styles.Dim.Render},
			}
			for _, info := range infos {
				table.Rows = append(table.Rows, []string{info.Symbol, info.Source, info.Description})
			}

			_, err = io.WriteString(out, pretty.NewTableFormatter(styles, terminalWidth(out)).Format(table))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func newFieldsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List configured fields",
		Long: `List the fields defined under "fields" in the configuration with their
mask, number of editable slots and JSON path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			registry, err := configloader.Registry(cfg)
			if err != nil {
				return err
			}

			infos := make([]fieldInfo, 0, len(cfg.Fields))
			for _, name := range cfg.FieldNames() {
				fc := cfg.Fields[name]
				infos = append(infos, fieldInfo{
					Name:  name,
					Mask:  fc.Mask,
					Slots: mask.New(fc.Mask, registry).SlotCount(),
					Path:  fc.Path,
				})
			}

			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				return writeJSON(out, infos)
			}

			styles := newStyles(cfg, out)
			if len(infos) == 0 {
				_, err := fmt.Fprintln(out, styles.Dim.Render("no fields configured; run 'gomask init' to create a configuration"))
				return err
			}

			table := pretty.Table{
				Headers: []string{"FIELD", "MASK", "SLOTS", "PATH"},
				Columns: []func(...string) string{styles.Bold.Render, styles.Pattern.Render},
			}
			for _, info := range infos {
				table.Rows = append(table.Rows, []string{info.Name, info.Mask, strconv.Itoa(info.Slots), info.Path})
			}

			_, err = io.WriteString(out, pretty.NewTableFormatter(styles, terminalWidth(out)).Format(table))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func tokenInfos(cfg *config.Config, registry token.Registry) []tokenInfo {
	builtin := token.Default()

	infos := make([]tokenInfo, 0, registry.Len())
	for _, tok := range registry.Tokens() {
		source := sourceBuiltin
		if _, ok := cfg.Tokens[string(tok.Symbol)]; ok || !builtin.IsToken(tok.Symbol) {
			source = sourceConfig
		}
		infos = append(infos, tokenInfo{
			Symbol:      string(tok.Symbol),
			Description: tok.Description,
			Source:      source,
		})
	}
	return infos
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
