package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/ui/pretty"
	"github.com/yaklabco/gomask/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gomask configuration",
		Long: `Show the resolved configuration, validate configuration files and list
the environment variables gomask reads.`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after merging every file, the environment and
flags. Text output is YAML and can be saved as a project configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Config.Format == config.FormatJSON {
				return writeJSON(out, result.Config)
			}

			header := "# Resolved gomask configuration (defaults only)"
			if len(result.LoadedFrom) > 0 {
				header = "# Resolved gomask configuration from:\n#   " + strings.Join(result.LoadedFrom, "\n#   ")
			}
			data, err := result.Config.ToYAMLWithHeader(header)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text (YAML), json")

	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Check configuration files for errors",
		Long: `Validate configuration files. Without arguments every file gomask would
load is checked: system, user, project and --config. Warnings are reported
but only errors fail the command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				discovered, err := discoverConfigFiles(cmd)
				if err != nil {
					return err
				}
				files = discovered
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				cfg = config.NewConfig()
			}
			return validateFiles(cmd.OutOrStdout(), newStyles(cfg, cmd.OutOrStdout()), files)
		},
	}
}

// discoverConfigFiles lists the files a plain command would load.
func discoverConfigFiles(cmd *cobra.Command) ([]string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	paths, err := configloader.DiscoverPaths(commandContext(cmd), workDir)
	if err != nil {
		return nil, err
	}
	if paths.Explicit, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	var files []string
	for _, layer := range paths.Layers() {
		files = append(files, layer.Path)
	}
	return files, nil
}

// validateFiles reports on each file and returns the first error found.
func validateFiles(out io.Writer, styles *pretty.Styles, files []string) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(out, styles.Dim.Render("no configuration files found"))
		return err
	}

	var firstErr error
	for _, path := range files {
		cfg, err := configloader.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", styles.Error.Render("✗"), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		result := configloader.ValidateWithFile(cfg, path)
		switch {
		case !result.Valid():
			fmt.Fprintf(out, "%s %s\n", styles.Error.Render("✗"), path)
			if firstErr == nil {
				firstErr = &result.Errors[0]
			}
		case result.HasWarnings():
			fmt.Fprintf(out, "%s %s\n", styles.Warning.Render("!"), path)
		default:
			fmt.Fprintf(out, "%s %s\n", styles.Success.Render("✓"), path)
		}
		for _, message := range result.AllMessages() {
			fmt.Fprintf(out, "    %s\n", message)
		}
	}

	if firstErr != nil && !isValidationError(firstErr) {
		return errors.Join(ErrConfigLoad, firstErr)
	}
	return firstErr
}

func isValidationError(err error) bool {
	var validationErr *configloader.ValidationError
	return errors.As(err, &validationErr)
}

// envVarInfo represents an environment variable in JSON output.
type envVarInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       string `json:"value,omitempty"`
	Set         bool   `json:"set"`
}

func newConfigEnvCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List the environment variables gomask reads",
		Long: `List the GOMASK_* environment variables with their current values. Values
from a .env file in the working directory are shown when the process
environment does not set them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			paths, err := configloader.DiscoverPaths(commandContext(cmd), workDir)
			if err != nil {
				return err
			}
			lookup, _ := configloader.EnvLookup(paths.DotEnv)

			documented := configloader.ListEnvVars()
			infos := make([]envVarInfo, 0, len(documented))
			for _, name := range slices.Sorted(maps.Keys(documented)) {
				value, set := lookup(name)
				infos = append(infos, envVarInfo{Name: name, Description: documented[name], Value: value, Set: set})
			}

			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				return writeJSON(out, infos)
			}

			styles := newStyles(cfg, out)
			table := pretty.Table{
				Headers: []string{"VARIABLE", "VALUE", "DESCRIPTION"},
				Columns: []func(...string) string{styles.Symbol.Render, styles.Bold.Render},
			}
			for _, info := range infos {
				value := info.Value
				if !info.Set {
					value = "-"
				}
				table.Rows = append(table.Rows, []string{info.Name, value, info.Description})
			}

			_, err = io.WriteString(out, pretty.NewTableFormatter(styles, terminalWidth(out)).Format(table))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
