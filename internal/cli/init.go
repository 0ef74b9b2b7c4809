package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/logging"
	"github.com/yaklabco/gomask/pkg/config"
	"github.com/yaklabco/gomask/pkg/fsutil"
	"github.com/yaklabco/gomask/pkg/token"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomask configuration file",
		Long: `Create a new .gomask.yml configuration file in the current directory.
The file declares named fields, each with a mask and the options that
control what value it emits, plus any custom tokens.

Examples:
  gomask init                       Create minimal .gomask.yml
  gomask init --full                Document every token and field option
  gomask init --format json         Create .gomask.json instead
  gomask init --output custom.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every token documented")
	cmd.Flags().StringVar(&flags.format, "format", formatYAML, "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gomask.yml or .gomask.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != formatYAML && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gomask.yml"
		if flags.format == formatJSON {
			outputPath = ".gomask.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Tokens: builtinTokenInfos(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gomask fields' to check the configured fields")

	return nil
}

func builtinTokenInfos() []config.TokenInfo {
	tokens := token.Default().Tokens()
	infos := make([]config.TokenInfo, 0, len(tokens))
	for _, tok := range tokens {
		infos = append(infos, config.TokenInfo{Symbol: tok.Symbol, Description: tok.Description})
	}
	return infos
}
