// Package cli wires the gomask commands together with cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/logging"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type globalFlags struct {
	debug  bool
	config string
	color  string
}

// NewRootCommand builds the gomask command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "gomask",
		Short: "Fixed-pattern input masks for the terminal and JSON data",
		Long: `gomask formats text against fixed-width patterns such as "(NNN) NNN-NNNN".

Each pattern character is either a token that accepts a class of characters
(N digit, S letter, A letter or digit, X anything) or a literal that is copied
into the output. gomask can mask and unmask values from the command line,
rewrite fields inside JSON and NDJSON documents, and edit a single masked
field interactively in the terminal.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if flags.debug {
				level = "debug"
				logging.SetLevel(level)
			}
			ctx := logging.WithLogger(commandContext(cmd), logging.New(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	persistent := root.PersistentFlags()
	persistent.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	persistent.StringVar(&flags.config, "config", "", "path to config file")
	persistent.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	root.AddCommand(
		newMaskCommand(),
		newUnmaskCommand(),
		newTokensCommand(),
		newFieldsCommand(),
		newApplyCommand(),
		newEditCommand(),
		newInitCommand(),
		newConfigCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(root)

	return root
}
