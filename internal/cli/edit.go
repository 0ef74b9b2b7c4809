package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/logging"
	"github.com/yaklabco/gomask/internal/terminal"
	"github.com/yaklabco/gomask/pkg/field"
)

// ErrNotTerminal is returned by edit when stdin is not a terminal.
var ErrNotTerminal = errors.New("edit needs an interactive terminal")

type editFlags struct {
	value    string
	label    string
	unmask   bool
	parseInt bool
}

func newEditCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FIELD",
		Short: "Edit a configured field interactively",
		Long: `Open a single-line editor for a configured field. Typed characters fill
the next slot that accepts them; literals are skipped over and rejected
characters are ignored. Pasting a fully masked value replaces the field.

Keys:
  enter          accept and print the value
  esc, ctrl+c    cancel
  ctrl+u         clear
  shift+arrows   select

The printed value follows the field's unmask and parse_int settings, so it
can be captured by a script:

  zip=$(gomask edit zip)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.value, "value", "", "initial value, raw or already masked")
	cmd.Flags().StringVar(&flags.label, "label", "", "prompt shown before the field (default: FIELD:)")
	cmd.Flags().BoolVar(&flags.unmask, "unmask", false, "print the raw value regardless of configuration")
	cmd.Flags().BoolVar(&flags.parseInt, "parse-int", false, "print the value as an integer regardless of configuration")

	return cmd
}

func runEdit(cmd *cobra.Command, name string, flags *editFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts []field.Option
	if flags.value != "" {
		opts = append(opts, field.WithInitialValue(flags.value))
	}
	if flags.unmask {
		opts = append(opts, field.WithUnmask())
	}
	if flags.parseInt {
		opts = append(opts, field.WithParseInt())
	}

	fld, err := configloader.NewField(cfg, name, opts...)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	label := flags.label
	if label == "" {
		label = name + ":"
	}
	sessionOpts := []terminal.Option{terminal.WithLabel(label)}
	if !colorEnabled(cfg, os.Stdin) {
		sessionOpts = append(sessionOpts, terminal.WithPlainStyle())
	}

	logger.Debug("starting editor",
		logging.FieldField, name,
		logging.FieldPattern, fld.Engine().Pattern(),
	)

	result, err := terminal.NewSession(screen, fld, sessionOpts...).Run(commandContext(cmd))
	if err != nil {
		return err
	}

	logger.Debug("edit accepted", logging.FieldField, name, logging.FieldOutput, result.Masked)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Value.String())
	return err
}
