package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/logging"
	"github.com/yaklabco/gomask/internal/ui/pretty"
	"github.com/yaklabco/gomask/pkg/config"
	"github.com/yaklabco/gomask/pkg/field"
	"github.com/yaklabco/gomask/pkg/mask"
)

// ErrUsage marks errors in command-line usage.
var ErrUsage = errors.New("invalid usage")

type maskFlags struct {
	field    string
	format   string
	parseInt bool
}

// maskResult is one line of JSON output from mask.
type maskResult struct {
	Input  string `json:"input"`
	Masked string `json:"masked"`
}

// unmaskResult is one line of JSON output from unmask. Raw is a string, an
// integer, or null when integer parsing failed.
type unmaskResult struct {
	Input string `json:"input"`
	Raw   any    `json:"raw"`
}

// converter turns one input into its text line and its JSON value.
type converter func(input string) (string, any)

func newMaskCommand() *cobra.Command {
	flags := &maskFlags{}

	cmd := &cobra.Command{
		Use:   "mask [PATTERN] [RAW...]",
		Short: "Format raw values with a mask",
		Long: `Format raw values against a mask pattern. Characters a slot rejects are
dropped and the next character is tried in the same slot. Unfilled slots
are shown as blanks.

Values come from the arguments, or one per line from stdin when there are
none. With --field the pattern is taken from the named field in the
configuration and every argument is a value.

Examples:
  gomask mask "(NNN) NNN-NNNN" 5551234567
  gomask mask --field phone 5551234567
  cut -f2 contacts.tsv | gomask mask "NNNNN-NNNN"
  gomask mask --format json "SS-NNN" ab123`,
		Args: patternArgs(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMask(cmd, args, flags, false)
		},
	}

	addMaskFlags(cmd, flags)

	return cmd
}

func newUnmaskCommand() *cobra.Command {
	flags := &maskFlags{}

	cmd := &cobra.Command{
		Use:   "unmask [PATTERN] [MASKED...]",
		Short: "Strip a mask from masked values",
		Long: `Strip a mask from masked values, keeping only what sits in token slots.
Literals and blanks are removed.

With --parse-int the raw text is parsed as a base-10 integer; a value that
does not parse prints as an empty line (null in JSON). When --field is
given the field's parse_int setting is the default.

Examples:
  gomask unmask "(NNN) NNN-NNNN" "(555) 123-4567"
  gomask unmask --parse-int "NNNNN" "02139"
  gomask unmask --field zip < zips.txt`,
		Args: patternArgs(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMask(cmd, args, flags, true)
		},
	}

	addMaskFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.parseInt, "parse-int", false, "parse the unmasked value as an integer")

	return cmd
}

func addMaskFlags(cmd *cobra.Command, flags *maskFlags) {
	cmd.Flags().StringVar(&flags.field, "field", "", "take the pattern from a configured field")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
}

// patternArgs requires a PATTERN argument unless --field names one.
func patternArgs(flags *maskFlags) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if flags.field == "" && len(args) == 0 {
			return fmt.Errorf("%w: requires a PATTERN argument or --field", ErrUsage)
		}
		return nil
	}
}

func runMask(cmd *cobra.Command, args []string, flags *maskFlags, unmask bool) error {
	logger := logging.FromContext(commandContext(cmd))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine, inputs, err := resolveEngine(cmd, cfg, flags, args)
	if err != nil {
		return err
	}

	logger.Debug("resolved mask",
		logging.FieldPattern, engine.Pattern(),
		logging.FieldSlots, engine.SlotCount(),
		logging.FieldField, flags.field,
	)

	out := cmd.OutOrStdout()
	convert := masker(engine, newStyles(cfg, out))
	if unmask {
		convert = unmasker(engine, flags.parseInt)
	}

	emit := func(input string) error {
		text, value := convert(input)
		return writeLine(out, cfg.Format, text, value)
	}

	if len(inputs) > 0 {
		for _, input := range inputs {
			if err := emit(input); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	return nil
}

// resolveEngine returns the engine named by --field or by the first
// argument, and the arguments left over as inputs.
func resolveEngine(cmd *cobra.Command, cfg *config.Config, flags *maskFlags, args []string) (*mask.Engine, []string, error) {
	if flags.field != "" {
		fld, err := configloader.NewField(cfg, flags.field)
		if err != nil {
			return nil, nil, err
		}
		if fc, ok := cfg.Field(flags.field); ok && !cmd.Flags().Changed("parse-int") {
			flags.parseInt = fc.ParseInt
		}
		return fld.Engine(), args, nil
	}

	if args[0] == "" {
		return nil, nil, field.ErrMaskNotProvided
	}

	registry, err := configloader.Registry(cfg)
	if err != nil {
		return nil, nil, err
	}
	return mask.New(args[0], registry), args[1:], nil
}

func masker(engine *mask.Engine, styles *pretty.Styles) converter {
	return func(input string) (string, any) {
		masked := engine.Mask(input)
		return styles.RenderMasked(engine, masked, pretty.NoCaret), maskResult{Input: input, Masked: masked}
	}
}

func unmasker(engine *mask.Engine, parseInt bool) converter {
	return func(input string) (string, any) {
		if !parseInt {
			raw := engine.Unmask(input)
			return raw, unmaskResult{Input: input, Raw: raw}
		}
		if n, ok := engine.UnmaskInt(input); ok {
			return strconv.FormatInt(n, 10), unmaskResult{Input: input, Raw: n}
		}
		return "", unmaskResult{Input: input}
	}
}

func writeLine(w io.Writer, format config.OutputFormat, text string, value any) error {
	if format == config.FormatJSON {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		text = string(data)
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
