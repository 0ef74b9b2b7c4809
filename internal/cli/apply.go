package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/logging"
	"github.com/yaklabco/gomask/internal/ui/pretty"
	"github.com/yaklabco/gomask/pkg/diff"
	"github.com/yaklabco/gomask/pkg/record"
	"github.com/yaklabco/gomask/pkg/runner"
)

// ErrNoBindings is returned by apply when no configured field has a path.
var ErrNoBindings = errors.New("no configured field has a path")

type applyFlags struct {
	unmask         bool
	write          bool
	fields         []string
	exclude        []string
	jobs           int
	followSymlinks bool
	diff           bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [PATHS...]",
		Short: "Mask or unmask fields inside JSON documents",
		Long:  applyLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.unmask, "unmask", false, "strip masks instead of applying them")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place instead of printing")
	cmd.Flags().StringSliceVar(&flags.fields, "field", nil, "limit to these configured fields")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip paths matching these globs")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files processed concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk symlinked directories")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print a unified diff of changes instead of documents")

	return cmd
}

const applyLongDescription = `Apply configured field masks to values inside JSON documents.

Every field with a "path" in the configuration is bound to that gjson path.
Input is either a single JSON document or newline-delimited JSON records.
Missing paths and values that are not strings or numbers are left alone;
everything else in the document is preserved byte for byte.

Named files are always processed. Directories are walked for .json,
.ndjson, and .jsonl files, skipping hidden entries. With no paths, input
is read from stdin and written to stdout.

A file is only rewritten if its content changes, and never if it was
modified on disk while gomask was working on it. Use --diff to preview
what --write would change.

Examples:
  gomask apply contacts.json              # Print masked documents
  gomask apply --diff data/               # Preview changes
  gomask apply --write data/              # Rewrite every file under data/
  gomask apply -w . --exclude 'vendor/**'
  gomask apply --unmask --field zip < in.ndjson
  curl -s api/contacts | gomask apply`

func runApply(cmd *cobra.Command, args []string, flags *applyFlags) error {
	logger := logging.FromContext(commandContext(cmd))
	ctx := commandContext(cmd)

	if flags.write && len(args) == 0 {
		return fmt.Errorf("%w: --write needs at least one path", ErrUsage)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mode := record.ModeMask
	if flags.unmask {
		mode = record.ModeUnmask
	}

	bindings, err := configloader.Bindings(cfg, flags.fields, mode)
	if err != nil {
		return err
	}
	if len(bindings) == 0 {
		return ErrNoBindings
	}

	logger.Debug("applying fields",
		logging.FieldBindings, len(bindings),
		logging.FieldMode, mode,
		logging.FieldPaths, args,
	)

	out := cmd.OutOrStdout()
	styles := newStyles(cfg, out)

	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result, _, err := record.Process(ctx, data, bindings)
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		if flags.diff {
			_, err = io.WriteString(out, styles.FormatDiff(diff.Compute("stdin", data, result), "stdin"))
			return err
		}
		_, err = out.Write(result)
		return err
	}

	result, err := runner.New(bindings).Run(ctx, runner.Options{
		Paths:          args,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Write:          flags.write,
		Diff:           flags.diff,
	})
	if err != nil {
		return err
	}

	var errs []error

	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("apply failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
			errs = append(errs, file.Error)
			continue
		}

		logger.Debug("applied",
			logging.FieldPath, file.Path,
			logging.FieldRecords, file.Stats.Records,
			logging.FieldChanged, file.Stats.Changed,
			logging.FieldWritten, file.Written,
		)

		var err error
		switch {
		case flags.diff:
			_, err = io.WriteString(out, styles.FormatDiff(file.Diff, displayPath(file.Path)))
		case len(file.Output) > 0:
			_, err = out.Write(file.Output)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	summary := pretty.ApplySummary{
		Files:   result.Stats.FilesDiscovered,
		Stats:   result.Stats.Records,
		Written: result.Stats.FilesWritten,
	}

	errOut := cmd.ErrOrStderr()
	if _, err := io.WriteString(errOut, newStyles(cfg, errOut).FormatApplySummary(summary)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// displayPath shortens an absolute path to one relative to the working
// directory, unless that climbs out of it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
