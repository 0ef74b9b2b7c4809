package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomask/internal/configloader"
	"github.com/yaklabco/gomask/internal/terminal"
	"github.com/yaklabco/gomask/pkg/field"
	"github.com/yaklabco/gomask/pkg/fsutil"
	"github.com/yaklabco/gomask/pkg/record"
	"github.com/yaklabco/gomask/pkg/runner"
)

// Exit codes for gomask.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a generic failure.
	ExitFailure = 1

	// ExitCancelled indicates the user left an interactive edit without accepting.
	ExitCancelled = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates input that is not valid JSON.
	ExitDataError = 65

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, terminal.ErrCancelled):
		return ExitCancelled
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrNotTerminal),
		errors.Is(err, runner.ErrInvalidGlob):
		return ExitInvalidUsage
	case errors.As(err, &validationErr),
		errors.Is(err, configloader.ErrUnknownField),
		errors.Is(err, configloader.ErrPathNotProvided),
		errors.Is(err, field.ErrMaskNotProvided),
		errors.Is(err, ErrConfigLoad),
		errors.Is(err, ErrNoBindings):
		return ExitConfigError
	case errors.Is(err, record.ErrInvalidJSON):
		return ExitDataError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
