package runner

import (
	"github.com/yaklabco/gomask/pkg/diff"
	"github.com/yaklabco/gomask/pkg/record"
)

// FileOutcome is what happened to one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Stats counts the records in the file and how many changed.
	Stats record.Stats

	// Output is the rewritten content when the run does not write files.
	Output []byte

	// Diff is set for changed files when Options.Diff is enabled.
	Diff *diff.Unified

	// Written is true when the file was replaced on disk.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWritten    int

	// Records sums the per-file record counts.
	Records record.Stats
}

// Result is the overall outcome of a run, with files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, file := range r.Files {
		if file.Error != nil {
			errs = append(errs, file.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	r.Stats.Records.Records += outcome.Stats.Records
	r.Stats.Records.Changed += outcome.Stats.Changed

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
