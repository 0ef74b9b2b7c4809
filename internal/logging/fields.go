// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFormat   = "format"
	FieldColor    = "color"
	FieldFields   = "fields"
	FieldWarnings = "warnings"

	// Mask fields.
	FieldPattern = "pattern"
	FieldField   = "field"
	FieldMode    = "mode"
	FieldSlots   = "slots"
	FieldTokens  = "tokens"
	FieldCaret   = "caret"

	// Statistics fields.
	FieldRecords  = "records"
	FieldChanged  = "changed"
	FieldBindings = "bindings"
	FieldJobs     = "jobs"
	FieldWritten  = "written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
