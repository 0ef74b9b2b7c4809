// Package runner applies record bindings to many JSON files concurrently.
package runner

// Options controls which files a run visits and how many it processes at once.
type Options struct {
	// Paths are files or directories. Named files are always processed;
	// directories are walked for files with a matching extension.
	// Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and glob matches. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions (lowercase, with leading dot) select files inside
	// directories. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Write replaces each changed file in place instead of returning its
	// output.
	Write bool

	// Diff records a unified diff of each changed file.
	Diff bool
}

// DefaultExtensions returns the extensions of JSON and NDJSON files.
func DefaultExtensions() []string {
	return []string{".json", ".ndjson", ".jsonl"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
