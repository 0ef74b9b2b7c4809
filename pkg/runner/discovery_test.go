package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomask/pkg/runner"
)

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"a.json",
		"b.NDJSON",
		"c.jsonl",
		"readme.md",
		"raw.txt",
		".hidden.json",
		".git/config.json",
		"data/x.json",
		"data/fixtures/y.json",
		"vendor/z.json",
	} {
		writeFile(t, filepath.Join(dir, name), "{}")
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "walks working directory by default",
			opts: runner.Options{},
			want: []string{"a.json", "b.NDJSON", "c.jsonl", "data/fixtures/y.json", "data/x.json", "vendor/z.json"},
		},
		{
			name: "named file is kept regardless of extension",
			opts: runner.Options{Paths: []string{"raw.txt", "a.json"}},
			want: []string{"a.json", "raw.txt"},
		},
		{
			name: "duplicates are removed",
			opts: runner.Options{Paths: []string{"data", "data/x.json", "./data"}},
			want: []string{"data/fixtures/y.json", "data/x.json"},
		},
		{
			name: "exclude directory glob",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/fixtures"}},
			want: []string{"a.json", "b.NDJSON", "c.jsonl", "data/x.json"},
		},
		{
			name: "exclude base name glob",
			opts: runner.Options{ExcludeGlobs: []string{"*.jsonl", "x.json"}},
			want: []string{"a.json", "b.NDJSON", "data/fixtures/y.json", "vendor/z.json"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".md"}},
			want: []string{"readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), "{}")
	writeFile(t, filepath.Join(outside, "linked.json"), "{}")

	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.json")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, relPaths(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "a.json"))
	assert.ElementsMatch(t, []string{"a.json", "linked.json"},
		[]string{filepath.Base(files[0]), filepath.Base(files[1])})
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.ErrorIs(t, err, runner.ErrInvalidGlob)
}
