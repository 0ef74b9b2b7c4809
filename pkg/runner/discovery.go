package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidGlob is returned by Discover for an exclude pattern that does
// not compile.
var ErrInvalidGlob = errors.New("invalid glob")

// Discover resolves opts.Paths to a sorted, de-duplicated list of absolute
// file paths. Named files are kept whatever their extension; directories
// contribute files with one of opts.Extensions. Hidden entries inside
// directories are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileExcludes(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		ctx:      ctx,
		workDir:  workDir,
		exts:     opts.extensions(),
		excludes: excludes,
		follow:   opts.FollowSymlinks,
		seen:     make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !walker.excluded(abs, false) {
				walker.add(abs)
			}
			continue
		}

		if err := walker.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(walker.files)
	return walker.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type walker struct {
	ctx      context.Context
	workDir  string
	exts     []string
	excludes []exclude
	follow   bool
	seen     map[string]struct{}
	files    []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// exclude is a compiled exclude pattern. Patterns without a slash match
// the base name at any depth.
type exclude struct {
	glob     glob.Glob
	baseName bool
}

func compileExcludes(patterns []string) ([]exclude, error) {
	excludes := make([]exclude, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidGlob, pattern, err)
		}
		excludes = append(excludes, exclude{glob: g, baseName: !strings.Contains(pattern, "/")})
	}
	return excludes, nil
}

// excluded reports whether path matches an exclude pattern, relative to the
// working directory. A directory also matches as "dir/", so "dir/**"
// excludes dir itself.
func (w *walker) excluded(path string, dir bool) bool {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, ex := range w.excludes {
		if ex.glob.Match(rel) || (dir && ex.glob.Match(rel+"/")) || (ex.baseName && ex.glob.Match(base)) {
			return true
		}
	}
	return false
}

func (w *walker) hasExtension(path string) bool {
	return slices.Contains(w.exts, strings.ToLower(filepath.Ext(path)))
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && w.excluded(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || w.excluded(path, false) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}

		if w.hasExtension(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink adds a linked file, or walks a linked directory when following
// is enabled. Broken links are ignored.
func (w *walker) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if !info.IsDir() {
		if w.hasExtension(path) {
			w.add(path)
		}
		return nil
	}
	if !w.follow {
		return nil
	}
	// WalkDir uses Lstat on its root, so walking the target cannot recurse
	// through the link itself.
	return w.walk(target)
}
