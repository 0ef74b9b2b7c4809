package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for one working directory.
// An empty string means the file does not exist.
type ConfigPaths struct {
	System   string // machine-wide, e.g. /etc/gomask/config.yaml
	User     string // $XDG_CONFIG_HOME/gomask/config.yaml
	Project  string // nearest .gomask.yml at or above the working directory
	Explicit string // --config
	DotEnv   string // .env in the working directory
}

const (
	appDir     = "gomask"
	dotEnvFile = ".env"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// globalConfigNames are looked up in the system and user directories.
	globalConfigNames = []string{"config.yaml", "config.yml"}

	// projectConfigNames are looked up in each directory during the upward
	// search. Earlier names win.
	projectConfigNames = []string{".gomask.yml", ".gomask.yaml", ".gomask.json", "gomask.yml", "gomask.yaml"}

	// repoMarkers end the upward search.
	repoMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project configuration files and
// the .env file for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{Project: project}
	if dir := systemConfigDir(); dir != "" {
		paths.System = firstFile(dir, globalConfigNames)
	}
	if dir := userConfigDir(); dir != "" {
		paths.User = firstFile(dir, globalConfigNames)
	}
	if isFile(filepath.Join(workDir, dotEnvFile)) {
		paths.DotEnv = filepath.Join(workDir, dotEnvFile)
	}

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDir)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appDir)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project configuration file it sees. The walk gives up at
// a repository root or the home directory; an empty result is not an error.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstFile(dir, projectConfigNames); found != "" {
			return found, nil
		}
		if dir == home || hasRepoMarker(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func hasRepoMarker(dir string) bool {
	for _, marker := range repoMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		if candidate := filepath.Join(dir, name); isFile(candidate) {
			return candidate
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
