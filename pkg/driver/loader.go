package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted by the driver.
const (
	EnvHome = "STOW_HOME"
	EnvPath = "STOW_PATH"
)

// RootKind tags where a search path came from.
type RootKind int

const (
	RootProject RootKind = iota
	RootDependency
	RootEnv
)

// SearchPath describes an import search root.
type SearchPath struct {
	Path string
	Kind RootKind
}

// Loader reads import targets. A path is first tried as written, relative
// to the working directory; relative paths that do not exist there are then
// looked up under each search root in order.
type Loader struct {
	searchPaths []SearchPath
}

// NewLoader constructs a loader, dropping empty and duplicate roots.
func NewLoader(searchPaths []SearchPath) (*Loader, error) {
	unique := make([]SearchPath, 0, len(searchPaths))
	seen := make(map[string]struct{}, len(searchPaths))
	for _, sp := range searchPaths {
		if sp.Path == "" {
			continue
		}
		abs, err := filepath.Abs(sp.Path)
		if err != nil {
			return nil, fmt.Errorf("loader: resolve search path %q: %w", sp.Path, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		unique = append(unique, SearchPath{Path: abs, Kind: sp.Kind})
	}
	return &Loader{searchPaths: unique}, nil
}

// SearchPaths returns the configured roots.
func (l *Loader) SearchPaths() []SearchPath {
	return append([]SearchPath(nil), l.searchPaths...)
}

// Load returns the resolved location and contents of path.
func (l *Loader) Load(path string) (string, []byte, error) {
	if path == "" {
		return "", nil, fmt.Errorf("loader: empty path")
	}
	data, err := os.ReadFile(path)
	if err == nil {
		return path, data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || filepath.IsAbs(path) {
		return "", nil, err
	}
	for _, sp := range l.searchPaths {
		candidate := filepath.Join(sp.Path, path)
		data, cerr := os.ReadFile(candidate)
		if cerr == nil {
			return candidate, data, nil
		}
		if !errors.Is(cerr, fs.ErrNotExist) {
			return "", nil, cerr
		}
	}
	return "", nil, err
}

// ResolveHome returns STOW_HOME or ~/.stow.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(userHome, ".stow"), nil
}

// EnvSearchPaths splits STOW_PATH on the platform list separator.
func EnvSearchPaths() []SearchPath {
	var out []SearchPath
	for _, p := range filepath.SplitList(os.Getenv(EnvPath)) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, SearchPath{Path: p, Kind: RootEnv})
		}
	}
	return out
}

// CollectSearchPaths orders roots as: manifest import_paths, installed
// dependencies from stow.lock, then STOW_PATH.
func CollectSearchPaths(m *Manifest, lock *Lockfile) []SearchPath {
	var out []SearchPath
	if m != nil {
		for _, p := range m.ImportPaths {
			out = append(out, SearchPath{Path: m.Resolve(p), Kind: RootProject})
		}
	}
	for _, dir := range lock.Dirs() {
		out = append(out, SearchPath{Path: dir, Kind: RootDependency})
	}
	return append(out, EnvSearchPaths()...)
}
