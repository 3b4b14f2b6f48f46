package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Fetcher materialises one git dependency and reports what it resolved to.
type Fetcher interface {
	Fetch(name string, spec *DependencySpec) (*LockedPackage, error)
}

// Installer resolves manifest dependencies into directories the loader can
// search and records the result in stow.lock.
type Installer struct {
	Git    Fetcher
	Tool   string
	Logger *slog.Logger
}

// NewInstaller creates an installer that clones git dependencies under home.
func NewInstaller(home, tool string, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Installer{Git: NewGitFetcher(home), Tool: tool, Logger: logger}
}

// Install resolves every dependency of m and writes stow.lock next to the
// manifest.
func (in *Installer) Install(m *Manifest) (*Lockfile, error) {
	if m == nil {
		return nil, fmt.Errorf("deps: nil manifest")
	}
	lock := NewLockfile(m.Name, in.Tool)
	for _, name := range m.DependencyNames() {
		spec := m.Dependencies[name]
		if spec == nil {
			continue
		}
		var (
			pkg *LockedPackage
			err error
		)
		switch {
		case spec.Path != "":
			pkg, err = resolvePathDependency(name, m.Resolve(spec.Path))
		case spec.Git != "":
			if in.Git == nil {
				return nil, fmt.Errorf("deps: %s: git fetcher unavailable", name)
			}
			pkg, err = in.Git.Fetch(name, spec)
		default:
			err = fmt.Errorf("no source")
		}
		if err != nil {
			return nil, fmt.Errorf("deps: %s: %w", name, err)
		}
		in.Logger.Debug("dependency resolved", "name", pkg.Name, "version", pkg.Version, "dir", pkg.Dir)
		lock.Packages = append(lock.Packages, pkg)
	}
	if m.Dir() != "" {
		if err := WriteLockfile(lock, filepath.Join(m.Dir(), LockFile)); err != nil {
			return nil, err
		}
	}
	return lock, nil
}

func resolvePathDependency(name, dir string) (*LockedPackage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("path %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", abs)
	}
	checksum, err := dirChecksum(abs)
	if err != nil {
		return nil, err
	}
	return &LockedPackage{
		Name:     name,
		Version:  "path",
		Source:   "path:" + abs,
		Checksum: checksum,
		Dir:      abs,
	}, nil
}

// GitFetcher clones git dependencies into <cache>/pkg/src/<name>/<version>.
type GitFetcher struct {
	cacheDir string
}

// NewGitFetcher returns nil when cacheDir is empty.
func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{cacheDir: cacheDir}
}

func (g *GitFetcher) Fetch(name string, spec *DependencySpec) (*LockedPackage, error) {
	if g == nil {
		return nil, errors.New("git fetcher unavailable")
	}
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, fmt.Errorf("dependency %q: git URL required", name)
	}

	baseDir := filepath.Join(g.cacheDir, "pkg", "src", sanitizePathSegment(name))
	version, commit, err := ensureGitCheckout(baseDir, url, spec)
	if err != nil {
		return nil, err
	}
	checkoutDir := filepath.Join(baseDir, sanitizePathSegment(version))
	checksum, err := dirChecksum(checkoutDir)
	if err != nil {
		return nil, err
	}
	return &LockedPackage{
		Name:     name,
		Version:  version,
		Source:   fmt.Sprintf("git+%s@%s", url, commit),
		Checksum: checksum,
		Dir:      checkoutDir,
	}, nil
}

// ensureGitCheckout clones url into a scratch directory, checks out the
// requested revision and moves the tree into place. An existing checkout for
// the same pinned version is reused.
func ensureGitCheckout(baseDir, url string, spec *DependencySpec) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	revision, descriptor, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", "", err
	}
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		if _, err := os.Stat(filepath.Join(baseDir, sanitizePathSegment(rev))); err == nil {
			return rev, rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		cleanup()
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		cleanup()
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	version := gitPinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		cleanup()
		return version, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		cleanup()
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		cleanup()
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		cleanup()
		return "", "", err
	}
	return version, hash.String(), nil
}

func gitPinnedVersion(descriptor, commit string) string {
	commit = strings.TrimSpace(commit)
	descriptor = strings.TrimSpace(descriptor)
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func gitRevisionFromSpec(spec *DependencySpec) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("git dependencies require rev, tag, or branch")
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "head"
	}
	return b.String()
}

// dirChecksum hashes file names and contents under path, skipping .git.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
