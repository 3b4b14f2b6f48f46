package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"stow/interpreter-go/pkg/diagnostics"
	"stow/interpreter-go/pkg/driver"
	"stow/interpreter-go/pkg/interpreter"
)

var errNoEntry = errors.New("stow run requires a source file or a stow.yml with a main entry")

// session is an interpreter configured from the project surrounding an
// entry point.
type session struct {
	manifest *driver.Manifest
	lock     *driver.Lockfile
	interp   *interpreter.Interpreter
	logger   *slog.Logger
}

func (c *cli) isTerminal() bool {
	fd := c.stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// errWriter translates ANSI colour sequences on consoles that need it.
func (c *cli) errWriter() io.Writer {
	if c.isTerminal() {
		return colorable.NewColorable(c.stderr)
	}
	return c.stderr
}

func (c *cli) paintError(msg string) string {
	if !c.isTerminal() {
		return msg
	}
	return "\x1b[31m" + msg + "\x1b[0m"
}

func (c *cli) newLogger() *slog.Logger {
	if !c.verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(c.errWriter(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openSession discovers the manifest for entry (a file or directory), loads
// the lockfile and error catalog it points at and builds the interpreter.
func (c *cli) openSession(entry string, input interpreter.LineReader) (*session, error) {
	logger := c.newLogger()
	s := &session{logger: logger}

	manifestPath, err := driver.FindManifest(entry)
	if err != nil {
		return nil, err
	}
	if manifestPath != "" {
		if s.manifest, err = driver.LoadManifest(manifestPath); err != nil {
			return nil, err
		}
		logger.Debug("manifest loaded", "path", manifestPath, "name", s.manifest.Name)
		if s.lock, err = loadLockfileForManifest(s.manifest); err != nil {
			return nil, err
		}
	}

	catalog, err := c.loadCatalog(s.manifest)
	if err != nil {
		return nil, err
	}
	loader, err := driver.NewLoader(driver.CollectSearchPaths(s.manifest, s.lock))
	if err != nil {
		return nil, err
	}
	for _, sp := range loader.SearchPaths() {
		logger.Debug("import search path", "path", sp.Path, "kind", sp.Kind)
	}

	s.interp = interpreter.New(interpreter.Config{
		Stdout:  c.stdout,
		Stderr:  c.stderr,
		Input:   input,
		Catalog: catalog,
		Loader:  loader,
		Strict:  c.strict || (s.manifest != nil && s.manifest.Strict),
		Logger:  logger,
	})
	return s, nil
}

// loadCatalog prefers --errors, then the manifest's errors entry, then an
// optional errors.json in the working directory.
func (c *cli) loadCatalog(manifest *driver.Manifest) (*diagnostics.Catalog, error) {
	switch {
	case c.errorsPath != "":
		return diagnostics.LoadCatalog(c.errorsPath)
	case manifest != nil && manifest.Errors != "":
		return diagnostics.LoadCatalog(manifest.Resolve(manifest.Errors))
	default:
		return diagnostics.LoadOptionalCatalog("")
	}
}

func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	lockPath := filepath.Join(manifest.Dir(), driver.LockFile)
	lock, err := driver.LoadLockfile(lockPath)
	if err == nil {
		return lock, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if len(manifest.Dependencies) > 0 {
		return nil, fmt.Errorf("%s not found; run 'stow deps install'", driver.LockFile)
	}
	return nil, nil
}

func (c *cli) runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open file '%s': %w", path, err)
	}
	s, err := c.openSession(path, nil)
	if err != nil {
		return err
	}
	s.logger.Debug("running", "path", path)
	return s.interp.Run(string(source))
}

func (c *cli) runManifestMain() error {
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		return err
	}
	if manifestPath == "" {
		return errNoEntry
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	if manifest.Main == "" {
		return errNoEntry
	}
	return c.runFile(manifest.Resolve(manifest.Main))
}
