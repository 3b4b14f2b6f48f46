package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestBasic(t *testing.T) {
	path := writeManifest(t, `
name: calculator
version: "0.1.0"
main: src/main.stow
errors: errors.json
strict: true
import_paths:
  - lib
  - vendor
dependencies:
  helpers: ../helpers
  mathx:
    git: https://example.com/mathx.git
    tag: v1.2.0
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if manifest.Name != "calculator" || manifest.Version != "0.1.0" {
		t.Fatalf("unexpected identity %q %q", manifest.Name, manifest.Version)
	}
	if !manifest.Strict {
		t.Fatalf("Strict not parsed")
	}
	if got := manifest.Resolve(manifest.Main); got != filepath.Join(filepath.Dir(path), "src", "main.stow") {
		t.Fatalf("Resolve(main) = %q", got)
	}
	if len(manifest.ImportPaths) != 2 || manifest.ImportPaths[1] != "vendor" {
		t.Fatalf("ImportPaths unexpected: %#v", manifest.ImportPaths)
	}
	helpers := manifest.Dependencies["helpers"]
	if helpers == nil || helpers.Path != "../helpers" {
		t.Fatalf("scalar dependency should be a path: %#v", helpers)
	}
	mathx := manifest.Dependencies["mathx"]
	if mathx == nil || mathx.Git != "https://example.com/mathx.git" || mathx.Tag != "v1.2.0" {
		t.Fatalf("git dependency not parsed: %#v", mathx)
	}
	if names := manifest.DependencyNames(); len(names) != 2 || names[0] != "helpers" {
		t.Fatalf("DependencyNames = %v", names)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, `
version: "1"
dependencies:
  nosource: {}
  pinned:
    git: https://example.com/x.git
  mixed:
    path: ./x
    git: https://example.com/x.git
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	joined := strings.Join(verr.Issues, "\n")
	for _, want := range []string{
		"name must be provided",
		"dependencies.nosource: must specify git or path",
		"dependencies.pinned: git dependencies require rev, tag, or branch",
		"dependencies.mixed: path dependencies cannot specify a git source",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing issue %q in:\n%s", want, joined)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, `
name: demo
targets:
  app: main.stow
`)
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "targets") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestEmpty(t *testing.T) {
	path := writeManifest(t, "")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	path := writeManifest(t, "name: demo")
	root := filepath.Dir(path)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	entry := filepath.Join(nested, "main.stow")
	if err := os.WriteFile(entry, []byte("print(1);\n"), 0o644); err != nil {
		t.Fatalf("write entry: %v", err)
	}

	found, err := FindManifest(entry)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %q, want %q", found, path)
	}

	none, err := FindManifest(t.TempDir())
	if err != nil || none != "" {
		t.Fatalf("expected no manifest, got %q (%v)", none, err)
	}
}
