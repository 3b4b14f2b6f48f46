package driver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderPrefersPathAsWritten(t *testing.T) {
	work := t.TempDir()
	lib := t.TempDir()
	writeFile(t, filepath.Join(work, "util.stow"), `var where = "cwd";`)
	writeFile(t, filepath.Join(lib, "util.stow"), `var where = "lib";`)
	writeFile(t, filepath.Join(lib, "only", "lib.stow"), `var where = "search";`)
	t.Chdir(work)

	loader, err := NewLoader([]SearchPath{{Path: lib, Kind: RootProject}, {Path: lib}, {Path: ""}})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if len(loader.SearchPaths()) != 1 {
		t.Fatalf("duplicate roots should collapse: %v", loader.SearchPaths())
	}

	resolved, data, err := loader.Load("util.stow")
	if err != nil || resolved != "util.stow" || string(data) != "var where = \"cwd\";\n" {
		t.Fatalf("Load(util.stow) = %q %q %v", resolved, data, err)
	}
	resolved, _, err = loader.Load("only/lib.stow")
	if err != nil || resolved != filepath.Join(lib, "only", "lib.stow") {
		t.Fatalf("Load(only/lib.stow) = %q %v", resolved, err)
	}
	if _, _, err := loader.Load("missing.stow"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEnvSearchPathsAndHome(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	t.Setenv(EnvPath, a+string(os.PathListSeparator)+" "+string(os.PathListSeparator)+b)
	paths := EnvSearchPaths()
	if len(paths) != 2 || paths[0].Path != a || paths[1].Kind != RootEnv {
		t.Fatalf("EnvSearchPaths = %#v", paths)
	}

	t.Setenv(EnvHome, "/opt/stow")
	if home, err := ResolveHome(); err != nil || home != "/opt/stow" {
		t.Fatalf("ResolveHome = %q %v", home, err)
	}
}

func TestCollectSearchPathsOrder(t *testing.T) {
	t.Setenv(EnvPath, "/env/lib")
	manifest := &Manifest{Path: "/proj/stow.yml", ImportPaths: []string{"lib", "/abs"}}
	lock := &Lockfile{Packages: []*LockedPackage{{Name: "dep", Dir: "/cache/dep"}}}

	paths := CollectSearchPaths(manifest, lock)
	want := []SearchPath{
		{Path: filepath.Join("/proj", "lib"), Kind: RootProject},
		{Path: "/abs", Kind: RootProject},
		{Path: "/cache/dep", Kind: RootDependency},
		{Path: "/env/lib", Kind: RootEnv},
	}
	if len(paths) != len(want) {
		t.Fatalf("CollectSearchPaths = %#v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path %d = %#v, want %#v", i, paths[i], want[i])
		}
	}
	if got := CollectSearchPaths(nil, nil); len(got) != 1 {
		t.Fatalf("nil manifest and lock should leave only env roots: %#v", got)
	}
}
