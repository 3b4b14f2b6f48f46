package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the project manifest name looked up by FindManifest.
const ManifestFile = "stow.yml"

// Manifest represents the parsed contents of stow.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Main         string
	Errors       string
	Strict       bool
	ImportPaths  []string
	Dependencies map[string]*DependencySpec
}

// DependencySpec describes where a dependency's sources come from: a git
// repository pinned by rev, tag or branch, or a local directory.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses stow.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from start looking for stow.yml. It returns an empty
// path and no error when none exists.
func FindManifest(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestFile)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	if m == nil || m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

// Resolve interprets p relative to the manifest directory.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir() == "" {
		return p
	}
	return filepath.Join(m.Dir(), p)
}

// DependencyNames returns dependency names in sorted order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for i, p := range m.ImportPaths {
		if p == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("import_paths[%d] must be a non-empty string", i))
		}
	}
	for _, name := range m.DependencyNames() {
		dep := m.Dependencies[name]
		if dep == nil {
			continue
		}
		for _, issue := range dep.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) validate() []string {
	var errs []string
	if d.Path != "" && d.Git != "" {
		errs = append(errs, "path dependencies cannot specify a git source")
	}
	if d.Path == "" && d.Git == "" {
		errs = append(errs, "must specify git or path")
	}
	if d.Git != "" && d.Rev == "" && d.Tag == "" && d.Branch == "" {
		errs = append(errs, "git dependencies require rev, tag, or branch")
	}
	if d.Path != "" && (d.Rev != "" || d.Tag != "" || d.Branch != "") {
		errs = append(errs, "rev, tag and branch apply only to git dependencies")
	}
	return errs
}

type manifestFile struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Main         string        `yaml:"main"`
	Errors       string        `yaml:"errors"`
	Strict       bool          `yaml:"strict"`
	ImportPaths  stringList    `yaml:"import_paths"`
	Dependencies dependencyMap `yaml:"dependencies"`
}

type dependencyMap map[string]*DependencySpec

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:         path,
		Name:         strings.TrimSpace(mf.Name),
		Version:      strings.TrimSpace(mf.Version),
		Main:         strings.TrimSpace(mf.Main),
		Errors:       strings.TrimSpace(mf.Errors),
		Strict:       mf.Strict,
		ImportPaths:  []string(mf.ImportPaths),
		Dependencies: make(map[string]*DependencySpec, len(mf.Dependencies)),
	}
	for name, dep := range mf.Dependencies {
		if dep == nil {
			continue
		}
		copy := *dep
		result.Dependencies[name] = &copy
	}
	return result
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, strings.TrimSpace(str))
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (dm *dependencyMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		*dm = make(dependencyMap)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: dependencies must be a mapping")
	}
	result := make(dependencyMap, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: dependency names must be non-empty")
		}
		var dep DependencySpec
		if err := dep.unmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("manifest: dependency %q: %w", key, err)
		}
		result[key] = &dep
	}
	*dm = result
	return nil
}

// unmarshalYAML accepts either a bare path string or a mapping.
func (d *DependencySpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*d = DependencySpec{}
			return nil
		}
		*d = DependencySpec{Path: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
			Path   string `yaml:"path"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*d = DependencySpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Path:   strings.TrimSpace(raw.Path),
		}
		return nil
	case yaml.AliasNode:
		return d.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}
