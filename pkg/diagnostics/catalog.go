// Package diagnostics maps error codes to messages and prints error reports.
package diagnostics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Error codes reported by the interpreter.
const (
	CodeSyntax            = "E001"
	CodeUndefinedVariable = "E007"
	CodeUndefinedFunction = "E010"
	CodeImport            = "E011"
	CodeIndexAssignment   = "E012"
)

// DefaultCatalogFile is looked up in the working directory when no catalog
// path is configured.
const DefaultCatalogFile = "errors.json"

// Catalog maps error codes to human readable messages.
type Catalog struct {
	messages map[string]string
}

// NewCatalog builds a catalog from an explicit table.
func NewCatalog(messages map[string]string) *Catalog {
	c := &Catalog{messages: make(map[string]string, len(messages))}
	for code, msg := range messages {
		c.messages[code] = msg
	}
	return c
}

// LoadCatalog reads a catalog file. JSON is accepted as a subset of YAML;
// three layouts are understood:
//
//	{"E007": {"message": "..."}}
//	{"E007": "..."}
//	[{"code": "E007", "message": "..."}]
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// LoadOptionalCatalog reads path if it exists. A missing file yields a nil
// catalog and no error, so reports fall back to the bare code.
func LoadOptionalCatalog(path string) (*Catalog, error) {
	if path == "" {
		path = DefaultCatalogFile
	}
	cat, err := LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("diagnostics: load catalog %s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes catalog contents.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("diagnostics: parse catalog: %w", err)
	}
	cat := &Catalog{messages: make(map[string]string)}
	switch doc := raw.(type) {
	case nil:
	case map[string]any:
		for code, entry := range doc {
			msg, err := entryMessage(entry)
			if err != nil {
				return nil, fmt.Errorf("diagnostics: entry %s: %w", code, err)
			}
			cat.messages[code] = msg
		}
	case []any:
		for idx, item := range doc {
			fields, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("diagnostics: entry %d must be a mapping", idx)
			}
			code, _ := fields["code"].(string)
			if strings.TrimSpace(code) == "" {
				return nil, fmt.Errorf("diagnostics: entry %d is missing code", idx)
			}
			msg, err := entryMessage(fields)
			if err != nil {
				return nil, fmt.Errorf("diagnostics: entry %s: %w", code, err)
			}
			cat.messages[code] = msg
		}
	default:
		return nil, fmt.Errorf("diagnostics: unsupported catalog layout %T", raw)
	}
	return cat, nil
}

func entryMessage(entry any) (string, error) {
	switch v := entry.(type) {
	case string:
		return v, nil
	case map[string]any:
		msg, ok := v["message"].(string)
		if !ok {
			return "", fmt.Errorf("message must be a string")
		}
		return msg, nil
	default:
		return "", fmt.Errorf("unsupported entry %T", entry)
	}
}

// Lookup returns the message registered for code.
func (c *Catalog) Lookup(code string) (string, bool) {
	if c == nil {
		return "", false
	}
	msg, ok := c.messages[code]
	return msg, ok
}

// Codes returns the known codes in sorted order.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	codes := make([]string, 0, len(c.messages))
	for code := range c.messages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
