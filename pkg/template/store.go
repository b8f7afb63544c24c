package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/dobrovols/mklaunch/pkg/jsonval"
)

var (
	// ErrManifestMissingTemplates is returned when the manifest lacks a templates array.
	ErrManifestMissingTemplates = errors.New(`templates manifest must contain a "templates" array`)
	// ErrManifestEmpty is returned when the manifest defines no templates.
	ErrManifestEmpty = errors.New("templates manifest must define at least one template")
	// ErrDuplicateTemplateName is returned when two manifest entries share a name.
	ErrDuplicateTemplateName = errors.New("duplicate template name")
	// ErrManifestEntryName is returned when a manifest entry lacks a string name.
	ErrManifestEntryName = errors.New(`template entry missing required "name" field`)
)

// ManifestStore holds every template of a manifest file, keyed by name.
type ManifestStore struct {
	source    string
	templates map[string]*Template
}

// LoadManifest parses a manifest document of the shape
// {"templates": [{"name": ..., ...fields}, ...]}. The source identifier is
// used in error messages only.
func LoadManifest(raw []byte, source string) (*ManifestStore, error) {
	root, err := jsonval.DecodeObject(jsonc.ToJSON(raw))
	if err != nil {
		return nil, fmt.Errorf("parse templates manifest %s: %w", source, err)
	}

	templatesValue, ok := root.Get("templates")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrManifestMissingTemplates, source)
	}
	entries, ok := templatesValue.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrManifestMissingTemplates, source)
	}

	store := &ManifestStore{source: source, templates: make(map[string]*Template, len(entries))}
	for idx, entry := range entries {
		obj, ok := entry.(*jsonval.Object)
		if !ok {
			return nil, fmt.Errorf("template entry at index %d in %s: %w", idx, source, ErrNotObject)
		}
		name, ok := obj.StringField(fieldName)
		if !ok {
			return nil, fmt.Errorf("%w: entry at index %d in %s", ErrManifestEntryName, idx, source)
		}
		if _, exists := store.templates[name]; exists {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateTemplateName, name, source)
		}

		// The name keys the store; it is not part of the template body.
		obj.Delete(fieldName)
		tpl, err := fromObject(obj)
		if err != nil {
			return nil, fmt.Errorf("invalid template %q in %s: %w", name, source, err)
		}
		store.templates[name] = tpl
	}

	if len(store.templates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrManifestEmpty, source)
	}
	return store, nil
}

// LoadManifestFile reads and parses the manifest at path.
func LoadManifestFile(path string) (*ManifestStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates manifest %s: %w", path, err)
	}
	return LoadManifest(raw, path)
}

// Lookup returns the template stored under name.
func (s *ManifestStore) Lookup(name string) (*Template, error) {
	tpl, ok := s.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrTemplateNotFound, name, s.source)
	}
	return tpl, nil
}

// Len reports the number of templates held by the store.
func (s *ManifestStore) Len() int { return len(s.templates) }

// DirectoryStore resolves templates from a directory holding one JSON
// file per template; the filename minus its extension is the template
// name. Parsed templates are cached for the lifetime of the store.
type DirectoryStore struct {
	dir    string
	parsed map[string]*Template
}

// NewDirectoryStore constructs a store over dir.
func NewDirectoryStore(dir string) *DirectoryStore {
	return &DirectoryStore{dir: dir, parsed: map[string]*Template{}}
}

// Lookup loads and validates the template file named after name.
func (s *DirectoryStore) Lookup(name string) (*Template, error) {
	if tpl, ok := s.parsed[name]; ok {
		return tpl, nil
	}

	path := filepath.Join(s.dir, name+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if alt, altErr := os.ReadFile(filepath.Join(s.dir, name+".jsonc")); altErr == nil {
				raw = alt
				path = filepath.Join(s.dir, name+".jsonc")
			} else {
				return nil, fmt.Errorf("%w: %q (expected %s)", ErrTemplateNotFound, name, path)
			}
		} else {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
	}

	tpl, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid template %s: %w", path, err)
	}
	s.parsed[name] = tpl
	return tpl, nil
}
