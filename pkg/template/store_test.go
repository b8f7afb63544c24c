package template_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dobrovols/mklaunch/pkg/template"
)

const manifestSource = "templates.json"

func TestLoadManifestIndexesTemplatesByName(t *testing.T) {
	raw := []byte(`{
		"templates": [
			{"name": "cpp", "type": "cppdbg", "program": "${workspaceFolder}/bin/app", "MIMode": "gdb"},
			{"name": "lldb", "type": "lldb", "request": "launch"}
		]
	}`)

	store, err := template.LoadManifest(raw, manifestSource)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 templates, got %d", store.Len())
	}

	cpp, err := store.Lookup("cpp")
	if err != nil {
		t.Fatalf("lookup cpp: %v", err)
	}
	if cpp.Type != "cppdbg" {
		t.Fatalf("expected type cppdbg, got %s", cpp.Type)
	}
	if cpp.Rest.Has("name") {
		t.Fatal("manifest name key must not leak into template rest")
	}

	if _, err := store.Lookup("missing"); !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestLoadManifestFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"missingTemplatesKey", `{"other": []}`, template.ErrManifestMissingTemplates},
		{"templatesNotArray", `{"templates": {"cpp": {}}}`, template.ErrManifestMissingTemplates},
		{"emptyTemplates", `{"templates": []}`, template.ErrManifestEmpty},
		{"entryMissingName", `{"templates": [{"type": "cppdbg"}]}`, template.ErrManifestEntryName},
		{"duplicateName", `{"templates": [{"name": "cpp", "type": "a"}, {"name": "cpp", "type": "b"}]}`, template.ErrDuplicateTemplateName},
		{"reservedArgs", `{"templates": [{"name": "cpp", "type": "cppdbg", "args": []}]}`, template.ErrReservedArgs},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := template.LoadManifest([]byte(tc.raw), manifestSource)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadManifestFileReportsMissingPath(t *testing.T) {
	_, err := template.LoadManifestFile(filepath.Join(t.TempDir(), "templates.json"))
	if err == nil {
		t.Fatal("expected error for missing manifest file")
	}
}

func TestDirectoryStoreLookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cpp.json"), `{"type": "cppdbg", "MIMode": "gdb"}`)

	store := template.NewDirectoryStore(dir)
	tpl, err := store.Lookup("cpp")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tpl.Type != "cppdbg" {
		t.Fatalf("expected type cppdbg, got %s", tpl.Type)
	}

	// Second lookup returns the cached parse.
	again, err := store.Lookup("cpp")
	if err != nil {
		t.Fatalf("lookup cached: %v", err)
	}
	if again != tpl {
		t.Fatal("expected cached template instance")
	}
}

func TestDirectoryStoreLookupMissing(t *testing.T) {
	store := template.NewDirectoryStore(t.TempDir())
	if _, err := store.Lookup("nonexistent"); !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestDirectoryStoreFallsBackToJSONCExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "node.jsonc"), `{"type": "node"} // attach later`)

	store := template.NewDirectoryStore(dir)
	tpl, err := store.Lookup("node")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tpl.Type != "node" {
		t.Fatalf("expected type node, got %s", tpl.Type)
	}
}

func TestDirectoryStoreInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.json"), `{"type": "cppdbg", "args": ["--x"]}`)

	store := template.NewDirectoryStore(dir)
	if _, err := store.Lookup("bad"); !errors.Is(err, template.ErrReservedArgs) {
		t.Fatalf("expected ErrReservedArgs, got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
