package validation_test

import (
	"strings"
	"testing"

	"github.com/dobrovols/mklaunch/internal/validation"
)

func TestConfigSourceAcceptsValidDocument(t *testing.T) {
	raw := []byte(`[
		{"name": "Debug", "extends": "cpp", "enabled": true, "args": ["--x"]},
		{"name": "Attach", "extends": "lldb", "enabled": false, "baseArgs": "base.json"}
	]`)
	if err := validation.ConfigSource(raw, "configs/a.json"); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestConfigSourceAcceptsJSONC(t *testing.T) {
	raw := []byte(`[
		// enabled for local debugging
		{"name": "Debug", "extends": "cpp", "enabled": true},
	]`)
	if err := validation.ConfigSource(raw, "configs/a.jsonc"); err != nil {
		t.Fatalf("expected JSONC document to validate, got %v", err)
	}
}

func TestConfigSourceRejections(t *testing.T) {
	cases := map[string]string{
		"bareObject":     `{"name": "Old", "extends": "cpp", "enabled": true}`,
		"missingEnabled": `[{"name": "T", "extends": "cpp"}]`,
		"pathExtends":    `[{"name": "T", "extends": "../evil", "enabled": true}]`,
		"unknownField":   `[{"name": "T", "extends": "cpp", "enabled": true, "cwd": "/tmp"}]`,
		"numericArgs":    `[{"name": "T", "extends": "cpp", "enabled": true, "args": [1]}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			err := validation.ConfigSource([]byte(raw), "configs/a.json")
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !strings.Contains(err.Error(), "configs/a.json") {
				t.Fatalf("expected error to carry source, got %v", err)
			}
		})
	}
}

func TestBaseArgs(t *testing.T) {
	if err := validation.BaseArgs([]byte(`{"args": ["a", "b"]}`), "base.json"); err != nil {
		t.Fatalf("expected valid base-args, got %v", err)
	}
	if err := validation.BaseArgs([]byte(`{"args": "a"}`), "base.json"); err == nil {
		t.Fatal("expected failure for non-array args")
	}
	if err := validation.BaseArgs([]byte(`{"extra": []}`), "base.json"); err == nil {
		t.Fatal("expected failure for missing args key")
	}
}

func TestTemplatesManifest(t *testing.T) {
	valid := []byte(`{"templates": [{"name": "cpp", "type": "cppdbg", "MIMode": "gdb"}]}`)
	if err := validation.TemplatesManifest(valid, "templates.json"); err != nil {
		t.Fatalf("expected valid manifest, got %v", err)
	}

	cases := map[string]string{
		"missingTemplates": `{"other": []}`,
		"emptyTemplates":   `{"templates": []}`,
		"entryWithoutType": `{"templates": [{"name": "cpp"}]}`,
		"entryWithArgs":    `{"templates": [{"name": "cpp", "type": "cppdbg", "args": []}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if err := validation.TemplatesManifest([]byte(raw), "templates.json"); err == nil {
				t.Fatal("expected validation failure")
			}
		})
	}
}
