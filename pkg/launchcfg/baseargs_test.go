package launchcfg_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dobrovols/mklaunch/pkg/launchcfg"
)

func writeBaseArgs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "baseargs.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write base-args: %v", err)
	}
	return path
}

func TestLoadBaseArgs(t *testing.T) {
	path := writeBaseArgs(t, `{"args": ["input.json", "-o", "output.json"]}`)

	args, err := launchcfg.LoadBaseArgs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	expected := []string{"input.json", "-o", "output.json"}
	if len(args) != len(expected) {
		t.Fatalf("expected %d args, got %d", len(expected), len(args))
	}
	for i, want := range expected {
		if args[i] != want {
			t.Fatalf("expected arg %q at %d, got %q", want, i, args[i])
		}
	}
}

func TestLoadBaseArgsMissingFile(t *testing.T) {
	_, err := launchcfg.LoadBaseArgs(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadBaseArgsInvalidFormat(t *testing.T) {
	cases := map[string]string{
		"missingArgsKey":   `{"arguments": []}`,
		"argsNotArray":     `{"args": "one"}`,
		"nonStringElement": `{"args": ["ok", 1]}`,
		"rootNotObject":    `["a", "b"]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeBaseArgs(t, content)
			if _, err := launchcfg.LoadBaseArgs(path); !errors.Is(err, launchcfg.ErrInvalidBaseArgsFormat) {
				t.Fatalf("expected ErrInvalidBaseArgsFormat, got %v", err)
			}
		})
	}
}

func TestLoadBaseArgsEmptyList(t *testing.T) {
	path := writeBaseArgs(t, `{"args": []}`)
	args, err := launchcfg.LoadBaseArgs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(args) != 0 {
		t.Fatalf("expected empty args, got %v", args)
	}
}
