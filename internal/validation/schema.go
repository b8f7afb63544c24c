// Package validation checks input documents against the JSON Schema
// contracts shipped with the binary. It backs the `mklaunch validate`
// command; the generation pipeline performs its own structural parsing
// with more specific error reporting.
package validation

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	schemaConfigSource      = "config-source.schema.json"
	schemaBaseArgs          = "base-args.schema.json"
	schemaTemplatesManifest = "templates-manifest.schema.json"
)

var (
	compileOnce sync.Once
	compileErr  error
	compiled    map[string]*jsonschema.Schema
)

func schemaFor(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema, 3)
		compiler := jsonschema.NewCompiler()
		for _, schemaName := range []string{schemaConfigSource, schemaBaseArgs, schemaTemplatesManifest} {
			raw, err := schemaFS.ReadFile("schemas/" + schemaName)
			if err != nil {
				compileErr = fmt.Errorf("read embedded schema %s: %w", schemaName, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("decode embedded schema %s: %w", schemaName, err)
				return
			}
			if err := compiler.AddResource(schemaName, doc); err != nil {
				compileErr = fmt.Errorf("add schema resource %s: %w", schemaName, err)
				return
			}
			schema, err := compiler.Compile(schemaName)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", schemaName, err)
				return
			}
			compiled[schemaName] = schema
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return compiled[name], nil
}

func validate(raw []byte, schemaName, source string) error {
	schema, err := schemaFor(schemaName)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonc.ToJSON(raw)))
	if err != nil {
		return fmt.Errorf("parse JSON %s: %w", source, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return nil
}

// ConfigSource validates one config source document.
func ConfigSource(raw []byte, source string) error {
	return validate(raw, schemaConfigSource, source)
}

// BaseArgs validates one base-args document.
func BaseArgs(raw []byte, source string) error {
	return validate(raw, schemaBaseArgs, source)
}

// TemplatesManifest validates a templates manifest document.
func TemplatesManifest(raw []byte, source string) error {
	return validate(raw, schemaTemplatesManifest, source)
}
