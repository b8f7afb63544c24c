package generator

import (
	"fmt"

	"github.com/dobrovols/mklaunch/pkg/jsonval"
	"github.com/dobrovols/mklaunch/pkg/launchcfg"
	"github.com/dobrovols/mklaunch/pkg/template"
)

// Resolver merges configuration entries with the templates they extend.
type Resolver struct {
	store        template.Store
	loadBaseArgs func(string) ([]string, error)
}

// NewResolver constructs a resolver over the provided template store.
func NewResolver(store template.Store) *Resolver {
	return &Resolver{store: store, loadBaseArgs: launchcfg.LoadBaseArgs}
}

// WithBaseArgsLoader overrides the base-args loader (used in tests).
func (r *Resolver) WithBaseArgsLoader(load func(string) ([]string, error)) *Resolver {
	r.loadBaseArgs = load
	return r
}

// Resolve produces the launch configuration for one enabled entry. The
// entry contributes only its name and argument lists; every other output
// field comes from the template. Output keys follow the fixed order
// type, request, name, program, args, stopAtEntry, then the template's
// remaining fields in their original order. The args field is always
// present, base-args file contents first, inline args after.
func (r *Resolver) Resolve(entry launchcfg.Entry) (*jsonval.Object, error) {
	tpl, err := r.store.Lookup(entry.Extends)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration %q from %s: %w", entry.Name, entry.Source, err)
	}

	args := []string{}
	if entry.BaseArgs != "" {
		base, err := r.loadBaseArgs(entry.BaseArgs)
		if err != nil {
			return nil, fmt.Errorf("resolve configuration %q from %s: %w", entry.Name, entry.Source, err)
		}
		args = append(args, base...)
	}
	args = append(args, entry.Args...)

	resolved := jsonval.NewObject()
	resolved.Set("type", tpl.Type)
	if tpl.Request != "" {
		resolved.Set("request", tpl.Request)
	}
	resolved.Set("name", entry.Name)
	if tpl.Program != "" {
		resolved.Set("program", tpl.Program)
	}
	resolved.Set("args", args)
	if tpl.StopAtEntry != nil {
		resolved.Set("stopAtEntry", *tpl.StopAtEntry)
	}
	for _, key := range tpl.Rest.Keys() {
		// name and args always come from the entry.
		if key == "name" || key == "args" {
			continue
		}
		value, _ := tpl.Rest.Get(key)
		resolved.Set(key, value)
	}

	return resolved, nil
}
