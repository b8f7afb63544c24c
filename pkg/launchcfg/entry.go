// Package launchcfg parses launch configuration sources. A source is one
// JSON document holding an array of configuration entries; each entry
// names a template to extend, carries an enabled flag and optionally
// contributes arguments, either inline or via a referenced base-args
// file.
package launchcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/dobrovols/mklaunch/pkg/jsonval"
)

var (
	// ErrLegacyFormat is returned for bare-object sources. Single-object
	// config files were retired together with the 0.2 manifest contract;
	// they are rejected rather than silently wrapped into a list.
	ErrLegacyFormat = errors.New("config source must be a JSON array of configuration objects; legacy single-object configs are no longer supported")
	// ErrInvalidRootType is returned when a source document is neither an array nor an object.
	ErrInvalidRootType = errors.New("config source must be a JSON array of configuration objects")
	// ErrEntryNotObject is returned when an array element is not an object.
	ErrEntryNotObject = errors.New("configuration entry must be a JSON object")
	// ErrMissingName is returned when an entry lacks a string name.
	ErrMissingName = errors.New(`configuration entry missing required "name" string field`)
	// ErrMissingExtends is returned when an entry lacks a string extends reference.
	ErrMissingExtends = errors.New(`configuration entry missing required "extends" string field`)
	// ErrMissingEnabled is returned when an entry lacks a boolean enabled flag.
	ErrMissingEnabled = errors.New(`configuration entry missing required "enabled" boolean field`)
	// ErrInvalidExtends is returned when an extends value carries path separators.
	ErrInvalidExtends = errors.New("invalid extends value; only template names are allowed (e.g. 'cpp', 'lldb')")
	// ErrInvalidBaseArgs is returned when a baseArgs reference is not a string.
	ErrInvalidBaseArgs = errors.New(`configuration "baseArgs" must be a file path string`)
	// ErrInvalidArgs is returned when an inline args list is malformed.
	ErrInvalidArgs = errors.New(`configuration "args" must be an array of strings`)
)

// Entry is one validated launch configuration request.
type Entry struct {
	Name     string
	Extends  string
	Enabled  bool
	BaseArgs string   // optional path to a base-args file, empty when absent
	Args     []string // optional inline args, nil when absent
	Source   string   // originating source identifier
	Index    int      // position within the source document
}

// ParseSource validates one config source document. The input may carry
// JSONC comments and trailing commas. Every array element becomes one
// Entry tagged with the source identifier for later duplicate reporting.
func ParseSource(raw []byte, source string) ([]Entry, error) {
	decoded, err := jsonval.Decode(jsonc.ToJSON(raw))
	if err != nil {
		return nil, fmt.Errorf("parse config JSON %s: %w", source, err)
	}

	switch value := decoded.(type) {
	case []any:
		entries := make([]Entry, 0, len(value))
		for idx, element := range value {
			entry, err := parseEntry(element, source, idx)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
		return entries, nil
	case *jsonval.Object:
		return nil, fmt.Errorf("%w: %s", ErrLegacyFormat, source)
	default:
		return nil, fmt.Errorf("%w: found %s in %s", ErrInvalidRootType, jsonTypeName(decoded), source)
	}
}

func parseEntry(element any, source string, idx int) (Entry, error) {
	obj, ok := element.(*jsonval.Object)
	if !ok {
		return Entry{}, fmt.Errorf("%w: index %d in %s", ErrEntryNotObject, idx, source)
	}

	entry := Entry{Source: source, Index: idx}

	name, ok := obj.StringField("name")
	if !ok {
		return Entry{}, fmt.Errorf("%w: index %d in %s", ErrMissingName, idx, source)
	}
	entry.Name = name

	extends, ok := obj.StringField("extends")
	if !ok {
		return Entry{}, fmt.Errorf("%w: index %d in %s", ErrMissingExtends, idx, source)
	}
	if strings.ContainsAny(extends, `/\`) {
		return Entry{}, fmt.Errorf("%w: %q in %s", ErrInvalidExtends, extends, source)
	}
	entry.Extends = extends

	enabled, ok := obj.BoolField("enabled")
	if !ok {
		return Entry{}, fmt.Errorf("%w: index %d in %s", ErrMissingEnabled, idx, source)
	}
	entry.Enabled = enabled

	if value, present := obj.Get("baseArgs"); present {
		path, ok := value.(string)
		if !ok {
			return Entry{}, fmt.Errorf("%w: index %d in %s", ErrInvalidBaseArgs, idx, source)
		}
		entry.BaseArgs = path
	}

	if value, present := obj.Get("args"); present {
		args, err := stringSlice(value)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: index %d in %s", ErrInvalidArgs, idx, source)
		}
		entry.Args = args
	}

	return entry, nil
}

func stringSlice(value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errors.New("not an array")
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is not a string", i)
		}
		out[i] = s
	}
	return out, nil
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case *jsonval.Object:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
