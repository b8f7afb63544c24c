// Package config discovers and loads the optional declarative defaults
// file (mklaunch.yaml). The file supplies default values for generate
// flags; values given on the command line always win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownField indicates the configuration declares a field the CLI
// does not recognise.
var ErrUnknownField = errors.New("unknown field in declarative configuration")

// GenerateDefaults holds default values for the generate command flags.
// Nil pointers mean the field is not set by the profile.
type GenerateDefaults struct {
	Templates *string `yaml:"templates"`
	Configs   *string `yaml:"configs"`
	Output    *string `yaml:"output"`
	Verbose   *bool   `yaml:"verbose"`
}

// Profile is the parsed declarative configuration.
type Profile struct {
	Metadata struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"metadata"`
	Generate   GenerateDefaults `yaml:"generate"`
	SourcePath string           `yaml:"-"`
}

// Load parses the YAML file at the supplied path. Unknown fields are
// rejected so typos surface instead of being silently ignored.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var profile Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&profile); err != nil && err != io.EOF {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnknownField, path, err)
		}
		return nil, fmt.Errorf("parse declarative config %q: %w", path, err)
	}

	profile.SourcePath = path
	return &profile, nil
}
