package launchcfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dobrovols/mklaunch/pkg/jsonval"
)

// ErrInvalidBaseArgsFormat is returned when a base-args file does not hold
// an object with an "args" array of strings.
var ErrInvalidBaseArgsFormat = errors.New(`base-args file must be a JSON object with an "args" array of strings`)

// LoadBaseArgs reads the base-args file at path. The expected shape is
// {"args": ["...", ...]}; a missing or malformed file aborts the run,
// there is no best-effort fallback.
func LoadBaseArgs(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read base-args file %s: %w", path, err)
	}

	obj, err := jsonval.DecodeObject(jsonc.ToJSON(raw))
	if err != nil {
		if errors.Is(err, jsonval.ErrNotObject) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBaseArgsFormat, path)
		}
		return nil, fmt.Errorf("parse base-args JSON %s: %w", path, err)
	}

	value, ok := obj.Get("args")
	if !ok {
		return nil, fmt.Errorf("%w: missing \"args\" in %s", ErrInvalidBaseArgsFormat, path)
	}
	args, err := stringSlice(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBaseArgsFormat, path)
	}
	return args, nil
}
