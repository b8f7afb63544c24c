// Package scanner enumerates config source files for the generation
// pipeline. Sources are returned in stable bytewise path order so the
// pipeline sees identical input across runs regardless of directory
// iteration order.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dobrovols/mklaunch/pkg/generator"
)

// ErrConfigDirNotFound is returned when the configs directory does not exist.
var ErrConfigDirNotFound = errors.New("config directory does not exist")

// CollectSources reads every *.json and *.jsonc file directly under dir,
// sorted by path. Subdirectories are not descended into.
func CollectSources(dir string) ([]generator.Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigDirNotFound, dir)
		}
		return nil, fmt.Errorf("read configs directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".jsonc") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)

	sources := make([]generator.Source, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		sources = append(sources, generator.Source{ID: path, Raw: raw})
	}
	return sources, nil
}
