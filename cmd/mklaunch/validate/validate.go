// Package validate implements the `mklaunch validate` command, which checks
// input files against their schemas without writing anything.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dobrovols/mklaunch/internal/validation"
	"github.com/dobrovols/mklaunch/pkg/generator"
	"github.com/dobrovols/mklaunch/pkg/launchcfg"
	"github.com/dobrovols/mklaunch/pkg/scanner"
	"github.com/dobrovols/mklaunch/pkg/template"
)

const (
	defaultTemplatesPath = ".mklaunch/templates.json"
	defaultConfigsDir    = ".mklaunch/configs"
)

// Options captures CLI flag values.
type Options struct {
	Templates string
	Configs   string
}

// Deps configures dependencies for the validate command.
type Deps struct {
	CollectSources func(string) ([]generator.Source, error)
	ReadFile       func(string) ([]byte, error)
}

var (
	errTemplatesNotFound = errors.New("templates source not found")
	errValidationFailed  = errors.New("validation failed")
)

// ErrTemplatesNotFound exposes the sentinel.
func ErrTemplatesNotFound() error { return errTemplatesNotFound }

// ErrValidationFailed exposes the sentinel.
func ErrValidationFailed() error { return errValidationFailed }

var defaultDeps = Deps{
	CollectSources: scanner.CollectSources,
	ReadFile:       os.ReadFile,
}

// NewValidateCommand constructs the `mklaunch validate` command.
func NewValidateCommand() *cobra.Command {
	opts := Options{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate templates and configuration entries against their schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runValidate(cmd, opts, defaultDeps)
		},
	}

	cmd.Flags().StringVar(&opts.Templates, "templates", defaultTemplatesPath, "Templates manifest file or directory of template files")
	cmd.Flags().StringVar(&opts.Configs, "configs", defaultConfigsDir, "Directory containing configuration entry files")

	return cmd
}

// RunValidateForTest executes the validate flow with explicit dependencies (used in tests).
func RunValidateForTest(cmd *cobra.Command, opts Options, deps Deps) error {
	return runValidate(cmd, opts, deps)
}

func runValidate(cmd *cobra.Command, opts Options, deps Deps) error {
	readFile := deps.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	collect := deps.CollectSources
	if collect == nil {
		collect = scanner.CollectSources
	}

	var failures []string

	failures = append(failures, validateTemplates(opts.Templates, readFile)...)

	sources, err := collect(opts.Configs)
	if err != nil {
		return err
	}
	for _, src := range sources {
		if err := validation.ConfigSource(src.Raw, src.ID); err != nil {
			failures = append(failures, err.Error())
			continue
		}
		failures = append(failures, validateBaseArgsRefs(src, readFile)...)
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", failure)
		}
		return fmt.Errorf("%w: %d problem(s) found", errValidationFailed, len(failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}

func validateTemplates(path string, readFile func(string) ([]byte, error)) []string {
	info, err := os.Stat(path)
	if err != nil {
		return []string{fmt.Sprintf("%v: %s", errTemplatesNotFound, path)}
	}

	if !info.IsDir() {
		raw, err := readFile(path)
		if err != nil {
			return []string{err.Error()}
		}
		if err := validation.TemplatesManifest(raw, path); err != nil {
			return []string{err.Error()}
		}
		return nil
	}

	// Directory stores hold one template per file; parse each to surface
	// structural problems before generation.
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{err.Error()}
	}
	var failures []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".jsonc") {
			continue
		}
		full := filepath.Join(path, name)
		raw, err := readFile(full)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		if _, err := template.Parse(raw); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", full, err))
		}
	}
	return failures
}

func validateBaseArgsRefs(src generator.Source, readFile func(string) ([]byte, error)) []string {
	entries, err := launchcfg.ParseSource(src.Raw, src.ID)
	if err != nil {
		return []string{err.Error()}
	}
	var failures []string
	for _, entry := range entries {
		if entry.BaseArgs == "" {
			continue
		}
		raw, err := readFile(entry.BaseArgs)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: baseArgs %s: %v", src.ID, entry.BaseArgs, err))
			continue
		}
		if err := validation.BaseArgs(raw, entry.BaseArgs); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}
