// Package generate implements the `mklaunch generate` command, which merges
// debug templates with per-configuration overrides into a launch.json file.
package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dobrovols/mklaunch/internal/cli/logging"
	"github.com/dobrovols/mklaunch/internal/config"
	"github.com/dobrovols/mklaunch/pkg/generator"
	"github.com/dobrovols/mklaunch/pkg/output"
	"github.com/dobrovols/mklaunch/pkg/scanner"
	"github.com/dobrovols/mklaunch/pkg/telemetry"
	"github.com/dobrovols/mklaunch/pkg/template"
)

// Default paths used when neither flags nor a declarative profile override them.
const (
	defaultTemplatesPath = ".mklaunch/templates.json"
	defaultConfigsDir    = ".mklaunch/configs"
	defaultOutputPath    = ".vscode/launch.json"
)

const configFlagName = "config"

// Options captures CLI flag values.
type Options struct {
	Templates string
	Configs   string
	Output    string
	Config    string
	Verbose   bool
}

// LaunchWriter persists a generated document to disk.
type LaunchWriter interface {
	Write(doc json.Marshaler, path string) error
}

// Deps configures dependencies for the generate command.
type Deps struct {
	CollectSources   func(string) ([]generator.Source, error)
	OpenStore        func(string) (template.Store, error)
	TelemetryEmitter func(io.Writer) (*telemetry.Emitter, error)
	Writer           LaunchWriter
	LocateConfig     func(string) (config.LocationResult, error)
	LoadProfile      func(string) (*config.Profile, error)
}

var errTemplatesNotFound = errors.New("templates source not found")

// ErrTemplatesNotFound exposes the sentinel.
func ErrTemplatesNotFound() error { return errTemplatesNotFound }

// defaultDeps used in production.
var defaultDeps = Deps{
	CollectSources:   scanner.CollectSources,
	OpenStore:        openStore,
	TelemetryEmitter: telemetry.NewEmitter,
	Writer:           output.NewWriter(),
	LocateConfig:     config.LocateConfig,
	LoadProfile:      config.Load,
}

// NewGenerateCommand constructs the `mklaunch generate` command.
func NewGenerateCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a launch.json from templates and configuration entries",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyProfileDefaults(cmd, opts, defaultDeps)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runGenerate(cmd, *opts, defaultDeps)
		},
	}

	registerFlags(cmd, opts)

	return cmd
}

func registerFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Templates, "templates", defaultTemplatesPath, "Templates manifest file or directory of template files")
	cmd.Flags().StringVar(&opts.Configs, "configs", defaultConfigsDir, "Directory containing configuration entry files")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", defaultOutputPath, "Destination path for the generated launch.json")
	cmd.Flags().StringVar(&opts.Config, configFlagName, "", "Path to declarative configuration file")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Print the resolved configuration names")
}

// RunGenerateForTest executes the generate flow with explicit dependencies (used in tests).
func RunGenerateForTest(cmd *cobra.Command, opts Options, deps Deps) error {
	return runGenerate(cmd, opts, deps)
}

// ApplyProfileDefaultsForTest applies declarative defaults with explicit dependencies (used in tests).
func ApplyProfileDefaultsForTest(cmd *cobra.Command, opts *Options, deps Deps) error {
	return applyProfileDefaults(cmd, opts, deps)
}

// applyProfileDefaults fills flags the user left untouched from the
// declarative profile, when one can be located.
func applyProfileDefaults(cmd *cobra.Command, opts *Options, deps Deps) error {
	locate := deps.LocateConfig
	if locate == nil {
		locate = config.LocateConfig
	}
	load := deps.LoadProfile
	if load == nil {
		load = config.Load
	}

	explicit := strings.TrimSpace(opts.Config)
	location, err := locate(explicit)
	if err != nil {
		if explicit == "" && errors.Is(err, config.ErrConfigNotFound) {
			return nil
		}
		return err
	}

	profile, err := load(location.Path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	defaults := profile.Generate
	if defaults.Templates != nil && !flags.Changed("templates") {
		opts.Templates = *defaults.Templates
	}
	if defaults.Configs != nil && !flags.Changed("configs") {
		opts.Configs = *defaults.Configs
	}
	if defaults.Output != nil && !flags.Changed("output") {
		opts.Output = *defaults.Output
	}
	if defaults.Verbose != nil && !flags.Changed("verbose") {
		opts.Verbose = *defaults.Verbose
	}
	return nil
}

func runGenerate(cmd *cobra.Command, opts Options, deps Deps) (err error) {
	emitterFactory := deps.TelemetryEmitter
	if emitterFactory == nil {
		emitterFactory = telemetry.NewEmitter
	}
	tel, err := emitterFactory(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("initialize structured logging: %w", err)
	}
	logger := tel.StructuredLogger()
	if logger == nil {
		return fmt.Errorf("structured logger unavailable")
	}

	workflowMetadata := map[string]string{
		"templates": logging.SanitizePath(opts.Templates),
		"configs":   logging.SanitizePath(opts.Configs),
		"output":    logging.SanitizePath(opts.Output),
	}
	logWorkflowStart(logger, stepGenerate, workflowMetadata)
	defer func() {
		if err != nil {
			logWorkflowFailure(logger, stepGenerate, workflowMetadata, err)
		}
	}()

	openStoreFn := deps.OpenStore
	if openStoreFn == nil {
		openStoreFn = openStore
	}
	var store template.Store
	if err := tel.EmitPhase(telemetry.PhaseTemplates, map[string]string{"path": logging.SanitizePath(opts.Templates)}, func() error {
		loaded, loadErr := openStoreFn(opts.Templates)
		if loadErr != nil {
			return loadErr
		}
		store = loaded
		return nil
	}); err != nil {
		return err
	}

	collect := deps.CollectSources
	if collect == nil {
		collect = scanner.CollectSources
	}
	sources, err := collect(opts.Configs)
	if err != nil {
		return err
	}
	for _, src := range sources {
		logSourceEntry(logger, stepGenerate, src.ID)
	}

	pipeline := generator.NewPipeline(store).WithEmitter(tel)
	doc, err := pipeline.Generate(sources)
	if err != nil {
		return err
	}

	writer := deps.Writer
	if writer == nil {
		writer = output.NewWriter()
	}
	if err := tel.EmitPhase(telemetry.PhaseWrite, map[string]string{"path": logging.SanitizePath(opts.Output)}, func() error {
		return writer.Write(doc, opts.Output)
	}); err != nil {
		return err
	}

	logWorkflowSuccess(logger, stepGenerate, workflowMetadata)

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d configurations\n", opts.Output, len(doc.Configurations))
	if opts.Verbose {
		for _, cfg := range doc.Configurations {
			name, _ := cfg.StringField("name")
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", name)
		}
	}
	return nil
}

// openStore treats a file path as a templates manifest and a directory path
// as a per-file template store.
func openStore(path string) (template.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errTemplatesNotFound, path)
	}
	if info.IsDir() {
		return template.NewDirectoryStore(path), nil
	}
	return template.LoadManifestFile(path)
}
