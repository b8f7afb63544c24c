package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dobrovols/mklaunch/pkg/jsonval"
	"github.com/dobrovols/mklaunch/pkg/launchcfg"
	"github.com/dobrovols/mklaunch/pkg/telemetry"
	"github.com/dobrovols/mklaunch/pkg/template"
)

var (
	// ErrNoConfigEntries is returned when the config sources yield no entries at all.
	ErrNoConfigEntries = errors.New("no configuration entries found")
	// ErrNoEnabledConfigEntries is returned when every gathered entry is disabled.
	ErrNoEnabledConfigEntries = errors.New("no enabled configuration entries found")
	// ErrDuplicateConfigName is returned when two enabled entries share a name.
	ErrDuplicateConfigName = errors.New("duplicate configuration name")
)

// Source is one raw config document together with the identifier (usually
// the file path) used in error messages and duplicate reports.
type Source struct {
	ID  string
	Raw []byte
}

// Pipeline aggregates config sources, validates the enabled set and
// resolves every entry into the final document. One Generate call carries
// no state over to the next.
type Pipeline struct {
	resolver *Resolver
	emitter  *telemetry.Emitter
}

// NewPipeline constructs a pipeline resolving against store.
func NewPipeline(store template.Store) *Pipeline {
	return &Pipeline{resolver: NewResolver(store)}
}

// WithEmitter attaches a telemetry emitter wrapping the pipeline stages.
func (p *Pipeline) WithEmitter(emitter *telemetry.Emitter) *Pipeline {
	p.emitter = emitter
	return p
}

// Resolver exposes the pipeline's resolver for dependency overrides.
func (p *Pipeline) Resolver() *Resolver { return p.resolver }

// Generate runs the full pipeline over the supplied sources. Sources must
// already be in stable order; the pipeline sorts only the final result,
// by configuration name. Any failure aborts the run, no partial document
// is produced.
func (p *Pipeline) Generate(sources []Source) (*Document, error) {
	var entries []launchcfg.Entry
	if err := p.phase(telemetry.PhaseCollect, func() error {
		for _, source := range sources {
			parsed, err := launchcfg.ParseSource(source.Raw, source.ID)
			if err != nil {
				return err
			}
			entries = append(entries, parsed...)
		}
		if len(entries) == 0 {
			return ErrNoConfigEntries
		}
		return nil
	}); err != nil {
		return nil, err
	}

	enabled := entries[:0:0]
	for _, entry := range entries {
		if entry.Enabled {
			enabled = append(enabled, entry)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoEnabledConfigEntries
	}

	// Disabled entries never participate in collision detection.
	if err := validateUniqueNames(enabled); err != nil {
		return nil, err
	}

	type resolvedEntry struct {
		name   string
		config *jsonval.Object
	}
	resolved := make([]resolvedEntry, 0, len(enabled))
	if err := p.phase(telemetry.PhaseResolve, func() error {
		for _, entry := range enabled {
			config, err := p.resolver.Resolve(entry)
			if err != nil {
				return err
			}
			resolved = append(resolved, resolvedEntry{name: entry.Name, config: config})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].name < resolved[j].name
	})

	doc := &Document{Configurations: make([]*jsonval.Object, len(resolved))}
	for i, entry := range resolved {
		doc.Configurations[i] = entry.config
	}
	return doc, nil
}

func (p *Pipeline) phase(phase telemetry.Phase, fn func() error) error {
	if p.emitter == nil {
		return fn()
	}
	return p.emitter.EmitPhase(phase, nil, fn)
}

func validateUniqueNames(entries []launchcfg.Entry) error {
	nameToSources := make(map[string][]string, len(entries))
	for _, entry := range entries {
		nameToSources[entry.Name] = append(nameToSources[entry.Name], entry.Source)
	}

	names := make([]string, 0, len(nameToSources))
	for name := range nameToSources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sources := nameToSources[name]
		if len(sources) < 2 {
			continue
		}
		listed := make([]string, len(sources))
		for i, source := range sources {
			listed[i] = "  - " + source
		}
		return fmt.Errorf("%w %q found in:\n%s\neach configuration must have a unique name",
			ErrDuplicateConfigName, name, strings.Join(listed, "\n"))
	}
	return nil
}
