package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nao1215/a11yscan/internal/action"
)

// SourceConfig holds settings for replaying one action stream.
type SourceConfig struct {
	// StoreName names the store in log output.
	StoreName string `yaml:"storeName,omitempty"`

	// ContinueOnError overrides Config.ContinueOnError when set.
	ContinueOnError *bool `yaml:"continueOnError,omitempty"`

	// IgnoreKinds lists action kinds that are skipped during replay.
	IgnoreKinds []action.Kind `yaml:"ignoreKinds,omitempty"`
}

// File represents the structure of the .a11yscan configuration file.
type File struct {
	// Sources maps a source path, as given on the command line, to its settings.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Defaults apply to every source unless overridden.
	Defaults SourceConfig `yaml:"defaults,omitempty"`
}

// GetSourceConfig returns the settings for source merged over the defaults.
// Ignored kinds of the defaults and the source are combined.
func (cf *File) GetSourceConfig(source string) SourceConfig {
	result := cf.Defaults
	result.IgnoreKinds = slices.Clone(cf.Defaults.IgnoreKinds)

	sc, ok := cf.Sources[source]
	if !ok {
		return result
	}
	if sc.StoreName != "" {
		result.StoreName = sc.StoreName
	}
	if sc.ContinueOnError != nil {
		result.ContinueOnError = sc.ContinueOnError
	}
	for _, k := range sc.IgnoreKinds {
		if !slices.Contains(result.IgnoreKinds, k) {
			result.IgnoreKinds = append(result.IgnoreKinds, k)
		}
	}
	return result
}

// Validate reports the first unknown action kind in the file.
func (cf *File) Validate() error {
	if err := validateKinds("defaults", cf.Defaults.IgnoreKinds); err != nil {
		return err
	}
	for _, source := range slices.Sorted(maps.Keys(cf.Sources)) {
		if err := validateKinds(source, cf.Sources[source].IgnoreKinds); err != nil {
			return err
		}
	}
	return nil
}

func validateKinds(where string, kinds []action.Kind) error {
	for _, k := range kinds {
		if !k.Valid() {
			return fmt.Errorf("%w: %q in %s", ErrUnknownActionKind, k, where)
		}
	}
	return nil
}
