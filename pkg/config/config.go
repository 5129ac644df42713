package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/sandbox/pkg/errors"
)

// Verbosity is the log verbosity, 0 (warn) to 3 (trace).
type Verbosity int

// MaxVerbosity is the most verbose level.
const MaxVerbosity Verbosity = 3

var verbosityNames = map[string]Verbosity{
	"warn":  0,
	"info":  1,
	"debug": 2,
	"trace": 3,
}

// Output formats accepted by Output.Format.
var Formats = []string{"auto", "term", "text", "json", "yaml", "toml"}

// Config is the merged configuration.
type Config struct {
	Logging   Logging      `koanf:"logging" json:"logging" yaml:"logging" toml:"logging"`
	Output    Output       `koanf:"output" json:"output" yaml:"output" toml:"output"`
	Modules   []ModuleSpec `koanf:"modules" json:"modules" yaml:"modules" toml:"modules"`
	Autostart []string     `koanf:"autostart" json:"autostart" yaml:"autostart" toml:"autostart"`
}

// Logging holds logger settings.
type Logging struct {
	Verbosity Verbosity `koanf:"verbosity" json:"verbosity" yaml:"verbosity" toml:"verbosity"`
	// File is the log file path. Empty selects the XDG state dir, "none" disables it.
	File string `koanf:"file" json:"file" yaml:"file" toml:"file"`
}

// Output holds rendering settings.
type Output struct {
	Format string `koanf:"format" json:"format" yaml:"format" toml:"format"`
}

// ModuleSpec declares one module in a manifest. Factory names an entry of
// the factory catalog; Aliases maps alias names to entries of the value
// catalog and become one Instances dependency.
type ModuleSpec struct {
	Name     string            `koanf:"name" json:"name" yaml:"name" toml:"name"`
	Factory  string            `koanf:"factory" json:"factory" yaml:"factory" toml:"factory"`
	Requires []string          `koanf:"requires" json:"requires,omitempty" yaml:"requires,omitempty" toml:"requires,omitempty"`
	Aliases  map[string]string `koanf:"aliases" json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
}

// FactoryName returns Factory, defaulting to the module name.
func (m ModuleSpec) FactoryName() string {
	if m.Factory == "" {
		return m.Name
	}
	return m.Factory
}

// Module returns the declaration of the module called name.
func (c *Config) Module(name string) (ModuleSpec, bool) {
	for _, m := range c.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleSpec{}, false
}

// ModuleNames returns the declared module names in manifest order.
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		names = append(names, m.Name)
	}
	return names
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	var problems []string

	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > MaxVerbosity {
		problems = append(problems, fmt.Sprintf("logging.verbosity %d is out of range 0-%d", c.Logging.Verbosity, MaxVerbosity))
	}
	if !isFormat(c.Output.Format) {
		problems = append(problems, fmt.Sprintf("output.format %q is not one of %s", c.Output.Format, strings.Join(Formats, ", ")))
	}

	seen := make(map[string]bool, len(c.Modules))
	for i, m := range c.Modules {
		switch {
		case m.Name == "":
			problems = append(problems, fmt.Sprintf("modules[%d] has no name", i))
		case seen[m.Name]:
			problems = append(problems, fmt.Sprintf("module %s is declared twice", m.Name))
		}
		seen[m.Name] = true

		for _, req := range m.Requires {
			if req == "" {
				problems = append(problems, fmt.Sprintf("module %s has an empty requirement", m.Name))
			}
		}
	}

	for _, name := range c.Autostart {
		if name == "" {
			problems = append(problems, "autostart has an empty entry")
		}
	}

	if len(problems) > 0 {
		return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
			WithDetail("problems", problems)
	}
	return nil
}

func isFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
