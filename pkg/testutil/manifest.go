package testutil

import (
	"testing"

	"github.com/arthur-debert/sandbox/pkg/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ManifestBuilder builds a manifest declaratively.
type ManifestBuilder struct {
	cfg config.Config
}

// NewManifest starts an empty manifest with file logging disabled.
func NewManifest() *ManifestBuilder {
	return &ManifestBuilder{cfg: config.Config{
		Logging: config.Logging{File: "none"},
		Output:  config.Output{Format: "auto"},
	}}
}

// Module declares name with plain requirements.
func (m *ManifestBuilder) Module(name string, requires ...string) *ManifestBuilder {
	m.cfg.Modules = append(m.cfg.Modules, config.ModuleSpec{Name: name, Requires: requires})
	return m
}

// Factory sets the factory of the last declared module.
func (m *ManifestBuilder) Factory(factory string) *ManifestBuilder {
	m.last().Factory = factory
	return m
}

// Alias adds an alias of the last declared module, bound to a catalog value.
func (m *ManifestBuilder) Alias(alias, value string) *ManifestBuilder {
	spec := m.last()
	if spec.Aliases == nil {
		spec.Aliases = make(map[string]string)
	}
	spec.Aliases[alias] = value
	return m
}

// Autostart sets the modules started by status.
func (m *ManifestBuilder) Autostart(names ...string) *ManifestBuilder {
	m.cfg.Autostart = names
	return m
}

// Config returns a copy of the built configuration.
func (m *ManifestBuilder) Config() *config.Config {
	cfg := m.cfg
	return &cfg
}

// TOML encodes the manifest.
func (m *ManifestBuilder) TOML(t *testing.T) string {
	t.Helper()
	data, err := toml.Marshal(m.cfg)
	require.NoError(t, err)
	return string(data)
}

// YAML encodes the manifest.
func (m *ManifestBuilder) YAML(t *testing.T) string {
	t.Helper()
	data, err := yaml.Marshal(m.cfg)
	require.NoError(t, err)
	return string(data)
}

func (m *ManifestBuilder) last() *config.ModuleSpec {
	if len(m.cfg.Modules) == 0 {
		panic("testutil: Factory or Alias called before Module")
	}
	return &m.cfg.Modules[len(m.cfg.Modules)-1]
}
