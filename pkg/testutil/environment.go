package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

// TestEnvironment isolates a test from the user's XDG directories.
type TestEnvironment struct {
	Root       string
	ConfigHome string
	StateHome  string

	t *testing.T
}

// NewTestEnvironment points XDG_CONFIG_HOME and XDG_STATE_HOME at empty
// temp dirs. Both are restored when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:       root,
		ConfigHome: filepath.Join(root, "config"),
		StateHome:  filepath.Join(root, "state"),
		t:          t,
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	return env
}

// WriteFile writes content to name under Root and returns the full path.
func (env *TestEnvironment) WriteFile(name, content string) string {
	env.t.Helper()

	path := filepath.Join(env.Root, name)
	require.NoError(env.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteUserConfig writes the user-level sandbox.toml.
func (env *TestEnvironment) WriteUserConfig(content string) string {
	env.t.Helper()

	rel, err := filepath.Rel(env.Root, filepath.Join(env.ConfigHome, "sandbox", "sandbox.toml"))
	require.NoError(env.t, err)
	return env.WriteFile(rel, content)
}

// WriteManifest encodes m by the extension of name and writes it.
func (env *TestEnvironment) WriteManifest(name string, m *ManifestBuilder) string {
	env.t.Helper()

	var content string
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		content = m.YAML(env.t)
	default:
		content = m.TOML(env.t)
	}
	return env.WriteFile(name, content)
}
