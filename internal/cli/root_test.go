package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sandbox/pkg/display"
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/testutil"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appManifest() *testutil.ManifestBuilder {
	return testutil.NewManifest().
		Module("Config").
		Module("Store", "Config").
		Module("App", "Store").Alias("clock", "system-clock").
		Module("Worker", "Store").
		Autostart("App")
}

func cyclicManifest() *testutil.ManifestBuilder {
	return testutil.NewManifest().
		Module("A", "B").
		Module("B", "A")
}

// setupTest isolates the XDG dirs and writes m, returning its path.
func setupTest(t *testing.T, m *testutil.ManifestBuilder) string {
	t.Helper()
	return testutil.NewTestEnvironment(t).WriteManifest("app.toml", m)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	manifest := setupTest(t, appManifest())

	t.Run("autostart targets", func(t *testing.T) {
		out, err := execute(t, "plan", "--config", manifest, "-f", "text")
		require.NoError(t, err)
		assert.Equal(t, "Start order for App\n  1. Config\n  2. Store\n  3. App\n", out)
	})

	t.Run("explicit targets", func(t *testing.T) {
		out, err := execute(t, "plan", "--config", manifest, "-f", "json", "Worker", "App")
		require.NoError(t, err)

		var report display.PlanReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, []string{"Worker", "App"}, report.Targets)
		assert.Equal(t, []string{"Config", "Store", "Worker", "App"}, report.Order)
	})

	t.Run("unknown module", func(t *testing.T) {
		_, err := execute(t, "plan", "--config", manifest, "Nope")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownModule))
	})
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean manifest", func(t *testing.T) {
		manifest := setupTest(t, appManifest())
		out, err := execute(t, "check", "--config", manifest, "-f", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "App Config -> Store -> App")
		assert.Contains(t, out, "4 modules, 0 failed")
	})

	t.Run("cyclic manifest", func(t *testing.T) {
		manifest := setupTest(t, cyclicManifest())
		out, err := execute(t, "check", "--config", manifest, "-f", "text")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		assert.Contains(t, out, "2 modules, 2 failed")
	})
}

func TestGraphCommand(t *testing.T) {
	manifest := setupTest(t, appManifest())

	t.Run("tree", func(t *testing.T) {
		out, err := execute(t, "graph", "--config", manifest, "-f", "text", "App")
		require.NoError(t, err)
		assert.Contains(t, out, "App")
		assert.Contains(t, out, "Store")
		assert.Contains(t, out, "Config")
	})

	t.Run("graphml", func(t *testing.T) {
		out, err := execute(t, "graph", "--config", manifest, "-f", "graphml", "App")
		require.NoError(t, err)

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromString(out))
		graph := doc.FindElement("/graphml/graph")
		require.NotNil(t, graph)
		assert.Len(t, graph.SelectElements("node"), 4)
		assert.Len(t, graph.SelectElements("edge"), 3)
	})

	t.Run("unknown root", func(t *testing.T) {
		_, err := execute(t, "graph", "--config", manifest, "Nope")
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownModule))
	})

	t.Run("needs one module", func(t *testing.T) {
		_, err := execute(t, "graph", "--config", manifest)
		assert.Error(t, err)
	})
}

func TestStatusCommand(t *testing.T) {
	manifest := setupTest(t, appManifest())

	out, err := execute(t, "status", "--config", manifest, "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "  App     started      requires Store, {clock}\n")
	assert.Contains(t, out, "  Worker  stopped      requires Store\n")
	assert.Contains(t, out, "4 registered, 3 started")
}

func TestConfigCommand(t *testing.T) {
	manifest := setupTest(t, appManifest())

	t.Run("merged", func(t *testing.T) {
		out, err := execute(t, "config", "--config", manifest, "-f", "json", "-vv")
		require.NoError(t, err)

		var cfg struct {
			Logging struct {
				Verbosity int    `json:"verbosity"`
				File      string `json:"file"`
			} `json:"logging"`
			Autostart []string `json:"autostart"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, 2, cfg.Logging.Verbosity)
		assert.Equal(t, "none", cfg.Logging.File)
		assert.Equal(t, []string{"App"}, cfg.Autostart)
	})

	t.Run("defaults", func(t *testing.T) {
		out, err := execute(t, "config", "--defaults")
		require.NoError(t, err)
		assert.Contains(t, out, "[logging]")
		assert.Contains(t, out, `format = "auto"`)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := execute(t, "config", "--config", filepath.Join(t.TempDir(), "missing.toml"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := execute(t, "config", "--config", manifest, "-f", "xml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestMiscCommands(t *testing.T) {
	setupTest(t, appManifest())

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "sandbox version dev")
	})

	t.Run("completion", func(t *testing.T) {
		out, err := execute(t, "completion", "bash")
		require.NoError(t, err)
		assert.Contains(t, out, "sandbox")
	})

	t.Run("man page", func(t *testing.T) {
		out, err := execute(t, "man")
		require.NoError(t, err)
		assert.Contains(t, out, "SANDBOX")
	})

	t.Run("man tree", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "man1")
		_, err := execute(t, "man", "--dir", dir)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "sandbox.1"))
		assert.FileExists(t, filepath.Join(dir, "sandbox-plan.1"))
	})

	t.Run("help topics", func(t *testing.T) {
		out, err := execute(t, "help", "topics")
		require.NoError(t, err)
		assert.Contains(t, out, "  manifest\n")
		assert.Contains(t, out, "  --format\n")
	})

	t.Run("no command", func(t *testing.T) {
		_, err := execute(t)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
