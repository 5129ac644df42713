package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity, "")

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "sandbox", "sandbox.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file was not created at %s", logPath)
		})
	}
}

func TestSetupLoggerExplicitFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "run.log")

	SetupLogger(1, logPath)
	log.Info().Msg("hello from test")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	SetupLogger(0, DisableFile)

	_, err := os.Stat(filepath.Join(stateDir, "sandbox", "sandbox.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state/sandbox/sandbox.log", getLogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("sandbox")
	logger.Debug().Str("module", "Mailer").Msg("started")

	assert.Contains(t, buf.String(), `"component":"sandbox"`)
	assert.Contains(t, buf.String(), `"module":"Mailer"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "startAll")
	done()

	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), `"operation":"startAll"`)
}
