package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
	}
	for input, want := range cases {
		level, ok := ParseLevel(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, level, input)
	}

	_, ok := ParseLevel("loud")
	assert.False(t, ok)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")

	cfg := ApplyEnv(DefaultConfig())

	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestApplyEnv_IgnoresUnknown(t *testing.T) {
	t.Setenv(EnvLogLevel, "verbose")
	t.Setenv(EnvLogFormat, "xml")

	assert.Equal(t, DefaultConfig(), ApplyEnv(DefaultConfig()))
}

func TestComponentJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf})

	driverLog := Component(logger, "driver")
	driverLog.Info().Int("remaining", 42).Msg("tick")
	driverLog.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "driver", entry["component"])
	assert.Equal(t, "tick", entry["message"])
	assert.EqualValues(t, 42, entry["remaining"])
}
