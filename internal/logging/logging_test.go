package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffmantree/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogConfig{Level: "warn"})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Int("skipped", 3).Msg("characters skipped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "characters skipped", entry["message"])
	assert.EqualValues(t, 3, entry["skipped"])
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogConfig{Level: "debug", Pretty: true})
	require.NoError(t, err)

	logger.Debug().Str("tree", "standard").Msg("loaded")
	assert.Contains(t, buf.String(), "loaded")
	assert.Contains(t, buf.String(), "standard")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":       zerolog.InfoLevel,
		"DEBUG":  zerolog.DebugLevel,
		" warn ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	_, err := Setup(&buf, config.LogConfig{Level: "info"})
	require.NoError(t, err)
	t.Cleanup(func() { log.Logger = zerolog.Nop() })

	log.Info().Msg("global")
	assert.Contains(t, buf.String(), "global")
}
