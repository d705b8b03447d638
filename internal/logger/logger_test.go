package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONToConsole(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	_, err := initTo(Config{Level: "info", Format: "json", ServiceName: "sentinel-test"}, &buf)
	require.NoError(t, err)

	log.Info().Int("window", 5).Msg("computed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "sentinel-test", entry["service"])
	assert.Equal(t, "computed", entry["message"])
	assert.EqualValues(t, 5, entry["window"])
}

func TestInit_LevelFilters(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	_, err := initTo(Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestInit_FileOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	dir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer
	_, err := initTo(Config{Level: "info", Format: "json", FilePath: dir, RotationSize: 1, RetentionDays: 1}, &buf)
	require.NoError(t, err)

	log.Info().Msg("to file")
	data, err := os.ReadFile(filepath.Join(dir, "sentinel.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInit_BadLevel(t *testing.T) {
	_, err := Init(Config{Level: "loud"})
	assert.Error(t, err)
}
