package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterOutputIsJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, Level: "debug"})
	require.NoError(t, err)

	l.Debug().Str("section", "ch1").Msg("moved")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "ch1", entry["section"])
	assert.Equal(t, "moved", entry["message"])
	assert.Contains(t, entry, "time")
	assert.NoError(t, l.Close())
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, Level: "warn"})
	require.NoError(t, err)

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.ErrorContains(t, err, "loud")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spinewalk.log")
	l, err := New(Options{Path: path})
	require.NoError(t, err)

	l.Info().Msg("book loaded")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "book loaded")
}
