package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	log, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Equal(t, os.Stderr, log.Out)
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNewFileJSON(t *testing.T) {
	output := filepath.Join(t.TempDir(), "mountrevert.log")
	log, err := New(Config{Level: "DEBUG", Format: "json", Output: output})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("target", "/data/adb/modules").Debug("Unmounted")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "Unmounted", entry["msg"])
	assert.Equal(t, "/data/adb/modules", entry["target"])
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Config{Level: "LOUD"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)

	_, err = New(Config{Output: filepath.Join(t.TempDir(), "missing", "log")})
	assert.Error(t, err)
}
