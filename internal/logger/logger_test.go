package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("DEBUG"))
	assert.Equal(t, WARN, ParseLevel("warn"))
	assert.Equal(t, INFO, ParseLevel("verbose"))
	assert.Equal(t, "ERROR", ERROR.String())
}

func TestLoggerWritesFieldsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gantt.log")
	l, err := New(Config{Level: INFO, FilePath: path, MaxSize: 1 << 20, MaxAge: 7, MaxBackups: 2})
	require.NoError(t, err)

	l.Debug("hidden")
	l.WithFields(F("component", "store")).Info("Task added", F("id", 3), F("error", errors.New("boom")))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Task added")
	assert.Contains(t, out, `"id": 3`)
	assert.Contains(t, out, `"component": "store"`)
	assert.Contains(t, out, "boom")
}

func TestLoggerRotatesBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 64, MaxAge: 7, MaxBackups: 3})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		l.Info(strings.Repeat("x", 80))
	}
	require.NoError(t, l.Close())

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".2")
	assert.NoError(t, err)
}
