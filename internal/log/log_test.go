package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warning ", LevelWarn},
		{"error", LevelError},
		{"off", LevelNone},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFromString(tt.in))
		})
	}
}

func TestLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debugf("d %d", 1)
	l.Infof("i %d", 2)
	assert.Empty(t, buf.String(), "below threshold should be dropped")

	l.Warnf("w %d", 3)
	l.Errorf("e %d", 4)
	out := buf.String()
	assert.Contains(t, out, "WARN: w 3")
	assert.Contains(t, out, "ERROR: e 4")

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.Level())
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "DEBUG: now visible")
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Infof("nothing") })
}

func TestOpenFile(t *testing.T) {
	t.Run("empty path discards", func(t *testing.T) {
		l, closeFn, err := OpenFile("", LevelDebug)
		require.NoError(t, err)
		require.NotNil(t, closeFn)
		l.Infof("dropped")
		assert.NoError(t, closeFn())
	})

	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "starfield.log")
		l, closeFn, err := OpenFile(path, LevelInfo)
		require.NoError(t, err)
		l.Infof("resized to %dx%d", 80, 24)
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "INFO: resized to 80x24")
	})

	t.Run("bad directory", func(t *testing.T) {
		_, _, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"), LevelInfo)
		assert.Error(t, err)
	})
}
