package app

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, ok, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok, err := ParseLevel("off")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "info")
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("parsed", "path", "naca0012.dat")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "path=naca0012.dat")

	buf.Reset()
	l, err = NewLogger(&buf, "off")
	require.NoError(t, err)
	l.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	l, err := NewLogger(&buf, "debug")
	require.NoError(t, err)
	SetLogger(l)
	assert.Same(t, l, Logger())

	Logger().Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}
