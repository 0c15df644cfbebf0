package xcdoc_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkyie/xcdoc"
)

func TestLoggerContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := xcdoc.NewLogger(slog.NewTextHandler(&buf, nil))

	logger.WithCatalog("/tmp/catalog").WithIdentifier("lsAAAAAAAA").Info("resolved")

	out := buf.String()
	assert.Contains(t, out, "catalog=/tmp/catalog")
	assert.Contains(t, out, "identifier=lsAAAAAAAA")
}

func TestNewJSONLoggerLevel(t *testing.T) {
	logger := xcdoc.NewJSONLogger(slog.LevelInfo)
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
}
