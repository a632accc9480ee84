package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    zapcore.Level
		wantErr bool
	}{
		{raw: "", want: zapcore.InfoLevel},
		{raw: "DEBUG", want: zapcore.DebugLevel},
		{raw: "warning", want: zapcore.WarnLevel},
		{raw: "error", want: zapcore.ErrorLevel},
		{raw: " Info ", want: zapcore.InfoLevel},
		{raw: "dpanic", want: zapcore.DPanicLevel},
		{raw: "trace", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.raw)
		if tc.wantErr {
			assert.ErrorContains(t, err, "unsupported log level", tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "nb.log")
	logger, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("request finished", zap.String("operation", "ask"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"request finished"`)
	assert.Contains(t, string(data), `"operation":"ask"`)
}

func TestNewDebugAddsConsoleCore(t *testing.T) {
	t.Parallel()

	var console bytes.Buffer
	logger, err := New(Config{Level: "info", Debug: true, Console: &console})
	require.NoError(t, err)

	logger.Debug("gate acquired")
	_ = logger.Sync()

	assert.Contains(t, console.String(), "gate acquired")
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
