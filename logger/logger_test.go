package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			require.NoError(t, Init(tt.level, logFile))

			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestNamedLogger(t *testing.T) {
	Log = nil
	// Before Init every call is a no-op
	assert.NotPanics(t, func() {
		Named("model").Info("dropped")
		Info("dropped")
		Sync()
	})

	logFile := filepath.Join(t.TempDir(), "named.log")
	require.NoError(t, Init("debug", logFile))
	Named("model").Debug("Faces resolved", zap.Int("restored", 12))
	Named("model").Info("Maximum neighbors in model", zap.Int("degree", 14))
	Sync()
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "DEBUG model Faces resolved")
	assert.Contains(t, string(content), "degree")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}
