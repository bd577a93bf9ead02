package logging

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))

	assert.Equal(t, "error", Err(stderrors.New("x")).Key)
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestZapLogger_EmitsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromCore(core)

	logger.Info("table loaded", String("path", "in.tsv"), Int("rows", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "table loaded", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "in.tsv", fields["path"])
	assert.Equal(t, int64(3), fields["rows"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromCore(core).Named("descriptor").With(String("run_id", "r1"))

	logger.Debug("fit complete")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "descriptor", entries[0].LoggerName)
	assert.Equal(t, "r1", entries[0].ContextMap()["run_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNewLogger_Defaults(t *testing.T) {
	logger, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// All calls are safe no-ops.
	logger.Debug("x")
	logger.Info("x", String("a", "b"))
	logger.Warn("x")
	logger.Error("x")
	assert.NotNil(t, logger.With(Int("n", 1)).Named("sub"))
}

func TestDefaultLogger_SetAndGet(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	custom := NewNopLogger()
	SetDefault(custom)
	assert.Equal(t, custom, Default())

	// nil is ignored.
	SetDefault(nil)
	assert.Equal(t, custom, Default())
}
