package logger_test

import (
	"log/slog"
	"testing"

	"github.com/cachefleet/ketama/pkg/logger"
	"github.com/stretchr/testify/require"
)

func BenchmarkInfof(b *testing.B) {
	hostport := "10.0.0.1:11211"
	for i := 0; i < b.N; i++ {
		logger.Infof("Installed cluster generation with self %s", hostport)
	}
}

func BenchmarkInfo(b *testing.B) {
	hostport := "10.0.0.1:11211"
	for i := 0; i < b.N; i++ {
		logger.Info("Installed cluster generation", "self", hostport)
	}
}

func TestSetLevel(t *testing.T) {
	defer logger.SetLevel(slog.LevelInfo) // reset

	// Initial state - INFO
	require.False(t, logger.IsDebug())
	require.True(t, logger.IsInfo())
	require.True(t, logger.IsWarn())

	logger.SetLevel(slog.LevelDebug)
	require.True(t, logger.IsDebug())
	require.True(t, logger.IsInfo())
	require.True(t, logger.IsWarn())

	logger.SetLevel(slog.LevelWarn)
	require.False(t, logger.IsDebug())
	require.False(t, logger.IsInfo())
	require.True(t, logger.IsWarn())

	logger.SetLevel(slog.LevelError)
	require.False(t, logger.IsDebug())
	require.False(t, logger.IsInfo())
	require.False(t, logger.IsWarn())
}
