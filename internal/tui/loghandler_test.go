package tui

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIHandler_ForwardsRecords(t *testing.T) {
	collector := &msgCollector{}
	logger := slog.New(NewUIHandler(collector.send, slog.LevelInfo))

	logger.Info("plan applied", "environment", "dev")

	logs := collector.logMessages()
	require.Len(t, logs, 1)
	assert.Equal(t, "info", logs[0].Level)
	assert.Contains(t, logs[0].Message, "plan applied")
	assert.Contains(t, logs[0].Message, "environment=dev")
}

func TestUIHandler_RespectsLevel(t *testing.T) {
	collector := &msgCollector{}
	logger := slog.New(NewUIHandler(collector.send, slog.LevelWarn))

	logger.Info("quiet")
	logger.Warn("loud")

	logs := collector.logMessages()
	require.Len(t, logs, 1)
	assert.Equal(t, "warn", logs[0].Level)
}

func TestUIHandler_WithAttrs(t *testing.T) {
	collector := &msgCollector{}
	base := NewUIHandler(collector.send, slog.LevelDebug)
	logger := slog.New(base).With("component", "dispatcher")

	logger.Error("boom")

	logs := collector.logMessages()
	require.Len(t, logs, 1)
	assert.Equal(t, "error", logs[0].Level)
	assert.Contains(t, logs[0].Message, "component=dispatcher")
}
