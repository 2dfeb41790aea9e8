package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	require.Error(t, Init("loud"))
	require.NoError(t, Init("debug"))
}

func TestUseRoutesPackageCalls(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Use(zap.New(core))
	defer func() { _ = Init("info") }()

	Debug("hidden")
	Info("flow opened", zap.String("flowId", "f1"))
	Error("storage failed")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	require.Equal(t, "flow opened", entries[0].Message)
	require.Equal(t, "f1", entries[0].ContextMap()["flowId"])
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
