package analytics

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mohitkumar/onboarding/model"
)

func TestLogFileDataCollector(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "analytics.log")
	collector, err := NewDataCollector(DataCollectorConfig{FileName: fileName, CollectorType: LOG_FILE_DATA_COLLECTOR})
	require.NoError(t, err)

	collector.RecordOpen("signup", "f1", model.DIALOG)
	collector.RecordStep("signup", "f1", 1, 25)
	collector.RecordCompletion("signup", "f1", model.AnswerMap{1: {"class"}})
	collector.RecordAbandon("signup", "f2", 2, 50)
	require.NoError(t, collector.Close())
	require.ErrorIs(t, collector.(*LogFileDataCollector).file.Close(), os.ErrClosed)

	f, err := os.Open(fileName)
	require.NoError(t, err)
	defer f.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		event := make(map[string]any)
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.Len(t, events, 4)
	require.Equal(t, "open", events[0]["msg"])
	require.Equal(t, "dialog", events[0]["variant"])
	require.Equal(t, float64(1), events[1]["index"])
	require.Equal(t, "completed", events[2]["msg"])
	require.Equal(t, map[string]any{"1": []any{"class"}}, events[2]["answers"])
	require.Equal(t, "f2", events[3]["id"])
}

func TestNoopDataCollectorByDefault(t *testing.T) {
	collector, err := NewDataCollector(DataCollectorConfig{})
	require.NoError(t, err)
	require.IsType(t, NoopDataCollector{}, collector)
	require.NoError(t, collector.Close())
}
