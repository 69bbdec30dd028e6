package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(t *testing.T, level slog.Level) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(raw) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		lines = append(lines, m)
	}
	return lines
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelInfo)
	ctx := context.Background()

	log.Debug(ctx, "dropped")
	log.Info(ctx, "video created", "video_id", 7)
	log.Warn(ctx, "status refresh failed", "asset_id", "a1")
	log.Error(ctx, "request failed")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.EqualValues(t, 7, lines[0]["video_id"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, "a1", lines[1]["asset_id"])
	assert.Equal(t, "ERROR", lines[2]["level"])
}

func TestSlogLogger_WithKeepsModule(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelDebug)

	log.With("module", "video_service").Info(context.Background(), "listed", "count", 3)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "video_service", lines[0]["module"])
	assert.EqualValues(t, 3, lines[0]["count"])
}

func TestSlogLogger_RequestIDFromContext(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelDebug)
	ctx := ContextWithRequestID(context.Background(), "req-1")

	log.Info(ctx, "with id")
	log.Info(context.Background(), "without id")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.NotContains(t, lines[1], "request_id")
}

func TestSlogLogger_NilContext(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelDebug)

	//nolint:staticcheck // nil context must not panic
	log.Warn(nil, "no context")

	assert.Contains(t, buf.String(), "no context")
}
