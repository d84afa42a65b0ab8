package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	info := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	errOnly := slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError})

	logger := slog.New(NewMultiHandler(info, errOnly)).With("request_id", "req-1")
	logger.Info("synced")
	logger.Error("sync failed")

	assert.Equal(t, 2, bytes.Count(infoBuf.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(errBuf.Bytes(), []byte("\n")))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(errBuf.Bytes(), &rec))
	assert.Equal(t, "sync failed", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
}

func TestMultiHandler_Enabled(t *testing.T) {
	errOnly := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	h := NewMultiHandler(errOnly)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestDBHandler_EnabledOnlyForErrors(t *testing.T) {
	h := &DBHandler{}
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestDBHandler_EntryMapsKnownAttrs(t *testing.T) {
	h := (&DBHandler{}).WithAttrs([]slog.Attr{slog.String("request_id", "req-9")}).(*DBHandler)

	record := slog.NewRecord(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelError, "operation failed", 0)
	record.AddAttrs(
		slog.String("action", "create_donor_profile"),
		slog.String("user_id", "user_1"),
		slog.String("error", "storage failure: boom"),
		slog.String("event_type", "user.created"),
		slog.Float64("latency_ms", 12.6),
		slog.String("path", "/api/donor-profiles"),
	)

	entry := h.entry(record)
	assert.Equal(t, "operation failed", entry.Message)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "req-9", entry.RequestID)
	assert.Equal(t, "create_donor_profile", entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "user_1", *entry.UserID)
	assert.Equal(t, "storage failure: boom", entry.Error)
	assert.Equal(t, "user.created", entry.EventType)
	assert.Equal(t, 13, entry.LatencyMs)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "/api/donor-profiles", extra["path"])
}
