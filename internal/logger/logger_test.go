package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_TextFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn", false)
	log.Info("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "key=value")
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "info", true).Info("hello", "chat_id", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.EqualValues(t, 42, entry["chat_id"])
}

func TestMiddleware_AddsTraceID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "debug", false)

	var seen string
	handler := Middleware(log)(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		seen = TraceID(ctx)
	})

	handler(context.Background(), nil, &models.Update{
		ID: 7,
		Message: &models.Message{
			ID:   3,
			Chat: models.Chat{ID: 100},
			From: &models.User{ID: 200},
			Text: "/ping",
		},
	})

	require.NotEmpty(t, seen)
	out := buf.String()
	assert.Contains(t, out, "trace_id="+seen)
	assert.Contains(t, out, "update_type=message")
	assert.Contains(t, out, "chat_id=100")
	assert.Contains(t, out, "user_id=200")
}

func TestUpdateAttrs_Callback(t *testing.T) {
	t.Parallel()

	attrs := UpdateAttrs(&models.Update{
		ID: 1,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb",
			From: models.User{ID: 5},
			Data: "help",
			Message: models.MaybeInaccessibleMessage{
				Type:                models.MaybeInaccessibleMessageTypeInaccessibleMessage,
				InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 9}},
			},
		},
	})

	joined := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if s, ok := a.(string); ok {
			joined = append(joined, s)
		}
	}
	assert.Contains(t, strings.Join(joined, " "), "callback_query")
	assert.Contains(t, attrs, int64(9))
	assert.Contains(t, attrs, false)
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "...", truncateString("abcdef", 2))
	assert.Equal(t, "ééé...", truncateString("éééééééé", 6))
}
