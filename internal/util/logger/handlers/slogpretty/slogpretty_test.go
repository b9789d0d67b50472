package slogpretty

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_TimestampRendersClockTime(t *testing.T) {
	var buf bytes.Buffer
	h := PrettyHandlerOptions{}.NewPrettyHandler(&buf)

	at := time.Date(2026, 8, 30, 13, 42, 7, 250_000_000, time.UTC)
	rec := slog.NewRecord(at, slog.LevelInfo, "hello", 0)

	require.NoError(t, h.Handle(context.Background(), rec))

	assert.Contains(t, buf.String(), "[13:42:07.250]")
	assert.Contains(t, buf.String(), "hello")
}
