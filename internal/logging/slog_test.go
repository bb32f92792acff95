package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewSlogLogger(l), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufferLogger()
	ctx := context.Background()

	log.Debug(ctx, "debug msg")
	log.Info(ctx, "info msg")
	log.Warn(ctx, "warn msg")
	log.Error(ctx, "error msg")

	out := buf.String()
	require.Contains(t, out, "debug msg")
	require.Contains(t, out, "info msg")
	require.Contains(t, out, "warn msg")
	require.Contains(t, out, "error msg")
}

func TestSlogLogger_KeyValuePairs(t *testing.T) {
	log, buf := newBufferLogger()

	log.Info(context.Background(), "session started", "user_id", "u1")
	require.Contains(t, buf.String(), "user_id=u1")
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newBufferLogger()

	child := log.With("component", "engine")
	child.Info(context.Background(), "hello")
	require.Contains(t, buf.String(), "component=engine")
}
