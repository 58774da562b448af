package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufferLogger(slog.LevelDebug)

	l.Debug(ctx, "dbg")
	l.Info(ctx, "inf")
	l.Warn(ctx, "wrn")
	l.Error(ctx, "err")

	out := buf.String()
	require.Contains(t, out, "dbg")
	require.Contains(t, out, "inf")
	require.Contains(t, out, "wrn")
	require.Contains(t, out, "err")
}

func TestSlogLogger_WithCarriesAttrs(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufferLogger(slog.LevelInfo)

	child := l.With("component", "api")
	child.Info(ctx, "request sent", "path", "/ip/my-images")

	out := buf.String()
	require.Contains(t, out, "component=api")
	require.Contains(t, out, "path=/ip/my-images")
}
