package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qkart/internal/pubsub"
)

func TestFormat(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 45, 0, 0, time.UTC)

	got := Format(now, LevelInfo, CatRegister, "submitted", "attempt", "a1", "orphan")

	require.Equal(t, "2026-10-19T10:45:00 [INFO] [register] submitted attempt=a1 orphan=<missing>\n", got)
}

func TestLogging_DisabledByDefault(t *testing.T) {
	SetDefault(nil)
	Info(CatUI, "nobody listens")
	require.Nil(t, NewListener(context.Background()))
}

func TestLogging_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(&buf))
	t.Cleanup(func() { SetDefault(nil) })

	SetMinLevel(LevelWarn)
	Debug(CatHTTP, "dropped")
	Warn(CatHTTP, "kept")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "[WARN] [http] kept")
}

func TestErrorErr_AttachesError(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(&buf))
	t.Cleanup(func() { SetDefault(nil) })

	ErrorErr(CatHTTP, "request failed", errors.New("connection refused"), "url", "http://x")
	ErrorErr(CatHTTP, "no error", nil)

	require.Contains(t, buf.String(), "url=http://x error=connection refused")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(&buf))
	t.Cleanup(func() { SetDefault(nil) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatNav, "navigate", "path", "/login")

	event, ok := listener.Listen()().(pubsub.Event[string])
	require.True(t, ok)
	require.Equal(t, pubsub.LoggedEvent, event.Type)
	require.Contains(t, event.Payload, "path=/login")
}
