package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/invenpulse/internal/events"
)

func TestAuditService_TokenRejectedLoggedAtWarn(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "e-1",
		Type:      events.EventTokenRejected,
		Timestamp: time.Now(),
		Payload:   events.TokenRejectedPayload{Reason: "token_malformed", Path: "/api/me"},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("TokenRejected").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestAuditService_LoginEventsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventLoginSucceeded,
		Subject: "a@x.com",
	}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventLoginFailed,
		Subject: "a@x.com",
		Payload: events.LoginFailedPayload{Reason: "invalid_credentials"},
	}))

	require.Len(t, logs.FilterMessage("LoginSucceeded").All(), 1)
	failed := logs.FilterMessage("LoginFailed").All()
	require.Len(t, failed, 1)
	require.Equal(t, zapcore.WarnLevel, failed[0].Level)
}
