package bootstrap

import (
	"context"
	"testing"

	"go-metallurg/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUserID(ctx, "u-1")
	ctx = contextutil.WithRole(ctx, "admin")
	audit.Log(ctx, AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "interrupt"},
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, "admin", fields["role"])
}
