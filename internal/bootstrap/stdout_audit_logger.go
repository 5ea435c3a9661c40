package bootstrap

import (
	"context"
	"time"

	"go-metallurg/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit events through zap under the "audit" name.
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutAuditLogger{logger: l}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	md := contextutil.ExtractMetadata(ctx)
	if md.RequestID != "" {
		fields = append(fields, zap.String("request_id", md.RequestID))
	}
	if md.UserID != "" {
		fields = append(fields, zap.String("user_id", md.UserID), zap.String("role", md.Role))
	}
	l.logger.Info("audit event", fields...)
}
