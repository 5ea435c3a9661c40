package bootstrap

import "context"

// AuditLog is a process-level event worth keeping (startup, shutdown).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
