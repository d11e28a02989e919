package listener

import (
	"context"
	"io"
	"log/slog"
)

// SessionRunner runs one control session over a connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	runner SessionRunner
}

func NewConnectionManager(runner SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner: runner,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "control session", "error", err)
	}
}
