package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/pixil98/go-peake/internal/player"
)

// SessionRunner runs one client session over a connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

var _ SessionRunner = (*player.PlayerManager)(nil)

// ConnectionManager hands accepted connections from every listener to the
// session runner.
type ConnectionManager struct {
	runner SessionRunner
	active atomic.Int64
}

func NewConnectionManager(runner SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner: runner,
	}
}

// AcceptConnection blocks until the session on conn ends.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	n := m.active.Add(1)
	defer m.active.Add(-1)
	slog.DebugContext(ctx, "connection accepted", "active", n)

	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}

// Active returns the number of connections currently being served.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}
