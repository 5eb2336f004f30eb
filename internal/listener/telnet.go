package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves sessions to telnet clients.
type TelnetListener struct {
	addr string
	cm   *ConnectionManager
}

func NewTelnetListener(host string, port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		addr: net.JoinHostPort(host, fmt.Sprint(port)),
		cm:   cm,
	}
}

// Start serves until ctx is canceled, then waits for open sessions to end.
func (l *TelnetListener) Start(ctx context.Context) error {
	sessions := newTelnetSessions(l.cm)
	svr := telnet.NewServer(l.addr, sessions)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			sessions.shutdown()
		case <-stopped:
		}
	}()

	slog.InfoContext(ctx, "listening for telnet", "addr", l.addr)

	if err := svr.ListenAndServe(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("address %s is already in use (another server running?)", l.addr)
		}
		return fmt.Errorf("serving telnet on %s: %w", l.addr, err)
	}
	return nil
}

// telnetSessions implements telnet.Handler. Every connection shares one
// context so shutdown ends them together.
type telnetSessions struct {
	cm     *ConnectionManager
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newTelnetSessions(cm *ConnectionManager) *telnetSessions {
	ctx, cancel := context.WithCancel(context.Background())
	return &telnetSessions{cm: cm, ctx: ctx, cancel: cancel}
}

func (s *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	s.wg.Add(1)
	defer s.wg.Done()

	s.cm.AcceptConnection(s.ctx, conn)

	if err := conn.Close(); err != nil {
		slog.WarnContext(s.ctx, "closing telnet connection", "error", err)
	}
}

func (s *telnetSessions) shutdown() {
	s.cancel()
	s.wg.Wait()
}
