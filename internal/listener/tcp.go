package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"
)

// TcpListener serves raw line-based TCP clients.
type TcpListener struct {
	addr string
	cm   *ConnectionManager

	mu    sync.Mutex
	bound net.Addr
	ready chan struct{}
}

func NewTcpListener(host string, port uint16, cm *ConnectionManager) *TcpListener {
	return &TcpListener{
		addr:  net.JoinHostPort(host, fmt.Sprint(port)),
		cm:    cm,
		ready: make(chan struct{}),
	}
}

func (l *TcpListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", l.addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("address %s is already in use (another server running?)", l.addr)
		}
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}

	l.mu.Lock()
	l.bound = listener.Addr()
	l.mu.Unlock()
	close(l.ready)

	slog.InfoContext(ctx, "listening for tcp", "addr", listener.Addr())

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	// Close the listener when the parent context is canceled
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				cancelConns()
				wg.Wait()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting tcp connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn)
		}()
	}
}

func (l *TcpListener) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	slog.InfoContext(ctx, "tcp connection established", "remote", conn.RemoteAddr())
	l.cm.AcceptConnection(ctx, conn)
	slog.InfoContext(ctx, "tcp connection closed", "remote", conn.RemoteAddr())
}

// Addr returns the bound address once the listener has started.
func (l *TcpListener) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case <-l.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bound, nil
}
