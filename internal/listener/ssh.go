package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener serves sessions over ssh. Authentication happens in the game
// itself, so the ssh layer accepts any client.
type SshListener struct {
	addr   string
	cm     *ConnectionManager
	config *ssh.ServerConfig
}

func NewSshListener(host string, port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(hostKey)

	return &SshListener{
		addr:   net.JoinHostPort(host, fmt.Sprint(port)),
		cm:     cm,
		config: config,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "addr", l.addr)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

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
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.serveConn(connCtx, conn)
		}()
	}
}

// serveConn runs one game session per ssh "session" channel on conn.
func (l *SshListener) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, l.config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "user", sshConn.User())

	// Closing the connection ends the channel loop below on shutdown.
	stop := context.AfterFunc(ctx, func() { sshConn.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if awaitShell(ctx, requests) {
			l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
		}
		ch.Close()
	}
}

// awaitShell answers channel requests until the client asks for a shell.
// Clients do not send input before the shell reply. Pty requests are
// refused so the client keeps local echo and line editing. Returns false if
// the channel closes first.
func awaitShell(ctx context.Context, requests <-chan *ssh.Request) bool {
	shell := make(chan bool, 1)
	go func() {
		started := false
		defer func() {
			if !started {
				shell <- false
			}
		}()

		for req := range requests {
			switch {
			case req.Type == "shell" && !started:
				req.Reply(true, nil)
				started = true
				shell <- true
			default:
				req.Reply(false, nil)
			}
		}
	}()

	select {
	case ok := <-shell:
		return ok
	case <-ctx.Done():
		return false
	}
}
