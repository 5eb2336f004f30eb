package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/pixil98/go-peake/internal/commands"
	"github.com/pixil98/go-peake/internal/game"
)

const msgIdle = "You have been idle too long."

// PlayerManager runs client sessions against the shared directory and registry.
type PlayerManager struct {
	directory *game.PlayerDirectory
	registry  *game.Registry
	cmds      *commands.Handler

	idleTimeout time.Duration
	autosave    bool
	now         func() time.Time
}

func NewPlayerManager(dir *game.PlayerDirectory, reg *game.Registry, cmds *commands.Handler, opts ...PlayerManagerOpt) *PlayerManager {
	m := &PlayerManager{
		directory: dir,
		registry:  reg,
		cmds:      cmds,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RunSession drives one connection from the welcome menu to disconnect. It
// returns once the client leaves, the connection fails or ctx is canceled.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	s := &session{
		id:        game.NewSessionID(),
		conn:      conn,
		in:        newLineReader(conn),
		directory: m.directory,
		registry:  m.registry,
		cmds:      m.cmds,
		now:       m.now,
	}
	defer s.in.Close()

	slog.InfoContext(ctx, "session started", "session", s.id)

	flow := newAuthFlow(s)
	msgs := make(chan []byte, msgQueueSize)

	var ss *game.SessionState
	for ss == nil {
		char, err := flow.Run(ctx)
		if err != nil {
			return ignoreDisconnect(err)
		}
		if char == nil {
			return nil
		}

		ss, err = m.registry.Add(s.id, char, msgs, m.now())
		if errors.Is(err, game.ErrCharacterOnline) {
			flow.Reset()
			if err := s.send(msgAlreadyOnline); err != nil {
				return ignoreDisconnect(err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("registering session: %w", err)
		}
	}

	slog.InfoContext(ctx, "player entered the game", "player", ss.Character.Name(), "online", m.registry.Count())
	defer m.endSession(ctx, ss)

	return ignoreDisconnect(s.Play(ctx, ss, msgs))
}

// endSession saves the session's character and then deregisters it, so a
// new login for the character loads the saved record.
func (m *PlayerManager) endSession(ctx context.Context, ss *game.SessionState) {
	// Save failures are logged by the directory.
	_ = m.directory.Save(ss.Character)
	if err := m.registry.Remove(ss.Id); err != nil {
		slog.WarnContext(ctx, "removing session", "player", ss.Character.Name(), "error", err)
	}
	slog.InfoContext(ctx, "player left the game", "player", ss.Character.Name())
}

// Tick disconnects idle sessions and, if enabled, saves online characters.
func (m *PlayerManager) Tick(ctx context.Context) error {
	var idle []*game.SessionState
	var online []*game.Character

	cutoff := m.now().Add(-m.idleTimeout)
	m.registry.ForEach(func(_ game.SessionID, ss *game.SessionState) {
		if m.idleTimeout > 0 && ss.LastActivity.Before(cutoff) {
			idle = append(idle, ss)
		}
		online = append(online, ss.Character)
	})

	for _, ss := range idle {
		slog.InfoContext(ctx, "disconnecting idle player", "player", ss.Character.Name())
		ss.Kick(msgIdle)
	}

	if m.autosave {
		for _, c := range online {
			_ = m.directory.Save(c)
		}
	}

	return nil
}

// ignoreDisconnect drops errors that only mean the client went away.
func ignoreDisconnect(err error) error {
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, context.Canceled):
		return nil
	}
	return err
}
