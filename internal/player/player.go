package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pixil98/go-peake/internal/commands"
	"github.com/pixil98/go-peake/internal/game"
)

const (
	promptMarker   = "> "
	msgLineTooLong = "That line is too long."

	// msgQueueSize is how many messages from other sessions may wait
	// between prompts before new ones are dropped.
	msgQueueSize = 256
)

// session is one connected client.
type session struct {
	id   game.SessionID
	conn io.ReadWriter
	in   *lineReader

	directory *game.PlayerDirectory
	registry  *game.Registry
	cmds      *commands.Handler
	now       func() time.Time
}

// send writes msg followed by a newline.
func (s *session) send(msg string) error {
	_, err := fmt.Fprintf(s.conn, "%s\n", msg)
	return err
}

// readLine waits for the next line of input, trimmed of surrounding space.
// Over-long lines are refused and reading continues.
func (s *session) readLine(ctx context.Context) (string, error) {
	for {
		line, err := s.in.ReadLine(ctx)
		if errors.Is(err, errLineTooLong) {
			if err := s.send(msgLineTooLong); err != nil {
				return "", err
			}
			continue
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// prompt sends msg and reads the answer.
func (s *session) prompt(ctx context.Context, msg string) (string, error) {
	if err := s.send(msg); err != nil {
		return "", err
	}
	return s.readLine(ctx)
}

// choose shows a numbered menu and reads a selection out of n entries. ok is
// false when the input was rejected; the reason has already been sent.
func (s *session) choose(ctx context.Context, menu string, n int) (int, bool, error) {
	answer, err := s.prompt(ctx, menu)
	if err != nil {
		return 0, false, err
	}

	i, problem := parseChoice(answer, n)
	if problem != "" {
		return 0, false, s.send(problem)
	}
	return i, true, nil
}

// Play runs the command loop for an authenticated session until the player
// quits, the connection drops, the session is kicked or ctx is canceled.
func (s *session) Play(ctx context.Context, ss *game.SessionState, msgs <-chan []byte) error {
	char := ss.Character
	cmdCtx := &commands.CommandContext{Session: ss, Out: s.conn}

	err := s.send(fmt.Sprintf("Welcome to Peake, %s!", char.Name()))
	if err != nil {
		return err
	}
	help, err := s.cmds.HelpText()
	if err != nil {
		return err
	}
	room := game.RoomById(char.Sheet().Location)
	err = s.send(fmt.Sprintf("%s\n\nYou are standing in the %s.", help, room.Name))
	if err != nil {
		return err
	}
	if err := s.send(promptMarker); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ss.Done():
			if reason := ss.KickReason(); reason != "" {
				return s.send("\n" + reason)
			}
			return nil

		case msg := <-msgs:
			err = s.send("\n" + string(msg))
			if err != nil {
				return err
			}
			if err := s.send(promptMarker); err != nil {
				return err
			}

		case line, ok := <-s.in.Lines():
			if !ok {
				// Connection lost.
				if err := s.in.Err(); err != io.EOF {
					return err
				}
				return nil
			}

			// Any input resets the idle timer.
			s.registry.MarkActive(ss.Id, s.now())

			if line.tooLong {
				if err := s.send(msgLineTooLong); err != nil {
					return err
				}
				if err := s.send(promptMarker); err != nil {
					return err
				}
				continue
			}

			err = s.cmds.Exec(ctx, cmdCtx, line.text)
			if err != nil {
				userErr, ok := commands.AsUserError(err)
				if !ok {
					// System error - log and disconnect
					return fmt.Errorf("command execution failed: %w", err)
				}
				if err := s.send(userErr.Message); err != nil {
					return err
				}
			}

			if ss.Quit {
				return nil
			}

			if err := s.send(promptMarker); err != nil {
				return err
			}
		}
	}
}
