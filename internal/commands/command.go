package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pixil98/go-peake/internal/game"
)

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory creates CommandFuncs. Spec describes the command for help.
type HandlerFactory interface {
	Spec() *HandlerSpec
	Create() (CommandFunc, error)
}

// HandlerSpec describes a command to players.
type HandlerSpec struct {
	Usage       string
	Description string
}

// CommandContext is the state a command runs against.
type CommandContext struct {
	// Session is the issuing session.
	Session *game.SessionState
	// Out writes to the issuing session's connection.
	Out io.Writer
	// Args is the text after the command word, without surrounding space.
	Args string
}

// Actor returns the issuing character.
func (c *CommandContext) Actor() *game.Character {
	return c.Session.Character
}

// Send writes msg to the issuing session as a line.
func (c *CommandContext) Send(msg string) error {
	_, err := fmt.Fprintf(c.Out, "%s\n", msg)
	return err
}

// Saver persists characters.
type Saver interface {
	Save(c *game.Character) error
}

// Parse splits an input line into a lowercased command word and the
// remaining argument text.
func Parse(line string) (name string, args string) {
	line = strings.TrimSpace(line)
	name = line
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, args = line[:i], line[i:]
	}
	return strings.ToLower(name), strings.TrimSpace(args)
}
