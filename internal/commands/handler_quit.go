package commands

import (
	"context"
)

// QuitHandlerFactory creates handlers that end the session. The character
// is saved when the session shuts down.
type QuitHandlerFactory struct{}

func NewQuitHandlerFactory() *QuitHandlerFactory {
	return &QuitHandlerFactory{}
}

func (f *QuitHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "quit", Description: "Leave the game"}
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		cmdCtx.Session.Quit = true
		return cmdCtx.Send("Goodbye!")
	}, nil
}
