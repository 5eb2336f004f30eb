package commands

import (
	"context"

	"github.com/pixil98/go-peake/internal/display"
	"github.com/pixil98/go-peake/internal/game"
)

// LookHandlerFactory creates handlers that describe the actor's location.
type LookHandlerFactory struct{}

func NewLookHandlerFactory() *LookHandlerFactory {
	return &LookHandlerFactory{}
}

func (f *LookHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "look", Description: "Look around your current location"}
}

func (f *LookHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		room := game.RoomById(cmdCtx.Actor().Sheet().Location)
		return cmdCtx.Send("\n" + display.Wrap(room.Describe()))
	}, nil
}
