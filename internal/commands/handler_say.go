package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-peake/internal/game"
)

// SayHandlerFactory creates handlers that speak to every other online player.
type SayHandlerFactory struct {
	registry *game.Registry
}

func NewSayHandlerFactory(registry *game.Registry) *SayHandlerFactory {
	return &SayHandlerFactory{registry: registry}
}

func (f *SayHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "say <message>", Description: "Say something to other players"}
}

func (f *SayHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if cmdCtx.Args == "" {
			return NewUserError("Say what?")
		}

		msg := fmt.Sprintf("%s says: %s", cmdCtx.Actor().Name(), cmdCtx.Args)
		_, err := f.registry.Broadcast(cmdCtx.Session.Id, []byte(msg))
		if err != nil {
			slog.WarnContext(ctx, "broadcasting say", "player", cmdCtx.Actor().Name(), "error", err)
		}

		return cmdCtx.Send(fmt.Sprintf("You say: %s", cmdCtx.Args))
	}, nil
}
