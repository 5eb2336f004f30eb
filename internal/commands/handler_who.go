package commands

import (
	"context"

	"github.com/pixil98/go-peake/internal/display"
	"github.com/pixil98/go-peake/internal/game"
)

// WhoHandlerFactory creates handlers that list the other online players.
type WhoHandlerFactory struct {
	registry *game.Registry
}

func NewWhoHandlerFactory(registry *game.Registry) *WhoHandlerFactory {
	return &WhoHandlerFactory{registry: registry}
}

func (f *WhoHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "who", Description: "See who else is online"}
}

func (f *WhoHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		others := f.registry.Others(cmdCtx.Session.Id)

		players := make([]game.Sheet, 0, len(others))
		for _, ss := range others {
			players = append(players, ss.Character.Sheet())
		}

		out, err := display.Render(display.TemplateWho, struct{ Players []game.Sheet }{Players: players})
		if err != nil {
			return err
		}
		return cmdCtx.Send(out)
	}, nil
}
