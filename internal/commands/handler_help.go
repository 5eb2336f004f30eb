package commands

import (
	"context"

	"github.com/pixil98/go-peake/internal/display"
)

// HelpHandlerFactory creates handlers that list the available commands.
type HelpHandlerFactory struct {
	handler *Handler
}

func NewHelpHandlerFactory(h *Handler) *HelpHandlerFactory {
	return &HelpHandlerFactory{handler: h}
}

func (f *HelpHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "help", Description: "List these commands"}
}

func (f *HelpHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		out, err := f.handler.HelpText()
		if err != nil {
			return err
		}
		return cmdCtx.Send(out)
	}, nil
}

// HelpText renders the command list shown by help and on entering the game.
func (h *Handler) HelpText() (string, error) {
	return display.Render(display.TemplateHelp, struct{ Commands []HandlerSpec }{Commands: h.Specs()})
}
