package commands

import (
	"context"

	"github.com/pixil98/go-peake/internal/display"
)

// StatsHandlerFactory creates handlers that display the actor's character sheet.
type StatsHandlerFactory struct{}

func NewStatsHandlerFactory() *StatsHandlerFactory {
	return &StatsHandlerFactory{}
}

func (f *StatsHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "stats", Description: "View your character stats"}
}

func (f *StatsHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		sheet := cmdCtx.Actor().Sheet()
		out, err := display.Render(display.TemplateStats, struct{ Box string }{
			Box: display.Box(sheet.StatSections(), display.BoxWidth),
		})
		if err != nil {
			return err
		}
		return cmdCtx.Send(out)
	}, nil
}
