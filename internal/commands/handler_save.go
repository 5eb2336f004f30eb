package commands

import (
	"context"
)

// SaveHandlerFactory creates handlers that persist the player's character.
type SaveHandlerFactory struct {
	saver Saver
}

func NewSaveHandlerFactory(saver Saver) *SaveHandlerFactory {
	return &SaveHandlerFactory{saver: saver}
}

func (f *SaveHandlerFactory) Spec() *HandlerSpec {
	return &HandlerSpec{Usage: "save", Description: "Save your character"}
}

func (f *SaveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if f.saver == nil {
			return NewUserError("Saving is not available.")
		}
		if err := f.saver.Save(cmdCtx.Actor()); err != nil {
			return NewUserError("Your character could not be saved.")
		}
		return cmdCtx.Send("Character saved.")
	}, nil
}
