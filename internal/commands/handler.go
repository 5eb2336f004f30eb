package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-peake/internal/game"
)

// compiledCommand holds a command that's been created from its factory.
type compiledCommand struct {
	name    string
	spec    *HandlerSpec
	cmdFunc CommandFunc
}

type Handler struct {
	order    []string
	compiled map[string]*compiledCommand
}

// NewHandler creates a Handler with the built-in commands registered.
func NewHandler(registry *game.Registry, saver Saver) (*Handler, error) {
	h := &Handler{
		compiled: make(map[string]*compiledCommand),
	}

	builtins := []struct {
		name    string
		factory HandlerFactory
	}{
		{"stats", NewStatsHandlerFactory()},
		{"look", NewLookHandlerFactory()},
		{"who", NewWhoHandlerFactory(registry)},
		{"say", NewSayHandlerFactory(registry)},
		{"save", NewSaveHandlerFactory(saver)},
		{"help", NewHelpHandlerFactory(h)},
		{"quit", NewQuitHandlerFactory()},
	}
	for _, b := range builtins {
		if err := h.Register(b.name, b.factory); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Register creates the command from factory and makes it available as name.
func (h *Handler) Register(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.compiled[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}

	cmdFunc, err := factory.Create()
	if err != nil {
		return fmt.Errorf("creating command %q: %w", name, err)
	}

	h.compiled[name] = &compiledCommand{
		name:    name,
		spec:    factory.Spec(),
		cmdFunc: cmdFunc,
	}
	h.order = append(h.order, name)
	return nil
}

// Specs returns the help entries of every command with one, in
// registration order.
func (h *Handler) Specs() []HandlerSpec {
	var specs []HandlerSpec
	for _, name := range h.order {
		if spec := h.compiled[name].spec; spec != nil {
			specs = append(specs, *spec)
		}
	}
	return specs
}

// Exec runs the command named by the first word of line. Unknown commands
// return a UserError.
func (h *Handler) Exec(ctx context.Context, cmdCtx *CommandContext, line string) error {
	name, args := Parse(line)
	if name == "" {
		return nil
	}

	compiled, ok := h.compiled[name]
	if !ok {
		return NewUserError(msgUnknownCommand)
	}

	cmdCtx.Args = args
	return compiled.cmdFunc(ctx, cmdCtx)
}
