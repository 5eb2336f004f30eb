package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peake/internal/commands"
	"github.com/pixil98/go-peake/internal/game"
	"github.com/pixil98/go-peake/internal/player"
)

type PlayerManagerConfig struct {
	IdleTimeout string `json:"idle_timeout,omitempty"`
	Autosave    bool   `json:"autosave,omitempty"`
}

func (c *PlayerManagerConfig) validate() error {
	el := errors.NewErrorList()

	if c.IdleTimeout != "" {
		d, err := time.ParseDuration(c.IdleTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing idle_timeout: %w", err))
		} else if d < 0 {
			el.Add(fmt.Errorf("idle_timeout cannot be negative"))
		}
	}

	return el.Err()
}

func (c *PlayerManagerConfig) BuildPlayerManager(
	dir *game.PlayerDirectory,
	reg *game.Registry,
	cmdHandler *commands.Handler,
) (*player.PlayerManager, error) {
	var opts []player.PlayerManagerOpt
	if c.IdleTimeout != "" {
		d, err := time.ParseDuration(c.IdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing idle_timeout: %w", err)
		}
		opts = append(opts, player.WithIdleTimeout(d))
	}
	if c.Autosave {
		opts = append(opts, player.WithAutosave(true))
	}

	return player.NewPlayerManager(dir, reg, cmdHandler, opts...), nil
}
