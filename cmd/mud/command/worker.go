package command

import (
	"fmt"

	"github.com/pixil98/go-peake/internal/commands"
	"github.com/pixil98/go-peake/internal/driver"
	"github.com/pixil98/go-peake/internal/game"
	"github.com/pixil98/go-peake/internal/listener"
	"github.com/pixil98/go-peake/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}

	// Cross-session delivery
	var bus game.Bus
	if cfg.Nats != nil {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		bus = ns
	} else {
		bus = messaging.NewLocalBus()
	}

	dir, err := cfg.Storage.BuildDirectory()
	if err != nil {
		return nil, err
	}
	registry := game.NewRegistry(bus)

	cmdHandler, err := commands.NewHandler(registry, dir)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	pm, err := cfg.PlayerManager.BuildPlayerManager(dir, registry, cmdHandler)
	if err != nil {
		return nil, fmt.Errorf("creating player manager: %w", err)
	}

	// Setup the mud driver
	var driverOpts []driver.MudDriverOpt
	if d := cfg.tickLength(); d > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	workers["driver"] = driver.NewMudDriver([]driver.Manager{pm}, driverOpts...)

	// Create Listeners
	cm := listener.NewConnectionManager(pm)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("%s-%d", l.Protocol, i)] = w
	}
	workers["listeners"] = &listeners

	return workers, nil
}
