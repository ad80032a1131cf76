package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-arcana/internal/commands"
	"github.com/pixil98/go-arcana/internal/driver"
	"github.com/pixil98/go-arcana/internal/listener"
	"github.com/pixil98/go-arcana/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	ctx := context.Background()

	// Load reference data
	catalog, err := cfg.Engine.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	// Open persistence
	sink, err := cfg.Storage.buildSink(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	docs := newDocuments(sink)

	// Setup nats
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Setup the command handler
	engine := commands.NewEngine(catalog, docs.stores(), cfg.Engine.ownerID())
	handler, err := cfg.Engine.buildHandler(engine,
		commands.WithPublisher(messaging.NewNatsPublisher(natsServer)),
		commands.WithDocuments(docs.list()...),
	)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}
	if err := handler.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading saved state: %w", err)
	}

	// Create Listeners
	console := listener.NewConsole(handler)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		err := l.addListener(listeners, fmt.Sprintf("listener-%d", i), console)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
	}

	var driverOpts []driver.DriverOpt
	if d := cfg.tickInterval(); d > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	if cfg.MaxTickFailures > 0 {
		driverOpts = append(driverOpts, driver.WithMaxFailures(cfg.MaxTickFailures))
	}

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"actions":   messaging.NewActionBus(natsServer, handler),
		"driver":    driver.NewDriver([]driver.Manager{handler}, driverOpts...),
		"listeners": &listeners,
	}, nil
}
