package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval    string           `json:"tick_interval"`
	MaxTickFailures int              `json:"max_tick_failures,omitempty"`
	Listeners       []ListenerConfig `json:"listeners"`
	Storage         StorageConfig    `json:"storage"`
	Nats            NatsConfig       `json:"nats"`
	Engine          EngineConfig     `json:"engine"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	if c.MaxTickFailures < 0 {
		el.Add(fmt.Errorf("max_tick_failures must not be negative"))
	}

	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Engine.validate())

	return el.Err()
}

// tickInterval is the flush and sweep period, zero meaning the driver default.
func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}
