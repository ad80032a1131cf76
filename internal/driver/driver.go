package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 30
	// DefaultMaxFailures is how many ticks in a row may fail before the
	// driver gives up.
	DefaultMaxFailures = 5
)

// Manager is periodic upkeep the driver runs on every tick.
type Manager interface {
	Tick(context.Context) error
}

// Driver runs the managers on a fixed interval, and once more on shutdown so
// the last changes are persisted. A failed tick is retried on the next
// interval; Start only returns an error once maxFailures ticks fail in a row.
type Driver struct {
	tickLength  time.Duration
	maxFailures int
	managers    []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength:  DefaultTickLength,
		maxFailures: DefaultMaxFailures,
		managers:    managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength, "managers", len(d.managers))

	failures := 0
	for {
		select {
		case <-ctx.Done():
			slog.Info("driver stopping, running final tick")
			return d.Tick(context.WithoutCancel(ctx))
		case <-ticker.C:
			start := time.Now()
			err := d.Tick(ctx)
			if err == nil {
				failures = 0
				slog.DebugContext(ctx, "tick complete", "took", time.Since(start))
				continue
			}

			failures++
			slog.ErrorContext(ctx, "tick failed", "error", err, "failures", failures)
			if failures >= d.maxFailures {
				return fmt.Errorf("%d ticks failed in a row: %w", failures, err)
			}
		}
	}
}

// Tick runs every manager in order, stopping at the first error.
func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
