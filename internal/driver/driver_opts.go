package driver

import "time"

type DriverOpt func(*Driver)

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}

// WithMaxFailures sets how many consecutive failed ticks stop the driver.
// Values below one are treated as one.
func WithMaxFailures(n int) DriverOpt {
	return func(d *Driver) {
		d.maxFailures = max(n, 1)
	}
}
