package driver

import "time"

type MudDriverOpt func(*MudDriver)

// WithTickLength sets the interval between ticks.
func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		d.tickLength = tickLength
	}
}
