package player

import "time"

type PlayerManagerOpt func(*PlayerManager)

// WithIdleTimeout disconnects sessions with no input for d. Zero disables it.
func WithIdleTimeout(d time.Duration) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.idleTimeout = d
	}
}

// WithAutosave saves every online character on each tick.
func WithAutosave(enabled bool) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.autosave = enabled
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.now = now
	}
}
